// internal/interfaces/http/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "session_id"

// getOrCreateSessionID identifies the guest session backing the cart and
// table binding. A new ID is minted and stored in a cookie on first contact.
func getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Session cookie (24 hours), HTTP-only
		c.SetCookie(sessionCookie, sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
