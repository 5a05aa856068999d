// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/winston-coffee/ordering-backend/internal/config"
	"github.com/winston-coffee/ordering-backend/internal/domain/menu"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
)

const sessionTTL = 24 * time.Hour

// Service handles session cart persistence. Carts live in Redis as one JSON
// blob per session; the table number sits under its own key so clearing the
// cart never loses the table binding.
type Service struct {
	redisClient *redis.Client
	menuService *menu.Service
	config      *config.Config
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, menuService *menu.Service, cfg *config.Config) *Service {
	return &Service{
		redisClient: redisClient,
		menuService: menuService,
		config:      cfg,
	}
}

// AddVariantRequest represents an add-to-cart request. Variant is empty for
// items with a single base serving.
type AddVariantRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Variant    string `json:"variant"`
}

// UpdateQuantityRequest represents a quantity change for one line
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// Response represents a cart with its derived values
type Response struct {
	Lines       map[string]Line `json:"lines"`
	Note        string          `json:"note"`
	TableNumber string          `json:"table_number,omitempty"`
	Total       int64           `json:"total"`
	Count       int             `json:"count"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Get retrieves the session's cart, returning an empty cart when none is stored
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, apperrors.Validation("session ID required")
	}

	data, err := s.redisClient.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return New(), nil
	} else if err != nil {
		return nil, apperrors.Fetch("failed to read cart", err)
	}

	var crt Cart
	if err := json.Unmarshal([]byte(data), &crt); err != nil {
		return nil, apperrors.Fetch("failed to decode cart", err)
	}
	if crt.Lines == nil {
		crt.Lines = map[string]Line{}
	}
	return &crt, nil
}

// AddVariant validates the item against the catalog, snapshots it into the
// cart at the variant's current price and persists the result
func (s *Service) AddVariant(ctx context.Context, sessionID string, req *AddVariantRequest) (*Cart, error) {
	item, err := s.menuService.Item(ctx, req.MenuItemID)
	if err != nil {
		return nil, err
	}

	price, offered := item.VariantPrice(req.Variant)
	if !offered {
		return nil, apperrors.Validation("variant not available for this item")
	}

	crt, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	crt.AddVariant(ItemSnapshot{
		ID:          item.ID,
		Name:        item.Name,
		ImageBase64: item.ImageBase64,
	}, req.Variant, price)

	if err := s.save(ctx, sessionID, crt); err != nil {
		return nil, err
	}
	return crt, nil
}

// UpdateQuantity applies a delta to one line and persists the result
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineKey string, delta int) (*Cart, error) {
	crt, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	crt.UpdateQuantity(lineKey, delta)

	if err := s.save(ctx, sessionID, crt); err != nil {
		return nil, err
	}
	return crt, nil
}

// SetNote updates the cart's free-text note and persists the result
func (s *Service) SetNote(ctx context.Context, sessionID, note string) (*Cart, error) {
	crt, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	crt.Note = note
	crt.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, sessionID, crt); err != nil {
		return nil, err
	}
	return crt, nil
}

// Clear empties the cart and removes its persisted representation
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.Validation("session ID required")
	}
	if err := s.redisClient.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return apperrors.Persistence("failed to clear cart", err)
	}
	return nil
}

// SetTable binds the session to a table number
func (s *Service) SetTable(ctx context.Context, sessionID, tableNumber string) error {
	if sessionID == "" {
		return apperrors.Validation("session ID required")
	}
	if tableNumber == "" {
		return apperrors.Validation("table number required")
	}
	if err := s.redisClient.Set(ctx, tableKey(sessionID), tableNumber, sessionTTL).Err(); err != nil {
		return apperrors.Persistence("failed to store table number", err)
	}
	return nil
}

// Table returns the session's table number, or "" when none is bound
func (s *Service) Table(ctx context.Context, sessionID string) (string, error) {
	table, err := s.redisClient.Get(ctx, tableKey(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", apperrors.Fetch("failed to read table number", err)
	}
	return table, nil
}

// BuildResponse assembles the cart response with derived totals
func (s *Service) BuildResponse(crt *Cart, tableNumber string) *Response {
	return &Response{
		Lines:       crt.Lines,
		Note:        crt.Note,
		TableNumber: tableNumber,
		Total:       crt.Total(),
		Count:       crt.Count(),
		UpdatedAt:   crt.UpdatedAt,
	}
}

// save writes the full cart after a mutation. An empty cart with no note
// deletes the stored entry instead of writing an empty blob, so "no cart
// yet" and "emptied cart" stay indistinguishable.
func (s *Service) save(ctx context.Context, sessionID string, crt *Cart) error {
	key := cartKey(sessionID)

	if crt.IsEmpty() && crt.Note == "" {
		if err := s.redisClient.Del(ctx, key).Err(); err != nil {
			return apperrors.Persistence("failed to remove empty cart", err)
		}
		return nil
	}

	data, err := json.Marshal(crt)
	if err != nil {
		return apperrors.Persistence("failed to encode cart", err)
	}
	if err := s.redisClient.Set(ctx, key, data, sessionTTL).Err(); err != nil {
		return apperrors.Persistence("failed to store cart", err)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func tableKey(sessionID string) string {
	return fmt.Sprintf("table:session:%s", sessionID)
}
