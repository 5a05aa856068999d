// internal/domain/staff/entity.go
package staff

import (
	"time"

	"gorm.io/gorm"
)

// Roles for the staff surface
const (
	RoleCashier = "cashier"
	RoleAdmin   = "admin"
)

// Staff represents a cashier or admin account
type Staff struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	PasswordHash string         `gorm:"not null;size:255" json:"-"`
	Role         string         `gorm:"not null;size:20;default:'cashier'" json:"role"`
	// No column default so an explicit false survives the insert
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Staff) TableName() string {
	return "staff"
}
