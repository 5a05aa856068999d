// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Status represents the order status
type Status string

const (
	StatusAwaitingPayment    Status = "awaiting_payment"
	StatusAwaitingProcessing Status = "awaiting_processing"
	StatusProcessing         Status = "processing"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusCash    PaymentStatus = "cash"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentMethod is how the customer chose to pay
type PaymentMethod string

const (
	MethodQRIS PaymentMethod = "qris"
	MethodCash PaymentMethod = "cash"
)

// Order is a submitted cart: immutable line snapshots bound to a table.
// Created once per checkout; only the status fields change afterward.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	TableNumber   string        `gorm:"not null;size:20;index" json:"table_number"`
	Note          string        `gorm:"type:text" json:"note"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"` // In rupiah
	PaymentMethod PaymentMethod `gorm:"not null;size:20" json:"payment_method"`
	Status        Status        `gorm:"not null;size:30;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;size:20" json:"payment_status"`

	// Gateway bookkeeping for QRIS orders
	SnapToken string `gorm:"size:100" json:"snap_token,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []Item `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// Item is a persisted snapshot of one cart line, not a reference
type Item struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Variant    string    `gorm:"not null;size:30" json:"variant"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`       // Unit price in rupiah
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string { return "orders" }
func (Item) TableName() string  { return "order_items" }

// IsOpen reports whether the order still needs kitchen attention
func (o *Order) IsOpen() bool {
	return o.Status == StatusAwaitingPayment ||
		o.Status == StatusAwaitingProcessing ||
		o.Status == StatusProcessing
}
