// internal/domain/menu/entity.go
package menu

import (
	"time"

	"gorm.io/gorm"
)

// Variant labels as shown on the menu. A menu item carries its own price
// per serving option; an option without a flag or a price is not offered.
const (
	VariantHot        = "Hot"
	VariantIceLarge   = "Ice L"
	VariantIceRegular = "Ice R"
)

// MenuItem represents a catalog entry. Immutable from the customer flow's
// point of view; only the staff/admin side ever writes it.
type MenuItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null;size:255" json:"name"`
	Category string `gorm:"not null;size:100;index" json:"category"`
	Price    int64  `gorm:"not null" json:"price"` // Base price in rupiah

	// Per-variant prices and availability flags
	HasHot          bool  `gorm:"default:false" json:"has_hot"`
	PriceHot        int64 `gorm:"default:0" json:"price_hot"`
	HasIceLarge     bool  `gorm:"default:false" json:"has_ice_l"`
	PriceIceLarge   int64 `gorm:"default:0" json:"price_ice_l"`
	HasIceRegular   bool  `gorm:"default:false" json:"has_ice_r"`
	PriceIceRegular int64 `gorm:"default:0" json:"price_ice_r"`

	ImageBase64 string `gorm:"type:text" json:"image_base64,omitempty"`
	// No column default: gorm would replace an explicit false with it on
	// insert, making deactivation through struct writes impossible
	IsActive    bool   `json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (MenuItem) TableName() string {
	return "menu_items"
}

// VariantOption is one orderable serving of a menu item
type VariantOption struct {
	Label string `json:"label"`
	Price int64  `json:"price"`
}

// Variants returns the serving options offered for this item, in menu order.
// An option needs both its availability flag and a positive price.
func (m *MenuItem) Variants() []VariantOption {
	var options []VariantOption
	if m.HasHot && m.PriceHot > 0 {
		options = append(options, VariantOption{Label: VariantHot, Price: m.PriceHot})
	}
	if m.HasIceLarge && m.PriceIceLarge > 0 {
		options = append(options, VariantOption{Label: VariantIceLarge, Price: m.PriceIceLarge})
	}
	if m.HasIceRegular && m.PriceIceRegular > 0 {
		options = append(options, VariantOption{Label: VariantIceRegular, Price: m.PriceIceRegular})
	}
	return options
}

// VariantPrice returns the price for a variant label. Items without serving
// options are ordered with an empty label at the base price.
func (m *MenuItem) VariantPrice(label string) (int64, bool) {
	options := m.Variants()
	for _, v := range options {
		if v.Label == label {
			return v.Price, true
		}
	}
	if label == "" && len(options) == 0 && m.Price > 0 {
		return m.Price, true
	}
	return 0, false
}
