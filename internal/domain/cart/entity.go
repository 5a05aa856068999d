// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"
)

// Line is one (menu item, variant) pairing in the cart. Name and image are
// snapshots taken when the line was created; the unit price is the variant
// price at time of selection.
type Line struct {
	MenuItemID  uint      `json:"menu_item_id"`
	Name        string    `json:"name"`
	Variant     string    `json:"variant"`
	Price       int64     `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageBase64 string    `json:"image_base64,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// Cart is the session's cart: lines keyed by LineKey plus a free-text note.
// Mutations go through the methods below; a line's quantity never drops to
// zero or below, it is removed instead.
type Cart struct {
	Lines     map[string]Line `json:"lines"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemSnapshot carries the catalog fields a cart line snapshots
type ItemSnapshot struct {
	ID          uint
	Name        string
	ImageBase64 string
}

// LineKey builds the map key for a (menu item, variant) pairing
func LineKey(menuItemID uint, variant string) string {
	return fmt.Sprintf("%d_%s", menuItemID, variant)
}

// New returns an empty cart
func New() *Cart {
	now := time.Now().UTC()
	return &Cart{
		Lines:     map[string]Line{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddVariant adds one unit of the given variant: an existing line's quantity
// is incremented, otherwise a new line is created with quantity 1 at the
// given unit price
func (c *Cart) AddVariant(item ItemSnapshot, variant string, price int64) {
	key := LineKey(item.ID, variant)
	if line, ok := c.Lines[key]; ok {
		line.Quantity++
		c.Lines[key] = line
	} else {
		c.Lines[key] = Line{
			MenuItemID:  item.ID,
			Name:        item.Name,
			Variant:     variant,
			Price:       price,
			Quantity:    1,
			ImageBase64: item.ImageBase64,
			AddedAt:     time.Now().UTC(),
		}
	}
	c.UpdatedAt = time.Now().UTC()
}

// UpdateQuantity adds delta to the line's quantity. A missing key is a
// no-op: this method never creates lines. A resulting quantity of zero or
// below removes the line entirely.
func (c *Cart) UpdateQuantity(key string, delta int) {
	line, ok := c.Lines[key]
	if !ok {
		return
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		delete(c.Lines, key)
	} else {
		c.Lines[key] = line
	}
	c.UpdatedAt = time.Now().UTC()
}

// Clear empties the cart and its note
func (c *Cart) Clear() {
	c.Lines = map[string]Line{}
	c.Note = ""
	c.UpdatedAt = time.Now().UTC()
}

// Total is the sum of quantity × unit price over all lines. Recomputed on
// every call, never cached.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += int64(line.Quantity) * line.Price
	}
	return total
}

// Count is the sum of all line quantities
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
