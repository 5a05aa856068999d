package menu

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&MenuItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name  string
		items []MenuItem
		want  []string
	}{
		{
			name:  "empty menu",
			items: nil,
			want:  []string{"All"},
		},
		{
			name: "first occurrence order preserved",
			items: []MenuItem{
				{Name: "Americano", Category: "Coffee"},
				{Name: "Croissant", Category: "Pastry"},
				{Name: "Latte", Category: "Coffee"},
				{Name: "Matcha", Category: "Non-Coffee"},
			},
			want: []string{"All", "Coffee", "Pastry", "Non-Coffee"},
		},
		{
			name: "blank category skipped",
			items: []MenuItem{
				{Name: "Mystery", Category: ""},
				{Name: "Latte", Category: "Coffee"},
			},
			want: []string{"All", "Coffee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categories(tt.items)
			if len(got) != len(tt.want) {
				t.Fatalf("Categories() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Categories()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestVariants(t *testing.T) {
	item := MenuItem{
		Name:            "Caramel Macchiato",
		HasHot:          true,
		PriceHot:        25000,
		HasIceLarge:     true,
		PriceIceLarge:   30000,
		HasIceRegular:   true,
		PriceIceRegular: 0, // flagged but unpriced, must not be offered
	}

	variants := item.Variants()
	if len(variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(variants))
	}
	if variants[0].Label != VariantHot || variants[0].Price != 25000 {
		t.Fatalf("unexpected first variant: %+v", variants[0])
	}
	if variants[1].Label != VariantIceLarge || variants[1].Price != 30000 {
		t.Fatalf("unexpected second variant: %+v", variants[1])
	}
}

func TestVariantPrice(t *testing.T) {
	withVariants := MenuItem{Name: "Latte", Price: 25000, HasHot: true, PriceHot: 25000}
	if price, ok := withVariants.VariantPrice(VariantHot); !ok || price != 25000 {
		t.Fatalf("VariantPrice(Hot) = %d, %v", price, ok)
	}
	if _, ok := withVariants.VariantPrice(""); ok {
		t.Fatal("empty label must not resolve while variants are offered")
	}
	if _, ok := withVariants.VariantPrice(VariantIceLarge); ok {
		t.Fatal("unoffered variant must not resolve")
	}

	// Items without serving options sell at the base price under an empty label
	plain := MenuItem{Name: "Croissant", Price: 22000}
	if price, ok := plain.VariantPrice(""); !ok || price != 22000 {
		t.Fatalf("VariantPrice(\"\") = %d, %v", price, ok)
	}
}

func TestItemsSkipsInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	db.Create(&MenuItem{Name: "Latte", Category: "Coffee", Price: 25000, IsActive: true})
	db.Create(&MenuItem{Name: "Retired Drink", Category: "Coffee", Price: 20000, IsActive: false})

	items, err := svc.Items(context.Background())
	if err != nil {
		t.Fatalf("Items returned error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Latte" {
		t.Fatalf("expected only active items, got %+v", items)
	}
}

func TestLoaderFetchesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	loader := NewLoader(svc, quietLogger())

	db.Create(&MenuItem{Name: "Latte", Category: "Coffee", Price: 25000, IsActive: true})

	items, categories := loader.Load(context.Background())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if len(categories) != 2 || categories[1] != "Coffee" {
		t.Fatalf("unexpected categories: %v", categories)
	}

	// A row added after the first load must not appear: one fetch per lifetime
	db.Create(&MenuItem{Name: "Matcha", Category: "Non-Coffee", Price: 28000, IsActive: true})

	items, _ = loader.Load(context.Background())
	if len(items) != 1 {
		t.Fatalf("loader refetched; expected cached 1 item, got %d", len(items))
	}
}

func TestLoaderRetriesAfterAbandonedRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	loader := NewLoader(svc, quietLogger())

	db.Create(&MenuItem{Name: "Latte", Category: "Coffee", Price: 25000, IsActive: true})

	// A request abandoned mid-fetch must not latch an empty menu for the
	// rest of the process
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	items, categories := loader.Load(cancelled)
	if len(items) != 0 {
		t.Fatalf("expected empty result for abandoned request, got %d items", len(items))
	}
	if len(categories) != 1 || categories[0] != "All" {
		t.Fatalf("unexpected categories for abandoned request: %v", categories)
	}

	items, categories = loader.Load(context.Background())
	if len(items) != 1 || items[0].Name != "Latte" {
		t.Fatalf("expected the menu after retry, got %+v", items)
	}
	if len(categories) != 2 || categories[1] != "Coffee" {
		t.Fatalf("unexpected categories after retry: %v", categories)
	}
}

func TestLoaderFailsSoft(t *testing.T) {
	db := newTestDB(t)
	// Drop the table so the fetch fails
	if err := db.Migrator().DropTable(&MenuItem{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	loader := NewLoader(NewService(db), quietLogger())

	items, categories := loader.Load(context.Background())
	if len(items) != 0 {
		t.Fatalf("expected empty menu on fetch failure, got %d items", len(items))
	}
	if len(categories) != 1 || categories[0] != "All" {
		t.Fatalf("expected only the synthetic category, got %v", categories)
	}
}
