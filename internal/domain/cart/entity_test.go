package cart

import "testing"

func coffee() ItemSnapshot {
	return ItemSnapshot{ID: 1, Name: "Coffee"}
}

func TestAddVariantTwiceIncrementsQuantity(t *testing.T) {
	crt := New()
	crt.AddVariant(coffee(), "Hot", 25000)
	crt.AddVariant(coffee(), "Hot", 25000)

	line, ok := crt.Lines[LineKey(1, "Hot")]
	if !ok {
		t.Fatalf("expected line (1,Hot) to exist")
	}
	if line.Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", line.Quantity)
	}
	if got := crt.Total(); got != 50000 {
		t.Fatalf("Total() = %d, want 50000", got)
	}
}

func TestDistinctVariantsAreSeparateLines(t *testing.T) {
	crt := New()
	crt.AddVariant(coffee(), "Hot", 25000)
	crt.AddVariant(coffee(), "Ice L", 30000)

	if len(crt.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(crt.Lines))
	}

	// Reduce one variant to zero: only the other line survives
	crt.UpdateQuantity(LineKey(1, "Hot"), -1)

	if len(crt.Lines) != 1 {
		t.Fatalf("expected 1 line after removal, got %d", len(crt.Lines))
	}
	if _, ok := crt.Lines[LineKey(1, "Ice L")]; !ok {
		t.Fatalf("expected the Ice L line to remain")
	}
	if got := crt.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	if got := crt.Total(); got != 30000 {
		t.Fatalf("Total() = %d, want 30000", got)
	}
}

func TestUpdateQuantityNeverCreatesLines(t *testing.T) {
	crt := New()
	crt.UpdateQuantity(LineKey(9, "Hot"), 3)

	if !crt.IsEmpty() {
		t.Fatalf("expected cart to stay empty, got %d lines", len(crt.Lines))
	}
}

func TestUpdateQuantityAcceptsAnyDelta(t *testing.T) {
	crt := New()
	crt.AddVariant(coffee(), "Hot", 25000)
	crt.UpdateQuantity(LineKey(1, "Hot"), 4)

	if line := crt.Lines[LineKey(1, "Hot")]; line.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", line.Quantity)
	}

	// A large negative delta removes the line rather than leaving qty <= 0
	crt.UpdateQuantity(LineKey(1, "Hot"), -10)
	if _, ok := crt.Lines[LineKey(1, "Hot")]; ok {
		t.Fatalf("expected line removed when quantity drops to or below zero")
	}
}

func TestTotalMatchesSurvivingLines(t *testing.T) {
	crt := New()
	crt.AddVariant(ItemSnapshot{ID: 1, Name: "Latte"}, "Hot", 25000)
	crt.AddVariant(ItemSnapshot{ID: 1, Name: "Latte"}, "Hot", 25000)
	crt.AddVariant(ItemSnapshot{ID: 2, Name: "Matcha"}, "Ice R", 28000)
	crt.UpdateQuantity(LineKey(2, "Ice R"), 1)
	crt.UpdateQuantity(LineKey(1, "Hot"), -1)

	var want int64
	for _, line := range crt.Lines {
		if line.Quantity <= 0 {
			t.Fatalf("line %s has non-positive quantity %d", LineKey(line.MenuItemID, line.Variant), line.Quantity)
		}
		want += int64(line.Quantity) * line.Price
	}
	if got := crt.Total(); got != want {
		t.Fatalf("Total() = %d, want %d", got, want)
	}
	if got := crt.Total(); got != 25000+2*28000 {
		t.Fatalf("Total() = %d, want %d", got, 25000+2*28000)
	}
}

func TestClearEmptiesCartAndNote(t *testing.T) {
	crt := New()
	crt.AddVariant(coffee(), "Hot", 25000)
	crt.Note = "less sugar"

	crt.Clear()

	if !crt.IsEmpty() {
		t.Fatalf("expected empty cart after Clear")
	}
	if crt.Note != "" {
		t.Fatalf("expected note cleared, got %q", crt.Note)
	}
	if crt.Total() != 0 || crt.Count() != 0 {
		t.Fatalf("expected zero totals after Clear")
	}
}
