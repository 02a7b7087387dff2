package cart

import (
	"testing"

	"github.com/diningtech/tableside/internal/menu"
)

type stubCatalog map[string]menu.Item

func (c stubCatalog) Find(id string) (menu.Item, bool) {
	item, ok := c[id]
	return item, ok
}

func newTestManager() *Manager {
	return NewManager(stubCatalog{
		"s1": {ID: "s1", Category: "starters", Name: "Samosa", Price: 60, Available: true, ImageURL: "https://img/s1.jpg"},
		"m1": {ID: "m1", Category: "mains", Name: "Dal Makhani", Price: 220, Available: true},
	})
}

func TestAddItemCopiesCatalogFields(t *testing.T) {
	m := newTestManager()

	if !m.AddItem("s1") {
		t.Fatal("expected add to succeed")
	}
	lines := m.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	line := lines[0]
	if line.Name != "Samosa" || line.Price != 60 || line.ImageURL != "https://img/s1.jpg" || line.Quantity != 1 {
		t.Fatalf("line did not copy catalog fields: %+v", line)
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	m := newTestManager()
	m.AddItem("s1")
	m.AddItem("s1")
	m.AddItem("s1")

	lines := m.Lines()
	if len(lines) != 1 {
		t.Fatalf("duplicate line created: %+v", lines)
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAddUnknownItemIsNoOp(t *testing.T) {
	m := newTestManager()
	if m.AddItem("ghost") {
		t.Fatal("unknown item should be ignored")
	}
	if !m.Empty() {
		t.Fatal("cart should stay empty")
	}
}

func TestSetQuantity(t *testing.T) {
	m := newTestManager()
	m.AddItem("s1")

	m.SetQuantity("s1", 5)
	if got := m.Lines()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}

	m.SetQuantity("s1", 0)
	if !m.Empty() {
		t.Fatal("zero quantity should remove the line")
	}

	m.SetQuantity("s1", 4)
	if !m.Empty() {
		t.Fatal("set on an absent line must not create one")
	}

	m.SetQuantity("s1", -2)
	if !m.Empty() {
		t.Fatal("negative quantity on absent line is a no-op")
	}
}

func TestTotalsRecomputedFromLines(t *testing.T) {
	m := newTestManager()
	m.AddItem("s1") // 60
	m.AddItem("m1") // 220
	m.AddItem("m1") // 220

	if got := m.Total(); got != 500 {
		t.Fatalf("expected total 500, got %d", got)
	}
	if got := m.ItemCount(); got != 3 {
		t.Fatalf("expected 3 units, got %d", got)
	}

	m.SetQuantity("m1", 1)
	if got := m.Total(); got != 280 {
		t.Fatalf("total stale after quantity update: %d", got)
	}
}

func TestEveryMutationNotifiesHooks(t *testing.T) {
	m := newTestManager()
	var calls int
	var last []Line
	m.OnChange(func(lines []Line) {
		calls++
		last = lines
	})

	m.AddItem("s1")
	m.SetQuantity("s1", 2)
	m.Clear()

	if calls != 3 {
		t.Fatalf("expected 3 hook calls, got %d", calls)
	}
	if last != nil {
		t.Fatalf("clear should notify with empty lines, got %+v", last)
	}

	// No-op mutations do not fire hooks.
	m.AddItem("ghost")
	m.SetQuantity("absent", 3)
	if calls != 3 {
		t.Fatalf("no-op mutations must not notify, got %d calls", calls)
	}
}

func TestRestoreDropsInvalidLines(t *testing.T) {
	m := newTestManager()
	m.Restore([]Line{
		{ItemID: "s1", Name: "Samosa", Price: 60, Quantity: 2},
		{ItemID: "", Name: "broken", Price: 10, Quantity: 1},
		{ItemID: "m1", Name: "Dal Makhani", Price: 220, Quantity: 0},
		{ItemID: "gone", Name: "Removed Item", Price: 150, Quantity: 1},
	})

	lines := m.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 restored lines, got %+v", lines)
	}
	// Lines may reference items missing from the current catalog; they are
	// kept so the diner does not silently lose a saved cart.
	if lines[1].ItemID != "gone" {
		t.Fatalf("unresolved catalog reference should survive restore: %+v", lines)
	}
	if got := m.Total(); got != 270 {
		t.Fatalf("expected restored total 270, got %d", got)
	}
}
