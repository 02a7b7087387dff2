package menu

import (
	"context"
	"testing"
)

func testItems() []Item {
	return []Item{
		{ID: "m1", Category: "mains", Name: "Paneer Tikka Masala", Description: "Smoky cottage cheese", Price: 280, Available: true},
		{ID: "s1", Category: "starters", Name: "Samosa", Description: "Crisp pastry", Price: 60, Available: true},
		{ID: "m2", Category: "mains", Name: "Dal Makhani", Description: "Slow-cooked lentils", Price: 220, Available: true},
		{ID: "b1", Category: "beverages", Name: "Masala Chai", Description: "Spiced tea", Price: 40, Available: true},
		{ID: "m3", Category: "mains", Name: "Butter Chicken", Description: "House special", Price: 320, Available: false},
	}
}

func TestApplySnapshotKeepsFirstObservationOrder(t *testing.T) {
	store := NewStore(nil, nil)
	store.ApplySnapshot(testItems())

	cats := store.Categories()
	want := []string{"mains", "starters", "beverages"}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, name := range want {
		if cats[i].Name != name {
			t.Fatalf("category %d: expected %q got %q", i, name, cats[i].Name)
		}
	}
	if cats[0].Count != 2 {
		t.Fatalf("mains should hold 2 available items, got %d", cats[0].Count)
	}
	if cats[2].PrepTime != "3-5 min" {
		t.Fatalf("unexpected beverages prep time %q", cats[2].PrepTime)
	}
}

func TestUnavailableItemsNeverAppear(t *testing.T) {
	store := NewStore(nil, nil)
	store.ApplySnapshot(testItems())

	if _, ok := store.Find("m3"); ok {
		t.Fatal("unavailable item must not be findable")
	}
	for _, group := range store.Grouped() {
		for _, item := range group.Items {
			if item.ID == "m3" {
				t.Fatal("unavailable item leaked into grouped output")
			}
		}
	}
	for _, item := range store.Search("butter") {
		if item.ID == "m3" {
			t.Fatal("unavailable item leaked into search results")
		}
	}
}

func TestSnapshotReplacesWholesale(t *testing.T) {
	store := NewStore(nil, nil)
	store.ApplySnapshot(testItems())

	store.ApplySnapshot([]Item{
		{ID: "d1", Category: "desserts", Name: "Gulab Jamun", Price: 90, Available: true},
	})

	if _, ok := store.Find("m1"); ok {
		t.Fatal("old snapshot contents must be replaced")
	}
	cats := store.Categories()
	if len(cats) != 1 || cats[0].Name != "desserts" {
		t.Fatalf("unexpected categories after replace: %+v", cats)
	}
}

func TestMarkUnavailableClearsCatalog(t *testing.T) {
	store := NewStore(nil, nil)
	store.ApplySnapshot(testItems())

	store.MarkUnavailable()

	if !store.Degraded() {
		t.Fatal("store should be degraded after subscription error")
	}
	if !store.Empty() {
		t.Fatal("stale catalog contents must not survive an error")
	}
	if _, ok := store.Find("m1"); ok {
		t.Fatal("stale item resolvable after error")
	}

	// A later good snapshot recovers.
	store.ApplySnapshot(testItems())
	if store.Degraded() || store.Empty() {
		t.Fatal("good snapshot should clear the degraded state")
	}
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	store := NewStore(nil, nil)
	store.ApplySnapshot(testItems())

	byName := store.Search("chai")
	if len(byName) != 1 || byName[0].ID != "b1" {
		t.Fatalf("unexpected name search result: %+v", byName)
	}

	byDescription := store.Search("LENTILS")
	if len(byDescription) != 1 || byDescription[0].ID != "m2" {
		t.Fatalf("unexpected description search result: %+v", byDescription)
	}

	if got := store.Search("pizza"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestItemsIn(t *testing.T) {
	store := NewStore(nil, nil)
	store.ApplySnapshot(testItems())

	items, ok := store.ItemsIn("mains")
	if !ok || len(items) != 2 {
		t.Fatalf("unexpected mains: ok=%v items=%+v", ok, items)
	}
	if _, ok := store.ItemsIn("desserts"); ok {
		t.Fatal("unknown category should report !ok")
	}
}

type stubSource struct {
	snapshot []Item
	err      error
}

func (s stubSource) Listen(ctx context.Context, venueID string, onSnapshot func([]Item), onError func(error)) {
	if s.err != nil {
		onError(s.err)
		return
	}
	onSnapshot(s.snapshot)
}

func TestSubscribeAppliesDeliveries(t *testing.T) {
	store := NewStore(nil, nil)
	store.Subscribe(context.Background(), "restaurant_1", stubSource{snapshot: testItems()})

	if store.Empty() {
		t.Fatal("subscribe should apply the delivered snapshot")
	}
}
