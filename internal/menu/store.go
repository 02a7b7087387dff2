package menu

import (
	"context"
	"sync"

	"github.com/diningtech/tableside/pkg/logger"
	"github.com/diningtech/tableside/pkg/metrics"
)

// Source delivers full catalog snapshots pushed by the remote menu store.
// Listen runs for the life of ctx; there is no explicit teardown beyond
// cancelling it.
type Source interface {
	Listen(ctx context.Context, venueID string, onSnapshot func([]Item), onError func(error))
}

// Store mirrors the remote menu into memory. Every snapshot replaces the
// grouped structure wholesale; nothing is merged incrementally.
type Store struct {
	mu       sync.RWMutex
	catalog  *catalog
	degraded bool

	logg  *logger.Logger
	stats *metrics.Metrics
}

func NewStore(logg *logger.Logger, stats *metrics.Metrics) *Store {
	return &Store{
		catalog: newCatalog(),
		logg:    logg,
		stats:   stats,
	}
}

// Subscribe wires the store to a snapshot source for the given venue.
func (s *Store) Subscribe(ctx context.Context, venueID string, src Source) {
	src.Listen(ctx, venueID,
		func(items []Item) {
			s.ApplySnapshot(items)
			if s.logg != nil {
				s.logg.Info(s.logg.WithFields(ctx, map[string]any{
					"venue_id": venueID,
					"items":    len(items),
				}), "menu snapshot applied")
			}
		},
		func(err error) {
			s.MarkUnavailable()
			if s.logg != nil {
				s.logg.Error(s.logg.WithVenue(ctx, venueID), "menu subscription failed", err)
			}
		},
	)
}

// ApplySnapshot rebuilds the grouped catalog from scratch, keeping only
// available items. Unavailable items disappear from browsing, search and
// cart-add alike.
func (s *Store) ApplySnapshot(items []Item) {
	next := newCatalog()
	for _, item := range items {
		if !item.Available {
			continue
		}
		next.add(item)
	}

	s.mu.Lock()
	s.catalog = next
	s.degraded = false
	s.mu.Unlock()

	s.stats.ObserveSnapshot(true)
}

// MarkUnavailable clears the catalog and flags it degraded. Stale contents
// must not survive a subscription error; a later good snapshot recovers.
func (s *Store) MarkUnavailable() {
	s.mu.Lock()
	s.catalog = newCatalog()
	s.degraded = true
	s.mu.Unlock()

	s.stats.ObserveSnapshot(false)
}

// Degraded reports whether the last subscription event was an error.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Empty reports whether the catalog currently holds no available items.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.isEmpty()
}

// Find returns an available item by its identifier.
func (s *Store) Find(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.find(id)
}

// CategorySummary describes one category tab.
type CategorySummary struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	PrepTime string `json:"prep_time"`
}

// Categories lists category summaries in first-observation order.
func (s *Store) Categories() []CategorySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]CategorySummary, 0, len(s.catalog.order))
	for _, name := range s.catalog.order {
		summaries = append(summaries, CategorySummary{
			Name:     name,
			Count:    len(s.catalog.groups[name]),
			PrepTime: EstimatedPrepTime(name),
		})
	}
	return summaries
}

// CategoryItems is one grouped section of the menu.
type CategoryItems struct {
	Category string `json:"category"`
	PrepTime string `json:"prep_time"`
	Items    []Item `json:"items"`
}

// Grouped returns the full menu grouped by category, in category order.
func (s *Store) Grouped() []CategoryItems {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]CategoryItems, 0, len(s.catalog.order))
	for _, name := range s.catalog.order {
		items := make([]Item, len(s.catalog.groups[name]))
		copy(items, s.catalog.groups[name])
		groups = append(groups, CategoryItems{
			Category: name,
			PrepTime: EstimatedPrepTime(name),
			Items:    items,
		})
	}
	return groups
}

// ItemsIn returns the items of a single category.
func (s *Store) ItemsIn(category string) ([]Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.catalog.groups[category]
	if !ok {
		return nil, false
	}
	items := make([]Item, len(group))
	copy(items, group)
	return items, true
}

// Search matches the term case-insensitively against item names and
// descriptions across all categories.
func (s *Store) Search(term string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.search(term)
}
