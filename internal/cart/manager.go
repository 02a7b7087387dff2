package cart

import (
	"sync"

	"github.com/diningtech/tableside/internal/menu"
)

// Line is one product-and-quantity entry of the in-progress order. Name,
// price and image are copied from the catalog at add-time and never re-read,
// so later catalog changes do not alter lines already in the cart.
type Line struct {
	ItemID   string `firestore:"id" json:"id"`
	Name     string `firestore:"name" json:"name"`
	Price    int64  `firestore:"price" json:"price"`
	ImageURL string `firestore:"imageUrl" json:"image_url,omitempty"`
	Quantity int    `firestore:"quantity" json:"quantity"`
}

// ItemFinder resolves catalog items at add-time.
type ItemFinder interface {
	Find(id string) (menu.Item, bool)
}

// ChangeFunc observes every cart mutation with a copy of the current lines.
// Hooks cover the two mandatory side effects of a mutation: persistence
// write-through and a render refresh.
type ChangeFunc func(lines []Line)

// Manager owns the mutable order-in-progress for one table.
type Manager struct {
	mu      sync.Mutex
	lines   []Line
	catalog ItemFinder
	hooks   []ChangeFunc
}

func NewManager(catalog ItemFinder) *Manager {
	return &Manager{catalog: catalog}
}

// OnChange registers a hook invoked after every mutation.
func (m *Manager) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, fn)
	m.mu.Unlock()
}

// AddItem puts one unit of the item into the cart. Unknown or unavailable
// items are silently ignored. An existing line is incremented; there is
// never more than one line per item.
func (m *Manager) AddItem(itemID string) bool {
	item, ok := m.catalog.Find(itemID)
	if !ok {
		return false
	}

	m.mu.Lock()
	if idx := m.indexOf(itemID); idx >= 0 {
		m.lines[idx].Quantity++
	} else {
		m.lines = append(m.lines, Line{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			ImageURL: item.ImageURL,
			Quantity: 1,
		})
	}
	snapshot := m.copyLinesLocked()
	hooks := m.hooks
	m.mu.Unlock()

	notify(hooks, snapshot)
	return true
}

// SetQuantity updates an existing line. Quantities at or below zero remove
// the line; an absent line is a no-op, only AddItem creates lines.
func (m *Manager) SetQuantity(itemID string, quantity int) {
	m.mu.Lock()
	idx := m.indexOf(itemID)
	if idx < 0 && quantity > 0 {
		m.mu.Unlock()
		return
	}
	changed := false
	if idx >= 0 {
		if quantity <= 0 {
			m.lines = append(m.lines[:idx], m.lines[idx+1:]...)
		} else {
			m.lines[idx].Quantity = quantity
		}
		changed = true
	}
	snapshot := m.copyLinesLocked()
	hooks := m.hooks
	m.mu.Unlock()

	if changed {
		notify(hooks, snapshot)
	}
}

// Clear empties the cart, normally after a confirmed submission.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.lines = nil
	hooks := m.hooks
	m.mu.Unlock()

	notify(hooks, nil)
}

// Restore replaces the cart with lines loaded from the snapshot store.
// Lines without a positive quantity are dropped rather than kept invalid.
func (m *Manager) Restore(lines []Line) {
	m.mu.Lock()
	m.lines = nil
	for _, line := range lines {
		if line.Quantity <= 0 || line.ItemID == "" {
			continue
		}
		if m.indexOf(line.ItemID) >= 0 {
			continue
		}
		m.lines = append(m.lines, line)
	}
	snapshot := m.copyLinesLocked()
	hooks := m.hooks
	m.mu.Unlock()

	notify(hooks, snapshot)
}

// Lines returns a copy of the current cart lines.
func (m *Manager) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.copyLinesLocked()
}

// Total recomputes the cart total from the lines on every call.
func (m *Manager) Total() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, line := range m.lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// ItemCount recomputes the number of units across all lines.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, line := range m.lines {
		count += line.Quantity
	}
	return count
}

// Empty reports whether the cart holds no lines.
func (m *Manager) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines) == 0
}

func (m *Manager) indexOf(itemID string) int {
	for i, line := range m.lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (m *Manager) copyLinesLocked() []Line {
	if len(m.lines) == 0 {
		return nil
	}
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

func notify(hooks []ChangeFunc, lines []Line) {
	for _, fn := range hooks {
		fn(lines)
	}
}
