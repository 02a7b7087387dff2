package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diningtech/tableside/internal/cart"
	"github.com/diningtech/tableside/internal/cartstore"
	"github.com/diningtech/tableside/internal/gateway"
	"github.com/diningtech/tableside/internal/menu"
	"github.com/diningtech/tableside/internal/session"
	pkgerrors "github.com/diningtech/tableside/pkg/errors"
	"github.com/diningtech/tableside/pkg/logger"
)

// Deps carries the shared collaborators every table session is built from.
type Deps struct {
	VenueID      string
	TaxPercent   int
	RestoreGrace time.Duration

	Catalog  *menu.Store
	Bridge   *cartstore.Bridge
	Gateway  gateway.Service
	Renderer Renderer
	Logger   *logger.Logger
}

func (d Deps) validate() error {
	if d.VenueID == "" {
		return fmt.Errorf("venue id required")
	}
	if d.Catalog == nil {
		return fmt.Errorf("menu store required")
	}
	if d.Bridge == nil {
		return fmt.Errorf("cart bridge required")
	}
	if d.Gateway == nil {
		return fmt.Errorf("order gateway required")
	}
	return nil
}

// Session is the live ordering state of one table: the in-progress cart,
// the ledger of placed orders and the diner's current menu position.
type Session struct {
	venueID      string
	table        int
	taxPercent   int
	restoreGrace time.Duration

	catalog *menu.Store
	cart    *cart.Manager
	ledger  *session.Ledger
	bridge  *cartstore.Bridge
	gateway gateway.Service

	renderer Renderer
	logg     *logger.Logger

	mu              sync.Mutex
	currentCategory string
	placing         bool
}

// NewSession builds the session for one table and wires the cart change
// hook that writes through to the snapshot store and refreshes the view.
func NewSession(table int, deps Deps) (*Session, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if table < 1 {
		return nil, fmt.Errorf("table must be positive, got %d", table)
	}

	s := &Session{
		venueID:      deps.VenueID,
		table:        table,
		taxPercent:   deps.TaxPercent,
		restoreGrace: deps.RestoreGrace,
		catalog:      deps.Catalog,
		cart:         cart.NewManager(deps.Catalog),
		ledger:       session.NewLedger(),
		bridge:       deps.Bridge,
		gateway:      deps.Gateway,
		renderer:     deps.Renderer,
		logg:         deps.Logger,
	}

	s.cart.OnChange(func(lines []cart.Line) {
		ctx := context.Background()
		if len(lines) == 0 {
			if err := s.bridge.Clear(ctx, s.venueID, s.table); err != nil && s.logg != nil {
				s.logg.Warn(s.logg.WithTable(s.logg.WithVenue(ctx, s.venueID), s.table),
					"cart snapshot clear failed")
			}
		} else {
			if err := s.bridge.Save(ctx, s.venueID, s.table, lines); err != nil && s.logg != nil {
				s.logg.Warn(s.logg.WithTable(s.logg.WithVenue(ctx, s.venueID), s.table),
					"cart snapshot save failed")
			}
		}
		s.render()
	})

	return s, nil
}

// Table returns the table number this session serves.
func (s *Session) Table() int { return s.table }

// Restore loads the persisted cart snapshot for this table. With a positive
// grace the load is deferred, letting the first live menu snapshot arrive so
// restored lines render against a populated catalog.
func (s *Session) Restore(ctx context.Context) {
	grace := s.restoreGrace
	if grace <= 0 {
		s.restoreNow(ctx)
		return
	}
	time.AfterFunc(grace, func() {
		s.restoreNow(context.Background())
	})
}

func (s *Session) restoreNow(ctx context.Context) {
	lines := s.bridge.Load(ctx, s.venueID, s.table)
	s.cart.Restore(lines)
}

// AddItem puts one unit of a catalog item into the cart.
func (s *Session) AddItem(itemID string) error {
	if !s.cart.AddItem(itemID) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("menu item %q is not available", itemID))
	}
	return nil
}

// SetQuantity adjusts an existing cart line; zero or below removes it.
func (s *Session) SetQuantity(itemID string, quantity int) {
	s.cart.SetQuantity(itemID, quantity)
}

// ClearCart discards the in-progress order without submitting it.
func (s *Session) ClearCart() {
	s.cart.Clear()
}

// SelectCategory moves the diner's menu position. An empty name returns to
// the all-categories view; unknown categories are rejected.
func (s *Session) SelectCategory(name string) error {
	if name != "" {
		if _, ok := s.catalog.ItemsIn(name); !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("unknown category %q", name))
		}
	}
	s.mu.Lock()
	s.currentCategory = name
	s.mu.Unlock()

	s.render()
	return nil
}

// PlaceOrder submits the cart as one order. Only an acknowledged write
// mutates local state: the ledger gains exactly one order and the cart is
// cleared. A failed write leaves cart and ledger untouched so the diner can
// retry. A second submission while one is in flight is rejected.
func (s *Session) PlaceOrder(ctx context.Context) (*session.Order, error) {
	s.mu.Lock()
	if s.placing {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order submission already in progress")
	}
	lines := s.cart.Lines()
	if len(lines) == 0 {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	s.placing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.placing = false
		s.mu.Unlock()
	}()

	order := session.NewOrder(s.venueID, s.table, lines)
	if err := s.gateway.SubmitOrder(ctx, order); err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithTable(s.logg.WithVenue(ctx, s.venueID), s.table),
				"order submission failed", err)
		}
		return nil, err
	}

	s.ledger.Record(order)
	s.cart.Clear()

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"venue_id": s.venueID,
			"table":    s.table,
			"order_id": order.ID,
			"total":    order.Total,
		}), "order placed")
	}
	return order, nil
}

// RequestService raises a water, waiter or bill call for this table.
func (s *Session) RequestService(ctx context.Context, kind gateway.RequestKind) error {
	return s.gateway.RequestService(ctx, s.table, kind)
}

// Orders returns the orders placed so far this visit.
func (s *Session) Orders() []*session.Order {
	return s.ledger.Orders()
}

// EndSession closes the visit and returns the final bill. The in-progress
// cart must be submitted or cleared first; afterwards the session starts
// over empty for the next diner at the table.
func (s *Session) EndSession(ctx context.Context) (session.Bill, error) {
	if !s.cart.Empty() {
		return session.Bill{}, pkgerrors.New(pkgerrors.CodeStateConflict,
			"place or clear the current order first")
	}

	bill, err := s.ledger.Close(s.taxPercent)
	if err != nil {
		return session.Bill{}, err
	}

	s.mu.Lock()
	s.currentCategory = ""
	s.mu.Unlock()

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"venue_id": s.venueID,
			"table":    s.table,
			"subtotal": bill.Subtotal,
			"total":    bill.Total,
		}), "session closed")
	}

	s.render()
	return bill, nil
}

// State assembles the current view of this session.
func (s *Session) State() StateView {
	s.mu.Lock()
	category := s.currentCategory
	s.mu.Unlock()

	return StateView{
		VenueID:         s.venueID,
		Table:           s.table,
		CartLines:       s.cart.Lines(),
		CartTotal:       s.cart.Total(),
		CartItemCount:   s.cart.ItemCount(),
		OrdersPlaced:    s.ledger.Len(),
		SessionTotal:    s.ledger.Subtotal() + s.cart.Total(),
		SessionItems:    s.ledger.ItemCount() + s.cart.ItemCount(),
		CurrentCategory: category,
		MenuAvailable:   !s.catalog.Degraded() && !s.catalog.Empty(),
	}
}

func (s *Session) render() {
	if s.renderer == nil {
		return
	}
	s.renderer.Render(s.State())
}
