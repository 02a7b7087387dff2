package session

import (
	"sync"

	pkgerrors "github.com/diningtech/tableside/pkg/errors"
)

// Ledger accumulates the orders placed during one table visit. It only ever
// grows until the visit ends and a bill is drawn from it.
type Ledger struct {
	mu     sync.Mutex
	orders []*Order
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends an acknowledged order. No dedup, no reordering.
func (l *Ledger) Record(order *Order) {
	if order == nil {
		return
	}
	l.mu.Lock()
	l.orders = append(l.orders, order)
	l.mu.Unlock()
}

// Orders returns the placed orders in submission order.
func (l *Ledger) Orders() []*Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Subtotal recomputes the sum of order totals from scratch.
func (l *Ledger) Subtotal() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var subtotal int64
	for _, order := range l.orders {
		subtotal += order.Total
	}
	return subtotal
}

// ItemCount returns the units ordered across the whole visit.
func (l *Ledger) ItemCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, order := range l.orders {
		count += order.ItemCount()
	}
	return count
}

// Len returns the number of placed orders.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

// Close derives the visit's bill and empties the ledger. It is rejected when
// nothing was ordered; the caller is responsible for ensuring the in-progress
// cart was submitted or cleared first.
func (l *Ledger) Close(taxPercent int) (Bill, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.orders) == 0 {
		return Bill{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no orders placed in this session")
	}

	var subtotal int64
	for _, order := range l.orders {
		subtotal += order.Total
	}

	bill := ComputeBill(subtotal, taxPercent)
	bill.Orders = l.orders
	l.orders = nil
	return bill, nil
}
