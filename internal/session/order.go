package session

import (
	"time"

	"github.com/diningtech/tableside/internal/cart"
	"github.com/google/uuid"
)

// StatusPending is the status every order carries at submission time; the
// kitchen moves it forward remotely.
const StatusPending = "pending"

// Order is an immutable snapshot taken at submission time. Lines are copied
// from the cart, the total is computed once, and nothing mutates afterwards.
// The timestamp field is overwritten with the server-observed time on write.
type Order struct {
	ID           string      `firestore:"-" json:"id"`
	TableNumber  int         `firestore:"tableNumber" json:"table_number"`
	Items        []cart.Line `firestore:"items" json:"items"`
	Total        int64       `firestore:"total" json:"total"`
	Status       string      `firestore:"status" json:"status"`
	Timestamp    time.Time   `firestore:"timestamp,serverTimestamp" json:"timestamp"`
	RestaurantID string      `firestore:"restaurantId" json:"restaurant_id"`
}

// NewOrder snapshots the given cart lines into a pending order.
func NewOrder(restaurantID string, tableNumber int, lines []cart.Line) *Order {
	items := make([]cart.Line, len(lines))
	copy(items, lines)

	var total int64
	for _, line := range items {
		total += line.Price * int64(line.Quantity)
	}

	return &Order{
		ID:           uuid.NewString(),
		TableNumber:  tableNumber,
		Items:        items,
		Total:        total,
		Status:       StatusPending,
		Timestamp:    time.Now().UTC(),
		RestaurantID: restaurantID,
	}
}

// ItemCount returns the number of units across the order's lines.
func (o *Order) ItemCount() int {
	count := 0
	for _, line := range o.Items {
		count += line.Quantity
	}
	return count
}
