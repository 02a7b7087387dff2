package sessions

import (
	"github.com/diningtech/tableside/internal/cart"
)

// StateView is the read model handed to the renderer after every mutation
// and served to state queries. It is a detached copy; holding it never
// observes later changes.
type StateView struct {
	VenueID         string      `json:"venue_id"`
	Table           int         `json:"table"`
	CartLines       []cart.Line `json:"cart_lines"`
	CartTotal       int64       `json:"cart_total"`
	CartItemCount   int         `json:"cart_item_count"`
	OrdersPlaced    int         `json:"orders_placed"`
	SessionTotal    int64       `json:"session_total"`
	SessionItems    int         `json:"session_items"`
	CurrentCategory string      `json:"current_category,omitempty"`
	MenuAvailable   bool        `json:"menu_available"`
}

// Renderer receives the refreshed view after every state change. The server
// renders nothing itself; implementations push the view to whatever surface
// displays it.
type Renderer interface {
	Render(view StateView)
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(view StateView)

func (f RenderFunc) Render(view StateView) { f(view) }
