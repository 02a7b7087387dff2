package sessions

import (
	"context"
	"fmt"

	"github.com/diningtech/tableside/internal/gateway"
	pkgerrors "github.com/diningtech/tableside/pkg/errors"
)

// Command is one diner action aimed at a session. Action selects the
// handler; the remaining fields are read per action.
type Command struct {
	Action   string              `json:"action" validate:"required"`
	ItemID   string              `json:"item_id,omitempty"`
	Quantity int                 `json:"quantity,omitempty"`
	Category string              `json:"category,omitempty"`
	Kind     gateway.RequestKind `json:"kind,omitempty"`
}

const (
	ActionAddItem        = "add_item"
	ActionSetQuantity    = "set_quantity"
	ActionClearCart      = "clear_cart"
	ActionSelectCategory = "select_category"
	ActionPlaceOrder     = "place_order"
	ActionRequestService = "request_service"
	ActionEndSession     = "end_session"
)

type handlerFunc func(ctx context.Context, s *Session, cmd Command) (any, error)

var handlers = map[string]handlerFunc{
	ActionAddItem: func(ctx context.Context, s *Session, cmd Command) (any, error) {
		if cmd.ItemID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id required")
		}
		if err := s.AddItem(cmd.ItemID); err != nil {
			return nil, err
		}
		return s.State(), nil
	},
	ActionSetQuantity: func(ctx context.Context, s *Session, cmd Command) (any, error) {
		if cmd.ItemID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id required")
		}
		s.SetQuantity(cmd.ItemID, cmd.Quantity)
		return s.State(), nil
	},
	ActionClearCart: func(ctx context.Context, s *Session, cmd Command) (any, error) {
		s.ClearCart()
		return s.State(), nil
	},
	ActionSelectCategory: func(ctx context.Context, s *Session, cmd Command) (any, error) {
		if err := s.SelectCategory(cmd.Category); err != nil {
			return nil, err
		}
		return s.State(), nil
	},
	ActionPlaceOrder: func(ctx context.Context, s *Session, cmd Command) (any, error) {
		return s.PlaceOrder(ctx)
	},
	ActionRequestService: func(ctx context.Context, s *Session, cmd Command) (any, error) {
		if err := s.RequestService(ctx, cmd.Kind); err != nil {
			return nil, err
		}
		return s.State(), nil
	},
	ActionEndSession: func(ctx context.Context, s *Session, cmd Command) (any, error) {
		return s.EndSession(ctx)
	},
}

// Dispatch routes a command to its handler.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (any, error) {
	handler, ok := handlers[cmd.Action]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action %q", cmd.Action))
	}
	return handler(ctx, s, cmd)
}
