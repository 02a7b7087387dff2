package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diningtech/tableside/api/responses"
	"github.com/diningtech/tableside/api/validators"
	"github.com/diningtech/tableside/internal/sessions"
	"github.com/diningtech/tableside/internal/tables"
	"github.com/diningtech/tableside/pkg/logger"
)

// CartFetch returns the in-progress cart for a table.
func CartFetch(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, s.State())
	}
}

type addItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// CartAddItem puts one unit of a menu item into the table's cart.
func CartAddItem(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := s.Dispatch(ctx, sessions.Command{
			Action: sessions.ActionAddItem,
			ItemID: req.ItemID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartSetQuantity adjusts one cart line. Zero or below removes the line.
func CartSetQuantity(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req setQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := s.Dispatch(ctx, sessions.Command{
			Action:   sessions.ActionSetQuantity,
			ItemID:   chi.URLParam(r, "itemID"),
			Quantity: req.Quantity,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// CartClear discards the in-progress cart without submitting it.
func CartClear(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := s.Dispatch(ctx, sessions.Command{Action: sessions.ActionClearCart})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
