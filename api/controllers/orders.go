package controllers

import (
	"net/http"

	"github.com/diningtech/tableside/api/responses"
	"github.com/diningtech/tableside/api/validators"
	"github.com/diningtech/tableside/internal/gateway"
	"github.com/diningtech/tableside/internal/sessions"
	"github.com/diningtech/tableside/internal/tables"
	"github.com/diningtech/tableside/pkg/logger"
)

// OrderPlace submits the table's cart as one order. The cart only empties
// when the remote write is acknowledged.
func OrderPlace(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := s.Dispatch(ctx, sessions.Command{Action: sessions.ActionPlaceOrder})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}

// OrderList returns the orders placed during the current visit.
func OrderList(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"orders": s.Orders(),
		})
	}
}

type serviceRequestBody struct {
	Type string `json:"type" validate:"required,oneof=water waiter bill"`
}

// ServiceRequestCreate raises a water, waiter or bill call for the table.
func ServiceRequestCreate(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req serviceRequestBody
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := s.Dispatch(ctx, sessions.Command{
			Action: sessions.ActionRequestService,
			Kind:   gateway.RequestKind(req.Type),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}
