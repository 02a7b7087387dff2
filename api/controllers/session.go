package controllers

import (
	"net/http"
	"strconv"

	"github.com/diningtech/tableside/api/responses"
	"github.com/diningtech/tableside/api/validators"
	"github.com/diningtech/tableside/internal/sessions"
	"github.com/diningtech/tableside/internal/tables"
	pkgerrors "github.com/diningtech/tableside/pkg/errors"
	"github.com/diningtech/tableside/pkg/logger"
)

// tableFromRequest reads and validates the ?table= parameter every
// session-scoped route carries.
func tableFromRequest(r *http.Request, resolver *tables.Resolver) (int, error) {
	raw := r.URL.Query().Get(tables.QueryParam)
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "table not selected")
	}
	table, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "table must be a number")
	}
	return resolver.Select(table)
}

func sessionFromRequest(r *http.Request, reg *sessions.Registry, resolver *tables.Resolver) (*sessions.Session, error) {
	table, err := tableFromRequest(r, resolver)
	if err != nil {
		return nil, err
	}
	return reg.Get(r.Context(), table)
}

// SessionState returns the current view of a table's session.
func SessionState(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
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

type selectCategoryRequest struct {
	Category string `json:"category"`
}

// SessionSelectCategory moves the diner's menu position for a table.
func SessionSelectCategory(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req selectCategoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := s.Dispatch(ctx, sessions.Command{
			Action:   sessions.ActionSelectCategory,
			Category: req.Category,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// SessionEnd closes the visit and returns the final bill.
func SessionEnd(reg *sessions.Registry, resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r, reg, resolver)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := s.Dispatch(ctx, sessions.Command{Action: sessions.ActionEndSession})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
