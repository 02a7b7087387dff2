package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/diningtech/tableside/api/responses"
	"github.com/diningtech/tableside/api/validators"
	"github.com/diningtech/tableside/internal/tables"
	pkgerrors "github.com/diningtech/tableside/pkg/errors"
	"github.com/diningtech/tableside/pkg/logger"
)

// ListTables serves the manual table-selection grid.
func ListTables(resolver *tables.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"tables": resolver.Tables(),
			"count":  resolver.TableCount(),
		})
	}
}

type resolveRequest struct {
	// Query is the frontend's raw location query, e.g. "?table=4&lang=en".
	Query string `json:"query,omitempty"`
	// Table is an explicit manual selection; it wins over Query.
	Table int `json:"table,omitempty"`
}

type resolveResponse struct {
	Resolved       bool   `json:"resolved"`
	Table          int    `json:"table,omitempty"`
	CanonicalQuery string `json:"canonical_query,omitempty"`
	Tables         []int  `json:"tables,omitempty"`
}

// SessionResolve derives the table for a visit. An explicit selection is
// validated against the grid; otherwise the location query decides, and an
// unusable query falls back to offering manual selection.
func SessionResolve(resolver *tables.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req resolveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if req.Table > 0 {
			table, err := resolver.Select(req.Table)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			query, parseErr := url.ParseQuery(strings.TrimPrefix(req.Query, "?"))
			if parseErr != nil {
				query = url.Values{}
			}
			responses.WriteSuccess(w, resolveResponse{
				Resolved:       true,
				Table:          table,
				CanonicalQuery: resolver.CanonicalQuery(query, table).Encode(),
			})
			return
		}

		query, err := url.ParseQuery(strings.TrimPrefix(req.Query, "?"))
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed location query"))
			return
		}

		table, ok := resolver.Resolve(query)
		if !ok {
			responses.WriteSuccess(w, resolveResponse{
				Resolved: false,
				Tables:   resolver.Tables(),
			})
			return
		}

		responses.WriteSuccess(w, resolveResponse{
			Resolved:       true,
			Table:          table,
			CanonicalQuery: resolver.CanonicalQuery(query, table).Encode(),
		})
	}
}
