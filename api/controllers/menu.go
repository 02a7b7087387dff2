package controllers

import (
	"net/http"
	"strings"

	"github.com/diningtech/tableside/api/responses"
	"github.com/diningtech/tableside/internal/menu"
	pkgerrors "github.com/diningtech/tableside/pkg/errors"
	"github.com/diningtech/tableside/pkg/logger"
)

const minSearchLength = 2

// MenuFetch serves the mirrored menu. Plain fetches return every category
// in first-observation order; ?category= narrows to one and ?q= searches
// names and descriptions.
func MenuFetch(catalog *menu.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if catalog.Degraded() {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "menu is temporarily unavailable"))
			return
		}

		if term := strings.TrimSpace(r.URL.Query().Get("q")); term != "" {
			if len(term) < minSearchLength {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation,
					"search term must be at least 2 characters"))
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"query": term,
				"items": catalog.Search(term),
			})
			return
		}

		if category := r.URL.Query().Get("category"); category != "" {
			items, ok := catalog.ItemsIn(category)
			if !ok {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeNotFound, "unknown category"))
				return
			}
			responses.WriteSuccess(w, menu.CategoryItems{
				Category: category,
				PrepTime: menu.EstimatedPrepTime(category),
				Items:    items,
			})
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"categories": catalog.Categories(),
			"menu":       catalog.Grouped(),
		})
	}
}
