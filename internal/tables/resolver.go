package tables

import (
	"fmt"
	"net/url"
	"strconv"

	pkgerrors "github.com/diningtech/tableside/pkg/errors"
)

// QueryParam is the location query parameter carrying the table number.
const QueryParam = "table"

const defaultTableCount = 20

// Resolver derives the active table from the page's location query. Invalid
// or missing input is never an error; it degrades to manual selection.
type Resolver struct {
	tableCount int
}

func NewResolver(tableCount int) *Resolver {
	if tableCount <= 0 {
		tableCount = defaultTableCount
	}
	return &Resolver{tableCount: tableCount}
}

// TableCount returns the number of selectable tables.
func (r *Resolver) TableCount() int {
	return r.tableCount
}

// Tables lists the selectable table numbers for the manual-selection grid.
func (r *Resolver) Tables() []int {
	tables := make([]int, r.tableCount)
	for i := range tables {
		tables[i] = i + 1
	}
	return tables
}

// Resolve reads the table parameter from a location query. It reports false
// when the parameter is absent or does not parse as a positive integer,
// which routes the diner to manual selection.
func (r *Resolver) Resolve(query url.Values) (int, bool) {
	raw := query.Get(QueryParam)
	if raw == "" {
		return 0, false
	}
	table, err := strconv.Atoi(raw)
	if err != nil || table <= 0 {
		return 0, false
	}
	return table, true
}

// Select validates a manually chosen table number against the venue's grid.
func (r *Resolver) Select(table int) (int, error) {
	if table < 1 || table > r.tableCount {
		return 0, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("table must be between 1 and %d", r.tableCount))
	}
	return table, nil
}

// CanonicalQuery reflects the selected table back into the location query so
// the resolved state survives navigation and reload. The original query is
// not mutated.
func (r *Resolver) CanonicalQuery(query url.Values, table int) url.Values {
	canonical := url.Values{}
	for key, values := range query {
		canonical[key] = append([]string(nil), values...)
	}
	canonical.Set(QueryParam, strconv.Itoa(table))
	return canonical
}
