package db

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

// FilterKind defines how a filter parameter is matched against its column.
type FilterKind int

const (
	FilterExact FilterKind = iota // exact equality on a single column
	FilterText                    // case-insensitive substring on a single column
	FilterAny                     // case-insensitive substring across several columns
)

// FilterConfig maps a query parameter to its database representation.
type FilterConfig struct {
	Kind    FilterKind
	Column  string
	Columns []string // used by FilterAny
}

// SearchQuery builds parameterized SQL WHERE clauses from filter parameters.
// It encapsulates the list/filter pattern shared by the domain repositories.
type SearchQuery struct {
	table   string
	cols    string
	where   string
	args    []interface{}
	idx     int
	orderBy string
}

// NewSearchQuery creates a SearchQuery for the given table and column list.
func NewSearchQuery(table, cols string) *SearchQuery {
	return &SearchQuery{table: table, cols: cols, idx: 1}
}

// Add appends a raw WHERE clause fragment (without leading "AND").
func (q *SearchQuery) Add(clause string, args ...interface{}) {
	q.where += " AND " + clause
	q.args = append(q.args, args...)
	q.idx += len(args)
}

// Idx returns the next available parameter index.
func (q *SearchQuery) Idx() int { return q.idx }

// ApplyParam applies a single filter parameter using the config.
func (q *SearchQuery) ApplyParam(config FilterConfig, value string) {
	switch config.Kind {
	case FilterExact:
		q.where += fmt.Sprintf(" AND %s = $%d", config.Column, q.idx)
		q.args = append(q.args, value)
		q.idx++
	case FilterText:
		q.where += fmt.Sprintf(" AND %s ILIKE $%d", config.Column, q.idx)
		q.args = append(q.args, "%"+value+"%")
		q.idx++
	case FilterAny:
		var parts []string
		for _, col := range config.Columns {
			parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, q.idx))
		}
		q.where += " AND (" + strings.Join(parts, " OR ") + ")"
		q.args = append(q.args, "%"+value+"%")
		q.idx++
	}
}

// ApplyParams applies every filter parameter that has a config entry.
func (q *SearchQuery) ApplyParams(params map[string]string, configs map[string]FilterConfig) {
	for name, value := range params {
		if value == "" {
			continue
		}
		if config, ok := configs[name]; ok {
			q.ApplyParam(config, value)
		}
	}
}

// OrderBy sets the ORDER BY clause (without the "ORDER BY" keyword).
func (q *SearchQuery) OrderBy(orderBy string) { q.orderBy = orderBy }

// CountSQL returns the count query SQL.
func (q *SearchQuery) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1%s", q.table, q.where)
}

// CountArgs returns the arguments for the count query.
func (q *SearchQuery) CountArgs() []interface{} { return q.args }

// DataSQL returns the data query SQL with ORDER BY and LIMIT/OFFSET. A limit
// of zero or below means no limit, matching the in-memory repositories.
func (q *SearchQuery) DataSQL(limit, offset int) string {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", q.cols, q.table, q.where)
	if q.orderBy != "" {
		sql += " ORDER BY " + q.orderBy
	}
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", q.idx, q.idx+1)
	} else if offset > 0 {
		sql += fmt.Sprintf(" OFFSET $%d", q.idx)
	}
	return sql
}

// DataArgs returns the arguments for the data query (filter args + limit + offset).
func (q *SearchQuery) DataArgs(limit, offset int) []interface{} {
	result := append([]interface{}{}, q.args...)
	if limit > 0 {
		result = append(result, limit, offset)
	} else if offset > 0 {
		result = append(result, offset)
	}
	return result
}

// ExtractFilters collects filter parameters from the query string, skipping
// pagination controls. Unknown params are included; each repo's ApplyParams
// ignores ones not in its config.
func ExtractFilters(c echo.Context) map[string]string {
	params := map[string]string{}
	for k, v := range c.QueryParams() {
		if len(v) == 0 || k == "limit" || k == "offset" {
			continue
		}
		params[k] = v[0]
	}
	return params
}
