package repository

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates WHERE clauses with positional arguments. Each %s in
// a clause format is replaced by the next $n placeholder.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func newWhereBuilder() *whereBuilder {
	return &whereBuilder{}
}

func (b *whereBuilder) add(format string, args ...interface{}) {
	placeholders := make([]interface{}, len(args))
	for i, arg := range args {
		b.args = append(b.args, arg)
		placeholders[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.clauses = append(b.clauses, fmt.Sprintf(format, placeholders...))
}

func (b *whereBuilder) where() string {
	if len(b.clauses) == 0 {
		return "TRUE"
	}
	return strings.Join(b.clauses, " AND ")
}

// sortColumn maps a client-supplied sortBy value to a whitelisted column.
func sortColumn(allowed map[string]string, key, fallback string) string {
	if col, ok := allowed[key]; ok {
		return col
	}
	return fallback
}

func sortDirection(order string) string {
	if order == "asc" {
		return "ASC"
	}
	return "DESC"
}
