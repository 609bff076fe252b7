package db

import (
	"fmt"
	"sort"
	"strings"
)

// Update holds the column assignments of a partial, tenant-scoped UPDATE.
// Column names must come from code, never from request input.
type Update struct {
	table string
	sets  []string
	args  []any
}

// NewUpdateFrom starts an UPDATE assigning every column of updates, in
// column name order.
func NewUpdateFrom(table string, updates map[string]any) *Update {
	columns := make([]string, 0, len(updates))
	for col := range updates {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	u := &Update{table: table}
	for _, col := range columns {
		u.args = append(u.args, updates[col])
		u.sets = append(u.sets, fmt.Sprintf("%s = $%d", col, len(u.args)))
	}
	return u
}

// Scoped renders the statement restricted to one row of one tenant.
func (u *Update) Scoped(id, tenantID string) (string, []any) {
	args := append(append([]any{}, u.args...), id, tenantID)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND user_id = $%d",
		u.table, strings.Join(u.sets, ", "), len(u.args)+1, len(u.args)+2)
	return query, args
}
