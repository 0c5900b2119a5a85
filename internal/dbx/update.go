package dbx

import (
	"fmt"
	"slices"
	"strings"
)

// SetClause renders "a = $n, b = $n+1, ..." for the columns of values in
// sorted order, numbering Postgres placeholders from first. The returned
// args follow the same order.
func SetClause(values map[string]any, first int) (string, []any) {
	cols := make([]string, 0, len(values))
	for c := range values {
		cols = append(cols, c)
	}
	slices.Sort(cols)

	parts := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, c := range cols {
		parts = append(parts, fmt.Sprintf("%s = $%d", c, first+i))
		args = append(args, values[c])
	}
	return strings.Join(parts, ", "), args
}
