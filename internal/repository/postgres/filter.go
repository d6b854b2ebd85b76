package postgres

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func newWhere(cond string, arg any) *whereBuilder {
	w := &whereBuilder{}
	return w.and(cond, arg)
}

// and appends cond with arg bound to the next placeholder. Every "?" in
// cond refers to the same argument.
func (w *whereBuilder) and(cond string, arg any) *whereBuilder {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
	return w
}

func (w *whereBuilder) String() string {
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// page returns LIMIT/OFFSET placeholders and the full argument list.
func (w *whereBuilder) page(limit, offset int) (string, []any) {
	n := len(w.args)
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}
