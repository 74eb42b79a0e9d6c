package postgres

import (
	"strconv"
	"strings"

	"jobly/internal/common"
)

// Assignment is one field of a partial update, named by its external field name.
type Assignment struct {
	Field string
	Value any
}

// PartialUpdate is the SET clause of an UPDATE statement together with the
// values bound to its placeholders.
type PartialUpdate struct {
	Fragments []string
	Values    []any
}

// SetClause joins the fragments for use after SET.
func (p PartialUpdate) SetClause() string {
	return strings.Join(p.Fragments, ", ")
}

// NextPlaceholder is the first placeholder index free for the WHERE clause.
func (p PartialUpdate) NextPlaceholder() int {
	return len(p.Values) + 1
}

// BuildPartialUpdate renders fields as `<column>=$n` in the order given.
// Fields missing from columns keep their own name. Values are bound as is.
func BuildPartialUpdate(fields []Assignment, columns map[string]string) (PartialUpdate, error) {
	if len(fields) == 0 {
		return PartialUpdate{}, common.NewError(common.CodeValidation, "no data", nil)
	}
	update := PartialUpdate{
		Fragments: make([]string, 0, len(fields)),
		Values:    make([]any, 0, len(fields)),
	}
	for i, field := range fields {
		column, ok := columns[field.Field]
		if !ok {
			column = field.Field
		}
		update.Fragments = append(update.Fragments, column+"=$"+strconv.Itoa(i+1))
		update.Values = append(update.Values, field.Value)
	}
	return update, nil
}

// whereClause collects AND-ed predicates with sequential placeholders.
type whereClause struct {
	predicates []string
	values     []any
}

// add appends a predicate; format holds a single %s replaced by the placeholder.
func (w *whereClause) add(format string, value any) {
	w.values = append(w.values, value)
	placeholder := "$" + strconv.Itoa(len(w.values))
	w.predicates = append(w.predicates, strings.Replace(format, "%s", placeholder, 1))
}

func (w *whereClause) empty() bool {
	return len(w.predicates) == 0
}

func (w *whereClause) String() string {
	return strings.Join(w.predicates, " AND ")
}
