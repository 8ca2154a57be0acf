package engine

import (
	"strconv"
	"strings"
)

// Param is one named binding. Workload suites author SQL statements with
// %s placeholder tokens and build their bindings in placeholder order;
// graph dialects reference bindings by name instead.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered list of named bindings. Order is significant for
// the positional SQL dialects: the n-th param binds the n-th %s token.
type Params []Param

// P is a convenience constructor for one binding.
func P(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// Positional returns the bound values in declaration order, the form the
// database/sql drivers expect.
func (p Params) Positional() []any {
	if len(p) == 0 {
		return nil
	}

	values := make([]any, len(p))
	for i, param := range p {
		values[i] = param.Value
	}

	return values
}

// BindVars returns the bindings as a name→value table for the
// named-bind-variable dialects (Cypher, AQL).
func (p Params) BindVars() map[string]any {
	vars := make(map[string]any, len(p))
	for _, param := range p {
		vars[param.Name] = param.Value
	}

	return vars
}

// RewriteQuestionMark rewrites every %s token to ?, the placeholder form
// MySQL and SQLite bind against.
func RewriteQuestionMark(query string) string {
	return strings.ReplaceAll(query, "%s", "?")
}

// RewriteOrdinal rewrites %s tokens to $1..$n, the placeholder form lib/pq
// binds against. The ordinal assignment follows token order, matching the
// positional contract of Params.
func RewriteOrdinal(query string) string {
	var b strings.Builder

	b.Grow(len(query))

	n := 0

	for {
		i := strings.Index(query, "%s")
		if i < 0 {
			b.WriteString(query)
			break
		}

		n++

		b.WriteString(query[:i])
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))

		query = query[i+2:]
	}

	return b.String()
}
