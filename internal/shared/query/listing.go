package query

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// alias is the table alias every generated statement uses.
const alias = "t"

// Op is a filter operator.
type Op int

const (
	// OpEqual matches column = value.
	OpEqual Op = iota
	// OpContains matches rows whose array column contains value.
	OpContains
	// OpSearch is a case-insensitive substring match.
	OpSearch
)

// Condition is a single filter on a column of the listed table.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

func Equal(column string, value any) Condition {
	return Condition{Column: column, Op: OpEqual, Value: value}
}

func Contains(column string, value any) Condition {
	return Condition{Column: column, Op: OpContains, Value: value}
}

func Search(column, term string) Condition {
	return Condition{Column: column, Op: OpSearch, Value: term}
}

// Order is the resolved column and direction to sort by.
type Order struct {
	Column    string
	Direction Direction
}

// PostCountJoin attaches the number of posts each row owns.
type PostCountJoin struct {
	OwnerKind string
}

// Listing is a bounded read plan over one table.
// Columns, Table and Order.Column come from code, never from request input.
type Listing struct {
	Table      string
	Columns    []string
	Conditions []Condition
	Order      Order
	Page       Page
	PostCount  *PostCountJoin
}

// Where appends a condition. Empty string values are ignored so optional
// filters can be added unconditionally.
func (l *Listing) Where(c Condition) *Listing {
	if s, ok := c.Value.(string); ok && strings.TrimSpace(s) == "" {
		return l
	}
	if c.Value == nil {
		return l
	}
	l.Conditions = append(l.Conditions, c)
	return l
}

// SelectSQL renders the paginated statement.
func (l *Listing) SelectSQL() (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(l.Conditions)+3)

	b.WriteString("SELECT ")
	for i, col := range l.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(column(col))
	}
	if l.PostCount != nil {
		b.WriteString(", COALESCE(pc.post_count, 0) AS post_count")
	}

	b.WriteString(" FROM ")
	b.WriteString(pq.QuoteIdentifier(l.Table))
	b.WriteString(" " + alias)

	if l.PostCount != nil {
		args = append(args, l.PostCount.OwnerKind)
		fmt.Fprintf(&b,
			" LEFT JOIN (SELECT owner_id, COUNT(*) AS post_count FROM posts WHERE owner_kind = $%d GROUP BY owner_id) pc ON pc.owner_id = %s.id",
			len(args), alias)
	}

	args = l.writeWhere(&b, args)

	b.WriteString(" ORDER BY ")
	orderCol := l.Order.Column
	if orderCol == "" {
		orderCol = "created_at"
	}
	b.WriteString(column(orderCol) + " " + l.Order.Direction.SQL())
	if orderCol != "id" {
		b.WriteString(", " + column("id") + " " + l.Order.Direction.SQL())
	}

	page := l.Page
	if page.Limit < 1 {
		page = DefaultPagination()
	}
	args = append(args, page.Limit, page.Skip())
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}

// CountSQL renders the total for the same filters, ignoring order and page.
func (l *Listing) CountSQL() (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(l.Conditions))

	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(pq.QuoteIdentifier(l.Table))
	b.WriteString(" " + alias)

	args = l.writeWhere(&b, args)
	return b.String(), args
}

func (l *Listing) writeWhere(b *strings.Builder, args []any) []any {
	for i, c := range l.Conditions {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}

		switch c.Op {
		case OpContains:
			args = append(args, c.Value)
			fmt.Fprintf(b, "$%d = ANY(%s)", len(args), column(c.Column))
		case OpSearch:
			args = append(args, "%"+escapeLike(fmt.Sprint(c.Value))+"%")
			fmt.Fprintf(b, "%s ILIKE $%d", column(c.Column), len(args))
		default:
			args = append(args, c.Value)
			fmt.Fprintf(b, "%s = $%d", column(c.Column), len(args))
		}
	}
	return args
}

func column(name string) string {
	return alias + "." + pq.QuoteIdentifier(name)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(strings.TrimSpace(s))
}
