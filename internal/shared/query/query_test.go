package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testField string

const (
	fieldName      testField = "name"
	fieldCreatedAt testField = "created_at"
)

var testAllowed = map[string]testField{
	"name":      fieldName,
	"createdAt": fieldCreatedAt,
}

var testFallback = Sort[testField]{Field: fieldCreatedAt, Direction: Ascending}

func TestParseSort(t *testing.T) {
	tests := []struct {
		raw  string
		want Sort[testField]
	}{
		{"name,desc", Sort[testField]{fieldName, Descending}},
		{"name,DESC", Sort[testField]{fieldName, Descending}},
		{"name,-1", Sort[testField]{fieldName, Descending}},
		{"name", Sort[testField]{fieldName, Ascending}},
		{"name,asc", Sort[testField]{fieldName, Ascending}},
		{"name,sideways", Sort[testField]{fieldName, Ascending}},
		{" createdAt , descending ", Sort[testField]{fieldCreatedAt, Descending}},
		{"", testFallback},
		{"password,desc", testFallback},
		{"name;DROP TABLE users,desc", testFallback},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSort(tt.raw, testAllowed, testFallback))
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		limit    string
		want     Page
		wantSkip int
	}{
		{"defaults", "", "", Page{1, 10}, 0},
		{"second page", "2", "10", Page{2, 10}, 10},
		{"page only", "3", "", Page{3, 10}, 20},
		{"limit only", "", "25", Page{1, 25}, 0},
		{"malformed page resets both", "abc", "25", Page{1, 10}, 0},
		{"malformed limit resets both", "4", "many", Page{1, 10}, 0},
		{"zero page", "0", "10", Page{1, 10}, 0},
		{"negative limit", "2", "-5", Page{1, 10}, 0},
		{"limit capped", "1", "1000", Page{1, MaxLimit}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePage(tt.page, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSkip, got.Skip())
		})
	}
}

func TestListing_SelectSQL_WithJoinAndFilter(t *testing.T) {
	l := &Listing{
		Table:     "users",
		Columns:   []string{"id", "name"},
		Order:     Order{Column: "name", Direction: Descending},
		Page:      Page{Number: 2, Limit: 10},
		PostCount: &PostCountJoin{OwnerKind: "user"},
	}
	l.Where(Equal("role", "admin"))

	sql, args := l.SelectSQL()

	assert.Equal(t,
		`SELECT t."id", t."name", COALESCE(pc.post_count, 0) AS post_count FROM "users" t`+
			` LEFT JOIN (SELECT owner_id, COUNT(*) AS post_count FROM posts WHERE owner_kind = $1 GROUP BY owner_id) pc ON pc.owner_id = t.id`+
			` WHERE t."role" = $2 ORDER BY t."name" DESC, t."id" DESC LIMIT $3 OFFSET $4`,
		sql)
	assert.Equal(t, []any{"user", "admin", 10, 10}, args)
}

func TestListing_CountSQL_IgnoresPaginationAndJoin(t *testing.T) {
	l := &Listing{
		Table:     "users",
		Columns:   []string{"id", "name"},
		Order:     Order{Column: "name", Direction: Descending},
		Page:      Page{Number: 5, Limit: 20},
		PostCount: &PostCountJoin{OwnerKind: "user"},
	}
	l.Where(Equal("role", "admin"))

	sql, args := l.CountSQL()

	assert.Equal(t, `SELECT COUNT(*) FROM "users" t WHERE t."role" = $1`, sql)
	assert.Equal(t, []any{"admin"}, args)
}

func TestListing_ContainsAndSearch(t *testing.T) {
	l := &Listing{
		Table:   "posts",
		Columns: []string{"id"},
		Page:    DefaultPagination(),
	}
	l.Where(Contains("topics", "ml")).Where(Search("title", "50%_off"))

	sql, args := l.SelectSQL()

	assert.Equal(t,
		`SELECT t."id" FROM "posts" t WHERE $1 = ANY(t."topics") AND t."title" ILIKE $2`+
			` ORDER BY t."created_at" ASC, t."id" ASC LIMIT $3 OFFSET $4`,
		sql)
	assert.Equal(t, []any{"ml", `%50\%\_off%`, 10, 0}, args)

	countSQL, countArgs := l.CountSQL()
	assert.Equal(t, `SELECT COUNT(*) FROM "posts" t WHERE $1 = ANY(t."topics") AND t."title" ILIKE $2`, countSQL)
	assert.Equal(t, []any{"ml", `%50\%\_off%`}, countArgs)
}

func TestListing_WhereSkipsEmptyValues(t *testing.T) {
	l := &Listing{Table: "authors", Columns: []string{"id"}}
	l.Where(Contains("topic", "")).Where(Search("name", "   ")).Where(Equal("role", nil))

	assert.Empty(t, l.Conditions)

	sql, args := l.CountSQL()
	assert.Equal(t, `SELECT COUNT(*) FROM "authors" t`, sql)
	assert.Empty(t, args)
}

func TestListing_ZeroPageUsesDefaults(t *testing.T) {
	l := &Listing{Table: "teams", Columns: []string{"id"}, Order: Order{Column: "id"}}

	sql, args := l.SelectSQL()

	assert.Equal(t, `SELECT t."id" FROM "teams" t ORDER BY t."id" ASC LIMIT $1 OFFSET $2`, sql)
	assert.Equal(t, []any{DefaultLimit, 0}, args)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "DESC", ParseDirection("Descending").SQL())
	assert.Equal(t, "ASC", ParseDirection("").SQL())
	assert.Equal(t, "desc", Descending.String())
	assert.Equal(t, "asc", Ascending.String())
}
