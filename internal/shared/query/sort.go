package query

import "strings"

// Direction is the sort order of a listing.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection accepts desc/descending/-1 (any case) as Descending.
// Everything else, including an empty string, is Ascending.
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending", "-1":
		return Descending
	default:
		return Ascending
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SQL returns the ORDER BY keyword.
func (d Direction) SQL() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// Sort is a typed sort directive. F is a domain enum of sortable fields.
type Sort[F ~string] struct {
	Field     F
	Direction Direction
}

// ParseSort reads "field,direction". The field must be a key of allowed,
// otherwise fallback is returned unchanged. A missing or unknown direction
// means Ascending.
func ParseSort[F ~string](raw string, allowed map[string]F, fallback Sort[F]) Sort[F] {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	name, dir, _ := strings.Cut(raw, ",")
	field, ok := allowed[strings.TrimSpace(name)]
	if !ok {
		return fallback
	}

	return Sort[F]{Field: field, Direction: ParseDirection(dir)}
}
