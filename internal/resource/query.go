package resource

import (
	"math"
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// MatchKind is the comparison applied by a FieldMatch.
type MatchKind int

const (
	// MatchContains is a case-insensitive substring match.
	MatchContains MatchKind = iota
	MatchEquals
	MatchGreater
	MatchAtLeast
	MatchAtMost
)

// FieldMatch is one filter condition against a single field.
type FieldMatch struct {
	Field string
	Kind  MatchKind
	Value interface{}
}

// SortSpec orders results by a single field.
type SortSpec struct {
	Field      string
	Descending bool
}

// Query is the store-neutral filter/sort specification handed unchanged to a
// Store's FindMany. TextSearch uses the store's text index; AnyOf conditions
// are OR'd; Match conditions are AND'd (and AND'd with the other two).
type Query struct {
	TextSearch string
	AnyOf      []FieldMatch
	Match      []FieldMatch
	Sort       SortSpec
}

// BuildQuery translates raw list query parameters into a Query for the given
// collection. Pure data transformation; no I/O. Parameters a collection does
// not declare are ignored. Malformed numeric bounds are a client error.
func BuildQuery(s *Schema, params url.Values) (*Query, error) {
	q := &Query{Sort: SortSpec{Field: "createdAt", Descending: true}}

	if term := strings.TrimSpace(params.Get("q")); term != "" {
		switch {
		case len(s.TextFields) > 0:
			q.TextSearch = term
		case len(s.SearchFields) > 0:
			for _, f := range s.SearchFields {
				q.AnyOf = append(q.AnyOf, FieldMatch{Field: f, Kind: MatchContains, Value: term})
			}
		}
	}

	if !s.ListFilters {
		return q, nil
	}

	if category := params.Get("category"); category != "" {
		q.Match = append(q.Match, FieldMatch{Field: "category", Kind: MatchContains, Value: category})
	}

	if v := params.Get("minPrice"); v != "" {
		n, err := toNumber(v)
		if err != nil {
			return nil, validationErrorf("minPrice must be a number")
		}
		q.Match = append(q.Match, FieldMatch{Field: "price", Kind: MatchAtLeast, Value: n})
	}
	if v := params.Get("maxPrice"); v != "" {
		n, err := toNumber(v)
		if err != nil {
			return nil, validationErrorf("maxPrice must be a number")
		}
		q.Match = append(q.Match, FieldMatch{Field: "price", Kind: MatchAtMost, Value: n})
	}

	switch params.Get("inStock") {
	case "true":
		q.Match = append(q.Match, FieldMatch{Field: "stock", Kind: MatchGreater, Value: 0.0})
	case "false":
		q.Match = append(q.Match, FieldMatch{Field: "stock", Kind: MatchEquals, Value: 0.0})
	}

	switch params.Get("sortBy") {
	case "price_asc":
		q.Sort = SortSpec{Field: "price"}
	case "price_desc":
		q.Sort = SortSpec{Field: "price", Descending: true}
	case "name_asc":
		q.Sort = SortSpec{Field: "name"}
	case "name_desc":
		q.Sort = SortSpec{Field: "name", Descending: true}
	case "oldest":
		q.Sort = SortSpec{Field: "createdAt"}
	default:
		// "newest", empty and unrecognized values keep newest-first
	}

	return q, nil
}

// toNumber coerces loosely-typed input to a finite float64. NaN and infinite
// values are rejected so they never reach the store as filter bounds.
func toNumber(v interface{}) (float64, error) {
	n, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, validationErrorf("not a finite number")
	}
	return n, nil
}
