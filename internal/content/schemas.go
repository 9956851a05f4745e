// Package content declares the four document collections the API serves.
// Each descriptor mirrors its storage schema: field list, required subset,
// identifier and update semantics, search and filter support.
package content

import (
	"github.com/deenhub/deenhub-backend/internal/resource"
)

func f64(v float64) *float64 { return &v }

// Quotes is the inspirational quotes collection, keyed by a caller-assigned
// id and searched by substring across its three text fields.
func Quotes() *resource.Schema {
	return &resource.Schema{
		Collection: "inspires",
		Singular:   "quote",
		Plural:     "inspire",
		Label:      "Quote",
		ListLabel:  "Inspiring quotes",
		EmptyLabel: "quotes",
		CreatedMsg: "Inspiring quote added successfully",
		IDField:    "id",
		Fields: []resource.Field{
			{Name: "id", Required: true},
			{Name: "text", Required: true, MaxLen: 1000},
			{Name: "author", Required: true, MaxLen: 200},
			{Name: "source", Required: true, MaxLen: 200},
		},
		UpdateMode:   resource.UpdateAllowList,
		AllowList:    []string{"text", "author", "source"},
		SearchFields: []string{"text", "author", "source"},
	}
}

// Prophets is the prophet biography collection.
func Prophets() *resource.Schema {
	return biographySchema("prophets", "prophet", "prophets", "Prophet", "Prophets")
}

// Sahabas is the companion biography collection; it shares the prophet
// record shape.
func Sahabas() *resource.Schema {
	return biographySchema("sahabas", "sahaba", "sahabas", "Sahaba", "Sahabas")
}

func biographySchema(collection, singular, plural, label, listLabel string) *resource.Schema {
	return &resource.Schema{
		Collection: collection,
		Singular:   singular,
		Plural:     plural,
		Label:      label,
		ListLabel:  listLabel,
		EmptyLabel: plural,
		CreatedMsg: label + " added successfully",
		IDField:    "id",
		Fields: []resource.Field{
			{Name: "id", Required: true},
			{Name: "personName", Required: true, MaxLen: 100},
			{Name: "name", Required: true, MaxLen: 100},
			{Name: "title", Required: true, MaxLen: 200},
			{Name: "chapter", Required: true, MaxLen: 100},
			{Name: "shortDescription", Required: true, MaxLen: 500},
			{Name: "date", Required: true, MaxLen: 50},
			{Name: "ayahAbove", Required: true, MaxLen: 1000},
			{Name: "ayahAboveSource", Required: true, MaxLen: 100},
			{Name: "ayahBelow", Required: true, MaxLen: 1000},
			{Name: "ayahBelowSource", Required: true, MaxLen: 100},
			{Name: "content", Required: true, MaxLen: 5000},
			{Name: "image", Required: true},
		},
		UpdateMode: resource.UpdateOpen,
	}
}

// Products is the catalog collection: store-native ids, a compound text index
// for search, and the full category/price/stock/sort filter set.
func Products() *resource.Schema {
	return &resource.Schema{
		Collection: "products",
		Singular:   "product",
		Plural:     "products",
		Label:      "Product",
		ListLabel:  "Products",
		EmptyLabel: "products",
		CreatedMsg: "Product added successfully",
		Fields: []resource.Field{
			{Name: "title", Required: true, MaxLen: 200},
			{Name: "description", Required: true},
			{Name: "name", Required: true, MaxLen: 100},
			{Name: "image", Required: true},
			{Name: "stock", Required: true, Numeric: true, Min: f64(0)},
			{Name: "category", Required: true, MaxLen: 100},
			{Name: "price", Required: true, Numeric: true, Min: f64(0)},
			{Name: "discount", Numeric: true, Min: f64(0), Max: f64(100), Default: 0.0},
		},
		UpdateMode:  resource.UpdateAllowList,
		AllowList:   []string{"title", "description", "name", "image", "stock", "category", "price", "discount"},
		TextFields:  []string{"title", "description", "name", "category"},
		ListFilters: true,
	}
}

// All returns the schemas in route-registration order.
func All() []*resource.Schema {
	return []*resource.Schema{Quotes(), Prophets(), Sahabas(), Products()}
}
