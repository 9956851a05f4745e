package resource

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
)

// UpdateMode selects how PUT payloads are merged into existing documents.
type UpdateMode int

const (
	// UpdateAllowList copies only fields named in Schema.AllowList.
	UpdateAllowList UpdateMode = iota
	// UpdateOpen copies every declared field except the business identifier.
	UpdateOpen
)

// Field describes one attribute of a collection's documents.
type Field struct {
	Name     string
	Required bool
	Numeric  bool
	MaxLen   int // rune length cap for string fields; 0 = unlimited
	Min      *float64
	Max      *float64
	Default  interface{} // applied on create when the field is absent
}

// Schema is the declarative descriptor a Handler, a Store and the query/merge
// engine are parameterized by. One instance exists per collection.
type Schema struct {
	Collection string // store collection name

	Singular string // envelope key for a single document, e.g. "quote"
	Plural   string // route segment and list envelope key, e.g. "inspire"

	Label      string // display name in messages, e.g. "Quote"
	ListLabel  string // list success message subject, e.g. "Inspiring quotes"
	EmptyLabel string // empty list message subject, e.g. "quotes"
	CreatedMsg string // full create success message

	// IDField names the caller-assigned business identifier; empty means the
	// collection is keyed by the store-native id.
	IDField string

	Fields     []Field
	UpdateMode UpdateMode
	AllowList  []string

	// SearchFields expands the q parameter to an OR of case-insensitive
	// substring matches. TextFields instead routes q to the store's text
	// index (and defines that index). The two are mutually exclusive.
	SearchFields []string
	TextFields   []string

	// ListFilters enables the category/minPrice/maxPrice/inStock/sortBy
	// query parameters for this collection.
	ListFilters bool
}

// KeyField is the field list/get/update/delete operations key on.
func (s *Schema) KeyField() string {
	if s.IDField != "" {
		return s.IDField
	}
	return "_id"
}

func (s *Schema) field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

func (s *Schema) requiredNames() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// NewDocument builds the field-set to insert for a create payload: required
// fields must be present and non-empty, numeric fields are coerced, defaults
// are applied, and field constraints are checked.
func (s *Schema) NewDocument(payload map[string]interface{}) (Document, error) {
	doc := Document{}
	missing := false
	for _, f := range s.Fields {
		v, ok := payload[f.Name]
		if !ok || v == nil {
			if f.Required {
				missing = true
				continue
			}
			if f.Default != nil {
				doc[f.Name] = f.Default
			}
			continue
		}
		if f.Numeric {
			n, err := toNumber(v)
			if err != nil {
				return nil, validationErrorf("Field %s must be a number", f.Name)
			}
			doc[f.Name] = n
			continue
		}
		str := strings.TrimSpace(cast.ToString(v))
		if str == "" {
			if f.Required {
				missing = true
			}
			continue
		}
		doc[f.Name] = str
	}
	if missing {
		return nil, validationErrorf("All fields are required: %s", strings.Join(s.requiredNames(), ", "))
	}
	if err := s.checkConstraints(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// checkConstraints validates length and range rules for every field present
// in doc. Used for both full creates and partial update sets.
func (s *Schema) checkConstraints(doc Document) error {
	for _, f := range s.Fields {
		v, ok := doc[f.Name]
		if !ok {
			continue
		}
		if f.Numeric {
			var rules []validation.Rule
			if f.Min != nil {
				rules = append(rules, validation.Min(*f.Min))
			}
			if f.Max != nil {
				rules = append(rules, validation.Max(*f.Max))
			}
			if err := validation.Validate(cast.ToFloat64(v), rules...); err != nil {
				return validationErrorf("Field %s %v", f.Name, err)
			}
			continue
		}
		if f.MaxLen > 0 {
			if err := validation.Validate(cast.ToString(v), validation.RuneLength(0, f.MaxLen)); err != nil {
				return validationErrorf("Field %s %v", f.Name, err)
			}
		}
	}
	return nil
}
