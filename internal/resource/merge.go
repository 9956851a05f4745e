package resource

import (
	"strings"

	"github.com/spf13/cast"
)

// MergeUpdate produces the sanitized field-set a PUT should apply as a
// non-destructive merge: fields absent from the result keep their stored
// values.
//
// Allow-list mode copies only allow-listed fields, coercing declared numeric
// fields; an empty result is a client error. Open mode copies every declared
// field, but the business identifier is always stripped — it is immutable
// once assigned.
func MergeUpdate(s *Schema, payload map[string]interface{}) (map[string]interface{}, error) {
	set := map[string]interface{}{}

	switch s.UpdateMode {
	case UpdateAllowList:
		for _, name := range s.AllowList {
			if name == s.IDField {
				continue
			}
			v, ok := payload[name]
			if !ok || v == nil {
				continue
			}
			if err := copyField(s, set, name, v); err != nil {
				return nil, err
			}
		}
		if len(set) == 0 {
			return nil, validationErrorf("At least one valid field is required for update")
		}
	case UpdateOpen:
		for _, f := range s.Fields {
			if f.Name == s.IDField {
				continue
			}
			v, ok := payload[f.Name]
			if !ok || v == nil {
				continue
			}
			if err := copyField(s, set, f.Name, v); err != nil {
				return nil, err
			}
		}
	}

	if err := s.checkConstraints(Document(set)); err != nil {
		return nil, err
	}
	return set, nil
}

func copyField(s *Schema, set map[string]interface{}, name string, v interface{}) error {
	f := s.field(name)
	if f != nil && f.Numeric {
		n, err := toNumber(v)
		if err != nil {
			return validationErrorf("Field %s must be a number", name)
		}
		set[name] = n
		return nil
	}
	str := strings.TrimSpace(cast.ToString(v))
	if str == "" {
		// an empty string is not an update
		return nil
	}
	set[name] = str
	return nil
}
