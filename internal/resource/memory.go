package resource

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store used by unit tests. It evaluates the
// store-neutral Query directly, including the collection's unique-identifier
// constraint and an approximation of tokenized text search.
type MemoryStore struct {
	schema *Schema

	mu      sync.RWMutex
	entries []*memEntry
	seq     int64
}

type memEntry struct {
	doc Document
	seq int64
}

func NewMemoryStore(s *Schema) *MemoryStore {
	return &MemoryStore{schema: s}
}

func (m *MemoryStore) FindMany(ctx context.Context, q *Query) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := []*memEntry{}
	for _, e := range m.entries {
		if m.matches(e.doc, q) {
			matched = append(matched, e)
		}
	}
	sortEntries(matched, q)
	out := make([]Document, 0, len(matched))
	for _, e := range matched {
		out = append(out, copyDoc(e.doc))
	}
	return out, nil
}

func (m *MemoryStore) FindOne(ctx context.Context, field, value string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e := m.lookup(field, value)
	if e == nil {
		return nil, ErrNotFound
	}
	return copyDoc(e.doc), nil
}

func (m *MemoryStore) Insert(ctx context.Context, doc Document) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := copyDoc(doc)
	if m.schema.IDField != "" {
		id := cast.ToString(stored[m.schema.IDField])
		if m.lookup(m.schema.IDField, id) != nil {
			return nil, ErrDuplicateID
		}
	}
	if _, ok := stored["_id"]; !ok {
		stored["_id"] = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	stored["createdAt"] = now
	stored["updatedAt"] = now
	m.seq++
	m.entries = append(m.entries, &memEntry{doc: stored, seq: m.seq})
	return copyDoc(stored), nil
}

func (m *MemoryStore) FindOneAndUpdate(ctx context.Context, field, value string, set map[string]interface{}) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.lookup(field, value)
	if e == nil {
		return nil, ErrNotFound
	}
	for k, v := range set {
		e.doc[k] = v
	}
	e.doc["updatedAt"] = time.Now().UTC()
	return copyDoc(e.doc), nil
}

func (m *MemoryStore) FindOneAndDelete(ctx context.Context, field, value string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if cast.ToString(e.doc[field]) == value {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return e.doc, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) lookup(field, value string) *memEntry {
	for _, e := range m.entries {
		if cast.ToString(e.doc[field]) == value {
			return e
		}
	}
	return nil
}

func (m *MemoryStore) matches(doc Document, q *Query) bool {
	if q == nil {
		return true
	}
	if q.TextSearch != "" && !m.textMatch(doc, q.TextSearch) {
		return false
	}
	if len(q.AnyOf) > 0 {
		any := false
		for _, fm := range q.AnyOf {
			if fieldMatches(doc, fm) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	for _, fm := range q.Match {
		if !fieldMatches(doc, fm) {
			return false
		}
	}
	return true
}

// textMatch approximates an indexed text search: the document matches when
// any search token occurs in any text-indexed field.
func (m *MemoryStore) textMatch(doc Document, term string) bool {
	for _, token := range strings.Fields(strings.ToLower(term)) {
		for _, f := range m.schema.TextFields {
			if strings.Contains(strings.ToLower(cast.ToString(doc[f])), token) {
				return true
			}
		}
	}
	return false
}

func fieldMatches(doc Document, fm FieldMatch) bool {
	v, ok := doc[fm.Field]
	if !ok {
		return false
	}
	switch fm.Kind {
	case MatchContains:
		return strings.Contains(strings.ToLower(cast.ToString(v)), strings.ToLower(cast.ToString(fm.Value)))
	case MatchEquals:
		a, errA := cast.ToFloat64E(v)
		b, errB := cast.ToFloat64E(fm.Value)
		if errA == nil && errB == nil {
			return a == b
		}
		return cast.ToString(v) == cast.ToString(fm.Value)
	default:
		a, errA := cast.ToFloat64E(v)
		b, errB := cast.ToFloat64E(fm.Value)
		if errA != nil || errB != nil {
			return false
		}
		switch fm.Kind {
		case MatchGreater:
			return a > b
		case MatchAtLeast:
			return a >= b
		default:
			return a <= b
		}
	}
}

func sortEntries(entries []*memEntry, q *Query) {
	spec := SortSpec{Field: "createdAt", Descending: true}
	if q != nil && q.Sort.Field != "" {
		spec = q.Sort
	}
	sort.SliceStable(entries, func(i, j int) bool {
		less, eq := compareField(entries[i].doc, entries[j].doc, spec.Field)
		if eq {
			// ties keep insertion order, newest first when descending
			if spec.Descending {
				return entries[i].seq > entries[j].seq
			}
			return entries[i].seq < entries[j].seq
		}
		if spec.Descending {
			return !less
		}
		return less
	})
}

func compareField(a, b Document, field string) (less, eq bool) {
	av, bv := a[field], b[field]
	if at, ok := av.(time.Time); ok {
		if bt, ok := bv.(time.Time); ok {
			if at.Equal(bt) {
				return false, true
			}
			return at.Before(bt), false
		}
	}
	af, errA := cast.ToFloat64E(av)
	bf, errB := cast.ToFloat64E(bv)
	if errA == nil && errB == nil {
		if af == bf {
			return false, true
		}
		return af < bf, false
	}
	as, bs := cast.ToString(av), cast.ToString(bv)
	if as == bs {
		return false, true
	}
	return as < bs, false
}

func copyDoc(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
