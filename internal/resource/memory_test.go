package resource

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, st *MemoryStore) {
	t.Helper()
	for _, d := range []Document{
		{"title": "Tasbih 33", "description": "Prayer beads", "name": "tasbih-33", "image": "x.jpg", "stock": 10.0, "category": "accessories", "price": 9.99, "discount": 0.0},
		{"title": "Prayer Mat", "description": "Soft mat", "name": "mat-basic", "image": "y.jpg", "stock": 0.0, "category": "home", "price": 15.0, "discount": 10.0},
		{"title": "Quran Cover", "description": "Leather cover", "name": "cover-1", "image": "z.jpg", "stock": 3.0, "category": "accessories", "price": 25.0, "discount": 0.0},
	} {
		_, err := st.Insert(ctx(), d)
		require.NoError(t, err)
	}
}

func names(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d["name"].(string))
	}
	return out
}

func TestFindMany_PriceRange(t *testing.T) {
	s := catalogSchema()
	st := NewMemoryStore(s)
	seedProducts(t, st)

	q, err := BuildQuery(s, url.Values{"minPrice": {"10"}, "maxPrice": {"20"}})
	require.NoError(t, err)
	docs, err := st.FindMany(ctx(), q)
	require.NoError(t, err)
	require.Equal(t, []string{"mat-basic"}, names(docs))
}

func TestFindMany_StockFlag(t *testing.T) {
	s := catalogSchema()
	st := NewMemoryStore(s)
	seedProducts(t, st)

	q, err := BuildQuery(s, url.Values{"inStock": {"true"}})
	require.NoError(t, err)
	docs, err := st.FindMany(ctx(), q)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"tasbih-33", "cover-1"}, names(docs))

	q, err = BuildQuery(s, url.Values{"inStock": {"false"}})
	require.NoError(t, err)
	docs, err = st.FindMany(ctx(), q)
	require.NoError(t, err)
	require.Equal(t, []string{"mat-basic"}, names(docs))
}

func TestFindMany_CategoryAndSort(t *testing.T) {
	s := catalogSchema()
	st := NewMemoryStore(s)
	seedProducts(t, st)

	q, err := BuildQuery(s, url.Values{"category": {"ACCESS"}, "sortBy": {"price_desc"}})
	require.NoError(t, err)
	docs, err := st.FindMany(ctx(), q)
	require.NoError(t, err)
	require.Equal(t, []string{"cover-1", "tasbih-33"}, names(docs))
}

func TestFindMany_TextSearch(t *testing.T) {
	s := catalogSchema()
	st := NewMemoryStore(s)
	seedProducts(t, st)

	q, err := BuildQuery(s, url.Values{"q": {"beads"}})
	require.NoError(t, err)
	docs, err := st.FindMany(ctx(), q)
	require.NoError(t, err)
	require.Equal(t, []string{"tasbih-33"}, names(docs))
}

func TestFindMany_SubstringOrGroup(t *testing.T) {
	s := quoteSchema()
	st := NewMemoryStore(s)
	for _, d := range []Document{
		{"id": "q-1", "text": "Be mindful of Allah", "author": "Ibn Abbas narration", "source": "Tirmidhi"},
		{"id": "q-2", "text": "Patience is light", "author": "Unknown", "source": "Muslim"},
	} {
		_, err := st.Insert(ctx(), d)
		require.NoError(t, err)
	}

	q, err := BuildQuery(s, url.Values{"q": {"patience"}})
	require.NoError(t, err)
	docs, err := st.FindMany(ctx(), q)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "q-2", docs[0]["id"])

	// matches across any of the three fields
	q, err = BuildQuery(s, url.Values{"q": {"tirmidhi"}})
	require.NoError(t, err)
	docs, err = st.FindMany(ctx(), q)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "q-1", docs[0]["id"])
}

func TestFindMany_DefaultSortNewestFirst(t *testing.T) {
	s := quoteSchema()
	st := NewMemoryStore(s)
	for _, id := range []string{"q-1", "q-2", "q-3"} {
		_, err := st.Insert(ctx(), Document{"id": id, "text": "t", "author": "a", "source": "s"})
		require.NoError(t, err)
	}

	docs, err := st.FindMany(ctx(), &Query{Sort: SortSpec{Field: "createdAt", Descending: true}})
	require.NoError(t, err)
	require.Equal(t, "q-3", docs[0]["id"])
	require.Equal(t, "q-1", docs[2]["id"])
}

func TestFindOneAndDelete_RemovesDocument(t *testing.T) {
	s := quoteSchema()
	st := NewMemoryStore(s)
	_, err := st.Insert(ctx(), Document{"id": "q-1", "text": "t", "author": "a", "source": "s"})
	require.NoError(t, err)

	snap, err := st.FindOneAndDelete(ctx(), "id", "q-1")
	require.NoError(t, err)
	require.Equal(t, "q-1", snap["id"])

	_, err = st.FindOne(ctx(), "id", "q-1")
	require.ErrorIs(t, err, ErrNotFound)
}
