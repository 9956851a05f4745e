package content

import (
	"testing"

	"github.com/deenhub/deenhub-backend/internal/resource"
	"github.com/stretchr/testify/require"
)

func TestAllSchemasAreWellFormed(t *testing.T) {
	seenPlural := map[string]bool{}
	for _, s := range All() {
		require.NotEmpty(t, s.Collection)
		require.NotEmpty(t, s.Singular)
		require.NotEmpty(t, s.Plural)
		require.NotEmpty(t, s.Label)
		require.NotEmpty(t, s.CreatedMsg)
		require.False(t, seenPlural[s.Plural], "duplicate route segment %q", s.Plural)
		seenPlural[s.Plural] = true

		if s.UpdateMode == resource.UpdateAllowList {
			require.NotEmpty(t, s.AllowList, "%s: allow-list mode without an allow-list", s.Plural)
		}
	}
}

func TestIdentifierKeyedCollections(t *testing.T) {
	require.Equal(t, "id", Quotes().IDField)
	require.Equal(t, "id", Prophets().IDField)
	require.Equal(t, "id", Sahabas().IDField)
	// products are keyed by the store-native id only
	require.Empty(t, Products().IDField)
	require.Equal(t, "_id", Products().KeyField())
}

func TestProphetAndSahabaShareShape(t *testing.T) {
	p, c := Prophets().Fields, Sahabas().Fields
	require.Equal(t, len(p), len(c))
	for i := range p {
		require.Equal(t, p[i], c[i])
	}
}

func TestProductSearchIsTextIndexed(t *testing.T) {
	p := Products()
	require.Empty(t, p.SearchFields)
	require.Equal(t, []string{"title", "description", "name", "category"}, p.TextFields)
	require.True(t, p.ListFilters)

	q := Quotes()
	require.Empty(t, q.TextFields)
	require.Equal(t, []string{"text", "author", "source"}, q.SearchFields)
	require.False(t, q.ListFilters)
}

func TestQuoteAllowListExcludesIdentifier(t *testing.T) {
	require.NotContains(t, Quotes().AllowList, "id")
}
