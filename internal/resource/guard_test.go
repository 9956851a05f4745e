package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func ctx() context.Context { return context.Background() }

func TestEnsureNewID_FreshIdentifierPasses(t *testing.T) {
	st := NewMemoryStore(quoteSchema())
	require.NoError(t, EnsureNewID(ctx(), st, quoteSchema(), "q-1"))
}

func TestEnsureNewID_ExistingIdentifierConflicts(t *testing.T) {
	s := quoteSchema()
	st := NewMemoryStore(s)
	_, err := st.Insert(ctx(), Document{"id": "q-1", "text": "t", "author": "a", "source": "s"})
	require.NoError(t, err)

	err = EnsureNewID(ctx(), st, s, "q-1")
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestInsert_UniqueIndexBackstop(t *testing.T) {
	// even when the pre-insert check is skipped, the store rejects duplicates
	s := quoteSchema()
	st := NewMemoryStore(s)
	_, err := st.Insert(ctx(), Document{"id": "q-1", "text": "t", "author": "a", "source": "s"})
	require.NoError(t, err)

	_, err = st.Insert(ctx(), Document{"id": "q-1", "text": "other", "author": "a", "source": "s"})
	require.ErrorIs(t, err, ErrDuplicateID)
}
