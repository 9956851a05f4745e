package resource

import (
	"context"
	"errors"
)

// EnsureNewID checks that no document in the collection already carries the
// candidate business identifier. The check-then-insert sequence is not atomic
// against concurrent creates; the store's unique index on the identifier is
// the backstop for that race (Insert reports ErrDuplicateID).
func EnsureNewID(ctx context.Context, st Store, s *Schema, id string) error {
	_, err := st.FindOne(ctx, s.IDField, id)
	if err == nil {
		return ErrDuplicateID
	}
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
