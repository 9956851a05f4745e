package resource

import "context"

// Document is one stored record: the schema's fields plus the store-managed
// "_id", "createdAt" and "updatedAt".
type Document map[string]interface{}

// Store is the persistence contract the engine consumes, one instance per
// collection. Implementations own connection lifecycle; callers never see it.
type Store interface {
	// FindMany returns the documents matching q, in q's sort order.
	FindMany(ctx context.Context, q *Query) ([]Document, error)
	// FindOne returns the document whose field equals value, or ErrNotFound.
	FindOne(ctx context.Context, field, value string) (Document, error)
	// Insert stores a new document and returns it with store-managed fields
	// set. A unique-index collision reports ErrDuplicateID.
	Insert(ctx context.Context, doc Document) (Document, error)
	// FindOneAndUpdate merges set into the matching document and returns the
	// post-merge document, or ErrNotFound.
	FindOneAndUpdate(ctx context.Context, field, value string, set map[string]interface{}) (Document, error)
	// FindOneAndDelete removes the matching document and returns its prior
	// snapshot, or ErrNotFound.
	FindOneAndDelete(ctx context.Context, field, value string) (Document, error)
}
