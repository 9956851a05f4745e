package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a lazily established, cached connection handle. The first caller
// pays the connection cost; subsequent callers reuse the live client. The
// mutex makes establishment single-flight so concurrent first calls cannot
// open duplicate connections.
type Mongo struct {
	uri     string
	timeout time.Duration

	mu     sync.Mutex
	client *mongo.Client
}

func New(uri string, timeout time.Duration) *Mongo {
	return &Mongo{uri: uri, timeout: timeout}
}

// Client returns the cached client, connecting on first use.
func (m *Mongo) Client(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client != nil {
		return m.client, nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(m.uri).SetMaxPoolSize(10).SetRetryWrites(true)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	m.client = client
	return m.client, nil
}

// Ping reports whether the cached connection (or a fresh one) is usable.
func (m *Mongo) Ping(ctx context.Context) error {
	client, err := m.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, nil)
}

// Disconnect closes the cached client, if any.
func (m *Mongo) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}
