package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

// Gateway owns the single MongoDB connection for the process. It is created
// once at startup and passed to repositories explicitly; there is no
// package-level cached handle.
type Gateway struct {
	uri      string
	database string

	sfg singleflight.Group
	mu  sync.RWMutex
	db  *mongo.Database
}

func NewGateway(uri, database string) *Gateway {
	return &Gateway{
		uri:      uri,
		database: database,
	}
}

// Connect returns the shared database handle, dialing on first use.
// Concurrent first callers share one in-progress dial via singleflight, so
// early callers can never race to open duplicate connections. A failed
// attempt is not memoized; the next caller dials fresh.
func (g *Gateway) Connect(ctx context.Context) (*mongo.Database, error) {
	g.mu.RLock()
	db := g.db
	g.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := g.sfg.Do("connect", func() (interface{}, error) {
		g.mu.RLock()
		existing := g.db
		g.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		clientOpts := options.Client().
			ApplyURI(g.uri).
			SetConnectTimeout(10 * time.Second).
			SetServerSelectionTimeout(5 * time.Second).
			SetMaxPoolSize(100).
			SetMinPoolSize(10)

		client, err := mongo.Connect(ctx, clientOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}

		// Ping to verify connection
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
		}

		connected := client.Database(g.database)
		g.mu.Lock()
		g.db = connected
		g.mu.Unlock()

		return connected, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*mongo.Database), nil
}

// Close disconnects the underlying client. The gateway can dial again on a
// later Connect.
func (g *Gateway) Close(ctx context.Context) error {
	g.mu.Lock()
	db := g.db
	g.db = nil
	g.mu.Unlock()

	if db == nil {
		return nil
	}
	if err := db.Client().Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
