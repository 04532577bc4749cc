// Package database owns the MongoDB connection. The client is built once at
// startup and handed to repository constructors; nothing in the application
// reaches for a global connection holder.
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ramink/movie-catalog/internal/config"
)

// connectTimeout bounds the initial connection and verification ping.
const connectTimeout = 5 * time.Second

// Connect opens a MongoDB client using the configured URL and pool bounds
// and verifies the connection with a ping. It returns the client together
// with the handle of the configured database.
func Connect(ctx context.Context, cfg config.Config) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURL).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetServerSelectionTimeout(connectTimeout)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, client.Database(cfg.MongoDB), nil
}

// Disconnect closes the client with a bounded timeout. Safe to call with a
// nil client.
func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
