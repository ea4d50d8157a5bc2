package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes the single process-wide Mongo client. The caller
// owns the client and passes collection handles down by injection; the
// connection is never re-established per request.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

type Collections struct {
	Products  *mongo.Collection
	Inquiries *mongo.Collection
}

func NewCollections(db *mongo.Database) *Collections {
	return &Collections{
		Products:  db.Collection("products"),
		Inquiries: db.Collection("inquiries"),
	}
}
