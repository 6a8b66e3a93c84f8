package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoOpts struct {
	URI         string
	Database    string
	MaxPoolSize uint64
}

// NewMongo 连接并 ping；返回的 close 用于优雅关闭
func NewMongo(ctx context.Context, o MongoOpts) (*mongo.Database, func(context.Context) error, error) {
	if o.URI == "" {
		return nil, nil, fmt.Errorf("mongo: empty uri")
	}
	if o.Database == "" {
		o.Database = "devconnector"
	}
	clientOpts := options.Client().
		ApplyURI(o.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)
	if o.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(o.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client.Database(o.Database), client.Disconnect, nil
}
