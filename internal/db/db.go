package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoConfig struct {
	URI             string
	Name            string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

type DBConnection struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectMongo opens a pooled MongoDB client and verifies it with a ping.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*DBConnection, error) {
	if cfg.URI == "" || cfg.Name == "" {
		return nil, fmt.Errorf("missing MongoDB URI or database name")
	}

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err = client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &DBConnection{
		Client: client,
		DB:     client.Database(cfg.Name),
	}, nil
}

func (conn *DBConnection) GetCollection(collectionName string) *mongo.Collection {
	return conn.DB.Collection(collectionName)
}

func (conn *DBConnection) Close() error {
	if conn.Client == nil {
		return nil
	}
	return conn.Client.Disconnect(context.Background())
}
