package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

// ConnectMongo initializes the MongoDB connection
func ConnectMongo(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	Client = client
	logx.Info().Msg("connected to MongoDB")
	return nil
}

// GetCollection returns a handle to a MongoDB collection. ConnectMongo must
// have succeeded first.
func GetCollection(databaseName, collectionName string) (*mongo.Collection, error) {
	if Client == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return Client.Database(databaseName).Collection(collectionName), nil
}

// DisconnectMongo closes the shared client, if any.
func DisconnectMongo(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	err := Client.Disconnect(ctx)
	Client = nil
	return err
}
