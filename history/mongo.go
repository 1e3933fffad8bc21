package history

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AttemptsCollection is the collection attempts are written to.
const AttemptsCollection = "scrape_attempts"

// MongoRecorder appends attempts to a MongoDB collection.
type MongoRecorder struct {
	collection *mongo.Collection
}

func NewMongoRecorder(collection *mongo.Collection) *MongoRecorder {
	return &MongoRecorder{collection: collection}
}

func (r *MongoRecorder) Record(ctx context.Context, a models.ScrapeAttempt) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to record scrape attempt: %w", err)
	}
	return nil
}

// Recent returns the latest attempts for a session, newest first.
func (r *MongoRecorder) Recent(ctx context.Context, sessionID string, limit int64) ([]models.ScrapeAttempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query scrape attempts: %w", err)
	}
	defer cursor.Close(ctx)

	var attempts []models.ScrapeAttempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, fmt.Errorf("failed to decode scrape attempts: %w", err)
	}
	return attempts, nil
}
