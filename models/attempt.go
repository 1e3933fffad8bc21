package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attempt outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation"
	OutcomeTransport  = "transport"
	OutcomeLogical    = "logical_failure"
	OutcomeStale      = "stale"
)

// ScrapeAttempt is an audit entry for one scrape. It never carries product data.
type ScrapeAttempt struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID  string             `bson:"session_id" json:"sessionId"`
	Username   string             `bson:"username,omitempty" json:"username,omitempty"`
	Site       string             `bson:"site" json:"site"`
	URL        string             `bson:"url" json:"url"`
	Outcome    string             `bson:"outcome" json:"outcome"`
	Message    string             `bson:"message,omitempty" json:"message,omitempty"`
	Generation uint64             `bson:"generation" json:"generation"`
	Duration   time.Duration      `bson:"duration" json:"duration"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
