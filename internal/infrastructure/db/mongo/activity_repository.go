package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calckit/calculator-service/internal/core/domain"
)

const activityCollection = "activity_events"

type MongoActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{coll: db.Collection(activityCollection)}
}

type mongoActivity struct {
	UserID        string `bson:"user_id"`
	Action        string `bson:"action"`
	CalculationID string `bson:"calculation_id,omitempty"`
	Timestamp     int64  `bson:"timestamp"`
}

func (r *MongoActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	doc := mongoActivity{
		UserID:        event.UserID,
		Action:        string(event.Action),
		CalculationID: event.CalculationID,
		Timestamp:     event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

func (r *MongoActivityRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]*domain.ActivityEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]*domain.ActivityEvent, 0)
	for cursor.Next(ctx) {
		var ma mongoActivity
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode activity event: %w", err)
		}
		events = append(events, &domain.ActivityEvent{
			UserID:        ma.UserID,
			Action:        domain.ActivityAction(ma.Action),
			CalculationID: ma.CalculationID,
			Timestamp:     unixToTime(ma.Timestamp),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return events, nil
}
