package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calckit/calculator-service/internal/core/domain"
)

const calculationCollection = "calculations"

type MongoCalculationRepository struct {
	coll *mongo.Collection
}

func NewCalculationRepository(db *mongo.Database) *MongoCalculationRepository {
	return &MongoCalculationRepository{coll: db.Collection(calculationCollection)}
}

type mongoCalculation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	A         float64            `bson:"a"`
	B         float64            `bson:"b"`
	Operation string             `bson:"operation"`
	Result    *float64           `bson:"result,omitempty"`
	UserID    string             `bson:"user_id"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoCalculationRepository) Create(ctx context.Context, calc *domain.Calculation) (*domain.Calculation, error) {
	doc := mongoCalculation{
		A:         calc.A,
		B:         calc.B,
		Operation: string(calc.Operation),
		Result:    calc.Result,
		UserID:    calc.UserID,
		CreatedAt: calc.CreatedAt.Unix(),
		UpdatedAt: calc.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert calculation: %w", err)
	}

	created := *calc
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ownerFilter builds the id+owner filter every lookup uses. A malformed id
// cannot match any document, which is indistinguishable from not-found.
func ownerFilter(id, userID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCalculationNotFound
	}
	return bson.M{"_id": oid, "user_id": userID}, nil
}

func (r *MongoCalculationRepository) FindByIDAndOwner(ctx context.Context, id, userID string) (*domain.Calculation, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}

	var mc mongoCalculation
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCalculationNotFound
		}
		return nil, fmt.Errorf("find calculation: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoCalculationRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Calculation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer cursor.Close(ctx)

	calcs := make([]*domain.Calculation, 0)
	for cursor.Next(ctx) {
		var mc mongoCalculation
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode calculation: %w", err)
		}
		calcs = append(calcs, mc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return calcs, nil
}

func (r *MongoCalculationRepository) Update(ctx context.Context, calc *domain.Calculation) error {
	filter, err := ownerFilter(calc.ID, calc.UserID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"a":          calc.A,
		"b":          calc.B,
		"operation":  string(calc.Operation),
		"result":     calc.Result,
		"updated_at": calc.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update calculation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCalculationNotFound
	}
	return nil
}

func (r *MongoCalculationRepository) DeleteByIDAndOwner(ctx context.Context, id, userID string) error {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCalculationNotFound
	}
	return nil
}

func (mc *mongoCalculation) toDomain() *domain.Calculation {
	return &domain.Calculation{
		ID:        mc.ID.Hex(),
		A:         mc.A,
		B:         mc.B,
		Operation: domain.Operation(mc.Operation),
		Result:    mc.Result,
		UserID:    mc.UserID,
		CreatedAt: unixToTime(mc.CreatedAt),
		UpdatedAt: unixToTime(mc.UpdatedAt),
	}
}
