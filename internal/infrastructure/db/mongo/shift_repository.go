package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

const collectionShifts = "shifts"

type ShiftRepository struct {
	col *mongo.Collection
}

func NewShiftRepository(db *mongo.Database) *ShiftRepository {
	return &ShiftRepository{col: db.Collection(collectionShifts)}
}

// ListByUser returns all of the user's shifts, newest start first.
func (r *ShiftRepository) ListByUser(ctx context.Context, userID string) ([]domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var shifts []domain.Shift
	if err := cur.All(ctx, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ShiftRepository) FindByID(ctx context.Context, userID, shiftID string) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shift
	err := r.col.FindOne(ctx, bson.M{"_id": shiftID, "user_id": userID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShiftNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *ShiftRepository) Insert(ctx context.Context, s *domain.Shift) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	return err
}

// Update replaces the mutable fields of the shift. A nil EndTime unsets the
// field, reopening the shift.
func (r *ShiftRepository) Update(ctx context.Context, s *domain.Shift) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"start_time": s.StartTime,
		"notes":      s.Notes,
	}
	update := bson.M{"$set": set}
	if s.EndTime != nil {
		set["end_time"] = *s.EndTime
	} else {
		update["$unset"] = bson.M{"end_time": ""}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": s.ID, "user_id": s.UserID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShiftNotFound
	}
	return nil
}

func (r *ShiftRepository) Delete(ctx context.Context, userID, shiftID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": shiftID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrShiftNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the shifts collection. The
// partial index on open shifts keeps the active-shift lookup cheap.
func (r *ShiftRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: -1}}},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetPartialFilterExpression(
				bson.M{"end_time": bson.M{"$exists": false}},
			),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
