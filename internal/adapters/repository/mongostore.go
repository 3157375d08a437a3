package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/umairtariqsalam/Palate/internal/domain/accuracy"
	"github.com/umairtariqsalam/Palate/internal/domain/model"
	"github.com/umairtariqsalam/Palate/pkg/logger"
	"github.com/umairtariqsalam/Palate/pkg/metrics"
)

// Collection names in the backing database.
const (
	collReviews     = "reviews"
	collRestaurants = "restaurants"
	collFeedback    = "crowdfeedback"
)

// MongoStore implements Store over MongoDB collections.
//
// A document that fails to decode is logged and skipped rather than
// failing the whole listing; one corrupt review must not take down a
// profile computation. Cursor and transport errors still abort.
type MongoStore struct {
	reviews     *mongo.Collection
	restaurants *mongo.Collection
	feedback    *mongo.Collection
	log         logger.Logger
}

// NewMongoStore creates a store over the given database handle.
func NewMongoStore(db *mongo.Database, log logger.Logger) *MongoStore {
	return &MongoStore{
		reviews:     db.Collection(collReviews),
		restaurants: db.Collection(collRestaurants),
		feedback:    db.Collection(collFeedback),
		log:         log,
	}
}

// ListReviewsByUser implements Store.
func (s *MongoStore) ListReviewsByUser(ctx context.Context, userID string) ([]model.Review, error) {
	const op = "mongo.list_reviews_by_user"
	cur, err := s.reviews.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fetchError(op, err)
	}
	defer cur.Close(ctx)

	var out []model.Review
	for cur.Next(ctx) {
		var r model.Review
		if err := cur.Decode(&r); err != nil {
			s.log.Warn(ctx, "skipping malformed review document",
				logger.String("id", rawDocumentID(cur)),
				logger.Error(err),
			)
			metrics.RecordMalformedRecord("review")
			continue
		}
		accuracy.Refresh(&r)
		out = append(out, r)
	}
	if err := cur.Err(); err != nil {
		return nil, fetchError(op, err)
	}
	return out, nil
}

// GetRestaurant implements Store.
func (s *MongoStore) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	const op = "mongo.get_restaurant"
	var r model.Restaurant
	err := s.restaurants.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fetchError(op, err)
	}
	return &r, nil
}

// ListCrowdFeedback implements Store.
func (s *MongoStore) ListCrowdFeedback(ctx context.Context, restaurantID string) ([]model.CrowdFeedback, error) {
	const op = "mongo.list_crowd_feedback"
	return s.listFeedback(ctx, op, bson.M{"restaurantId": restaurantID})
}

// ListCrowdFeedbackByUser implements Store.
func (s *MongoStore) ListCrowdFeedbackByUser(ctx context.Context, restaurantID, userID string) ([]model.CrowdFeedback, error) {
	const op = "mongo.list_crowd_feedback_by_user"
	return s.listFeedback(ctx, op, bson.M{"restaurantId": restaurantID, "userId": userID})
}

func (s *MongoStore) listFeedback(ctx context.Context, op string, filter bson.M) ([]model.CrowdFeedback, error) {
	cur, err := s.feedback.Find(ctx, filter)
	if err != nil {
		return nil, fetchError(op, err)
	}
	defer cur.Close(ctx)

	var out []model.CrowdFeedback
	for cur.Next(ctx) {
		var f model.CrowdFeedback
		if err := cur.Decode(&f); err != nil {
			s.log.Warn(ctx, "skipping malformed feedback document",
				logger.String("id", rawDocumentID(cur)),
				logger.Error(err),
			)
			metrics.RecordMalformedRecord("crowd_feedback")
			continue
		}
		out = append(out, f)
	}
	if err := cur.Err(); err != nil {
		return nil, fetchError(op, err)
	}
	return out, nil
}

// AppendCrowdFeedback implements Store.
func (s *MongoStore) AppendCrowdFeedback(ctx context.Context, f model.CrowdFeedback) (string, error) {
	const op = "mongo.append_crowd_feedback"
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if _, err := s.feedback.InsertOne(ctx, f); err != nil {
		return "", fetchError(op, err)
	}
	return f.ID, nil
}

// rawDocumentID pulls the _id out of the current raw document for log
// context, best effort.
func rawDocumentID(cur *mongo.Cursor) string {
	if id, err := cur.Current.LookupErr("_id"); err == nil {
		if str, ok := id.StringValueOK(); ok {
			return str
		}
		return id.String()
	}
	return "unknown"
}
