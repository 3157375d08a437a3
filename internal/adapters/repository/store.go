// Package repository defines the document store boundary and errors.
package repository

import (
	"context"

	"github.com/umairtariqsalam/Palate/internal/domain/model"
)

// Store is the data-fetch boundary the engine consumes. Implementations
// wrap a document database; the computations never see the database
// directly.
//
// Transport and storage failures surface as errors wrapping ErrFetch.
// Empty result sets are successful empty slices, never errors.
type Store interface {
	// ListReviewsByUser returns every review the user authored, with
	// AccuracyPercent freshly recomputed from the vote maps.
	ListReviewsByUser(ctx context.Context, userID string) ([]model.Review, error)

	// GetRestaurant returns the restaurant or (nil, nil) when absent.
	// Absence is a defined outcome, not an error.
	GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error)

	// ListCrowdFeedback returns the full feedback log for a restaurant.
	ListCrowdFeedback(ctx context.Context, restaurantID string) ([]model.CrowdFeedback, error)

	// ListCrowdFeedbackByUser returns one user's feedback records for a
	// restaurant, for the resubmission check.
	ListCrowdFeedbackByUser(ctx context.Context, restaurantID, userID string) ([]model.CrowdFeedback, error)

	// AppendCrowdFeedback appends an immutable feedback record and
	// returns its id. It must not silently drop the record.
	AppendCrowdFeedback(ctx context.Context, f model.CrowdFeedback) (string, error)
}
