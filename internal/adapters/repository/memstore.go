package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/umairtariqsalam/Palate/internal/domain/accuracy"
	"github.com/umairtariqsalam/Palate/internal/domain/model"
)

// MemStore is an in-memory Store for tests and local development. All
// methods copy on the way out so callers cannot mutate stored state.
type MemStore struct {
	mu          sync.RWMutex
	reviews     []model.Review
	restaurants map[string]model.Restaurant
	feedback    []model.CrowdFeedback
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		restaurants: make(map[string]model.Restaurant),
	}
}

// PutReview adds or replaces a review. A missing id gets one assigned.
func (s *MemStore) PutReview(r model.Review) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	for i := range s.reviews {
		if s.reviews[i].ID == r.ID {
			s.reviews[i] = r
			return r.ID
		}
	}
	s.reviews = append(s.reviews, r)
	return r.ID
}

// PutRestaurant adds or replaces a restaurant.
func (s *MemStore) PutRestaurant(r model.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants[r.ID] = r
}

// ListReviewsByUser implements Store.
func (s *MemStore) ListReviewsByUser(_ context.Context, userID string) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Review
	for _, r := range s.reviews {
		if r.AuthorID != userID {
			continue
		}
		cp := r
		cp.Votes = make(map[string]model.Vote, len(r.Votes))
		for k, v := range r.Votes {
			cp.Votes[k] = v
		}
		accuracy.Refresh(&cp)
		out = append(out, cp)
	}
	return out, nil
}

// GetRestaurant implements Store.
func (s *MemStore) GetRestaurant(_ context.Context, id string) (*model.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, nil
	}
	cp := r
	return &cp, nil
}

// ListCrowdFeedback implements Store.
func (s *MemStore) ListCrowdFeedback(_ context.Context, restaurantID string) ([]model.CrowdFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.CrowdFeedback
	for _, f := range s.feedback {
		if f.RestaurantID == restaurantID {
			out = append(out, f)
		}
	}
	return out, nil
}

// ListCrowdFeedbackByUser implements Store.
func (s *MemStore) ListCrowdFeedbackByUser(_ context.Context, restaurantID, userID string) ([]model.CrowdFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.CrowdFeedback
	for _, f := range s.feedback {
		if f.RestaurantID == restaurantID && f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

// AppendCrowdFeedback implements Store.
func (s *MemStore) AppendCrowdFeedback(_ context.Context, f model.CrowdFeedback) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	s.feedback = append(s.feedback, f)
	return f.ID, nil
}
