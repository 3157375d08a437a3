// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/umairtariqsalam/Palate/internal/adapters/repository"
	"github.com/umairtariqsalam/Palate/internal/domain/accuracy"
	"github.com/umairtariqsalam/Palate/internal/domain/crowd"
	"github.com/umairtariqsalam/Palate/internal/domain/model"
	"github.com/umairtariqsalam/Palate/internal/domain/reputation"
	"github.com/umairtariqsalam/Palate/internal/domain/stats"
	"github.com/umairtariqsalam/Palate/pkg/logger"
	"github.com/umairtariqsalam/Palate/pkg/metrics"
)

// Clock supplies the current instant; injectable for deterministic tests.
type Clock func() time.Time

// Guard is the optional fast-path check fronting the feedback throttle.
// Implemented by cache.RecentSubmissionGuard; failures degrade to the
// store check alone.
type Guard interface {
	Recent(ctx context.Context, restaurantID, userID string) (bool, error)
	Mark(ctx context.Context, restaurantID, userID string) error
}

// Reputation bundles a user's aggregated stats with both derived scores.
type Reputation struct {
	Stats       model.UserStats `json:"stats"`
	Credibility int             `json:"credibilityScore"`
	Experience  int             `json:"experienceScore"`
}

// Service implements the engine's operation surface over a Store. Every
// operation is a single synchronous computation over data fetched at call
// time; the service holds no derived state between calls.
type Service struct {
	store repository.Store
	guard Guard

	estimator        *crowd.Estimator
	clock            Clock
	throttleWindow   time.Duration
	fetchConcurrency int

	startedAt time.Time
	log       logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the document store boundary.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithGuard sets the throttle fast-path guard.
func WithGuard(g Guard) Option {
	return func(s *Service) {
		s.guard = g
	}
}

// WithClock sets the clock used for all time arithmetic.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithCrowdWindow sets the sliding window for crowd estimates.
func WithCrowdWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.estimator = crowd.NewEstimator(crowd.WithWindow(d))
		}
	}
}

// WithThrottleWindow sets the feedback resubmission window.
func WithThrottleWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.throttleWindow = d
		}
	}
}

// WithFetchConcurrency bounds the restaurant lookup fan-out.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fetchConcurrency = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service with default configuration. The store
// defaults to an empty in-memory one; production callers pass WithStore.
func New(opts ...Option) *Service {
	s := &Service{
		store:            repository.NewMemStore(),
		estimator:        crowd.NewEstimator(),
		clock:            time.Now,
		throttleWindow:   crowd.DefaultThrottleWindow,
		fetchConcurrency: 8,
		startedAt:        time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		_ = logger.Init()
		s.log = logger.Get()
	}
	return s
}

// ComputeAccuracy returns the accuracy percent for a vote map.
func (s *Service) ComputeAccuracy(votes map[string]model.Vote) float64 {
	return accuracy.Percent(votes)
}

// ComputeUserStats fetches the user's reviews and referenced restaurants
// and aggregates them. Restaurant lookups fan out concurrently; a lookup
// that fails is logged and treated as not-found so one flaky document
// cannot abort the profile. A failed review fetch aborts the whole
// computation with an error wrapping repository.ErrFetch.
func (s *Service) ComputeUserStats(ctx context.Context, userID string) (model.UserStats, error) {
	start := s.clock()

	reviews, err := s.store.ListReviewsByUser(ctx, userID)
	if err != nil {
		metrics.RecordStatsError()
		return model.UserStats{}, fmt.Errorf("compute user stats: %w", err)
	}

	restaurants := s.fetchRestaurants(ctx, reviews)
	result := stats.Aggregate(reviews, restaurants, s.clock())

	metrics.RecordStatsComputation()
	metrics.ObserveStoreLatency("user_stats", float64(s.clock().Sub(start).Milliseconds()))
	s.log.Debug(ctx, "computed user stats",
		logger.String("userID", userID),
		logger.Int("totalReviews", result.TotalReviews),
		logger.Int("totalVotes", result.TotalVotes),
		logger.Float64("avgAccuracyPercent", result.AvgAccuracyPercent),
	)
	return result, nil
}

// fetchRestaurants resolves the distinct restaurant ids referenced by the
// reviews, with bounded concurrency. All lookups complete (or fail and
// count as not-found) before aggregation proceeds.
func (s *Service) fetchRestaurants(ctx context.Context, reviews []model.Review) map[string]*model.Restaurant {
	ids := make(map[string]struct{})
	for _, r := range reviews {
		if r.RestaurantID != "" {
			ids[r.RestaurantID] = struct{}{}
		}
	}

	out := make(map[string]*model.Restaurant, len(ids))
	if len(ids) == 0 {
		return out
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, s.fetchConcurrency)
	)
	for id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()
			rest, err := s.store.GetRestaurant(ctx, id)
			if err != nil {
				// Degrade to not-found; category/region just
				// contribute nothing for this restaurant.
				s.log.Warn(ctx, "restaurant lookup failed",
					logger.String("restaurantID", id),
					logger.Error(err),
				)
				return
			}
			if rest == nil {
				return
			}
			mu.Lock()
			out[id] = rest
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	return out
}

// ComputeCredibility derives the credibility score from a stats record.
func (s *Service) ComputeCredibility(st model.UserStats) int {
	score := reputation.Credibility(st)
	metrics.ObserveCredibility(score)
	return score
}

// ComputeExperience derives the experience score from a stats record.
func (s *Service) ComputeExperience(st model.UserStats) int {
	score := reputation.Experience(st)
	metrics.ObserveExperience(score)
	return score
}

// UserReputation computes stats and both scores in one call. This backs
// the profile view.
func (s *Service) UserReputation(ctx context.Context, userID string) (Reputation, error) {
	st, err := s.ComputeUserStats(ctx, userID)
	if err != nil {
		return Reputation{}, err
	}

	cred := reputation.CredibilityParts(st)
	exp := reputation.ExperienceParts(st)
	s.log.Debug(ctx, "reputation breakdown",
		logger.String("userID", userID),
		logger.Float64("credBase", cred.Base),
		logger.Float64("credVolume", cred.Volume),
		logger.Float64("credAccuracy", cred.Accuracy),
		logger.Float64("credConsistency", cred.Consistency),
		logger.Float64("expBase", exp.Base),
		logger.Float64("expActivity", exp.ActivityRate),
		logger.Float64("expVariety", exp.VarietyMultiplier),
	)

	rep := Reputation{
		Stats:       st,
		Credibility: s.ComputeCredibility(st),
		Experience:  s.ComputeExperience(st),
	}
	return rep, nil
}

// EstimateCrowdDensity classifies a restaurant's current crowd level from
// recent feedback. Zero recent feedback is a successful no-data result; a
// failed fetch is an error, and callers must keep the two apart.
func (s *Service) EstimateCrowdDensity(ctx context.Context, restaurantID string) (model.CrowdDensityResult, error) {
	feedback, err := s.store.ListCrowdFeedback(ctx, restaurantID)
	if err != nil {
		return model.CrowdDensityResult{}, fmt.Errorf("estimate crowd density: %w", err)
	}

	result := s.estimator.Estimate(feedback, s.clock())
	metrics.RecordCrowdEstimate(strconv.Itoa(int(result.Level)))
	s.log.Debug(ctx, "estimated crowd density",
		logger.String("restaurantID", restaurantID),
		logger.Int("level", int(result.Level)),
		logger.Int("feedbackCount", result.FeedbackCount),
	)
	return result, nil
}

// SubmitCrowdFeedback appends a feedback record after the resubmission
// check. The check-then-append is not atomic: two racing submissions
// from the same user can both land. Accepted limitation.
func (s *Service) SubmitCrowdFeedback(ctx context.Context, restaurantID, userID string, level model.CrowdLevel) (string, error) {
	if !level.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	now := s.clock()

	// Fast path: a Redis marker from a prior accept inside the window.
	if s.guard != nil {
		recent, err := s.guard.Recent(ctx, restaurantID, userID)
		if err != nil {
			s.log.Debug(ctx, "throttle guard unavailable, falling back to store check",
				logger.Error(err))
		} else if recent {
			metrics.RecordThrottleRejection()
			return "", fmt.Errorf("%w: resubmission window is %s", ErrTooSoon, s.throttleWindow)
		}
	}

	history, err := s.store.ListCrowdFeedbackByUser(ctx, restaurantID, userID)
	if err != nil {
		return "", fmt.Errorf("submit crowd feedback: %w", err)
	}
	if crowd.RecentlySubmitted(history, userID, s.throttleWindow, now) {
		metrics.RecordThrottleRejection()
		return "", fmt.Errorf("%w: resubmission window is %s", ErrTooSoon, s.throttleWindow)
	}

	id, err := s.store.AppendCrowdFeedback(ctx, model.CrowdFeedback{
		RestaurantID: restaurantID,
		UserID:       userID,
		Level:        level,
		Timestamp:    now,
	})
	if err != nil {
		return "", fmt.Errorf("submit crowd feedback: %w", err)
	}

	if s.guard != nil {
		if err := s.guard.Mark(ctx, restaurantID, userID); err != nil {
			s.log.Debug(ctx, "throttle guard mark failed", logger.Error(err))
		}
	}

	metrics.RecordFeedbackSubmission()
	s.log.Info(ctx, "crowd feedback accepted",
		logger.String("restaurantID", restaurantID),
		logger.String("userID", userID),
		logger.Int("level", int(level)),
		logger.String("feedbackID", id),
	)
	return id, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"uptimeSeconds":        int64(time.Since(s.startedAt).Seconds()),
		"crowdWindow":          s.estimator.Window().String(),
		"throttleWindow":       s.throttleWindow.String(),
		"fetchConcurrency":     s.fetchConcurrency,
		"throttleGuardEnabled": s.guard != nil,
	}
}
