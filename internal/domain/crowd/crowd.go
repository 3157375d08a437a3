// Package crowd estimates restaurant crowd density from time-decayed
// user feedback.
package crowd

import (
	"time"

	"github.com/umairtariqsalam/Palate/internal/domain/model"
)

// Default windows. The estimate window is the sliding span feedback stays
// relevant for; the throttle window is the minimum gap between two
// submissions from the same user for the same restaurant.
const (
	DefaultWindow         = 60 * time.Minute
	DefaultThrottleWindow = 15 * time.Minute
)

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithWindow sets the sliding estimate window.
func WithWindow(d time.Duration) Option {
	return func(e *Estimator) {
		if d > 0 {
			e.window = d
		}
	}
}

// Estimator computes crowd density classifications. It holds no state
// between calls; every estimate is a pure fold over the feedback the
// caller fetched moments before.
type Estimator struct {
	window time.Duration
}

// NewEstimator creates an estimator with configuration options.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{window: DefaultWindow}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Window returns the configured sliding estimate window.
func (e *Estimator) Window() time.Duration {
	return e.window
}

// Estimate classifies crowd density from the restaurant's feedback log.
//
// Only records inside the window count, and only the latest in-window
// record per user; a user's older records are discarded even when the
// older one was their only in-window submission. Zero surviving records
// is a successful "no recent data" result, never an error; the caller
// distinguishes that from a failed fetch.
func (e *Estimator) Estimate(feedback []model.CrowdFeedback, now time.Time) model.CrowdDensityResult {
	cutoff := now.Add(-e.window)

	latest := make(map[string]model.CrowdFeedback)
	for _, f := range feedback {
		if f.Timestamp.IsZero() || !f.Timestamp.After(cutoff) {
			continue
		}
		if prev, ok := latest[f.UserID]; ok && !f.Timestamp.After(prev.Timestamp) {
			continue
		}
		latest[f.UserID] = f
	}

	if len(latest) == 0 {
		return model.CrowdDensityResult{
			Level:       model.LevelNoData,
			Status:      model.LevelNoData.Label(),
			Description: model.LevelNoData.Description(),
			Color:       model.LevelNoData.Color(),
		}
	}

	var weightedSum, totalWeight float64
	for _, f := range latest {
		w := e.timeWeight(now.Sub(f.Timestamp))
		weightedSum += float64(f.Level) * w
		totalWeight += w
	}
	var avg float64
	if totalWeight > 0 {
		avg = weightedSum / totalWeight
	}

	level := mapScore(avg)
	return model.CrowdDensityResult{
		Level:         level,
		Status:        level.Label(),
		Description:   level.Description(),
		Color:         level.Color(),
		FeedbackCount: len(latest),
		HasRecentData: true,
	}
}

// timeWeight decays a record's influence by age, in four equal bands
// across the window: 4x for the freshest quarter down to 1x for the
// oldest. Anything beyond the window weighs nothing.
func (e *Estimator) timeWeight(age time.Duration) float64 {
	quarter := e.window / 4
	switch {
	case age <= quarter:
		return 4.0
	case age <= 2*quarter:
		return 3.0
	case age <= 3*quarter:
		return 2.0
	case age <= e.window:
		return 1.0
	default:
		return 0.0
	}
}

// mapScore buckets a weighted average into the three crowd levels.
func mapScore(score float64) model.CrowdLevel {
	switch {
	case score <= 1.5:
		return model.LevelNotCrowded
	case score <= 2.5:
		return model.LevelModerate
	default:
		return model.LevelVeryCrowded
	}
}

// RecentlySubmitted reports whether the user has a feedback record within
// window of now among the given history. It backs the resubmission
// throttle; the check-then-append around it is not atomic, so two racing
// submissions can both pass.
func RecentlySubmitted(history []model.CrowdFeedback, userID string, window time.Duration, now time.Time) bool {
	cutoff := now.Add(-window)
	for _, f := range history {
		if f.UserID != userID {
			continue
		}
		if !f.Timestamp.IsZero() && f.Timestamp.After(cutoff) {
			return true
		}
	}
	return false
}
