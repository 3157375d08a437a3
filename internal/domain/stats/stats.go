// Package stats aggregates a user's review history into a flat
// statistics record consumed by the reputation scorers.
package stats

import (
	"time"

	"github.com/umairtariqsalam/Palate/internal/domain/accuracy"
	"github.com/umairtariqsalam/Palate/internal/domain/model"
)

// Aggregate folds the complete list of a user's reviews and the map of
// referenced restaurants into a UserStats record. It is pure: now is the
// caller's clock reading, and identical input yields identical output.
//
// Restaurants missing from the map contribute nothing to the category and
// region sets; that is also how partial fetch failures degrade. A user
// with zero reviews gets the canonical all-zero record with DaysActive=0.
func Aggregate(reviews []model.Review, restaurants map[string]*model.Restaurant, now time.Time) model.UserStats {
	var s model.UserStats

	s.TotalReviews = len(reviews)
	if s.TotalReviews == 0 {
		return s
	}

	s.DaysActive = daysActive(reviews, now)

	// Vote counts and the per-review accuracy average. Reviews carry
	// equal weight in the average regardless of how many votes each one
	// drew; the global accurate/inaccurate split is tracked separately.
	accuracySum := 0.0
	reviewsWithVotes := 0
	for _, r := range reviews {
		if len(r.Votes) == 0 {
			continue
		}
		s.TotalVotes += len(r.Votes)
		for _, v := range r.Votes {
			if v.Accurate {
				s.AccurateVotes++
			} else {
				s.InaccurateVotes++
			}
		}
		accuracySum += accuracy.Percent(r.Votes)
		reviewsWithVotes++
	}
	if reviewsWithVotes > 0 {
		s.AvgAccuracyPercent = accuracySum / float64(reviewsWithVotes)
	}

	// Variety counts over restaurant identity and metadata.
	uniqueRestaurants := make(map[string]int)
	categories := make(map[string]struct{})
	regions := make(map[string]struct{})
	for _, r := range reviews {
		if r.RestaurantID == "" {
			continue
		}
		uniqueRestaurants[r.RestaurantID]++
		rest := restaurants[r.RestaurantID]
		if rest == nil {
			continue
		}
		if rest.Category != "" {
			categories[rest.Category] = struct{}{}
		}
		if rest.Region != "" {
			regions[rest.Region] = struct{}{}
		}
	}
	s.UniqueRestaurants = len(uniqueRestaurants)
	s.UniqueCategories = len(categories)
	s.UniqueRegions = len(regions)
	for _, n := range uniqueRestaurants {
		if n >= 2 {
			s.RepeatedRestaurants++
		}
	}

	// Comment aggregation is reserved; the fields stay at zero.
	return s
}

// daysActive is whole days since the earliest review, floored at 1 once
// any timestamped review exists. Reviews without a creation timestamp are
// excluded from the minimum rather than treated as "now"; if none carry
// one the answer is 0.
func daysActive(reviews []model.Review, now time.Time) int64 {
	var earliest time.Time
	for _, r := range reviews {
		if r.CreatedAt.IsZero() {
			continue
		}
		if earliest.IsZero() || r.CreatedAt.Before(earliest) {
			earliest = r.CreatedAt
		}
	}
	if earliest.IsZero() {
		return 0
	}
	days := int64(now.Sub(earliest) / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}
