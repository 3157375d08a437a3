// Package reputation derives credibility and experience scores from a
// user's aggregated statistics.
//
// Both scores are explicit sums of weighted terms with hard thresholds.
// The thresholds are the contract: they are product tuning, not a model,
// and changing one changes every profile in the app.
package reputation

import (
	"math"

	"github.com/umairtariqsalam/Palate/internal/domain/model"
)

// CredibilityBreakdown carries the per-term contributions to a
// credibility score, for debug logging and inspection.
type CredibilityBreakdown struct {
	Base         float64
	Volume       float64
	Accuracy     float64
	Consistency  float64
	CommentBonus float64
}

// Total is the unclamped, unrounded sum of the terms.
func (b CredibilityBreakdown) Total() float64 {
	return b.Base + b.Volume + b.Accuracy + b.Consistency + b.CommentBonus
}

// ExperienceBreakdown carries the per-term contributions to an
// experience score.
type ExperienceBreakdown struct {
	Base               float64 // already multiplied by VarietyMultiplier
	VarietyMultiplier  float64
	ActivityRate       float64
	CategoryBonus      float64
	RegionBonus        float64
	DeepDiveBonus      float64
	ParticipationBonus float64
	ConsistencyBonus   float64
}

// Total is the unclamped, unrounded sum of the terms.
func (b ExperienceBreakdown) Total() float64 {
	return b.Base + b.ActivityRate + b.CategoryBonus + b.RegionBonus +
		b.DeepDiveBonus + b.ParticipationBonus + b.ConsistencyBonus
}

// Credibility scores how much the community's votes back the user's
// reviews. Clamped to >= 0 and rounded half away from zero at the end;
// no intermediate rounding.
func Credibility(s model.UserStats) int {
	return finalize(CredibilityParts(s).Total())
}

// CredibilityParts computes the credibility terms without clamping or
// rounding.
func CredibilityParts(s model.UserStats) CredibilityBreakdown {
	var b CredibilityBreakdown

	// Base points for having reviews at all, capped quickly.
	if s.TotalReviews > 0 {
		b.Base = math.Min(10, float64(s.TotalReviews)*2)
	}

	// Vote volume matters most: logarithmic once there is real volume,
	// linear ramps below that.
	votes := float64(s.TotalVotes)
	switch {
	case s.TotalVotes >= 10:
		b.Volume = math.Log(votes) * 15
	case s.TotalVotes >= 5:
		b.Volume = votes * 2
	case s.TotalVotes > 0:
		b.Volume = votes * 1
	}

	// Accuracy only moves the score once enough votes exist to mean
	// anything. Below five votes a high average earns a token bonus.
	if s.TotalVotes >= 5 {
		switch {
		case s.AvgAccuracyPercent >= 80:
			b.Accuracy = 20
		case s.AvgAccuracyPercent >= 60:
			b.Accuracy = 10
		case s.AvgAccuracyPercent < 40:
			b.Accuracy = -10
		}
	} else if s.TotalVotes > 0 && s.AvgAccuracyPercent >= 70 {
		b.Accuracy = 5
	}

	// Sustained volume at sustained accuracy.
	if s.TotalVotes >= 20 && s.AvgAccuracyPercent >= 70 {
		b.Consistency = math.Min(15, votes/10)
	}

	b.CommentBonus = float64(s.TotalCommentLikesReceived) * 1
	return b
}

// Experience scores the breadth and longevity of the user's reviewing.
// Clamped to >= 0 and rounded half away from zero at the end.
func Experience(s model.UserStats) int {
	return finalize(ExperienceParts(s).Total())
}

// ExperienceParts computes the experience terms without clamping or
// rounding.
func ExperienceParts(s model.UserStats) ExperienceBreakdown {
	var b ExperienceBreakdown

	b.VarietyMultiplier = 1.0
	if s.UniqueRestaurants >= 8 {
		b.VarietyMultiplier = 1 + float64(s.UniqueRestaurants)/50
	}
	b.Base = float64(s.TotalReviews) * 1 * b.VarietyMultiplier

	if s.DaysActive > 0 && s.TotalReviews > 0 {
		rate := float64(s.TotalReviews) / float64(s.DaysActive)
		if rate >= 0.2 {
			b.ActivityRate = math.Min(20, rate*50)
		}
	}

	if s.UniqueCategories >= 6 {
		b.CategoryBonus = float64(s.UniqueCategories) * 3
	}
	if s.UniqueRegions >= 4 {
		b.RegionBonus = float64(s.UniqueRegions) * 5
	}

	b.DeepDiveBonus = float64(s.RepeatedRestaurants) * 3

	if s.TotalCommentsMade >= 20 {
		b.ParticipationBonus = float64(s.TotalCommentsMade) * 0.5
	}

	if s.DaysActive >= 60 && s.TotalReviews >= 20 {
		b.ConsistencyBonus = math.Min(15, float64(s.DaysActive)/20)
	}
	return b
}

// finalize clamps to zero then rounds half away from zero.
func finalize(score float64) int {
	return int(math.Round(math.Max(0, score)))
}
