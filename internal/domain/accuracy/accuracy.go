// Package accuracy converts a review's vote map into an accuracy percent.
package accuracy

import "github.com/umairtariqsalam/Palate/internal/domain/model"

// Percent returns the share of votes marked accurate, in [0,100].
//
// A review with no votes is defined as 0% accurate, not "unknown"; the
// result is total over any vote map, including nil. The value must be
// recomputed whenever a vote is added, changed or removed; it is never
// ground truth on its own.
func Percent(votes map[string]model.Vote) float64 {
	if len(votes) == 0 {
		return 0.0
	}
	accurate := 0
	for _, v := range votes {
		if v.Accurate {
			accurate++
		}
	}
	return float64(accurate) * 100.0 / float64(len(votes))
}

// Refresh recomputes the derived AccuracyPercent field on a review from
// its current vote map. Read paths call this when materializing reviews
// so a stale persisted number is never observed.
func Refresh(r *model.Review) {
	r.AccuracyPercent = Percent(r.Votes)
}
