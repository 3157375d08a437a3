// Package model contains domain models passed between layers.
package model

import "time"

// Vote is a single accuracy vote on a review. Votes live in a map keyed
// by voter id, so a voter holds at most one vote per review; a changed
// vote overwrites the previous one (no history).
type Vote struct {
	Accurate  bool      `json:"accurate" bson:"accurate"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Review mirrors a review document. The engine consumes but does not own
// these: it reads the identity, timestamps and the vote map.
//
// AccuracyPercent is derived from Votes and never trusted from storage;
// read paths recompute it whenever a review is materialized.
type Review struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	AuthorID        string          `json:"userId" bson:"userId"`
	RestaurantID    string          `json:"restaurantId" bson:"restaurantId"`
	Rating          float64         `json:"rating" bson:"rating"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	Votes           map[string]Vote `json:"votes" bson:"votes"`
	AccuracyPercent float64         `json:"accuracyPercent" bson:"-"`
}

// Restaurant carries the metadata the stats aggregation needs. Category
// and Region are optional in the documents; absent values decode to "".
type Restaurant struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category" bson:"category"`
	Region   string `json:"region" bson:"region"`
}

// UserStats is the flat aggregate produced from a user's review history.
// The comment fields are carried at zero until comment aggregation lands;
// they stay in the record so stored shapes do not change underneath
// consumers.
type UserStats struct {
	TotalReviews              int     `json:"totalReviews"`
	DaysActive                int64   `json:"daysActive"`
	TotalVotes                int     `json:"totalVotes"`
	AccurateVotes             int     `json:"accurateVotes"`
	InaccurateVotes           int     `json:"inaccurateVotes"`
	AvgAccuracyPercent        float64 `json:"avgAccuracyPercent"`
	UniqueRestaurants         int     `json:"uniqueRestaurants"`
	UniqueCategories          int     `json:"uniqueCategories"`
	UniqueRegions             int     `json:"uniqueRegions"`
	RepeatedRestaurants       int     `json:"repeatedRestaurants"`
	TotalCommentsMade         int     `json:"totalCommentsMade"`
	TotalCommentLikesReceived int     `json:"totalCommentLikesReceived"`
}

// CrowdFeedback is one user's crowd report for a restaurant. Records are
// append-only and never mutated; only a user's latest in-window record
// counts toward an estimate.
type CrowdFeedback struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	RestaurantID string     `json:"restaurantId" bson:"restaurantId"`
	UserID       string     `json:"userId" bson:"userId"`
	Level        CrowdLevel `json:"crowdingLevel" bson:"crowdingLevel"`
	Timestamp    time.Time  `json:"timestamp" bson:"timestamp"`
}

// CrowdDensityResult is the classification computed from recent feedback.
// Level 0 with HasRecentData=false means "nobody reported recently" and is
// a successful outcome, distinct from a failed fetch.
type CrowdDensityResult struct {
	Level         CrowdLevel `json:"crowdingLevel"`
	Status        string     `json:"status"`
	Description   string     `json:"description"`
	Color         string     `json:"color"`
	FeedbackCount int        `json:"feedbackCount"`
	HasRecentData bool       `json:"hasRecentData"`
}
