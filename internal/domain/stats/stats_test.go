package stats_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/umairtariqsalam/Palate/internal/domain/model"
	"github.com/umairtariqsalam/Palate/internal/domain/stats"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func votes(accurate, inaccurate int) map[string]model.Vote {
	m := make(map[string]model.Vote, accurate+inaccurate)
	for i := 0; i < accurate; i++ {
		m[string(rune('a'+i))] = model.Vote{Accurate: true, Timestamp: testNow}
	}
	for i := 0; i < inaccurate; i++ {
		m[string(rune('n'+i))] = model.Vote{Accurate: false, Timestamp: testNow}
	}
	return m
}

func TestAggregate(t *testing.T) {
	Convey("Given a user with no reviews", t, func() {
		Convey("When aggregating", func() {
			s := stats.Aggregate(nil, nil, testNow)

			Convey("Then every field is zero", func() {
				So(s, ShouldResemble, model.UserStats{})
			})
		})
	})

	Convey("Given a user with reviews and votes", t, func() {
		restaurants := map[string]*model.Restaurant{
			"rest-1": {ID: "rest-1", Name: "Noodle Bar", Category: "asian", Region: "downtown"},
			"rest-2": {ID: "rest-2", Name: "Grill House", Category: "bbq", Region: "uptown"},
		}
		reviews := []model.Review{
			{ID: "rv-1", RestaurantID: "rest-1", CreatedAt: testNow.Add(-72 * time.Hour), Votes: votes(4, 0)},
			{ID: "rv-2", RestaurantID: "rest-1", CreatedAt: testNow.Add(-48 * time.Hour), Votes: votes(1, 1)},
			{ID: "rv-3", RestaurantID: "rest-2", CreatedAt: testNow.Add(-24 * time.Hour)},
		}

		Convey("When aggregating", func() {
			s := stats.Aggregate(reviews, restaurants, testNow)

			Convey("Then review and vote totals are counted", func() {
				So(s.TotalReviews, ShouldEqual, 3)
				So(s.TotalVotes, ShouldEqual, 6)
				So(s.AccurateVotes, ShouldEqual, 5)
				So(s.InaccurateVotes, ShouldEqual, 1)
			})

			Convey("Then the accuracy average weighs reviews equally, not votes", func() {
				// Per review: 100% (4/4) and 50% (1/2). The vote-less
				// review is excluded. Mean is 75, not the global 5/6.
				So(s.AvgAccuracyPercent, ShouldEqual, 75.0)
				So(s.AvgAccuracyPercent, ShouldNotAlmostEqual, 100.0*5.0/6.0, 1e-9)
			})

			Convey("Then variety fields count distinct values", func() {
				So(s.UniqueRestaurants, ShouldEqual, 2)
				So(s.UniqueCategories, ShouldEqual, 2)
				So(s.UniqueRegions, ShouldEqual, 2)
				So(s.RepeatedRestaurants, ShouldEqual, 1)
			})

			Convey("Then days active spans back to the earliest review", func() {
				So(s.DaysActive, ShouldEqual, 3)
			})

			Convey("And aggregating again yields the same record", func() {
				So(stats.Aggregate(reviews, restaurants, testNow), ShouldResemble, s)
			})
		})
	})

	Convey("Given reviews pointing at unknown restaurants", t, func() {
		reviews := []model.Review{
			{ID: "rv-1", RestaurantID: "gone-1", CreatedAt: testNow.Add(-time.Hour)},
			{ID: "rv-2", RestaurantID: "gone-1", CreatedAt: testNow.Add(-2 * time.Hour)},
		}

		Convey("When aggregating with an empty restaurant map", func() {
			s := stats.Aggregate(reviews, nil, testNow)

			Convey("Then identity-based fields still count", func() {
				So(s.UniqueRestaurants, ShouldEqual, 1)
				So(s.RepeatedRestaurants, ShouldEqual, 1)
			})

			Convey("Then metadata-based fields stay zero", func() {
				So(s.UniqueCategories, ShouldEqual, 0)
				So(s.UniqueRegions, ShouldEqual, 0)
			})
		})
	})

	Convey("Given reviews with missing restaurant ids", t, func() {
		reviews := []model.Review{
			{ID: "rv-1", CreatedAt: testNow.Add(-time.Hour), Votes: votes(2, 0)},
			{ID: "rv-2", RestaurantID: "rest-1", CreatedAt: testNow.Add(-time.Hour)},
		}
		restaurants := map[string]*model.Restaurant{
			"rest-1": {ID: "rest-1", Category: "asian", Region: "downtown"},
		}

		Convey("When aggregating", func() {
			s := stats.Aggregate(reviews, restaurants, testNow)

			Convey("Then the id-less review counts toward totals but not variety", func() {
				So(s.TotalReviews, ShouldEqual, 2)
				So(s.TotalVotes, ShouldEqual, 2)
				So(s.UniqueRestaurants, ShouldEqual, 1)
			})
		})
	})
}

func TestDaysActive(t *testing.T) {
	Convey("Given reviews at various ages", t, func() {
		Convey("When the earliest review is under a day old", func() {
			reviews := []model.Review{
				{ID: "rv-1", CreatedAt: testNow.Add(-3 * time.Hour)},
			}
			s := stats.Aggregate(reviews, nil, testNow)

			Convey("Then days active is floored at 1", func() {
				So(s.DaysActive, ShouldEqual, 1)
			})
		})

		Convey("When the earliest review is 90 days old", func() {
			reviews := []model.Review{
				{ID: "rv-1", CreatedAt: testNow.Add(-90 * 24 * time.Hour)},
				{ID: "rv-2", CreatedAt: testNow.Add(-10 * 24 * time.Hour)},
			}
			s := stats.Aggregate(reviews, nil, testNow)

			Convey("Then days active is 90", func() {
				So(s.DaysActive, ShouldEqual, 90)
			})
		})

		Convey("When no review carries a timestamp", func() {
			reviews := []model.Review{
				{ID: "rv-1"},
				{ID: "rv-2"},
			}
			s := stats.Aggregate(reviews, nil, testNow)

			Convey("Then days active is 0", func() {
				So(s.DaysActive, ShouldEqual, 0)
			})
		})

		Convey("When only some reviews carry a timestamp", func() {
			reviews := []model.Review{
				{ID: "rv-1"},
				{ID: "rv-2", CreatedAt: testNow.Add(-5 * 24 * time.Hour)},
			}
			s := stats.Aggregate(reviews, nil, testNow)

			Convey("Then the zero timestamp is ignored", func() {
				So(s.DaysActive, ShouldEqual, 5)
			})
		})
	})
}
