package accuracy_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/umairtariqsalam/Palate/internal/domain/accuracy"
	"github.com/umairtariqsalam/Palate/internal/domain/model"
)

func vote(accurate bool) model.Vote {
	return model.Vote{Accurate: accurate, Timestamp: time.Now()}
}

func TestPercent(t *testing.T) {
	Convey("Given a review's vote map", t, func() {
		Convey("When the map is nil", func() {
			Convey("Then accuracy is 0", func() {
				So(accuracy.Percent(nil), ShouldEqual, 0.0)
			})
		})

		Convey("When the map is empty", func() {
			Convey("Then accuracy is 0", func() {
				So(accuracy.Percent(map[string]model.Vote{}), ShouldEqual, 0.0)
			})
		})

		Convey("When every vote is accurate", func() {
			votes := map[string]model.Vote{
				"u1": vote(true),
				"u2": vote(true),
				"u3": vote(true),
			}

			Convey("Then accuracy is 100", func() {
				So(accuracy.Percent(votes), ShouldEqual, 100.0)
			})
		})

		Convey("When every vote is inaccurate", func() {
			votes := map[string]model.Vote{
				"u1": vote(false),
				"u2": vote(false),
			}

			Convey("Then accuracy is 0", func() {
				So(accuracy.Percent(votes), ShouldEqual, 0.0)
			})
		})

		Convey("When votes are mixed", func() {
			votes := map[string]model.Vote{
				"u1": vote(true),
				"u2": vote(true),
				"u3": vote(true),
				"u4": vote(false),
			}

			Convey("Then accuracy is the accurate fraction times 100", func() {
				So(accuracy.Percent(votes), ShouldEqual, 75.0)
			})

			Convey("And the result does not depend on vote count parity", func() {
				votes["u5"] = vote(false)
				So(accuracy.Percent(votes), ShouldEqual, 60.0)
			})
		})

		Convey("When the split does not divide evenly", func() {
			votes := map[string]model.Vote{
				"u1": vote(true),
				"u2": vote(false),
				"u3": vote(false),
			}

			Convey("Then the result keeps the fractional part", func() {
				So(accuracy.Percent(votes), ShouldAlmostEqual, 100.0/3.0, 1e-9)
			})
		})
	})
}

func TestRefresh(t *testing.T) {
	Convey("Given a review with stale accuracy", t, func() {
		r := model.Review{
			ID:              "r1",
			AccuracyPercent: 12.5,
			Votes: map[string]model.Vote{
				"u1": vote(true),
				"u2": vote(false),
			},
		}

		Convey("When refreshed", func() {
			accuracy.Refresh(&r)

			Convey("Then the stored percentage matches the votes", func() {
				So(r.AccuracyPercent, ShouldEqual, 50.0)
			})
		})
	})

	Convey("Given a review with no votes", t, func() {
		r := model.Review{ID: "r2", AccuracyPercent: 80}

		Convey("When refreshed", func() {
			accuracy.Refresh(&r)

			Convey("Then the stored percentage resets to zero", func() {
				So(r.AccuracyPercent, ShouldEqual, 0.0)
			})
		})
	})
}
