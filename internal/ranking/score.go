package ranking

import (
	"math"
	"time"

	"readit/internal/config"
)

// ageOffsetHours keeps brand-new posts from dividing by zero and dampens
// the advantage of being seconds old.
const ageOffsetHours = 2.0

type Weights struct {
	Upvote   float64
	Downvote float64
	Comment  float64
	Share    float64
	Gravity  float64
}

func DefaultWeights() Weights {
	return Weights{
		Upvote:   1.0,
		Downvote: 1.0,
		Comment:  2.0,
		Share:    3.0,
		Gravity:  1.5,
	}
}

func WeightsFromConfig(cfg config.Trending) Weights {
	return Weights{
		Upvote:   cfg.UpvoteWeight,
		Downvote: cfg.DownvoteWeight,
		Comment:  cfg.CommentWeight,
		Share:    cfg.ShareWeight,
		Gravity:  cfg.Gravity,
	}
}

type Counters struct {
	Upvotes      int
	Downvotes    int
	CommentCount int
	ShareCount   int
}

// Score computes the time-decayed trending score for a post. Engagement is a
// weighted sum divided by (age+2)^gravity, so older posts sink and a burst of
// votes on a fresh post dominates. A net-negative post scores below zero and
// sinks in ranking; it is deliberately not clamped.
func Score(c Counters, createdAt, now time.Time, w Weights) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}

	engagement := w.Upvote*float64(c.Upvotes) -
		w.Downvote*float64(c.Downvotes) +
		w.Comment*float64(c.CommentCount) +
		w.Share*float64(c.ShareCount)

	return engagement / math.Pow(ageHours+ageOffsetHours, w.Gravity)
}
