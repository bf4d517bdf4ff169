package domain

import "math"

// RatingView is the read-time rating of a place, derived from its comments.
type RatingView struct {
	OverallRate   float64            `json:"rate"`
	TotalComments int                `json:"totalComments"`
	SubRatings    map[string]float64 `json:"subRatings"`
	Distribution  RatingDistribution `json:"distribution"`
}

// RatingDistribution counts comments by their rounded overall rate.
type RatingDistribution struct {
	Exceptional  int `json:"exceptional"`
	Great        int `json:"great"`
	Satisfactory int `json:"satisfactory"`
	Poor         int `json:"poor"`
	Bad          int `json:"bad"`
}

// AggregateRatings computes the rating view of a place of category c.
//
// The overall rate and every sub-rating are arithmetic means over all comments;
// with no comments they are 0. SubRatings always has exactly the category's
// dimensions as keys. A comment without sub-scores, or with sub-scores of
// another category, contributes 0 to each dimension but still counts.
func AggregateRatings(c Category, comments []Comment) RatingView {
	dims := c.Dimensions()
	sums := make(map[string]float64, len(dims))
	var total float64
	var dist RatingDistribution

	for _, cm := range comments {
		total += cm.Rate
		dist.add(cm.Rate)
		if cm.Scores == nil || cm.Scores.Category() != c {
			continue
		}
		values := cm.Scores.Values()
		for _, d := range dims {
			sums[d] += values[d]
		}
	}

	view := RatingView{
		TotalComments: len(comments),
		SubRatings:    make(map[string]float64, len(dims)),
		Distribution:  dist,
	}
	n := float64(len(comments))
	for _, d := range dims {
		view.SubRatings[d] = 0
		if n > 0 {
			view.SubRatings[d] = sums[d] / n
		}
	}
	if n > 0 {
		view.OverallRate = total / n
	}
	return view
}

func (d *RatingDistribution) add(rate float64) {
	switch r := math.Round(rate); {
	case r >= 5:
		d.Exceptional++
	case r == 4:
		d.Great++
	case r == 3:
		d.Satisfactory++
	case r == 2:
		d.Poor++
	default:
		d.Bad++
	}
}
