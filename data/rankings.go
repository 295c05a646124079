package data

import (
	"math"

	"github.com/emzola/librarium/internal/validator"
)

// RankingTab selects how authors are ranked.
type RankingTab string

const (
	TabPopularity RankingTab = "popularity"
	TabRating     RankingTab = "rating"
	TabTrending   RankingTab = "trending"
)

var RankingTabs = []RankingTab{TabPopularity, TabRating, TabTrending}

func ValidateRankingTab(v *validator.Validator, tab RankingTab) {
	v.Check(validator.PermittedValue(tab, RankingTabs...), "tab", "must be one of popularity, rating, trending")
}

// RankedAuthor is one row of an author ranking. Fields that do not apply
// to the requested tab are left empty.
type RankedAuthor struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	TotalRatings    int64       `json:"total_ratings"`
	AvgRating       *float64    `json:"avg_rating,omitempty"`
	PopularityVotes *int64      `json:"popularity_votes,omitempty"`
	RecentAvg       *float64    `json:"recent_avg,omitempty"`
	PreviousAvg     *float64    `json:"previous_avg,omitempty"`
	RecentCount     *int64      `json:"recent_count,omitempty"`
	TrendingScore   *float64    `json:"trending_score,omitempty"`
	BestBook        *BookRating `json:"best_book,omitempty"`
	WorstBook       *BookRating `json:"worst_book,omitempty"`
}

// BookRating is a book's mean rating, used for best and worst book highlights.
type BookRating struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	AvgRating float64 `json:"avg_rating"`
}

// TrendingScore weighs the change in average rating by recent activity.
func TrendingScore(recentAvg, previousAvg float64, recentCount int64) float64 {
	return (recentAvg - previousAvg) * math.Log(1+float64(recentCount))
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
