package data

import (
	"strings"
	"testing"
	"time"

	"github.com/emzola/librarium/internal/validator"
	"github.com/stretchr/testify/assert"
)

var rules = RatingRules{Min: 1, Max: 10, ReviewMaxLength: 1000}

func TestValidateRating(t *testing.T) {
	tests := []struct {
		name   string
		rating Rating
		field  string
	}{
		{"lowest", Rating{Rating: 1}, ""},
		{"highest with review", Rating{Rating: 10, Review: strings.Repeat("a", 1000)}, ""},
		{"zero", Rating{Rating: 0}, "rating"},
		{"eleven", Rating{Rating: 11}, "rating"},
		{"long review", Rating{Rating: 5, Review: strings.Repeat("a", 1001)}, "review"},
		{"multibyte review counts characters", Rating{Rating: 5, Review: strings.Repeat("é", 1000)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateRating(v, &tt.rating, rules)
			if tt.field == "" {
				assert.True(t, v.Valid(), v.Errors)
				return
			}
			assert.Contains(t, v.Errors, tt.field)
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "0h 0m 0s", FormatRemaining(0))
	assert.Equal(t, "0h 0m 0s", FormatRemaining(-time.Minute))
	assert.Equal(t, "23h 59m 59s", FormatRemaining(24*time.Hour-time.Second))
	assert.Equal(t, "1h 1m 1s", FormatRemaining(time.Hour+time.Minute+time.Second+300*time.Millisecond))
}

func TestTrendingScore(t *testing.T) {
	// ten ratings of 9 in the recent window against ten of 5 before it
	assert.InDelta(t, 9.58, TrendingScore(9, 5, 10), 0.1)
	assert.Equal(t, 0.0, TrendingScore(7, 7, 3))
	assert.Less(t, TrendingScore(4, 8, 2), 0.0)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 8.0, Round2(8))
	assert.Equal(t, 7.67, Round2(23.0/3))
	assert.Equal(t, 9.59, Round2(9.587))
}

func TestValidateRankingTab(t *testing.T) {
	for _, tab := range RankingTabs {
		v := validator.New()
		ValidateRankingTab(v, tab)
		assert.True(t, v.Valid())
	}
	v := validator.New()
	ValidateRankingTab(v, "newest")
	assert.Contains(t, v.Errors, "tab")
}
