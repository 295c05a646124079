package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/google/uuid"
)

// ratingPool skews generated ratings towards the upper half of the scale.
var ratingPool = []int{1, 2, 3, 4, 5, 6, 6, 7, 7, 7, 8, 8, 8, 8, 9, 9, 9, 10}

var (
	firstNames = []string{"Ada", "Bram", "Clara", "Dmitri", "Elena", "Farid", "Greta", "Hiro", "Ines", "Jonas", "Kira", "Leon", "Mira", "Nadia", "Oskar", "Priya", "Quinn", "Rosa", "Sven", "Tomas", "Uma", "Viktor", "Wen", "Yara", "Zane"}
	lastNames  = []string{"Abbott", "Baptiste", "Castillo", "Dubois", "Eriksen", "Fujita", "Grant", "Halloran", "Ivanova", "Jaramillo", "Kowalski", "Lindqvist", "Moreau", "Nakamura", "Okafor", "Petrova", "Quiroga", "Rahman", "Santoro", "Takahashi", "Underwood", "Valdez", "Whitlock", "Yilmaz", "Zielinski"}
	adjectives = []string{"Silent", "Hidden", "Broken", "Golden", "Last", "Distant", "Burning", "Frozen", "Forgotten", "Crimson", "Endless", "Hollow", "Quiet", "Restless", "Wandering", "Bitter", "Velvet", "Iron", "Paper", "Glass"}
	nouns      = []string{"River", "Garden", "Empire", "Harbor", "Winter", "Machine", "Orchard", "Mirror", "Archive", "Lantern", "Kingdom", "Shore", "Tower", "Voyage", "Signal", "Cartographer", "Labyrinth", "Meridian", "Atlas", "Tide"}
	genres     = []string{"Fiction", "Fantasy", "Science", "History", "Poetry", "Mystery", "Romance", "Travel", "Philosophy", "Biography", "Horror", "Drama", "Crime", "Art", "Music", "Cooking", "Nature", "Politics", "Economics", "Religion"}
	presses    = []string{"Press", "Books", "House", "Editions", "Publishing", "& Sons", "Media", "Imprint"}
	words      = []string{"a", "book", "that", "stays", "with", "you", "long", "after", "the", "final", "page", "slow", "start", "but", "worth", "it", "beautifully", "written", "characters", "felt", "real", "ending", "surprised", "me", "would", "recommend"}
)

// generator produces deterministic catalog fixtures from a seeded source.
type generator struct {
	rng *rand.Rand
	now time.Time
}

func newGenerator(seed int64, now time.Time) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

func (g *generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *generator) authorName() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

// categoryName is unique for distinct n, since category names are.
func (g *generator) categoryName(n int) string {
	return fmt.Sprintf("%s %s %d", g.pick(adjectives), g.pick(genres), n)
}

func (g *generator) title() string {
	switch g.rng.Intn(3) {
	case 0:
		return "The " + g.pick(adjectives) + " " + g.pick(nouns)
	case 1:
		return g.pick(nouns) + " of the " + g.pick(adjectives) + " " + g.pick(nouns)
	default:
		return g.pick(adjectives) + " " + g.pick(nouns)
	}
}

func (g *generator) publisher() string {
	return g.pick(lastNames) + " " + g.pick(presses)
}

// isbn13 returns a random ISBN-13 with the 978 prefix and a valid check digit.
func (g *generator) isbn13() string {
	digits := make([]byte, 0, 13)
	digits = append(digits, '9', '7', '8')
	for len(digits) < 12 {
		digits = append(digits, byte('0'+g.rng.Intn(10)))
	}
	return string(append(digits, isbnCheckDigit(digits)))
}

func isbnCheckDigit(digits []byte) byte {
	sum := 0
	for i, d := range digits {
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(d-'0') * weight
	}
	return byte('0' + (10-sum%10)%10)
}

func (g *generator) sentence(min, max int) string {
	n := min + g.rng.Intn(max-min+1)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.pick(words)
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func (g *generator) availability() string {
	return data.AvailabilityStatuses[g.rng.Intn(len(data.AvailabilityStatuses))]
}

func (g *generator) location() string {
	return fmt.Sprintf("Aisle %d", 1+g.rng.Intn(40))
}

func (g *generator) year() int {
	return 1950 + g.rng.Intn(75)
}

// price is in cents, between 5.00 and 100.00.
func (g *generator) price() int64 {
	return int64(500 + g.rng.Intn(9501))
}

// distinct returns n different elements of ids, or all of them when n exceeds len(ids).
func (g *generator) distinct(ids []int64, n int) []int64 {
	if n >= len(ids) {
		return append([]int64(nil), ids...)
	}
	seen := make(map[int]struct{}, n)
	out := make([]int64, 0, n)
	for len(out) < n {
		i := g.rng.Intn(len(ids))
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, ids[i])
	}
	return out
}

func (g *generator) raters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
	}
	return out
}

func (g *generator) rating() int {
	return ratingPool[g.rng.Intn(len(ratingPool))]
}

// ratedAt is between zero and ninety days before now.
func (g *generator) ratedAt() time.Time {
	return g.now.Add(-time.Duration(g.rng.Int63n(int64(90 * 24 * time.Hour))))
}

// review returns nil for roughly seven in ten ratings.
func (g *generator) review() interface{} {
	if g.rng.Intn(10) < 7 {
		return nil
	}
	return g.sentence(5, 15)
}
