package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemchat/internal/deck"
)

func TestScoreCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		category Category
	}{
		{"high card", "AsKh9d5c2s", HighCard},
		{"one pair", "AsAh9d5c2s", OnePair},
		{"two pair", "AsAh9d9c2s", TwoPair},
		{"three of a kind", "AsAhAd5c2s", ThreeOfAKind},
		{"straight", "9s8h7d6c5s", Straight},
		{"ace high straight", "AsKhQdJcTs", Straight},
		{"wheel straight", "As2h3d4c5s", Straight},
		{"flush", "AsKs9s5s2s", Flush},
		{"full house", "AsAhAd9c9s", FullHouse},
		{"four of a kind", "AsAhAdAc9s", FourOfAKind},
		{"straight flush", "9s8s7s6s5s", StraightFlush},
		{"steel wheel", "As2s3s4s5s", StraightFlush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(deck.MustParseCards(tt.cards))
			assert.Equal(t, tt.category, score.Category())
			assert.Equal(t, tt.category.String(), score.String())
		})
	}
}

func TestScoreOrdering(t *testing.T) {
	t.Parallel()

	// Each hand strictly beats the next.
	descending := []string{
		"AsKsQsJsTs", // royal flush
		"9s8s7s6s5s", // straight flush
		"As2s3s4s5s", // steel wheel ranks below any higher straight flush
		"AsAhAdAc9s", // quads
		"KsKhKdKcAs", // lower quads despite ace kicker
		"AsAhAd9c9s", // full house
		"KsKhKdAcAs", // lower full house
		"AsKs9s5s2s", // flush
		"AsKhQdJcTs", // straight
		"9s8h7d6c5s", // lower straight
		"As2h3d4c5s", // wheel
		"AsAhAd5c2s", // trips
		"AsAhKdKc2s", // two pair
		"AsAh9d5c2s", // pair
		"AsKh9d5c2s", // high card
	}

	for i := 1; i < len(descending); i++ {
		hi := Score(deck.MustParseCards(descending[i-1]))
		lo := Score(deck.MustParseCards(descending[i]))
		assert.Greater(t, hi, lo, "%s should beat %s", descending[i-1], descending[i])
	}
}

func TestScoreKickers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		better string
		worse  string
	}{
		{"pair kicker", "AsAh9d5c3s", "AsAh9d5c2s"},
		{"higher pair beats kickers", "KsKh2d3c4s", "QsQhAdKcJs"},
		{"two pair second pair", "AsAhKdKc2s", "AsAhQdQcKs"},
		{"flush second card", "AsQs9s5s2s", "AsJs9s5s2s"},
		{"full house trips decide", "KsKhKd2c2s", "QsQhQdAcAs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			better := Score(deck.MustParseCards(tt.better))
			worse := Score(deck.MustParseCards(tt.worse))
			assert.Greater(t, better, worse)
		})
	}
}

func TestScoreTrueTies(t *testing.T) {
	t.Parallel()

	// Same ranks, different suits: identical scores, split pot at showdown.
	a := Score(deck.MustParseCards("AsKh9d5c2s"))
	b := Score(deck.MustParseCards("AdKc9s5h2d"))
	assert.Equal(t, a, b)
}

func TestBestFive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		seven    string
		category Category
		want     string // expected best five, when a unique answer exists
	}{
		{
			name:     "flush hidden in seven",
			seven:    "AsKs2h9s5s3d2s",
			category: Flush,
			want:     "AsKs9s5s2s",
		},
		{
			name:     "straight using one hole card",
			seven:    "9s8h7d6c5s2h2d",
			category: Straight,
			want:     "9s8h7d6c5s",
		},
		{
			name:     "board quads",
			seven:    "8s8h8d8cAh2c3h",
			category: FourOfAKind,
			want:     "8s8h8d8cAh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, score := BestFive(deck.MustParseCards(tt.seven))
			require.Len(t, best, 5)
			assert.Equal(t, tt.category, score.Category())

			want := deck.MustParseCards(tt.want)
			assert.ElementsMatch(t, want, best)
			assert.Equal(t, Score(want), score)
		})
	}
}

func TestBestFiveMatchesExhaustiveScore(t *testing.T) {
	t.Parallel()

	// The returned cards must re-score to the returned score.
	seven := deck.MustParseCards("AsAh8d8c8sKh2d")
	best, score := BestFive(seven)
	require.Len(t, best, 5)
	assert.Equal(t, Score(best), score)
	assert.Equal(t, FullHouse, score.Category())
}
