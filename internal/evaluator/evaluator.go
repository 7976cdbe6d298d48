// Package evaluator scores poker hands. A 5-card hand maps to a single
// comparable HandScore: the hand category dominates, and the card ranks that
// matter within the category break ties. The best 5-of-7 search is an
// exhaustive walk of all 21 subsets, which is what lets showdown report the
// literal five cards a winner used.
package evaluator

import (
	"sort"

	"github.com/lox/holdemchat/internal/deck"
)

// Category is the class of a 5-card poker hand
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the spoken name of a category, as used in channel messages
func (c Category) String() string {
	switch c {
	case HighCard:
		return "high card"
	case OnePair:
		return "one pair"
	case TwoPair:
		return "two pair"
	case ThreeOfAKind:
		return "three of a kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full house"
	case FourOfAKind:
		return "four of a kind"
	case StraightFlush:
		return "straight flush"
	default:
		return "unknown"
	}
}

// HandScore is a totally ordered score for a 5-card hand. The category
// occupies the high bits; the five tie-breaking ranks are packed below it in
// 4-bit nibbles, most significant first. Equal scores are true ties.
type HandScore int

// Category extracts the hand category from a score
func (s HandScore) Category() Category {
	return Category(s >> 20)
}

// String returns the category name for the score
func (s HandScore) String() string {
	return s.Category().String()
}

func packScore(cat Category, ranks ...int) HandScore {
	s := int(cat) << 20
	for i := 0; i < 5; i++ {
		r := 0
		if i < len(ranks) {
			r = ranks[i]
		}
		s |= r << uint(16-4*i)
	}
	return HandScore(s)
}

// Score ranks exactly five cards
func Score(cards []deck.Card) HandScore {
	if len(cards) != 5 {
		panic("evaluator: Score requires exactly 5 cards")
	}

	values := make([]int, 5)
	flush := true
	for i, c := range cards {
		values[i] = c.Value()
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	straightHigh := straightHighCard(values)

	switch {
	case flush && straightHigh > 0:
		return packScore(StraightFlush, straightHigh)
	case flush:
		return packScore(Flush, values...)
	case straightHigh > 0:
		return packScore(Straight, straightHigh)
	}

	// Group ranks by multiplicity: quads before trips before pairs before
	// kickers, higher ranks first within equal multiplicity.
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	grouped := make([]int, len(values))
	copy(grouped, values)
	sort.Slice(grouped, func(i, j int) bool {
		if counts[grouped[i]] != counts[grouped[j]] {
			return counts[grouped[i]] > counts[grouped[j]]
		}
		return grouped[i] > grouped[j]
	})

	var multiplicities []int
	for _, n := range counts {
		multiplicities = append(multiplicities, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(multiplicities)))

	switch {
	case multiplicities[0] == 4:
		return packScore(FourOfAKind, grouped...)
	case multiplicities[0] == 3 && multiplicities[1] == 2:
		return packScore(FullHouse, grouped...)
	case multiplicities[0] == 3:
		return packScore(ThreeOfAKind, grouped...)
	case multiplicities[0] == 2 && multiplicities[1] == 2:
		return packScore(TwoPair, grouped...)
	case multiplicities[0] == 2:
		return packScore(OnePair, grouped...)
	default:
		return packScore(HighCard, grouped...)
	}
}

// straightHighCard returns the high card of a straight formed by the given
// descending values, or 0 if they don't form one. The wheel (A-5-4-3-2)
// counts as a 5-high straight.
func straightHighCard(desc []int) int {
	for i := 1; i < len(desc); i++ {
		if desc[i] != desc[i-1]-1 {
			// Ace playing low: A,5,4,3,2
			if i == 1 && desc[0] == 14 && desc[1] == 5 {
				continue
			}
			return 0
		}
	}
	if desc[0] == 14 && desc[1] == 5 {
		return 5
	}
	return desc[0]
}

// BestFive finds the best 5-card hand within the given cards (5 to 7 of
// them), trying every 5-card subset. Category and rank alone don't identify
// which five cards were used, so showdown calls this to name the winning
// cards.
func BestFive(cards []deck.Card) ([]deck.Card, HandScore) {
	if len(cards) == 5 {
		return cards, Score(cards)
	}

	var bestHand []deck.Card
	var bestScore HandScore = -1
	subset := make([]deck.Card, 5)

	var choose func(start, n int)
	choose = func(start, n int) {
		if n == 5 {
			if s := Score(subset); s > bestScore {
				bestScore = s
				bestHand = append([]deck.Card(nil), subset...)
			}
			return
		}
		for i := start; i < len(cards); i++ {
			subset[n] = cards[i]
			choose(i+1, n+1)
		}
	}
	choose(0, 0)

	return bestHand, bestScore
}
