package holdem

import (
	"fmt"
)

// HandValueType 牌型 1(high card) - 10(royal flush)
type HandValueType int8

const (
	HVHighCard HandValueType = iota + 1
	HVOnePair
	HVTwoPair
	HVThreeOfAKind
	HVStraight
	HVFlush
	HVFullHouse
	HVFourOfAKind
	HVStraightFlush
	HVRoyalFlush
)

func (c HandValueType) String() string {
	switch c {
	case HVHighCard:
		return "High card"
	case HVOnePair:
		return "One pair"
	case HVTwoPair:
		return "Two pairs"
	case HVThreeOfAKind:
		return "Three of a kind"
	case HVStraight:
		return "Straight"
	case HVFlush:
		return "Flush"
	case HVFullHouse:
		return "Full house"
	case HVFourOfAKind:
		return "Four of a kind"
	case HVStraightFlush:
		return "Straight flush"
	case HVRoyalFlush:
		return "Royal flush"
	}
	return "Unknown hand value type"
}

// tiebreakLen length of the tiebreak sequence of each tier
var tiebreakLen = [...]int8{
	HVHighCard:      5,
	HVOnePair:       4,
	HVTwoPair:       3,
	HVThreeOfAKind:  3,
	HVStraight:      5,
	HVFlush:         5,
	HVFullHouse:     2,
	HVFourOfAKind:   2,
	HVStraightFlush: 5,
	HVRoyalFlush:    5,
}

// HandValue evaluated 5 card hand
type HandValue struct {
	cards    [5]Card
	handType HandValueType
	ranks    [5]int8
	n        int8
}

func (c HandValue) Type() HandValueType {
	return c.handType
}

// Tiebreak ranks compared element by element within a tier
func (c HandValue) Tiebreak() []int8 {
	out := make([]int8, c.n)
	copy(out, c.ranks[:c.n])
	return out
}

// Cards the five cards as they were evaluated
func (c HandValue) Cards() [5]Card {
	return c.cards
}

func (c HandValue) IsZero() bool {
	return c.handType == 0
}

// Compare -1, 0 or 1. Tier first, then tiebreak ranks, first difference decides
func (c HandValue) Compare(o HandValue) int {
	if c.handType != o.handType {
		if c.handType < o.handType {
			return -1
		}
		return 1
	}
	for i := int8(0); i < c.n && i < o.n; i++ {
		if c.ranks[i] != o.ranks[i] {
			if c.ranks[i] < o.ranks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (c HandValue) Equal(o HandValue) bool {
	return c.Compare(o) == 0
}

func (c HandValue) String() string {
	return fmt.Sprintf("%s %v : %s", cardsString(c.cards[:]), c.Tiebreak(), c.handType)
}

type rankGroup struct {
	num   int8
	count int8
}

// Evaluate classifies exactly five distinct cards
func Evaluate(cards []Card) (HandValue, error) {
	if len(cards) != 5 {
		return HandValue{}, newError(KindInvalidRequest, "cards length is %d, not 5", len(cards))
	}
	if err := checkCards(cards); err != nil {
		return HandValue{}, err
	}
	var hv HandValue
	copy(hv.cards[:], cards)
	hv.evaluate()
	return hv, nil
}

func (c *HandValue) evaluate() {
	var counts [maxNum + 1]int8
	isFlush := true
	for _, card := range c.cards {
		counts[card.Num]++
		if card.Suit != c.cards[0].Suit {
			isFlush = false
		}
	}
	// bigger groups first, higher rank first inside a group size
	var groups [5]rankGroup
	g := 0
	for count := int8(4); count >= 1; count-- {
		for num := int8(maxNum); num >= minNum; num-- {
			if counts[num] == count {
				groups[g] = rankGroup{num: num, count: count}
				g++
			}
		}
	}
	for i := 0; i < g; i++ {
		c.ranks[i] = groups[i].num
	}
	isStraight := false
	if g == 5 {
		if groups[0].num-groups[4].num == 4 {
			isStraight = true
		} else if groups[0].num == 14 && groups[1].num == 5 {
			// wheel, the ace plays low
			isStraight = true
			c.ranks = [5]int8{5, 4, 3, 2, 1}
		}
	}
	switch {
	case isStraight && isFlush:
		if c.ranks[0] == 14 {
			c.handType = HVRoyalFlush
		} else {
			c.handType = HVStraightFlush
		}
	case groups[0].count == 4:
		c.handType = HVFourOfAKind
	case groups[0].count == 3 && groups[1].count == 2:
		c.handType = HVFullHouse
	case isFlush:
		c.handType = HVFlush
	case isStraight:
		c.handType = HVStraight
	case groups[0].count == 3:
		c.handType = HVThreeOfAKind
	case groups[0].count == 2 && groups[1].count == 2:
		c.handType = HVTwoPair
	case groups[0].count == 2:
		c.handType = HVOnePair
	default:
		c.handType = HVHighCard
	}
	c.n = tiebreakLen[c.handType]
}

// fiveOfSeven the 21 index subsets of 5 out of 7 cards, lexicographic
var fiveOfSeven = [21][5]uint8{
	{0, 1, 2, 3, 4}, {0, 1, 2, 3, 5}, {0, 1, 2, 3, 6}, {0, 1, 2, 4, 5}, {0, 1, 2, 4, 6},
	{0, 1, 2, 5, 6}, {0, 1, 3, 4, 5}, {0, 1, 3, 4, 6}, {0, 1, 3, 5, 6}, {0, 1, 4, 5, 6},
	{0, 2, 3, 4, 5}, {0, 2, 3, 4, 6}, {0, 2, 3, 5, 6}, {0, 2, 4, 5, 6}, {0, 3, 4, 5, 6},
	{1, 2, 3, 4, 5}, {1, 2, 3, 4, 6}, {1, 2, 3, 5, 6}, {1, 2, 4, 5, 6}, {1, 3, 4, 5, 6},
	{2, 3, 4, 5, 6},
}

// BestHand best five card hand out of 5 to 7 cards
func BestHand(cards []Card) (HandValue, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return HandValue{}, newError(KindInvalidRequest, "unsupported card length %d", n)
	}
	if err := checkCards(cards); err != nil {
		return HandValue{}, err
	}
	var best HandValue
	for _, idx := range fiveOfSeven {
		if int(idx[4]) >= n {
			continue
		}
		var hv HandValue
		for i, j := range idx {
			hv.cards[i] = cards[j]
		}
		hv.evaluate()
		if best.IsZero() || hv.Compare(best) > 0 {
			best = hv
		}
	}
	return best, nil
}

// maxHandValues keys holding the maximal value, all of them when tied
func maxHandValues(hvs map[string]HandValue) map[string]HandValue {
	var max HandValue
	for _, v := range hvs {
		if max.IsZero() || v.Compare(max) > 0 {
			max = v
		}
	}
	ret := make(map[string]HandValue)
	for k, v := range hvs {
		if v.Equal(max) {
			ret[k] = v
		}
	}
	return ret
}
