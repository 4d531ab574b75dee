package holdem

import (
	"strings"
)

// Suit 花色
type Suit int8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	// suitChars canonical suit alphabet, index == Suit
	suitChars = "CDHS"
	// rankChars index+2 == Num
	rankChars = "23456789TJQKA"
	minNum    = 2
	maxNum    = 14
)

var suitSymbols = [4]string{"♣", "♦", "♥", "♠"}

func (c Suit) String() string {
	if c < Clubs || c > Spades {
		return "?"
	}
	return string(suitChars[c])
}

// Symbol ♣♦♥♠
func (c Suit) Symbol() string {
	if c < Clubs || c > Spades {
		return "?"
	}
	return suitSymbols[c]
}

// Card immutable rank/suit pair
type Card struct {
	Num  int8 // 2-14
	Suit Suit // 0-3
}

func NewCard(num int8, suit Suit) (Card, error) {
	c := Card{Num: num, Suit: suit}
	if !c.valid() {
		return Card{}, newError(KindInvalidCard, "invalid card num(2-14)/suit(0-3): %d/%d", num, suit)
	}
	return c, nil
}

// ParseCard two characters, rank from 23456789TJQKA then suit from CDHS
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, newError(KindInvalidCard, "invalid card %q", s)
	}
	r := strings.IndexByte(rankChars, upper(s[0]))
	su := strings.IndexByte(suitChars, upper(s[1]))
	if r < 0 || su < 0 {
		return Card{}, newError(KindInvalidCard, "invalid card %q", s)
	}
	return Card{Num: int8(r + minNum), Suit: Suit(su)}, nil
}

func ParseCards(ss ...string) ([]Card, error) {
	cards := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func (c Card) valid() bool {
	return c.Num >= minNum && c.Num <= maxNum && c.Suit >= Clubs && c.Suit <= Spades
}

// index 0-51, only meaningful for valid cards
func (c Card) index() int {
	return int(c.Suit)*13 + int(c.Num-minNum)
}

func (c Card) NumString() string {
	if c.Num < minNum || c.Num > maxNum {
		return "?"
	}
	return string(rankChars[c.Num-minNum])
}

func (c Card) SuitString() string {
	return c.Suit.Symbol()
}

func (c Card) String() string {
	return c.NumString() + c.Suit.String()
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, newError(KindInvalidCard, "invalid card num(2-14)/suit(0-3): %d/%d", c.Num, c.Suit)
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	card, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// checkCards every card valid and pairwise distinct
func checkCards(cards []Card) error {
	var seen uint64
	for _, c := range cards {
		if !c.valid() {
			return newError(KindInvalidCard, "invalid card in hand: %d/%d", c.Num, c.Suit)
		}
		bit := uint64(1) << uint(c.index())
		if seen&bit != 0 {
			return newError(KindDuplicateCard, "duplicate card %s in hand", c)
		}
		seen |= bit
	}
	return nil
}

func cardsString(cards []Card) string {
	ss := make([]string, len(cards))
	for i, c := range cards {
		ss[i] = c.String()
	}
	return strings.Join(ss, " ")
}
