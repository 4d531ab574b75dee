package holdem

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"math/big"
	"os"
	"time"

	"go.dedis.ch/kyber/v4/util/random"
)

const deckSize = 52

// Deck 扑克, cards are drawn from the end
type Deck struct {
	cards [deckSize]Card
	n     int
}

// timePIDReader high resolution time and process id, only ever mixed with crypto/rand
type timePIDReader struct{}

func (timePIDReader) Read(p []byte) (int, error) {
	var seed [16]byte
	binary.LittleEndian.PutUint64(seed[:8], uint64(time.Now().UnixNano()))
	binary.LittleEndian.PutUint64(seed[8:], uint64(os.Getpid()))
	for i := range p {
		p[i] = seed[i%len(seed)]
	}
	return len(p), nil
}

func newEntropyStream() cipher.Stream {
	return random.New(rand.Reader, timePIDReader{})
}

// NewDeck a fresh, uniformly shuffled 52 card deck
func NewDeck() *Deck {
	return newShuffledDeck(newEntropyStream())
}

func newShuffledDeck(stream cipher.Stream) *Deck {
	d := &Deck{n: deckSize}
	i := 0
	for s := Clubs; s <= Spades; s++ {
		for num := int8(minNum); num <= maxNum; num++ {
			d.cards[i] = Card{Num: num, Suit: s}
			i++
		}
	}
	for i := deckSize - 1; i > 0; i-- {
		j := random.Int(big.NewInt(int64(i+1)), stream).Int64()
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// NewDeckFromCards stacked deck, cards are drawn in the given order
func NewDeckFromCards(cards ...Card) (*Deck, error) {
	if len(cards) > deckSize {
		return nil, newError(KindInvalidRequest, "a deck holds at most %d cards", deckSize)
	}
	if err := checkCards(cards); err != nil {
		return nil, err
	}
	d := &Deck{n: len(cards)}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d, nil
}

// Draw removes and returns the top card
func (c *Deck) Draw() (Card, error) {
	if c.n == 0 {
		return Card{}, ErrDeckExhausted
	}
	c.n--
	return c.cards[c.n], nil
}

// Burn draws and discards one card
func (c *Deck) Burn() (Card, error) {
	return c.Draw()
}

func (c *Deck) Remaining() int {
	return c.n
}

// Cards remaining cards, next to be drawn first
func (c *Deck) Cards() []Card {
	out := make([]Card, c.n)
	for i := 0; i < c.n; i++ {
		out[i] = c.cards[c.n-1-i]
	}
	return out
}
