package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	assert := assert.New(t)
	d := NewDeck()
	assert.Equal(deckSize, d.Remaining())
	cards := d.Cards()
	assert.NoError(checkCards(cards))
	assert.Len(cards, deckSize)
}

func TestDeckShuffled(t *testing.T) {
	// 52! orderings, two equal decks in a row means the source is broken
	a := NewDeck().Cards()
	b := NewDeck().Cards()
	assert.NotEqual(t, a, b)
}

func TestDeckDraw(t *testing.T) {
	assert := assert.New(t)
	d, err := NewDeckFromCards(mustCards(t, "AS", "KS", "QS")...)
	require.NoError(t, err)
	assert.Equal(mustCards(t, "AS", "KS", "QS"), d.Cards())
	c, err := d.Draw()
	assert.NoError(err)
	assert.Equal("AS", c.String())
	burn, err := d.Burn()
	assert.NoError(err)
	assert.Equal("KS", burn.String())
	assert.Equal(1, d.Remaining())
	_, err = d.Draw()
	assert.NoError(err)
	_, err = d.Draw()
	assert.ErrorIs(err, ErrDeckExhausted)
	_, err = d.Burn()
	assert.ErrorIs(err, ErrDeckExhausted)
	assert.Equal(0, d.Remaining())
}

func TestNewDeckFromCardsInvalid(t *testing.T) {
	_, err := NewDeckFromCards(mustCards(t, "AS", "AS")...)
	assert.ErrorIs(t, err, ErrDuplicateCard)
	_, err = NewDeckFromCards(Card{Num: 20})
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestTimePIDReader(t *testing.T) {
	buf := make([]byte, 40)
	n, err := timePIDReader{}.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 40, n)
	assert.NotEqual(t, make([]byte, 40), buf)
}
