package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseSequence(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	players := []*Player{
		seatPlayer(t, tb, "a", 0),
		seatPlayer(t, tb, "b", 2),
		seatPlayer(t, tb, "c", 5),
	}
	tb.CreateDeck()
	assert.Equal(deckSize, tb.DeckRemaining())
	assert.Equal(uint(1), tb.HandNum())

	hands, err := tb.DealCards(3)
	require.NoError(t, err)
	assert.Equal(PhasePreFlop, tb.Phase())
	assert.Len(hands, 3)
	assert.Equal(deckSize-6, tb.DeckRemaining())
	// dealer defaults to the first occupied seat
	assert.Equal(int8(0), tb.DealerPosition())

	flop, err := tb.DealFlop()
	require.NoError(t, err)
	assert.Len(flop, 3)
	assert.Equal(PhaseFlop, tb.Phase())
	turn, err := tb.DealTurn()
	require.NoError(t, err)
	assert.Len(turn, 4)
	river, err := tb.DealRiver()
	require.NoError(t, err)
	assert.Len(river, 5)
	assert.Equal(PhaseRiver, tb.Phase())
	assert.Equal(deckSize-6-8, tb.DeckRemaining())
	assert.Equal(river, tb.CommunityCards())

	all := append([]Card(nil), river...)
	for _, p := range players {
		assert.Len(p.Hand(), 2)
		assert.Equal(hands[p.Name()], p.Hand())
		all = append(all, p.Hand()...)
	}
	assert.NoError(checkCards(all))
	assert.NoError(checkCards(append(all, tb.deck.Cards()...)))
}

func TestPhaseOutOfOrder(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	seatPlayer(t, tb, "a", 0)
	seatPlayer(t, tb, "b", 1)
	tb.CreateDeck()

	for _, f := range []func() ([]Card, error){tb.DealFlop, tb.DealTurn, tb.DealRiver} {
		_, err := f()
		assert.ErrorIs(err, ErrInvalidPhase)
	}
	assert.Equal(deckSize, tb.DeckRemaining())

	_, err := tb.DealCards(2)
	require.NoError(t, err)
	_, err = tb.DealCards(2)
	assert.ErrorIs(err, ErrInvalidPhase)
	_, err = tb.DealTurn()
	assert.ErrorIs(err, ErrInvalidPhase)
	_, err = tb.DealRiver()
	assert.ErrorIs(err, ErrInvalidPhase)
	assert.Equal(deckSize-4, tb.DeckRemaining())
	assert.Empty(tb.CommunityCards())

	_, err = tb.DealFlop()
	require.NoError(t, err)
	_, err = tb.DealFlop()
	assert.ErrorIs(err, ErrInvalidPhase)
	_, err = tb.DealRiver()
	assert.ErrorIs(err, ErrInvalidPhase)
	assert.Len(tb.CommunityCards(), 3)
	assert.Equal(PhaseFlop, tb.Phase())

	// a new deck starts over
	tb.CreateDeck()
	assert.Equal(PhaseNone, tb.Phase())
	assert.Empty(tb.CommunityCards())
	for _, p := range tb.ActivePlayers() {
		assert.Nil(p.Hand())
	}
}

func TestDealCardsGuards(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 4)
	a := seatPlayer(t, tb, "a", 0)
	seatPlayer(t, tb, "b", 1)

	_, err := tb.DealCards(2)
	assert.ErrorIs(err, ErrInsufficientCards)

	tb.CreateDeck()
	_, err = tb.DealCards(1)
	assert.ErrorIs(err, ErrInsufficientPlayers)
	_, err = tb.DealCards(5)
	assert.ErrorIs(err, ErrInsufficientPlayers)
	_, err = tb.DealCards(3)
	assert.ErrorIs(err, ErrInsufficientPlayers)

	require.NoError(t, a.SitOut())
	_, err = tb.DealCards(2)
	assert.ErrorIs(err, ErrInsufficientPlayers)
	assert.Equal(PhaseNone, tb.Phase())
	assert.Equal(deckSize, tb.DeckRemaining())
}

func TestDealSkipsSittingOut(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	a := seatPlayer(t, tb, "a", 0)
	b := seatPlayer(t, tb, "b", 1)
	c := seatPlayer(t, tb, "c", 2)
	require.NoError(t, b.SitOut())
	tb.CreateDeck()
	hands, err := tb.DealCards(2)
	require.NoError(t, err)
	assert.Len(hands, 2)
	assert.Len(a.Hand(), 2)
	assert.Nil(b.Hand())
	assert.Len(c.Hand(), 2)
}

func TestDealOrder(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6, stacked(t, "AS", "KS", "QS", "AD", "KD", "QD"))
	a := seatPlayer(t, tb, "a", 0)
	b := seatPlayer(t, tb, "b", 3)
	c := seatPlayer(t, tb, "c", 4)
	require.NoError(t, tb.SetDealerPosition(3))
	tb.CreateDeck()
	_, err := tb.DealCards(3)
	require.NoError(t, err)
	// one card at a time, starting left of the button
	assert.Equal(mustCards(t, "AS", "AD"), c.Hand())
	assert.Equal(mustCards(t, "KS", "KD"), a.Hand())
	assert.Equal(mustCards(t, "QS", "QD"), b.Hand())
}

func TestRevealInsufficientCards(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6, stacked(t, "AS", "KS", "QS", "JS", "2C", "3C", "4C"))
	seatPlayer(t, tb, "a", 0)
	seatPlayer(t, tb, "b", 1)
	tb.CreateDeck()
	_, err := tb.DealCards(2)
	require.NoError(t, err)
	assert.Equal(3, tb.DeckRemaining())
	_, err = tb.DealFlop()
	assert.ErrorIs(err, ErrInsufficientCards)
	assert.Equal(3, tb.DeckRemaining())
	assert.Equal(PhasePreFlop, tb.Phase())
	assert.Empty(tb.CommunityCards())
}
