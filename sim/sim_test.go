package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	holdem "github.com/whatisfaker/holdemtable"
)

func royalBoard(t *testing.T) func() *holdem.Deck {
	cards, err := holdem.ParseCards(
		"2C", "3C", "4C", "5C", "6C", "8D",
		"9D", "AH", "KH", "QH",
		"9S", "JH",
		"9C", "TH",
	)
	require.NoError(t, err)
	return func() *holdem.Deck {
		d, err := holdem.NewDeckFromCards(cards...)
		if err != nil {
			panic(err)
		}
		return d
	}
}

func TestShowdown(t *testing.T) {
	assert := assert.New(t)
	st, err := Showdown(context.Background(), ShowdownConfig{Rounds: 200, Players: 3, Workers: 4})
	require.NoError(t, err)
	assert.Equal(200, st.Rounds)
	wins := 0
	for _, w := range st.Wins {
		wins += w
	}
	assert.Equal(200, wins+st.Ties)
	tiers := 0
	for _, v := range st.Tiers {
		tiers += v
	}
	assert.Equal(200, tiers)
	sorted := st.SortedTiers()
	for i := 1; i < len(sorted); i++ {
		assert.Greater(int(sorted[i-1]), int(sorted[i]))
	}
}

func TestShowdownBoardPlays(t *testing.T) {
	assert := assert.New(t)
	st, err := Showdown(context.Background(), ShowdownConfig{Rounds: 20, Players: 3, Workers: 2, NewDeck: royalBoard(t)})
	require.NoError(t, err)
	assert.Equal(20, st.Ties)
	assert.Equal([]int{0, 0, 0}, st.Wins)
	assert.Equal([]int{20, 20, 20}, st.Splits)
	assert.Equal(map[holdem.HandValueType]int{holdem.HVRoyalFlush: 20}, st.Tiers)
	assert.Zero(st.WinRate(0))
}

func TestShowdownConfig(t *testing.T) {
	_, err := Showdown(context.Background(), ShowdownConfig{Rounds: 10, Players: 1})
	assert.Error(t, err)
	_, err = Showdown(context.Background(), ShowdownConfig{Rounds: 0, Players: 2})
	assert.Error(t, err)
}

func TestShowdownCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Showdown(ctx, ShowdownConfig{Rounds: 50, Players: 2, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShuffle(t *testing.T) {
	assert := assert.New(t)
	st, err := Shuffle(context.Background(), ShuffleConfig{Decks: 520, Workers: 3})
	require.NoError(t, err)
	assert.Equal(520, st.Decks)
	assert.Len(st.Cards, 52)
	for c := 0; c < 52; c++ {
		row, col := 0, 0
		for p := 0; p < 52; p++ {
			row += st.Positions[c][p]
			col += st.Positions[p][c]
		}
		assert.Equal(520, row)
		assert.Equal(520, col)
	}
	assert.Equal(51, st.DegreesOfFreedom())
	assert.Greater(st.MeanChiSquare(), 0.0)
	for _, s := range st.Cards {
		assert.GreaterOrEqual(s.PValue, 0.0)
		assert.LessOrEqual(s.PValue, 1.0)
	}
	// sorted by chi-square descending, so p-values ascend
	for i := 1; i < len(st.Cards); i++ {
		assert.LessOrEqual(st.Cards[i-1].PValue, st.Cards[i].PValue)
	}
}

func TestShuffleFixedDeck(t *testing.T) {
	assert := assert.New(t)
	fixed := holdem.NewDeck().Cards()
	st, err := Shuffle(context.Background(), ShuffleConfig{Decks: 52, Workers: 2, NewDeck: func() *holdem.Deck {
		d, err := holdem.NewDeckFromCards(fixed...)
		if err != nil {
			panic(err)
		}
		return d
	}})
	require.NoError(t, err)
	// every card always lands on the same position: chi-square = 52 * 51
	for _, s := range st.Cards {
		assert.InDelta(52*51.0, s.ChiSquare, 1e-9)
		assert.Less(s.PValue, 1e-9)
	}
	_, err = Shuffle(context.Background(), ShuffleConfig{Decks: 0})
	assert.Error(err)
}
