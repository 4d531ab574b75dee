package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTable(t *testing.T, maxPlayers int8, opts ...TableOption) *Table {
	t.Helper()
	opts = append([]TableOption{OptionBlinds(10, 20, 0)}, opts...)
	tb, err := NewTable("test", maxPlayers, 50, 500, zap.NewNop(), opts...)
	require.NoError(t, err)
	return tb
}

// seatPlayer creates, joins and seats a player with a 100 chip buy-in
func seatPlayer(t *testing.T, tb *Table, name string, seat int8) *Player {
	t.Helper()
	p, err := NewPlayer(name, 1000)
	require.NoError(t, err)
	require.NoError(t, p.JoinTable(tb))
	require.NoError(t, p.SitDown(tb, seat, 100))
	return p
}

// stacked deck source, cards are drawn in the given order
func stacked(t *testing.T, ss ...string) TableOption {
	cards := mustCards(t, ss...)
	return OptionDeckSource(func() *Deck {
		d, err := NewDeckFromCards(cards...)
		if err != nil {
			panic(err)
		}
		return d
	})
}

func TestNewTable(t *testing.T) {
	assert := assert.New(t)
	tb, err := NewTable("main", 9, 50, 500, nil)
	assert.NoError(err)
	assert.Equal("main", tb.Name())
	assert.Equal("Texas Hold'em", tb.GameType())
	assert.Equal(int8(-1), tb.DealerPosition())
	assert.Equal(PhaseNone, tb.Phase())
	assert.Len(tb.Seats(), 9)
	min, max := tb.BuyInLimits()
	assert.Equal(50, min)
	assert.Equal(500, max)

	for _, tc := range []struct {
		name     string
		max      int8
		min, buy int
	}{
		{"", 9, 50, 500},
		{"t", 1, 50, 500},
		{"t", 11, 50, 500},
		{"t", 9, 0, 500},
		{"t", 9, 600, 500},
	} {
		_, err := NewTable(tc.name, tc.max, tc.min, tc.buy, nil)
		assert.ErrorIs(err, ErrInvalidRequest)
	}
	_, err = NewTable("t", 9, 50, 500, nil, OptionBlinds(20, 10, 0))
	assert.ErrorIs(err, ErrInvalidRequest)
}

func TestSetBlinds(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	assert.NoError(tb.SetBlinds(5, 10, 1))
	assert.Equal(Blinds{Small: 5, Big: 10, Ante: 1}, tb.Blinds())
	assert.ErrorIs(tb.SetBlinds(-1, 10, 0), ErrInvalidRequest)
	assert.ErrorIs(tb.SetBlinds(10, 5, 0), ErrInvalidRequest)
	assert.Equal(Blinds{Small: 5, Big: 10, Ante: 1}, tb.Blinds())
}

func TestPlayerLifecycle(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	p, err := NewPlayer("alice", 1000)
	require.NoError(t, err)
	assert.Equal(StatusStanding, p.Status())

	assert.ErrorIs(p.SitDown(tb, 0, 100), ErrInvalidStatus)
	require.NoError(t, p.JoinTable(tb))
	assert.Equal(StatusSitting, p.Status())
	assert.Equal([]string{"test"}, p.Tables())

	require.NoError(t, p.SitDown(tb, 2, 100))
	assert.Equal(StatusPlaying, p.Status())
	assert.Equal(900, p.Bankroll())
	assert.Equal(100, p.InGameChips())
	seat, ok := p.Seat()
	assert.True(ok)
	assert.Equal(int8(2), seat)
	assert.Same(p, tb.Seats()[2])

	require.NoError(t, p.SitOut())
	assert.Equal(StatusSittingOut, p.Status())
	assert.Equal(100, p.InGameChips())
	assert.ErrorIs(p.SitOut(), ErrInvalidStatus)
	require.NoError(t, p.Rejoin())
	assert.Equal(StatusPlaying, p.Status())
	assert.ErrorIs(p.Rejoin(), ErrInvalidStatus)

	assert.ErrorIs(p.LeaveTable(tb), ErrInvalidStatus)
	require.NoError(t, p.StandUp())
	assert.Equal(StatusStanding, p.Status())
	assert.Equal(1000, p.Bankroll())
	assert.Equal(0, p.InGameChips())
	_, ok = p.Seat()
	assert.False(ok)
	assert.Nil(tb.Seats()[2])
	assert.ErrorIs(p.StandUp(), ErrInvalidStatus)

	require.NoError(t, p.LeaveTable(tb))
	assert.Empty(p.Tables())
	assert.Empty(tb.Players())
	_, err = tb.Player("alice")
	assert.ErrorIs(err, ErrPlayerNotFound)
}

func TestSitDownValidation(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	p, err := NewPlayer("bob", 80)
	require.NoError(t, err)
	require.NoError(t, p.JoinTable(tb))
	assert.ErrorIs(p.SitDown(tb, 6, 60), ErrInvalidSeat)
	assert.ErrorIs(p.SitDown(tb, -1, 60), ErrInvalidSeat)
	assert.ErrorIs(p.SitDown(tb, 0, 40), ErrInvalidBuyIn)
	assert.ErrorIs(p.SitDown(tb, 0, 501), ErrInvalidBuyIn)
	assert.ErrorIs(p.SitDown(tb, 0, 100), ErrInsufficientBankroll)
	assert.Equal(StatusSitting, p.Status())
	assert.Equal(80, p.Bankroll())
	require.NoError(t, p.SitDown(tb, 0, 80))
	assert.Equal(0, p.Bankroll())

	other := newTestTable(t, 6)
	require.NoError(t, p.JoinTable(other))
	assert.ErrorIs(p.SitDown(other, 0, 50), ErrAlreadySeated)
}

func TestSitDownSeatTaken(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	alice := seatPlayer(t, tb, "alice", 3)
	bob, err := NewPlayer("bob", 1000)
	require.NoError(t, err)
	require.NoError(t, bob.JoinTable(tb))
	aliceBefore, bobBefore := alice.State(), bob.State()

	err = bob.SitDown(tb, 3, 100)
	assert.ErrorIs(err, ErrSeatTaken)
	assert.Equal(KindSeatTaken, mustKind(t, err))
	assert.Equal(aliceBefore, alice.State())
	assert.Equal(bobBefore, bob.State())
	assert.Same(alice, tb.Seats()[3])
}

func mustKind(t *testing.T, err error) ErrorKind {
	k, ok := KindOf(err)
	require.True(t, ok)
	return k
}

func TestAddOn(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	p := seatPlayer(t, tb, "alice", 0)
	assert.ErrorIs(p.AddOn(0), ErrInvalidRequest)
	assert.ErrorIs(p.AddOn(401), ErrInvalidBuyIn)
	require.NoError(t, p.AddOn(400))
	assert.Equal(500, p.InGameChips())
	assert.Equal(500, p.Bankroll())

	poor, err := NewPlayer("bob", 100)
	require.NoError(t, err)
	require.NoError(t, poor.JoinTable(tb))
	require.NoError(t, poor.SitDown(tb, 1, 60))
	assert.ErrorIs(poor.AddOn(50), ErrInsufficientBankroll)
	require.NoError(t, poor.SitOut())
	assert.ErrorIs(poor.AddOn(10), ErrInvalidStatus)
}

func TestNextDealer(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	_, err := tb.NextDealer()
	assert.ErrorIs(err, ErrInsufficientPlayers)
	seatPlayer(t, tb, "a", 1)
	seatPlayer(t, tb, "b", 4)
	assert.ErrorIs(tb.SetDealerPosition(0), ErrInvalidSeat)
	assert.ErrorIs(tb.SetDealerPosition(6), ErrInvalidSeat)
	seat, err := tb.NextDealer()
	assert.NoError(err)
	assert.Equal(int8(1), seat)
	seat, _ = tb.NextDealer()
	assert.Equal(int8(4), seat)
	seat, _ = tb.NextDealer()
	assert.Equal(int8(1), seat)
}

func TestCollectBlindsHeadsUp(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	a := seatPlayer(t, tb, "a", 0)
	b := seatPlayer(t, tb, "b", 3)
	assert.ErrorIs(tb.CollectBlinds(), ErrInsufficientPlayers)
	require.NoError(t, tb.SetDealerPosition(3))
	require.NoError(t, tb.CollectBlinds())
	assert.Equal(30, tb.Pot())
	assert.Equal(90, b.InGameChips())
	assert.Equal(80, a.InGameChips())
}

func TestCollectBlindsRing(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6, OptionBlinds(10, 20, 5))
	a := seatPlayer(t, tb, "a", 0)
	b := seatPlayer(t, tb, "b", 2)
	c := seatPlayer(t, tb, "c", 4)
	d := seatPlayer(t, tb, "d", 5)
	require.NoError(t, d.SitOut())
	require.NoError(t, tb.SetDealerPosition(2))
	require.NoError(t, tb.CollectBlinds())
	// sb is c (seat 4), d sits out, bb wraps to a (seat 0)
	assert.Equal(100-10-5, c.InGameChips())
	assert.Equal(100-20-5, a.InGameChips())
	assert.Equal(100-5, b.InGameChips())
	assert.Equal(100, d.InGameChips())
	assert.Equal(45, tb.Pot())
}

func TestCollectBlindsAtomic(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6, OptionBlinds(10, 20, 0))
	a := seatPlayer(t, tb, "a", 0)
	b := seatPlayer(t, tb, "b", 1)
	c := seatPlayer(t, tb, "c", 2)
	require.NoError(t, tb.PlaceBet(c, 90))
	pot := tb.Pot()
	require.NoError(t, tb.SetDealerPosition(0))
	// c owes the big blind with 10 chips left
	assert.ErrorIs(tb.CollectBlinds(), ErrInsufficientChips)
	assert.Equal(pot, tb.Pot())
	assert.Equal(100, a.InGameChips())
	assert.Equal(100, b.InGameChips())
	assert.Equal(10, c.InGameChips())

	require.NoError(t, tb.SetBlinds(10, 10, 1))
	require.NoError(t, tb.SetDealerPosition(1))
	// c posts the small blind and cannot pay the ante on top
	assert.ErrorIs(tb.CollectBlinds(), ErrInsufficientChips)
	assert.Equal(pot, tb.Pot())
	assert.Equal(100, a.InGameChips())
	assert.Equal(100, b.InGameChips())
}

func TestPlayerAction(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	a := seatPlayer(t, tb, "a", 0)
	b := seatPlayer(t, tb, "b", 1)

	msg, err := tb.PlayerAction("a", ActionDefBet, 30)
	assert.NoError(err)
	assert.Equal("Bet placed", msg)
	assert.Equal(70, a.InGameChips())
	assert.Equal(30, a.Bet())
	assert.Equal(30, tb.Pot())
	bet, ok := tb.PendingBet("a")
	assert.True(ok)
	assert.Equal(30, bet)

	_, err = tb.PlayerAction("a", ActionDefRaise, 71)
	assert.ErrorIs(err, ErrInsufficientChips)
	assert.Equal(70, a.InGameChips())
	_, err = tb.PlayerAction("a", ActionDefBet, -1)
	assert.ErrorIs(err, ErrInvalidRequest)

	msg, err = tb.PlayerAction("b", ActionDefCheck, 0)
	assert.NoError(err)
	assert.Equal("b checked", msg)
	msg, err = tb.PlayerAction("b", ActionDefCall, 0)
	assert.NoError(err)
	assert.Equal("b called", msg)

	_, err = tb.PlayerAction("b", ActionDefAllIn, 0)
	assert.NoError(err)
	assert.Equal(0, b.InGameChips())
	assert.Equal(130, tb.Pot())

	msg, err = tb.PlayerAction("a", ActionDefFold, 0)
	assert.NoError(err)
	assert.Equal("a folded", msg)
	_, ok = tb.PendingBet("a")
	assert.False(ok)
	assert.Equal(130, tb.Pot())

	_, err = tb.PlayerAction("nobody", ActionDefCheck, 0)
	assert.ErrorIs(err, ErrPlayerNotFound)
	_, err = tb.PlayerAction("a", ActionDefSB, 10)
	assert.ErrorIs(err, ErrInvalidRequest)

	watcher, err := NewPlayer("w", 100)
	require.NoError(t, err)
	require.NoError(t, watcher.JoinTable(tb))
	_, err = tb.PlayerAction("w", ActionDefBet, 10)
	assert.ErrorIs(err, ErrInvalidStatus)
}

func TestParseAction(t *testing.T) {
	assert := assert.New(t)
	for s, want := range map[string]ActionDef{
		"fold": ActionDefFold, "Check": ActionDefCheck, "call": ActionDefCall,
		"bet": ActionDefBet, "raise": ActionDefRaise, "all-in": ActionDefAllIn, "allin": ActionDefAllIn,
	} {
		a, err := ParseAction(s)
		assert.NoError(err)
		assert.Equal(want, a)
	}
	_, err := ParseAction("ante")
	assert.ErrorIs(err, ErrInvalidRequest)
}

func TestDistributePotRemainder(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 6)
	a := seatPlayer(t, tb, "a", 0)
	b := seatPlayer(t, tb, "b", 2)
	c := seatPlayer(t, tb, "c", 4)
	require.NoError(t, tb.SetDealerPosition(2))
	tb.pot = 11
	won := tb.distributePot([]*Player{a, b, c})
	// 3 each, the two odd chips go to c then a, left of the button
	assert.Equal(map[string]int{"a": 4, "b": 3, "c": 4}, won)
	assert.Equal(104, a.InGameChips())
	assert.Equal(103, b.InGameChips())
	assert.Equal(104, c.InGameChips())
	assert.Equal(0, tb.Pot())
}

func TestTableState(t *testing.T) {
	assert := assert.New(t)
	tb := newTestTable(t, 4)
	seatPlayer(t, tb, "a", 1)
	w, err := NewPlayer("w", 10)
	require.NoError(t, err)
	require.NoError(t, w.JoinTable(tb))
	s := tb.State()
	assert.Equal("test", s.Name)
	assert.Equal(int8(4), s.MaxPlayers)
	assert.Equal([]string{"a", "w"}, s.Players)
	require.Len(t, s.Seats, 1)
	assert.Equal(SeatState{Seat: 1, Player: "a", InGameChips: 100, Status: StatusPlaying}, s.Seats[0])
	assert.Len(tb.ActivePlayers(), 1)
}
