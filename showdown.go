package holdem

import (
	"github.com/paulhankin/poker"
	"go.uber.org/zap"
)

// PlayerHand one contender at showdown
type PlayerHand struct {
	Name        string    `json:"name"`
	Seat        int8      `json:"seat"`
	Hole        []Card    `json:"hole"`
	Value       HandValue `json:"-"`
	HandType    string    `json:"hand_type,omitempty"`
	Tiebreak    []int8    `json:"tiebreak,omitempty"`
	Best        []Card    `json:"best,omitempty"`
	Description string    `json:"description,omitempty"`
	Won         int       `json:"won"`
	Winner      bool      `json:"winner"`
}

// ShowdownResult winners and the pot they shared
type ShowdownResult struct {
	Hand      uint         `json:"hand"`
	Pot       int          `json:"pot"`
	Community []Card       `json:"community"`
	Hands     []PlayerHand `json:"hands"`
	Winners   []string     `json:"winners"`
	Tie       bool         `json:"tie"`
}

// Winner first winner in seat order, nil when nobody won
func (c *ShowdownResult) Winner() *PlayerHand {
	for i := range c.Hands {
		if c.Hands[i].Winner {
			return &c.Hands[i]
		}
	}
	return nil
}

func (c Card) pokerCard() (poker.Card, error) {
	var s poker.Suit
	switch c.Suit {
	case Clubs:
		s = poker.Club
	case Diamonds:
		s = poker.Diamond
	case Hearts:
		s = poker.Heart
	default:
		s = poker.Spade
	}
	r := poker.Rank(c.Num)
	if c.Num == maxNum {
		r = poker.Rank(1)
	}
	return poker.MakeCard(s, r)
}

// describe human readable name of the best hand, falls back to the tier name
func describe(cards []Card, hv HandValue) string {
	pc := make([]poker.Card, 0, len(cards))
	for _, card := range cards {
		v, err := card.pokerCard()
		if err != nil {
			return hv.Type().String()
		}
		pc = append(pc, v)
	}
	s, err := poker.Describe(pc)
	if err != nil {
		return hv.Type().String()
	}
	return s
}

// contenders playing players holding cards, seat order
func (c *Table) contenders() []*Player {
	ret := make([]*Player, 0, len(c.seats))
	for _, p := range c.seats {
		if p != nil && p.inHand() {
			ret = append(ret, p)
		}
	}
	return ret
}

// DetermineWinner evaluates every contender and splits the pot among the best hands.
// A lone contender wins without a showdown at any phase after the deal.
// A hand is settled once, the next one starts with CreateDeck
func (c *Table) DetermineWinner() (*ShowdownResult, error) {
	if c.phase == PhaseNone {
		return nil, newError(KindInvalidPhase, "invalid game phase %s, no cards dealt", c.phase)
	}
	if c.settled {
		return nil, newError(KindInvalidPhase, "hand %d is already settled, create a new deck", c.handNum)
	}
	players := c.contenders()
	if len(players) == 0 {
		return nil, newError(KindInsufficientPlayers, "no players left in the hand")
	}
	if len(players) > 1 && c.phase != PhaseRiver {
		return nil, newError(KindInvalidPhase, "invalid game phase %s, showdown happens after the %s", c.phase, PhaseRiver)
	}
	board := c.community[:c.communityN]
	hands := make([]PlayerHand, len(players))
	hvs := make(map[string]HandValue, len(players))
	for i, p := range players {
		h := PlayerHand{
			Name: p.name,
			Seat: p.seat,
			Hole: p.Hand(),
		}
		if len(board) >= 3 {
			all := append(append(make([]Card, 0, 7), p.hand[:]...), board...)
			hv, err := BestHand(all)
			if err != nil {
				return nil, err
			}
			best := hv.Cards()
			h.Value = hv
			h.HandType = hv.Type().String()
			h.Tiebreak = hv.Tiebreak()
			h.Best = best[:]
			h.Description = describe(all, hv)
			hvs[p.name] = hv
		}
		hands[i] = h
	}
	var winners []*Player
	if len(players) == 1 {
		winners = players
	} else {
		max := maxHandValues(hvs)
		for _, p := range players {
			if _, ok := max[p.name]; ok {
				winners = append(winners, p)
			}
		}
	}
	ret := &ShowdownResult{
		Hand:      c.handNum,
		Pot:       c.pot,
		Community: c.CommunityCards(),
		Tie:       len(winners) > 1,
	}
	won := c.distributePot(winners)
	c.settled = true
	for i := range hands {
		if v, ok := won[hands[i].Name]; ok {
			hands[i].Won = v
			hands[i].Winner = true
			ret.Winners = append(ret.Winners, hands[i].Name)
			c.log.Debug("winner", zap.Int8("seat", hands[i].Seat), zap.String("player", hands[i].Name), zap.Int("won", v), zap.String("hv", hands[i].HandType))
		}
	}
	ret.Hands = hands
	c.bets = make(map[string]int)
	c.options.recorder.End(c.name, ret)
	return ret, nil
}
