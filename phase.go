package holdem

import (
	"go.uber.org/zap"
)

// CreateDeck starts a new hand: fresh shuffled deck, board and hole cards cleared, phase none
func (c *Table) CreateDeck() {
	c.deck = c.options.newDeck()
	c.communityN = 0
	c.community = [5]Card{}
	c.phase = PhaseNone
	c.settled = false
	c.bets = make(map[string]int)
	for _, p := range c.seats {
		if p == nil {
			continue
		}
		p.muck()
		p.bet = 0
	}
	c.handNum++
	c.options.recorder.Begin(c.name, c.handNum)
	c.log.Debug("deck created", zap.Uint("hand", c.handNum), zap.Int("cards", c.deck.Remaining()))
}

// DeckRemaining cards left in the current deck, 0 before CreateDeck
func (c *Table) DeckRemaining() int {
	if c.deck == nil {
		return 0
	}
	return c.deck.Remaining()
}

// DealCards two hole cards to every playing player, one at a time starting left of the button
func (c *Table) DealCards(numPlayers int) (map[string][]Card, error) {
	if c.phase != PhaseNone {
		return nil, newError(KindInvalidPhase, "invalid game phase %s, hole cards are dealt before %s", c.phase, PhasePreFlop)
	}
	if numPlayers < minSeatCount || numPlayers > int(c.maxPlayers) {
		return nil, newError(KindInsufficientPlayers, "number of players must be between %d and %d", minSeatCount, c.maxPlayers)
	}
	if numPlayers*2 > c.DeckRemaining() {
		return nil, newError(KindInsufficientCards, "not enough cards in the deck")
	}
	pc := c.playingCount()
	if pc < numPlayers {
		return nil, newError(KindInsufficientPlayers, "not enough active players")
	}
	if pc*2 > c.deck.Remaining() {
		return nil, newError(KindInsufficientCards, "not enough cards in the deck")
	}
	if c.dealerPosition < 0 || c.seats[c.dealerPosition] == nil {
		c.dealerPosition = c.nextSeat(-1, occupied)
	}
	c.log.Debug("deal begin", zap.Int("players", pc), zap.Int8("buseat", c.dealerPosition))
	order := make([]*Player, 0, pc)
	for i, k := c.dealerPosition, 0; k < pc; k++ {
		i = c.nextSeat(i, playing)
		order = append(order, c.seats[i])
	}
	var hands = make([][2]Card, pc)
	for round := 0; round < 2; round++ {
		for k := range order {
			// enough cards was checked above
			hands[k][round], _ = c.deck.Draw()
		}
	}
	ret := make(map[string][]Card, pc)
	for k, p := range order {
		p.hand = hands[k]
		p.hasHand = true
		ret[p.name] = p.Hand()
		c.options.recorder.Deal(c.name, p.name, p.hand)
	}
	c.phase = PhasePreFlop
	c.log.Debug("deal end")
	return ret, nil
}

func (c *Table) DealFlop() ([]Card, error) {
	return c.reveal(PhasePreFlop, PhaseFlop, 3)
}

func (c *Table) DealTurn() ([]Card, error) {
	return c.reveal(PhaseFlop, PhaseTurn, 1)
}

func (c *Table) DealRiver() ([]Card, error) {
	return c.reveal(PhaseTurn, PhaseRiver, 1)
}

// reveal burn one then n community cards, returns the whole board
func (c *Table) reveal(from Phase, to Phase, n int) ([]Card, error) {
	if c.phase != from {
		return nil, newError(KindInvalidPhase, "invalid game phase %s, %s follows %s", c.phase, to, from)
	}
	if c.settled {
		return nil, newError(KindInvalidPhase, "hand %d is already settled", c.handNum)
	}
	if c.DeckRemaining() < n+1 {
		return nil, newError(KindInsufficientCards, "not enough cards in the deck")
	}
	c.log.Debug("deal public cards(start)", zap.String("round", to.String()), zap.Int("cards_count", n))
	burn, _ := c.deck.Burn()
	cards := make([]Card, n)
	for i := range cards {
		cards[i], _ = c.deck.Draw()
		c.community[c.communityN] = cards[i]
		c.communityN++
	}
	c.phase = to
	c.options.recorder.Reveal(c.name, to, burn, cards)
	c.log.Debug("deal public cards(end)", zap.String("round", to.String()), zap.String("board", cardsString(c.community[:c.communityN])))
	return c.CommunityCards(), nil
}
