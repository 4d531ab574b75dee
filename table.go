package holdem

import (
	"go.uber.org/zap"
)

const (
	minSeatCount = 2
	maxSeatCount = 10
)

type Blinds struct {
	Small int `json:"small_blind"`
	Big   int `json:"big_blind"`
	Ante  int `json:"ante"`
}

// Table seats, blinds, dealer button, pot and the hand in flight.
// A Table is not safe for concurrent use, callers serialize per table (see Manager).
type Table struct {
	name           string
	maxPlayers     int8
	minBuyIn       int
	maxBuyIn       int
	dealerPosition int8 // -1 unset
	seats          []*Player
	players        []*Player      // joined, not necessarily seated
	pot            int            // 彩池
	bets           map[string]int // pending bets of the current hand
	deck           *Deck
	community      [5]Card
	communityN     int8
	phase          Phase
	settled        bool // pot of the current hand already distributed
	handNum        uint
	options        *extOptions
	log            *zap.Logger
}

func NewTable(name string, maxPlayers int8, minBuyIn int, maxBuyIn int, log *zap.Logger, opts ...TableOption) (*Table, error) {
	if name == "" {
		return nil, newError(KindInvalidRequest, "table name is required")
	}
	if maxPlayers < minSeatCount || maxPlayers > maxSeatCount {
		return nil, newError(KindInvalidRequest, "max players must be between %d and %d", minSeatCount, maxSeatCount)
	}
	if minBuyIn <= 0 || minBuyIn > maxBuyIn {
		return nil, newError(KindInvalidRequest, "buy-in limits must satisfy 0 < min <= max")
	}
	if log == nil {
		log = zap.NewNop()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(o)
	}
	if err := validateBlinds(o.blinds); err != nil {
		return nil, err
	}
	return &Table{
		name:           name,
		maxPlayers:     maxPlayers,
		minBuyIn:       minBuyIn,
		maxBuyIn:       maxBuyIn,
		dealerPosition: -1,
		seats:          make([]*Player, maxPlayers),
		players:        make([]*Player, 0),
		bets:           make(map[string]int),
		options:        o,
		log:            log.With(zap.String("table", name)),
	}, nil
}

func validateBlinds(b Blinds) error {
	if b.Small < 0 || b.Big < 0 || b.Ante < 0 {
		return newError(KindInvalidRequest, "blinds must not be negative")
	}
	if b.Big < b.Small {
		return newError(KindInvalidRequest, "big blind must not be less than small blind")
	}
	return nil
}

func (c *Table) Name() string {
	return c.name
}

func (c *Table) GameType() string {
	return c.options.gameType
}

func (c *Table) MaxPlayers() int8 {
	return c.maxPlayers
}

func (c *Table) BuyInLimits() (int, int) {
	return c.minBuyIn, c.maxBuyIn
}

func (c *Table) Blinds() Blinds {
	return c.options.blinds
}

func (c *Table) Pot() int {
	return c.pot
}

func (c *Table) Phase() Phase {
	return c.phase
}

func (c *Table) DealerPosition() int8 {
	return c.dealerPosition
}

func (c *Table) HandNum() uint {
	return c.handNum
}

func (c *Table) CommunityCards() []Card {
	out := make([]Card, c.communityN)
	copy(out, c.community[:c.communityN])
	return out
}

// Seats player of every seat, nil for empty seats
func (c *Table) Seats() []*Player {
	out := make([]*Player, len(c.seats))
	copy(out, c.seats)
	return out
}

// Players joined players in join order
func (c *Table) Players() []*Player {
	out := make([]*Player, len(c.players))
	copy(out, c.players)
	return out
}

// ActivePlayers seated players (playing or sitting out) in seat order
func (c *Table) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(c.seats))
	for _, p := range c.seats {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Player joined player by name
func (c *Table) Player(name string) (*Player, error) {
	for _, p := range c.players {
		if p.name == name {
			return p, nil
		}
	}
	return nil, newError(KindPlayerNotFound, "player %s not found", name)
}

func (c *Table) SetBlinds(small, big, ante int) error {
	b := Blinds{Small: small, Big: big, Ante: ante}
	if err := validateBlinds(b); err != nil {
		return err
	}
	c.options.blinds = b
	c.log.Debug("blinds set", zap.Int("sb", small), zap.Int("bb", big), zap.Int("ante", ante))
	return nil
}

func (c *Table) addPlayer(p *Player) {
	c.players = append(c.players, p)
}

func (c *Table) removePlayer(p *Player) {
	for i, v := range c.players {
		if v == p {
			c.players = append(c.players[:i], c.players[i+1:]...)
			break
		}
	}
	delete(c.bets, p.name)
}

// seat validation order: seat range, seat taken, buy-in limits, bankroll
func (c *Table) seat(p *Player, i int8, buyIn int) error {
	if i < 0 || i >= c.maxPlayers {
		return newError(KindInvalidSeat, "invalid seat number %d", i)
	}
	if c.seats[i] != nil {
		return newError(KindSeatTaken, "seat already taken")
	}
	if buyIn < c.minBuyIn || buyIn > c.maxBuyIn {
		return newError(KindInvalidBuyIn, "buy-in amount must be between %d and %d", c.minBuyIn, c.maxBuyIn)
	}
	if buyIn > p.bankroll {
		return newError(KindInsufficientBankroll, "insufficient bankroll for the buy-in")
	}
	c.seats[i] = p
	p.seat = i
	p.table = c
	p.bankroll -= buyIn
	p.inGameChips = buyIn
	p.bet = 0
	p.status = StatusPlaying
	c.log.Debug("seated", zap.Int8("seat", i), zap.String("player", p.name), zap.Int("buyin", buyIn))
	return nil
}

func (c *Table) standUp(p *Player) {
	i := p.seat
	if i >= 0 && c.seats[i] == p {
		c.seats[i] = nil
	}
	p.bankroll += p.inGameChips
	p.inGameChips = 0
	p.bet = 0
	p.seat = -1
	p.table = nil
	p.status = StatusStanding
	p.muck()
	delete(c.bets, p.name)
	c.log.Debug("stand up", zap.Int8("seat", i), zap.String("player", p.name), zap.Int("bankroll", p.bankroll))
}

// nextSeat first seat after from (cyclic) whose player satisfies ok, -1 if none
func (c *Table) nextSeat(from int8, ok func(*Player) bool) int8 {
	n := c.maxPlayers
	for k := int8(1); k <= n; k++ {
		i := ((from+k)%n + n) % n
		if p := c.seats[i]; p != nil && ok(p) {
			return i
		}
	}
	return -1
}

func occupied(*Player) bool {
	return true
}

func playing(p *Player) bool {
	return p.status == StatusPlaying
}

func (c *Table) playingCount() int {
	n := 0
	for _, p := range c.seats {
		if p != nil && playing(p) {
			n++
		}
	}
	return n
}

// SetDealerPosition seat must be occupied
func (c *Table) SetDealerPosition(seat int8) error {
	if seat < 0 || seat >= c.maxPlayers || c.seats[seat] == nil {
		return newError(KindInvalidSeat, "invalid dealer position %d", seat)
	}
	c.dealerPosition = seat
	return nil
}

// NextDealer moves the button to the next occupied seat
func (c *Table) NextDealer() (int8, error) {
	i := c.nextSeat(c.dealerPosition, occupied)
	if i < 0 {
		return -1, newError(KindInsufficientPlayers, "no seated players")
	}
	c.dealerPosition = i
	c.log.Debug("button moved", zap.Int8("buseat", i))
	return i, nil
}

// blindSeats heads-up the dealer posts the small blind
func (c *Table) blindSeats() (int8, int8) {
	var sb int8
	if c.playingCount() == 2 && c.seats[c.dealerPosition] != nil && playing(c.seats[c.dealerPosition]) {
		sb = c.dealerPosition
	} else {
		sb = c.nextSeat(c.dealerPosition, playing)
	}
	return sb, c.nextSeat(sb, playing)
}

// CollectBlinds posts small blind, big blind and antes, all or nothing
func (c *Table) CollectBlinds() error {
	if c.dealerPosition < 0 || c.playingCount() < 2 {
		return newError(KindInsufficientPlayers, "not enough players to collect blinds")
	}
	b := c.options.blinds
	sbSeat, bbSeat := c.blindSeats()
	sbPlayer, bbPlayer := c.seats[sbSeat], c.seats[bbSeat]
	owed := make(map[*Player]int)
	owed[sbPlayer] += b.Small
	owed[bbPlayer] += b.Big
	if b.Ante > 0 {
		for _, p := range c.seats {
			if p != nil && playing(p) {
				owed[p] += b.Ante
			}
		}
	}
	if sbPlayer.inGameChips < b.Small {
		return newError(KindInsufficientChips, "small blind player does not have enough chips")
	}
	if bbPlayer.inGameChips < b.Big {
		return newError(KindInsufficientChips, "big blind player does not have enough chips")
	}
	for p, amount := range owed {
		if p.inGameChips < amount {
			return newError(KindInsufficientChips, "%s does not have enough chips for the ante", p.name)
		}
	}
	sbPlayer.inGameChips -= b.Small
	bbPlayer.inGameChips -= b.Big
	c.pot += b.Small + b.Big
	c.options.recorder.Blind(c.name, sbPlayer.name, ActionDefSB, b.Small)
	c.options.recorder.Blind(c.name, bbPlayer.name, ActionDefBB, b.Big)
	c.log.Debug("small blind", zap.Int8("seat", sbSeat), zap.Int("amount", b.Small))
	c.log.Debug("big blind", zap.Int8("seat", bbSeat), zap.Int("amount", b.Big))
	if b.Ante > 0 {
		for _, p := range c.seats {
			if p == nil || !playing(p) {
				continue
			}
			p.inGameChips -= b.Ante
			c.pot += b.Ante
			c.options.recorder.Blind(c.name, p.name, ActionDefAnte, b.Ante)
			c.log.Debug("ante", zap.Int8("seat", p.seat), zap.Int("amount", b.Ante))
		}
	}
	return nil
}

// PlaceBet moves chips from the player to the pot
func (c *Table) PlaceBet(p *Player, amount int) error {
	if err := p.placeBet(amount); err != nil {
		return err
	}
	c.pot += amount
	c.bets[p.name] += amount
	c.log.Debug("bet", zap.String("player", p.name), zap.Int("amount", amount), zap.Int("pot", c.pot))
	return nil
}

// PendingBet chips the player bet in this hand and has not folded
func (c *Table) PendingBet(name string) (int, bool) {
	v, ok := c.bets[name]
	return v, ok
}

// PlayerAction dispatches fold/check/call/bet/raise/all-in, returns an acknowledgement
func (c *Table) PlayerAction(name string, action ActionDef, amount int) (string, error) {
	p, err := c.Player(name)
	if err != nil {
		return "", err
	}
	if p.table != c {
		return "", newError(KindInvalidStatus, "player %s is not seated at the table", name)
	}
	switch action {
	case ActionDefFold:
		delete(c.bets, name)
		p.muck()
		c.options.recorder.Action(c.name, c.phase, name, action, 0)
		c.log.Debug("fold", zap.String("player", name))
		return name + " folded", nil
	case ActionDefCheck:
		c.options.recorder.Action(c.name, c.phase, name, action, 0)
		return name + " checked", nil
	case ActionDefCall:
		c.options.recorder.Action(c.name, c.phase, name, action, 0)
		return name + " called", nil
	case ActionDefBet, ActionDefRaise, ActionDefAllIn:
		if action == ActionDefAllIn && amount == 0 {
			amount = p.inGameChips
		}
		if err := c.PlaceBet(p, amount); err != nil {
			return "", err
		}
		c.options.recorder.Action(c.name, c.phase, name, action, amount)
		return "Bet placed", nil
	}
	return "", newError(KindInvalidRequest, "invalid bet action %s", action)
}

// distributePot pot/N to every winner, the odd chips one each starting left of the button
func (c *Table) distributePot(winners []*Player) map[string]int {
	won := make(map[string]int, len(winners))
	if len(winners) == 0 {
		return won
	}
	share := c.pot / len(winners)
	left := c.pot - share*len(winners)
	for _, w := range winners {
		w.inGameChips += share
		won[w.name] = share
	}
	if left > 0 {
		isWinner := func(p *Player) bool {
			_, ok := won[p.name]
			return ok
		}
		i := c.dealerPosition
		for ; left > 0; left-- {
			i = c.nextSeat(i, isWinner)
			if i < 0 {
				break
			}
			c.seats[i].inGameChips++
			won[c.seats[i].name]++
		}
		if left > 0 {
			// unreachable while every winner holds a seat
			winners[0].inGameChips += left
			won[winners[0].name] += left
		}
	}
	c.pot = 0
	return won
}

// SeatState public view of a seat
type SeatState struct {
	Seat        int8         `json:"seat"`
	Player      string       `json:"player,omitempty"`
	InGameChips int          `json:"in_game_chips"`
	Bet         int          `json:"bet"`
	Status      PlayerStatus `json:"status"`
	InHand      bool         `json:"in_hand"`
}

// TableState snapshot for listings
type TableState struct {
	Name           string      `json:"name"`
	GameType       string      `json:"game_type"`
	MaxPlayers     int8        `json:"max_players"`
	MinBuyIn       int         `json:"min_buy_in"`
	MaxBuyIn       int         `json:"max_buy_in"`
	Blinds         Blinds      `json:"blinds"`
	DealerPosition int8        `json:"dealer_position"`
	Pot            int         `json:"pot"`
	Phase          Phase       `json:"phase"`
	HandNum        uint        `json:"hand_num"`
	Community      []Card      `json:"community"`
	Players        []string    `json:"players"`
	Seats          []SeatState `json:"seats"`
}

func (c *Table) State() *TableState {
	s := &TableState{
		Name:           c.name,
		GameType:       c.options.gameType,
		MaxPlayers:     c.maxPlayers,
		MinBuyIn:       c.minBuyIn,
		MaxBuyIn:       c.maxBuyIn,
		Blinds:         c.options.blinds,
		DealerPosition: c.dealerPosition,
		Pot:            c.pot,
		Phase:          c.phase,
		HandNum:        c.handNum,
		Community:      c.CommunityCards(),
		Players:        make([]string, 0, len(c.players)),
		Seats:          make([]SeatState, 0, len(c.seats)),
	}
	for _, p := range c.players {
		s.Players = append(s.Players, p.name)
	}
	for i, p := range c.seats {
		if p == nil {
			continue
		}
		s.Seats = append(s.Seats, SeatState{
			Seat:        int8(i),
			Player:      p.name,
			InGameChips: p.inGameChips,
			Bet:         p.bet,
			Status:      p.status,
			InHand:      p.hasHand,
		})
	}
	return s
}
