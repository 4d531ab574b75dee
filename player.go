package holdem

// Player one participant, chips outside (bankroll) and on the table (inGameChips)
type Player struct {
	name        string
	bankroll    int
	inGameChips int
	bet         int
	status      PlayerStatus
	seat        int8 // -1 when not seated
	table       *Table
	hand        [2]Card
	hasHand     bool
	tables      []*Table // joined
}

func NewPlayer(name string, bankroll int) (*Player, error) {
	if name == "" {
		return nil, newError(KindInvalidRequest, "player name is required")
	}
	if bankroll < 0 {
		return nil, newError(KindInvalidRequest, "bankroll must not be negative")
	}
	return &Player{
		name:     name,
		bankroll: bankroll,
		status:   StatusStanding,
		seat:     -1,
	}, nil
}

func (c *Player) Name() string {
	return c.name
}

func (c *Player) Bankroll() int {
	return c.bankroll
}

func (c *Player) InGameChips() int {
	return c.inGameChips
}

// Bet chips put in through bets since the hand began
func (c *Player) Bet() int {
	return c.bet
}

func (c *Player) Status() PlayerStatus {
	return c.status
}

// Seat seat index, ok is false when the player is not seated
func (c *Player) Seat() (int8, bool) {
	return c.seat, c.seat >= 0
}

// Hand hole cards, nil before the deal or after a fold
func (c *Player) Hand() []Card {
	if !c.hasHand {
		return nil
	}
	return []Card{c.hand[0], c.hand[1]}
}

// Tables names of the joined tables
func (c *Player) Tables() []string {
	names := make([]string, 0, len(c.tables))
	for _, t := range c.tables {
		names = append(names, t.name)
	}
	return names
}

func (c *Player) joined(t *Table) bool {
	for _, v := range c.tables {
		if v == t {
			return true
		}
	}
	return false
}

func (c *Player) inHand() bool {
	return c.status == StatusPlaying && c.hasHand
}

func (c *Player) muck() {
	c.hand = [2]Card{}
	c.hasHand = false
}

// SetBankroll overwrite the bankroll
func (c *Player) SetBankroll(chips int) error {
	if chips < 0 {
		return newError(KindInvalidRequest, "bankroll must not be negative")
	}
	c.bankroll = chips
	return nil
}

// JoinTable 加入游戏,并没有坐下
func (c *Player) JoinTable(t *Table) error {
	if t == nil {
		return ErrTableNotFound
	}
	if !c.joined(t) {
		t.addPlayer(c)
		c.tables = append(c.tables, t)
	}
	if c.status == StatusStanding {
		c.status = StatusSitting
	}
	return nil
}

// LeaveTable 离开, a seated player must stand up first
func (c *Player) LeaveTable(t *Table) error {
	if t == nil || !c.joined(t) {
		return newError(KindInvalidStatus, "player not at the table")
	}
	if c.table == t {
		return newError(KindInvalidStatus, "player must stand up before leaving the table")
	}
	t.removePlayer(c)
	for i, v := range c.tables {
		if v == t {
			c.tables = append(c.tables[:i], c.tables[i+1:]...)
			break
		}
	}
	if len(c.tables) == 0 && c.table == nil {
		c.status = StatusStanding
	}
	return nil
}

// SitDown 坐下 and buy in
func (c *Player) SitDown(t *Table, seat int8, buyIn int) error {
	if t == nil {
		return ErrTableNotFound
	}
	if c.table != nil {
		return newError(KindAlreadySeated, "player is already seated at table %s", c.table.name)
	}
	if c.status != StatusSitting {
		return newError(KindInvalidStatus, "player must be sitting to take a seat")
	}
	if !c.joined(t) {
		return newError(KindInvalidStatus, "player must join the table before sitting down")
	}
	return t.seat(c, seat, buyIn)
}

// StandUp 站起来, chips go back to the bankroll and the seat is vacated
func (c *Player) StandUp() error {
	if c.table == nil || (c.status != StatusPlaying && c.status != StatusSittingOut) {
		return newError(KindInvalidStatus, "player is not seated")
	}
	c.table.standUp(c)
	return nil
}

// SitOut keeps seat and chips but skips hands
func (c *Player) SitOut() error {
	if c.status != StatusPlaying {
		return newError(KindInvalidStatus, "player is not playing")
	}
	c.status = StatusSittingOut
	c.muck()
	return nil
}

func (c *Player) Rejoin() error {
	if c.status != StatusSittingOut {
		return newError(KindInvalidStatus, "player is not sitting out")
	}
	c.status = StatusPlaying
	return nil
}

// AddOn moves chips from the bankroll to the table, capped by the table max buy-in
func (c *Player) AddOn(amount int) error {
	if c.status != StatusPlaying || c.table == nil {
		return newError(KindInvalidStatus, "player must be playing to add on chips")
	}
	if amount <= 0 {
		return newError(KindInvalidRequest, "add-on amount must be positive")
	}
	if c.inGameChips+amount > c.table.maxBuyIn {
		return newError(KindInvalidBuyIn, "add-on amount exceeds the maximum buy-in limit")
	}
	if amount > c.bankroll {
		return newError(KindInsufficientBankroll, "insufficient bankroll for the add-on")
	}
	c.bankroll -= amount
	c.inGameChips += amount
	return nil
}

func (c *Player) placeBet(amount int) error {
	if amount < 0 {
		return newError(KindInvalidRequest, "bet amount must not be negative")
	}
	if amount > c.inGameChips {
		return newError(KindInsufficientChips, "insufficient chips")
	}
	c.inGameChips -= amount
	c.bet += amount
	return nil
}

// PlayerState public view of a player
type PlayerState struct {
	Name        string       `json:"name"`
	Bankroll    int          `json:"bankroll"`
	InGameChips int          `json:"in_game_chips"`
	Bet         int          `json:"bet"`
	Status      PlayerStatus `json:"status"`
	Seat        *int8        `json:"seat"`
	Table       string       `json:"table,omitempty"`
	Tables      []string     `json:"tables"`
	Hand        []Card       `json:"hand,omitempty"`
}

func (c *Player) State() *PlayerState {
	s := &PlayerState{
		Name:        c.name,
		Bankroll:    c.bankroll,
		InGameChips: c.inGameChips,
		Bet:         c.bet,
		Status:      c.status,
		Tables:      c.Tables(),
		Hand:        c.Hand(),
	}
	if seat, ok := c.Seat(); ok {
		s.Seat = &seat
		s.Table = c.table.name
	}
	return s
}
