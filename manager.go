package holdem

import (
	"sort"
	"sync"

	"github.com/coder/quartz"
	"go.uber.org/zap"
)

// session one table and its hand history, guarded by its own lock
type session struct {
	mu      sync.Mutex
	table   *Table
	history *HandHistory
}

// Manager registry of uniquely named players and tables.
// Lifecycle operations that move chips between bankroll and table hold the write lock,
// hand operations hold the read lock plus the lock of their table, so tables progress concurrently
type Manager struct {
	mu           sync.RWMutex
	tables       map[string]*session
	players      map[string]*Player
	clock        quartz.Clock
	historyLimit int
	tableOptions []TableOption
	log          *zap.Logger
}

// NewManager opts are applied to every table the manager creates
func NewManager(log *zap.Logger, clock quartz.Clock, opts ...TableOption) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Manager{
		tables:       make(map[string]*session),
		players:      make(map[string]*Player),
		clock:        clock,
		historyLimit: defaultHistoryLimit,
		tableOptions: opts,
		log:          log,
	}
}

func (c *Manager) session(name string) (*session, error) {
	s, ok := c.tables[name]
	if !ok {
		return nil, newError(KindTableNotFound, "table %s not found", name)
	}
	return s, nil
}

func (c *Manager) player(name string) (*Player, error) {
	p, ok := c.players[name]
	if !ok {
		return nil, newError(KindPlayerNotFound, "player %s not found", name)
	}
	return p, nil
}

// withTable runs f under the read lock and the table lock
func (c *Manager) withTable(name string, f func(*Table) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, err := c.session(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.table)
}

// withPlayer runs f under the write lock
func (c *Manager) withPlayer(name string, f func(*Player) error) (*PlayerState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.player(name)
	if err != nil {
		return nil, err
	}
	if err := f(p); err != nil {
		return nil, err
	}
	return c.playerState(p), nil
}

func (c *Manager) CreateTable(name string, maxPlayers int8, minBuyIn int, maxBuyIn int, opts ...TableOption) (*TableState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tables[name]; ok {
		return nil, newError(KindTableExists, "table %s already exists", name)
	}
	h := NewHandHistory(c.clock, c.historyLimit)
	all := make([]TableOption, 0, len(c.tableOptions)+len(opts)+1)
	all = append(all, c.tableOptions...)
	all = append(all, opts...)
	all = append(all, OptionCustomRecorder(h))
	t, err := NewTable(name, maxPlayers, minBuyIn, maxBuyIn, c.log, all...)
	if err != nil {
		return nil, err
	}
	c.tables[name] = &session{table: t, history: h}
	c.log.Info("table created", zap.String("table", name), zap.Int8("max_players", maxPlayers), zap.Int("min_buy_in", minBuyIn), zap.Int("max_buy_in", maxBuyIn))
	return t.State(), nil
}

// DeleteTable seated players stand up, every joined player leaves
func (c *Manager) DeleteTable(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.session(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.table.Players() {
		if p.table == s.table {
			s.table.standUp(p)
		}
		if err := p.LeaveTable(s.table); err != nil {
			return err
		}
	}
	delete(c.tables, name)
	c.log.Info("table deleted", zap.String("table", name))
	return nil
}

// Tables snapshots sorted by name
func (c *Manager) Tables() []*TableState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.tables))
	for k := range c.tables {
		names = append(names, k)
	}
	sort.Strings(names)
	ret := make([]*TableState, 0, len(names))
	for _, k := range names {
		s := c.tables[k]
		s.mu.Lock()
		ret = append(ret, s.table.State())
		s.mu.Unlock()
	}
	return ret
}

func (c *Manager) TableState(name string) (*TableState, error) {
	var ret *TableState
	err := c.withTable(name, func(t *Table) error {
		ret = t.State()
		return nil
	})
	return ret, err
}

func (c *Manager) SetBlinds(name string, small, big, ante int) (*TableState, error) {
	var ret *TableState
	err := c.withTable(name, func(t *Table) error {
		if err := t.SetBlinds(small, big, ante); err != nil {
			return err
		}
		ret = t.State()
		return nil
	})
	return ret, err
}

func (c *Manager) CreatePlayer(name string, bankroll int) (*PlayerState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.players[name]; ok {
		return nil, newError(KindPlayerExists, "player %s already exists", name)
	}
	p, err := NewPlayer(name, bankroll)
	if err != nil {
		return nil, err
	}
	c.players[name] = p
	c.log.Info("player created", zap.String("player", name), zap.Int("bankroll", bankroll))
	return p.State(), nil
}

// RemovePlayer stands the player up and leaves every joined table first
func (c *Manager) RemovePlayer(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.player(name)
	if err != nil {
		return err
	}
	if p.table != nil {
		s := c.tables[p.table.name]
		s.mu.Lock()
		p.table.standUp(p)
		s.mu.Unlock()
	}
	for _, t := range append([]*Table(nil), p.tables...) {
		s := c.tables[t.name]
		s.mu.Lock()
		err := p.LeaveTable(t)
		s.mu.Unlock()
		if err != nil {
			return err
		}
	}
	delete(c.players, name)
	c.log.Info("player removed", zap.String("player", name))
	return nil
}

func (c *Manager) Player(name string) (*PlayerState, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := c.player(name)
	if err != nil {
		return nil, err
	}
	return c.playerState(p), nil
}

// playerState snapshot taken under the lock of the player's table
func (c *Manager) playerState(p *Player) *PlayerState {
	var ret *PlayerState
	_ = c.seated(p, func() error {
		ret = p.State()
		return nil
	})
	return ret
}

// Players snapshots sorted by name
func (c *Manager) Players() []*PlayerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]*PlayerState, 0, len(c.players))
	for _, p := range c.players {
		ret = append(ret, c.playerState(p))
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Name < ret[j].Name
	})
	return ret
}

func (c *Manager) UpdatePlayerChips(name string, chips int) (*PlayerState, error) {
	return c.withPlayer(name, func(p *Player) error {
		return p.SetBankroll(chips)
	})
}

func (c *Manager) JoinTable(player string, table string) (*PlayerState, error) {
	return c.withPlayer(player, func(p *Player) error {
		s, err := c.session(table)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return p.JoinTable(s.table)
	})
}

func (c *Manager) LeaveTable(player string, table string) (*PlayerState, error) {
	return c.withPlayer(player, func(p *Player) error {
		s, err := c.session(table)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return p.LeaveTable(s.table)
	})
}

func (c *Manager) SitDown(player string, table string, seat int8, buyIn int) (*PlayerState, error) {
	return c.withPlayer(player, func(p *Player) error {
		s, err := c.session(table)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return p.SitDown(s.table, seat, buyIn)
	})
}

// seated runs f with the lock of the player's table, if any
func (c *Manager) seated(p *Player, f func() error) error {
	if p.table == nil {
		return f()
	}
	s := c.tables[p.table.name]
	s.mu.Lock()
	defer s.mu.Unlock()
	return f()
}

func (c *Manager) StandUp(player string) (*PlayerState, error) {
	return c.withPlayer(player, func(p *Player) error {
		return c.seated(p, p.StandUp)
	})
}

func (c *Manager) SitOut(player string) (*PlayerState, error) {
	return c.withPlayer(player, func(p *Player) error {
		return c.seated(p, p.SitOut)
	})
}

func (c *Manager) RejoinGame(player string) (*PlayerState, error) {
	return c.withPlayer(player, func(p *Player) error {
		return c.seated(p, p.Rejoin)
	})
}

func (c *Manager) AddOn(player string, amount int) (*PlayerState, error) {
	return c.withPlayer(player, func(p *Player) error {
		return c.seated(p, func() error {
			return p.AddOn(amount)
		})
	})
}

func (c *Manager) SetDealer(table string, seat int8) (*TableState, error) {
	var ret *TableState
	err := c.withTable(table, func(t *Table) error {
		if err := t.SetDealerPosition(seat); err != nil {
			return err
		}
		ret = t.State()
		return nil
	})
	return ret, err
}

func (c *Manager) NextDealer(table string) (int8, error) {
	var ret int8
	err := c.withTable(table, func(t *Table) (err error) {
		ret, err = t.NextDealer()
		return
	})
	return ret, err
}

func (c *Manager) CollectBlinds(table string) (*TableState, error) {
	var ret *TableState
	err := c.withTable(table, func(t *Table) error {
		if err := t.CollectBlinds(); err != nil {
			return err
		}
		ret = t.State()
		return nil
	})
	return ret, err
}

// CreateDeck starts a new hand at the table
func (c *Manager) CreateDeck(table string) (*TableState, error) {
	var ret *TableState
	err := c.withTable(table, func(t *Table) error {
		t.CreateDeck()
		ret = t.State()
		return nil
	})
	return ret, err
}

func (c *Manager) DealCards(table string, numPlayers int) (map[string][]Card, error) {
	var ret map[string][]Card
	err := c.withTable(table, func(t *Table) (err error) {
		ret, err = t.DealCards(numPlayers)
		return
	})
	return ret, err
}

func (c *Manager) DealFlop(table string) ([]Card, error) {
	return c.reveal(table, (*Table).DealFlop)
}

func (c *Manager) DealTurn(table string) ([]Card, error) {
	return c.reveal(table, (*Table).DealTurn)
}

func (c *Manager) DealRiver(table string) ([]Card, error) {
	return c.reveal(table, (*Table).DealRiver)
}

func (c *Manager) reveal(table string, f func(*Table) ([]Card, error)) ([]Card, error) {
	var ret []Card
	err := c.withTable(table, func(t *Table) (err error) {
		ret, err = f(t)
		return
	})
	return ret, err
}

func (c *Manager) PlayerAction(table string, player string, action ActionDef, amount int) (string, error) {
	var ret string
	err := c.withTable(table, func(t *Table) (err error) {
		ret, err = t.PlayerAction(player, action, amount)
		return
	})
	return ret, err
}

func (c *Manager) DetermineWinner(table string) (*ShowdownResult, error) {
	var ret *ShowdownResult
	err := c.withTable(table, func(t *Table) (err error) {
		ret, err = t.DetermineWinner()
		return
	})
	if err == nil {
		c.log.Info("showdown", zap.String("table", table), zap.Strings("winners", ret.Winners), zap.Int("pot", ret.Pot))
	}
	return ret, err
}

// History recorded hands of the table, oldest first
func (c *Manager) History(table string) ([]HandRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, err := c.session(table)
	if err != nil {
		return nil, err
	}
	return s.history.Records(), nil
}
