package holdem

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

const defaultHistoryLimit = 100

type EventKind string

const (
	EventBlind  EventKind = "blind"
	EventDeal   EventKind = "deal"
	EventReveal EventKind = "reveal"
	EventAction EventKind = "action"
)

// Event one state change of a hand
type Event struct {
	At     time.Time `json:"at"`
	Kind   EventKind `json:"kind"`
	Phase  Phase     `json:"phase"`
	Player string    `json:"player,omitempty"`
	Action ActionDef `json:"action,omitempty"`
	Amount int       `json:"amount,omitempty"`
	Burn   *Card     `json:"burn,omitempty"`
	Cards  []Card    `json:"cards,omitempty"`
}

// HandRecord everything that happened in one hand
type HandRecord struct {
	Table   string          `json:"table"`
	Hand    uint            `json:"hand"`
	Started time.Time       `json:"started"`
	Ended   time.Time       `json:"ended,omitempty"`
	Events  []Event         `json:"events"`
	Result  *ShowdownResult `json:"result,omitempty"`
}

// HandHistory in memory Recorder, keeps the latest hands only
type HandHistory struct {
	mu      sync.Mutex
	clock   quartz.Clock
	limit   int
	phase   Phase
	open    bool // between Begin and End
	records []*HandRecord
	pending []Event // posted between hands, belong to the next one
}

var _ Recorder = (*HandHistory)(nil)

// NewHandHistory limit <= 0 means the default of 100 hands
func NewHandHistory(clock quartz.Clock, limit int) *HandHistory {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &HandHistory{
		clock: clock,
		limit: limit,
	}
}

func (c *HandHistory) current() *HandRecord {
	if len(c.records) == 0 {
		return nil
	}
	return c.records[len(c.records)-1]
}

func (c *HandHistory) add(e Event) {
	e.At = c.clock.Now()
	e.Phase = c.phase
	if !c.open {
		c.pending = append(c.pending, e)
		return
	}
	r := c.current()
	r.Events = append(r.Events, e)
}

func (c *HandHistory) Begin(table string, hand uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseNone
	c.open = true
	c.records = append(c.records, &HandRecord{
		Table:   table,
		Hand:    hand,
		Started: c.clock.Now(),
		Events:  append(make([]Event, 0, len(c.pending)), c.pending...),
	})
	c.pending = nil
	if len(c.records) > c.limit {
		c.records = c.records[len(c.records)-c.limit:]
	}
}

func (c *HandHistory) Blind(_ string, player string, action ActionDef, amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(Event{Kind: EventBlind, Player: player, Action: action, Amount: amount})
}

func (c *HandHistory) Deal(_ string, player string, cards [2]Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhasePreFlop
	c.add(Event{Kind: EventDeal, Player: player, Cards: []Card{cards[0], cards[1]}})
}

func (c *HandHistory) Reveal(_ string, phase Phase, burn Card, cards []Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = phase
	b := burn
	cs := make([]Card, len(cards))
	copy(cs, cards)
	c.add(Event{Kind: EventReveal, Burn: &b, Cards: cs})
}

func (c *HandHistory) Action(_ string, phase Phase, player string, action ActionDef, amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = phase
	c.add(Event{Kind: EventAction, Player: player, Action: action, Amount: amount})
}

func (c *HandHistory) End(_ string, result *ShowdownResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.current()
	if !c.open || r == nil {
		return
	}
	r.Ended = c.clock.Now()
	r.Result = result
	c.phase = PhaseNone
	c.open = false
}

// Records copies of the kept hands, oldest first
func (c *HandHistory) Records() []HandRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]HandRecord, 0, len(c.records))
	for _, r := range c.records {
		v := *r
		v.Events = append(make([]Event, 0, len(r.Events)), r.Events...)
		out = append(out, v)
	}
	return out
}

// Last latest hand, false when nothing was recorded
func (c *HandHistory) Last() (HandRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.current()
	if r == nil {
		return HandRecord{}, false
	}
	v := *r
	v.Events = append(make([]Event, 0, len(r.Events)), r.Events...)
	return v, true
}
