package sim

import (
	"context"
	"fmt"
	"sort"
	"sync"

	holdem "github.com/whatisfaker/holdemtable"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const buyIn = 100

// ShowdownConfig Rounds independent tables of Players seats, played in Workers goroutines
type ShowdownConfig struct {
	Rounds  int
	Players int
	Workers int
	// NewDeck replaces the shuffled deck, nil for NewDeck
	NewDeck func() *holdem.Deck
}

// ShowdownStats aggregated over every round
type ShowdownStats struct {
	Rounds int
	// Wins outright wins per seat
	Wins []int
	// Splits tied wins per seat
	Splits []int
	Ties   int
	Tiers  map[holdem.HandValueType]int
}

// WinRate outright win share of a seat
func (c *ShowdownStats) WinRate(seat int) float64 {
	if c.Rounds == 0 {
		return 0
	}
	return float64(c.Wins[seat]) / float64(c.Rounds)
}

// SortedTiers winning tiers, strongest first
func (c *ShowdownStats) SortedTiers() []holdem.HandValueType {
	ret := make([]holdem.HandValueType, 0, len(c.Tiers))
	for k := range c.Tiers {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i] > ret[j]
	})
	return ret
}

func newShowdownStats(players int) *ShowdownStats {
	return &ShowdownStats{
		Wins:   make([]int, players),
		Splits: make([]int, players),
		Tiers:  make(map[holdem.HandValueType]int),
	}
}

func (c *ShowdownStats) merge(o *ShowdownStats) {
	c.Rounds += o.Rounds
	c.Ties += o.Ties
	for i := range o.Wins {
		c.Wins[i] += o.Wins[i]
		c.Splits[i] += o.Splits[i]
	}
	for k, v := range o.Tiers {
		c.Tiers[k] += v
	}
}

func workers(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// Showdown plays hands to the river without betting and counts who wins.
// Each round uses its own table, rounds share nothing
func Showdown(ctx context.Context, cfg ShowdownConfig) (*ShowdownStats, error) {
	if cfg.Players < 2 || cfg.Players > 10 {
		return nil, fmt.Errorf("players must be between 2 and 10, got %d", cfg.Players)
	}
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(cfg.Workers))
	total := newShowdownStats(cfg.Players)
	var mu sync.Mutex
	for r := 0; r < cfg.Rounds; r++ {
		round := r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := playRound(cfg, round)
			if err != nil {
				return fmt.Errorf("round %d: %w", round, err)
			}
			mu.Lock()
			total.merge(st)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return total, nil
}

func playRound(cfg ShowdownConfig, round int) (*ShowdownStats, error) {
	opts := []holdem.TableOption{holdem.OptionBlinds(0, 0, 0)}
	if cfg.NewDeck != nil {
		opts = append(opts, holdem.OptionDeckSource(cfg.NewDeck))
	}
	t, err := holdem.NewTable(fmt.Sprintf("sim-%d", round), int8(cfg.Players), buyIn, buyIn, zap.NewNop(), opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < cfg.Players; i++ {
		p, err := holdem.NewPlayer(fmt.Sprintf("p%d", i), buyIn)
		if err != nil {
			return nil, err
		}
		if err := p.JoinTable(t); err != nil {
			return nil, err
		}
		if err := p.SitDown(t, int8(i), buyIn); err != nil {
			return nil, err
		}
	}
	if err := t.SetDealerPosition(int8(round % cfg.Players)); err != nil {
		return nil, err
	}
	t.CreateDeck()
	if _, err := t.DealCards(cfg.Players); err != nil {
		return nil, err
	}
	for _, deal := range []func() ([]holdem.Card, error){t.DealFlop, t.DealTurn, t.DealRiver} {
		if _, err := deal(); err != nil {
			return nil, err
		}
	}
	res, err := t.DetermineWinner()
	if err != nil {
		return nil, err
	}
	st := newShowdownStats(cfg.Players)
	st.Rounds = 1
	if res.Tie {
		st.Ties = 1
	}
	for _, h := range res.Hands {
		if !h.Winner {
			continue
		}
		if res.Tie {
			st.Splits[h.Seat]++
		} else {
			st.Wins[h.Seat]++
			st.Tiers[h.Value.Type()]++
		}
	}
	if res.Tie {
		st.Tiers[res.Winner().Value.Type()]++
	}
	return st, nil
}
