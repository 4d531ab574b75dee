package sim

import (
	"context"
	"fmt"
	"sort"

	holdem "github.com/whatisfaker/holdemtable"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const deckSize = 52

// ShuffleConfig Decks fresh decks shuffled in Workers goroutines
type ShuffleConfig struct {
	Decks   int
	Workers int
	NewDeck func() *holdem.Deck
}

// CardStat how uniformly one card spreads over the deck positions
type CardStat struct {
	Card      holdem.Card
	ChiSquare float64
	// PValue chance of a statistic at least this large under a uniform shuffle
	PValue float64
}

// ShuffleStats Positions[card][position] counts
type ShuffleStats struct {
	Decks     int
	Positions [deckSize][deckSize]int
	Cards     []CardStat
}

// DegreesOfFreedom of every per card chi-square statistic
func (c *ShuffleStats) DegreesOfFreedom() int {
	return deckSize - 1
}

// MeanChiSquare close to DegreesOfFreedom for a uniform shuffle
func (c *ShuffleStats) MeanChiSquare() float64 {
	if len(c.Cards) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range c.Cards {
		sum += s.ChiSquare
	}
	return sum / float64(len(c.Cards))
}

func cardIndex(c holdem.Card) int {
	return int(c.Suit)*13 + int(c.Num) - 2
}

// Shuffle counts the position of every card over many decks
func Shuffle(ctx context.Context, cfg ShuffleConfig) (*ShuffleStats, error) {
	if cfg.Decks <= 0 {
		return nil, fmt.Errorf("decks must be positive, got %d", cfg.Decks)
	}
	newDeck := cfg.NewDeck
	if newDeck == nil {
		newDeck = holdem.NewDeck
	}
	n := workers(cfg.Workers)
	if n > cfg.Decks {
		n = cfg.Decks
	}
	parts := make([]*[deckSize][deckSize]int, n)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < n; w++ {
		w := w
		count := cfg.Decks / n
		if w < cfg.Decks%n {
			count++
		}
		parts[w] = new([deckSize][deckSize]int)
		g.Go(func() error {
			pos := parts[w]
			for i := 0; i < count; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				cards := newDeck().Cards()
				if len(cards) != deckSize {
					return fmt.Errorf("deck holds %d cards", len(cards))
				}
				for p, card := range cards {
					pos[cardIndex(card)][p]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	st := &ShuffleStats{Decks: cfg.Decks}
	for _, part := range parts {
		for c := range part {
			for p := range part[c] {
				st.Positions[c][p] += part[c][p]
			}
		}
	}
	exp := make([]float64, deckSize)
	for i := range exp {
		exp[i] = float64(cfg.Decks) / deckSize
	}
	dist := distuv.ChiSquared{K: float64(st.DegreesOfFreedom())}
	obs := make([]float64, deckSize)
	st.Cards = make([]CardStat, 0, deckSize)
	for s := holdem.Clubs; s <= holdem.Spades; s++ {
		for num := int8(2); num <= 14; num++ {
			card, err := holdem.NewCard(num, s)
			if err != nil {
				return nil, err
			}
			for p, v := range st.Positions[cardIndex(card)] {
				obs[p] = float64(v)
			}
			chi := stat.ChiSquare(obs, exp)
			st.Cards = append(st.Cards, CardStat{Card: card, ChiSquare: chi, PValue: dist.Survival(chi)})
		}
	}
	sort.SliceStable(st.Cards, func(i, j int) bool {
		return st.Cards[i].ChiSquare > st.Cards[j].ChiSquare
	})
	return st, nil
}
