package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/pterm/pterm"
	"github.com/whatisfaker/holdemtable/sim"
)

type ShowdownCmd struct {
	Rounds  int `short:"r" default:"10000" help:"Number of hands to play"`
	Players int `short:"p" default:"6" help:"Players per table (2-10)"`
	Workers int `short:"w" default:"0" help:"Parallel workers (0 for one per CPU)"`
}

func (c *ShowdownCmd) Run(ctx context.Context) error {
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Playing %d hands", c.Rounds))
	st, err := sim.Showdown(ctx, sim.ShowdownConfig{
		Rounds:  c.Rounds,
		Players: c.Players,
		Workers: cpus(c.Workers),
	})
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("%d hands, %d split pots", st.Rounds, st.Ties))

	seats := pterm.TableData{{"Seat", "Wins", "Win rate", "Splits"}}
	for i := range st.Wins {
		seats = append(seats, []string{
			fmt.Sprint(i),
			fmt.Sprint(st.Wins[i]),
			fmt.Sprintf("%.2f%%", st.WinRate(i)*100),
			fmt.Sprint(st.Splits[i]),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(seats).Render(); err != nil {
		return err
	}
	tiers := pterm.TableData{{"Winning hand", "Count", "Share"}}
	for _, k := range st.SortedTiers() {
		v := st.Tiers[k]
		tiers = append(tiers, []string{k.String(), fmt.Sprint(v), fmt.Sprintf("%.2f%%", float64(v)*100/float64(st.Rounds))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(tiers).Render()
}

type ShuffleCmd struct {
	Decks   int `short:"d" default:"100000" help:"Number of decks to shuffle"`
	Workers int `short:"w" default:"0" help:"Parallel workers (0 for one per CPU)"`
	Top     int `short:"t" default:"10" help:"Cards to list, least uniform first"`
}

func (c *ShuffleCmd) Run(ctx context.Context) error {
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Shuffling %d decks", c.Decks))
	st, err := sim.Shuffle(ctx, sim.ShuffleConfig{
		Decks:   c.Decks,
		Workers: cpus(c.Workers),
	})
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("mean chi-square %.2f with %d degrees of freedom", st.MeanChiSquare(), st.DegreesOfFreedom()))
	data := pterm.TableData{{"Card", "Chi-square", "p-value"}}
	for i, s := range st.Cards {
		if i >= c.Top {
			break
		}
		data = append(data, []string{s.Card.String(), fmt.Sprintf("%.2f", s.ChiSquare), fmt.Sprintf("%.4f", s.PValue)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

type CLI struct {
	Showdown ShowdownCmd `cmd:"" help:"Play independent hands to showdown and count winners per seat"`
	Shuffle  ShuffleCmd  `cmd:"" help:"Measure how uniformly cards spread over deck positions"`
}

func cpus(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("holdem-sim"),
		kong.Description("Statistical runs over independent hold'em tables"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
