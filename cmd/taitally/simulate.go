package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"

	"github.com/lox/taitally/internal/game"
	"github.com/lox/taitally/internal/simulator"
	"github.com/lox/taitally/internal/statistics"
)

// SimulateCmd plays random sessions to exercise the engine at volume
type SimulateCmd struct {
	Stakes `embed:""`

	Sessions     int           `default:"1000" help:"Number of sessions to play"`
	Workers      int           `default:"4" help:"Sessions played in parallel"`
	Seed         *int64        `help:"Deterministic RNG seed (optional)"`
	SelfDrawRate float64       `default:"0.3" help:"Probability a win is a self-draw"`
	Timeout      time.Duration `default:"1m" help:"Give up after this long"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load(c.Stakes)
	if err != nil {
		return err
	}
	catalogue, err := cfg.Catalogue()
	if err != nil {
		return err
	}
	logger := stderrLogger(g, cfg)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Using seed", "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Sessions:     c.Sessions,
		Workers:      c.Workers,
		Seed:         seed,
		Settings:     cfg.Settings(),
		Catalogue:    catalogue,
		SelfDrawRate: c.SelfDrawRate,
		Timeout:      c.Timeout,
		Logger:       logger.WithPrefix("simulator"),
	})

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Playing %d sessions...", c.Sessions))
	stats, err := sim.Run(ctx)
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("%d sessions, %d hands", stats.Sessions, stats.Hands))

	pterm.DefaultBox.
		WithTitle(pterm.LightGreen("|SUMMARY|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Println(simulationSummary(stats))

	return pterm.DefaultTable.WithHasHeader().WithData(seatTable(stats)).Render()
}

func simulationSummary(stats *statistics.Statistics) string {
	low, high := stats.LeaderNet.ConfidenceInterval95()
	return pterm.Sprintfln("Hands per session: %.1f (P5 %.0f, P95 %.0f)",
		stats.HandsPerSession.Mean(), stats.HandsPerSession.Percentile(0.05), stats.HandsPerSession.Percentile(0.95)) +
		pterm.Sprintfln("Self-draw rate: %.1f%%", stats.SelfDrawRate()*100) +
		pterm.Sprintfln("Dealer wins: %d of %d hands", stats.DealerWins, stats.Hands) +
		pterm.Sprintfln("Longest streak: %d", stats.MaxStreak) +
		pterm.Sprintf("Leader finishes up: %.0f (95%% CI %.0f to %.0f)", stats.LeaderNet.Mean(), low, high)
}

func seatTable(stats *statistics.Statistics) pterm.TableData {
	data := pterm.TableData{{"Seat", "Mean", "Std Dev", "P5", "Median", "P95", "Led"}}
	for _, seat := range game.Seats() {
		s := stats.Seats[seat]
		data = append(data, []string{
			seat.String(),
			fmt.Sprintf("%+.0f", s.Mean()),
			fmt.Sprintf("%.0f", s.StdDev()),
			fmt.Sprintf("%+.0f", s.Percentile(0.05)),
			fmt.Sprintf("%+.0f", s.Median()),
			fmt.Sprintf("%+.0f", s.Percentile(0.95)),
			fmt.Sprintf("%d", stats.LeaderWins[seat]),
		})
	}
	return data
}
