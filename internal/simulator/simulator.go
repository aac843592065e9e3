// Package simulator plays seeded synthetic sessions to exercise the
// settlement engine and dealer rotation at volume.
package simulator

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/taitally/internal/game"
	"github.com/lox/taitally/internal/randutil"
	"github.com/lox/taitally/internal/rules"
	"github.com/lox/taitally/internal/sessionid"
	"github.com/lox/taitally/internal/statistics"
)

// maxHandsPerSession stops a session that never reaches game over. A dealer
// can in principle keep the deal forever.
const maxHandsPerSession = 10000

// Config holds configuration for running simulations
type Config struct {
	Sessions     int
	Workers      int
	Seed         int64
	Settings     game.Settings
	Catalogue    *rules.Catalogue
	SelfDrawRate float64 // Probability a win is a self-draw
	RuleRate     float64 // Probability each rule is claimed on a win
	Timeout      time.Duration
	Logger       *log.Logger
}

// Simulator runs synthetic sessions
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 4
	}
	if config.Settings == (game.Settings{}) {
		config.Settings = game.DefaultSettings()
	}
	if config.Catalogue == nil {
		config.Catalogue = rules.Standard()
	}
	if config.SelfDrawRate <= 0 {
		config.SelfDrawRate = 0.3
	}
	if config.RuleRate <= 0 {
		config.RuleRate = 0.15
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run plays every session and returns the aggregated results. Sessions are
// spread over the worker pool; results are combined in seed order.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	results := make([]statistics.SessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Sessions; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			result, err := s.playSession(ctx, seed)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, result := range results {
		stats.Add(result)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"sessions", stats.Sessions,
		"hands", stats.Hands,
		"max_streak", stats.MaxStreak)

	return stats, nil
}

// playSession plays one session from the seed until game over
func (s *Simulator) playSession(ctx context.Context, seed int64) (statistics.SessionResult, error) {
	rng := randutil.New(seed)
	clock := quartz.NewReal()

	session := game.NewSession(game.SessionConfig{
		Settings:  s.config.Settings,
		Catalogue: s.config.Catalogue,
		Logger:    s.config.Logger,
		Clock:     clock,
		IDs:       sessionid.NewGenerator(clock, randutil.Reader(rng)),
	})

	result := statistics.SessionResult{Seed: seed, MaxStreak: 1}
	expected := game.NumSeats * s.config.Settings.InitialBalance

	for !session.State().IsOver() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if result.Hands >= maxHandsPerSession {
			return result, fmt.Errorf("no game over after %d hands", result.Hands)
		}

		before := session.State()
		if _, err := session.Propose(s.randomClaim(rng)); err != nil {
			return result, err
		}
		outcome, err := session.Confirm()
		if err != nil {
			return result, err
		}

		if total := outcome.State.TotalBalance(); total != expected {
			return result, fmt.Errorf("%w after hand %d: total %d, expected %d",
				game.ErrChipConservation, outcome.HandNumber, total, expected)
		}

		result.Hands++
		if outcome.Transaction.Kind == game.SelfDraw {
			result.SelfDraws++
		} else {
			result.DirectHits++
		}
		if outcome.Transaction.Winner == before.Dealer {
			result.DealerWins++
		}
		if outcome.State.Streak > result.MaxStreak {
			result.MaxStreak = outcome.State.Streak
		}
	}

	standings := session.Standings()
	for _, st := range standings {
		result.Net[st.Seat] = st.Net
	}
	result.Leader = standings[0].Seat

	s.config.Logger.Debug("Session finished", "id", session.ID(), "seed", seed, "hands", result.Hands)
	return result, nil
}

// randomClaim picks a winner, a win kind and a subset of the catalogue
func (s *Simulator) randomClaim(rng *rand.Rand) game.Claim {
	winner := game.Seat(rng.IntN(game.NumSeats))
	claim := game.Claim{Winner: winner, Loser: game.NoSeat}

	if rng.Float64() >= s.config.SelfDrawRate {
		claim.Loser = game.Seat((int(winner) + 1 + rng.IntN(game.NumSeats-1)) % game.NumSeats)
	}

	for _, r := range s.config.Catalogue.All() {
		if rng.Float64() < s.config.RuleRate {
			claim.RuleIDs = append(claim.RuleIDs, r.ID)
		}
	}
	if rng.IntN(4) == 0 {
		claim.ManualExtra = rng.IntN(3)
	}
	return claim
}
