package game

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/taitally/internal/rules"
	"github.com/lox/taitally/internal/sessionid"
)

// SessionConfig configures a new Session
type SessionConfig struct {
	Settings  Settings
	Catalogue *rules.Catalogue
	Logger    *log.Logger
	Clock     quartz.Clock
	IDs       *sessionid.Generator
}

// Outcome reports what a confirmed hand did to the table
type Outcome struct {
	Transaction Transaction
	HandNumber  int
	// Retained is set when the winning dealer kept the seat
	Retained bool
	GameOver bool
	State    State
}

// Session holds the only mutable State of a game and drives the pure
// engine functions on behalf of the presentation layer.
type Session struct {
	id        string
	settings  Settings
	catalogue *rules.Catalogue
	state     State
	pending   *Transaction
	hands     int

	startingTotal int

	bus    EventBus
	logger *log.Logger
	clock  quartz.Clock
	ids    *sessionid.Generator
}

// NewSession seats a fresh table. Nothing can have subscribed yet, so no
// SessionStartEvent is published; Reset publishes one.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Catalogue == nil {
		cfg.Catalogue = rules.Standard()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.IDs == nil {
		cfg.IDs = sessionid.NewGenerator(cfg.Clock, nil)
	}

	s := &Session{
		settings:  cfg.Settings,
		catalogue: cfg.Catalogue,
		bus:       NewEventBus(),
		logger:    cfg.Logger.WithPrefix("session"),
		clock:     cfg.Clock,
		ids:       cfg.IDs,
	}
	s.start()
	return s
}

func (s *Session) start() {
	s.id = s.ids.Generate()
	s.state = NewState(s.settings)
	s.pending = nil
	s.hands = 0
	s.startingTotal = s.state.TotalBalance()

	s.logger.Info("Session started",
		"id", s.id,
		"baseFee", s.settings.BaseFee,
		"pointValue", s.settings.PointValue,
		"initialBalance", s.settings.InitialBalance,
		"rounds", s.settings.TotalRounds)
}

// Reset abandons the current game and seats a new one with the same settings
func (s *Session) Reset() {
	s.start()
	s.bus.Publish(SessionStartEvent{
		SessionID: s.id,
		Settings:  s.settings,
		State:     s.state,
		timestamp: s.now(),
	})
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// State returns a copy of the current state
func (s *Session) State() State { return s.state }

// Settings returns the table settings
func (s *Session) Settings() Settings { return s.settings }

// Catalogue returns the rule catalogue used for pricing
func (s *Session) Catalogue() *rules.Catalogue { return s.catalogue }

// EventBus returns the bus events are published on
func (s *Session) EventBus() EventBus { return s.bus }

// HandsPlayed returns the number of confirmed hands
func (s *Session) HandsPlayed() int { return s.hands }

// Pending returns the proposed transaction, if any
func (s *Session) Pending() (Transaction, bool) {
	if s.pending == nil {
		return Transaction{}, false
	}
	return *s.pending, true
}

// Propose prices a claim and holds it until Confirm or Cancel. A new
// proposal replaces any previous one.
func (s *Session) Propose(claim Claim) (Transaction, error) {
	txn, err := ComputeSettlement(s.state, claim, s.settings.Stakes(), s.catalogue)
	if err != nil {
		return Transaction{}, err
	}
	s.pending = &txn

	s.logger.Debug("Settlement proposed",
		"winner", txn.Winner,
		"loser", txn.Loser,
		"kind", txn.Kind,
		"basePoints", txn.BasePoints,
		"dealerBonus", txn.DealerBonus,
		"amount", txn.Amount)
	return txn, nil
}

// Cancel discards the pending proposal and reports whether there was one
func (s *Session) Cancel() bool {
	had := s.pending != nil
	s.pending = nil
	return had
}

// Confirm applies the pending transaction and then resolves the dealer
// rotation that follows it.
func (s *Session) Confirm() (Outcome, error) {
	if s.pending == nil {
		return Outcome{}, ErrNoPendingTransaction
	}
	txn := *s.pending

	before := s.state
	applied, err := ApplyTransaction(before, txn)
	if err != nil {
		return Outcome{}, fmt.Errorf("apply settlement: %w", err)
	}
	if err := s.validateChipConservation(applied); err != nil {
		s.logger.Error("Chip conservation violation detected!", "error", err)
		return Outcome{}, err
	}

	s.pending = nil
	s.state = applied
	s.hands++

	s.logger.Info("Settlement applied",
		"hand", s.hands,
		"winner", txn.Winner,
		"kind", txn.Kind,
		"finalPoints", txn.FinalPoints,
		"amount", txn.Amount)

	s.bus.Publish(SettlementEvent{
		SessionID:   s.id,
		HandNumber:  s.hands,
		Transaction: txn,
		Before:      before,
		After:       applied,
		timestamp:   s.now(),
	})

	rotated, err := Rotate(applied)
	if err != nil {
		return Outcome{}, fmt.Errorf("rotate dealer: %w", err)
	}
	s.transition(applied, rotated, false)

	return Outcome{
		Transaction: txn,
		HandNumber:  s.hands,
		Retained:    txn.Winner == before.Dealer,
		GameOver:    rotated.IsOver(),
		State:       rotated,
	}, nil
}

// NextDealer forces the deal to pass to the next seat
func (s *Session) NextDealer() error {
	next, err := ForceAdvance(s.state)
	if err != nil {
		return err
	}
	s.pending = nil
	s.transition(s.state, next, true)
	return nil
}

// AddStreak extends the current dealer's streak by one
func (s *Session) AddStreak() error {
	next, err := AddStreak(s.state)
	if err != nil {
		return err
	}
	s.state = next
	s.logger.Info("Streak added", "dealer", next.Dealer, "streak", next.Streak)
	s.bus.Publish(StreakAddedEvent{
		Dealer:    next.Dealer,
		Streak:    next.Streak,
		timestamp: s.now(),
	})
	return nil
}

// Conclude ends the game immediately and returns the final standings.
// Concluding a finished game only returns the standings.
func (s *Session) Conclude() []Standing {
	if s.state.IsOver() {
		return Standings(s.state)
	}
	s.pending = nil
	s.state = Conclude(s.state)
	standings := Standings(s.state)

	s.logger.Info("Game concluded early", "round", s.state.Round, "hands", s.hands)
	s.bus.Publish(GameOverEvent{
		Standings: standings,
		Forced:    true,
		timestamp: s.now(),
	})
	return standings
}

// Standings ranks the players as things stand
func (s *Session) Standings() []Standing {
	return Standings(s.state)
}

// transition installs next and publishes the events describing the move from prev
func (s *Session) transition(prev, next State, manual bool) {
	s.state = next

	switch {
	case next.IsOver():
		standings := Standings(next)
		s.logger.Info("Game over", "hands", s.hands, "leader", standings[0].Name, "balance", standings[0].Balance)
		s.bus.Publish(GameOverEvent{
			Standings: standings,
			timestamp: s.now(),
		})
	case next.Dealer == prev.Dealer:
		s.logger.Info("Dealer retained", "dealer", next.Dealer, "streak", next.Streak)
		s.bus.Publish(DealerRetainedEvent{
			Dealer:    next.Dealer,
			Streak:    next.Streak,
			timestamp: s.now(),
		})
	default:
		s.logger.Info("Dealer rotated",
			"from", prev.Dealer,
			"to", next.Dealer,
			"round", next.Round,
			"manual", manual)
		s.bus.Publish(DealerRotatedEvent{
			From:      prev.Dealer,
			To:        next.Dealer,
			Round:     next.Round,
			NewRound:  next.Round != prev.Round,
			Manual:    manual,
			timestamp: s.now(),
		})
	}
}

// validateChipConservation checks that a transfer left the table total unchanged
func (s *Session) validateChipConservation(state State) error {
	if total := state.TotalBalance(); total != s.startingTotal {
		return fmt.Errorf("%w: total %d, expected %d", ErrChipConservation, total, s.startingTotal)
	}
	return nil
}

func (s *Session) now() time.Time {
	return s.clock.Now("session", "event")
}
