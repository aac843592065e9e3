package game

import "fmt"

// Defaults applied when a setting is missing or not a usable number
const (
	DefaultBaseFee        = 300
	DefaultPointValue     = 100
	DefaultInitialBalance = 20000
	DefaultTotalRounds    = 4
)

// Settings are the table stakes chosen before the first hand
type Settings struct {
	BaseFee        int
	PointValue     int
	InitialBalance int
	TotalRounds    int
}

// DefaultSettings returns the standard table settings
func DefaultSettings() Settings {
	return Settings{
		BaseFee:        DefaultBaseFee,
		PointValue:     DefaultPointValue,
		InitialBalance: DefaultInitialBalance,
		TotalRounds:    DefaultTotalRounds,
	}
}

// Stakes returns the payment terms of the settings
func (s Settings) Stakes() Stakes {
	return Stakes{BaseFee: s.BaseFee, PointValue: s.PointValue}
}

// Phase is the position of the table in the dealer rotation state machine
type Phase int

const (
	// Dealing accepts a new hand
	Dealing Phase = iota
	// RoundAdvance follows an applied hand until Rotate decides the next dealer
	RoundAdvance
	// GameOver is terminal
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Dealing:
		return "dealing"
	case RoundAdvance:
		return "round-advance"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the complete scoreboard. It is a value: engine functions take a
// State and return a new one, leaving the argument untouched.
type State struct {
	Dealer         Seat
	Streak         int
	Round          int
	TotalRounds    int
	InitialBalance int
	Players        [NumSeats]Player
	Phase          Phase

	// LastWinner is the winner of the hand awaiting rotation; NoSeat otherwise
	LastWinner Seat
}

// NewState seats four players with the initial balance, East dealing the
// first hand of round one
func NewState(s Settings) State {
	state := State{
		Dealer:         East,
		Streak:         1,
		Round:          1,
		TotalRounds:    s.TotalRounds,
		InitialBalance: s.InitialBalance,
		Phase:          Dealing,
		LastWinner:     NoSeat,
	}
	for _, seat := range Seats() {
		state.Players[seat] = Player{
			Seat:    seat,
			Name:    seat.String(),
			Balance: s.InitialBalance,
		}
	}
	return state
}

// TotalBalance sums all four balances
func (s State) TotalBalance() int {
	total := 0
	for _, p := range s.Players {
		total += p.Balance
	}
	return total
}

// Balance returns the balance of a seat
func (s State) Balance(seat Seat) int {
	return s.Players[seat].Balance
}

// RoundWind returns the prevailing wind, East for round one and so on
func (s State) RoundWind() Seat {
	if s.Round < 1 {
		return East
	}
	return Seat((s.Round - 1) % NumSeats)
}

// IsOver reports whether the game has ended
func (s State) IsOver() bool {
	return s.Phase == GameOver
}

// Validate checks the structural invariants of the state
func (s State) Validate() error {
	if !s.Dealer.Valid() {
		return fmt.Errorf("dealer %w: %d", ErrInvalidSeat, int(s.Dealer))
	}
	if s.Streak < 1 {
		return fmt.Errorf("streak must be at least 1, got %d", s.Streak)
	}
	if s.TotalRounds < 1 {
		return fmt.Errorf("total rounds must be at least 1, got %d", s.TotalRounds)
	}
	if s.Round < 1 || s.Round > s.TotalRounds+1 {
		return fmt.Errorf("round %d outside [1, %d]", s.Round, s.TotalRounds+1)
	}
	if s.Round == s.TotalRounds+1 && s.Phase != GameOver {
		return fmt.Errorf("round %d is past the last round but phase is %s", s.Round, s.Phase)
	}
	for i, p := range s.Players {
		if p.Seat != Seat(i) {
			return fmt.Errorf("player at index %d has seat %s", i, p.Seat)
		}
	}
	if s.Phase == RoundAdvance && !s.LastWinner.Valid() {
		return fmt.Errorf("phase %s without a last winner", s.Phase)
	}
	return nil
}

// String renders a one-line summary for logs
func (s State) String() string {
	return fmt.Sprintf("%s round %d/%d, dealer %s x%d, %s",
		s.RoundWind(), min(s.Round, s.TotalRounds), s.TotalRounds, s.Dealer, s.Streak, s.Phase)
}
