package game

import (
	"fmt"

	"github.com/lox/taitally/internal/rules"
)

// Kind distinguishes who pays for a win
type Kind int

const (
	// SelfDraw is paid by all three opponents
	SelfDraw Kind = iota
	// DirectHit is paid by the single player who discarded the winning tile
	DirectHit
)

func (k Kind) String() string {
	switch k {
	case SelfDraw:
		return "self-draw"
	case DirectHit:
		return "direct-hit"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Stakes are the payment terms: every win costs BaseFee plus PointValue per tai
type Stakes struct {
	BaseFee    int
	PointValue int
}

// Claim is a declared win before it has been priced
type Claim struct {
	Winner Seat
	// Loser is NoSeat for a self-drawn win
	Loser       Seat
	RuleIDs     []string
	ManualExtra int
}

// Kind returns the payment kind implied by the claim
func (c Claim) Kind() Kind {
	if c.Loser == NoSeat {
		return SelfDraw
	}
	return DirectHit
}

// Transaction is a priced win that has not yet been applied
type Transaction struct {
	Winner Seat
	Loser  Seat
	Kind   Kind

	// Rules are the scoring rules counted, in catalogue order
	Rules       []rules.Rule
	ManualExtra int

	BasePoints     int
	DealerInvolved bool
	DealerBonus    int
	FinalPoints    int

	// Amount is paid by each paying seat
	Amount int
}

// Payers returns the seats that pay Amount
func (t Transaction) Payers() []Seat {
	if t.Kind == DirectHit {
		return []Seat{t.Loser}
	}
	payers := make([]Seat, 0, NumSeats-1)
	for _, seat := range Seats() {
		if seat != t.Winner {
			payers = append(payers, seat)
		}
	}
	return payers
}

// Total returns the winner's gain
func (t Transaction) Total() int {
	return t.Amount * len(t.Payers())
}

// DealerBonus returns the extra tai for a hand involving a dealer on the
// given streak
func DealerBonus(streak int) int {
	return 1 + 2*streak
}

// ComputeSettlement prices a claim against the current state. It has no
// side effects. Rule identifiers are a set drawn from the catalogue; repeats
// count once and unknown identifiers are ignored. A negative manual extra
// counts as zero.
func ComputeSettlement(state State, claim Claim, stakes Stakes, catalogue *rules.Catalogue) (Transaction, error) {
	if err := checkDealing(state); err != nil {
		return Transaction{}, err
	}
	if !claim.Winner.Valid() {
		return Transaction{}, fmt.Errorf("winner %w: %d", ErrInvalidSeat, int(claim.Winner))
	}
	if claim.Loser != NoSeat {
		if !claim.Loser.Valid() {
			return Transaction{}, fmt.Errorf("loser %w: %d", ErrInvalidSeat, int(claim.Loser))
		}
		if claim.Loser == claim.Winner {
			return Transaction{}, ErrSameSeat
		}
	}
	if catalogue == nil {
		catalogue = rules.Standard()
	}

	extra := max(claim.ManualExtra, 0)
	selected := catalogue.Select(claim.RuleIDs)
	base := extra
	for _, r := range selected {
		base += r.Tai
	}

	kind := claim.Kind()
	// A self-draw has no single loser, so only the winner can make it a dealer hand.
	involved := claim.Winner == state.Dealer || (kind == DirectHit && claim.Loser == state.Dealer)

	bonus := 0
	if involved {
		bonus = DealerBonus(state.Streak)
	}
	final := base + bonus

	return Transaction{
		Winner:         claim.Winner,
		Loser:          claim.Loser,
		Kind:           kind,
		Rules:          selected,
		ManualExtra:    extra,
		BasePoints:     base,
		DealerInvolved: involved,
		DealerBonus:    bonus,
		FinalPoints:    final,
		Amount:         stakes.BaseFee + final*stakes.PointValue,
	}, nil
}

// ApplyTransaction moves chips for a priced win and leaves the state
// waiting for Rotate. Dealer, streak and round are not changed here.
func ApplyTransaction(state State, txn Transaction) (State, error) {
	if err := checkDealing(state); err != nil {
		return state, err
	}
	if !txn.Winner.Valid() {
		return state, fmt.Errorf("winner %w: %d", ErrInvalidSeat, int(txn.Winner))
	}

	next := state
	switch txn.Kind {
	case SelfDraw:
		for _, seat := range Seats() {
			if seat == txn.Winner {
				next.Players[seat].Balance += txn.Amount * (NumSeats - 1)
			} else {
				next.Players[seat].Balance -= txn.Amount
			}
		}
	case DirectHit:
		if !txn.Loser.Valid() {
			return state, fmt.Errorf("loser %w: %d", ErrInvalidSeat, int(txn.Loser))
		}
		if txn.Loser == txn.Winner {
			return state, ErrSameSeat
		}
		next.Players[txn.Winner].Balance += txn.Amount
		next.Players[txn.Loser].Balance -= txn.Amount
	default:
		return state, fmt.Errorf("unknown transaction kind %s", txn.Kind)
	}

	next.Phase = RoundAdvance
	next.LastWinner = txn.Winner
	return next, nil
}

func checkDealing(state State) error {
	switch state.Phase {
	case GameOver:
		return ErrGameOver
	case RoundAdvance:
		return ErrRotationPending
	}
	return nil
}
