package game

import "errors"

var (
	// ErrInvalidSeat is returned for a seat outside East..North
	ErrInvalidSeat = errors.New("invalid seat")

	// ErrSameSeat is returned when the winner is also named as the loser
	ErrSameSeat = errors.New("winner and loser must be different seats")

	// ErrGameOver is returned for any step attempted after the final round
	ErrGameOver = errors.New("game is over")

	// ErrRotationPending is returned when a hand has been applied but the
	// dealer rotation that follows it has not yet been resolved
	ErrRotationPending = errors.New("dealer rotation pending")

	// ErrNoRotationPending is returned by Rotate when no hand is awaiting rotation
	ErrNoRotationPending = errors.New("no hand awaiting rotation")

	// ErrNoPendingTransaction is returned when confirming without a proposal
	ErrNoPendingTransaction = errors.New("no pending settlement")

	// ErrChipConservation signals that balances no longer sum to the starting total
	ErrChipConservation = errors.New("chip conservation violated")
)
