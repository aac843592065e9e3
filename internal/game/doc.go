// Package game implements tai settlement and dealer rotation for a
// four-seat table.
//
// The engine is a set of pure functions over a value-typed State:
//
//	txn, err := game.ComputeSettlement(state, game.Claim{
//	    Winner:  game.South,
//	    Loser:   game.NoSeat, // self-draw
//	    RuleIDs: []string{"zimo", "pinghu"},
//	}, stakes, rules.Standard())
//	state, err = game.ApplyTransaction(state, txn)
//	state, err = game.Rotate(state)
//
// ApplyTransaction moves the state into RoundAdvance and Rotate resolves it:
// a winning dealer keeps the seat and extends the streak, otherwise the deal
// passes counter-clockwise and the round advances each time it returns to
// East. Once the configured number of rounds has been played the state is
// GameOver and every further step is rejected with ErrGameOver.
//
// # Sessions
//
// Session wraps a State for interactive use. It holds the one pending
// transaction, publishes events on an EventBus, timestamps them from a
// quartz.Clock and verifies chip conservation after every confirmed hand.
// A Session is not safe for concurrent use.
package game
