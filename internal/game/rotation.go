package game

// Rotate resolves the dealer after an applied hand. A winning dealer keeps
// the seat with the streak extended; otherwise the deal passes on.
func Rotate(state State) (State, error) {
	switch state.Phase {
	case GameOver:
		return state, ErrGameOver
	case Dealing:
		return state, ErrNoRotationPending
	}

	if state.LastWinner == state.Dealer {
		next := state
		next.Streak++
		next.Phase = Dealing
		next.LastWinner = NoSeat
		return next, nil
	}
	return advance(state), nil
}

// ForceAdvance passes the deal to the next seat without a hand being
// decided. It follows the same transition as a lost dealer hand and also
// discards any rotation that was pending.
func ForceAdvance(state State) (State, error) {
	if state.Phase == GameOver {
		return state, ErrGameOver
	}
	return advance(state), nil
}

// AddStreak extends the dealer's streak without a hand being played
func AddStreak(state State) (State, error) {
	if err := checkDealing(state); err != nil {
		return state, err
	}
	next := state
	next.Streak++
	return next, nil
}

// Conclude ends the game where it stands. Balances are untouched.
func Conclude(state State) State {
	next := state
	next.Phase = GameOver
	next.LastWinner = NoSeat
	return next
}

func advance(state State) State {
	next := state
	next.LastWinner = NoSeat

	dealer := state.Dealer.Next()
	round := state.Round
	if dealer == East {
		round++
	}

	if round > state.TotalRounds {
		next.Round = state.TotalRounds + 1
		next.Phase = GameOver
		return next
	}

	next.Dealer = dealer
	next.Streak = 1
	next.Round = round
	next.Phase = Dealing
	return next
}
