package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playHand applies a direct hit from the seat after the winner and returns the
// state awaiting rotation
func playHand(t *testing.T, state State, winner Seat) State {
	t.Helper()
	loser := winner.Next()
	txn, err := ComputeSettlement(state, Claim{Winner: winner, Loser: loser}, standardStakes, nil)
	require.NoError(t, err)
	applied, err := ApplyTransaction(state, txn)
	require.NoError(t, err)
	return applied
}

func TestRotate_DealerWins(t *testing.T) {
	state := newTestState()

	next, err := Rotate(playHand(t, state, East))
	require.NoError(t, err)

	assert.Equal(t, Dealing, next.Phase)
	assert.Equal(t, East, next.Dealer)
	assert.Equal(t, 2, next.Streak)
	assert.Equal(t, 1, next.Round)
	assert.Equal(t, NoSeat, next.LastWinner)
	assert.NoError(t, next.Validate())
}

func TestRotate_DealerLoses(t *testing.T) {
	tests := []struct {
		name       string
		dealer     Seat
		round      int
		wantDealer Seat
		wantRound  int
	}{
		{"seat 1 passes to seat 2", South, 2, West, 2},
		{"seat 3 wraps to seat 0 and advances round", North, 1, East, 2},
		{"seat 0 passes to seat 1", East, 3, South, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState()
			state.Dealer = tt.dealer
			state.Round = tt.round
			state.Streak = 4

			next, err := Rotate(playHand(t, state, tt.dealer.Next()))
			require.NoError(t, err)

			assert.Equal(t, Dealing, next.Phase)
			assert.Equal(t, tt.wantDealer, next.Dealer)
			assert.Equal(t, tt.wantRound, next.Round)
			assert.Equal(t, 1, next.Streak)
		})
	}
}

func TestRotate_GameOver(t *testing.T) {
	state := newTestState()
	state.Dealer = North
	state.Round = state.TotalRounds

	next, err := Rotate(playHand(t, state, South))
	require.NoError(t, err)

	assert.Equal(t, GameOver, next.Phase)
	assert.Equal(t, state.TotalRounds+1, next.Round)
	assert.True(t, next.IsOver())
	assert.NoError(t, next.Validate())

	_, err = ComputeSettlement(next, Claim{Winner: East, Loser: NoSeat}, standardStakes, nil)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = ApplyTransaction(next, Transaction{Winner: East, Loser: NoSeat, Kind: SelfDraw, Amount: 300})
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = Rotate(next)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = ForceAdvance(next)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = AddStreak(next)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestRotate_NothingPending(t *testing.T) {
	_, err := Rotate(newTestState())
	assert.ErrorIs(t, err, ErrNoRotationPending)
}

func TestFullGameLength(t *testing.T) {
	settings := DefaultSettings()
	settings.TotalRounds = 2
	state := NewState(settings)

	hands := 0
	for !state.IsOver() {
		// a non-dealer always wins, so every hand passes the deal
		state = playHand(t, state, state.Dealer.Next())
		var err error
		state, err = Rotate(state)
		require.NoError(t, err)
		require.NoError(t, state.Validate())
		hands++
		require.LessOrEqual(t, hands, 8)
	}

	assert.Equal(t, 8, hands)
	assert.Equal(t, 3, state.Round)
}

func TestForceAdvance(t *testing.T) {
	state := newTestState()
	state.Streak = 3

	next, err := ForceAdvance(state)
	require.NoError(t, err)
	assert.Equal(t, South, next.Dealer)
	assert.Equal(t, 1, next.Streak)
	assert.Equal(t, 1, next.Round)

	// a pending rotation is discarded by the override
	pending := playHand(t, newTestState(), East)
	next, err = ForceAdvance(pending)
	require.NoError(t, err)
	assert.Equal(t, Dealing, next.Phase)
	assert.Equal(t, South, next.Dealer)

	last := newTestState()
	last.Dealer = North
	last.Round = last.TotalRounds
	next, err = ForceAdvance(last)
	require.NoError(t, err)
	assert.Equal(t, GameOver, next.Phase)
}

func TestAddStreak(t *testing.T) {
	state := newTestState()

	next, err := AddStreak(state)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Streak)
	assert.Equal(t, 1, state.Streak)

	_, err = AddStreak(playHand(t, state, East))
	assert.ErrorIs(t, err, ErrRotationPending)
}

func TestConclude(t *testing.T) {
	state := playHand(t, newTestState(), South)

	over := Conclude(state)
	assert.Equal(t, GameOver, over.Phase)
	assert.Equal(t, state.Players, over.Players)
	assert.Equal(t, state.Round, over.Round)
}

func TestStandings(t *testing.T) {
	state := newTestState()
	state.Players[East].Balance = 19000
	state.Players[South].Balance = 21000
	state.Players[West].Balance = 19000
	state.Players[North].Balance = 21000

	standings := Standings(state)
	require.Len(t, standings, 4)

	assert.Equal(t, []Seat{South, North, East, West}, []Seat{
		standings[0].Seat, standings[1].Seat, standings[2].Seat, standings[3].Seat,
	})
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 4, standings[3].Rank)
	assert.Equal(t, 1000, standings[0].Net)
	assert.Equal(t, -1000, standings[3].Net)
	assert.Equal(t, "South", standings[0].Name)
}

func TestRoundWind(t *testing.T) {
	state := newTestState()
	assert.Equal(t, East, state.RoundWind())
	state.Round = 2
	assert.Equal(t, South, state.RoundWind())
	state.Round = 5
	assert.Equal(t, East, state.RoundWind())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, newTestState().Validate())

	bad := newTestState()
	bad.Streak = 0
	assert.Error(t, bad.Validate())

	bad = newTestState()
	bad.Dealer = Seat(9)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSeat)

	bad = newTestState()
	bad.Round = bad.TotalRounds + 1
	assert.Error(t, bad.Validate())

	bad = newTestState()
	bad.Phase = RoundAdvance
	assert.Error(t, bad.Validate())
}
