package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/taitally/internal/rules"
)

var standardStakes = Stakes{BaseFee: 300, PointValue: 100}

func newTestState() State {
	return NewState(DefaultSettings())
}

func TestDealerBonus(t *testing.T) {
	assert.Equal(t, 3, DealerBonus(1))
	assert.Equal(t, 5, DealerBonus(2))
	assert.Equal(t, 7, DealerBonus(3))
}

func TestComputeSettlement_SelfDrawNonDealer(t *testing.T) {
	state := newTestState() // East deals

	txn, err := ComputeSettlement(state, Claim{
		Winner:  South,
		Loser:   NoSeat,
		RuleIDs: []string{"zimo", "pinghu"},
	}, standardStakes, rules.Standard())
	require.NoError(t, err)

	assert.Equal(t, SelfDraw, txn.Kind)
	assert.Equal(t, 3, txn.BasePoints)
	assert.False(t, txn.DealerInvolved)
	assert.Equal(t, 0, txn.DealerBonus)
	assert.Equal(t, 3, txn.FinalPoints)
	assert.Equal(t, 600, txn.Amount)
	assert.Equal(t, 1800, txn.Total())
	assert.Equal(t, []Seat{East, West, North}, txn.Payers())
}

func TestComputeSettlement_DirectHitDealerWins(t *testing.T) {
	state := newTestState()
	state.Streak = 2

	txn, err := ComputeSettlement(state, Claim{
		Winner:  East,
		Loser:   West,
		RuleIDs: []string{"zimo", "pinghu"},
	}, standardStakes, rules.Standard())
	require.NoError(t, err)

	assert.Equal(t, DirectHit, txn.Kind)
	assert.True(t, txn.DealerInvolved)
	assert.Equal(t, 5, txn.DealerBonus)
	assert.Equal(t, 8, txn.FinalPoints)
	assert.Equal(t, 1100, txn.Amount)
	assert.Equal(t, []Seat{West}, txn.Payers())
}

func TestComputeSettlement_DealerInvolvement(t *testing.T) {
	tests := []struct {
		name     string
		dealer   Seat
		streak   int
		winner   Seat
		loser    Seat
		involved bool
		bonus    int
	}{
		{"self-draw by dealer", East, 1, East, NoSeat, true, 3},
		{"self-draw by non-dealer", East, 1, North, NoSeat, false, 0},
		{"direct hit on dealer", South, 3, North, South, true, 7},
		{"direct hit by dealer", West, 1, West, East, true, 3},
		{"direct hit without dealer", East, 4, South, West, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState()
			state.Dealer = tt.dealer
			state.Streak = tt.streak

			txn, err := ComputeSettlement(state, Claim{Winner: tt.winner, Loser: tt.loser}, standardStakes, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.involved, txn.DealerInvolved)
			assert.Equal(t, tt.bonus, txn.DealerBonus)
			assert.Equal(t, 300+tt.bonus*100, txn.Amount)
		})
	}
}

func TestComputeSettlement_ManualExtra(t *testing.T) {
	state := newTestState()

	txn, err := ComputeSettlement(state, Claim{Winner: North, Loser: South, RuleIDs: []string{"flower"}, ManualExtra: 2}, standardStakes, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, txn.BasePoints)
	assert.Equal(t, 2, txn.ManualExtra)

	txn, err = ComputeSettlement(state, Claim{Winner: North, Loser: South, ManualExtra: -5}, standardStakes, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, txn.ManualExtra)
	assert.Equal(t, 0, txn.BasePoints)
	assert.Equal(t, 300, txn.Amount)
}

func TestComputeSettlement_RuleSelection(t *testing.T) {
	state := newTestState()

	txn, err := ComputeSettlement(state, Claim{
		Winner:  South,
		Loser:   West,
		RuleIDs: []string{"pure", "bogus", "pure", "menqing"},
	}, standardStakes, nil)
	require.NoError(t, err)

	require.Len(t, txn.Rules, 2)
	assert.Equal(t, "menqing", txn.Rules[0].ID)
	assert.Equal(t, "pure", txn.Rules[1].ID)
	assert.Equal(t, 9, txn.BasePoints)
}

func TestComputeSettlement_Errors(t *testing.T) {
	state := newTestState()

	_, err := ComputeSettlement(state, Claim{Winner: Seat(4), Loser: NoSeat}, standardStakes, nil)
	assert.ErrorIs(t, err, ErrInvalidSeat)

	_, err = ComputeSettlement(state, Claim{Winner: East, Loser: Seat(7)}, standardStakes, nil)
	assert.ErrorIs(t, err, ErrInvalidSeat)

	_, err = ComputeSettlement(state, Claim{Winner: East, Loser: East}, standardStakes, nil)
	assert.ErrorIs(t, err, ErrSameSeat)

	_, err = ComputeSettlement(Conclude(state), Claim{Winner: East, Loser: NoSeat}, standardStakes, nil)
	assert.ErrorIs(t, err, ErrGameOver)

	pending := state
	pending.Phase = RoundAdvance
	pending.LastWinner = East
	_, err = ComputeSettlement(pending, Claim{Winner: East, Loser: NoSeat}, standardStakes, nil)
	assert.ErrorIs(t, err, ErrRotationPending)
}

func TestApplyTransaction_SelfDraw(t *testing.T) {
	state := newTestState()
	txn, err := ComputeSettlement(state, Claim{Winner: South, Loser: NoSeat, RuleIDs: []string{"zimo", "pinghu"}}, standardStakes, nil)
	require.NoError(t, err)

	next, err := ApplyTransaction(state, txn)
	require.NoError(t, err)

	assert.Equal(t, 21800, next.Balance(South))
	assert.Equal(t, 19400, next.Balance(East))
	assert.Equal(t, 19400, next.Balance(West))
	assert.Equal(t, 19400, next.Balance(North))
	assert.Equal(t, state.TotalBalance(), next.TotalBalance())

	assert.Equal(t, RoundAdvance, next.Phase)
	assert.Equal(t, South, next.LastWinner)
	assert.Equal(t, state.Dealer, next.Dealer)
	assert.Equal(t, state.Round, next.Round)
	assert.Equal(t, state.Streak, next.Streak)

	// the argument is a value and must be unchanged
	assert.Equal(t, 20000, state.Balance(South))
	assert.Equal(t, Dealing, state.Phase)
}

func TestApplyTransaction_DirectHit(t *testing.T) {
	state := newTestState()
	state.Streak = 2
	txn, err := ComputeSettlement(state, Claim{Winner: East, Loser: North, RuleIDs: []string{"zimo", "pinghu"}}, standardStakes, nil)
	require.NoError(t, err)

	next, err := ApplyTransaction(state, txn)
	require.NoError(t, err)

	assert.Equal(t, 21100, next.Balance(East))
	assert.Equal(t, 18900, next.Balance(North))
	assert.Equal(t, 20000, next.Balance(South))
	assert.Equal(t, 20000, next.Balance(West))
}

func TestApplyTransaction_ZeroSum(t *testing.T) {
	state := newTestState()
	stakes := Stakes{BaseFee: 137, PointValue: 53}
	ruleSets := [][]string{nil, {"zimo"}, {"pure", "pong"}, {"big4", "words", "tianhu"}}

	for _, winner := range Seats() {
		for _, loser := range append([]Seat{NoSeat}, Seats()...) {
			if loser == winner {
				continue
			}
			for extra, ids := range ruleSets {
				txn, err := ComputeSettlement(state, Claim{Winner: winner, Loser: loser, RuleIDs: ids, ManualExtra: extra}, stakes, nil)
				require.NoError(t, err)

				next, err := ApplyTransaction(state, txn)
				require.NoError(t, err)
				require.Equal(t, state.TotalBalance(), next.TotalBalance(), "winner %s loser %s rules %v", winner, loser, ids)
				require.Equal(t, txn.Total(), next.Balance(winner)-state.Balance(winner))
			}
		}
	}
}

func TestApplyTransaction_Rejected(t *testing.T) {
	state := newTestState()
	txn, err := ComputeSettlement(state, Claim{Winner: West, Loser: NoSeat}, standardStakes, nil)
	require.NoError(t, err)

	applied, err := ApplyTransaction(state, txn)
	require.NoError(t, err)

	_, err = ApplyTransaction(applied, txn)
	assert.ErrorIs(t, err, ErrRotationPending)

	over := Conclude(state)
	_, err = ApplyTransaction(over, txn)
	assert.ErrorIs(t, err, ErrGameOver)

	bad := Transaction{Winner: East, Loser: East, Kind: DirectHit, Amount: 100}
	_, err = ApplyTransaction(state, bad)
	assert.ErrorIs(t, err, ErrSameSeat)
}
