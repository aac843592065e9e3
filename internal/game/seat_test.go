package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeat(t *testing.T) {
	tests := []struct {
		input string
		want  Seat
	}{
		{"0", East},
		{"3", North},
		{"e", East},
		{"South", South},
		{" WEST ", West},
		{"n", North},
		{"東", East},
		{"北", North},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "4", "-1", "centre"} {
		_, err := ParseSeat(bad)
		assert.ErrorIs(t, err, ErrInvalidSeat, "input %q", bad)
	}
}

func TestSeatNext(t *testing.T) {
	assert.Equal(t, South, East.Next())
	assert.Equal(t, East, North.Next())
}

func TestSeatString(t *testing.T) {
	assert.Equal(t, "East", East.String())
	assert.Equal(t, "none", NoSeat.String())
	assert.Equal(t, "Seat(9)", Seat(9).String())
	assert.Equal(t, "西", West.Glyph())
}
