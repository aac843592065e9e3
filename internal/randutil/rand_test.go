package randutil

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestReader(t *testing.T) {
	first := make([]byte, 21)
	_, err := io.ReadFull(Reader(New(7)), first)
	require.NoError(t, err)

	// reads split at odd sizes see the same stream
	r := Reader(New(7))
	second := make([]byte, 0, 21)
	for _, n := range []int{3, 5, 13} {
		chunk := make([]byte, n)
		_, err := io.ReadFull(r, chunk)
		require.NoError(t, err)
		second = append(second, chunk...)
	}
	assert.Equal(t, first, second)
}
