package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandRange(1, 101)
		require.GreaterOrEqual(t, v, 1)
		require.Less(t, v, 101)
	}
}

func TestRandIntnPanic(t *testing.T) {
	require.Panics(t, func() { RandIntn(0) })
}
