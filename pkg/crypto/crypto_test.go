package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandIntn(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := RandIntn(10)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 10)
	}
}

func TestRandFloat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		f := RandFloat()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}
