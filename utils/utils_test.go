package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbs(t *testing.T) {
	require.Equal(t, 3, Abs(-3))
	require.Equal(t, 3, Abs(3))
	require.Equal(t, 0, Abs(0))
	require.Equal(t, 0.5, Abs(-0.5))
	require.Equal(t, int64(7), Abs(int64(-7)))
}
