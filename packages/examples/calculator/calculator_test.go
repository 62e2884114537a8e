package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator(t *testing.T) {
	c := New()
	assert.Equal(t, 10, c.Add(5, 5))
	assert.Equal(t, 15, c.Dif(20, 5))
	assert.Equal(t, 25, c.Mul(5, 5))

	q, err := c.Div(15, 7)
	require.NoError(t, err)
	assert.InDelta(t, 2.142857, q, 1e-6)

	_, err = c.Div(1, 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
}
