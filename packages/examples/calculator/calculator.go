// Package calculator is the business logic exercised by the example suite.
package calculator

import "errors"

// ErrDivideByZero is returned by Div for a zero divisor.
var ErrDivideByZero = errors.New("divide by zero")

type Calculator struct{}

func New() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Add(a, b int) int { return a + b }
func (c *Calculator) Dif(a, b int) int { return a - b }
func (c *Calculator) Mul(a, b int) int { return a * b }

// Div divides a by b as floating point.
func (c *Calculator) Div(a, b int) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return float64(a) / float64(b), nil
}
