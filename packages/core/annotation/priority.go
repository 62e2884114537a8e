package annotation

import (
	"fmt"
	"strconv"
)

// Priority orders test methods. Higher priorities run first.
type Priority int

const (
	Priority1 Priority = iota + 1
	Priority2
	Priority3
	Priority4
	Priority5
	Priority6
	Priority7
	Priority8
	Priority9
	Priority10
)

const (
	// DefaultPriority is applied to tests declared without WithPriority.
	DefaultPriority = Priority5

	// MinPriority and MaxPriority bound the valid levels.
	MinPriority = Priority1
	MaxPriority = Priority10
)

const priorityPrefix = "PRIORITY_"

// Valid reports whether p is one of the defined levels.
func (p Priority) Valid() bool {
	return p >= MinPriority && p <= MaxPriority
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityPrefix + strconv.Itoa(int(p))
}
