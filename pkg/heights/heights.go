// Package heights turns user input into elevation sequences: command-line
// arguments and YAML or JSON documents. Range checks are left to
// terrain.New; this package only guarantees the values are integers.
package heights

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors.
var (
	// ErrNoHeights is returned when there is nothing to parse.
	ErrNoHeights = errors.New("no heights provided")
	// ErrInvalidHeight is returned when an argument is not an integer.
	ErrInvalidHeight = errors.New("invalid height")
	// ErrInvalidDocument is returned when a heights document has the wrong shape.
	ErrInvalidDocument = errors.New("invalid heights document")
)

// ParseArgs converts decimal arguments to heights.
func ParseArgs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrNoHeights
	}

	out := make([]int, len(args))

	for i, arg := range args {
		h, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeight, arg)
		}

		out[i] = h
	}

	return out, nil
}
