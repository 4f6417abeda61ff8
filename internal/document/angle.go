package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Angle is a clockwise rotation in degrees.
type Angle int

const (
	Angle90  Angle = 90
	Angle180 Angle = 180
	Angle270 Angle = 270
)

// Validate accepts only quarter turns.
func (a Angle) Validate() error {
	switch a {
	case Angle90, Angle180, Angle270:
		return nil
	default:
		return fmt.Errorf("%w: %d (must be 90, 180, or 270)", ErrInvalidAngle, int(a))
	}
}

// ParseAngle parses a decimal angle and validates it.
func ParseAngle(s string) (Angle, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
	}
	a := Angle(n)
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return a, nil
}
