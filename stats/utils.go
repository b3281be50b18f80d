package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ShapeError reports a length mismatch between a vector and the table
// dimension it has to line up with.
type ShapeError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: %s has length %d, want %d", e.What, e.Got, e.Want)
}

func checkLen(what string, want int, got int) error {
	if want != got {
		return &ShapeError{What: what, Want: want, Got: got}
	}
	return nil
}

func square(x float64) float64 {
	return x * x
}

// Scale multiplies every element of xs by factor in place.
func Scale(xs []float64, factor float64) {
	floats.Scale(factor, xs)
}
