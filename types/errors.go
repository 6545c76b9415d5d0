package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid indicates inconsistent field shapes, too few cells or a bad spacing.
	ErrInvalidGrid = errors.New("gothermal: invalid grid")

	// ErrNonPhysicalProperty indicates a material property that cannot describe a real medium.
	ErrNonPhysicalProperty = errors.New("gothermal: non-physical material property")

	// ErrSingularSystem indicates the assembled operator could not be factorized.
	ErrSingularSystem = errors.New("gothermal: singular linear system")
)

// InvalidGridError is detected before assembly starts.
type InvalidGridError struct {
	Field      string // offending input, e.g. "conductivity" or "dx"
	Reason     string
	Nx, Ny     int // expected shape, zero when not yet known
	Rows, Cols int // shape actually supplied
}

func (e *InvalidGridError) Error() string {
	if e.Rows != 0 || e.Cols != 0 {
		return fmt.Sprintf("%v: %s: %s (got %dx%d, want %dx%d)",
			ErrInvalidGrid, e.Field, e.Reason, e.Rows, e.Cols, e.Nx, e.Ny)
	}
	return fmt.Sprintf("%v: %s: %s", ErrInvalidGrid, e.Field, e.Reason)
}

func (e *InvalidGridError) Unwrap() error { return ErrInvalidGrid }

// NonPhysicalPropertyError reports the first offending cell found.
type NonPhysicalPropertyError struct {
	Property string
	I, J     int
	Value    float64
}

func (e *NonPhysicalPropertyError) Error() string {
	return fmt.Sprintf("%v: %s[%d,%d] = %g", ErrNonPhysicalProperty, e.Property, e.I, e.J, e.Value)
}

func (e *NonPhysicalPropertyError) Unwrap() error { return ErrNonPhysicalProperty }

// SingularSystemError is deterministic for a given input; retrying the same
// solve will fail the same way.
type SingularSystemError struct {
	Row      int // row of the operator (in input ordering) where factorization failed, -1 if unknown
	Pivot    float64
	Residual float64 // relative residual, set when the failure was detected after the solve
	Reason   string
}

func (e *SingularSystemError) Error() string {
	switch {
	case e.Residual != 0:
		return fmt.Sprintf("%v: %s (relative residual %.3e)", ErrSingularSystem, e.Reason, e.Residual)
	case e.Row >= 0:
		return fmt.Sprintf("%v: %s at row %d (|pivot| = %.3e)", ErrSingularSystem, e.Reason, e.Row, e.Pivot)
	}
	return fmt.Sprintf("%v: %s", ErrSingularSystem, e.Reason)
}

func (e *SingularSystemError) Unwrap() error { return ErrSingularSystem }
