package dynamo

import (
	"errors"
	"fmt"
)

// Top-level error classes. Every error returned to the command line is
// either an input error or an output error; both are terminal.
var (
	// ErrInput covers unreadable sources, malformed constants or records and
	// violated domain invariants in the initial conditions.
	ErrInput = errors.New("nbody: input error")

	// ErrOutput covers failures creating or writing the trajectory sink.
	ErrOutput = errors.New("nbody: output error")
)

// Domain errors wrapped by InputError.
var (
	// ErrMalformedRecord indicates a line with the wrong number or type of fields.
	ErrMalformedRecord = errors.New("nbody: malformed record")

	// ErrNonPositiveConstant indicates G, T or dt is zero or negative.
	ErrNonPositiveConstant = errors.New("nbody: G, T and dt must be positive")

	// ErrNonPositiveMass indicates a body with zero or negative mass.
	ErrNonPositiveMass = errors.New("nbody: mass must be positive")

	// ErrDuplicatePosition indicates two bodies share an initial position.
	ErrDuplicatePosition = errors.New("nbody: bodies must have distinct starting positions")

	// ErrNoBodies indicates an input without any body records.
	ErrNoBodies = errors.New("nbody: no bodies defined")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("nbody: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates a state of the wrong length for a body.
	ErrDimensionMismatch = errors.New("nbody: dimension mismatch between state and body")
)

// InputError locates a problem in the initial conditions. Body is the
// 1-based body index, or zero when the problem is not tied to a body.
type InputError struct {
	Source string
	Line   int
	Body   int
	Err    error
}

func (e *InputError) Error() string {
	msg := e.Source
	if e.Line > 0 {
		msg = fmt.Sprintf("%s:%d", msg, e.Line)
	}
	if e.Body > 0 {
		msg = fmt.Sprintf("%s: body %d", msg, e.Body)
	}
	if msg == "" {
		return e.Err.Error()
	}
	return msg + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Is(target error) bool { return target == ErrInput }

// OutputError wraps a failure producing or writing the trajectory sink.
type OutputError struct {
	Sink string
	Err  error
}

func (e *OutputError) Error() string {
	if e.Sink == "" {
		return "output: " + e.Err.Error()
	}
	return fmt.Sprintf("output %s: %v", e.Sink, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

func (e *OutputError) Is(target error) bool { return target == ErrOutput }

// SimError locates a failure inside the time loop.
type SimError struct {
	Time float64
	Step int
	Err  error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *SimError) Unwrap() error { return e.Err }
