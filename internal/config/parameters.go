package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
)

// Parameters are the initial conditions of a run: the constants line
// "G T dt" followed by one "x y vx vy mass" line per body.
type Parameters struct {
	G      float64
	T      float64
	Dt     float64
	Bodies []physics.Body
}

// LoadParameters reads a parameters file. Every failure, including an
// unreadable file, is a *dynamo.InputError.
func LoadParameters(path string) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &dynamo.InputError{Source: path, Err: err}
	}
	defer f.Close()
	return ParseParameters(f, path)
}

// ParseParameters parses initial conditions from r. source names the input
// in error messages. Blank lines are ignored. Tokens after the third on the
// constants line are ignored; body lines must have exactly five.
func ParseParameters(r io.Reader, source string) (*Parameters, error) {
	sc := bufio.NewScanner(r)
	p := &Parameters{}
	line := 0
	header := false

	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if !header {
			if len(fields) < 3 {
				return nil, &dynamo.InputError{Source: source, Line: line,
					Err: fmt.Errorf("%w: want G T dt", dynamo.ErrMalformedRecord)}
			}
			vals, err := parseReals(fields[:3])
			if err != nil {
				return nil, &dynamo.InputError{Source: source, Line: line, Err: err}
			}
			p.G, p.T, p.Dt = vals[0], vals[1], vals[2]
			if p.G <= 0 || p.T <= 0 || p.Dt <= 0 {
				return nil, &dynamo.InputError{Source: source, Line: line, Err: dynamo.ErrNonPositiveConstant}
			}
			header = true
			continue
		}

		index := len(p.Bodies) + 1
		if len(fields) != 5 {
			return nil, &dynamo.InputError{Source: source, Line: line, Body: index,
				Err: fmt.Errorf("%w: want x y vx vy mass, got %d fields", dynamo.ErrMalformedRecord, len(fields))}
		}
		vals, err := parseReals(fields)
		if err != nil {
			return nil, &dynamo.InputError{Source: source, Line: line, Body: index, Err: err}
		}
		b, err := physics.NewBody(r2.Vec{X: vals[0], Y: vals[1]}, r2.Vec{X: vals[2], Y: vals[3]}, vals[4])
		if err != nil {
			return nil, &dynamo.InputError{Source: source, Line: line, Body: index, Err: err}
		}
		p.Bodies = append(p.Bodies, b)
	}
	if err := sc.Err(); err != nil {
		return nil, &dynamo.InputError{Source: source, Err: err}
	}

	if !header {
		return nil, &dynamo.InputError{Source: source, Err: fmt.Errorf("%w: empty input", dynamo.ErrMalformedRecord)}
	}
	if len(p.Bodies) == 0 {
		return nil, &dynamo.InputError{Source: source, Err: dynamo.ErrNoBodies}
	}
	if i, j, ok := physics.DuplicatePositions(p.Bodies); ok {
		return nil, &dynamo.InputError{Source: source, Body: j + 1,
			Err: fmt.Errorf("%w: same position as body %d", dynamo.ErrDuplicatePosition, i+1)}
	}
	return p, nil
}

func parseReals(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q is not a finite real", dynamo.ErrMalformedRecord, f)
		}
		vals[i] = v
	}
	return vals, nil
}

// WriteParameters writes p in the format ParseParameters reads.
func WriteParameters(w io.Writer, p *Parameters) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %s %s\n", formatReal(p.G), formatReal(p.T), formatReal(p.Dt))
	for _, b := range p.Bodies {
		fmt.Fprintf(bw, "%s %s %s %s %s\n",
			formatReal(b.Pos.X), formatReal(b.Pos.Y),
			formatReal(b.Vel.X), formatReal(b.Vel.Y),
			formatReal(b.Mass()))
	}
	return bw.Flush()
}

func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
