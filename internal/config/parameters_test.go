package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
)

func TestParseParameters(t *testing.T) {
	input := "1 6.283 0.001 extra tokens\n\n0 0 0 0 1\n1 0 0 1 0.001\n"

	p, err := ParseParameters(strings.NewReader(input), "parameters.txt")
	if err != nil {
		t.Fatal(err)
	}
	if p.G != 1 || p.T != 6.283 || p.Dt != 0.001 {
		t.Errorf("unexpected constants %v %v %v", p.G, p.T, p.Dt)
	}
	if len(p.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(p.Bodies))
	}
	b := p.Bodies[1]
	if b.Pos.X != 1 || b.Vel.Y != 1 || b.Mass() != 0.001 {
		t.Errorf("unexpected body %v", b)
	}
}

func TestParseParametersErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		line  int
		body  int
	}{
		{"empty", "", dynamo.ErrMalformedRecord, 0, 0},
		{"short header", "1 2\n0 0 0 0 1\n", dynamo.ErrMalformedRecord, 1, 0},
		{"bad header", "1 x 0.1\n0 0 0 0 1\n", dynamo.ErrMalformedRecord, 1, 0},
		{"zero dt", "1 1 0\n0 0 0 0 1\n", dynamo.ErrNonPositiveConstant, 1, 0},
		{"negative G", "-1 1 0.1\n0 0 0 0 1\n", dynamo.ErrNonPositiveConstant, 1, 0},
		{"no bodies", "1 1 0.1\n\n", dynamo.ErrNoBodies, 0, 0},
		{"four fields", "1 1 0.1\n0 0 0 0 1\n1 1 1 1\n", dynamo.ErrMalformedRecord, 3, 2},
		{"six fields", "1 1 0.1\n0 0 0 0 1 1\n", dynamo.ErrMalformedRecord, 2, 1},
		{"not a number", "1 1 0.1\n0 0 a 0 1\n", dynamo.ErrMalformedRecord, 2, 1},
		{"NaN", "1 1 0.1\n0 0 NaN 0 1\n", dynamo.ErrMalformedRecord, 2, 1},
		{"zero mass", "1 1 0.1\n0 0 0 0 0\n", dynamo.ErrNonPositiveMass, 2, 1},
		{"negative mass", "1 1 0.1\n0 0 0 0 1\n1 0 0 0 -2\n", dynamo.ErrNonPositiveMass, 3, 2},
		{"duplicate position", "1 1 0.1\n0 0 0 0 1\n1 1 0 0 1\n0 0 1 1 2\n", dynamo.ErrDuplicatePosition, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParameters(strings.NewReader(tt.input), "parameters.txt")
			if !errors.Is(err, dynamo.ErrInput) {
				t.Fatalf("expected input error, got %v", err)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}

			var ie *dynamo.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *InputError, got %T", err)
			}
			if ie.Line != tt.line || ie.Body != tt.body {
				t.Errorf("expected line %d body %d, got line %d body %d", tt.line, tt.body, ie.Line, ie.Body)
			}
		})
	}
}

func TestLoadParametersMissingFile(t *testing.T) {
	_, err := LoadParameters(filepath.Join(t.TempDir(), "parameters.txt"))
	if !errors.Is(err, dynamo.ErrInput) {
		t.Errorf("expected input error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist cause, got %v", err)
	}
}

func TestWriteParameters(t *testing.T) {
	in := "1 10 0.5\n0.25 -1 3 0 2\n"
	p, err := ParseParameters(strings.NewReader(in), "")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "parameters.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteParameters(f, p); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, _ := os.ReadFile(path)
	if string(data) != in {
		t.Errorf("expected %q, got %q", in, string(data))
	}
}
