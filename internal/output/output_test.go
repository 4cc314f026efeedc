package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

var sample = []sim.Record{
	{Index: 1, T: 0, X: 1.25, Y: -2, VX: 0.5, VY: 0.1},
	{Index: 2, T: 0, X: 0.1, Y: 0.2, VX: 0, VY: -1.0 / 3},
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)
	for _, r := range sample {
		if err := w.Emit(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	expected := "1 0.000000 1.250000 -2.000000 0.500000 0.100000\n" +
		"2 0.000000 0.100000 0.200000 0.000000 -0.333333\n"
	if buf.String() != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, buf.String())
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	for _, r := range sample {
		if err := w.Emit(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	expected := "index,t,x,y,vx,vy\n" +
		"1,0,1.25,-2,0.5,0.1\n" +
		"2,0,0.1,0.2,0,-0.3333333333333333\n"
	if buf.String() != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, buf.String())
	}
}

func TestNewWriterUnknownFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	f, err := Create(path, "text")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Emit(sample[0]); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1 0.000000 1.250000 -2.000000 0.500000 0.100000\n" {
		t.Errorf("unexpected file contents %q", data)
	}
}

func TestCreateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "output.txt")
	_, err := Create(path, "text")
	if !errors.Is(err, dynamo.ErrOutput) {
		t.Fatalf("expected output error, got %v", err)
	}
	if errors.Is(err, dynamo.ErrInput) {
		t.Error("output error must not match ErrInput")
	}

	var oe *dynamo.OutputError
	if !errors.As(err, &oe) || oe.Sink != path {
		t.Errorf("expected OutputError for %s, got %v", path, err)
	}
}

func TestCollectorAndTee(t *testing.T) {
	a, b := &Collector{}, &Collector{}
	sink := Tee(a, b)
	for _, r := range sample {
		if err := sink.Emit(r); err != nil {
			t.Fatal(err)
		}
	}
	if len(a.Records) != 2 || len(b.Records) != 2 {
		t.Fatalf("expected both collectors to hold 2 records, got %d and %d", len(a.Records), len(b.Records))
	}
	if got := a.Body(2); len(got) != 1 || got[0] != sample[1] {
		t.Errorf("Body(2) = %v", got)
	}

	failing := sim.SinkFunc(func(sim.Record) error { return errors.New("closed") })
	c := &Collector{}
	if err := Tee(failing, c).Emit(sample[0]); err == nil {
		t.Error("expected error from failing sink")
	}
	if len(c.Records) != 0 {
		t.Error("Tee should stop at the first failing sink")
	}
}
