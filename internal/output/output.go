// Package output writes trajectory records to files and memory.
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

// TextWriter writes one space-separated line per record with six decimals:
// "index t x y vx vy".
type TextWriter struct {
	w *bufio.Writer
}

func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

func (t *TextWriter) Emit(r sim.Record) error {
	_, err := fmt.Fprintf(t.w, "%d %f %f %f %f %f\n", r.Index, r.T, r.X, r.Y, r.VX, r.VY)
	return err
}

func (t *TextWriter) Flush() error { return t.w.Flush() }

// CSVWriter writes records at full precision under an
// "index,t,x,y,vx,vy" header.
type CSVWriter struct {
	w      *csv.Writer
	header bool
	row    []string
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), row: make([]string, 6)}
}

var csvHeader = []string{"index", "t", "x", "y", "vx", "vy"}

func (c *CSVWriter) Emit(r sim.Record) error {
	if !c.header {
		if err := c.w.Write(csvHeader); err != nil {
			return err
		}
		c.header = true
	}
	c.row[0] = strconv.Itoa(r.Index)
	c.row[1] = formatFloat(r.T)
	c.row[2] = formatFloat(r.X)
	c.row[3] = formatFloat(r.Y)
	c.row[4] = formatFloat(r.VX)
	c.row[5] = formatFloat(r.VY)
	return c.w.Write(c.row)
}

func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Writer is a record sink backed by a buffered stream.
type Writer interface {
	sim.Sink
	Flush() error
}

func NewWriter(w io.Writer, format string) (Writer, error) {
	switch format {
	case "", "text":
		return NewTextWriter(w), nil
	case "csv":
		return NewCSVWriter(w), nil
	default:
		return nil, fmt.Errorf("output: unknown format %q (want text or csv)", format)
	}
}

// File is a trajectory sink bound to a path. Every failure it reports is a
// *dynamo.OutputError.
type File struct {
	path string
	f    *os.File
	w    Writer
}

// Create truncates or creates path and returns a sink writing format to it.
// The path "-" writes to standard output.
func Create(path, format string) (*File, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdout
	} else {
		var err error
		if f, err = os.Create(path); err != nil {
			return nil, &dynamo.OutputError{Sink: path, Err: err}
		}
	}

	w, err := NewWriter(f, format)
	if err != nil {
		if f != os.Stdout {
			f.Close()
		}
		return nil, &dynamo.OutputError{Sink: path, Err: err}
	}
	return &File{path: path, f: f, w: w}, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Emit(r sim.Record) error {
	if err := f.w.Emit(r); err != nil {
		return &dynamo.OutputError{Sink: f.path, Err: err}
	}
	return nil
}

// Close flushes buffered records and closes the file.
func (f *File) Close() error {
	err := f.w.Flush()
	if f.f != os.Stdout {
		if cerr := f.f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return &dynamo.OutputError{Sink: f.path, Err: err}
	}
	return nil
}

// Collector keeps every record in memory.
type Collector struct {
	Records []sim.Record
}

func (c *Collector) Emit(r sim.Record) error {
	c.Records = append(c.Records, r)
	return nil
}

// Body returns the records of one 1-based body index in time order.
func (c *Collector) Body(index int) []sim.Record {
	var out []sim.Record
	for _, r := range c.Records {
		if r.Index == index {
			out = append(out, r)
		}
	}
	return out
}

// Tee forwards every record to each sink in order and stops at the first
// error.
func Tee(sinks ...sim.Sink) sim.Sink {
	return sim.SinkFunc(func(r sim.Record) error {
		for _, s := range sinks {
			if err := s.Emit(r); err != nil {
				return err
			}
		}
		return nil
	})
}
