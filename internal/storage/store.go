// Package storage keeps completed runs on disk, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/output"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Timestamp      time.Time          `json:"timestamp"`
	Bodies         int                `json:"bodies"`
	G              float64            `json:"g"`
	T              float64            `json:"t"`
	Dt             float64            `json:"dt"`
	Integrator     string             `json:"integrator"`
	Update         string             `json:"update"`
	ZeroSeparation string             `json:"zero_separation"`
	Horizon        string             `json:"horizon"`
	Steps          int                `json:"steps"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save writes meta and the trajectory into a fresh run directory and
// returns the run ID. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, records []sim.Record) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	name := meta.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 2; ; i++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d_%d", name, now.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta.ID = runID
	meta.Timestamp = now

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := output.NewCSVWriter(csvFile)
	for _, r := range records {
		if err := w.Emit(r); err != nil {
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the metadata of every stored run, oldest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]sim.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 6

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(rows) < 2 {
		return []sim.Record{}, nil
	}

	records := make([]sim.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("run %s: row %d: %w", runID, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (sim.Record, error) {
	index, err := strconv.Atoi(row[0])
	if err != nil {
		return sim.Record{}, err
	}

	var vals [5]float64
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(row[i+1], 64); err != nil {
			return sim.Record{}, err
		}
	}
	return sim.Record{Index: index, T: vals[0], X: vals[1], Y: vals[2], VX: vals[3], VY: vals[4]}, nil
}

// ExportData is the JSON form of a stored run. Trajectories are grouped by
// body in the order the bodies appear in the run.
type ExportData struct {
	RunMetadata
	Times        []float64    `json:"times"`
	Trajectories []BodyExport `json:"trajectories"`
}

type BodyExport struct {
	Index int       `json:"index"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	VX    []float64 `json:"vx"`
	VY    []float64 `json:"vy"`
}

// ExportJSON writes a stored run to w as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	records, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	data := ExportData{RunMetadata: *meta}
	byIndex := make(map[int]int)
	for _, r := range records {
		pos, ok := byIndex[r.Index]
		if !ok {
			pos = len(data.Trajectories)
			byIndex[r.Index] = pos
			data.Trajectories = append(data.Trajectories, BodyExport{Index: r.Index})
		}
		if pos == 0 {
			data.Times = append(data.Times, r.T)
		}
		b := &data.Trajectories[pos]
		b.X = append(b.X, r.X)
		b.Y = append(b.Y, r.Y)
		b.VX = append(b.VX, r.VX)
		b.VY = append(b.VY, r.VY)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
