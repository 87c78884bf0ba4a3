// Package storage persists solve runs under a data directory, one
// subdirectory per run with metadata.json and an iterations.csv trace.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/bisect/internal/solver"
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
	ID            string    `json:"id"`
	Function      string    `json:"function"`
	Left          float64   `json:"left"`
	Right         float64   `json:"right"`
	Timestamp     time.Time `json:"timestamp"`
	Tolerance     float64   `json:"tolerance"`
	MaxIterations int       `json:"max_iterations"`
	MinInterval   float64   `json:"min_interval"`
	Outcome       string    `json:"outcome"`
	Root          float64   `json:"root,omitempty"`
	Iterations    int       `json:"iterations"`
	Reason        string    `json:"reason,omitempty"`
}

// Save writes one run. The function field is the catalog name or the raw
// expression, recorded verbatim; the run ID is a fresh uuid so expressions
// with path characters stay out of directory names.
func (s *Store) Save(function string, left, right float64, cfg solver.Config, outcome solver.Outcome, trace []solver.Iteration) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Function:      function,
		Left:          left,
		Right:         right,
		Timestamp:     time.Now(),
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
		MinInterval:   cfg.MinInterval,
		Outcome:       outcome.Kind(),
	}
	switch o := outcome.(type) {
	case solver.Success:
		meta.Root = o.Root
		meta.Iterations = o.Iterations
	case solver.MaxIterationsReached:
		meta.Root = o.BestApprox
		meta.Iterations = o.Iterations
	case solver.InvalidBounds:
		meta.Reason = o.Reason
	case solver.NumericalError:
		meta.Reason = o.Reason
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "iterations.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"iter", "left", "right", "mid", "fmid", "width"}); err != nil {
		return "", err
	}
	for _, it := range trace {
		row := []string{
			strconv.Itoa(it.Iter),
			strconv.FormatFloat(it.Left, 'g', -1, 64),
			strconv.FormatFloat(it.Right, 'g', -1, 64),
			strconv.FormatFloat(it.Mid, 'g', -1, 64),
			strconv.FormatFloat(it.FMid, 'g', -1, 64),
			strconv.FormatFloat(it.Width, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadIterations(runID string) ([]solver.Iteration, error) {
	csvPath := filepath.Join(s.baseDir, runID, "iterations.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []solver.Iteration{}, nil
	}

	trace := make([]solver.Iteration, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 6 {
			continue
		}

		iter, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		trace = append(trace, solver.Iteration{
			Iter:  iter,
			Left:  vals[0],
			Right: vals[1],
			Mid:   vals[2],
			FMid:  vals[3],
			Width: vals[4],
		})
	}

	return trace, nil
}

type runExport struct {
	RunMetadata
	Trace []solver.Iteration `json:"trace"`
}

// ExportJSONStdout writes the full run, metadata plus trace, to stdout.
func ExportJSONStdout(meta *RunMetadata, trace []solver.Iteration) error {
	if meta == nil {
		return fmt.Errorf("no metadata to export")
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{RunMetadata: *meta, Trace: trace})
}
