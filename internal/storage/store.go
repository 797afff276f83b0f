package storage

import (
	"encoding/binary"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/polykit/internal/analysis"
	"github.com/zeebo/blake3"
)

const (
	metadataFile = "metadata.json"
	coeffsFile   = "coefficients.csv"
	samplesFile  = "samples.csv"
)

// ErrNotFound is returned when a run id has no directory in the store.
var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Run is a completed fit ready to be persisted.
type Run struct {
	Name   string
	Source string
	Degree int
	Terms  []int
	RCond  float64

	X, Y, W []float64
	Coef    []float64

	Rank           int
	SingularValues []float64
	Residuals      []float64
	Diagnostics    analysis.Diagnostics
}

type RunMetadata struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Source         string               `json:"source,omitempty"`
	Timestamp      time.Time            `json:"timestamp"`
	Degree         int                  `json:"degree"`
	Terms          []int                `json:"terms,omitempty"`
	RCond          float64              `json:"rcond"`
	Samples        int                  `json:"samples"`
	Weighted       bool                 `json:"weighted"`
	Rank           int                  `json:"rank"`
	SingularValues []float64            `json:"singular_values"`
	Residuals      []float64            `json:"residuals,omitempty"`
	Diagnostics    analysis.Diagnostics `json:"diagnostics"`
}

// RunID derives a stable identifier from the run name, its samples and its
// coefficients. Saving the same fit twice yields the same id. Characters of
// the name outside [A-Za-z0-9._-] become underscores so the id is always a
// single path element.
func RunID(name string, x, y, coef []float64) string {
	h := blake3.New()
	h.Write([]byte(name))
	var buf [8]byte
	for _, vs := range [][]float64{x, y, coef} {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(vs)))
		h.Write(buf[:])
		for _, v := range vs {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	sum := h.Sum(nil)
	return fmt.Sprintf("%s_%s", safeName(name), hex.EncodeToString(sum[:6]))
}

func safeName(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_':
		default:
			b[i] = '_'
		}
	}
	if len(b) == 0 {
		return "run"
	}
	return string(b)
}

// runDir resolves a run id inside the store, refusing ids that are not a
// single path element.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Save(run *Run) (string, error) {
	if len(run.X) != len(run.Y) {
		return "", fmt.Errorf("storage: %d x values but %d y values", len(run.X), len(run.Y))
	}
	if run.W != nil && len(run.W) != len(run.X) {
		return "", fmt.Errorf("storage: %d weights for %d samples", len(run.W), len(run.X))
	}

	runID := RunID(run.Name, run.X, run.Y, run.Coef)
	runDir, err := s.runDir(runID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Name:           run.Name,
		Source:         run.Source,
		Timestamp:      time.Now(),
		Degree:         run.Degree,
		Terms:          run.Terms,
		RCond:          run.RCond,
		Samples:        len(run.X),
		Weighted:       run.W != nil,
		Rank:           run.Rank,
		SingularValues: run.SingularValues,
		Residuals:      run.Residuals,
		Diagnostics:    run.Diagnostics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	coefRows := make([][]string, 0, len(run.Coef)+1)
	coefRows = append(coefRows, []string{"power", "coefficient"})
	for i, c := range run.Coef {
		coefRows = append(coefRows, []string{strconv.Itoa(i), formatFloat(c)})
	}
	if err := writeCSV(filepath.Join(runDir, coeffsFile), coefRows); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	if err := WriteSamples(f, run.X, run.Y, run.W); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the metadata of every stored run, newest first. Directories
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadCoefficients returns the stored coefficients in increasing power order.
func (s *Store) LoadCoefficients(runID string) ([]float64, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	records, err := readCSV(filepath.Join(dir, coeffsFile))
	if err != nil {
		return nil, err
	}

	coef := make([]float64, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("storage: %s line %d: %w", coeffsFile, i+1, err)
		}
		coef = append(coef, v)
	}
	return coef, nil
}

// LoadSamples returns the stored samples. w is nil for unweighted runs.
func (s *Store) LoadSamples(runID string) (x, y, w []float64, err error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	records, err := readCSV(filepath.Join(dir, samplesFile))
	if err != nil {
		return nil, nil, nil, err
	}
	wCol := -1
	if len(records) > 0 && len(records[0]) > 2 {
		wCol = 2
	}
	return parseSamples(records, 0, 1, wCol)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(filepath.Dir(path)))
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
