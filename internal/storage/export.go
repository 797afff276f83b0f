package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run          RunMetadata `json:"run"`
	Coefficients []float64   `json:"coefficients"`
	X            []float64   `json:"x"`
	Y            []float64   `json:"y"`
	W            []float64   `json:"w,omitempty"`
}

// Export gathers everything stored for runID into one document.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	coef, err := s.LoadCoefficients(runID)
	if err != nil {
		return nil, err
	}
	x, y, w, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Run: *meta, Coefficients: coef, X: x, Y: y, W: w}, nil
}

func WriteJSON(out io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSON writes runID as indented JSON to path, or to stdout when path
// is empty or "-".
func (s *Store) ExportJSON(runID, path string) error {
	data, err := s.Export(runID)
	if err != nil {
		return err
	}
	if path == "" || path == "-" {
		return WriteJSON(os.Stdout, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
