package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoData is returned when a samples file holds no numeric rows.
var ErrNoData = errors.New("storage: no samples")

// ReadSamples parses CSV samples from r. xCol and yCol select the abscissa
// and ordinate columns, wCol the weight column or -1 for none. A first row
// that does not parse as numbers is treated as a header. Blank lines and
// lines starting with '#' are ignored.
func ReadSamples(r io.Reader, xCol, yCol, wCol int) (x, y, w []float64, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	return parseSamples(records, xCol, yCol, wCol)
}

// ReadSamplesFile is ReadSamples on the named file.
func ReadSamplesFile(path string, xCol, yCol, wCol int) (x, y, w []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()
	return ReadSamples(f, xCol, yCol, wCol)
}

func parseSamples(records [][]string, xCol, yCol, wCol int) (x, y, w []float64, err error) {
	if xCol < 0 || yCol < 0 {
		return nil, nil, nil, fmt.Errorf("storage: invalid columns x=%d y=%d", xCol, yCol)
	}
	need := max(xCol, yCol, wCol) + 1

	for i, record := range records {
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < need {
			return nil, nil, nil, fmt.Errorf("storage: line %d has %d columns, need %d", i+1, len(record), need)
		}

		xv, xerr := parseField(record[xCol])
		yv, yerr := parseField(record[yCol])
		var wv float64
		var werr error
		if wCol >= 0 {
			wv, werr = parseField(record[wCol])
		}
		if err := errors.Join(xerr, yerr, werr); err != nil {
			if i == 0 {
				continue
			}
			return nil, nil, nil, fmt.Errorf("storage: line %d: %w", i+1, err)
		}

		x = append(x, xv)
		y = append(y, yv)
		if wCol >= 0 {
			w = append(w, wv)
		}
	}

	if len(x) == 0 {
		return nil, nil, nil, ErrNoData
	}
	return x, y, w, nil
}

func parseField(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// WriteSamples writes samples as CSV with an x,y[,w] header.
func WriteSamples(out io.Writer, x, y, w []float64) error {
	cw := csv.NewWriter(out)
	header := []string{"x", "y"}
	if w != nil {
		header = append(header, "w")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range x {
		row := []string{formatFloat(x[i]), formatFloat(y[i])}
		if w != nil {
			row = append(row, formatFloat(w[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
