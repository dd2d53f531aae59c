package positions

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Headers that carry coordinate or label data rather than extra values.
const (
	colTheta  = "sph_theta"
	colPhi    = "sph_phi"
	colRadius = "sph_radius"
)

var labelColumns = []string{"labels", "label", "name"}

// ParseFile opens and parses an electrode position file.
func ParseFile(path string, conv Convention) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("positions: open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := Parse(f, conv)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return recs, nil
}

// Parse reads delimited text with a mandatory header row and returns one
// Record per data row, in file order. The delimiter is sniffed from the
// header line; Cartesian coordinate columns are converted to spherical
// form using the given axis convention.
func Parse(r io.Reader, conv Convention) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("positions: read: %w", err)
	}

	delim, err := sniffDelimiter(data)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("malformed rows: %v", err)}
	}
	if len(rows) < 1 {
		return nil, &FormatError{Reason: "empty file"}
	}

	header := rows[0]
	if headerLooksNumeric(header) {
		return nil, &FormatError{Reason: "no header row detected"}
	}

	// Keep only non-empty header cells, remembering their column index.
	type column struct {
		idx  int
		name string
	}
	var cols []column
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h != "" {
			cols = append(cols, column{idx: i, name: h})
		}
	}

	raw := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		m := make(map[string]string, len(cols))
		for _, c := range cols {
			if c.idx < len(row) {
				m[c.name] = strings.TrimSpace(row[c.idx])
			}
		}
		raw = append(raw, m)
	}
	if len(raw) == 0 {
		return nil, &FormatError{Reason: "no location rows after header"}
	}

	first := raw[0]
	switch {
	case hasKey(first, colTheta) && hasKey(first, colPhi):
		return parseSpherical(raw)
	case hasKey(first, "X") && hasKey(first, "Y") && hasKey(first, "Z"):
		return parseCartesian(raw, conv)
	}
	return nil, &FormatError{Reason: "no recognized coordinate columns (need sph_theta/sph_phi or X/Y/Z)"}
}

func parseSpherical(raw []map[string]string) ([]Record, error) {
	// The radius column is part of the schema, fixed by the first
	// record: when present, every row must carry it.
	hasRadius := hasKey(raw[0], colRadius)

	recs := make([]Record, 0, len(raw))
	for i, row := range raw {
		theta, err := numField(row, colTheta, i)
		if err != nil {
			return nil, err
		}
		phi, err := numField(row, colPhi, i)
		if err != nil {
			return nil, err
		}
		radius := 1.0
		if hasRadius {
			radius, err = numField(row, colRadius, i)
			if err != nil {
				return nil, err
			}
		}
		rec := Record{Theta: theta, Phi: phi, Radius: radius}
		fillNameAndExtra(&rec, row, colTheta, colPhi, colRadius)
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseCartesian(raw []map[string]string, conv Convention) ([]Record, error) {
	recs := make([]Record, 0, len(raw))
	for i, row := range raw {
		x, err := numField(row, "X", i)
		if err != nil {
			return nil, err
		}
		y, err := numField(row, "Y", i)
		if err != nil {
			return nil, err
		}
		z, err := numField(row, "Z", i)
		if err != nil {
			return nil, err
		}

		rXY := math.Hypot(x, y)
		var theta float64
		if conv == ConventionEEGLab {
			theta = math.Atan2(y, x) * 180 / math.Pi
		} else {
			theta = math.Atan2(x, y) * 180 / math.Pi
		}
		phi := math.Atan2(z, rXY) * 180 / math.Pi

		rec := Record{Theta: theta, Phi: phi, Radius: 1.0}
		fillNameAndExtra(&rec, row, "X", "Y", "Z")
		recs = append(recs, rec)
	}
	return recs, nil
}

// fillNameAndExtra routes non-coordinate columns: a label column becomes
// the record name, remaining numeric columns go to Extra.
func fillNameAndExtra(rec *Record, row map[string]string, coordCols ...string) {
	coord := make(map[string]bool, len(coordCols))
	for _, c := range coordCols {
		coord[c] = true
	}
	for key, val := range row {
		if coord[key] {
			continue
		}
		if isLabelColumn(key) {
			rec.Name = val
			continue
		}
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			if rec.Extra == nil {
				rec.Extra = make(map[string]float64)
			}
			rec.Extra[key] = v
		}
	}
}

func isLabelColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, l := range labelColumns {
		if lower == l {
			return true
		}
	}
	return false
}

func numField(row map[string]string, key string, rowIdx int) (float64, error) {
	val, ok := row[key]
	if !ok {
		return 0, &FormatError{Reason: fmt.Sprintf("row %d: missing %s", rowIdx+1, key)}
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, &FormatError{Reason: fmt.Sprintf("row %d: %s is not numeric: %q", rowIdx+1, key, val)}
	}
	return v, nil
}

// sniffDelimiter picks the candidate delimiter occurring most often in
// the first line. Files with a single column have nothing to place an
// electrode with, so an undetectable delimiter is a format error.
func sniffDelimiter(data []byte) (rune, error) {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best := rune(0)
	bestCount := 0
	for _, cand := range []rune{',', '\t', ';'} {
		n := bytes.Count(line, []byte(string(cand)))
		if n > bestCount {
			best = cand
			bestCount = n
		}
	}
	if bestCount == 0 {
		return 0, &FormatError{Reason: "cannot detect delimiter (expected comma, tab or semicolon)"}
	}
	return best, nil
}

// headerLooksNumeric reports whether every non-empty cell parses as a
// float, meaning the first row is data and the file has no header.
func headerLooksNumeric(row []string) bool {
	any := false
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		any = true
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return any
}

func hasKey(m map[string]string, key string) bool {
	_, ok := m[key]
	return ok
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
