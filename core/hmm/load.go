// core/hmm/load.go
package hmm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"coilscan-core/alphabet"
)

// Load reads a model from two whitespace-separated text files and validates
// it. The transitions file holds one line with the start distribution
// (NumStates values) followed by NumStates rows of NumStates values. The
// emissions file holds NumStates rows of alphabet.NumCodes values. Lines
// starting with '#' are comments. Any failure here is fatal to the run.
func Load(transPath, emissPath string, mt MatrixType) (*Params, error) {
	p := &Params{
		Name:       transPath,
		MatrixType: mt,
	}

	rows, err := readMatrixFile(transPath)
	if err != nil {
		return nil, fmt.Errorf("transitions %s: %w", transPath, err)
	}
	if len(rows) != NumStates+1 {
		return nil, fmt.Errorf("transitions %s: %d rows, want %d (init + matrix)", transPath, len(rows), NumStates+1)
	}
	p.Init = rows[0]
	p.Trans = rows[1:]

	rows, err = readMatrixFile(emissPath)
	if err != nil {
		return nil, fmt.Errorf("emissions %s: %w", emissPath, err)
	}
	if len(rows) != NumStates {
		return nil, fmt.Errorf("emissions %s: %d rows, want %d", emissPath, len(rows), NumStates)
	}
	for i, row := range rows {
		if len(row) != alphabet.NumCodes {
			return nil, fmt.Errorf("emissions %s: row %d has %d values, want %d", emissPath, i+1, len(row), alphabet.NumCodes)
		}
	}
	p.Emission = rows

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func readMatrixFile(path string) ([][]float64, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return readMatrix(fh)
}

func readMatrix(r io.Reader) ([][]float64, error) {
	sc := bufio.NewScanner(r)
	var rows [][]float64
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value %q", lineNo, f)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no matrix rows found")
	}
	return rows, nil
}
