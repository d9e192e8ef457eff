package hmm

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coilscan-core/alphabet"
)

func TestDefaultModelsValidate(t *testing.T) {
	for _, p := range []*Params{DefaultHigh(), DefaultLow()} {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", p.Name, err)
		}
	}
}

func TestDefaultRowSums(t *testing.T) {
	p := DefaultHigh()
	for i, row := range p.Trans {
		var s float64
		for _, v := range row {
			s += v
		}
		if math.Abs(s-1) > 1e-9 {
			t.Errorf("transition row %d sums to %g", i, s)
		}
	}
	for i, row := range p.Emission {
		var s float64
		for _, v := range row {
			s += v
		}
		if math.Abs(s-1) > 1e-9 {
			t.Errorf("emission row %d sums to %g", i, s)
		}
	}
}

func TestValidateRejectsBadRow(t *testing.T) {
	p := DefaultHigh()
	p.Trans[2][0] += 0.1
	if err := p.Validate(); err == nil {
		t.Fatal("expected row-sum violation to be rejected")
	}

	p = DefaultHigh()
	p.Emission[1][0] = -0.5
	if err := p.Validate(); err == nil {
		t.Fatal("expected negative entry to be rejected")
	}

	p = DefaultHigh()
	p.Init = p.Init[:NumStates-1]
	if err := p.Validate(); err == nil {
		t.Fatal("expected dimension mismatch to be rejected")
	}
}

func TestPhaseLetter(t *testing.T) {
	if PhaseLetter(StateBackground) != '-' {
		t.Error("background phase should render as '-'")
	}
	if PhaseLetter(StateHeptadA) != 'a' || PhaseLetter(StateHeptadG) != 'g' {
		t.Errorf("phase letters wrong: %c %c", PhaseLetter(StateHeptadA), PhaseLetter(StateHeptadG))
	}
}

func TestCoilEmissionsFavorHydrophobicCore(t *testing.T) {
	p := DefaultHigh()
	l, _ := alphabet.Code('L')
	pPro, _ := alphabet.Code('P')
	if p.Emission[StateHeptadA][l] <= p.Emission[StateBackground][l] {
		t.Error("leucine should be enriched at heptad position a")
	}
	if p.Emission[StateHeptadA][pPro] >= p.Emission[StateBackground][pPro] {
		t.Error("proline should be depleted in coil states")
	}
}

func writeModelFiles(t *testing.T, dir string, p *Params) (string, string) {
	t.Helper()
	var tb strings.Builder
	tb.WriteString("# transitions\n")
	writeRow(&tb, p.Init)
	for _, row := range p.Trans {
		writeRow(&tb, row)
	}
	var eb strings.Builder
	for _, row := range p.Emission {
		writeRow(&eb, row)
	}
	tp := filepath.Join(dir, "trans.txt")
	ep := filepath.Join(dir, "emiss.txt")
	if err := os.WriteFile(tp, []byte(tb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ep, []byte(eb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return tp, ep
}

func writeRow(b *strings.Builder, row []float64) {
	for i, v := range row {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%.12g", v)
	}
	b.WriteByte('\n')
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := DefaultLow()
	tp, ep := writeModelFiles(t, dir, want)

	got, err := Load(tp, ep, MatrixProb)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for s := 0; s < NumStates; s++ {
		for j := 0; j < NumStates; j++ {
			if math.Abs(got.Trans[s][j]-want.Trans[s][j]) > 1e-9 {
				t.Fatalf("trans[%d][%d]: %g vs %g", s, j, got.Trans[s][j], want.Trans[s][j])
			}
		}
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	p := DefaultLow()
	tp, ep := writeModelFiles(t, dir, p)

	// Chop the emissions file down to two rows.
	data, err := os.ReadFile(ep)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.SplitN(string(data), "\n", 3)
	if err := os.WriteFile(ep, []byte(lines[0]+"\n"+lines[1]+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tp, ep, MatrixProb); err == nil {
		t.Fatal("expected error for truncated emissions file")
	}
}
