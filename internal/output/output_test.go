// internal/output/output_test.go
package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"coilscan-core/coils"

	"coilscan/pkg/api"
)

func sampleResult() coils.Result {
	return coils.Result{
		Index:    0,
		ID:       "seq1",
		Length:   12,
		Complete: true,
		Residues: []byte("LEELEKKLEELE"),
		Profile:  []float64{10, 20, 80, 95, 95, 95, 95, 95, 95, 95, 80, 10},
		Phase:    []byte("abcdefgabcde"),
		Tiers: []coils.TierDomains{
			{Threshold: 50, Domains: []coils.Domain{{Start: 2, End: 11, Max: 95, Mean: 91.7}}},
			{Threshold: 90, Domains: nil},
		},
	}
}

func TestWriteTextDomainBlock(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleResult(), false, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	wants := []string{
		">seq1 ## 12 aa",
		"NUMBER PREDICTED COILED-COIL DOMAINS WITH THRESHOLD 50.0 : 1",
		"  1. from 3 to 11 (length = 9) with max = 95.0",
		"NUMBER PREDICTED COILED-COIL DOMAINS WITH THRESHOLD 90.0 : 0",
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q in:\n%s", w, out)
		}
	}
}

func TestWriteTextProbList(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleResult(), true, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "     3 E   80.000 c") {
		t.Errorf("missing prob list row in:\n%s", buf.String())
	}
}

func TestWriteTextWarningsOnly(t *testing.T) {
	r := coils.Result{
		Index: 1, ID: "empty", Length: 0, Complete: true,
		Warnings: []coils.Warning{{SeqIndex: 1, SeqID: "empty", Code: coils.WarnEmptySequence, Detail: "no residues"}},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, r, false, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "# warning[empty-sequence]: no residues") {
		t.Errorf("missing warning line in:\n%s", out)
	}
	if strings.Contains(out, "THRESHOLD") {
		t.Errorf("failed result should have no domain block:\n%s", out)
	}
}

func TestWriteTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := WriteText(&buf, sampleResult(), false, func(coils.Result) string { return "EXTRA\n" })
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "EXTRA\n") {
		t.Errorf("renderer block missing:\n%s", buf.String())
	}
}

func TestWriteCSVRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSVRows(&buf, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "seq1,50,1,3,11,9,95.0\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}

func TestWriteCSVSanitizesName(t *testing.T) {
	r := sampleResult()
	r.ID = "a,b"
	var buf bytes.Buffer
	if err := WriteCSVRows(&buf, r); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "a_b,") {
		t.Errorf("comma not sanitized: %q", buf.String())
	}
}

func TestWriteTSVRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTSVRows(&buf, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "seq1\t0\t50\t1\t3\t11\t9\t95.0\t91.7\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}

func TestToAPIResultCoordinates(t *testing.T) {
	v := ToAPIResult(sampleResult(), true)
	if v.SequenceID != "seq1" || len(v.Tiers) != 2 {
		t.Fatalf("bad mapping %+v", v)
	}
	d := v.Tiers[0].Domains[0]
	if d.From != 3 || d.To != 11 || d.Length != 9 {
		t.Errorf("bad coordinates %+v", d)
	}
	if len(v.Profile) != 12 || v.Phase != "abcdefgabcde" {
		t.Errorf("profile/phase not carried %+v", v)
	}
}

func TestToAPIResultWithoutProfile(t *testing.T) {
	v := ToAPIResult(sampleResult(), false)
	if v.Profile != nil || v.Phase != "" {
		t.Errorf("profile should be omitted %+v", v)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, []coils.Result{sampleResult()}, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	var arr []api.ResultV1
	if err := json.Unmarshal(buf.Bytes(), &arr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(arr) != 1 || arr[0].SequenceID != "seq1" {
		t.Errorf("bad json %+v", arr)
	}
}
