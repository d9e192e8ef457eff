package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coilscan-core/coils"
	"coilscan-core/hmm"
)

func testOpts() coils.Options {
	return coils.Options{
		Tiers:     []coils.Tier{{Core: 50, Ext: 25}},
		Segment:   coils.SegmentOptions{MinLen: 9, MaxGap: 3},
		MinSeqLen: 10,
	}
}

func writeFixture(t *testing.T, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "seqs.fa")
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return fn
}

func TestForEachResultOrderAndIndices(t *testing.T) {
	fa := writeFixture(t, ">a\nMKQLEVEKLMKQLEVEKL\n>b\nAAAAAAAAAAAA\n>c\nLEELEKKLEELEKK\n")
	var got []coils.Result
	err := ForEachResult(context.Background(), Config{Threads: 1}, []string{fa},
		hmm.DefaultHigh(), testOpts(), func(r coils.Result) error {
			got = append(got, r)
			return nil
		})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	for i, r := range got {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
	}
	if got[0].ID != "a" || got[2].ID != "c" {
		t.Errorf("IDs out of order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestEmptyRecordIsRecoverable(t *testing.T) {
	fa := writeFixture(t, ">empty\n>ok\nMKQLEVEKLMKQLEVEKL\n")
	var got []coils.Result
	err := ForEachResult(context.Background(), Config{Threads: 1}, []string{fa},
		hmm.DefaultHigh(), testOpts(), func(r coils.Result) error {
			got = append(got, r)
			return nil
		})
	if err != nil {
		t.Fatalf("empty record must not abort the batch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if !got[0].Failed() {
		t.Error("empty record should yield a warnings-only result")
	}
	if got[1].Failed() {
		t.Error("following record must still be processed")
	}
}

func TestOverCapIsRecoverable(t *testing.T) {
	fa := writeFixture(t, ">long\n"+strings.Repeat("MKQLEVEKL", 4)+"\n>ok\nMKQLEVEKLMKQLEVEKL\n")
	var got []coils.Result
	err := ForEachResult(context.Background(), Config{Threads: 1, MaxSeqLen: 20}, []string{fa},
		hmm.DefaultHigh(), testOpts(), func(r coils.Result) error {
			got = append(got, r)
			return nil
		})
	if err != nil {
		t.Fatalf("over-cap record must not abort the batch: %v", err)
	}
	if len(got) != 2 || !got[0].Failed() || got[1].Failed() {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestMissingFileReportedAfterOthers(t *testing.T) {
	fa := writeFixture(t, ">ok\nMKQLEVEKLMKQLEVEKL\n")
	n := 0
	err := ForEachResult(context.Background(), Config{Threads: 1},
		[]string{"no-such-file.fa", fa},
		hmm.DefaultHigh(), testOpts(), func(coils.Result) error {
			n++
			return nil
		})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if n != 1 {
		t.Fatalf("other files must still be scanned, got %d results", n)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString(">r\n" + strings.Repeat("LEELEKK", 4) + "\n")
	}
	fa := writeFixture(t, sb.String())

	run := func(threads int) map[int]int {
		cov := map[int]int{}
		err := ForEachResult(context.Background(), Config{Threads: threads}, []string{fa},
			hmm.DefaultHigh(), testOpts(), func(r coils.Result) error {
				cov[r.Index] = coils.Coverage(r.Tiers[0].Domains)
				return nil
			})
		if err != nil {
			t.Fatalf("threads=%d: %v", threads, err)
		}
		return cov
	}

	serial := run(1)
	parallel := run(4)
	if len(serial) != len(parallel) {
		t.Fatalf("result counts differ: %d vs %d", len(serial), len(parallel))
	}
	for idx, c := range serial {
		if parallel[idx] != c {
			t.Errorf("index %d: coverage %d vs %d", idx, c, parallel[idx])
		}
	}
}
