// internal/cli/options_test.go
package cli

import (
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaultsOK(t *testing.T) {
	o := mustParse(t, "--sequences", "seqs.fa")
	if o.Variant != "high" || o.Mode != ModeDomains || o.Output != "text" {
		t.Errorf("bad defaults %+v", o)
	}
	if !o.Header || o.ExtendFrac != 0.5 || o.MinLength != 9 || o.MaxGap != 2 {
		t.Errorf("bad decoding defaults %+v", o)
	}
}

func TestRepeatableSequences(t *testing.T) {
	o := mustParse(t, "--sequences", "a.fa", "--sequences", "b.fa.gz")
	if len(o.SeqFiles) != 2 || o.SeqFiles[1] != "b.fa.gz" {
		t.Errorf("bad sequences parse %+v", o.SeqFiles)
	}
}

func TestModelFilesTogether(t *testing.T) {
	o := mustParse(t,
		"--sequences", "seqs.fa",
		"--transitions", "t.txt", "--emissions", "e.txt",
	)
	if o.TransFile != "t.txt" || o.EmissFile != "e.txt" {
		t.Errorf("bad model parse %+v", o)
	}
}

func TestErrorTransitionsWithoutEmissions(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--sequences", "seqs.fa", "--transitions", "t.txt",
	})
	if err == nil {
		t.Fatalf("expected error when emissions not supplied")
	}
}

func TestErrorBadVariant(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--sequences", "seqs.fa", "--variant", "medium",
	})
	if err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestErrorNoSequences(t *testing.T) {
	_, err := ParseArgs(newFS(), nil)
	if err == nil {
		t.Fatalf("expected error when sequences missing")
	}
}

func TestCheckModeWithoutSequences(t *testing.T) {
	o := mustParse(t, "--mode", "check")
	if o.Mode != ModeCheck {
		t.Errorf("bad mode %+v", o)
	}
}

func TestErrorBadOutput(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--sequences", "seqs.fa", "--output", "xml",
	})
	if err == nil {
		t.Fatalf("expected error for unknown output")
	}
}

func TestErrorBadExtendFrac(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--sequences", "seqs.fa", "--extend-frac", "1.5",
	})
	if err == nil {
		t.Fatalf("expected error for extend-frac out of range")
	}
}

func TestPositionalSequences(t *testing.T) {
	o := mustParse(t, "--sequences", "a.fa", "b.fa")
	if len(o.SeqFiles) != 2 || o.SeqFiles[1] != "b.fa" {
		t.Errorf("positional sequences not collected %+v", o.SeqFiles)
	}
}

func TestNoHeader(t *testing.T) {
	o := mustParse(t, "--sequences", "seqs.fa", "--no-header")
	if o.Header {
		t.Errorf("expected header suppressed")
	}
}
