// core/seqio/reader.go
package seqio

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one parsed FASTA protein record. Complete is false when the
// stream ended mid-record (no trailing newline on the last sequence line),
// which downstream reporting flags as a truncated record; inference still
// runs on whatever residues were read.
type Record struct {
	Index    int
	ID       string
	Seq      []byte
	Complete bool
}

// Stream parses FASTA from r and calls emit once per record, in order.
// Records are assigned sequential indices starting at 0. It is cancelable
// between records via ctx.
func Stream(ctx context.Context, r io.Reader, emit func(Record) error) error {
	br := bufio.NewReaderSize(r, 64*1024)

	var (
		id      string
		seq     = make([]byte, 0, 1<<16)
		idx     int
		started bool
		// complete tracks whether the most recent sequence line was
		// newline-terminated.
		complete = true
	)

	flush := func() error {
		if !started {
			return nil
		}
		rec := Record{
			Index:    idx,
			ID:       id,
			Seq:      append([]byte(nil), seq...),
			Complete: complete,
		}
		idx++
		seq = seq[:0]
		return emit(rec)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := br.ReadBytes('\n')
		terminated := len(line) > 0 && line[len(line)-1] == '\n'
		line = bytes.TrimSpace(line)

		if len(line) > 0 {
			if line[0] == '>' {
				if err := flush(); err != nil {
					return err
				}
				id = parseHeaderID(line[1:])
				started = true
				complete = true
			} else if started {
				seq = append(seq, line...)
				complete = terminated
			} else {
				return fmt.Errorf("seqio: sequence data before first header")
			}
		}

		if err == io.EOF {
			return flush()
		}
		if err != nil {
			return fmt.Errorf("seqio: read: %w", err)
		}
	}
}

// StreamPath opens path ("-" = stdin, gzip handled transparently) and
// streams its records.
func StreamPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return Stream(ctx, rc, emit)
}

// Records is the channel wrapper around StreamPath. Open errors are reported
// immediately for non-stdin paths; scan-time errors close the channel.
func Records(ctx context.Context, path string) (<-chan Record, error) {
	if path != "-" {
		rc, err := openReader(path)
		if err != nil {
			return nil, err
		}
		_ = rc.Close()
	}

	out := make(chan Record, 8)
	go func() {
		defer close(out)
		_ = StreamPath(ctx, path, func(rec Record) error {
			select {
			case out <- rec:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
