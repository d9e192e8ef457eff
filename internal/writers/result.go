package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"coilscan-core/coils"

	"coilscan/internal/common"
	"coilscan/internal/jsonlutil"
	"coilscan/internal/output"
	"coilscan/internal/pretty"
)

// Options controls per-format rendering details.
type Options struct {
	Sort        bool // buffer and order by input index before writing
	Header      bool // emit the header row (csv/tsv)
	WithProfile bool // include the per-position probability list
	Compact     bool // append the compact block view (text only)
}

// StartResultWriter spins up a writer goroutine for coils.Result items.
// Close the returned channel when done and wait on the error channel; the
// pipeline keeps producing while the writer drains.
func StartResultWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- coils.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan coils.Result, bufSize)
	errCh := make(chan error, 1)

	var render output.Renderer
	if opt.Compact {
		render = pretty.RenderCompact
	}

	go func() {
		var err error
		switch format {
		case "json":
			var buf []coils.Result
			for r := range in {
				buf = append(buf, r)
			}
			if opt.Sort {
				common.SortResults(buf)
			}
			err = output.WriteJSON(out, buf, opt.WithProfile)

		case "jsonl":
			jin, jerr := jsonlutil.Start(out, bufSize, func(enc *json.Encoder, r coils.Result) error {
				return enc.Encode(output.ToAPIResult(r, opt.WithProfile))
			}, IsBrokenPipe)
			if opt.Sort {
				var buf []coils.Result
				for r := range in {
					buf = append(buf, r)
				}
				common.SortResults(buf)
				for _, r := range buf {
					jin <- r
				}
			} else {
				for r := range in {
					jin <- r
				}
			}
			close(jin)
			err = <-jerr

		case "csv":
			err = streamRows(out, in, opt, output.CSVHeader, output.WriteCSVRows)

		case "tsv":
			err = streamRows(out, in, opt, output.TSVHeader, output.WriteTSVRows)

		case "text":
			if opt.Sort {
				var buf []coils.Result
				for r := range in {
					buf = append(buf, r)
				}
				common.SortResults(buf)
				for _, r := range buf {
					if err = output.WriteText(out, r, opt.WithProfile, render); err != nil {
						break
					}
				}
			} else {
				for r := range in {
					if err = output.WriteText(out, r, opt.WithProfile, render); err != nil {
						break
					}
				}
			}

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// keep the producer unblocked even after a write error
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}

func streamRows(out io.Writer, in <-chan coils.Result, opt Options, header string,
	write func(io.Writer, coils.Result) error) error {
	if opt.Header {
		if _, err := fmt.Fprintln(out, header); err != nil {
			return err
		}
	}
	if opt.Sort {
		var buf []coils.Result
		for r := range in {
			buf = append(buf, r)
		}
		common.SortResults(buf)
		for _, r := range buf {
			if err := write(out, r); err != nil {
				return err
			}
		}
		return nil
	}
	for r := range in {
		if err := write(out, r); err != nil {
			return err
		}
	}
	return nil
}
