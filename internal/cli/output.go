package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// printer writes command results as JSON or as text.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(opts *RootOptions, w io.Writer) *printer {
	return &printer{format: opts.Format, w: w}
}

// emit writes v as indented JSON in json mode, otherwise calls text.
func (p *printer) emit(v any, text func(w io.Writer)) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		return nil
	}
	text(p.w)
	return nil
}
