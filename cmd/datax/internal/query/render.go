package query

// In this file: result frame rendering, terminal and CSV.

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rusq/fsadapter"

	"github.com/rusq/datax/internal/dataset"
)

// renderFrame prints the frame to w as a bordered table.
func renderFrame(w io.Writer, f *dataset.Frame) {
	if f.Empty() {
		fmt.Fprintln(w, "No rows.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	hdr := make(table.Row, len(f.Columns))
	for i, c := range f.Columns {
		hdr[i] = c
	}
	t.AppendHeader(hdr)

	for _, row := range f.Rows {
		r := make(table.Row, len(row))
		copy(r, row)
		t.AppendRow(r)
	}
	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(f.Rows))
}

// writeFrameCSV writes the frame as a CSV file with a header row to name
// within fsa.
func writeFrameCSV(fsa fsadapter.FS, name string, f *dataset.Frame) error {
	w, err := fsa.Create(name)
	if err != nil {
		return fmt.Errorf("create %q: %w", name, err)
	}
	defer w.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(f.Columns))
	for _, row := range f.Rows {
		for i, v := range row {
			if v == nil {
				rec[i] = ""
				continue
			}
			rec[i] = fmt.Sprint(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
