// Copyright (c) 2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package list implements the "datax ls" command.
package list

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rusq/datax/cmd/datax/internal/cfg"
	"github.com/rusq/datax/cmd/datax/internal/golang/base"
	"github.com/rusq/datax/internal/dataset"
)

var CmdList = &base.Command{
	Run:       runList,
	UsageLine: "datax ls [flags] [<file> ...]",
	Short:     "list datasets in the store",
	Long: `
# List Command

Lists the datasets registered in the analytical store.  Any files given as
arguments are loaded first, so

	datax ls data/*.csv

shows the shape of the files without starting a server.  Point the -db flag
at a DuckDB database file to see the datasets persisted by previous runs.
`,
	FlagMask:   cfg.OmitBaseLoc,
	PrintFlags: true,
}

func runList(ctx context.Context, cmd *base.Command, args []string) error {
	st, err := dataset.Open(ctx, dataset.WithPath(cfg.StorePath), dataset.WithStoreLogger(cfg.Log))
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	defer st.Close()

	for _, path := range args {
		if _, err := st.Load(ctx, path, dataset.DeriveName(path), dataset.FUnknown); err != nil {
			base.SetExitStatus(base.SUserError)
			return fmt.Errorf("load %q: %w", path, err)
		}
	}

	infos, err := st.List(ctx)
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	render(os.Stdout, infos)
	return nil
}

// render writes the dataset summaries as a table.
func render(w io.Writer, infos []dataset.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No datasets.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Format", "Columns", "Rows", "Loaded", "Source"})
	for _, inf := range infos {
		loaded := ""
		if !inf.LoadedAt.IsZero() {
			loaded = humanize.Time(inf.LoadedAt)
		}
		t.AppendRow(table.Row{
			inf.Name,
			inf.Format,
			inf.Columns,
			humanize.Comma(inf.RowCount),
			loaded,
			inf.Path,
		})
	}
	t.Render()
}
