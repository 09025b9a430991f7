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

// Package query implements the "datax query" command.
package query

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rusq/fsadapter"

	"github.com/rusq/datax/cmd/datax/internal/cfg"
	"github.com/rusq/datax/cmd/datax/internal/golang/base"
	"github.com/rusq/datax/internal/dataset"
)

var CmdQuery = &base.Command{
	Run:       runQuery,
	UsageLine: "datax query [flags] <file-or-dataset>",
	Short:     "preview or filter a dataset",
	Long: `
# Query Command

Query previews or filters a dataset.  The argument is either a path to a CSV
or Parquet file, which is loaded first, or the name of a dataset already
present in the store (see the -db flag).

Without -e the first rows of the dataset are printed, with -e only the rows
satisfying the filter expression.  The expression is a SQL boolean expression
over the dataset columns, for example:

	datax query -e "age > 30 AND country = 'China'" people.csv

By default the result is printed to the terminal.  Use -o (or the base -base
flag) to write it as CSV to a directory or a ZIP file instead.
`,
	FlagMask:   cfg.DefaultFlags,
	PrintFlags: true,
}

var (
	expr   string
	limit  int
	output string
)

func init() {
	CmdQuery.Flag.StringVar(&expr, "e", "", "filter `expression`, a SQL boolean expression over the dataset\ncolumns")
	CmdQuery.Flag.IntVar(&limit, "n", 0, "maximum `number` of rows to return, 0 means no limit for -e and\n10 rows for the preview")
	CmdQuery.Flag.StringVar(&output, "o", "", "output `location`: \"-\" for the terminal, otherwise a directory or\na ZIP file to write CSV into (overrides -base)")
}

// outLocation returns the effective output location: -o when given,
// otherwise the base location.
func outLocation() string {
	if output != "" {
		return output
	}
	if cfg.BaseLoc != "" {
		return cfg.BaseLoc
	}
	return cfg.Terminal
}

const defPreviewRows = 10

func runQuery(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) != 1 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("expected exactly one file or dataset name")
	}

	st, err := dataset.Open(ctx, dataset.WithPath(cfg.StorePath), dataset.WithStoreLogger(cfg.Log))
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	defer st.Close()

	name, err := resolve(ctx, st, args[0])
	if err != nil {
		base.SetExitStatus(base.SUserError)
		return err
	}

	var f *dataset.Frame
	if expr == "" {
		n := limit
		if n <= 0 {
			n = defPreviewRows
		}
		f, err = st.Head(ctx, name, n)
	} else {
		f, err = st.Filter(ctx, name, expr, limit)
	}
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}

	out := outLocation()
	if out == cfg.Terminal {
		renderFrame(os.Stdout, f)
		return nil
	}

	fsa, err := fsadapter.New(out)
	if err != nil {
		base.SetExitStatus(base.SWorkspaceError)
		return err
	}
	defer fsa.Close()
	if err := writeFrameCSV(fsa, name+".csv", f); err != nil {
		base.SetExitStatus(base.SWorkspaceError)
		return err
	}
	cfg.Log.InfoContext(ctx, "result written", "name", name+".csv", "rows", len(f.Rows), "to", out)
	return nil
}

// resolve loads the file at arg into the store if it exists on disk,
// otherwise treats arg as the name of an already registered dataset.
func resolve(ctx context.Context, st dataset.Storer, arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		name := dataset.DeriveName(arg)
		if _, err := st.Load(ctx, arg, name, dataset.FUnknown); err != nil {
			return "", err
		}
		return name, nil
	}
	if err := dataset.ValidName(arg); err != nil {
		return "", fmt.Errorf("%q is neither a file nor a dataset name: %w", arg, err)
	}
	return arg, nil
}
