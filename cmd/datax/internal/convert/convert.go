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

// Package convert implements the "datax convert" command.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rusq/datax/cmd/datax/internal/cfg"
	"github.com/rusq/datax/cmd/datax/internal/golang/base"
	"github.com/rusq/datax/internal/dataset"
	"github.com/rusq/datax/internal/primitive"
)

var CmdConvert = &base.Command{
	Run:       runConvert,
	UsageLine: "datax convert [flags] <file> ...",
	Short:     "convert files between CSV and Parquet",
	Long: `
# Convert Command

Convert reads each file and writes it next to the original in the format
given by the -format flag, i.e.:

	datax convert -format parquet events.csv sales.csv

creates events.parquet and sales.parquet.  Files already in the target
format are skipped.  Files are converted concurrently.
`,
	FlagMask:   cfg.OmitAll,
	PrintFlags: true,
}

var targetFmt string

func init() {
	CmdConvert.Flag.StringVar(&targetFmt, "format", "parquet", "target `format`, \"csv\" or \"parquet\"")
}

func runConvert(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) < 1 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("at least one file is required")
	}
	target, err := dataset.ParseFormat(targetFmt)
	if err != nil || target == dataset.FUnknown {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("invalid target format %q (use \"csv\" or \"parquet\")", targetFmt)
	}

	lg := cfg.Log
	start := time.Now()

	var count primitive.Counter
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range args {
		eg.Go(func() error {
			out, err := convertFile(ctx, path, target)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if out == "" {
				lg.InfoContext(ctx, "skipped, already in target format", "file", path)
				return nil
			}
			count.Inc()
			lg.InfoContext(ctx, "converted", "file", path, "output", out)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}

	lg.InfoContext(ctx, "completed", "files", count.N(), "took", time.Since(start))
	return nil
}

// convertFile converts a single file, returning the output path, or an
// empty string if the file is already in the target format.  Each file gets
// its own throwaway in-memory store so that conversions do not contend on a
// single database.
func convertFile(ctx context.Context, path string, target dataset.Format) (string, error) {
	src := dataset.DetectFormat(path)
	if src == dataset.FUnknown {
		return "", fmt.Errorf("%w: %q", dataset.ErrFormat, filepath.Ext(path))
	}
	if src == target {
		return "", nil
	}

	st, err := dataset.Open(ctx, dataset.WithStoreLogger(cfg.Log))
	if err != nil {
		return "", err
	}
	defer st.Close()

	name := dataset.DeriveName(path)
	if _, err := st.Load(ctx, path, name, src); err != nil {
		return "", err
	}

	out := sibling(path, target)
	if err := st.Export(ctx, name, out, target); err != nil {
		return "", err
	}
	return out, nil
}

// sibling returns the path with the extension replaced to match the format.
func sibling(path string, format dataset.Format) string {
	if format == dataset.FParquet {
		return dataset.ParquetSibling(path)
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".csv"
}
