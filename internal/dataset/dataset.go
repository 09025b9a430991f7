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

package dataset

// In this file: types and interfaces shared by the store and its consumers.

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when the requested dataset is not registered
	// in the store.
	ErrNotFound = errors.New("dataset not found")
	// ErrBadName is returned when a dataset name is not a valid identifier.
	ErrBadName = errors.New("invalid dataset name")
	// ErrBadExpr is returned when a filter expression is rejected.
	ErrBadExpr = errors.New("invalid filter expression")
	// ErrFormat is returned for file formats the store cannot handle.
	ErrFormat = errors.New("unsupported file format")
	// ErrEmpty is returned when an operation requires data and none is
	// available.
	ErrEmpty = errors.New("no data")
)

// Format is the on-disk format of a dataset file.
//
//go:generate stringer -type Format -trimprefix F
type Format uint8

const (
	FUnknown Format = iota
	FCSV
	FParquet
)

// DetectFormat guesses the format of the file at path from its extension.
// It returns FUnknown if the extension is not recognised.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FCSV
	case ".parquet", ".pq":
		return FParquet
	default:
		return FUnknown
	}
}

// ParseFormat converts a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FCSV, nil
	case "parquet":
		return FParquet, nil
	case "":
		return FUnknown, nil
	default:
		return FUnknown, ErrFormat
	}
}

// Column describes a single dataset column.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Position int    `json:"position"`
}

// Metadata describes a registered dataset.
type Metadata struct {
	Name     string   `json:"name"`
	Path     string   `json:"path,omitempty"`
	Format   string   `json:"format,omitempty"`
	Columns  []Column `json:"columns"`
	RowCount int64    `json:"row_count"`
}

// Info is a summary line as returned by List.
type Info struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Format   string    `json:"format,omitempty"`
	Columns  int       `json:"columns"`
	RowCount int64     `json:"row_count"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Frame is a materialised query result: column names in result order and
// row values.  Values carry whatever the database driver returned and are
// JSON-serialisable.
type Frame struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Empty reports whether the frame contains no rows.
func (f *Frame) Empty() bool { return f == nil || len(f.Rows) == 0 }

// Storer is the interface between the analytical store and its consumers
// (the MCP server and the CLI commands).  Implementations must return
// ErrNotFound for unknown dataset names, ErrBadName/ErrBadExpr for rejected
// identifiers and expressions, and ErrFormat for unsupported file formats.
//
//go:generate mockgen -destination=mock_dataset/mock_dataset.go . Storer
type Storer interface {
	// Name returns the identity of the underlying database, i.e. the file
	// path or ":memory:".
	Name() string
	// Load ingests the file at path as dataset name.  If format is
	// FUnknown it is detected from the file extension.  An existing
	// dataset with the same name is replaced.
	Load(ctx context.Context, path, name string, format Format) (*Metadata, error)
	// List returns summaries of all registered datasets, sorted by name.
	List(ctx context.Context) ([]Info, error)
	// Describe returns the schema and row count of the named dataset.
	Describe(ctx context.Context, name string) (*Metadata, error)
	// Head returns the first n rows of the named dataset.
	Head(ctx context.Context, name string, n int) (*Frame, error)
	// Filter returns the rows of the named dataset that satisfy the SQL
	// boolean expression expr, up to limit rows.  A limit <= 0 means no
	// limit.
	Filter(ctx context.Context, name, expr string, limit int) (*Frame, error)
	// Export writes the named dataset to the file at path in the given
	// format.  If format is FUnknown it is detected from the extension.
	Export(ctx context.Context, name, path string, format Format) error
}

// ParquetSibling derives the default Parquet target for a source file:
// the same path with its extension replaced by ".parquet".
func ParquetSibling(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".parquet"
}
