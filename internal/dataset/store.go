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

// In this file: the DuckDB backed Store implementation.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// InMemory is the store path for a non-persistent store.
const InMemory = ":memory:"

// Store is a DuckDB backed dataset registry.  It is safe for concurrent
// use: loads and exports are serialised, reads run concurrently.
type Store struct {
	db   *sql.DB
	path string
	lg   *slog.Logger

	mu  sync.RWMutex // guards reg and DDL execution order
	reg map[string]regEntry
}

// regEntry records where a registered dataset came from.
type regEntry struct {
	path     string
	format   Format
	loadedAt time.Time
}

var _ Storer = (*Store)(nil)

// StoreOption is a functional option for Open.
type StoreOption func(*Store)

// WithPath sets the database file location.  The default is an in-memory
// database that is lost when the store is closed.
func WithPath(path string) StoreOption {
	return func(s *Store) {
		if path != "" {
			s.path = path
		}
	}
}

// WithStoreLogger sets the logger.  A nil logger falls back to
// slog.Default().
func WithStoreLogger(lg *slog.Logger) StoreOption {
	return func(s *Store) {
		if lg != nil {
			s.lg = lg
		}
	}
}

// Open opens the analytical store and verifies the connection.
func Open(ctx context.Context, opts ...StoreOption) (*Store, error) {
	s := &Store{
		path: InMemory,
		lg:   slog.Default(),
		reg:  make(map[string]regEntry),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("duckdb", dsn(s.path))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	s.db = db
	if s.path != InMemory {
		if err := s.restore(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
	}
	s.lg.DebugContext(ctx, "store open", "path", s.path)
	return s, nil
}

// restore re-registers the tables that already exist in a file backed
// database, so that datasets persisted by a previous run remain visible.
// The source path and format are not recorded in the database and are left
// empty.
func (s *Store) restore(ctx context.Context) error {
	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'main' AND table_type = 'BASE TABLE'`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("restore: scan: %w", err)
		}
		if ValidName(name) != nil {
			continue
		}
		s.reg[name] = regEntry{loadedAt: now}
	}
	return rows.Err()
}

// dsn converts the public store path to a driver DSN.  The duckdb driver
// expects an empty string for an in-memory database.
func dsn(path string) string {
	if path == InMemory {
		return ""
	}
	return path
}

// Name returns the store identity: the database file path or ":memory:".
func (s *Store) Name() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load ingests the file at path as dataset name, replacing any existing
// dataset with the same name.
func (s *Store) Load(ctx context.Context, path, name string, format Format) (*Metadata, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}
	if format == FUnknown {
		format = DetectFormat(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	var reader string
	switch format {
	case FCSV:
		reader = fmt.Sprintf("read_csv_auto(%s, header=true)", quoteLiteral(abs))
	case FParquet:
		reader = fmt.Sprintf("read_parquet(%s)", quoteLiteral(abs))
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}

	s.mu.Lock()
	q := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM %s", quoteIdent(name), reader)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	s.reg[name] = regEntry{path: path, format: format, loadedAt: time.Now()}
	s.mu.Unlock()

	s.lg.InfoContext(ctx, "dataset loaded", "name", name, "path", path, "format", format.String())
	return s.Describe(ctx, name)
}

// List returns summaries of all registered datasets sorted by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	entries := make(map[string]regEntry, len(s.reg))
	for name, e := range s.reg {
		entries[name] = e
	}
	s.mu.RUnlock()

	infos := make([]Info, 0, len(entries))
	for name, e := range entries {
		md, err := s.Describe(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("list: %q: %w", name, err)
		}
		fmtName := e.format.String()
		if e.format == FUnknown {
			// Restored from a file backed database, origin unknown.
			fmtName = ""
		}
		infos = append(infos, Info{
			Name:     name,
			Path:     e.path,
			Format:   fmtName,
			Columns:  len(md.Columns),
			RowCount: md.RowCount,
			LoadedAt: e.loadedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Describe returns the schema and row count of the named dataset.
func (s *Store) Describe(ctx context.Context, name string) (*Metadata, error) {
	e, err := s.entry(name)
	if err != nil {
		return nil, err
	}

	const q = `
		SELECT column_name, data_type, is_nullable, ordinal_position
		FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position`

	rows, err := s.db.QueryContext(ctx, q, name)
	if err != nil {
		return nil, fmt.Errorf("describe %q: %w", name, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			col      Column
			nullable string
		)
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("describe %q: scan: %w", name, err)
		}
		col.Nullable = nullable == "YES"
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe %q: %w", name, err)
	}
	if len(cols) == 0 {
		// Registered but the table vanished, should not happen.
		return nil, fmt.Errorf("describe %q: %w", name, ErrNotFound)
	}

	var count int64
	cq := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(name))
	if err := s.db.QueryRowContext(ctx, cq).Scan(&count); err != nil {
		return nil, fmt.Errorf("describe %q: count: %w", name, err)
	}

	return &Metadata{
		Name:     name,
		Path:     e.path,
		Format:   e.format.String(),
		Columns:  cols,
		RowCount: count,
	}, nil
}

// Head returns the first n rows of the named dataset.  n <= 0 defaults
// to 5 rows.
func (s *Store) Head(ctx context.Context, name string, n int) (*Frame, error) {
	if _, err := s.entry(name); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = 5
	}
	q := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(name), n)
	return s.queryFrame(ctx, q)
}

// Filter returns the rows of the named dataset satisfying expr, up to limit
// rows.
func (s *Store) Filter(ctx context.Context, name, expr string, limit int) (*Frame, error) {
	if _, err := s.entry(name); err != nil {
		return nil, err
	}
	if err := ValidExpr(expr); err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT * FROM %s WHERE %s", quoteIdent(name), expr)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	f, err := s.queryFrame(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", name, err)
	}
	return f, nil
}

// Export writes the named dataset to path in the given format.
func (s *Store) Export(ctx context.Context, name, path string, format Format) error {
	if _, err := s.entry(name); err != nil {
		return err
	}
	if format == FUnknown {
		format = DetectFormat(path)
	}

	var with string
	switch format {
	case FCSV:
		with = "(FORMAT CSV, HEADER)"
	case FParquet:
		with = "(FORMAT PARQUET)"
	default:
		return fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("export %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	q := fmt.Sprintf("COPY %s TO %s %s", quoteIdent(name), quoteLiteral(abs), with)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("export %q to %q: %w", name, path, err)
	}
	s.lg.InfoContext(ctx, "dataset exported", "name", name, "path", path, "format", format.String())
	return nil
}

// entry returns the registry entry for name or ErrNotFound.
func (s *Store) entry(name string) (regEntry, error) {
	if err := ValidName(name); err != nil {
		return regEntry{}, err
	}
	s.mu.RLock()
	e, ok := s.reg[name]
	s.mu.RUnlock()
	if !ok {
		return regEntry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, nil
}

// queryFrame runs q and materialises the result.
func (s *Store) queryFrame(ctx context.Context, q string) (*Frame, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	f := &Frame{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range vals {
			vals[i] = normalize(v)
		}
		f.Rows = append(f.Rows, vals)
	}
	return f, rows.Err()
}

// normalize converts driver values to JSON friendly representations.
func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	default:
		return v
	}
}
