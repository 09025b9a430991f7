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

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = `name,age,country
Alice,34,China
Bob,28,France
Carol,41,China
Dave,19,Brazil
`

// writeCSV writes test CSV data to a temporary file and returns its path.
func writeCSV(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// openTestStore opens an in-memory store that is closed when the test ends.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.Context())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		s := openTestStore(t)
		assert.Equal(t, InMemory, s.Name())
	})
	t.Run("file-backed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.duckdb")
		s, err := Open(t.Context(), WithPath(path))
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, path, s.Name())
	})
	t.Run("reopen restores datasets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.duckdb")

		s, err := Open(t.Context(), WithPath(path))
		require.NoError(t, err)
		_, err = s.Load(t.Context(), writeCSV(t, peopleCSV), "people", FCSV)
		require.NoError(t, err)
		require.NoError(t, s.Close())

		s, err = Open(t.Context(), WithPath(path))
		require.NoError(t, err)
		defer s.Close()

		infos, err := s.List(t.Context())
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, "people", infos[0].Name)
		assert.Equal(t, int64(4), infos[0].RowCount)

		// the data itself must be queryable
		f, err := s.Head(t.Context(), "people", 2)
		require.NoError(t, err)
		assert.Len(t, f.Rows, 2)
	})
}

func TestStore_Load(t *testing.T) {
	s := openTestStore(t)
	csv := writeCSV(t, peopleCSV)

	md, err := s.Load(t.Context(), csv, "people", FUnknown)
	require.NoError(t, err)
	assert.Equal(t, "people", md.Name)
	assert.Equal(t, int64(4), md.RowCount)
	require.Len(t, md.Columns, 3)
	assert.Equal(t, "name", md.Columns[0].Name)
	assert.Equal(t, "age", md.Columns[1].Name)

	t.Run("reload replaces", func(t *testing.T) {
		smaller := writeCSV(t, "name,age,country\nEve,50,Japan\n")
		md, err := s.Load(t.Context(), smaller, "people", FCSV)
		require.NoError(t, err)
		assert.Equal(t, int64(1), md.RowCount)
	})
	t.Run("bad name", func(t *testing.T) {
		_, err := s.Load(t.Context(), csv, "people;drop", FCSV)
		assert.ErrorIs(t, err, ErrBadName)
	})
	t.Run("unknown format", func(t *testing.T) {
		_, err := s.Load(t.Context(), "data.json", "d", FUnknown)
		assert.ErrorIs(t, err, ErrFormat)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := s.Load(t.Context(), filepath.Join(t.TempDir(), "nope.csv"), "nope", FCSV)
		assert.Error(t, err)
	})
}

func TestStore_Describe(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load(t.Context(), writeCSV(t, peopleCSV), "people", FCSV)
	require.NoError(t, err)

	md, err := s.Describe(t.Context(), "people")
	require.NoError(t, err)
	assert.Equal(t, int64(4), md.RowCount)
	assert.Equal(t, "CSV", md.Format)
	for i, col := range md.Columns {
		assert.Equal(t, i+1, col.Position)
	}

	_, err = s.Describe(t.Context(), "nosuch")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Head(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load(t.Context(), writeCSV(t, peopleCSV), "people", FCSV)
	require.NoError(t, err)

	t.Run("limits rows", func(t *testing.T) {
		f, err := s.Head(t.Context(), "people", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "age", "country"}, f.Columns)
		assert.Len(t, f.Rows, 2)
	})
	t.Run("default of five", func(t *testing.T) {
		f, err := s.Head(t.Context(), "people", 0)
		require.NoError(t, err)
		assert.Len(t, f.Rows, 4) // only 4 rows in the dataset
	})
	t.Run("unknown dataset", func(t *testing.T) {
		_, err := s.Head(t.Context(), "nosuch", 5)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Filter(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load(t.Context(), writeCSV(t, peopleCSV), "people", FCSV)
	require.NoError(t, err)

	t.Run("matches", func(t *testing.T) {
		f, err := s.Filter(t.Context(), "people", "age > 30 AND country = 'China'", 0)
		require.NoError(t, err)
		require.Len(t, f.Rows, 2)
		assert.Equal(t, "Alice", f.Rows[0][0])
		assert.Equal(t, "Carol", f.Rows[1][0])
	})
	t.Run("limit", func(t *testing.T) {
		f, err := s.Filter(t.Context(), "people", "age > 0", 1)
		require.NoError(t, err)
		assert.Len(t, f.Rows, 1)
	})
	t.Run("no matches", func(t *testing.T) {
		f, err := s.Filter(t.Context(), "people", "age > 120", 0)
		require.NoError(t, err)
		assert.True(t, f.Empty())
	})
	t.Run("bad expression", func(t *testing.T) {
		_, err := s.Filter(t.Context(), "people", "1=1; DROP TABLE people", 0)
		assert.ErrorIs(t, err, ErrBadExpr)
	})
	t.Run("engine syntax error", func(t *testing.T) {
		_, err := s.Filter(t.Context(), "people", "age >>> 30", 0)
		assert.Error(t, err)
	})
	t.Run("unknown dataset", func(t *testing.T) {
		_, err := s.Filter(t.Context(), "nosuch", "1=1", 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Export(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load(t.Context(), writeCSV(t, peopleCSV), "people", FCSV)
	require.NoError(t, err)

	t.Run("csv round trip", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.csv")
		require.NoError(t, s.Export(t.Context(), "people", out, FUnknown))

		md, err := s.Load(t.Context(), out, "people2", FUnknown)
		require.NoError(t, err)
		assert.Equal(t, int64(4), md.RowCount)
	})
	t.Run("parquet round trip", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.parquet")
		require.NoError(t, s.Export(t.Context(), "people", out, FParquet))

		md, err := s.Load(t.Context(), out, "people3", FUnknown)
		require.NoError(t, err)
		assert.Equal(t, int64(4), md.RowCount)
	})
	t.Run("unknown format", func(t *testing.T) {
		err := s.Export(t.Context(), "people", filepath.Join(t.TempDir(), "out.json"), FUnknown)
		assert.ErrorIs(t, err, ErrFormat)
	})
	t.Run("unknown dataset", func(t *testing.T) {
		err := s.Export(t.Context(), "nosuch", filepath.Join(t.TempDir(), "out.csv"), FCSV)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_List(t *testing.T) {
	s := openTestStore(t)

	infos, err := s.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, infos)

	_, err = s.Load(t.Context(), writeCSV(t, peopleCSV), "zebra", FCSV)
	require.NoError(t, err)
	_, err = s.Load(t.Context(), writeCSV(t, peopleCSV), "alpha", FCSV)
	require.NoError(t, err)

	infos, err = s.List(t.Context())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	// sorted by name
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "zebra", infos[1].Name)
	assert.Equal(t, int64(4), infos[0].RowCount)
	assert.Equal(t, 3, infos[0].Columns)
	assert.False(t, infos[0].LoadedAt.IsZero())
}
