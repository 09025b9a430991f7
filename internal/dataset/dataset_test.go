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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"data.csv", FCSV},
		{"data.CSV", FCSV},
		{"data.tsv", FCSV},
		{"dir/data.parquet", FParquet},
		{"data.PQ", FParquet},
		{"data.json", FUnknown},
		{"data", FUnknown},
		{"", FUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FCSV, false},
		{"CSV", FCSV, false},
		{" parquet ", FParquet, false},
		{"", FUnknown, false},
		{"arrow", FUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "CSV", FCSV.String())
	assert.Equal(t, "Parquet", FParquet.String())
	assert.Equal(t, "Unknown", FUnknown.String())
}

func TestParquetSibling(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data.csv", "data.parquet"},
		{"dir/data.csv", "dir/data.parquet"},
		{"data", "data.parquet"},
		{"archive.tar.csv", "archive.tar.parquet"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ParquetSibling(tt.path))
		})
	}
}

func TestFrame_Empty(t *testing.T) {
	var f *Frame
	assert.True(t, f.Empty())
	assert.True(t, (&Frame{Columns: []string{"a"}}).Empty())
	assert.False(t, (&Frame{Rows: [][]any{{1}}}).Empty())
}
