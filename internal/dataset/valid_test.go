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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "sales", false},
		{"underscore prefix", "_tmp", false},
		{"digits", "q3_2025", false},
		{"empty", "", true},
		{"leading digit", "2025q3", true},
		{"dash", "my-data", true},
		{"space", "my data", true},
		{"quote", `x"y`, true},
		{"semicolon", "x;drop", true},
		{"too long", strings.Repeat("a", 65), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadName)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidExpr(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"comparison", "age > 30", false},
		{"conjunction", "age > 30 AND country = 'China'", false},
		{"string with quote", "name = 'O''Brien'", false},
		{"function call", "length(name) > 3", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"statement separator", "1=1; DROP TABLE x", true},
		{"line comment", "1=1 --", true},
		{"block comment", "1=1 /* x */", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidExpr(tt.expr)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadExpr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/people.csv", "people"},
		{"people.parquet", "people"},
		{"/data/Q3 sales report.csv", "Q3_sales_report"},
		{"/data/2025.csv", "_2025"},
		{"data.tar.csv", "data_tar"},
		{"...csv", "dataset"},
		{strings.Repeat("a", 100) + ".csv", strings.Repeat("a", 64)},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := DeriveName(tt.path)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, ValidName(got))
		})
	}
}

func TestQuoting(t *testing.T) {
	assert.Equal(t, "'it''s'", quoteLiteral("it's"))
	assert.Equal(t, "''", quoteLiteral(""))
	assert.Equal(t, `"sales"`, quoteIdent("sales"))
}
