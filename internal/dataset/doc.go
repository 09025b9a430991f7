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

// Package dataset implements the Datax analytical store.  It keeps named
// tabular datasets in an embedded DuckDB database and exposes the operations
// the rest of the program is built on: loading CSV and Parquet files,
// inspecting schemas, filtering rows with SQL boolean expressions and
// exporting datasets back to disk.
//
// The store is in-memory by default; pass [WithPath] to persist it to a
// database file.  Loading a dataset under an existing name replaces the
// previous one.
//
// Dataset names are restricted to identifiers and filter expressions are
// checked before they are interpolated into a statement; see [ValidName] and
// [ValidExpr] for the exact rules.
package dataset
