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

// In this file: validation of dataset names and filter expressions.  Both
// end up interpolated into SQL statements, so anything that does not pass
// these checks never reaches the engine.

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// reIdent matches a valid dataset identifier.
var reIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const maxNameLen = 64

// ValidName returns nil if name can be used as a dataset name, and an error
// wrapping ErrBadName otherwise.
func ValidName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrBadName)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: %q: longer than %d characters", ErrBadName, name, maxNameLen)
	}
	if !reIdent.MatchString(name) {
		return fmt.Errorf("%w: %q: must match %s", ErrBadName, name, reIdent)
	}
	return nil
}

// exprDenied lists substrings that terminate or chain statements.  The
// expression is placed inside a WHERE clause, it must remain a single
// expression.
var exprDenied = []string{";", "--", "/*"}

// ValidExpr returns nil if expr is acceptable as a filter expression, and an
// error wrapping ErrBadExpr otherwise.  It does not attempt to parse the
// expression: syntax errors are reported by the engine at evaluation time.
func ValidExpr(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return fmt.Errorf("%w: empty expression", ErrBadExpr)
	}
	for _, deny := range exprDenied {
		if strings.Contains(expr, deny) {
			return fmt.Errorf("%w: %q: must not contain %q", ErrBadExpr, expr, deny)
		}
	}
	return nil
}

// reNonIdent matches runs of characters that cannot appear in an
// identifier.
var reNonIdent = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// DeriveName derives a valid dataset name from a file path: the base name
// without the extension, with invalid characters replaced by underscores.
func DeriveName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := reNonIdent.ReplaceAllString(base, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "dataset"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name
}

// quoteLiteral quotes s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent quotes s as a SQL identifier.  s must have passed ValidName,
// quoting is kept anyway so that names that collide with keywords work.
func quoteIdent(s string) string {
	return `"` + s + `"`
}
