package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultName fills the name slot when the uploaded file has no name column.
const DefaultName = "Student"

// Normalized is a table whose column labels are canonical lowercase form and
// whose rows are all data (no header row left inside).
type Normalized struct {
	Columns []string
	Rows    [][]string
}

// ErrEmptyFile: the upload decoded to zero rows.
var ErrEmptyFile = errors.New("file contains no rows")

// NoHeaderError: the first row looks synthetic (all numeric/blank) and no
// email cell could be auto-detected, so no header can be derived.
type NoHeaderError struct {
	Attempted []string
}

func (e *NoHeaderError) Error() string {
	return fmt.Sprintf("could not detect email column; no header row found (first row: %s)",
		strings.Join(e.Attempted, ", "))
}

// MissingEmailError: normalization finished but no email column exists.
type MissingEmailError struct {
	Found []string
}

func (e *MissingEmailError) Error() string {
	return fmt.Sprintf(`file must have an "email" column (found: %s)`, strings.Join(e.Found, ", "))
}

// DuplicateColumnError: two source columns normalized to the same label,
// which would silently discard data if flattened.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column after normalization: %q", e.Column)
}

// aliasRule fills a canonical slot from the first present alias, and only
// when the slot itself is absent. Source columns are copied, never renamed,
// so they still land in the extension bag with their original position.
type aliasRule struct {
	target  string
	aliases []string
}

var aliasRules = []aliasRule{
	{target: "score", aliases: []string{"total", "total score", "final score", "grade score", "marks", "total marks"}},
	{target: "student_id", aliases: []string{"id"}},
	{target: "batch", aliases: []string{"class"}},
	{target: "comment", aliases: []string{"comments"}},
}

// name is the one slot synthesized from a pair of columns.
var namePairs = [][2]string{
	{"first name", "last name"},
	{"firstname", "lastname"},
}

// NormalizeHeader implements the header reconciliation step: headerless
// detection, label normalization, synonym resolution, the email requirement,
// and the name/score defaults.
func NormalizeHeader(grid [][]string) (*Normalized, error) {
	if len(grid) == 0 {
		return nil, ErrEmptyFile
	}

	first := grid[0]

	var n *Normalized
	if idx := emailCellIndex(first); idx >= 0 {
		// First row is data: synthesize email + positional placeholders and
		// keep every physical row.
		cols := make([]string, len(first))
		for i := range first {
			if i == idx {
				cols[i] = "email"
			} else {
				cols[i] = fmt.Sprintf("col_%d", i)
			}
		}
		n = &Normalized{Columns: cols, Rows: grid}
	} else if looksSynthetic(first) {
		return nil, &NoHeaderError{Attempted: trimAll(first)}
	} else {
		cols := make([]string, len(first))
		for i, label := range first {
			cols[i] = strings.ToLower(strings.TrimSpace(label))
		}
		n = &Normalized{Columns: cols, Rows: grid[1:]}
	}

	n.padRows()

	if col, dup := firstDuplicate(n.Columns); dup {
		return nil, &DuplicateColumnError{Column: col}
	}

	n.applySynonyms()

	if n.indexOf("email") < 0 {
		return nil, &MissingEmailError{Found: append([]string(nil), n.Columns...)}
	}

	if n.indexOf("name") < 0 {
		n.appendConstant("name", DefaultName)
	}
	if n.indexOf("score") < 0 {
		n.appendConstant("score", "0")
	}

	return n, nil
}

// emailCellIndex returns the first column whose first-row cell contains "@",
// or -1. An "@" in the header position means the row is data.
func emailCellIndex(row []string) int {
	for i, cell := range row {
		if strings.Contains(cell, "@") {
			return i
		}
	}
	return -1
}

// looksSynthetic: every non-blank cell parses as a number (positional or
// "Unnamed"-style export leftovers), so the row cannot be a real header.
func looksSynthetic(row []string) bool {
	numeric := 0
	for _, cell := range row {
		s := strings.TrimSpace(cell)
		if s == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(s), "unnamed") {
			numeric++
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return false
		}
		numeric++
	}
	return numeric > 0
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func firstDuplicate(cols []string) (string, bool) {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, ok := seen[c]; ok {
			return c, true
		}
		seen[c] = struct{}{}
	}
	return "", false
}

func (n *Normalized) indexOf(col string) int {
	for i, c := range n.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// padRows makes every row exactly as wide as the column list. Excel readers
// drop trailing empties; CSV files can be ragged either way.
func (n *Normalized) padRows() {
	width := len(n.Columns)
	for i, row := range n.Rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			n.Rows[i] = padded
		case len(row) > width:
			n.Rows[i] = row[:width]
		}
	}
}

// applySynonyms evaluates the rule list once. Rules fill gaps only; an
// existing canonical column is never overwritten.
func (n *Normalized) applySynonyms() {
	if n.indexOf("name") < 0 {
		for _, pair := range namePairs {
			fi, li := n.indexOf(pair[0]), n.indexOf(pair[1])
			if fi < 0 || li < 0 {
				continue
			}
			n.Columns = append(n.Columns, "name")
			for i, row := range n.Rows {
				n.Rows[i] = append(row, strings.TrimSpace(row[fi])+" "+strings.TrimSpace(row[li]))
			}
			break
		}
	}

	for _, rule := range aliasRules {
		if n.indexOf(rule.target) >= 0 {
			continue
		}
		for _, alias := range rule.aliases {
			src := n.indexOf(alias)
			if src < 0 {
				continue
			}
			n.Columns = append(n.Columns, rule.target)
			for i, row := range n.Rows {
				n.Rows[i] = append(row, row[src])
			}
			break
		}
	}
}

func (n *Normalized) appendConstant(col, value string) {
	n.Columns = append(n.Columns, col)
	for i, row := range n.Rows {
		n.Rows[i] = append(row, value)
	}
}
