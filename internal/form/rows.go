package form

import (
	"fmt"
	"strings"
)

// KeyValueRow is one editable line of a key/value list.
type KeyValueRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Complete reports whether both key and value are non-blank.
func (r KeyValueRow) Complete() bool {
	return strings.TrimSpace(r.Key) != "" && strings.TrimSpace(r.Value) != ""
}

// Rows is an editable key/value list. Editors keep at least one row.
type Rows []KeyValueRow

// NewRows returns a list holding a single empty row.
func NewRows() Rows {
	return Rows{{}}
}

// Add appends an empty row.
func (r Rows) Add() Rows {
	return append(r, KeyValueRow{})
}

// Remove drops the row at index i. The last remaining row cannot be removed.
func (r Rows) Remove(i int) (Rows, error) {
	if i < 0 || i >= len(r) {
		return r, fmt.Errorf("row %d out of range", i)
	}
	if len(r) <= 1 {
		return r, fmt.Errorf("at least one row is required")
	}
	out := make(Rows, 0, len(r)-1)
	out = append(out, r[:i]...)
	return append(out, r[i+1:]...), nil
}

// Set replaces the row at index i.
func (r Rows) Set(i int, key, value string) error {
	if i < 0 || i >= len(r) {
		return fmt.Errorf("row %d out of range", i)
	}
	r[i] = KeyValueRow{Key: key, Value: value}
	return nil
}

// AllComplete reports whether every row has a key and a value.
func (r Rows) AllComplete() bool {
	for _, row := range r {
		if !row.Complete() {
			return false
		}
	}
	return true
}

// ToMap returns the trimmed complete rows as a map. Incomplete rows are dropped.
func (r Rows) ToMap() map[string]string {
	m := make(map[string]string, len(r))
	for _, row := range r {
		if row.Complete() {
			m[strings.TrimSpace(row.Key)] = strings.TrimSpace(row.Value)
		}
	}
	return m
}

// ParseRows turns KEY=VALUE strings into rows. An entry without "=" becomes a
// row with an empty value so the caller's completeness rule decides its fate.
func ParseRows(pairs []string) Rows {
	if len(pairs) == 0 {
		return NewRows()
	}
	rows := make(Rows, 0, len(pairs))
	for _, p := range pairs {
		key, value, _ := strings.Cut(p, "=")
		rows = append(rows, KeyValueRow{Key: key, Value: value})
	}
	return rows
}

func (r Rows) clone() Rows {
	return append(Rows(nil), r...)
}
