package entity

import "strconv"

// Procedure is one survey record: a single administrative procedure with
// its descriptive fields and count columns.
//
// Missing cells (empty string, "nan", "NaN" in the source) are dropped at
// ingestion: Values only holds cells that carried data. Count columns are
// coerced to non-negative integers with malformed values becoming 0.
type Procedure struct {
	ID     string
	Values map[string]string

	TotalCount   int64
	OnlineCount  int64
	OfflineCount int64
	OnlineRate   float64
}

// Field returns the raw cell for a column. Count columns and the derived
// online rate are formatted from their typed representation; for string
// columns ok is false when the source cell was missing.
func (p *Procedure) Field(key string) (string, bool) {
	switch key {
	case ColID:
		return p.ID, p.ID != ""
	case ColTotalCount:
		return strconv.FormatInt(p.TotalCount, 10), true
	case ColOnlineCount:
		return strconv.FormatInt(p.OnlineCount, 10), true
	case ColOfflineCount:
		return strconv.FormatInt(p.OfflineCount, 10), true
	case ColOnlineRate:
		return strconv.FormatFloat(p.OnlineRate, 'f', -1, 64), true
	}
	v, ok := p.Values[key]
	return v, ok
}

// Table is an immutable, ordered collection of procedures. It is built once
// at load time and never mutated; filtering produces new Tables that share
// the underlying records.
type Table struct {
	rows []*Procedure
	byID map[string]*Procedure
}

// NewTable builds a table from rows, indexing the first occurrence of each
// identifier.
func NewTable(rows []*Procedure) *Table {
	byID := make(map[string]*Procedure, len(rows))
	for _, r := range rows {
		if _, seen := byID[r.ID]; !seen {
			byID[r.ID] = r
		}
	}
	return &Table{rows: rows, byID: byID}
}

// Rows returns the records in source order. Callers must not mutate the
// returned slice.
func (t *Table) Rows() []*Procedure { return t.rows }

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// ByID returns the first record with the given identifier.
func (t *Table) ByID(id string) (*Procedure, bool) {
	p, ok := t.byID[id]
	return p, ok
}
