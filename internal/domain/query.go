package domain

import (
	"context"
	"sort"
	"strings"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// DatasetRepository provides the immutable survey table. Load blocks on
// first use (CSV parse or snapshot read) and is called once at startup.
type DatasetRepository interface {
	Load(ctx context.Context) (*entity.Table, error)
}

// FilterPredicates is a conjunction of per-field membership filters, a
// union of count-range buckets and a keyword search. An empty selection for
// any field admits all rows.
type FilterPredicates struct {
	Ministries  []string
	Statuses    []string
	Types       []string
	Actors      []string
	Receivers   []string
	OfficeTypes []string
	CommonFlags []string
	CountRanges []string
	Search      string
}

// IsEmpty reports whether the predicate set admits every row.
func (p FilterPredicates) IsEmpty() bool {
	return len(p.Ministries) == 0 &&
		len(p.Statuses) == 0 &&
		len(p.Types) == 0 &&
		len(p.Actors) == 0 &&
		len(p.Receivers) == 0 &&
		len(p.OfficeTypes) == 0 &&
		len(p.CommonFlags) == 0 &&
		len(p.CountRanges) == 0 &&
		strings.TrimSpace(p.Search) == ""
}

// CacheKey renders a canonical representation of the predicate set, used to
// key memoized query results. Selections are sorted so that semantically
// equal predicate sets hash identically.
func (p FilterPredicates) CacheKey() string {
	var b strings.Builder
	writeSet := func(tag string, vals []string) {
		sorted := append([]string{}, vals...)
		sort.Strings(sorted)
		b.WriteString(tag)
		b.WriteByte('=')
		b.WriteString(strings.Join(sorted, "\x1f"))
		b.WriteByte('\x1e')
	}
	writeSet("ministry", p.Ministries)
	writeSet("status", p.Statuses)
	writeSet("type", p.Types)
	writeSet("actor", p.Actors)
	writeSet("receiver", p.Receivers)
	writeSet("office", p.OfficeTypes)
	writeSet("common", p.CommonFlags)
	writeSet("count", p.CountRanges)
	b.WriteString("search=")
	b.WriteString(strings.TrimSpace(p.Search))
	return b.String()
}

// PageOptions selects a window of a filtered listing.
type PageOptions struct {
	Page     int // 1-based
	PageSize int
}

// AggregateRequest describes one frequency aggregation.
type AggregateRequest struct {
	Column     string
	Key        string // normalization key; defaults to Column
	Ordered    bool   // apply the declared option order when one exists
	TopN       int    // 0 disables Top-N bucketing
	OtherLabel string // label of the merged tail bucket
	Filter     FilterPredicates
}
