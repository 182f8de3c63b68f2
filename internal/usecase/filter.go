package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// Filter applies the predicate set and returns a new table sharing the
// matching records in source order. The source table is never mutated and
// an empty predicate set returns it unchanged, so filtering is idempotent.
func Filter(table *entity.Table, p domain.FilterPredicates) *entity.Table {
	if p.IsEmpty() {
		return table
	}

	fields := []struct {
		column   string
		selected []string
	}{
		{entity.ColMinistry, p.Ministries},
		{entity.ColOnlineStatus, p.Statuses},
		{entity.ColType, p.Types},
		{entity.ColActor, p.Actors},
		{entity.ColReceiver, p.Receivers},
		{entity.ColOfficeType, p.OfficeTypes},
		{entity.ColCommonFlag, p.CommonFlags},
	}

	memberships := make([]map[string]bool, len(fields))
	for i, f := range fields {
		if len(f.selected) == 0 {
			continue
		}
		set := make(map[string]bool, len(f.selected))
		for _, v := range f.selected {
			set[v] = true
		}
		memberships[i] = set
	}

	var buckets []entity.CountBucket
	for _, name := range p.CountRanges {
		if b, ok := entity.BucketByName(name); ok {
			buckets = append(buckets, b)
		}
	}

	needle := foldForSearch(p.Search)

	matched := make([]*entity.Procedure, 0, table.Len())
rows:
	for _, row := range table.Rows() {
		for i, f := range fields {
			if memberships[i] == nil {
				continue
			}
			cell, ok := row.Field(f.column)
			if !ok || !memberships[i][cell] {
				continue rows
			}
		}

		if len(buckets) > 0 {
			inBucket := false
			for _, b := range buckets {
				if b.Contains(row.TotalCount) {
					inBucket = true
					break
				}
			}
			if !inBucket {
				continue rows
			}
		}

		if needle != "" && !matchesSearch(row, needle) {
			continue rows
		}

		matched = append(matched, row)
	}
	return entity.NewTable(matched)
}

// matchesSearch reports whether any search column of the row contains the
// folded keyword.
func matchesSearch(row *entity.Procedure, needle string) bool {
	for _, col := range entity.SearchColumns {
		cell, ok := row.Field(col)
		if !ok {
			continue
		}
		if strings.Contains(foldForSearch(cell), needle) {
			return true
		}
	}
	return false
}

// foldForSearch makes keyword matching case- and width-insensitive: NFKC
// folds full-width Latin and half-width katakana before lowercasing, so
// "ＮＴＴ" matches "ntt".
func foldForSearch(s string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(s)))
}
