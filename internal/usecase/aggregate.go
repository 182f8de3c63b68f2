package usecase

import (
	"log/slog"
	"sort"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// CountValues computes the frequency table of a column over the given rows.
// Missing cells are dropped; multi-value columns are exploded into tokens
// first; every retained value is normalized under key before counting.
//
// The result is ordered by descending count with ties broken by first
// occurrence in the data. An unknown column yields an empty table.
func CountValues(rows []*entity.Procedure, column, key string) *entity.FrequencyTable {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, p := range rows {
		cell, ok := p.Field(column)
		if !ok {
			continue
		}
		var tokens []string
		switch {
		case entity.SemicolonColumns[column]:
			tokens = SplitSemicolonList(cell)
		case entity.MultiValueColumns[column]:
			tokens = SplitMultiValue(cell)
		default:
			tokens = []string{cell}
		}
		for _, tok := range tokens {
			label := NormalizeLabel(key, tok)
			if label == "" {
				continue
			}
			if _, seen := firstSeen[label]; !seen {
				firstSeen[label] = len(firstSeen)
			}
			counts[label]++
		}
	}

	entries := make([]entity.FrequencyEntry, 0, len(counts))
	for label, n := range counts {
		entries = append(entries, entity.FrequencyEntry{Label: label, Count: n})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Label] < firstSeen[entries[j].Label]
	})
	return &entity.FrequencyTable{Entries: entries}
}

// ApplyOrder reindexes a frequency table into the declared option order,
// keeping only labels present in both. When the order shares nothing with
// the data — a misconfigured vocabulary — it falls back to the unordered
// table instead of returning an empty aggregate.
func ApplyOrder(ft *entity.FrequencyTable, order []string, logger *slog.Logger) *entity.FrequencyTable {
	if len(order) == 0 {
		return ft
	}
	ordered := make([]entity.FrequencyEntry, 0, len(order))
	for _, label := range order {
		if n, ok := ft.Get(label); ok {
			ordered = append(ordered, entity.FrequencyEntry{Label: label, Count: n})
		}
	}
	if len(ordered) == 0 && len(ft.Entries) > 0 {
		if logger != nil {
			logger.Warn("option order shares no labels with data, falling back to frequency order",
				"order_size", len(order),
				"distinct_labels", len(ft.Entries),
			)
		}
		return ft
	}
	return &entity.FrequencyTable{Entries: ordered}
}

// TopNWithOther keeps the top highest-count labels and merges the rest into
// a single bucket whose count is the sum of the excluded tail. Ties at the
// boundary follow the table's stable order. When the table has no more than
// top distinct labels it is returned unchanged, without an empty bucket.
func TopNWithOther(ft *entity.FrequencyTable, top int, otherLabel string) *entity.FrequencyTable {
	if top < 0 {
		top = 0
	}
	if len(ft.Entries) <= top {
		return ft
	}
	kept := make([]entity.FrequencyEntry, 0, top+1)
	kept = append(kept, ft.Entries[:top]...)
	other := 0
	for _, e := range ft.Entries[top:] {
		other += e.Count
	}
	kept = append(kept, entity.FrequencyEntry{Label: otherLabel, Count: other})
	return &entity.FrequencyTable{Entries: kept}
}

// CrosstabColumns builds the contingency matrix of two scalar categorical
// columns. Rows and columns appear in first-occurrence order; cells count
// records carrying both values. Records missing either cell are skipped.
func CrosstabColumns(rows []*entity.Procedure, rowCol, colCol string) *entity.Crosstab {
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	var rowLabels, colLabels []string
	type cell struct{ r, c int }
	counts := make(map[cell]int)

	for _, p := range rows {
		rv, ok := p.Field(rowCol)
		if !ok {
			continue
		}
		cv, ok := p.Field(colCol)
		if !ok {
			continue
		}
		ri, seen := rowIdx[rv]
		if !seen {
			ri = len(rowLabels)
			rowIdx[rv] = ri
			rowLabels = append(rowLabels, rv)
		}
		ci, seen := colIdx[cv]
		if !seen {
			ci = len(colLabels)
			colIdx[cv] = ci
			colLabels = append(colLabels, cv)
		}
		counts[cell{ri, ci}]++
	}

	matrix := make([][]int, len(rowLabels))
	for i := range matrix {
		matrix[i] = make([]int, len(colLabels))
	}
	for c, n := range counts {
		matrix[c.r][c.c] = n
	}
	return &entity.Crosstab{RowLabels: rowLabels, ColLabels: colLabels, Counts: matrix}
}
