package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// Summarize computes the dataset-level KPI figures over the given rows.
func Summarize(rows []*entity.Procedure) entity.Summary {
	s := entity.Summary{Procedures: len(rows)}
	for _, p := range rows {
		s.TotalCount += p.TotalCount
		s.OnlineCount += p.OnlineCount
	}
	if s.TotalCount > 0 {
		s.OnlineRate = round2(float64(s.OnlineCount) / float64(s.TotalCount) * 100)
	}
	return s
}

// MinistryStats aggregates per ministry: procedure count, summed counts and
// the resulting online rate. Ministries without any counted instances are
// dropped; the rest are ordered by descending online rate, capped at limit
// (0 = no cap).
func MinistryStats(rows []*entity.Procedure, limit int) []entity.MinistryStat {
	return groupCountStats(rows, entity.ColMinistry, limit)
}

// SystemStats aggregates per information system. System cells are joined
// with semicolons only; commas inside a system name are part of the name.
func SystemStats(rows []*entity.Procedure, column string, limit int) []entity.SystemStat {
	idx := make(map[string]int)
	var stats []entity.SystemStat
	for _, p := range rows {
		cell, ok := p.Field(column)
		if !ok {
			continue
		}
		for _, system := range SplitSemicolonList(cell) {
			i, seen := idx[system]
			if !seen {
				i = len(stats)
				idx[system] = i
				stats = append(stats, entity.SystemStat{System: system})
			}
			stats[i].Procedures++
			stats[i].TotalCount += p.TotalCount
			stats[i].OnlineCount += p.OnlineCount
		}
	}

	kept := stats[:0]
	for _, st := range stats {
		if st.TotalCount == 0 {
			continue
		}
		st.OnlineRate = round2(float64(st.OnlineCount) / float64(st.TotalCount) * 100)
		kept = append(kept, st)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].OnlineRate > kept[j].OnlineRate })
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

func groupCountStats(rows []*entity.Procedure, column string, limit int) []entity.MinistryStat {
	idx := make(map[string]int)
	var stats []entity.MinistryStat
	for _, p := range rows {
		cell, ok := p.Field(column)
		if !ok {
			continue
		}
		i, seen := idx[cell]
		if !seen {
			i = len(stats)
			idx[cell] = i
			stats = append(stats, entity.MinistryStat{Ministry: cell})
		}
		stats[i].Procedures++
		stats[i].TotalCount += p.TotalCount
		stats[i].OnlineCount += p.OnlineCount
	}

	kept := stats[:0]
	for _, st := range stats {
		if st.TotalCount == 0 {
			continue
		}
		st.OnlineRate = round2(float64(st.OnlineCount) / float64(st.TotalCount) * 100)
		kept = append(kept, st)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].OnlineRate > kept[j].OnlineRate })
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// ClassifyLawType maps a 法令番号 cell to its law category. Missing values
// classify as 不明; this is the content the pie chart shows, not an error.
func ClassifyLawType(lawNumber string, ok bool) string {
	if !ok || strings.TrimSpace(lawNumber) == "" {
		return "不明"
	}
	switch {
	case strings.Contains(lawNumber, "法律"):
		return "法律"
	case strings.Contains(lawNumber, "政令"):
		return "政令"
	case strings.Contains(lawNumber, "省令"), strings.Contains(lawNumber, "規則"):
		return "省令・規則"
	case strings.Contains(lawNumber, "告示"):
		return "告示"
	case strings.Contains(lawNumber, "通達"), strings.Contains(lawNumber, "通知"):
		return "通達・通知"
	default:
		return "その他"
	}
}

// LawTypeCounts computes the law-category distribution over the rows.
func LawTypeCounts(rows []*entity.Procedure) *entity.FrequencyTable {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for _, p := range rows {
		cell, ok := p.Field(entity.ColLawNumber)
		label := ClassifyLawType(cell, ok)
		if _, seen := firstSeen[label]; !seen {
			firstSeen[label] = len(firstSeen)
		}
		counts[label]++
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

// TopLawStats computes, for the laws with the most procedures, how many of
// their procedures report an implemented online status. Law names are
// counted and matched on the raw cell value; label normalization does not
// apply to 法令名.
func TopLawStats(rows []*entity.Procedure, top int) []entity.LawStat {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for _, p := range rows {
		law, ok := p.Field(entity.ColLawName)
		if !ok {
			continue
		}
		if _, seen := firstSeen[law]; !seen {
			firstSeen[law] = len(firstSeen)
		}
		counts[law]++
	}

	laws := make([]string, 0, len(counts))
	for law := range counts {
		laws = append(laws, law)
	}
	sort.Slice(laws, func(i, j int) bool {
		if counts[laws[i]] != counts[laws[j]] {
			return counts[laws[i]] > counts[laws[j]]
		}
		return firstSeen[laws[i]] < firstSeen[laws[j]]
	})
	if top > 0 && len(laws) > top {
		laws = laws[:top]
	}

	stats := make([]entity.LawStat, 0, len(laws))
	for _, lawName := range laws {
		st := entity.LawStat{LawName: lawName}
		for _, p := range rows {
			law, ok := p.Field(entity.ColLawName)
			if !ok || law != lawName {
				continue
			}
			st.Procedures++
			if status, ok := p.Field(entity.ColOnlineStatus); ok && strings.Contains(status, "実施済") {
				st.Online++
			}
		}
		if st.Procedures > 0 {
			st.OnlineRate = round2(float64(st.Online) / float64(st.Procedures) * 100)
		}
		stats = append(stats, st)
	}
	return stats
}

// MinistryStatusCounts computes (ministry, normalized status) pair counts,
// with ministries ordered by their total procedure count descending.
func MinistryStatusCounts(rows []*entity.Procedure) *entity.Crosstab {
	ct := CrosstabColumns(rows, entity.ColMinistry, entity.ColOnlineStatus)

	// Normalize status labels after the fact: merge columns that collapse
	// onto the same canonical label.
	colIdx := make(map[string]int)
	var labels []string
	merged := make([][]int, len(ct.RowLabels))
	for i := range merged {
		merged[i] = make([]int, 0, len(ct.ColLabels))
	}
	for j, raw := range ct.ColLabels {
		label := NormalizeLabel(entity.ColOnlineStatus, raw)
		k, seen := colIdx[label]
		if !seen {
			k = len(labels)
			colIdx[label] = k
			labels = append(labels, label)
			for i := range merged {
				merged[i] = append(merged[i], 0)
			}
		}
		for i := range ct.RowLabels {
			merged[i][k] += ct.Counts[i][j]
		}
	}

	totals := make([]int, len(ct.RowLabels))
	order := make([]int, len(ct.RowLabels))
	for i := range ct.RowLabels {
		order[i] = i
		for _, n := range merged[i] {
			totals[i] += n
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return totals[order[a]] > totals[order[b]] })

	out := &entity.Crosstab{ColLabels: labels}
	for _, i := range order {
		out.RowLabels = append(out.RowLabels, ct.RowLabels[i])
		out.Counts = append(out.Counts, merged[i])
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
