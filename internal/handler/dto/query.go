package dto

import (
	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// FilterRequest mirrors domain.FilterPredicates on the wire. Every field is
// optional; an omitted selection admits all rows.
type FilterRequest struct {
	Ministries  []string `json:"ministries,omitempty"`
	Statuses    []string `json:"statuses,omitempty"`
	Types       []string `json:"types,omitempty"`
	Actors      []string `json:"actors,omitempty"`
	Receivers   []string `json:"receivers,omitempty"`
	OfficeTypes []string `json:"office_types,omitempty"`
	CommonFlags []string `json:"common_flags,omitempty"`
	CountRanges []string `json:"count_ranges,omitempty"`
	Search      string   `json:"search,omitempty"`
}

// ToDomain converts the wire filter to domain predicates.
func (r FilterRequest) ToDomain() domain.FilterPredicates {
	return domain.FilterPredicates{
		Ministries:  r.Ministries,
		Statuses:    r.Statuses,
		Types:       r.Types,
		Actors:      r.Actors,
		Receivers:   r.Receivers,
		OfficeTypes: r.OfficeTypes,
		CommonFlags: r.CommonFlags,
		CountRanges: r.CountRanges,
		Search:      r.Search,
	}
}

// AggregateRequest represents the HTTP request for a frequency aggregation.
type AggregateRequest struct {
	Column     string        `json:"column" binding:"required"`
	Key        string        `json:"key,omitempty"`
	Ordered    bool          `json:"ordered,omitempty"`
	TopN       int           `json:"top_n,omitempty"`
	OtherLabel string        `json:"other_label,omitempty"`
	Filter     FilterRequest `json:"filter,omitempty"`
}

// FrequencyEntryResponse is one label/count pair.
type FrequencyEntryResponse struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FrequencyTableResponse represents an ordered frequency table.
type FrequencyTableResponse struct {
	Column  string                   `json:"column,omitempty"`
	Entries []FrequencyEntryResponse `json:"entries"`
	Total   int                      `json:"total"`
}

// ToFrequencyTableResponse converts a frequency table.
func ToFrequencyTableResponse(column string, ft *entity.FrequencyTable) FrequencyTableResponse {
	entries := make([]FrequencyEntryResponse, len(ft.Entries))
	for i, e := range ft.Entries {
		entries[i] = FrequencyEntryResponse{Label: e.Label, Count: e.Count}
	}
	return FrequencyTableResponse{Column: column, Entries: entries, Total: ft.Total()}
}

// CrosstabRequest represents the HTTP request for a contingency matrix.
type CrosstabRequest struct {
	RowColumn string        `json:"row_column" binding:"required"`
	ColColumn string        `json:"col_column" binding:"required"`
	Filter    FilterRequest `json:"filter,omitempty"`
}

// CrosstabResponse represents a contingency matrix.
type CrosstabResponse struct {
	RowLabels []string `json:"row_labels"`
	ColLabels []string `json:"col_labels"`
	Counts    [][]int  `json:"counts"`
}

// ToCrosstabResponse converts a crosstab.
func ToCrosstabResponse(ct *entity.Crosstab) CrosstabResponse {
	return CrosstabResponse{
		RowLabels: ct.RowLabels,
		ColLabels: ct.ColLabels,
		Counts:    ct.Counts,
	}
}

// SummaryResponse carries the dataset-level KPI figures.
type SummaryResponse struct {
	Procedures  int     `json:"procedures"`
	TotalCount  int64   `json:"total_count"`
	OnlineCount int64   `json:"online_count"`
	OnlineRate  float64 `json:"online_rate"`
}

// ToSummaryResponse converts a summary.
func ToSummaryResponse(s entity.Summary) SummaryResponse {
	return SummaryResponse{
		Procedures:  s.Procedures,
		TotalCount:  s.TotalCount,
		OnlineCount: s.OnlineCount,
		OnlineRate:  s.OnlineRate,
	}
}

// MinistryStatResponse aggregates one ministry.
type MinistryStatResponse struct {
	Ministry    string  `json:"ministry"`
	Procedures  int     `json:"procedures"`
	TotalCount  int64   `json:"total_count"`
	OnlineCount int64   `json:"online_count"`
	OnlineRate  float64 `json:"online_rate"`
}

// ToMinistryStatResponses converts ministry stats.
func ToMinistryStatResponses(stats []entity.MinistryStat) []MinistryStatResponse {
	out := make([]MinistryStatResponse, len(stats))
	for i, st := range stats {
		out[i] = MinistryStatResponse{
			Ministry:    st.Ministry,
			Procedures:  st.Procedures,
			TotalCount:  st.TotalCount,
			OnlineCount: st.OnlineCount,
			OnlineRate:  st.OnlineRate,
		}
	}
	return out
}

// LawStatResponse aggregates procedures sharing one law.
type LawStatResponse struct {
	LawName    string  `json:"law_name"`
	Procedures int     `json:"procedures"`
	Online     int     `json:"online"`
	OnlineRate float64 `json:"online_rate"`
}

// ToLawStatResponses converts law stats.
func ToLawStatResponses(stats []entity.LawStat) []LawStatResponse {
	out := make([]LawStatResponse, len(stats))
	for i, st := range stats {
		out[i] = LawStatResponse{
			LawName:    st.LawName,
			Procedures: st.Procedures,
			Online:     st.Online,
			OnlineRate: st.OnlineRate,
		}
	}
	return out
}

// SystemStatResponse aggregates procedures handled by one system.
type SystemStatResponse struct {
	System      string  `json:"system"`
	Procedures  int     `json:"procedures"`
	TotalCount  int64   `json:"total_count"`
	OnlineCount int64   `json:"online_count"`
	OnlineRate  float64 `json:"online_rate"`
}

// ToSystemStatResponses converts system stats.
func ToSystemStatResponses(stats []entity.SystemStat) []SystemStatResponse {
	out := make([]SystemStatResponse, len(stats))
	for i, st := range stats {
		out[i] = SystemStatResponse{
			System:      st.System,
			Procedures:  st.Procedures,
			TotalCount:  st.TotalCount,
			OnlineCount: st.OnlineCount,
			OnlineRate:  st.OnlineRate,
		}
	}
	return out
}
