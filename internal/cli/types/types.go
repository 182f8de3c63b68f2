package types

// APIResponse represents a generic API response with typed data
type APIResponse[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ListData represents a generic list data structure
type ListData[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// Filter mirrors the server's filter predicates. Every field is optional.
type Filter struct {
	Ministries  []string `json:"ministries,omitempty" yaml:"ministries,omitempty"`
	Statuses    []string `json:"statuses,omitempty" yaml:"statuses,omitempty"`
	Types       []string `json:"types,omitempty" yaml:"types,omitempty"`
	Actors      []string `json:"actors,omitempty" yaml:"actors,omitempty"`
	Receivers   []string `json:"receivers,omitempty" yaml:"receivers,omitempty"`
	OfficeTypes []string `json:"office_types,omitempty" yaml:"officeTypes,omitempty"`
	CommonFlags []string `json:"common_flags,omitempty" yaml:"commonFlags,omitempty"`
	CountRanges []string `json:"count_ranges,omitempty" yaml:"countRanges,omitempty"`
	Search      string   `json:"search,omitempty" yaml:"search,omitempty"`
}

// AggregateRequest asks the server for a frequency table.
type AggregateRequest struct {
	Column     string `json:"column"`
	Key        string `json:"key,omitempty"`
	Ordered    bool   `json:"ordered,omitempty"`
	TopN       int    `json:"top_n,omitempty"`
	OtherLabel string `json:"other_label,omitempty"`
	Filter     Filter `json:"filter,omitempty"`
}

// FrequencyEntry is one label/count pair.
type FrequencyEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FrequencyTable is an ordered frequency table.
type FrequencyTable struct {
	Column  string           `json:"column,omitempty"`
	Entries []FrequencyEntry `json:"entries"`
	Total   int              `json:"total"`
}

// CrosstabRequest asks the server for a contingency matrix.
type CrosstabRequest struct {
	RowColumn string `json:"row_column"`
	ColColumn string `json:"col_column"`
	Filter    Filter `json:"filter,omitempty"`
}

// Crosstab is a contingency matrix of two columns.
type Crosstab struct {
	RowLabels []string `json:"row_labels"`
	ColLabels []string `json:"col_labels"`
	Counts    [][]int  `json:"counts"`
}

// Summary carries the dataset-level KPI figures.
type Summary struct {
	Procedures  int     `json:"procedures"`
	TotalCount  int64   `json:"total_count"`
	OnlineCount int64   `json:"online_count"`
	OnlineRate  float64 `json:"online_rate"`
}

// MinistryStat aggregates one ministry.
type MinistryStat struct {
	Ministry    string  `json:"ministry"`
	Procedures  int     `json:"procedures"`
	TotalCount  int64   `json:"total_count"`
	OnlineCount int64   `json:"online_count"`
	OnlineRate  float64 `json:"online_rate"`
}

// LawStat aggregates procedures sharing one law.
type LawStat struct {
	LawName    string  `json:"law_name"`
	Procedures int     `json:"procedures"`
	Online     int     `json:"online"`
	OnlineRate float64 `json:"online_rate"`
}

// SystemStat aggregates procedures handled by one information system.
type SystemStat struct {
	System      string  `json:"system"`
	Procedures  int     `json:"procedures"`
	TotalCount  int64   `json:"total_count"`
	OnlineCount int64   `json:"online_count"`
	OnlineRate  float64 `json:"online_rate"`
}

// SearchRequest asks the server for one page of a filtered listing.
type SearchRequest struct {
	Filter   Filter `json:"filter,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

// ProcedureSummary is the compact listing projection of one record.
type ProcedureSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Ministry     string  `json:"ministry"`
	LawName      string  `json:"law_name"`
	OnlineStatus string  `json:"online_status"`
	Type         string  `json:"type"`
	TotalCount   int64   `json:"total_count"`
	OnlineCount  int64   `json:"online_count"`
	OnlineRate   float64 `json:"online_rate"`
}

// SearchData is one page of a filtered listing.
type SearchData struct {
	Items      []ProcedureSummary `json:"items"`
	TotalCount int                `json:"totalCount"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

// FieldValue is one entry of a detail projection.
type FieldValue struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Definition string `json:"definition,omitempty"`
}

// ProcedureDetail is the full detail projection of one record.
type ProcedureDetail struct {
	ID     string       `json:"id"`
	Fields []FieldValue `json:"fields"`
}

// FieldDefinition describes one schema column.
type FieldDefinition struct {
	Key        string `json:"key"`
	Definition string `json:"definition,omitempty"`
	MultiValue bool   `json:"multi_value"`
	Numeric    bool   `json:"numeric"`
}

// ExportRequest asks the server for a CSV export.
type ExportRequest struct {
	Filter  Filter   `json:"filter,omitempty"`
	Columns []string `json:"columns,omitempty"`
}
