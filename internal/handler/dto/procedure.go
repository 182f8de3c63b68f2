package dto

import (
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// SearchRequest represents the HTTP request for a paginated listing.
type SearchRequest struct {
	Filter   FilterRequest `json:"filter,omitempty"`
	Page     int           `json:"page,omitempty"`
	PageSize int           `json:"page_size,omitempty"`
}

// ProcedureSummaryResponse is the compact listing projection of one record.
type ProcedureSummaryResponse struct {
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

// ToProcedureSummaryResponse converts one record to the listing projection.
func ToProcedureSummaryResponse(p *entity.Procedure) ProcedureSummaryResponse {
	get := func(col string) string {
		v, _ := p.Field(col)
		return v
	}
	return ProcedureSummaryResponse{
		ID:           p.ID,
		Name:         get(entity.ColName),
		Ministry:     get(entity.ColMinistry),
		LawName:      get(entity.ColLawName),
		OnlineStatus: get(entity.ColOnlineStatus),
		Type:         get(entity.ColType),
		TotalCount:   p.TotalCount,
		OnlineCount:  p.OnlineCount,
		OnlineRate:   p.OnlineRate,
	}
}

// SearchResponse represents a page of a filtered listing.
type SearchResponse struct {
	Items      []ProcedureSummaryResponse `json:"items"`
	TotalCount int                        `json:"totalCount"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"page_size"`
}

// FieldValueResponse is one entry of a detail projection.
type FieldValueResponse struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Definition string `json:"definition,omitempty"`
}

// ProcedureDetailResponse represents the full detail projection.
type ProcedureDetailResponse struct {
	ID     string               `json:"id"`
	Fields []FieldValueResponse `json:"fields"`
}

// ToProcedureDetailResponse converts a detail projection.
func ToProcedureDetailResponse(id string, fields []entity.FieldValue) ProcedureDetailResponse {
	out := make([]FieldValueResponse, len(fields))
	for i, f := range fields {
		out[i] = FieldValueResponse{Key: f.Key, Value: f.Value, Definition: f.Definition}
	}
	return ProcedureDetailResponse{ID: id, Fields: out}
}

// ExportRequest represents the HTTP request for a CSV export.
type ExportRequest struct {
	Filter  FilterRequest `json:"filter,omitempty"`
	Columns []string      `json:"columns,omitempty"`
}

// FieldDefinitionResponse describes one schema column.
type FieldDefinitionResponse struct {
	Key        string `json:"key"`
	Definition string `json:"definition,omitempty"`
	MultiValue bool   `json:"multi_value"`
	Numeric    bool   `json:"numeric"`
}

// ToFieldDefinitionResponses lists the export columns with their survey
// definitions.
func ToFieldDefinitionResponses() []FieldDefinitionResponse {
	out := make([]FieldDefinitionResponse, len(entity.ExportColumns))
	for i, col := range entity.ExportColumns {
		out[i] = FieldDefinitionResponse{
			Key:        col,
			Definition: entity.FieldDefs[col],
			MultiValue: entity.MultiValueColumns[col],
			Numeric:    entity.NumericColumns[col],
		}
	}
	return out
}
