package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/rtoki/japan-national-admin-procedures/internal/handler/dto"
	"github.com/rtoki/japan-national-admin-procedures/internal/usecase"
)

// DatasetHandler serves dataset-level metadata: the KPI summary, the field
// catalog and per-field value lists for filter widgets.
type DatasetHandler struct {
	query  usecase.QueryUsecase
	logger *slog.Logger
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(query usecase.QueryUsecase) *DatasetHandler {
	return &DatasetHandler{
		query:  query,
		logger: slog.Default(),
	}
}

// Summary returns the KPI figures, optionally over a filtered subset.
func (h *DatasetHandler) Summary(ctx context.Context, c *app.RequestContext) {
	var filter dto.FilterRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindAndValidate(&filter); err != nil {
			h.logger.Error("invalid summary filter", "error", err)
			BadRequestResponse(c, "invalid filter")
			return
		}
	}

	s := h.query.Summary(filter.ToDomain())
	SuccessResponse(c, dto.ToSummaryResponse(s))
}

// Fields returns the column catalog with survey definitions.
func (h *DatasetHandler) Fields(ctx context.Context, c *app.RequestContext) {
	fields := dto.ToFieldDefinitionResponses()
	SuccessResponse(c, ListResponse{Items: fields, TotalCount: len(fields)})
}

// FieldValues returns the distinct raw values of one column, the source of
// filter widget options.
func (h *DatasetHandler) FieldValues(ctx context.Context, c *app.RequestContext) {
	key := c.Param("key")

	values, err := h.query.FieldValues(key)
	if err != nil {
		h.logger.Error("failed to list field values", "column", key, "error", err)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, ListResponse{Items: values, TotalCount: len(values)})
}
