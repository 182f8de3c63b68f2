package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/handler/dto"
	"github.com/rtoki/japan-national-admin-procedures/internal/usecase"
)

// ProcedureHandler serves record-level endpoints: paginated search, detail
// lookup and the CSV export.
type ProcedureHandler struct {
	query         usecase.QueryUsecase
	exportMaxRows int
	logger        *slog.Logger
}

// NewProcedureHandler creates a procedure handler. exportMaxRows bounds the
// CSV export; 0 disables the bound.
func NewProcedureHandler(query usecase.QueryUsecase, exportMaxRows int) *ProcedureHandler {
	return &ProcedureHandler{
		query:         query,
		exportMaxRows: exportMaxRows,
		logger:        slog.Default(),
	}
}

// Search returns one page of a filtered listing.
func (h *ProcedureHandler) Search(ctx context.Context, c *app.RequestContext) {
	var req dto.SearchRequest
	if err := c.BindAndValidate(&req); err != nil {
		h.logger.Error("invalid search request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	rows, total, err := h.query.Search(req.Filter.ToDomain(), domain.PageOptions{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.logger.Error("failed to search procedures", "error", err)
		ErrorResponse(c, err)
		return
	}

	items := make([]dto.ProcedureSummaryResponse, len(rows))
	for i, p := range rows {
		items[i] = dto.ToProcedureSummaryResponse(p)
	}
	SuccessResponse(c, dto.SearchResponse{
		Items:      items,
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
}

// Get returns the full detail projection of one procedure.
func (h *ProcedureHandler) Get(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")

	fields, err := h.query.Get(id)
	if err != nil {
		h.logger.Error("failed to get procedure", "id", id, "error", err)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToProcedureDetailResponse(id, fields))
}

// Export streams the filtered subset as CSV.
func (h *ProcedureHandler) Export(ctx context.Context, c *app.RequestContext) {
	var req dto.ExportRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindAndValidate(&req); err != nil {
			h.logger.Error("invalid export request", "error", err)
			ErrorResponse(c, domain.ErrInvalidInput)
			return
		}
	}

	predicates := req.Filter.ToDomain()
	if h.exportMaxRows > 0 {
		if _, total, err := h.query.Search(predicates, domain.PageOptions{Page: 1, PageSize: 1}); err == nil && total > h.exportMaxRows {
			BadRequestResponse(c, fmt.Sprintf("export of %d rows exceeds the limit of %d, narrow the filter", total, h.exportMaxRows))
			return
		}
	}

	data, err := h.query.Export(predicates, req.Columns)
	if err != nil {
		h.logger.Error("failed to export", "error", err)
		ErrorResponse(c, err)
		return
	}

	c.Response.Header.Set("Content-Disposition", `attachment; filename="procedures.csv"`)
	c.Data(consts.StatusOK, "text/csv; charset=utf-8", data)
}
