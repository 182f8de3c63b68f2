package handler

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/handler/dto"
	"github.com/rtoki/japan-national-admin-procedures/internal/usecase"
)

// QueryHandler serves the aggregation endpoints.
type QueryHandler struct {
	query  usecase.QueryUsecase
	logger *slog.Logger
}

// NewQueryHandler creates a query handler.
func NewQueryHandler(query usecase.QueryUsecase) *QueryHandler {
	return &QueryHandler{
		query:  query,
		logger: slog.Default(),
	}
}

// Aggregate computes a frequency table over a column.
func (h *QueryHandler) Aggregate(ctx context.Context, c *app.RequestContext) {
	var req dto.AggregateRequest
	if err := c.BindAndValidate(&req); err != nil {
		h.logger.Error("invalid aggregate request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	ft, err := h.query.Aggregate(domain.AggregateRequest{
		Column:     req.Column,
		Key:        req.Key,
		Ordered:    req.Ordered,
		TopN:       req.TopN,
		OtherLabel: req.OtherLabel,
		Filter:     req.Filter.ToDomain(),
	})
	if err != nil {
		h.logger.Error("failed to aggregate", "column", req.Column, "error", err)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToFrequencyTableResponse(req.Column, ft))
}

// Crosstab computes a contingency matrix of two columns.
func (h *QueryHandler) Crosstab(ctx context.Context, c *app.RequestContext) {
	var req dto.CrosstabRequest
	if err := c.BindAndValidate(&req); err != nil {
		h.logger.Error("invalid crosstab request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	ct, err := h.query.Crosstab(req.RowColumn, req.ColColumn, req.Filter.ToDomain())
	if err != nil {
		h.logger.Error("failed to crosstab",
			"row_column", req.RowColumn,
			"col_column", req.ColColumn,
			"error", err,
		)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToCrosstabResponse(ct))
}

// MinistryStats returns per-ministry volumes and online rates.
func (h *QueryHandler) MinistryStats(ctx context.Context, c *app.RequestContext) {
	var filter dto.FilterRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindAndValidate(&filter); err != nil {
			h.logger.Error("invalid ministry-stats filter", "error", err)
			BadRequestResponse(c, "invalid filter")
			return
		}
	}

	stats := h.query.MinistryStats(filter.ToDomain(), queryLimit(c, 20))
	SuccessResponse(c, ListResponse{
		Items:      dto.ToMinistryStatResponses(stats),
		TotalCount: len(stats),
	})
}

// MinistryStatusMatrix returns the (ministry, online status) crosstab.
func (h *QueryHandler) MinistryStatusMatrix(ctx context.Context, c *app.RequestContext) {
	var filter dto.FilterRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindAndValidate(&filter); err != nil {
			h.logger.Error("invalid ministry-status filter", "error", err)
			BadRequestResponse(c, "invalid filter")
			return
		}
	}

	ct := h.query.MinistryStatusMatrix(filter.ToDomain())
	SuccessResponse(c, dto.ToCrosstabResponse(ct))
}

// LawTypes returns the law-category distribution.
func (h *QueryHandler) LawTypes(ctx context.Context, c *app.RequestContext) {
	var filter dto.FilterRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindAndValidate(&filter); err != nil {
			h.logger.Error("invalid law-types filter", "error", err)
			BadRequestResponse(c, "invalid filter")
			return
		}
	}

	ft := h.query.LawTypes(filter.ToDomain())
	SuccessResponse(c, dto.ToFrequencyTableResponse("", ft))
}

// TopLaws returns the laws with the most procedures and their online share.
func (h *QueryHandler) TopLaws(ctx context.Context, c *app.RequestContext) {
	var filter dto.FilterRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindAndValidate(&filter); err != nil {
			h.logger.Error("invalid top-laws filter", "error", err)
			BadRequestResponse(c, "invalid filter")
			return
		}
	}

	stats := h.query.TopLaws(filter.ToDomain(), queryLimit(c, 10))
	SuccessResponse(c, ListResponse{
		Items:      dto.ToLawStatResponses(stats),
		TotalCount: len(stats),
	})
}

// SystemStats returns per-system volumes and online rates.
func (h *QueryHandler) SystemStats(ctx context.Context, c *app.RequestContext) {
	var filter dto.FilterRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindAndValidate(&filter); err != nil {
			h.logger.Error("invalid system-stats filter", "error", err)
			BadRequestResponse(c, "invalid filter")
			return
		}
	}

	stats, err := h.query.SystemStats(filter.ToDomain(), c.Query("column"), queryLimit(c, 0))
	if err != nil {
		h.logger.Error("failed to compute system stats", "error", err)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, ListResponse{
		Items:      dto.ToSystemStatResponses(stats),
		TotalCount: len(stats),
	})
}

// queryLimit parses the optional limit query parameter.
func queryLimit(c *app.RequestContext, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
