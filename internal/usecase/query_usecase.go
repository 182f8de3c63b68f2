package usecase

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// QueryUsecase is the query surface exposed to the HTTP handlers and the
// CLI. All operations are pure reads over the immutable table; results are
// identical whether served from the memoization cache or recomputed.
type QueryUsecase interface {
	Len() int
	Summary(p domain.FilterPredicates) entity.Summary
	Aggregate(req domain.AggregateRequest) (*entity.FrequencyTable, error)
	Crosstab(rowColumn, colColumn string, p domain.FilterPredicates) (*entity.Crosstab, error)
	MinistryStats(p domain.FilterPredicates, limit int) []entity.MinistryStat
	MinistryStatusMatrix(p domain.FilterPredicates) *entity.Crosstab
	LawTypes(p domain.FilterPredicates) *entity.FrequencyTable
	TopLaws(p domain.FilterPredicates, top int) []entity.LawStat
	SystemStats(p domain.FilterPredicates, column string, limit int) ([]entity.SystemStat, error)
	Search(p domain.FilterPredicates, page domain.PageOptions) ([]*entity.Procedure, int, error)
	Get(id string) ([]entity.FieldValue, error)
	Export(p domain.FilterPredicates, columns []string) ([]byte, error)
	FieldValues(column string) ([]string, error)
}

const (
	defaultPageSize  = 100
	maxPageSize      = 1000
	filterCacheSize  = 64
	requestCacheSize = 256
)

type queryUsecase struct {
	table  *entity.Table
	logger *slog.Logger

	// Memoization keyed by content hash of the request; correctness never
	// depends on a hit.
	filterCache *lru.Cache[string, *entity.Table]
	aggCache    *lru.Cache[string, *entity.FrequencyTable]
}

// NewQueryUsecase creates the query usecase over a loaded table.
func NewQueryUsecase(table *entity.Table, logger *slog.Logger) QueryUsecase {
	filterCache, _ := lru.New[string, *entity.Table](filterCacheSize)
	aggCache, _ := lru.New[string, *entity.FrequencyTable](requestCacheSize)
	return &queryUsecase{
		table:       table,
		logger:      logger,
		filterCache: filterCache,
		aggCache:    aggCache,
	}
}

func (u *queryUsecase) Len() int { return u.table.Len() }

// filtered resolves the predicate set through the memoization cache.
func (u *queryUsecase) filtered(p domain.FilterPredicates) *entity.Table {
	if p.IsEmpty() {
		return u.table
	}
	key := hashKey(p.CacheKey())
	if t, ok := u.filterCache.Get(key); ok {
		return t
	}
	t := Filter(u.table, p)
	u.filterCache.Add(key, t)
	return t
}

func (u *queryUsecase) Summary(p domain.FilterPredicates) entity.Summary {
	return Summarize(u.filtered(p).Rows())
}

func (u *queryUsecase) Aggregate(req domain.AggregateRequest) (*entity.FrequencyTable, error) {
	if !entity.HasColumn(req.Column) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown column %q", req.Column))
	}
	key := req.Key
	if key == "" {
		key = req.Column
	}

	cacheKey := hashKey(fmt.Sprintf("agg|%s|%s|%t|%s", req.Column, key, req.Ordered, req.Filter.CacheKey()))
	ft, ok := u.aggCache.Get(cacheKey)
	if !ok {
		ft = CountValues(u.filtered(req.Filter).Rows(), req.Column, key)
		if req.Ordered {
			ft = ApplyOrder(ft, entity.OptionOrders[key], u.logger)
		}
		u.aggCache.Add(cacheKey, ft)
	}

	if req.TopN > 0 {
		other := req.OtherLabel
		if other == "" {
			other = "その他"
		}
		return TopNWithOther(ft, req.TopN, other), nil
	}
	return ft, nil
}

func (u *queryUsecase) Crosstab(rowColumn, colColumn string, p domain.FilterPredicates) (*entity.Crosstab, error) {
	if !entity.HasColumn(rowColumn) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown column %q", rowColumn))
	}
	if !entity.HasColumn(colColumn) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown column %q", colColumn))
	}
	return CrosstabColumns(u.filtered(p).Rows(), rowColumn, colColumn), nil
}

func (u *queryUsecase) MinistryStats(p domain.FilterPredicates, limit int) []entity.MinistryStat {
	return MinistryStats(u.filtered(p).Rows(), limit)
}

func (u *queryUsecase) MinistryStatusMatrix(p domain.FilterPredicates) *entity.Crosstab {
	return MinistryStatusCounts(u.filtered(p).Rows())
}

func (u *queryUsecase) LawTypes(p domain.FilterPredicates) *entity.FrequencyTable {
	return LawTypeCounts(u.filtered(p).Rows())
}

func (u *queryUsecase) TopLaws(p domain.FilterPredicates, top int) []entity.LawStat {
	if top <= 0 {
		top = 10
	}
	return TopLawStats(u.filtered(p).Rows(), top)
}

func (u *queryUsecase) SystemStats(p domain.FilterPredicates, column string, limit int) ([]entity.SystemStat, error) {
	if column == "" {
		column = entity.ColSystemApply
	}
	if column != entity.ColSystemApply && column != entity.ColSystemProcess {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("column %q is not a system column", column))
	}
	return SystemStats(u.filtered(p).Rows(), column, limit), nil
}

func (u *queryUsecase) Search(p domain.FilterPredicates, page domain.PageOptions) ([]*entity.Procedure, int, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = defaultPageSize
	}
	if page.PageSize > maxPageSize {
		page.PageSize = maxPageSize
	}

	rows := u.filtered(p).Rows()
	total := len(rows)
	start := (page.Page - 1) * page.PageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + page.PageSize
	if end > total {
		end = total
	}
	return rows[start:end], total, nil
}

func (u *queryUsecase) Get(id string) ([]entity.FieldValue, error) {
	p, err := FindByID(u.table, id)
	if err != nil {
		return nil, err
	}
	return Project(p, entity.DetailFieldOrder), nil
}

func (u *queryUsecase) Export(p domain.FilterPredicates, columns []string) ([]byte, error) {
	return ExportCSV(u.filtered(p).Rows(), columns)
}

// FieldValues returns the sorted distinct non-missing raw values of a
// column, the source for filter widgets.
func (u *queryUsecase) FieldValues(column string) ([]string, error) {
	if !entity.HasColumn(column) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown column %q", column))
	}
	seen := make(map[string]bool)
	var values []string
	for _, p := range u.table.Rows() {
		cell, ok := p.Field(column)
		if !ok || strings.TrimSpace(cell) == "" {
			continue
		}
		if !seen[cell] {
			seen[cell] = true
			values = append(values, cell)
		}
	}
	sort.Strings(values)
	return values, nil
}

func hashKey(s string) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum64())
}
