package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/types"
)

// APIClient wraps Hertz Client for HTTP communication with the API server
type APIClient struct {
	client *client.Client
	server string
}

// NewAPIClient creates a new API client
func NewAPIClient(server string) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
	}, nil
}

// normalizeServerURL normalizes server URL to ensure it has a scheme and no trailing slash
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// do sends one JSON request and returns the raw response body.
func (c *APIClient) do(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.server + endpoint)
	if body != nil {
		bodyBytes, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(bodyBytes)
	}

	if err := c.client.Do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%s failed with HTTP status: %d, body: %s",
			endpoint, statusCode, string(resp.Body()))
	}

	// Copy: the buffer is invalid after the response is released.
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

// doJSON sends one JSON request and decodes the enveloped response data.
func doJSON[T any](ctx context.Context, c *APIClient, method, endpoint string, body any) (T, error) {
	var zero T
	raw, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return zero, err
	}
	var envelope types.APIResponse[T]
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return zero, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return envelope.Data, nil
}

// Ping checks server reachability.
func (c *APIClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, consts.MethodGet, endpointPing, nil)
	return err
}

// Summary fetches the KPI figures, optionally over a filtered subset.
func (c *APIClient) Summary(ctx context.Context, filter *types.Filter) (types.Summary, error) {
	if filter == nil {
		return doJSON[types.Summary](ctx, c, consts.MethodGet, endpointSummary, nil)
	}
	return doJSON[types.Summary](ctx, c, consts.MethodPost, endpointSummary, filter)
}

// Fields fetches the column catalog.
func (c *APIClient) Fields(ctx context.Context) ([]types.FieldDefinition, error) {
	data, err := doJSON[types.ListData[types.FieldDefinition]](ctx, c, consts.MethodGet, endpointFields, nil)
	return data.Items, err
}

// FieldValues fetches the distinct values of one column.
func (c *APIClient) FieldValues(ctx context.Context, key string) ([]string, error) {
	endpoint := fmt.Sprintf(endpointFieldValues, url.PathEscape(key))
	data, err := doJSON[types.ListData[string]](ctx, c, consts.MethodGet, endpoint, nil)
	return data.Items, err
}

// Aggregate computes a frequency table over a column.
func (c *APIClient) Aggregate(ctx context.Context, req types.AggregateRequest) (types.FrequencyTable, error) {
	return doJSON[types.FrequencyTable](ctx, c, consts.MethodPost, endpointAggregate, req)
}

// Crosstab computes a contingency matrix of two columns.
func (c *APIClient) Crosstab(ctx context.Context, req types.CrosstabRequest) (types.Crosstab, error) {
	return doJSON[types.Crosstab](ctx, c, consts.MethodPost, endpointCrosstab, req)
}

// MinistryStatusMatrix fetches the (ministry, online status) crosstab.
func (c *APIClient) MinistryStatusMatrix(ctx context.Context, filter types.Filter) (types.Crosstab, error) {
	return doJSON[types.Crosstab](ctx, c, consts.MethodPost, endpointMinistryStatus, filter)
}

// MinistryStats fetches per-ministry volumes and online rates.
func (c *APIClient) MinistryStats(ctx context.Context, filter types.Filter, limit int) ([]types.MinistryStat, error) {
	endpoint := endpointMinistryStats
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}
	data, err := doJSON[types.ListData[types.MinistryStat]](ctx, c, consts.MethodPost, endpoint, filter)
	return data.Items, err
}

// LawTypes fetches the law-category distribution.
func (c *APIClient) LawTypes(ctx context.Context, filter types.Filter) (types.FrequencyTable, error) {
	return doJSON[types.FrequencyTable](ctx, c, consts.MethodPost, endpointLawTypes, filter)
}

// TopLaws fetches the laws with the most procedures.
func (c *APIClient) TopLaws(ctx context.Context, filter types.Filter, limit int) ([]types.LawStat, error) {
	endpoint := endpointTopLaws
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}
	data, err := doJSON[types.ListData[types.LawStat]](ctx, c, consts.MethodPost, endpoint, filter)
	return data.Items, err
}

// SystemStats fetches per-system volumes and online rates.
func (c *APIClient) SystemStats(ctx context.Context, filter types.Filter, limit int) ([]types.SystemStat, error) {
	endpoint := endpointSystemStats
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}
	data, err := doJSON[types.ListData[types.SystemStat]](ctx, c, consts.MethodPost, endpoint, filter)
	return data.Items, err
}

// Search fetches one page of a filtered listing.
func (c *APIClient) Search(ctx context.Context, req types.SearchRequest) (types.SearchData, error) {
	return doJSON[types.SearchData](ctx, c, consts.MethodPost, endpointSearch, req)
}

// Get fetches the full detail projection of one procedure.
func (c *APIClient) Get(ctx context.Context, id string) (types.ProcedureDetail, error) {
	endpoint := fmt.Sprintf(endpointProcedureID, url.PathEscape(id))
	return doJSON[types.ProcedureDetail](ctx, c, consts.MethodGet, endpoint, nil)
}

// Export fetches the filtered subset as raw CSV bytes.
func (c *APIClient) Export(ctx context.Context, req types.ExportRequest) ([]byte, error) {
	return c.do(ctx, consts.MethodPost, endpointExport, req)
}
