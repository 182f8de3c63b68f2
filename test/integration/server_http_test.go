//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/network/netpoll"

	"github.com/rtoki/japan-national-admin-procedures/internal/dataset"
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
	"github.com/rtoki/japan-national-admin-procedures/internal/handler"
	"github.com/rtoki/japan-national-admin-procedures/internal/router"
	"github.com/rtoki/japan-national-admin-procedures/internal/usecase"
)

// envelope mirrors the server's JSON response wrapper.
type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TestServerHTTP boots the full server over a small synthetic survey and
// exercises the HTTP surface end to end.
// 実行方法: go test -tags integration ./test/integration
func TestServerHTTP(t *testing.T) {
	csvPath := writeSurveyFixture(t)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo := dataset.NewRepository(csvPath, filepath.Join(t.TempDir(), "snapshot.db"), logger)
	table, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}

	query := usecase.NewQueryUsecase(table, logger)

	healthHandler := handler.NewHealthHandler(query)
	datasetHandler := handler.NewDatasetHandler(query)
	queryHandler := handler.NewQueryHandler(query)
	procedureHandler := handler.NewProcedureHandler(query, 1000)

	const addr = "127.0.0.1:18080"
	h := server.New(
		server.WithHostPorts(addr),
		server.WithTransport(netpoll.NewTransporter),
	)
	router.Setup(h, healthHandler, datasetHandler, queryHandler, procedureHandler)

	go func() {
		if err := h.Run(); err != nil {
			logger.Error("server failed", "error", err)
		}
	}()
	time.Sleep(2 * time.Second)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Shutdown(ctx)
	}()

	baseURL := "http://" + addr
	client := &http.Client{Timeout: 30 * time.Second}

	t.Run("readiness after load", func(t *testing.T) {
		resp, err := client.Get(baseURL + "/health/ready")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
	})

	t.Run("dataset summary", func(t *testing.T) {
		env := getJSON(t, client, baseURL+"/api/v1/dataset/summary")
		var summary struct {
			Procedures  int     `json:"procedures"`
			TotalCount  int64   `json:"total_count"`
			OnlineCount int64   `json:"online_count"`
			OnlineRate  float64 `json:"online_rate"`
		}
		if err := json.Unmarshal(env.Data, &summary); err != nil {
			t.Fatalf("failed to decode summary: %v", err)
		}
		if summary.Procedures != 4 {
			t.Errorf("procedures = %d, want 4", summary.Procedures)
		}
		if summary.TotalCount != 1800 {
			t.Errorf("total_count = %d, want 1800", summary.TotalCount)
		}
		if summary.OnlineCount != 700 {
			t.Errorf("online_count = %d, want 700", summary.OnlineCount)
		}
	})

	t.Run("aggregate online status", func(t *testing.T) {
		env := postJSON(t, client, baseURL+"/api/v1/query/aggregate", map[string]any{
			"column": entity.ColOnlineStatus,
		})
		var ft struct {
			Entries []struct {
				Label string `json:"label"`
				Count int    `json:"count"`
			} `json:"entries"`
			Total int `json:"total"`
		}
		if err := json.Unmarshal(env.Data, &ft); err != nil {
			t.Fatalf("failed to decode frequency table: %v", err)
		}
		if ft.Total != 4 {
			t.Errorf("total = %d, want 4", ft.Total)
		}
		// The leading digits of the raw survey labels are normalized away,
		// so 1実施済 and 実施済 land in one entry.
		counts := map[string]int{}
		for _, e := range ft.Entries {
			counts[e.Label] = e.Count
		}
		if counts["実施済"] != 3 {
			t.Errorf("実施済 = %d, want 3 (raw label prefixes merged)", counts["実施済"])
		}
		if counts["未実施"] != 1 {
			t.Errorf("未実施 = %d, want 1", counts["未実施"])
		}
	})

	t.Run("filtered search with paging", func(t *testing.T) {
		env := postJSON(t, client, baseURL+"/api/v1/procedures/search", map[string]any{
			"filter":    map[string]any{"ministries": []string{"総務省"}},
			"page":      1,
			"page_size": 10,
		})
		var page struct {
			Items []struct {
				ID       string `json:"id"`
				Ministry string `json:"ministry"`
			} `json:"items"`
			TotalCount int `json:"totalCount"`
		}
		if err := json.Unmarshal(env.Data, &page); err != nil {
			t.Fatalf("failed to decode page: %v", err)
		}
		if page.TotalCount != 2 {
			t.Fatalf("totalCount = %d, want 2", page.TotalCount)
		}
		for _, it := range page.Items {
			if it.Ministry != "総務省" {
				t.Errorf("item %s ministry = %q, want 総務省", it.ID, it.Ministry)
			}
		}
	})

	t.Run("procedure detail", func(t *testing.T) {
		env := getJSON(t, client, baseURL+"/api/v1/procedures/1-1")
		var detail struct {
			ID     string `json:"id"`
			Fields []struct {
				Key   string `json:"key"`
				Value string `json:"value"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(env.Data, &detail); err != nil {
			t.Fatalf("failed to decode detail: %v", err)
		}
		if detail.ID != "1-1" {
			t.Errorf("id = %q, want 1-1", detail.ID)
		}
		if len(detail.Fields) == 0 {
			t.Error("expected a non-empty field projection")
		}
	})

	t.Run("unknown procedure is 404", func(t *testing.T) {
		resp, err := client.Get(baseURL + "/api/v1/procedures/no-such-id")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.StatusCode)
		}
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if env.Code != "NOT_FOUND" {
			t.Errorf("code = %q, want NOT_FOUND", env.Code)
		}
	})

	t.Run("csv export carries a BOM", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"filter": map[string]any{"search": "登記"},
		})
		resp, err := client.Post(baseURL+"/api/v1/export", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/csv") {
			t.Errorf("content type = %q, want text/csv", ct)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
			t.Error("export should start with a UTF-8 BOM")
		}
	})
}

// TestMinistryStatsLimitHTTP boots the server over a survey spanning 25
// ministries and checks the ministry table's presentation cap.
func TestMinistryStatsLimitHTTP(t *testing.T) {
	csvPath := writeManyMinistriesFixture(t, 25)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo := dataset.NewRepository(csvPath, filepath.Join(t.TempDir(), "snapshot.db"), logger)
	table, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}

	query := usecase.NewQueryUsecase(table, logger)

	const addr = "127.0.0.1:18081"
	h := server.New(
		server.WithHostPorts(addr),
		server.WithTransport(netpoll.NewTransporter),
	)
	router.Setup(h,
		handler.NewHealthHandler(query),
		handler.NewDatasetHandler(query),
		handler.NewQueryHandler(query),
		handler.NewProcedureHandler(query, 1000),
	)

	go func() {
		if err := h.Run(); err != nil {
			logger.Error("server failed", "error", err)
		}
	}()
	time.Sleep(2 * time.Second)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Shutdown(ctx)
	}()

	baseURL := "http://" + addr
	client := &http.Client{Timeout: 30 * time.Second}

	fetch := func(t *testing.T, url string) int {
		t.Helper()
		env := postJSON(t, client, url, map[string]any{})
		var list struct {
			Items      []json.RawMessage `json:"items"`
			TotalCount int               `json:"totalCount"`
		}
		if err := json.Unmarshal(env.Data, &list); err != nil {
			t.Fatalf("failed to decode list: %v", err)
		}
		return len(list.Items)
	}

	t.Run("default caps the table at 20", func(t *testing.T) {
		if got := fetch(t, baseURL+"/api/v1/query/ministry-stats"); got != 20 {
			t.Errorf("items = %d, want 20", got)
		}
	})

	t.Run("explicit limit overrides the default", func(t *testing.T) {
		if got := fetch(t, baseURL+"/api/v1/query/ministry-stats?limit=3"); got != 3 {
			t.Errorf("items = %d, want 3", got)
		}
	})
}

// writeManyMinistriesFixture writes a survey CSV with one procedure per
// synthetic ministry and returns its path.
func writeManyMinistriesFixture(t *testing.T, ministries int) string {
	t.Helper()

	colIdx := make(map[string]int, len(entity.Columns))
	for i, col := range entity.Columns {
		colIdx[col] = i
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	buf.WriteString("調査票,令和三年度\n")
	buf.WriteString(strings.Join(entity.Columns, ",") + "\n")

	w := csv.NewWriter(&buf)
	for i := 0; i < ministries; i++ {
		cells := make([]string, len(entity.Columns))
		cells[colIdx[entity.ColID]] = fmt.Sprintf("%d-1", i+1)
		cells[colIdx[entity.ColMinistry]] = fmt.Sprintf("第%02d省", i+1)
		cells[colIdx[entity.ColName]] = fmt.Sprintf("手続%02d", i+1)
		cells[colIdx[entity.ColTotalCount]] = "100"
		cells[colIdx[entity.ColOnlineCount]] = fmt.Sprintf("%d", i+1)
		if err := w.Write(cells); err != nil {
			t.Fatalf("write fixture row: %v", err)
		}
	}
	w.Flush()

	path := filepath.Join(t.TempDir(), "survey.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// writeSurveyFixture writes a four-row survey CSV in the source layout and
// returns its path.
func writeSurveyFixture(t *testing.T) string {
	t.Helper()

	colIdx := make(map[string]int, len(entity.Columns))
	for i, col := range entity.Columns {
		colIdx[col] = i
	}
	row := func(values map[string]string) []string {
		cells := make([]string, len(entity.Columns))
		for col, v := range values {
			i, ok := colIdx[col]
			if !ok {
				t.Fatalf("unknown column %q in fixture", col)
			}
			cells[i] = v
		}
		return cells
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	buf.WriteString("調査票,令和三年度\n")
	buf.WriteString(strings.Join(entity.Columns, ",") + "\n")

	w := csv.NewWriter(&buf)
	rows := [][]string{
		row(map[string]string{
			entity.ColID:           "1-1",
			entity.ColMinistry:     "総務省",
			entity.ColName:         "住民票の写しの交付請求",
			entity.ColOnlineStatus: "1実施済",
			entity.ColTotalCount:   "1000",
			entity.ColOnlineCount:  "400",
			entity.ColOfflineCount: "600",
		}),
		row(map[string]string{
			entity.ColID:           "1-2",
			entity.ColMinistry:     "総務省",
			entity.ColName:         "電波利用の申請",
			entity.ColOnlineStatus: "実施済",
			entity.ColTotalCount:   "500",
			entity.ColOnlineCount:  "250",
			entity.ColOfflineCount: "250",
		}),
		row(map[string]string{
			entity.ColID:           "2-1",
			entity.ColMinistry:     "法務省",
			entity.ColName:         "不動産登記の申請",
			entity.ColOnlineStatus: "実施済",
			entity.ColTotalCount:   "200",
			entity.ColOnlineCount:  "50",
			entity.ColOfflineCount: "150",
		}),
		row(map[string]string{
			entity.ColID:           "3-1",
			entity.ColMinistry:     "財務省",
			entity.ColName:         "酒類販売業免許の申請",
			entity.ColOnlineStatus: "2未実施",
			entity.ColTotalCount:   "100",
			entity.ColOfflineCount: "100",
		}),
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			t.Fatalf("write fixture row: %v", err)
		}
	}
	w.Flush()

	path := filepath.Join(t.TempDir(), "survey.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func getJSON(t *testing.T, client *http.Client, url string) envelope {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: status %d, body: %s", url, resp.StatusCode, string(body))
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("GET %s: decode: %v", url, err)
	}
	return env
}

func postJSON(t *testing.T, client *http.Client, url string, body any) envelope {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s: status %d, body: %s", url, resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("POST %s: decode: %v", url, err)
	}
	return env
}
