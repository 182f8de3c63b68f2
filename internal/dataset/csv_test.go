package dataset

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// buildCSV assembles a survey CSV in the source layout: UTF-8 BOM, two
// preamble rows, then positional data rows.
func buildCSV(t *testing.T, dataRows []map[string]string) []byte {
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
	for _, row := range dataRows {
		cells := make([]string, len(entity.Columns))
		for col, v := range row {
			i, ok := colIdx[col]
			if !ok {
				t.Fatalf("unknown column %q in fixture", col)
			}
			cells[i] = v
		}
		if err := w.Write(cells); err != nil {
			t.Fatalf("write fixture row: %v", err)
		}
	}
	w.Flush()
	return buf.Bytes()
}

func TestParseCSV(t *testing.T) {
	data := buildCSV(t, []map[string]string{
		{
			entity.ColID:           "100-1",
			entity.ColMinistry:     "総務省",
			entity.ColName:         "住民票の写しの交付請求",
			entity.ColTotalCount:   "1,000",
			entity.ColOnlineCount:  "250",
			entity.ColOfflineCount: "750",
		},
		{
			entity.ColID:         "100-2",
			entity.ColMinistry:   "nan",
			entity.ColName:       "  前後に空白  ",
			entity.ColTotalCount: "NaN",
		},
	})

	rows, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (preamble skipped)", len(rows))
	}

	p := rows[0]
	if p.ID != "100-1" {
		t.Errorf("id = %q", p.ID)
	}
	if p.TotalCount != 1000 {
		t.Errorf("total = %d, want thousands separator stripped", p.TotalCount)
	}
	if p.OnlineCount != 250 || p.OfflineCount != 750 {
		t.Errorf("counts = %d/%d", p.OnlineCount, p.OfflineCount)
	}
	if p.OnlineRate != 25.0 {
		t.Errorf("rate = %v, want 25.0", p.OnlineRate)
	}

	q := rows[1]
	if _, ok := q.Values[entity.ColMinistry]; ok {
		t.Error("nan cell must be dropped as missing")
	}
	if got := q.Values[entity.ColName]; got != "前後に空白" {
		t.Errorf("name = %q, want trimmed", got)
	}
	if q.TotalCount != 0 || q.OnlineRate != 0 {
		t.Errorf("missing counts = %d rate %v, want zero", q.TotalCount, q.OnlineRate)
	}
}

func TestParseCSVDerivesOnlineCount(t *testing.T) {
	data := buildCSV(t, []map[string]string{
		{
			entity.ColID:           "200-1",
			entity.ColTotalCount:   "300",
			entity.ColOfflineCount: "100",
			// online count column left missing
		},
	})

	rows, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	p := rows[0]
	if p.OnlineCount != 200 {
		t.Errorf("derived online count = %d, want total minus offline 200", p.OnlineCount)
	}
	if p.OnlineRate != 66.67 {
		t.Errorf("rate = %v, want 66.67", p.OnlineRate)
	}
}

func TestParseCSVCoercesMalformedCounts(t *testing.T) {
	data := buildCSV(t, []map[string]string{
		{
			entity.ColID:          "300-1",
			entity.ColTotalCount:  "不明",
			entity.ColOnlineCount: "-5",
		},
	})

	rows, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	p := rows[0]
	if p.TotalCount != 0 || p.OnlineCount != 0 {
		t.Errorf("coerced counts = %d/%d, want 0/0", p.TotalCount, p.OnlineCount)
	}
}

func TestParseCSVWithoutBOM(t *testing.T) {
	data := buildCSV(t, []map[string]string{{entity.ColID: "400-1"}})
	rows, err := ParseCSV(bytes.NewReader(data[3:]))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "400-1" {
		t.Errorf("rows = %v", rows)
	}
}

func TestParseCSVEmptyBody(t *testing.T) {
	data := buildCSV(t, nil)
	rows, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
