package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// The survey CSV ships with a UTF-8 BOM and two preamble rows before the
// data; columns are assigned positionally from entity.Columns.
const skipRows = 2

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads the survey CSV into procedure records. Missing cells
// ("", "nan", "NaN") are dropped, count columns are coerced to non-negative
// integers (malformed values become 0) and the derived online count and
// online rate are computed when the source does not carry them.
func ParseCSV(r io.Reader) ([]*entity.Procedure, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1 // the preamble rows have a different width
	cr.LazyQuotes = true

	rows := make([]*entity.Procedure, 0, 1024)
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line+1, err)
		}
		line++
		if line <= skipRows {
			continue
		}
		rows = append(rows, recordFromCells(rec))
	}
	return rows, nil
}

func recordFromCells(cells []string) *entity.Procedure {
	p := &entity.Procedure{Values: make(map[string]string, len(entity.Columns))}
	onlinePresent := false

	for i, col := range entity.Columns {
		if i >= len(cells) {
			break
		}
		cell := strings.TrimSpace(cells[i])
		if isMissing(cell) {
			continue
		}
		switch col {
		case entity.ColID:
			p.ID = cell
		case entity.ColTotalCount:
			p.TotalCount = parseCount(cell)
		case entity.ColOnlineCount:
			p.OnlineCount = parseCount(cell)
			onlinePresent = true
		case entity.ColOfflineCount:
			p.OfflineCount = parseCount(cell)
		default:
			p.Values[col] = cell
		}
	}

	if !onlinePresent && p.TotalCount > p.OfflineCount {
		p.OnlineCount = p.TotalCount - p.OfflineCount
	}
	p.OnlineRate = onlineRate(p.OnlineCount, p.TotalCount)
	return p
}

// isMissing folds the dataset's null sentinels into a single notion of
// "missing" at the ingestion boundary.
func isMissing(cell string) bool {
	return cell == "" || strings.EqualFold(cell, "nan")
}

// parseCount coerces a count cell to a non-negative integer; malformed
// values become 0 rather than rejecting the row.
func parseCount(cell string) int64 {
	cell = strings.ReplaceAll(cell, ",", "")
	n, err := strconv.ParseInt(cell, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// onlineRate computes online/total*100 rounded to two decimals, 0 when the
// total is zero.
func onlineRate(online, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(online)/float64(total)*100*100) / 100
}
