package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// ExportCSV serializes rows to CSV with a UTF-8 BOM (the dataset's
// convention, so spreadsheets open it correctly), a header row and every
// requested column per row. Missing cells render as empty fields. Output is
// byte-for-byte stable for identical input.
func ExportCSV(rows []*entity.Procedure, columns []string) ([]byte, error) {
	if len(columns) == 0 {
		columns = entity.ExportColumns
	}
	for _, col := range columns {
		if !entity.HasColumn(col) {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown column %q", col))
		}
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, domain.NewInternalError(err)
	}

	record := make([]string, len(columns))
	for _, p := range rows {
		for i, col := range columns {
			if v, ok := p.Field(col); ok {
				record[i] = v
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return nil, domain.NewInternalError(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, domain.NewInternalError(err)
	}
	return buf.Bytes(), nil
}
