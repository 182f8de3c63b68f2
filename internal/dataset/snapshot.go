package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// The snapshot is a single-table SQLite file standing in for the original
// CSV: parsed once, read back on subsequent startups. It is a cache, never
// a source of truth; deleting it only costs a re-parse.

const snapshotVersion = "1"

func openSnapshot(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	// The snapshot is accessed by a single process.
	db.SetMaxOpenConns(1)
	return db, nil
}

// writeSnapshot persists the parsed rows. The file is rebuilt from scratch
// inside one transaction so a crash never leaves a half-written snapshot
// that passes the version check.
func writeSnapshot(ctx context.Context, path string, rows []*entity.Procedure) error {
	db, err := openSnapshot(path)
	if err != nil {
		return err
	}
	defer db.Close()

	ddl := []string{
		`DROP TABLE IF EXISTS procedures`,
		`DROP TABLE IF EXISTS meta`,
		createProceduresSQL(),
		`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("snapshot ddl: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	insert, err := tx.PrepareContext(ctx, insertProcedureSQL())
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer insert.Close()

	for seq, p := range rows {
		args := make([]any, 0, len(entity.Columns)+2)
		args = append(args, seq)
		for _, col := range entity.Columns {
			switch col {
			case entity.ColID:
				args = append(args, nullString(p.ID))
			case entity.ColTotalCount:
				args = append(args, p.TotalCount)
			case entity.ColOnlineCount:
				args = append(args, p.OnlineCount)
			case entity.ColOfflineCount:
				args = append(args, p.OfflineCount)
			default:
				v, ok := p.Values[col]
				if ok {
					args = append(args, v)
				} else {
					args = append(args, nil)
				}
			}
		}
		args = append(args, p.OnlineRate)
		if _, err := insert.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert snapshot row %d: %w", seq, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('version', ?), ('rows', ?)`,
		snapshotVersion, fmt.Sprintf("%d", len(rows)),
	); err != nil {
		return fmt.Errorf("write snapshot meta: %w", err)
	}

	return tx.Commit()
}

// readSnapshot loads the table back in original row order.
func readSnapshot(ctx context.Context, path string) ([]*entity.Procedure, error) {
	db, err := openSnapshot(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var version string
	err = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&version)
	if err != nil {
		return nil, fmt.Errorf("read snapshot meta: %w", err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %q, want %q", version, snapshotVersion)
	}

	rowsQ, err := db.QueryContext(ctx, selectProceduresSQL())
	if err != nil {
		return nil, fmt.Errorf("read snapshot rows: %w", err)
	}
	defer rowsQ.Close()

	var out []*entity.Procedure
	for rowsQ.Next() {
		cells := make([]sql.NullString, len(entity.Columns))
		var rate float64
		dest := make([]any, 0, len(entity.Columns)+1)
		for i := range cells {
			dest = append(dest, &cells[i])
		}
		dest = append(dest, &rate)
		if err := rowsQ.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		p := &entity.Procedure{Values: make(map[string]string, len(entity.Columns))}
		for i, col := range entity.Columns {
			if !cells[i].Valid {
				continue
			}
			switch col {
			case entity.ColID:
				p.ID = cells[i].String
			case entity.ColTotalCount:
				p.TotalCount = parseCount(cells[i].String)
			case entity.ColOnlineCount:
				p.OnlineCount = parseCount(cells[i].String)
			case entity.ColOfflineCount:
				p.OfflineCount = parseCount(cells[i].String)
			default:
				p.Values[col] = cells[i].String
			}
		}
		p.OnlineRate = rate
		out = append(out, p)
	}
	return out, rowsQ.Err()
}

func createProceduresSQL() string {
	cols := make([]string, 0, len(entity.Columns)+2)
	cols = append(cols, "seq INTEGER PRIMARY KEY")
	for _, col := range entity.Columns {
		typ := "TEXT"
		if entity.NumericColumns[col] {
			typ = "INTEGER"
		}
		cols = append(cols, fmt.Sprintf("%s %s", quoteIdent(col), typ))
	}
	cols = append(cols, quoteIdent(entity.ColOnlineRate)+" REAL")
	return fmt.Sprintf("CREATE TABLE procedures (%s)", strings.Join(cols, ", "))
}

func insertProcedureSQL() string {
	names := make([]string, 0, len(entity.Columns)+2)
	names = append(names, "seq")
	for _, col := range entity.Columns {
		names = append(names, quoteIdent(col))
	}
	names = append(names, quoteIdent(entity.ColOnlineRate))
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	return fmt.Sprintf("INSERT INTO procedures (%s) VALUES (%s)", strings.Join(names, ", "), marks)
}

func selectProceduresSQL() string {
	names := make([]string, 0, len(entity.Columns)+1)
	for _, col := range entity.Columns {
		names = append(names, quoteIdent(col))
	}
	names = append(names, quoteIdent(entity.ColOnlineRate))
	return fmt.Sprintf("SELECT %s FROM procedures ORDER BY seq", strings.Join(names, ", "))
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
