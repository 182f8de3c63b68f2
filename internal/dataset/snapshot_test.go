package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

func snapshotRows() []*entity.Procedure {
	return []*entity.Procedure{
		{
			ID: "1-1",
			Values: map[string]string{
				entity.ColMinistry: "総務省",
				entity.ColName:     "住民票の写しの交付請求",
				entity.ColLawName:  "住民基本台帳法",
			},
			TotalCount:   1000,
			OnlineCount:  250,
			OfflineCount: 750,
			OnlineRate:   25.0,
		},
		{
			ID: "1-2",
			Values: map[string]string{
				entity.ColName: "欠損の多い手続",
			},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procedures.db")
	ctx := context.Background()

	want := snapshotRows()
	if err := writeSnapshot(ctx, path, want); err != nil {
		t.Fatalf("writeSnapshot: %v", err)
	}

	got, err := readSnapshot(ctx, path)
	if err != nil {
		t.Fatalf("readSnapshot: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}

	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID {
			t.Errorf("row %d id = %q, want %q", i, g.ID, w.ID)
		}
		if g.TotalCount != w.TotalCount || g.OnlineCount != w.OnlineCount || g.OfflineCount != w.OfflineCount {
			t.Errorf("row %d counts = %d/%d/%d, want %d/%d/%d",
				i, g.TotalCount, g.OnlineCount, g.OfflineCount,
				w.TotalCount, w.OnlineCount, w.OfflineCount)
		}
		if g.OnlineRate != w.OnlineRate {
			t.Errorf("row %d rate = %v, want %v", i, g.OnlineRate, w.OnlineRate)
		}
		if len(g.Values) != len(w.Values) {
			t.Errorf("row %d carries %d values, want %d", i, len(g.Values), len(w.Values))
		}
		for col, v := range w.Values {
			if g.Values[col] != v {
				t.Errorf("row %d %s = %q, want %q", i, col, g.Values[col], v)
			}
		}
	}
}

func TestSnapshotRewriteReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procedures.db")
	ctx := context.Background()

	if err := writeSnapshot(ctx, path, snapshotRows()); err != nil {
		t.Fatalf("writeSnapshot: %v", err)
	}
	if err := writeSnapshot(ctx, path, snapshotRows()[:1]); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	got, err := readSnapshot(ctx, path)
	if err != nil {
		t.Fatalf("readSnapshot: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("rows after rewrite = %d, want 1", len(got))
	}
}

func TestRepositoryLoadFallsBackToCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "procedures.csv")
	snapshotPath := filepath.Join(dir, "procedures.db")

	data := buildCSV(t, []map[string]string{
		{entity.ColID: "9-1", entity.ColMinistry: "財務省", entity.ColTotalCount: "10"},
	})
	if err := os.WriteFile(csvPath, data, 0o644); err != nil {
		t.Fatalf("write fixture csv: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := NewRepository(csvPath, snapshotPath, logger)

	table, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("table len = %d, want 1", table.Len())
	}

	// The first load must have left a readable snapshot behind.
	if _, err := os.Stat(snapshotPath); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}

	// Remove the CSV; the second load must come from the snapshot alone.
	if err := os.Remove(csvPath); err != nil {
		t.Fatalf("remove csv: %v", err)
	}
	table, err = repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load from snapshot: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("snapshot table len = %d, want 1", table.Len())
	}
	p, ok := table.ByID("9-1")
	if !ok {
		t.Fatal("row 9-1 missing after snapshot reload")
	}
	if got, _ := p.Field(entity.ColMinistry); got != "財務省" {
		t.Errorf("ministry = %q", got)
	}
}

func TestRepositoryConvert(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "procedures.csv")
	snapshotPath := filepath.Join(dir, "procedures.db")

	data := buildCSV(t, []map[string]string{
		{entity.ColID: "9-1"},
		{entity.ColID: "9-2"},
	})
	if err := os.WriteFile(csvPath, data, 0o644); err != nil {
		t.Fatalf("write fixture csv: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := NewRepository(csvPath, snapshotPath, logger)

	n, err := repo.Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n != 2 {
		t.Errorf("converted %d rows, want 2", n)
	}

	noSnapshot := NewRepository(csvPath, "", logger)
	if _, err := noSnapshot.Convert(context.Background()); err == nil {
		t.Error("Convert without a snapshot path should fail")
	}
}
