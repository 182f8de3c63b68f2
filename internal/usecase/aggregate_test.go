package usecase

import (
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

func testRow(id string, values map[string]string) *entity.Procedure {
	return &entity.Procedure{ID: id, Values: values}
}

func TestCountValuesScalar(t *testing.T) {
	rows := []*entity.Procedure{
		testRow("1", map[string]string{entity.ColOnlineStatus: "1実施済"}),
		testRow("2", map[string]string{entity.ColOnlineStatus: "2未実施"}),
		testRow("3", map[string]string{entity.ColOnlineStatus: "1実施済"}),
		testRow("4", map[string]string{}), // missing cell dropped
	}

	ft := CountValues(rows, entity.ColOnlineStatus, entity.ColOnlineStatus)

	if got, _ := ft.Get("実施済"); got != 2 {
		t.Errorf("count(実施済) = %d, want 2", got)
	}
	if got, _ := ft.Get("未実施"); got != 1 {
		t.Errorf("count(未実施) = %d, want 1", got)
	}
	if ft.Total() != 3 {
		t.Errorf("total = %d, want 3 (non-null rows)", ft.Total())
	}
}

func TestCountValuesConservation(t *testing.T) {
	// For a scalar field with no missing cells, counts sum to the row count.
	rows := make([]*entity.Procedure, 0, 30)
	statuses := []string{"1実施済", "2未実施", "3適用除外"}
	for i := 0; i < 30; i++ {
		rows = append(rows, testRow("x", map[string]string{
			entity.ColOnlineStatus: statuses[i%len(statuses)],
		}))
	}
	ft := CountValues(rows, entity.ColOnlineStatus, entity.ColOnlineStatus)
	if ft.Total() != len(rows) {
		t.Errorf("total = %d, want %d", ft.Total(), len(rows))
	}
}

func TestCountValuesMultiValue(t *testing.T) {
	rows := []*entity.Procedure{
		testRow("1", map[string]string{entity.ColAttachments: "住民票、戸籍謄本"}),
		testRow("2", map[string]string{entity.ColAttachments: "住民票"}),
		testRow("3", map[string]string{entity.ColAttachments: "住民票、住民票"}), // duplicates count twice
	}

	ft := CountValues(rows, entity.ColAttachments, entity.ColAttachments)

	if got, _ := ft.Get("住民票"); got != 4 {
		t.Errorf("count(住民票) = %d, want 4", got)
	}
	if ft.Total() != 5 {
		t.Errorf("total = %d, want sum of per-row token counts 5", ft.Total())
	}
}

func TestCountValuesSemicolonColumn(t *testing.T) {
	rows := []*entity.Procedure{
		testRow("1", map[string]string{entity.ColSystemApply: "e-Gov;登記・供託オンライン申請システム、汎用受付等システム対応版"}),
		testRow("2", map[string]string{entity.ColSystemApply: "e-Gov"}),
	}

	ft := CountValues(rows, entity.ColSystemApply, entity.ColSystemApply)

	if got, _ := ft.Get("e-Gov"); got != 2 {
		t.Errorf("count(e-Gov) = %d, want 2", got)
	}
	// The comma stays inside the system name; only semicolons separate.
	if got, _ := ft.Get("登記・供託オンライン申請システム、汎用受付等システム対応版"); got != 1 {
		t.Errorf("comma-bearing system counted %d times, want 1", got)
	}
	if ft.Total() != 3 {
		t.Errorf("total = %d, want 3", ft.Total())
	}
}

func TestCountValuesUnknownColumn(t *testing.T) {
	rows := []*entity.Procedure{testRow("1", map[string]string{entity.ColMinistry: "総務省"})}
	ft := CountValues(rows, "存在しない列", "存在しない列")
	if len(ft.Entries) != 0 {
		t.Errorf("unknown column should yield an empty table, got %v", ft.Entries)
	}
}

func TestApplyOrder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ft := &entity.FrequencyTable{Entries: []entity.FrequencyEntry{
		{Label: "未実施", Count: 5},
		{Label: "実施済", Count: 3},
		{Label: "独自の値", Count: 1},
	}}

	ordered := ApplyOrder(ft, []string{"実施済", "一部実施済", "未実施"}, logger)
	wantLabels := []string{"実施済", "未実施"}
	if !reflect.DeepEqual(ordered.Labels(), wantLabels) {
		t.Errorf("ordered labels = %v, want %v", ordered.Labels(), wantLabels)
	}
	// Values absent from the order are dropped from the ordered view.
	if _, ok := ordered.Get("独自の値"); ok {
		t.Error("label outside the declared order should be dropped")
	}
}

func TestApplyOrderDegenerateFallsBack(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ft := &entity.FrequencyTable{Entries: []entity.FrequencyEntry{
		{Label: "A", Count: 2},
		{Label: "B", Count: 1},
	}}

	got := ApplyOrder(ft, []string{"X", "Y"}, logger)
	if !reflect.DeepEqual(got, ft) {
		t.Errorf("degenerate order must fall back to the unordered table, got %v", got.Entries)
	}
}

func TestTopNWithOther(t *testing.T) {
	ft := &entity.FrequencyTable{Entries: []entity.FrequencyEntry{
		{Label: "A", Count: 10},
		{Label: "B", Count: 8},
		{Label: "C", Count: 8},
		{Label: "D", Count: 1},
	}}

	got := TopNWithOther(ft, 2, "その他")

	if len(got.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(got.Entries))
	}
	if got.Entries[0].Label != "A" || got.Entries[0].Count != 10 {
		t.Errorf("first entry = %+v, want A:10", got.Entries[0])
	}
	// B or C may be kept at the tie boundary; the Other sum must hold either way.
	if other := got.Entries[2]; other.Label != "その他" || other.Count != 9 {
		t.Errorf("other bucket = %+v, want その他:9", other)
	}
	if got.Total() != ft.Total() {
		t.Errorf("total = %d, want conserved %d", got.Total(), ft.Total())
	}
}

func TestTopNWithOtherConservation(t *testing.T) {
	ft := &entity.FrequencyTable{Entries: []entity.FrequencyEntry{
		{Label: "A", Count: 5}, {Label: "B", Count: 4}, {Label: "C", Count: 3},
		{Label: "D", Count: 2}, {Label: "E", Count: 1},
	}}
	for n := 0; n <= 6; n++ {
		got := TopNWithOther(ft, n, "その他")
		if got.Total() != ft.Total() {
			t.Errorf("top=%d: total = %d, want %d", n, got.Total(), ft.Total())
		}
	}
}

func TestTopNWithOtherNoBucketWhenSmall(t *testing.T) {
	ft := &entity.FrequencyTable{Entries: []entity.FrequencyEntry{
		{Label: "A", Count: 2},
		{Label: "B", Count: 1},
	}}
	got := TopNWithOther(ft, 5, "その他")
	if _, ok := got.Get("その他"); ok {
		t.Error("no Other bucket expected when distinct labels <= top")
	}
	if len(got.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(got.Entries))
	}
}

func TestCrosstabColumns(t *testing.T) {
	rows := []*entity.Procedure{
		testRow("1", map[string]string{entity.ColActor: "国", entity.ColReceiver: "国民等"}),
		testRow("2", map[string]string{entity.ColActor: "国", entity.ColReceiver: "国民等"}),
		testRow("3", map[string]string{entity.ColActor: "地方等", entity.ColReceiver: "国"}),
		testRow("4", map[string]string{entity.ColActor: "国"}), // missing receiver skipped
	}

	ct := CrosstabColumns(rows, entity.ColActor, entity.ColReceiver)

	if len(ct.RowLabels) != 2 || len(ct.ColLabels) != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", len(ct.RowLabels), len(ct.ColLabels))
	}
	if ct.Counts[0][0] != 2 {
		t.Errorf("counts[国][国民等] = %d, want 2", ct.Counts[0][0])
	}
	if ct.Counts[1][1] != 1 {
		t.Errorf("counts[地方等][国] = %d, want 1", ct.Counts[1][1])
	}
}
