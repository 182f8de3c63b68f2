package usecase

import (
	"testing"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

func filterFixture() *entity.Table {
	rows := []*entity.Procedure{
		{ID: "A-1", Values: map[string]string{
			entity.ColMinistry:     "総務省",
			entity.ColOnlineStatus: "1実施済",
			entity.ColName:         "住民基本台帳の閲覧",
		}, TotalCount: 500},
		{ID: "A-2", Values: map[string]string{
			entity.ColMinistry:     "総務省",
			entity.ColOnlineStatus: "2未実施",
			entity.ColName:         "電波利用の申請",
		}, TotalCount: 0},
		{ID: "B-1", Values: map[string]string{
			entity.ColMinistry:     "法務省",
			entity.ColOnlineStatus: "1実施済",
			entity.ColName:         "登記事項証明書の交付請求",
		}, TotalCount: 2000000},
		{ID: "B-2", Values: map[string]string{
			entity.ColOnlineStatus: "2未実施",
			entity.ColName:         "ＮＴＴ関連手続",
		}, TotalCount: 12},
	}
	return entity.NewTable(rows)
}

func TestFilterEmptyPredicates(t *testing.T) {
	table := filterFixture()
	got := Filter(table, domain.FilterPredicates{})
	if got != table {
		t.Error("empty predicates must return the source table unchanged")
	}
}

func TestFilterCategorical(t *testing.T) {
	table := filterFixture()

	tests := []struct {
		name    string
		p       domain.FilterPredicates
		wantIDs []string
	}{
		{
			name:    "府省庁単独",
			p:       domain.FilterPredicates{Ministries: []string{"総務省"}},
			wantIDs: []string{"A-1", "A-2"},
		},
		{
			name:    "府省庁の複数選択は和集合",
			p:       domain.FilterPredicates{Ministries: []string{"総務省", "法務省"}},
			wantIDs: []string{"A-1", "A-2", "B-1"},
		},
		{
			name: "フィールド間はAND",
			p: domain.FilterPredicates{
				Ministries: []string{"総務省"},
				Statuses:   []string{"1実施済"},
			},
			wantIDs: []string{"A-1"},
		},
		{
			name:    "欠損セルは選択に一致しない",
			p:       domain.FilterPredicates{Ministries: []string{"法務省"}},
			wantIDs: []string{"B-1"},
		},
		{
			name:    "一致なしは空集合",
			p:       domain.FilterPredicates{Ministries: []string{"厚生労働省"}},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(table, tt.p)
			assertIDs(t, got, tt.wantIDs)
		})
	}
}

func TestFilterCountBuckets(t *testing.T) {
	// Every sample count must land in exactly one bucket.
	counts := []int64{0, 5, 50, 500, 5000, 50000, 500000, 5000000}
	for _, v := range counts {
		hits := 0
		for _, b := range entity.CountBuckets {
			if b.Contains(v) {
				hits++
			}
		}
		if hits != 1 {
			t.Errorf("count %d matched %d buckets, want exactly 1", v, hits)
		}
	}

	// Boundaries are half-open: 10 belongs to [10,100), not [1,10).
	lower, _ := entity.BucketByName("1件以上10件未満")
	upper, _ := entity.BucketByName("10件以上100件未満")
	if lower.Contains(10) {
		t.Error("10 must not fall in 1件以上10件未満")
	}
	if !upper.Contains(10) {
		t.Error("10 must fall in 10件以上100件未満")
	}

	table := filterFixture()

	got := Filter(table, domain.FilterPredicates{CountRanges: []string{"0件もしくは不明"}})
	assertIDs(t, got, []string{"A-2"})

	// Multiple ranges form a union.
	got = Filter(table, domain.FilterPredicates{
		CountRanges: []string{"100件以上1000件未満", "100万件以上"},
	})
	assertIDs(t, got, []string{"A-1", "B-1"})
}

func TestFilterSearch(t *testing.T) {
	table := filterFixture()

	got := Filter(table, domain.FilterPredicates{Search: "登記"})
	assertIDs(t, got, []string{"B-1"})

	// NFKC folding matches full-width Latin against half-width lowercase.
	got = Filter(table, domain.FilterPredicates{Search: "ntt"})
	assertIDs(t, got, []string{"B-2"})

	// Search is AND-ed with the categorical predicates.
	got = Filter(table, domain.FilterPredicates{
		Ministries: []string{"総務省"},
		Search:     "登記",
	})
	assertIDs(t, got, nil)
}

func TestFilterMonotonicAndIdempotent(t *testing.T) {
	table := filterFixture()
	predicates := []domain.FilterPredicates{
		{},
		{Ministries: []string{"総務省"}},
		{Statuses: []string{"2未実施"}, CountRanges: []string{"10件以上100件未満"}},
		{Search: "申請"},
	}

	for _, p := range predicates {
		once := Filter(table, p)
		if once.Len() > table.Len() {
			t.Errorf("filter grew the table: %d > %d", once.Len(), table.Len())
		}
		twice := Filter(once, p)
		if twice.Len() != once.Len() {
			t.Errorf("filter not idempotent: %d != %d", twice.Len(), once.Len())
		}
		for i, row := range twice.Rows() {
			if row != once.Rows()[i] {
				t.Errorf("row %d changed on second application", i)
			}
		}
	}
}

func TestFilterPreservesSourceOrder(t *testing.T) {
	table := filterFixture()
	got := Filter(table, domain.FilterPredicates{Statuses: []string{"2未実施"}})
	assertIDs(t, got, []string{"A-2", "B-2"})
}

func assertIDs(t *testing.T, table *entity.Table, want []string) {
	t.Helper()
	var got []string
	for _, row := range table.Rows() {
		got = append(got, row.ID)
	}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}
