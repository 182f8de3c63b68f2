package usecase

import (
	"testing"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name string
		key  string
		raw  string
		want string
	}{
		{
			name: "オンライン化状況の分類コード除去",
			key:  entity.ColOnlineStatus,
			raw:  "1実施済",
			want: "実施済",
		},
		{
			name: "枝番付き分類コード除去",
			key:  entity.ColType,
			raw:  "2-1申請等に基づく処分通知等",
			want: "申請等に基づく処分通知等",
		},
		{
			name: "半角括弧を全角へ統一",
			key:  entity.ColType,
			raw:  "2-3交付等(民間手続)",
			want: "交付等（民間手続）",
		},
		{
			name: "コード対象外のフィールドは先頭数字を保持",
			key:  entity.ColOfficeType,
			raw:  "第1号法定受託事務",
			want: "第1号法定受託事務",
		},
		{
			name: "前後の空白を除去",
			key:  entity.ColMinistry,
			raw:  "  総務省  ",
			want: "総務省",
		},
		{
			name: "空文字はそのまま",
			key:  entity.ColMinistry,
			raw:  "",
			want: "",
		},
		{
			name: "nan はそのまま",
			key:  entity.ColMinistry,
			raw:  "nan",
			want: "nan",
		},
		{
			name: "NaN は大文字小文字を区別しない",
			key:  entity.ColMinistry,
			raw:  "NaN",
			want: "NaN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLabel(tt.key, tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeLabel(%q, %q) = %q, want %q", tt.key, tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabelIdempotent(t *testing.T) {
	samples := []struct {
		key string
		raw string
	}{
		{entity.ColOnlineStatus, "1実施済"},
		{entity.ColOnlineStatus, "5一部実施済"},
		{entity.ColType, "2-3交付等(民間手続)"},
		{entity.ColType, "申請等"},
		{entity.ColMinistry, " 法務省 "},
		{entity.ColOfficeType, "第2号法定受託事務"},
		{entity.ColMinistry, ""},
		{entity.ColMinistry, "nan"},
	}

	for _, s := range samples {
		once := NormalizeLabel(s.key, s.raw)
		twice := NormalizeLabel(s.key, once)
		if once != twice {
			t.Errorf("normalization not idempotent for (%q, %q): first %q, second %q",
				s.key, s.raw, once, twice)
		}
	}
}
