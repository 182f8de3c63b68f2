package usecase

import (
	"testing"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

func TestFindByID(t *testing.T) {
	table := entity.NewTable([]*entity.Procedure{
		{ID: "10-1", Values: map[string]string{entity.ColName: "旅券の発給申請"}},
		{ID: "10-2", Values: map[string]string{entity.ColName: "査証の申請"}},
		{ID: "10-1", Values: map[string]string{entity.ColName: "重複した行"}},
	})

	p, err := FindByID(table, "10-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	// Duplicate identifiers resolve to the first occurrence.
	if got, _ := p.Field(entity.ColName); got != "旅券の発給申請" {
		t.Errorf("name = %q, want first occurrence", got)
	}

	if _, err := FindByID(table, "99-9"); !domain.IsNotFound(err) {
		t.Errorf("missing id should yield a not-found error, got %v", err)
	}
	if _, err := FindByID(table, ""); !domain.IsInvalidInput(err) {
		t.Errorf("empty id should yield an invalid-input error, got %v", err)
	}
}

func TestProject(t *testing.T) {
	p := &entity.Procedure{
		ID: "20-3",
		Values: map[string]string{
			entity.ColName:     "在留資格認定証明書の交付申請",
			entity.ColMinistry: "法務省",
		},
		TotalCount: 1234,
		OnlineRate: 56.78,
	}

	fields := Project(p, entity.DetailFieldOrder)

	if len(fields) != len(entity.DetailFieldOrder) {
		t.Fatalf("projected %d fields, want %d", len(fields), len(entity.DetailFieldOrder))
	}

	byKey := make(map[string]entity.FieldValue, len(fields))
	for i, f := range fields {
		if f.Key != entity.DetailFieldOrder[i] {
			t.Errorf("field %d = %q, want declared order %q", i, f.Key, entity.DetailFieldOrder[i])
		}
		byKey[f.Key] = f
	}

	if got := byKey[entity.ColMinistry].Value; got != "法務省" {
		t.Errorf("ministry = %q", got)
	}
	if got := byKey[entity.ColTotalCount].Value; got != "1234" {
		t.Errorf("total count = %q, want formatted numeric", got)
	}
	if got := byKey[entity.ColOnlineRate].Value; got != "56.78" {
		t.Errorf("online rate = %q", got)
	}
	if got := byKey[entity.ColLawName].Value; got != "—" {
		t.Errorf("missing field = %q, want placeholder", got)
	}
	if def := byKey[entity.ColMinistry].Definition; def == "" {
		t.Error("ministry should carry a survey definition")
	}
}
