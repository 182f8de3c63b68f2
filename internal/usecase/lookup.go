package usecase

import (
	"github.com/rtoki/japan-national-admin-procedures/internal/domain"
	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// missingPlaceholder is rendered for declared fields the record does not
// carry; the detail view never omits a field.
const missingPlaceholder = "—"

// FindByID returns the first record with the given identifier, or a
// NotFound domain error so the caller can render a graceful empty state.
func FindByID(table *entity.Table, id string) (*entity.Procedure, error) {
	if id == "" {
		return nil, domain.NewInvalidInputError("procedure id is required")
	}
	p, ok := table.ByID(id)
	if !ok {
		return nil, domain.NewNotFoundError("procedure", id)
	}
	return p, nil
}

// Project renders every declared field of the record in the given order,
// substituting a placeholder for missing values and attaching the survey
// definition of each field.
func Project(p *entity.Procedure, fieldOrder []string) []entity.FieldValue {
	out := make([]entity.FieldValue, 0, len(fieldOrder))
	for _, key := range fieldOrder {
		value, ok := p.Field(key)
		if !ok || value == "" {
			value = missingPlaceholder
		}
		out = append(out, entity.FieldValue{
			Key:        key,
			Value:      value,
			Definition: entity.FieldDefs[key],
		})
	}
	return out
}
