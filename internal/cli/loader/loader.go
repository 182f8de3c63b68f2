package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/types"
)

// FilterFile is a saved filter definition loaded from a YAML file, so that
// recurring queries do not have to be retyped as flags.
//
// Example:
//
//	kind: Filter
//	spec:
//	  ministries: [総務省, 法務省]
//	  statuses: [実施済]
//	  countRanges: [100万件以上]
//	  search: 登記
type FilterFile struct {
	Kind string       `yaml:"kind"`
	Spec types.Filter `yaml:"spec"`
}

// LoadFilter loads a filter definition from a YAML file.
func LoadFilter(filepath string) (types.Filter, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return types.Filter{}, fmt.Errorf("failed to read file: %w", err)
	}

	var file FilterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return types.Filter{}, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if file.Kind == "" {
		return types.Filter{}, fmt.Errorf("'kind' field is required")
	}
	if file.Kind != "Filter" {
		return types.Filter{}, fmt.Errorf("invalid kind '%s', must be 'Filter'", file.Kind)
	}

	return file.Spec, nil
}
