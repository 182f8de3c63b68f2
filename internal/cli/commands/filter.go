package commands

import (
	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/loader"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/types"
)

// filterFlags holds the shared filter flag values of one command.
type filterFlags struct {
	ministries  []string
	statuses    []string
	types       []string
	actors      []string
	receivers   []string
	officeTypes []string
	commonFlags []string
	countRanges []string
	search      string
	filterFile  string
}

// register adds the shared filter flags to a command.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.ministries, "ministry", nil, "filter by 所管府省庁 (repeatable)")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "filter by オンライン化の実施状況")
	cmd.Flags().StringSliceVar(&f.types, "type", nil, "filter by 手続類型")
	cmd.Flags().StringSliceVar(&f.actors, "actor", nil, "filter by 手続主体")
	cmd.Flags().StringSliceVar(&f.receivers, "receiver", nil, "filter by 手続の受け手")
	cmd.Flags().StringSliceVar(&f.officeTypes, "office-type", nil, "filter by 事務区分")
	cmd.Flags().StringSliceVar(&f.commonFlags, "common-flag", nil, "filter by 府省共通手続")
	cmd.Flags().StringSliceVar(&f.countRanges, "count-range", nil, "filter by 総手続件数 bucket, e.g. 100万件以上")
	cmd.Flags().StringVar(&f.search, "search", "", "keyword search across name, law, ministry and more")
	cmd.Flags().StringVarP(&f.filterFile, "filter-file", "f", "", "YAML filter definition (flags override its fields)")
}

// build resolves the flags (and the optional filter file) into one filter.
func (f *filterFlags) build() (types.Filter, error) {
	filter := types.Filter{}
	if f.filterFile != "" {
		loaded, err := loader.LoadFilter(f.filterFile)
		if err != nil {
			return types.Filter{}, err
		}
		filter = loaded
	}

	if len(f.ministries) > 0 {
		filter.Ministries = f.ministries
	}
	if len(f.statuses) > 0 {
		filter.Statuses = f.statuses
	}
	if len(f.types) > 0 {
		filter.Types = f.types
	}
	if len(f.actors) > 0 {
		filter.Actors = f.actors
	}
	if len(f.receivers) > 0 {
		filter.Receivers = f.receivers
	}
	if len(f.officeTypes) > 0 {
		filter.OfficeTypes = f.officeTypes
	}
	if len(f.commonFlags) > 0 {
		filter.CommonFlags = f.commonFlags
	}
	if len(f.countRanges) > 0 {
		filter.CountRanges = f.countRanges
	}
	if f.search != "" {
		filter.Search = f.search
	}
	return filter, nil
}
