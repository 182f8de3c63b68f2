package usecase

import (
	"regexp"
	"strings"
)

// leadingCodePattern matches the ordinal classification code some survey
// answers carry ("1実施済", "2-1申請等に基づく処分通知等").
var leadingCodePattern = regexp.MustCompile(`^\s*\d+(?:-\d+)?\s*`)

// codePrefixedFields are the fields whose values carry a leading code.
var codePrefixedFields = map[string]bool{
	"手続類型":         true,
	"オンライン化の実施状況": true,
}

// labelSubstitutions absorbs known spelling variants, scoped per field.
var labelSubstitutions = map[string][][2]string{
	"手続類型": {
		{"交付等(民間手続)", "交付等（民間手続）"},
	},
}

// NormalizeLabel canonicalizes a raw categorical value for display and
// aggregation. It is idempotent: a canonical value passes through
// unchanged, so values may safely be renormalized.
//
// Empty and "nan" values are returned as-is; callers drop them upstream.
func NormalizeLabel(key, raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return s
	}

	// Canonical punctuation for this dataset is full-width parentheses.
	s = strings.ReplaceAll(s, "(", "（")
	s = strings.ReplaceAll(s, ")", "）")

	if codePrefixedFields[key] {
		s = leadingCodePattern.ReplaceAllString(s, "")
	}

	for _, sub := range labelSubstitutions[key] {
		s = strings.ReplaceAll(s, sub[0], sub[1])
	}
	return s
}
