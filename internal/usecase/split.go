package usecase

import "strings"

// multiValueDelimiter reports whether r separates tokens inside a
// multi-value cell. The dataset mixes the ideographic comma with ASCII and
// full-width commas and both semicolon forms; all are equivalent.
func multiValueDelimiter(r rune) bool {
	switch r {
	case '、', ',', '，', ';', '；':
		return true
	}
	return false
}

// SplitMultiValue explodes a delimiter-joined cell into trimmed tokens in
// first-occurrence order. Null-like input yields nil; empty segments are
// dropped; duplicates are preserved on purpose so per-row token counts stay
// truthful when aggregated.
func SplitMultiValue(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}

	var out []string
	for _, seg := range strings.FieldsFunc(s, multiValueDelimiter) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// SplitSemicolonList explodes a semicolon-joined cell. System and organ
// names legitimately contain commas, so only ';' and '；' separate tokens
// in these columns.
func SplitSemicolonList(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}

	var out []string
	for _, seg := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '；' }) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		out = append(out, seg)
	}
	return out
}
