package generate

import (
	"strconv"
	"strings"
)

// fieldDenyList holds the base identifiers of fields that are factual rather
// than generative: personal identity and date fields never get AI assistance.
var fieldDenyList = map[string]struct{}{
	"name":           {},
	"email":          {},
	"phone":          {},
	"location":       {},
	"start_date":     {},
	"end_date":       {},
	"edu_start_date": {},
	"edu_end_date":   {},
}

// CanGenerate reports whether a field may be offered AI assistance. Repeated
// experience blocks carry a numeric suffix ("location_2"), so the suffix is
// stripped before the deny-list check.
func CanGenerate(fieldID string) bool {
	_, denied := fieldDenyList[baseFieldID(fieldID)]
	return !denied
}

// baseFieldID strips a trailing "_<n>" block suffix, if present.
func baseFieldID(fieldID string) string {
	idx := strings.LastIndex(fieldID, "_")
	if idx <= 0 {
		return fieldID
	}
	if _, err := strconv.Atoi(fieldID[idx+1:]); err != nil {
		return fieldID
	}
	return fieldID[:idx]
}
