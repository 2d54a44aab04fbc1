package core

import (
	"strings"
	"time"
)

// KindAny disables kind filtering in a FilterSpec.
const KindAny Kind = ""

// FilterSpec describes the list-screen filter. All predicates are
// optional and combined with AND. The date bounds are always applied
// as given: a caller that wants "all time" passes explicit wide bounds,
// the engine never special-cases an absent bound.
type FilterSpec struct {
	Kind             Kind // KindAny, Income or Expense
	CategoryContains string
	From             Date // inclusive
	To               Date // inclusive
	SearchText       string
}

// DefaultSpec returns the spec the list screen starts from: any kind,
// no text filters, dated from the first day of now's month through
// now's calendar day.
func DefaultSpec(now time.Time) FilterSpec {
	return FilterSpec{
		From: NewDate(now.Year(), int(now.Month()), 1),
		To:   DateOf(now),
	}
}

// ApplyFilters returns the transactions matching every active
// predicate of spec, preserving input order. The result is always a
// fresh slice; empty input yields an empty result, never an error.
func ApplyFilters(txs []Transaction, spec FilterSpec) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if spec.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (spec FilterSpec) matches(t Transaction) bool {
	if spec.Kind != KindAny && t.Kind != spec.Kind {
		return false
	}
	if spec.CategoryContains != "" && !containsFold(t.Category, spec.CategoryContains) {
		return false
	}
	// Calendar-day comparison; time-of-day never participates.
	d := t.Date.Truncated()
	if d.Before(spec.From) || d.After(spec.To) {
		return false
	}
	if spec.SearchText != "" &&
		!containsFold(t.Description, spec.SearchText) &&
		!containsFold(t.Category, spec.SearchText) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
