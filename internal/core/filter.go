package core

import "strings"

// FilterAll is the wildcard value for category and type criteria. An
// empty string means the same thing.
const FilterAll = "all"

// Criteria narrows a transaction list. Zero values are no-op filters,
// so the zero Criteria matches everything.
type Criteria struct {
	Search   string
	Category string
	Type     string
	DateFrom string
	DateTo   string
}

// Filter returns the transactions matching every active criterion, in
// their input order. The input slice is not mutated.
func Filter(txs []Transaction, c Criteria) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if c.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (c Criteria) matches(t Transaction) bool {
	if s := strings.TrimSpace(c.Search); s != "" {
		if !strings.Contains(strings.ToLower(t.Description), strings.ToLower(s)) {
			return false
		}
	}
	if !wildcard(c.Category) && !EqualFold(c.Category, t.Category) {
		return false
	}
	if !wildcard(c.Type) && !strings.EqualFold(c.Type, string(t.Type)) {
		return false
	}
	if c.DateFrom != "" || c.DateTo != "" {
		d := DateValue(t.Date)
		if c.DateFrom != "" {
			if from, ok := ParseDate(c.DateFrom); ok && d.Before(from) {
				return false
			}
		}
		if c.DateTo != "" {
			if to, ok := ParseDate(c.DateTo); ok && d.After(to) {
				return false
			}
		}
	}
	return true
}

func wildcard(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}
