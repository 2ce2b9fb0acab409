package core

import (
	"sort"
	"strings"
)

type (
	SortField     string
	SortDirection string
)

const (
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"

	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Sort returns a new slice ordered by the given field and direction.
// Equal elements keep their input order in both directions; the input
// slice is not mutated.
func Sort(txs []Transaction, field SortField, dir SortDirection) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareBy(field, out[i], out[j])
		if dir == Descending {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out
}

func compareBy(field SortField, a, b Transaction) int {
	switch field {
	case SortByAmount:
		switch {
		case a.Amount < b.Amount:
			return -1
		case a.Amount > b.Amount:
			return 1
		}
		return 0
	case SortByDate:
		return DateValue(a.Date).Compare(DateValue(b.Date))
	case SortByCategory:
		return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	default:
		return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
	}
}
