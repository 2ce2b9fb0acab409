package core

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the stored calendar-date form. Records carry no time
// component; parsed values sit at midnight UTC.
const DateLayout = "2006-01-02"

// ParseDate parses a stored date string. The second return is false for
// anything that is not a valid calendar date; callers comparing dates
// treat those as the zero time so they order first ascending instead of
// failing mid-sort.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateValue is ParseDate with the fallback applied.
func DateValue(s string) time.Time {
	t, _ := ParseDate(s)
	return t
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// NormalizeTransaction coerces a stored record into canonical form:
// numeric amount, trimmed strings, lowercase type.
func NormalizeTransaction(t Transaction) Transaction {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	t.Date = strings.TrimSpace(t.Date)
	t.Type = TransactionType(strings.ToLower(string(t.Type)))
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		t.Amount = 0
	}
	return t
}

// NormalizeTransactions applies NormalizeTransaction to a copy of the
// input slice. The input is never mutated.
func NormalizeTransactions(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, t := range txs {
		out[i] = NormalizeTransaction(t)
	}
	return out
}

// EqualFold reports whether two category names refer to the same
// category. Name matching is case-insensitive everywhere records are
// joined.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
