package core

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Totals is the income/expense/balance triple every screen starts from.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// TotalsByType sums amounts per transaction type. An empty input yields
// all zeros.
func TotalsByType(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			t.Income += tx.Amount
		case TypeExpense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// CategorySpend is one row of the category/expense join.
type CategorySpend struct {
	Category Category `json:"category"`
	Spent    float64  `json:"spent"`
}

// SpendByCategory joins each category with the sum of its expense
// transactions. Name matching is case-insensitive. Categories with no
// matching transactions report zero; expenses whose category matches no
// row are absent from the result (they still count toward totals).
func SpendByCategory(txs []Transaction, cats []Category) []CategorySpend {
	totals := expenseTotals(txs)
	out := make([]CategorySpend, len(cats))
	for i, c := range cats {
		out[i] = CategorySpend{Category: c, Spent: totals[foldName(c.Name)]}
	}
	return out
}

// RankedCategory is one row of the top-N spending ranking.
type RankedCategory struct {
	Name    string  `json:"name"`
	Spent   float64 `json:"value"`
	Percent float64 `json:"percentage"`
	Color   string  `json:"color"`
}

// TopCategories ranks expense totals grouped by transaction category,
// highest first, keeping the first n rows. Unlike SpendByCategory it is
// driven by the transactions, so a dangling category reference still
// appears, carrying the fallback color. Percent is the share of total
// expense, defined as zero when total expense is zero.
func TopCategories(txs []Transaction, cats []Category, n int) []RankedCategory {
	colors := make(map[string]string, len(cats))
	for _, c := range cats {
		colors[foldName(c.Name)] = c.Color.Value
	}

	totals := expenseTotals(txs)
	names := make([]string, 0, len(totals))
	display := make(map[string]string, len(totals))
	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		k := foldName(tx.Category)
		if _, seen := display[k]; !seen {
			display[k] = tx.Category
			names = append(names, k)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return totals[names[i]] > totals[names[j]]
	})
	if n > 0 && len(names) > n {
		names = names[:n]
	}

	var totalExpense float64
	for _, v := range totals {
		totalExpense += v
	}

	out := make([]RankedCategory, len(names))
	for i, k := range names {
		color, ok := colors[k]
		if !ok {
			color = DefaultColor.Value
		}
		pct := 0.0
		if totalExpense > 0 {
			pct = totals[k] / totalExpense * 100
		}
		out[i] = RankedCategory{Name: display[k], Spent: totals[k], Percent: pct, Color: color}
	}
	return out
}

func expenseTotals(txs []Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type == TypeExpense {
			totals[foldName(tx.Category)] += tx.Amount
		}
	}
	return totals
}

func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MonthBucket accumulates one calendar month of activity. Key sorts
// chronologically ("2006-01"); Label is the display form ("Jan 2006").
type MonthBucket struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// MonthlyBuckets groups transactions by calendar month, oldest first.
// Records with unparseable dates are skipped rather than bucketed under
// a bogus month.
func MonthlyBuckets(txs []Transaction) []MonthBucket {
	byKey := make(map[string]*MonthBucket)
	for _, tx := range txs {
		d, ok := ParseDate(tx.Date)
		if !ok {
			continue
		}
		key := d.Format("2006-01")
		b := byKey[key]
		if b == nil {
			b = &MonthBucket{Key: key, Label: d.Format("Jan 2006")}
			byKey[key] = b
		}
		switch tx.Type {
		case TypeIncome:
			b.Income += tx.Amount
		case TypeExpense:
			b.Expense += tx.Amount
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthBucket, len(keys))
	for i, k := range keys {
		b := byKey[k]
		b.Net = b.Income - b.Expense
		out[i] = *b
	}
	return out
}

// Period is the report lookback selector.
type Period string

const (
	PeriodAll        Period = "all"
	PeriodOneMonth   Period = "1month"
	PeriodThreeMonth Period = "3months"
	PeriodSixMonth   Period = "6months"
	PeriodOneYear    Period = "1year"
)

// PeriodCutoff computes the inclusive lower date bound for a period
// relative to now. The second return is false for PeriodAll and any
// unknown value, meaning no cutoff applies.
func PeriodCutoff(p Period, now time.Time) (time.Time, bool) {
	switch p {
	case PeriodOneMonth:
		return now.AddDate(0, -1, 0), true
	case PeriodThreeMonth:
		return now.AddDate(0, -3, 0), true
	case PeriodSixMonth:
		return now.AddDate(0, -6, 0), true
	case PeriodOneYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// FilterSince keeps transactions dated on or after the period cutoff.
func FilterSince(txs []Transaction, p Period, now time.Time) []Transaction {
	cutoff, ok := PeriodCutoff(p, now)
	if !ok {
		out := make([]Transaction, len(txs))
		copy(out, txs)
		return out
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if d, ok := ParseDate(tx.Date); ok && !d.Before(cutoff) {
			out = append(out, tx)
		}
	}
	return out
}

// MonthsInPeriod is the divisor for per-month averages. For the open
// period it estimates roughly one month per thirty transactions, never
// less than one.
func MonthsInPeriod(p Period, txCount int) int {
	switch p {
	case PeriodOneMonth:
		return 1
	case PeriodThreeMonth:
		return 3
	case PeriodSixMonth:
		return 6
	case PeriodOneYear:
		return 12
	default:
		n := int(math.Ceil(float64(txCount) / 30))
		if n < 1 {
			n = 1
		}
		return n
	}
}

// Budget status values in increasing order of trouble.
const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusOver    = "over"
)

// ClassifyBudget turns spend against a cap into a percentage and a
// three-way status. A zero cap yields zero percent and "good" instead
// of a division fault.
func ClassifyBudget(spent, amount float64) (percent float64, status string) {
	if amount > 0 {
		percent = spent / amount * 100
	}
	switch {
	case percent >= 100:
		status = StatusOver
	case percent >= 80:
		status = StatusWarning
	default:
		status = StatusGood
	}
	return percent, status
}

// BudgetWindow returns the inclusive date bounds the budget's spending
// is measured over: the current calendar month for monthly budgets, the
// current calendar year for yearly ones.
func BudgetWindow(p BudgetPeriod, now time.Time) (from, to time.Time) {
	switch p {
	case PeriodYearly:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, -1)
	}
	return from, to
}

// SpentInWindow sums expense amounts for one category between from and
// to inclusive.
func SpentInWindow(txs []Transaction, category string, from, to time.Time) float64 {
	var sum float64
	for _, tx := range txs {
		if tx.Type != TypeExpense || !EqualFold(tx.Category, category) {
			continue
		}
		d, ok := ParseDate(tx.Date)
		if !ok || d.Before(from) || d.After(to) {
			continue
		}
		sum += tx.Amount
	}
	return sum
}
