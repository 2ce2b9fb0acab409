package core

import (
	"testing"
	"time"
)

func TestBuildDashboard(t *testing.T) {
	txs := sampleTransactions()
	got := BuildDashboard(txs, sampleCategories())

	if !almostEqual(got.Totals.Balance, 2351.20) {
		t.Errorf("balance = %v, want 2351.20", got.Totals.Balance)
	}
	if len(got.CategorySpending) != 3 {
		t.Errorf("got %d spend rows, want one per category", len(got.CategorySpending))
	}
	if len(got.Recent) != 5 {
		t.Fatalf("got %d recent transactions, want 5", len(got.Recent))
	}
	if got.Recent[0].ID != "t5" || got.Recent[4].ID != "t1" {
		t.Errorf("recent not date-descending: %v", ids(got.Recent))
	}
}

func TestBuildDashboard_RecentCapsAtFive(t *testing.T) {
	var txs []Transaction
	for i := 0; i < 8; i++ {
		txs = append(txs, Transaction{
			ID:   string(rune('a' + i)),
			Date: time.Date(2025, time.January, i+1, 0, 0, 0, 0, time.UTC).Format(DateLayout),
		})
	}

	got := BuildDashboard(txs, nil)
	if len(got.Recent) != 5 {
		t.Fatalf("got %d recent, want 5", len(got.Recent))
	}
	if got.Recent[0].ID != "h" {
		t.Errorf("most recent = %s, want h", got.Recent[0].ID)
	}
}

func TestBuildHistory_RunningTotal(t *testing.T) {
	txs := sampleTransactions()

	got := BuildHistory(txs, Criteria{}, SortByDate, Ascending)

	if len(got.Rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(got.Rows))
	}
	// -54.30, +2500, -2.50, -12, -80 cumulatively.
	wantRunning := []float64{-54.30, 2445.70, 2443.20, 2431.20, 2351.20}
	for i, w := range wantRunning {
		if !almostEqual(got.Rows[i].RunningTotal, w) {
			t.Errorf("row %d running total = %v, want %v", i, got.Rows[i].RunningTotal, w)
		}
	}
}

func TestBuildHistory_TotalsCoverFilteredSetOnly(t *testing.T) {
	txs := sampleTransactions()

	got := BuildHistory(txs, Criteria{Type: "expense"}, SortByDate, Ascending)

	if got.Totals.Income != 0 {
		t.Errorf("income = %v, want 0 after filtering to expenses", got.Totals.Income)
	}
	if !almostEqual(got.Totals.Expense, 148.80) {
		t.Errorf("expense = %v, want 148.80", got.Totals.Expense)
	}
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	got := BuildReport(sampleTransactions(), sampleCategories(), PeriodAll, now)

	if got.Period != PeriodAll {
		t.Errorf("period = %s", got.Period)
	}
	if len(got.Months) != 3 {
		t.Errorf("got %d month buckets, want 3", len(got.Months))
	}
	if len(got.TopCategories) != 3 {
		t.Errorf("got %d top categories, want 3", len(got.TopCategories))
	}
	if got.Summary.Months != 1 {
		t.Errorf("months divisor = %d, want 1 for 5 transactions", got.Summary.Months)
	}
	if !almostEqual(got.Summary.AvgMonthlyIncome, got.Summary.Totals.Income) {
		t.Errorf("income average = %v, want income total over one month", got.Summary.AvgMonthlyIncome)
	}
	if !almostEqual(got.Summary.AvgMonthlyExpenses, got.Summary.Totals.Expense) {
		t.Errorf("expense average = %v, want expense total over one month", got.Summary.AvgMonthlyExpenses)
	}
}

func TestBuildReport_PeriodNarrowsEverything(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	got := BuildReport(sampleTransactions(), sampleCategories(), PeriodOneMonth, now)

	// Only the Mar 1 concert survives the cutoff.
	if !almostEqual(got.Summary.Totals.Expense, 80) {
		t.Errorf("expense = %v, want 80", got.Summary.Totals.Expense)
	}
	if len(got.Months) != 1 || got.Months[0].Key != "2025-03" {
		t.Errorf("months = %+v, want just 2025-03", got.Months)
	}
}

func TestBuildBudgets(t *testing.T) {
	now := time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)
	txs := sampleTransactions() // Feb expenses: t3 Transport 2.50, t4 Food 12
	budgets := []Budget{
		{ID: "b1", Category: "Food", Amount: 100, Period: PeriodMonthly},
		{ID: "b2", Category: "Transport", Amount: 2.5, Period: PeriodMonthly},
		{ID: "b3", Category: "Leisure", Amount: 200, Period: PeriodYearly},
	}

	got := BuildBudgets(txs, budgets, now)

	if len(got.Budgets) != 3 {
		t.Fatalf("got %d lines, want 3", len(got.Budgets))
	}

	food := got.Budgets[0]
	if !almostEqual(food.Spent, 12) || food.Status != StatusGood || !almostEqual(food.Remaining, 88) {
		t.Errorf("food line = %+v", food)
	}

	transport := got.Budgets[1]
	if transport.Status != StatusOver || !almostEqual(transport.Percent, 100) {
		t.Errorf("transport line = %+v, want over at 100%%", transport)
	}

	// The yearly window covers the whole calendar year, so the Mar 1
	// concert counts even though now is mid-February.
	leisure := got.Budgets[2]
	if !almostEqual(leisure.Spent, 80) {
		t.Errorf("leisure spent = %v, want 80 over the calendar year", leisure.Spent)
	}

	if !almostEqual(got.TotalBudget, 302.5) || !almostEqual(got.TotalSpent, 94.5) || !almostEqual(got.Remaining, 208) {
		t.Errorf("totals = %+v", got)
	}
}

func TestBuildBudgets_Empty(t *testing.T) {
	got := BuildBudgets(nil, nil, time.Now())
	if len(got.Budgets) != 0 || got.TotalBudget != 0 || got.Remaining != 0 {
		t.Errorf("empty input should yield zero view, got %+v", got)
	}
}
