package core

import "time"

// DashboardView is the landing screen: overall totals, per-category
// spending, and the five most recent transactions.
type DashboardView struct {
	Totals           Totals          `json:"totals"`
	CategorySpending []CategorySpend `json:"categorySpending"`
	Recent           []Transaction   `json:"recentTransactions"`
}

func BuildDashboard(txs []Transaction, cats []Category) DashboardView {
	recent := Sort(txs, SortByDate, Descending)
	if len(recent) > 5 {
		recent = recent[:5]
	}
	return DashboardView{
		Totals:           TotalsByType(txs),
		CategorySpending: SpendByCategory(txs, cats),
		Recent:           recent,
	}
}

// HistoryRow is one transaction in the history table together with the
// net running total up to and including it.
type HistoryRow struct {
	Transaction
	RunningTotal float64 `json:"runningTotal"`
}

// HistoryView is the filtered, sorted transaction listing.
type HistoryView struct {
	Rows   []HistoryRow `json:"rows"`
	Totals Totals       `json:"totals"`
}

// BuildHistory filters, sorts, and annotates each row with a running
// net total over the filtered set in display order. Income adds,
// expense subtracts.
func BuildHistory(txs []Transaction, c Criteria, field SortField, dir SortDirection) HistoryView {
	matched := Sort(Filter(txs, c), field, dir)

	rows := make([]HistoryRow, len(matched))
	var running float64
	for i, tx := range matched {
		if tx.Type == TypeIncome {
			running += tx.Amount
		} else {
			running -= tx.Amount
		}
		rows[i] = HistoryRow{Transaction: tx, RunningTotal: running}
	}
	return HistoryView{Rows: rows, Totals: TotalsByType(matched)}
}

// ReportSummary carries the headline numbers for the selected period.
// Both per-month averages share the same divisor.
type ReportSummary struct {
	Totals             Totals  `json:"totals"`
	AvgMonthlyIncome   float64 `json:"avgMonthlyIncome"`
	AvgMonthlyExpenses float64 `json:"avgMonthlyExpenses"`
	Months             int     `json:"months"`
}

// ReportView is the analytics screen over one lookback period.
type ReportView struct {
	Period        Period           `json:"period"`
	Summary       ReportSummary    `json:"summary"`
	Months        []MonthBucket    `json:"monthlyBreakdown"`
	TopCategories []RankedCategory `json:"topCategories"`
}

func BuildReport(txs []Transaction, cats []Category, p Period, now time.Time) ReportView {
	scoped := FilterSince(txs, p, now)
	totals := TotalsByType(scoped)
	months := MonthsInPeriod(p, len(scoped))
	return ReportView{
		Period: p,
		Summary: ReportSummary{
			Totals:             totals,
			AvgMonthlyIncome:   totals.Income / float64(months),
			AvgMonthlyExpenses: totals.Expense / float64(months),
			Months:             months,
		},
		Months:        MonthlyBuckets(scoped),
		TopCategories: TopCategories(scoped, cats, 5),
	}
}

// BudgetLine is one budget with its derived spending state.
type BudgetLine struct {
	Budget
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Percent   float64 `json:"percentage"`
	Status    string  `json:"status"`
}

// BudgetView lists budget lines plus totals over all of them.
type BudgetView struct {
	Budgets     []BudgetLine `json:"budgets"`
	TotalBudget float64      `json:"totalBudget"`
	TotalSpent  float64      `json:"totalSpent"`
	Remaining   float64      `json:"remainingBudget"`
}

// BuildBudgets computes each budget's spending over its own window
// (current month or current year) and classifies it.
func BuildBudgets(txs []Transaction, budgets []Budget, now time.Time) BudgetView {
	view := BudgetView{Budgets: make([]BudgetLine, len(budgets))}
	for i, b := range budgets {
		from, to := BudgetWindow(b.Period, now)
		spent := SpentInWindow(txs, b.Category, from, to)
		percent, status := ClassifyBudget(spent, b.Amount)
		view.Budgets[i] = BudgetLine{
			Budget:    b,
			Spent:     spent,
			Remaining: b.Amount - spent,
			Percent:   percent,
			Status:    status,
		}
		view.TotalBudget += b.Amount
		view.TotalSpent += spent
	}
	view.Remaining = view.TotalBudget - view.TotalSpent
	return view
}
