package export

import (
	"testing"

	"fintrack/internal/core"
)

func TestReportRows(t *testing.T) {
	view := core.ReportView{
		Period: core.PeriodAll,
		Summary: core.ReportSummary{
			Totals:             core.Totals{Income: 100, Expense: 40, Balance: 60},
			AvgMonthlyIncome:   100,
			AvgMonthlyExpenses: 40,
			Months:             1,
		},
		Months: []core.MonthBucket{
			{Key: "2025-01", Label: "Jan 2025", Income: 100, Expense: 40, Net: 60},
		},
		TopCategories: []core.RankedCategory{
			{Name: "Food", Spent: 40, Percent: 100},
		},
	}

	rows := reportRows(view)

	// 6 summary rows, blank, header, 1 month, blank, header, 1 category.
	if len(rows) != 12 {
		t.Fatalf("got %d rows, want 12", len(rows))
	}
	if rows[0][1] != "all" {
		t.Errorf("period cell = %v", rows[0][1])
	}
	if rows[4][1] != 100.0 || rows[5][1] != 40.0 {
		t.Errorf("average rows = %v / %v", rows[4], rows[5])
	}
	if rows[8][0] != "Jan 2025" {
		t.Errorf("month row = %v", rows[8])
	}
	if rows[11][0] != "Food" {
		t.Errorf("category row = %v", rows[11])
	}
}
