package core

import (
	"math"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2025-01-31", true},
		{" 2025-01-31 ", true},
		{"2025-02-30", false},
		{"not-a-date", false},
		{"", false},
		{"2025/01/31", false},
	}

	for _, tt := range tests {
		if _, ok := ParseDate(tt.in); ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestDateValue_InvalidFallsBackToZero(t *testing.T) {
	if !DateValue("garbage").IsZero() {
		t.Error("invalid date should compare as the zero time")
	}
}

func TestNormalizeTransaction(t *testing.T) {
	in := Transaction{
		Description: "  coffee  ",
		Amount:      math.NaN(),
		Category:    " Food ",
		Date:        " 2025-01-01 ",
		Type:        "EXPENSE",
	}

	got := NormalizeTransaction(in)

	if got.Description != "coffee" || got.Category != "Food" || got.Date != "2025-01-01" {
		t.Errorf("strings not trimmed: %+v", got)
	}
	if got.Type != TypeExpense {
		t.Errorf("type = %s, want lowercased expense", got.Type)
	}
	if got.Amount != 0 {
		t.Errorf("NaN amount = %v, want 0", got.Amount)
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Description: "coffee", Amount: 3, Category: "Food", Date: "2025-01-01", Type: TypeExpense}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"blank description", func(tx *Transaction) { tx.Description = "  " }, ErrEmptyDescription},
		{"negative amount", func(tx *Transaction) { tx.Amount = -1 }, ErrInvalidAmount},
		{"nan amount", func(tx *Transaction) { tx.Amount = math.NaN() }, ErrInvalidAmount},
		{"missing category", func(tx *Transaction) { tx.Category = "" }, ErrEmptyCategory},
		{"bad date", func(tx *Transaction) { tx.Date = "01/02/2025" }, ErrInvalidDate},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{Category: "Food", Amount: 100, Period: PeriodMonthly}

	tests := []struct {
		name    string
		mutate  func(*Budget)
		wantErr error
	}{
		{"valid monthly", func(*Budget) {}, nil},
		{"valid yearly", func(b *Budget) { b.Period = PeriodYearly }, nil},
		{"zero amount allowed", func(b *Budget) { b.Amount = 0 }, nil},
		{"negative amount", func(b *Budget) { b.Amount = -10 }, ErrInvalidAmount},
		{"missing category", func(b *Budget) { b.Category = " " }, ErrEmptyCategory},
		{"bad period", func(b *Budget) { b.Period = "weekly" }, ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			if err := b.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
