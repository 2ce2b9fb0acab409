package core

import (
	"errors"
	"strings"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"

	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

type (
	TransactionType string

	BudgetPeriod string

	// Color is the presentation triple stored with each category.
	Color struct {
		Class string `json:"class"`
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	// Transaction is a single income or expense record. The Category field
	// references a Category by name, not by id; the reference may dangle.
	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      float64         `json:"amount"`
		Category    string          `json:"category"`
		Date        string          `json:"date"` // ISO calendar date, no time component
		Type        TransactionType `json:"type"`
	}

	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color Color  `json:"color"`
	}

	// Budget caps spending for one category over a recurring period.
	// Only Amount is updatable; category and period are fixed at creation.
	Budget struct {
		ID       string       `json:"id"`
		Category string       `json:"category"`
		Amount   float64      `json:"amount"`
		Period   BudgetPeriod `json:"period"`
	}
)

// DefaultColor is used whenever a category reference matches no stored
// category. The hex value matches the fallback the dashboards render.
var DefaultColor = Color{Class: "bg-gray-500", Name: "Gray", Value: "#6b7280"}

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("type must be 'income' or 'expense'")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidPeriod    = errors.New("period must be 'monthly' or 'yearly'")
)

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !validAmount(t.Amount) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if _, ok := ParseDate(t.Date); !ok {
		return ErrInvalidDate
	}
	switch t.Type {
	case TypeIncome, TypeExpense:
	default:
		return ErrInvalidType
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if !validAmount(b.Amount) {
		return ErrInvalidAmount
	}
	switch b.Period {
	case PeriodMonthly, PeriodYearly:
	default:
		return ErrInvalidPeriod
	}
	return nil
}
