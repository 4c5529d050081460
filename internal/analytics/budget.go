package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
)

// Progress is a budget's consumption within its current period window.
type Progress struct {
	BudgetID     uuid.UUID       `json:"budget_id"`
	WindowStart  types.Date      `json:"window_start"`
	WindowEnd    types.Date      `json:"window_end"`
	Amount       decimal.Decimal `json:"amount"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   decimal.Decimal `json:"percentage"`
	IsOverBudget bool            `json:"is_over_budget"`
}

// Window returns the inclusive date range of the budget period containing
// the given day. Weekly windows are Sunday-to-Saturday calendar weeks,
// monthly windows are calendar months and yearly windows calendar years.
func Window(period models.BudgetPeriod, day types.Date) (types.Date, types.Date) {
	t := day.Time()

	switch period {
	case models.PeriodWeekly:
		start := day.AddDays(-int(t.Weekday()))
		return start, start.AddDays(6)
	case models.PeriodYearly:
		start := types.NewDate(t.Year(), time.January, 1)
		return start, types.NewDate(t.Year(), time.December, 31)
	default:
		start := types.NewDate(t.Year(), t.Month(), 1)
		end := types.DateOf(start.Time().AddDate(0, 1, -1))
		return start, end
	}
}

// BudgetProgress computes a budget's consumption for the period containing
// today. Spending counts an expense transaction when it falls between the
// window start and today and, for a category budget, matches the budget's
// category; a budget without a category tracks all spending. Transactions
// dated later in the period are not spent yet.
func BudgetProgress(budget models.Budget, transactions []models.Transaction, today types.Date) Progress {
	start, end := Window(budget.Period, today)

	spent := decimal.Zero
	for _, t := range transactions {
		if !counts(t) || t.Type != models.TypeExpense {
			continue
		}

		if !t.Date.In(start, today) {
			continue
		}

		if budget.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *budget.CategoryID) {
			continue
		}

		spent = spent.Add(t.Amount)
	}

	percentage := decimal.Zero
	if !budget.Amount.IsZero() {
		percentage = spent.Div(budget.Amount).Mul(hundred)
	}

	return Progress{
		BudgetID:     budget.ID,
		WindowStart:  start,
		WindowEnd:    end,
		Amount:       budget.Amount,
		Spent:        spent,
		Remaining:    budget.Amount.Sub(spent),
		Percentage:   percentage,
		IsOverBudget: spent.GreaterThan(budget.Amount),
	}
}
