package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
)

// topCategories bounds the breakdown carried in a summary.
const topCategories = 8

// Summary is the dashboard aggregate for one period.
type Summary struct {
	From            types.Date      `json:"from"`
	Until           types.Date      `json:"until"`
	Totals          Totals          `json:"totals"`
	SavingRate      decimal.Decimal `json:"saving_rate"`
	AvgDailyExpense decimal.Decimal `json:"avg_daily_expense"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
	Breakdown       []CategorySlice `json:"breakdown"`
	Accounts        []AccountShare  `json:"accounts"`
	Daily           []DayPoint      `json:"daily"`
	Monthly         []MonthPoint    `json:"monthly"`
}

// Summarize folds transactions, categories and accounts into the dashboard
// aggregate for the last days days, ending today. Transactions outside the
// window are ignored.
func Summarize(transactions []models.Transaction, categories []models.Category, accounts []models.Account, days int, today types.Date) Summary {
	if days < 1 {
		days = 1
	}

	from := today.AddDays(-(days - 1))

	window := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Date.In(from, today) {
			window = append(window, t)
		}
	}

	totals := Sum(window)

	return Summary{
		From:            from,
		Until:           today,
		Totals:          totals,
		SavingRate:      SavingRate(totals),
		AvgDailyExpense: totals.Expense.Div(decimal.NewFromInt(int64(days))),
		TotalBalance:    TotalBalance(accounts),
		Breakdown:       Breakdown(window, categories, topCategories),
		Accounts:        Distribution(accounts),
		Daily:           DailyTrend(window, days, today),
		Monthly:         MonthlyTrend(window, monthsSpanned(from, today), today),
	}
}

// monthsSpanned counts the calendar months a date range touches.
func monthsSpanned(from, until types.Date) int {
	first := types.YearMonthOf(from)
	last := types.YearMonthOf(until)

	return (last.Year-first.Year)*12 + int(last.Month) - int(first.Month) + 1
}
