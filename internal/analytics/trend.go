package analytics

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
)

// TrendPoint is a balance at the end of one day.
type TrendPoint struct {
	Date    types.Date      `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceTrend reconstructs an account's running balance over the last days
// days, ending today. The balance at the start of the window is derived by
// subtracting the window's net change from the current balance; a single
// forward walk over the window's transactions, oldest first, then appends
// one point per transaction. The final point carries the authoritative
// current balance, so the series has one more point than the window has
// transactions.
//
// Transactions must belong to the account; the caller filters.
func BalanceTrend(balance decimal.Decimal, transactions []models.Transaction, days int, today types.Date) []TrendPoint {
	if days < 1 {
		days = 1
	}

	from := today.AddDays(-(days - 1))

	window := make([]models.Transaction, 0, len(transactions))
	windowNet := decimal.Zero
	for _, t := range transactions {
		if !counts(t) || !t.Date.In(from, today) {
			continue
		}

		window = append(window, t)
		windowNet = windowNet.Add(t.Signed())
	}

	slices.SortStableFunc(window, func(a, b models.Transaction) int {
		if !a.Date.Equal(b.Date) {
			if a.Date.Before(b.Date) {
				return -1
			}
			return 1
		}

		return strings.Compare(a.Time, b.Time)
	})

	points := make([]TrendPoint, 0, len(window)+1)
	running := balance.Sub(windowNet)

	for _, t := range window {
		running = running.Add(t.Signed())
		points = append(points, TrendPoint{Date: t.Date, Balance: running})
	}

	// The walk ends at the current balance when the inputs are
	// consistent; the extra point pins the series to the authoritative
	// figure either way.
	points = append(points, TrendPoint{Date: today, Balance: balance})

	return points
}

// DayPoint is the income and expense total of one day.
type DayPoint struct {
	Date    types.Date      `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DailyTrend buckets transactions by day over the last days days, ending
// today. Every day in the window appears, including empty ones.
func DailyTrend(transactions []models.Transaction, days int, today types.Date) []DayPoint {
	if days < 1 {
		days = 1
	}

	from := today.AddDays(-(days - 1))

	buckets := make(map[string]*DayPoint, days)
	points := make([]DayPoint, 0, days)
	for day := from; !day.After(today); day = day.AddDays(1) {
		points = append(points, DayPoint{
			Date:    day,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
		buckets[day.String()] = &points[len(points)-1]
	}

	for _, t := range transactions {
		if !counts(t) {
			continue
		}

		bucket, ok := buckets[t.Date.String()]
		if !ok {
			continue
		}

		switch t.Type {
		case models.TypeIncome:
			bucket.Income = bucket.Income.Add(t.Amount)
		case models.TypeExpense:
			bucket.Expense = bucket.Expense.Add(t.Amount)
		}
	}

	return points
}

// MonthPoint is the income and expense total of one calendar month.
type MonthPoint struct {
	Month   types.YearMonth `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlyTrend buckets transactions by calendar month over the last months
// months, ending with the month containing today. Every month in the
// window appears, including empty ones.
func MonthlyTrend(transactions []models.Transaction, months int, today types.Date) []MonthPoint {
	if months < 1 {
		months = 1
	}

	last := types.YearMonthOf(today)
	first := types.YearMonthOf(types.DateOf(last.First().Time().AddDate(0, -(months - 1), 0)))

	buckets := make(map[types.YearMonth]*MonthPoint, months)
	points := make([]MonthPoint, 0, months)
	for month := first; !last.Before(month); {
		points = append(points, MonthPoint{
			Month:   month,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
		buckets[month] = &points[len(points)-1]

		month = types.YearMonthOf(types.DateOf(month.First().Time().AddDate(0, 1, 0)))
	}

	for _, t := range transactions {
		if !counts(t) {
			continue
		}

		bucket, ok := buckets[types.YearMonthOf(t.Date)]
		if !ok {
			continue
		}

		switch t.Type {
		case models.TypeIncome:
			bucket.Income = bucket.Income.Add(t.Amount)
		case models.TypeExpense:
			bucket.Expense = bucket.Expense.Add(t.Amount)
		}
	}

	return points
}
