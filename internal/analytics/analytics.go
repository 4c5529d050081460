// Package analytics computes derived figures from raw entity rows.
//
// Every function is a pure fold over slices the caller already fetched.
// Nothing here talks to the backend, the aggregation layer composes with
// the query cache instead of bypassing it. Void transactions never count.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/models"
)

var hundred = decimal.NewFromInt(100)

// counts reports whether a transaction participates in aggregates.
func counts(t models.Transaction) bool {
	return t.Status != models.StatusVoid
}

// Totals is the income and expense sum over a set of transactions.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Sum folds a transaction set into its totals.
func Sum(transactions []models.Transaction) Totals {
	totals := Totals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}

	for _, t := range transactions {
		if !counts(t) {
			continue
		}

		switch t.Type {
		case models.TypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case models.TypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}

	totals.Net = totals.Income.Sub(totals.Expense)
	return totals
}

// SavingRate returns the saved share of income as a percentage. A period
// without income has no meaningful rate and reports zero, never a division
// error.
func SavingRate(totals Totals) decimal.Decimal {
	if totals.Income.IsZero() {
		return decimal.Zero
	}

	return totals.Net.Div(totals.Income).Mul(hundred)
}
