package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/types"
)

// BudgetPeriod is the recurrence of a budget.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// BudgetPeriods lists all valid budget periods.
var BudgetPeriods = []BudgetPeriod{PeriodWeekly, PeriodMonthly, PeriodYearly}

// Budget is a spending limit for a category over a recurring period.
//
// Spent is denormalized by the backend, it is not derived at write time.
// Progress calculation therefore sums transactions itself, see the
// analytics package.
type Budget struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Period     BudgetPeriod    `json:"period"`
	StartDate  types.Date      `json:"start_date"`
	EndDate    *types.Date     `json:"end_date"`
	Currency   Currency        `json:"currency"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BudgetCreate is the set of fields writable when creating a budget.
type BudgetCreate struct {
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
	StartDate  types.Date      `json:"start_date"`
	EndDate    *types.Date     `json:"end_date,omitempty"`
	Currency   Currency        `json:"currency,omitempty"`
}

// BudgetUpdate is a partial budget update.
type BudgetUpdate struct {
	CategoryID *uuid.UUID       `json:"category_id,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Period     *BudgetPeriod    `json:"period,omitempty"`
	StartDate  *types.Date      `json:"start_date,omitempty"`
	EndDate    *types.Date      `json:"end_date,omitempty"`
	Currency   *Currency        `json:"currency,omitempty"`
}
