package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/types"
)

// TransactionType determines the sign of a transaction. Amounts are stored
// as non-negative magnitudes, the effect on the balance is implied by the
// type.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// TransactionTypes lists all valid transaction types.
var TransactionTypes = []TransactionType{TypeIncome, TypeExpense}

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusPosted  TransactionStatus = "posted"
	StatusVoid    TransactionStatus = "void"
)

// TransactionStatuses lists all valid transaction statuses.
var TransactionStatuses = []TransactionStatus{StatusPending, StatusPosted, StatusVoid}

// Location is an optional place a transaction happened at.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Transaction represents a single income or expense entry.
//
// The amount is always non-negative. Every transaction references an
// account owned by the same user; the backend enforces this.
type Transaction struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	AccountID  uuid.UUID         `json:"account_id"`
	CategoryID *uuid.UUID        `json:"category_id"`
	Amount     decimal.Decimal   `json:"amount"`
	Type       TransactionType   `json:"type"`
	Date       types.Date        `json:"date"`
	Time       string            `json:"time,omitempty"` // HH:MM:SS, optional
	Merchant   string            `json:"merchant,omitempty"`
	Note       string            `json:"note,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	Location   *Location         `json:"location"`
	Status     TransactionStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Signed returns the amount with the sign implied by the transaction type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}

	return t.Amount
}

// TransactionCreate is the set of fields writable when creating a
// transaction. Date defaults to today and status to "posted" on the backend
// when unset.
type TransactionCreate struct {
	AccountID  uuid.UUID         `json:"account_id"`
	CategoryID *uuid.UUID        `json:"category_id,omitempty"`
	Amount     decimal.Decimal   `json:"amount"`
	Type       TransactionType   `json:"type"`
	Date       types.Date        `json:"date,omitempty"`
	Time       string            `json:"time,omitempty"`
	Merchant   string            `json:"merchant,omitempty"`
	Note       string            `json:"note,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	Location   *Location         `json:"location,omitempty"`
	Status     TransactionStatus `json:"status,omitempty"`
}

// TransactionUpdate is a partial transaction update.
type TransactionUpdate struct {
	AccountID  *uuid.UUID         `json:"account_id,omitempty"`
	CategoryID *uuid.UUID         `json:"category_id,omitempty"`
	Amount     *decimal.Decimal   `json:"amount,omitempty"`
	Type       *TransactionType   `json:"type,omitempty"`
	Date       *types.Date        `json:"date,omitempty"`
	Time       *string            `json:"time,omitempty"`
	Merchant   *string            `json:"merchant,omitempty"`
	Note       *string            `json:"note,omitempty"`
	ImageURL   *string            `json:"image_url,omitempty"`
	Tags       []string           `json:"tags,omitempty"`
	Location   *Location          `json:"location,omitempty"`
	Status     *TransactionStatus `json:"status,omitempty"`
}
