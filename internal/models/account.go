package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType is the kind of account.
type AccountType string

const (
	AccountTypeBank   AccountType = "bank"
	AccountTypeCash   AccountType = "cash"
	AccountTypeAlipay AccountType = "alipay"
	AccountTypeWeChat AccountType = "wechat"
	AccountTypeCredit AccountType = "credit"
	AccountTypeOther  AccountType = "other"
)

// AccountTypes lists all valid account types.
var AccountTypes = []AccountType{
	AccountTypeBank,
	AccountTypeCash,
	AccountTypeAlipay,
	AccountTypeWeChat,
	AccountTypeCredit,
	AccountTypeOther,
}

// Account represents a place money is kept, e.g. a bank account or a wallet.
//
// The backend owns the row, including the balance. The balance is
// recalculated server side when transactions change, which is why
// transaction mutations invalidate cached accounts.
type Account struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    Currency        `json:"currency"`
	Icon        string          `json:"icon,omitempty"`
	Color       string          `json:"color,omitempty"`
	Institution string          `json:"institution,omitempty"`

	// IsDefault marks the account preselected in clients. At most one
	// default per user is a display convention, not enforced by the
	// data layer.
	IsDefault bool `json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountCreate is the set of fields writable when creating an account.
type AccountCreate struct {
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    Currency        `json:"currency,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Color       string          `json:"color,omitempty"`
	Institution string          `json:"institution,omitempty"`
	IsDefault   bool            `json:"is_default,omitempty"`
}

// AccountUpdate is a partial account update. Nil fields are not sent, so the
// backend keeps their current values.
type AccountUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Type        *AccountType     `json:"type,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Currency    *Currency        `json:"currency,omitempty"`
	Icon        *string          `json:"icon,omitempty"`
	Color       *string          `json:"color,omitempty"`
	Institution *string          `json:"institution,omitempty"`
	IsDefault   *bool            `json:"is_default,omitempty"`
}
