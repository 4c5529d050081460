package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/models"
)

// AccountShare is one account's share of total holdings.
type AccountShare struct {
	AccountID  uuid.UUID       `json:"account_id"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Distribution returns each account's share of the combined balance,
// largest first. Accounts with negative balances, e.g. credit cards, keep
// their sign; shares are computed against the sum of positive balances so
// percentages stay meaningful.
func Distribution(accounts []models.Account) []AccountShare {
	positive := decimal.Zero
	for _, a := range accounts {
		if a.Balance.IsPositive() {
			positive = positive.Add(a.Balance)
		}
	}

	shares := make([]AccountShare, 0, len(accounts))
	for _, a := range accounts {
		share := AccountShare{
			AccountID:  a.ID,
			Name:       a.Name,
			Balance:    a.Balance,
			Percentage: decimal.Zero,
		}

		if a.Balance.IsPositive() && !positive.IsZero() {
			share.Percentage = a.Balance.Div(positive).Mul(hundred)
		}

		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Balance.Equal(shares[j].Balance) {
			return shares[i].Balance.GreaterThan(shares[j].Balance)
		}

		return shares[i].Name < shares[j].Name
	})

	return shares
}

// TotalBalance sums every account balance, negative balances included.
func TotalBalance(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	return total
}
