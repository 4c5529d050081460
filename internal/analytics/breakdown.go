package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smart-wallet/core/internal/models"
)

// CategorySlice is one category's share of total spending.
type CategorySlice struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Name       string          `json:"name"`
	Icon       string          `json:"icon,omitempty"`
	Color      string          `json:"color,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
	Count      int             `json:"count"`
}

// uncategorizedName labels spending whose category is unset or deleted.
const uncategorizedName = "Uncategorized"

// Breakdown groups expense transactions by category and returns the top
// slices by total, largest first. Transactions without a category, or
// referencing a category that no longer exists, land in a single
// "Uncategorized" slice. topN <= 0 returns all slices.
func Breakdown(transactions []models.Transaction, categories []models.Category, topN int) []CategorySlice {
	names := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		names[c.ID] = c
	}

	slices := map[uuid.UUID]*CategorySlice{}
	total := decimal.Zero

	for _, t := range transactions {
		if !counts(t) || t.Type != models.TypeExpense {
			continue
		}

		var id uuid.UUID
		if t.CategoryID != nil {
			if _, known := names[*t.CategoryID]; known {
				id = *t.CategoryID
			}
		}

		slice, ok := slices[id]
		if !ok {
			slice = &CategorySlice{
				CategoryID: id,
				Name:       uncategorizedName,
				Total:      decimal.Zero,
			}
			if category, known := names[id]; known {
				slice.Name = category.Name
				slice.Icon = category.Icon
				slice.Color = category.Color
			}
			slices[id] = slice
		}

		slice.Total = slice.Total.Add(t.Amount)
		slice.Count++
		total = total.Add(t.Amount)
	}

	result := make([]CategorySlice, 0, len(slices))
	for _, slice := range slices {
		if !total.IsZero() {
			slice.Percentage = slice.Total.Div(total).Mul(hundred)
		} else {
			slice.Percentage = decimal.Zero
		}

		result = append(result, *slice)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}

		return result[i].Name < result[j].Name
	})

	if topN > 0 && len(result) > topN {
		result = result[:topN]
	}

	return result
}
