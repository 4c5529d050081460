package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups transactions. Categories without a user are provided by
// the system and shared between all users.
type Category struct {
	ID     uuid.UUID       `json:"id"`
	UserID *uuid.UUID      `json:"user_id"`
	Name   string          `json:"name"`
	Type   TransactionType `json:"type"`
	Icon   string          `json:"icon,omitempty"`
	Color  string          `json:"color,omitempty"`

	// ParentID allows one level of grouping. The hierarchy is shallow,
	// parents of parents are not resolved anywhere.
	ParentID *uuid.UUID `json:"parent_id"`

	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryCreate is the set of fields writable when creating a category.
type CategoryCreate struct {
	UserID   uuid.UUID       `json:"user_id,omitempty"`
	Name     string          `json:"name"`
	Type     TransactionType `json:"type"`
	Icon     string          `json:"icon,omitempty"`
	Color    string          `json:"color,omitempty"`
	ParentID *uuid.UUID      `json:"parent_id,omitempty"`
}

// CategoryUpdate is a partial category update.
type CategoryUpdate struct {
	Name     *string          `json:"name,omitempty"`
	Type     *TransactionType `json:"type,omitempty"`
	Icon     *string          `json:"icon,omitempty"`
	Color    *string          `json:"color,omitempty"`
	ParentID *uuid.UUID       `json:"parent_id,omitempty"`
}

// DefaultCategories returns the twelve categories seeded for a new user:
// eight expense and four income categories with fixed icons and colors.
func DefaultCategories(userID uuid.UUID) []CategoryCreate {
	return []CategoryCreate{
		{UserID: userID, Name: "Dining", Type: TypeExpense, Icon: "🍽️", Color: "#EF4444"},
		{UserID: userID, Name: "Transport", Type: TypeExpense, Icon: "🚗", Color: "#F59E0B"},
		{UserID: userID, Name: "Shopping", Type: TypeExpense, Icon: "🛍️", Color: "#EC4899"},
		{UserID: userID, Name: "Entertainment", Type: TypeExpense, Icon: "🎬", Color: "#8B5CF6"},
		{UserID: userID, Name: "Medical", Type: TypeExpense, Icon: "🏥", Color: "#06B6D4"},
		{UserID: userID, Name: "Education", Type: TypeExpense, Icon: "📚", Color: "#10B981"},
		{UserID: userID, Name: "Housing", Type: TypeExpense, Icon: "🏠", Color: "#3B82F6"},
		{UserID: userID, Name: "Other", Type: TypeExpense, Icon: "📊", Color: "#6B7280"},

		{UserID: userID, Name: "Salary", Type: TypeIncome, Icon: "💰", Color: "#10B981"},
		{UserID: userID, Name: "Bonus", Type: TypeIncome, Icon: "🎁", Color: "#F59E0B"},
		{UserID: userID, Name: "Investment", Type: TypeIncome, Icon: "📈", Color: "#3B82F6"},
		{UserID: userID, Name: "Other Income", Type: TypeIncome, Icon: "💵", Color: "#6B7280"},
	}
}
