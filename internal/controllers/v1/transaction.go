package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/httputil"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
	wallet_uuid "github.com/smart-wallet/core/internal/uuid"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// OptionsTransactionDetail returns the allowed HTTP verbs.
func OptionsTransactionDetail(c *gin.Context) {
	if _, ok := bindID(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// TransactionQuery is the query string binding for transaction lists.
// Dates and amounts arrive as strings and are validated here, not in the
// data layer.
type TransactionQuery struct {
	UserID     wallet_uuid.UUID         `form:"user_id"`
	AccountID  wallet_uuid.UUID         `form:"account_id"`
	CategoryID wallet_uuid.UUID         `form:"category_id"`
	Type       models.TransactionType   `form:"type"`
	Status     models.TransactionStatus `form:"status"`
	From       string                   `form:"from"`
	Until      string                   `form:"until"`
	MinAmount  string                   `form:"min_amount"`
	MaxAmount  string                   `form:"max_amount"`
}

// validTransactionType checks a transaction type against the known set.
// The empty string is valid, it means "not set".
func validTransactionType(t models.TransactionType) error {
	if t != "" && !slices.Contains(models.TransactionTypes, t) {
		return fmt.Errorf("%q is not a valid transaction type: %w", t, models.ErrValidation)
	}

	return nil
}

// validTransactionStatus checks a transaction status against the known set.
func validTransactionStatus(s models.TransactionStatus) error {
	if s != "" && !slices.Contains(models.TransactionStatuses, s) {
		return fmt.Errorf("%q is not a valid transaction status: %w", s, models.ErrValidation)
	}

	return nil
}

func (q TransactionQuery) filter() (backend.TransactionFilter, error) {
	filter := backend.TransactionFilter{
		UserID:     q.UserID.UUID,
		AccountID:  q.AccountID.UUID,
		CategoryID: q.CategoryID.UUID,
		Type:       q.Type,
		Status:     q.Status,
	}

	if err := validTransactionType(q.Type); err != nil {
		return filter, err
	}

	if err := validTransactionStatus(q.Status); err != nil {
		return filter, err
	}

	var err error
	if q.From != "" {
		if filter.FromDate, err = types.ParseDate(q.From); err != nil {
			return filter, fmt.Errorf("the from parameter must be a date in YYYY-MM-DD format: %w", models.ErrValidation)
		}
	}

	if q.Until != "" {
		if filter.UntilDate, err = types.ParseDate(q.Until); err != nil {
			return filter, fmt.Errorf("the until parameter must be a date in YYYY-MM-DD format: %w", models.ErrValidation)
		}
	}

	if q.MinAmount != "" {
		if filter.MinAmount, err = decimal.NewFromString(q.MinAmount); err != nil {
			return filter, fmt.Errorf("the min_amount parameter must be a decimal number: %w", models.ErrValidation)
		}
	}

	if q.MaxAmount != "" {
		if filter.MaxAmount, err = decimal.NewFromString(q.MaxAmount); err != nil {
			return filter, fmt.Errorf("the max_amount parameter must be a decimal number: %w", models.ErrValidation)
		}
	}

	return filter, nil
}

// GetTransactions returns all transactions matching the query, most recent
// first.
func (co Controller) GetTransactions(c *gin.Context) {
	var query TransactionQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abortError(c, err)
		return
	}

	filter, err := query.filter()
	if err != nil {
		abortError(c, err)
		return
	}

	transactions, err := co.queries.Transactions(c.Request.Context(), filter)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transactions})
}

// GetTransaction returns a single transaction.
func (co Controller) GetTransaction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	transaction, err := co.queries.Transaction(c.Request.Context(), id.UUID)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transaction})
}

// CreateTransaction creates a new transaction.
func (co Controller) CreateTransaction(c *gin.Context) {
	var data models.TransactionCreate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	if data.Amount.IsNegative() {
		abortError(c, fmt.Errorf("the amount must not be negative, use the type field to record an expense: %w", models.ErrValidation))
		return
	}

	if err := validTransactionType(data.Type); err != nil {
		abortError(c, err)
		return
	}

	if err := validTransactionStatus(data.Status); err != nil {
		abortError(c, err)
		return
	}

	transaction, err := co.queries.CreateTransaction(c.Request.Context(), data)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": transaction})
}

// UpdateTransaction updates a transaction, selected by the ID parameter.
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var data models.TransactionUpdate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	if data.Amount != nil && data.Amount.IsNegative() {
		abortError(c, fmt.Errorf("the amount must not be negative, use the type field to record an expense: %w", models.ErrValidation))
		return
	}

	transaction, err := co.queries.UpdateTransaction(c.Request.Context(), id.UUID, data)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transaction})
}

// DeleteTransaction deletes a transaction, selected by the ID parameter.
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := co.queries.DeleteTransaction(c.Request.Context(), id.UUID); err != nil {
		abortError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
