package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/smart-wallet/core/internal/analytics"
	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/httputil"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
	wallet_uuid "github.com/smart-wallet/core/internal/uuid"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)

		r.OPTIONS("/:id/progress", httputil.OptionsGet)
		r.GET("/:id/progress", co.GetBudgetProgress)
	}
}

// OptionsBudgetDetail returns the allowed HTTP verbs.
func OptionsBudgetDetail(c *gin.Context) {
	if _, ok := bindID(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// BudgetQuery is the query string binding for budget lists.
type BudgetQuery struct {
	UserID     wallet_uuid.UUID    `form:"user_id"`
	CategoryID wallet_uuid.UUID    `form:"category_id"`
	Period     models.BudgetPeriod `form:"period"`
}

// validBudgetPeriod checks a budget period against the known set. The
// empty string is valid, it means "not set".
func validBudgetPeriod(p models.BudgetPeriod) error {
	if p != "" && !slices.Contains(models.BudgetPeriods, p) {
		return fmt.Errorf("%q is not a valid budget period: %w", p, models.ErrValidation)
	}

	return nil
}

// GetBudgets returns all budgets matching the query, newest start date
// first.
func (co Controller) GetBudgets(c *gin.Context) {
	var query BudgetQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abortError(c, err)
		return
	}

	if err := validBudgetPeriod(query.Period); err != nil {
		abortError(c, err)
		return
	}

	budgets, err := co.queries.Budgets(c.Request.Context(), backend.BudgetFilter{
		UserID:     query.UserID.UUID,
		CategoryID: query.CategoryID.UUID,
		Period:     query.Period,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budgets})
}

// GetBudget returns a single budget.
func (co Controller) GetBudget(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	budget, err := co.queries.Budget(c.Request.Context(), id.UUID)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}

// CreateBudget creates a new budget.
func (co Controller) CreateBudget(c *gin.Context) {
	var data models.BudgetCreate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	if err := validBudgetPeriod(data.Period); err != nil {
		abortError(c, err)
		return
	}

	budget, err := co.queries.CreateBudget(c.Request.Context(), data)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": budget})
}

// UpdateBudget updates a budget, selected by the ID parameter.
func (co Controller) UpdateBudget(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var data models.BudgetUpdate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	budget, err := co.queries.UpdateBudget(c.Request.Context(), id.UUID, data)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}

// DeleteBudget deletes a budget, selected by the ID parameter.
func (co Controller) DeleteBudget(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := co.queries.DeleteBudget(c.Request.Context(), id.UUID); err != nil {
		abortError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBudgetProgress returns a budget's consumption within the period
// containing today. Spending is computed from the transactions themselves,
// not from the backend's denormalized figure.
func (co Controller) GetBudgetProgress(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	budget, err := co.queries.Budget(c.Request.Context(), id.UUID)
	if err != nil {
		abortError(c, err)
		return
	}

	today := types.DateOf(time.Now())
	start, end := analytics.Window(budget.Period, today)

	filter := backend.TransactionFilter{
		UserID:    budget.UserID,
		Type:      models.TypeExpense,
		FromDate:  start,
		UntilDate: end,
	}
	if budget.CategoryID != nil && *budget.CategoryID != uuid.Nil {
		filter.CategoryID = *budget.CategoryID
	}

	transactions, err := co.queries.Transactions(c.Request.Context(), filter)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": analytics.BudgetProgress(budget, transactions, today)})
}
