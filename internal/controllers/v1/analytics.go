package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smart-wallet/core/internal/analytics"
	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/httputil"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
	wallet_uuid "github.com/smart-wallet/core/internal/uuid"
)

// defaultSummaryDays is the window for summaries when none is requested.
const defaultSummaryDays = 30

// RegisterAnalyticsRoutes registers the routes for analytics with
// the RouterGroup that is passed.
func (co Controller) RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", co.GetSummary)

	r.OPTIONS("/monthly", httputil.OptionsGet)
	r.GET("/monthly", co.GetMonthlyTrend)
}

// SummaryQuery is the query string binding for summary requests.
type SummaryQuery struct {
	UserID wallet_uuid.UUID `form:"user_id"`
	Days   int              `form:"days"`
	Months int              `form:"months"`
}

func (q SummaryQuery) validate() error {
	if q.Days < 0 || q.Days > 366 {
		return fmt.Errorf("the days parameter must be between 1 and 366: %w", models.ErrValidation)
	}

	if q.Months < 0 || q.Months > 36 {
		return fmt.Errorf("the months parameter must be between 1 and 36: %w", models.ErrValidation)
	}

	return nil
}

// GetSummary returns the dashboard aggregate for the requested window,
// 30 days by default.
func (co Controller) GetSummary(c *gin.Context) {
	var query SummaryQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abortError(c, err)
		return
	}

	if err := query.validate(); err != nil {
		abortError(c, err)
		return
	}

	days := query.Days
	if days == 0 {
		days = defaultSummaryDays
	}

	ctx := c.Request.Context()
	today := types.DateOf(time.Now())

	transactions, err := co.queries.Transactions(ctx, backend.TransactionFilter{
		UserID:   query.UserID.UUID,
		FromDate: today.AddDays(-(days - 1)),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	categories, err := co.queries.Categories(ctx, backend.CategoryFilter{UserID: query.UserID.UUID})
	if err != nil {
		abortError(c, err)
		return
	}

	accounts, err := co.queries.Accounts(ctx, backend.AccountFilter{UserID: query.UserID.UUID})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": analytics.Summarize(transactions, categories, accounts, days, today),
	})
}

// GetMonthlyTrend returns per-month income and expense totals, 12 months
// by default.
func (co Controller) GetMonthlyTrend(c *gin.Context) {
	var query SummaryQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abortError(c, err)
		return
	}

	if err := query.validate(); err != nil {
		abortError(c, err)
		return
	}

	months := query.Months
	if months == 0 {
		months = 12
	}

	today := types.DateOf(time.Now())
	first := types.YearMonthOf(today)
	from := types.DateOf(first.First().Time().AddDate(0, -(months - 1), 0))

	transactions, err := co.queries.Transactions(c.Request.Context(), backend.TransactionFilter{
		UserID:   query.UserID.UUID,
		FromDate: from,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": analytics.MonthlyTrend(transactions, months, today),
	})
}
