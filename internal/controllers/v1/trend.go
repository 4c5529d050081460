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
)

// defaultTrendDays is the window for balance trends when none is requested.
const defaultTrendDays = 30

// TrendQuery is the query string binding for balance trend requests. The
// window is inclusive on both ends.
type TrendQuery struct {
	From  string `form:"from"`
	Until string `form:"until"`
}

// window resolves the requested date range, defaulting to the last 30 days
// ending today.
func (q TrendQuery) window() (types.Date, types.Date, error) {
	until := types.DateOf(time.Now())
	from := until.AddDays(-(defaultTrendDays - 1))

	var err error
	if q.Until != "" {
		if until, err = types.ParseDate(q.Until); err != nil {
			return from, until, fmt.Errorf("the until parameter must be a date in YYYY-MM-DD format: %w", models.ErrValidation)
		}

		from = until.AddDays(-(defaultTrendDays - 1))
	}

	if q.From != "" {
		if from, err = types.ParseDate(q.From); err != nil {
			return from, until, fmt.Errorf("the from parameter must be a date in YYYY-MM-DD format: %w", models.ErrValidation)
		}
	}

	if until.Before(from) {
		return from, until, fmt.Errorf("the from date must not be after the until date: %w", models.ErrValidation)
	}

	return from, until, nil
}

// GetAccountTrend returns the end-of-day balance series for one account.
func (co Controller) GetAccountTrend(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var query TrendQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abortError(c, err)
		return
	}

	from, until, err := query.window()
	if err != nil {
		abortError(c, err)
		return
	}

	ctx := c.Request.Context()

	account, err := co.queries.Account(ctx, id.UUID)
	if err != nil {
		abortError(c, err)
		return
	}

	transactions, err := co.queries.Transactions(ctx, backend.TransactionFilter{
		AccountID: id.UUID,
		FromDate:  from,
		UntilDate: until,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	days := int(until.Time().Sub(from.Time()).Hours()/24) + 1

	c.JSON(http.StatusOK, gin.H{
		"data": analytics.BalanceTrend(account.Balance, transactions, days, until),
	})
}
