package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/httputil"
	"github.com/smart-wallet/core/internal/models"
	wallet_uuid "github.com/smart-wallet/core/internal/uuid"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func (co Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetAccounts)
		r.POST("", co.CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", co.GetAccount)
		r.PATCH("/:id", co.UpdateAccount)
		r.DELETE("/:id", co.DeleteAccount)

		r.OPTIONS("/:id/trend", httputil.OptionsGet)
		r.GET("/:id/trend", co.GetAccountTrend)
	}
}

// OptionsAccountDetail returns the allowed HTTP verbs.
func OptionsAccountDetail(c *gin.Context) {
	if _, ok := bindID(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// AccountQuery is the query string binding for account lists.
type AccountQuery struct {
	UserID wallet_uuid.UUID   `form:"user_id"`
	Type   models.AccountType `form:"type"`
}

// validAccountType checks an account type against the known set. The empty
// string is valid, it means "not set".
func validAccountType(t models.AccountType) error {
	if t != "" && !slices.Contains(models.AccountTypes, t) {
		return fmt.Errorf("%q is not a valid account type: %w", t, models.ErrValidation)
	}

	return nil
}

// GetAccounts returns all accounts matching the query, newest first.
func (co Controller) GetAccounts(c *gin.Context) {
	var query AccountQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abortError(c, err)
		return
	}

	if err := validAccountType(query.Type); err != nil {
		abortError(c, err)
		return
	}

	accounts, err := co.queries.Accounts(c.Request.Context(), backend.AccountFilter{
		UserID: query.UserID.UUID,
		Type:   query.Type,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": accounts})
}

// GetAccount returns a single account.
func (co Controller) GetAccount(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	account, err := co.queries.Account(c.Request.Context(), id.UUID)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": account})
}

// CreateAccount creates a new account.
func (co Controller) CreateAccount(c *gin.Context) {
	var data models.AccountCreate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	if err := validAccountType(data.Type); err != nil {
		abortError(c, err)
		return
	}

	account, err := co.queries.CreateAccount(c.Request.Context(), data)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": account})
}

// UpdateAccount updates an account, selected by the ID parameter.
func (co Controller) UpdateAccount(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var data models.AccountUpdate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	account, err := co.queries.UpdateAccount(c.Request.Context(), id.UUID, data)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": account})
}

// DeleteAccount deletes an account, selected by the ID parameter.
func (co Controller) DeleteAccount(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := co.queries.DeleteAccount(c.Request.Context(), id.UUID); err != nil {
		abortError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
