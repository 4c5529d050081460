// Package v1 implements the first version of the gateway API.
//
// Responses use the envelope {"data": ...} on success and {"error": ...}
// on failure. OPTIONS requests on every resource advertise the allowed
// verbs in the "allow" header.
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-wallet/core/internal/ai"
	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/httperror"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/queries"
	"github.com/smart-wallet/core/internal/storage"
	wallet_uuid "github.com/smart-wallet/core/internal/uuid"
)

// Controller holds the dependencies of the v1 handlers. Parser and
// Uploader are nil when no service role key is configured; the endpoints
// needing them then report the feature as unavailable.
type Controller struct {
	queries  *queries.Queries
	backend  *backend.Client
	parser   *ai.Parser
	uploader *storage.Uploader
}

// NewController creates a Controller over the given dependencies.
func NewController(q *queries.Queries, b *backend.Client, parser *ai.Parser, uploader *storage.Uploader) Controller {
	return Controller{
		queries:  q,
		backend:  b,
		parser:   parser,
		uploader: uploader,
	}
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is
// passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetV1)
	r.OPTIONS("", OptionsV1)

	co.RegisterAccountRoutes(r.Group("/accounts"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterAnalyticsRoutes(r.Group("/analytics"))
	co.RegisterReceiptRoutes(r.Group("/receipts"))
	co.RegisterUploadRoutes(r.Group("/uploads"))
	co.RegisterUserRoutes(r.Group("/users"))
}

// GetV1 returns the links to the v1 resources.
func GetV1(c *gin.Context) {
	base := c.Request.URL.Path

	c.JSON(http.StatusOK, gin.H{
		"links": map[string]string{
			"accounts":     base + "/accounts",
			"transactions": base + "/transactions",
			"categories":   base + "/categories",
			"budgets":      base + "/budgets",
			"analytics":    base + "/analytics/summary",
			"receipts":     base + "/receipts/parse",
			"uploads":      base + "/uploads",
			"users":        base + "/users",
		},
	})
}

// OptionsV1 returns the allowed HTTP verbs.
func OptionsV1(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

// URIID is the URI binding for a resource ID.
type URIID struct {
	ID wallet_uuid.UUID `uri:"id" binding:"required"`
}

// status returns the HTTP status for a data layer error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrValidation), errors.Is(err, wallet_uuid.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrBackend), errors.Is(err, models.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// abortError renders an error with the status derived from the taxonomy.
func abortError(c *gin.Context, err error) {
	c.JSON(status(err), httperror.New(err))
}

// bindID binds and validates the resource ID from the URI.
func bindID(c *gin.Context) (wallet_uuid.UUID, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		abortError(c, wallet_uuid.ErrInvalid)
		return wallet_uuid.Nil, false
	}

	if uri.ID == wallet_uuid.Nil {
		abortError(c, wallet_uuid.ErrInvalid)
		return wallet_uuid.Nil, false
	}

	return uri.ID, true
}
