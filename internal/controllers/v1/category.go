package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/httputil"
	"github.com/smart-wallet/core/internal/models"
	wallet_uuid "github.com/smart-wallet/core/internal/uuid"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", co.GetCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

// OptionsCategoryDetail returns the allowed HTTP verbs.
func OptionsCategoryDetail(c *gin.Context) {
	if _, ok := bindID(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CategoryQuery is the query string binding for category lists.
type CategoryQuery struct {
	UserID wallet_uuid.UUID       `form:"user_id"`
	Type   models.TransactionType `form:"type"`
}

// GetCategories returns all categories matching the query in name order.
func (co Controller) GetCategories(c *gin.Context) {
	var query CategoryQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abortError(c, err)
		return
	}

	categories, err := co.queries.Categories(c.Request.Context(), backend.CategoryFilter{
		UserID: query.UserID.UUID,
		Type:   query.Type,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetCategory returns a single category.
func (co Controller) GetCategory(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	category, err := co.queries.Category(c.Request.Context(), id.UUID)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

// CreateCategory creates a new category.
func (co Controller) CreateCategory(c *gin.Context) {
	var data models.CategoryCreate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	category, err := co.queries.CreateCategory(c.Request.Context(), data)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

// UpdateCategory updates a category, selected by the ID parameter.
func (co Controller) UpdateCategory(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var data models.CategoryUpdate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	category, err := co.queries.UpdateCategory(c.Request.Context(), id.UUID, data)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

// DeleteCategory deletes a category, selected by the ID parameter.
// Transactions that referenced it become uncategorized.
func (co Controller) DeleteCategory(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := co.queries.DeleteCategory(c.Request.Context(), id.UUID); err != nil {
		abortError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
