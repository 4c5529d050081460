package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-wallet/core/internal/httputil"
	"github.com/smart-wallet/core/internal/models"
)

// RegisterUserRoutes registers the routes for user registration with
// the RouterGroup that is passed.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", co.CreateUser)
}

// UserCreateResponse carries the created profile and the seeded categories.
// SeedError is set when the default categories could not be created; the
// profile itself is kept either way.
type UserCreateResponse struct {
	Profile    models.UserProfile `json:"profile"`
	Categories []models.Category  `json:"categories"`
	SeedError  string             `json:"seed_error,omitempty"`
}

// CreateUser creates a profile and seeds the default category set. A user
// with the same email must not exist yet.
func (co Controller) CreateUser(c *gin.Context) {
	var data models.UserProfileCreate
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	if data.Email == "" {
		abortError(c, fmt.Errorf("the email field must be set: %w", models.ErrValidation))
		return
	}

	ctx := c.Request.Context()

	existing, err := co.backend.GetProfileByEmail(ctx, data.Email)
	if err != nil {
		abortError(c, err)
		return
	}
	if existing != nil {
		abortError(c, fmt.Errorf("a profile with this email already exists: %w", models.ErrValidation))
		return
	}

	profile, err := co.backend.CreateProfile(ctx, data)
	if err != nil {
		abortError(c, err)
		return
	}

	response := UserCreateResponse{Profile: profile}

	// Seeding failures do not undo the profile, the categories can be
	// created by hand later.
	categories, err := co.queries.SeedDefaultCategories(ctx, profile.ID)
	if err != nil {
		response.SeedError = err.Error()
	} else {
		response.Categories = categories
	}

	c.JSON(http.StatusCreated, gin.H{"data": response})
}
