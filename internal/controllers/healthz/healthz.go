// Package healthz serves the liveness endpoint.
package healthz

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-wallet/core/internal/httperror"
	"github.com/smart-wallet/core/internal/httputil"
)

// Check reports whether the upstream backend is reachable.
type Check func(ctx context.Context) error

// RegisterRoutes registers the healthz routes with the RouterGroup that is
// passed.
func RegisterRoutes(r *gin.RouterGroup, check Check) {
	r.OPTIONS("", Options)
	r.GET("", Get(check))
}

// Options returns the allowed HTTP verbs.
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the application health and, if not healthy, an error.
func Get(check Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusBadGateway, httperror.New(err))
				return
			}
		}

		c.Status(http.StatusNoContent)
	}
}
