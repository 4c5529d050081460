package httputil

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smart-wallet/core/internal/models"
)

var (
	ErrInvalidBody      = fmt.Errorf("the body of your request contains invalid or un-parseable data: %w", models.ErrValidation)
	ErrRequestBodyEmpty = fmt.Errorf("the request body must not be empty: %w", models.ErrValidation)
)

// BindData binds the JSON request body to the struct passed in.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// BindQuery binds the query string to the struct passed in.
func BindQuery(c *gin.Context, data any) error {
	if err := c.ShouldBindQuery(data); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), models.ErrValidation)
	}

	return nil
}
