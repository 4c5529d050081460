package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-wallet/core/internal/httperror"
	"github.com/smart-wallet/core/internal/httputil"
)

// errFeatureUnavailable is reported when an endpoint needs the service
// role key and none is configured.
var errFeatureUnavailable = errors.New("this feature requires a service role key, which is not configured")

// RegisterReceiptRoutes registers the routes for receipt parsing with
// the RouterGroup that is passed.
func (co Controller) RegisterReceiptRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/parse", httputil.OptionsPost)
	r.POST("/parse", co.ParseReceipt)
}

// RegisterUploadRoutes registers the routes for file uploads with
// the RouterGroup that is passed.
func (co Controller) RegisterUploadRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", co.Upload)
}

// ReceiptParseRequest is the body of a receipt parse request.
type ReceiptParseRequest struct {
	ImageURL string `json:"image_url"`
}

// ParseReceipt extracts structured transaction data from a receipt image.
// An answer the model could not structure is still a success; the raw text
// is returned for manual entry.
func (co Controller) ParseReceipt(c *gin.Context) {
	if co.parser == nil {
		c.JSON(http.StatusServiceUnavailable, httperror.New(errFeatureUnavailable))
		return
	}

	var data ReceiptParseRequest
	if err := httputil.BindData(c, &data); err != nil {
		abortError(c, err)
		return
	}

	receipt, err := co.parser.Parse(c.Request.Context(), data.ImageURL)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": receipt})
}

// Upload stores the posted file in the receipt bucket and returns its key
// and URL.
func (co Controller) Upload(c *gin.Context) {
	if co.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, httperror.New(errFeatureUnavailable))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, httperror.NewMessage("you must send a file in the \"file\" form field"))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, httperror.NewMessage("the uploaded file could not be read"))
		return
	}
	defer file.Close()

	object, err := co.uploader.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": object})
}
