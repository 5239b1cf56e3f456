package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
)

// Envelope is the body of every API response.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends an uncacheable success response. Slot and booking answers go
// stale as soon as another appointment is saved.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta ...map[string]interface{}) {
	noStore(c)
	c.JSON(status, envelope(data, pagination, meta))
}

// Cacheable sends a success response that clients may reuse for maxAge.
// Used for calendar data, which only changes when a roster is edited.
func Cacheable(c *gin.Context, data interface{}, maxAge time.Duration, meta ...map[string]interface{}) {
	if maxAge <= 0 {
		JSON(c, http.StatusOK, data, nil, meta...)
		return
	}
	c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", int(maxAge.Seconds())))
	c.JSON(http.StatusOK, envelope(data, nil, meta))
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

// Error converts err to the common error structure.
func Error(c *gin.Context, err error) {
	ErrorWithMeta(c, err, nil)
}

// ErrorWithMeta is Error with extra context attached, such as the list of
// rules a rejected appointment broke.
func ErrorWithMeta(c *gin.Context, err error, meta map[string]interface{}) {
	appErr := appErrors.FromError(err)
	noStore(c)
	_ = c.Error(err)
	c.JSON(appErr.Status, Envelope{Error: appErr, Meta: meta})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	noStore(c)
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

func envelope(data interface{}, pagination *models.Pagination, meta []map[string]interface{}) Envelope {
	env := Envelope{Data: data, Pagination: pagination}
	if len(meta) > 0 && meta[0] != nil {
		env.Meta = meta[0]
	}
	return env
}
