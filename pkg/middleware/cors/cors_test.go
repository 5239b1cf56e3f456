package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tutoring-api/pkg/config"
)

func corsRouter(cfg config.CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(cfg))
	r.GET("/terms", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func request(method, origin string) *http.Request {
	req := httptest.NewRequest(method, "/terms", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	return req
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	rec := httptest.NewRecorder()
	cfg := config.CORSConfig{AllowedOrigins: []string{"https://Booking.example.edu/"}, AllowCredentials: true}
	corsRouter(cfg).ServeHTTP(rec, request(http.MethodGet, "https://booking.example.edu"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://booking.example.edu", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Cache")
}

func TestCORSUnknownOrigin(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: []string{"https://booking.example.edu"}}

	rec := httptest.NewRecorder()
	corsRouter(cfg).ServeHTTP(rec, request(http.MethodGet, "https://evil.example"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	corsRouter(cfg).ServeHTTP(rec, request(http.MethodOptions, "https://evil.example"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORSWildcardNeverGrantsCredentials(t *testing.T) {
	rec := httptest.NewRecorder()
	corsRouter(config.CORSConfig{AllowCredentials: true}).ServeHTTP(rec, request(http.MethodGet, "https://any.example"))

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	corsRouter(config.CORSConfig{MaxAge: 10 * time.Minute}).ServeHTTP(rec, request(http.MethodOptions, "https://booking.example.edu"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}
