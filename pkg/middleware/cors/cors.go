package cors

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-api/pkg/config"
)

const (
	allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowedHeaders = "Content-Type, X-Request-ID"
	exposedHeaders = "X-Request-ID, X-Cache"
)

// New returns a CORS middleware for the booking front-ends. An empty origin
// list allows any origin, but credentials are only ever granted to origins
// that were listed explicitly.
func New(cfg config.CORSConfig) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origins[normalize(origin)] = struct{}{}
	}
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		_, listed := origins[normalize(origin)]
		switch {
		case listed:
			header.Set("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials {
				header.Set("Access-Control-Allow-Credentials", "true")
			}
		case len(origins) == 0:
			header.Set("Access-Control-Allow-Origin", "*")
		default:
			if isPreflight(c.Request) {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}
		header.Set("Access-Control-Expose-Headers", exposedHeaders)

		if isPreflight(c.Request) {
			header.Set("Access-Control-Allow-Methods", allowedMethods)
			header.Set("Access-Control-Allow-Headers", allowedHeaders)
			header.Set("Access-Control-Max-Age", maxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}

func normalize(origin string) string {
	return strings.ToLower(strings.TrimRight(origin, "/"))
}
