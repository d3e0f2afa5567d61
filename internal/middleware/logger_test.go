package middleware_test

import (
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tdstrack/internal/middleware"
)

func TestRequestID_PropagatesIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = middleware.RequestIDFrom(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDFrom_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, "-", middleware.RequestIDFrom(c))
}

func TestConfigureLogging_DebugAddsCallerDetail(t *testing.T) {
	origFlags := log.Flags()
	origMode := gin.Mode()
	defer func() {
		log.SetFlags(origFlags)
		gin.SetMode(origMode)
	}()

	middleware.ConfigureLogging("debug")
	assert.NotZero(t, log.Flags()&log.Lshortfile)
	assert.NotEqual(t, gin.ReleaseMode, gin.Mode())

	middleware.ConfigureLogging("info")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}
