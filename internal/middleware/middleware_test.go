package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/clinic-readiness-api/internal/service"
	"github.com/noah-isme/clinic-readiness-api/pkg/logger"
)

func TestClinicianRequiresHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Clinician())
	router.GET("/children", func(c *gin.Context) {
		c.String(http.StatusOK, ClinicianID(c))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/children", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/children", nil)
	req.Header.Set(logger.ClinicianHeader, strings.Repeat("x", 200))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/children", nil)
	req.Header.Set(logger.ClinicianHeader, " clin-1 ")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "clin-1", rec.Body.String())
}

func TestResponseMetaCarriesCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(WithResponseMeta())
	router.GET("/readiness", func(c *gin.Context) {
		SetCacheHit(c, true)
		c.JSON(http.StatusOK, ResponseMeta(c))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readiness", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache_hit":true`)
	assert.Contains(t, rec.Body.String(), `"processing_time_ms"`)
}

func TestMetricsMiddlewareObserves(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/children/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/children/abc", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	families, err := metrics.Registry().Gather()
	assert.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "http_requests_total" {
			for _, m := range f.GetMetric() {
				for _, l := range m.GetLabel() {
					if l.GetName() == "path" && l.GetValue() == "/children/:id" {
						found = true
					}
				}
			}
		}
	}
	assert.True(t, found)
}
