package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/clinic-readiness-api/internal/engine"
	"github.com/noah-isme/clinic-readiness-api/internal/repository"
	"github.com/noah-isme/clinic-readiness-api/internal/service"
	"github.com/noah-isme/clinic-readiness-api/pkg/validation"
)

type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	validate := validation.New()
	eng := engine.New(nil,
		engine.WithRandomSource(zeroSource{}),
		engine.WithClock(func() time.Time { return time.Date(2024, 9, 2, 9, 0, 0, 0, time.UTC) }),
	)
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(nil, metrics, time.Minute, logger, false)
	store := service.NewRecordStore(repository.NewMemoryChildRepository(), cacheSvc, logger)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), Handlers{
		Children:    NewChildHandler(service.NewChildService(store, validate, logger)),
		Assessments: NewAssessmentHandler(service.NewAssessmentService(store, eng, metrics, validate, logger)),
		Goals:       NewGoalHandler(service.NewGoalService(store, eng, metrics, validate, logger)),
		Behavior: NewBehaviorHandler(
			service.NewBehaviorService(store, eng, metrics, validate, logger),
			service.NewReinforcerService(store, eng, validate, logger),
		),
		Readiness: NewReadinessHandler(service.NewReadinessService(store, eng, cacheSvc, logger, service.ReadinessServiceConfig{})),
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, clinician, body string) (*httptest.ResponseRecorder, responseEnvelope) {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if clinician != "" {
		req.Header.Set("X-Clinician-ID", clinician)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env responseEnvelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createChild(t *testing.T, router *gin.Engine, clinician string) string {
	t.Helper()
	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/children", clinician, `{"name":"Ava","age":6,"grade":"K"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var child struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &child))
	require.NotEmpty(t, child.ID)
	return child.ID
}

func TestRoutesRequireClinicianHeader(t *testing.T) {
	router := buildRouter(t)
	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/children", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestChildLifecycle(t *testing.T) {
	router := buildRouter(t)
	id := createChild(t, router, "clin-1")

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/children", "clin-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var roster []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &roster))
	assert.Len(t, roster, 1)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/children/"+id, "clin-2", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doRequest(t, router, http.MethodDelete, "/api/v1/children/"+id, "clin-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/children/"+id, "clin-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedChildIDIsNotFound(t *testing.T) {
	router := buildRouter(t)
	createChild(t, router, "clin-1")

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/children/not-a-uuid"},
		{http.MethodDelete, "/api/v1/children/not-a-uuid"},
		{http.MethodGet, "/api/v1/children/42/readiness"},
	} {
		rec, env := doRequest(t, router, req.method, req.path, "clin-1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, req.path)
		require.NotNil(t, env.Error, req.path)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	}
}

func TestCreateChildRejectsInvalidPayload(t *testing.T) {
	router := buildRouter(t)
	rec, _ := doRequest(t, router, http.MethodPost, "/api/v1/children", "clin-1", `{"name":"","age":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/api/v1/children", "clin-1", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssessmentFinalizeFlow(t *testing.T) {
	router := buildRouter(t)
	id := createChild(t, router, "clin-1")
	base := "/api/v1/children/" + id

	rec, _ := doRequest(t, router, http.MethodPost, base+"/assessments/finalize", "clin-1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPut, base+"/assessments/draft/responses", "clin-1",
		`{"domain":"Communication","question_id":"nope","value":"Yes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPut, base+"/assessments/draft/responses", "clin-1",
		`{"domain":"Communication","question_id":"c1","value":"Yes"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := doRequest(t, router, http.MethodPost, base+"/assessments/finalize", "clin-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Goals []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Goals, 12)
	assert.Equal(t, "Active", result.Goals[0].Status)

	rec, env = doRequest(t, router, http.MethodGet, base+"/goals", "clin-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var views []struct {
		Statement string `json:"statement"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 12)
	assert.Contains(t, views[0].Statement, "Ava will")

	goalID := result.Goals[0].ID
	for i := 0; i < 3; i++ {
		rec, _ = doRequest(t, router, http.MethodPost, base+"/goals/"+goalID+"/sessions", "clin-1",
			`{"trials_correct":9,"trials_total":10}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec, env = doRequest(t, router, http.MethodPut, base+"/goals/"+goalID+"/status", "clin-1", `{"status":"Maintenance"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"Maintenance"`)

	rec, _ = doRequest(t, router, http.MethodPost, base+"/goals/"+goalID+"/sessions", "clin-1",
		`{"trials_correct":11,"trials_total":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPatch, base+"/goals/missing", "clin-1", `{"criteria":"with 90% accuracy"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBehaviorAndReinforcerRoutes(t *testing.T) {
	router := buildRouter(t)
	id := createChild(t, router, "clin-1")
	base := "/api/v1/children/" + id

	rec, env := doRequest(t, router, http.MethodPost, base+"/behaviors", "clin-1",
		`{"type":"Elopement","frequency":4,"antecedent":"transition"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"readiness_point"`)

	rec, _ = doRequest(t, router, http.MethodPost, base+"/behaviors", "clin-1", `{"type":"","frequency":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, base+"/behaviors", "clin-1",
		`{"type":"SIB","frequency":9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = doRequest(t, router, http.MethodGet, base+"/behaviors", "clin-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var overview struct {
		Penalty int `json:"penalty"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, 8, overview.Penalty)

	for _, body := range []string{
		`{"name":"Bubbles","successes":4,"attempts":5}`,
		`{"name":"stickers","successes":1,"attempts":5}`,
		`{"name":"bubbles","successes":5,"attempts":5}`,
	} {
		rec, _ = doRequest(t, router, http.MethodPost, base+"/reinforcers", "clin-1", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec, _ = doRequest(t, router, http.MethodPost, base+"/reinforcers", "clin-1",
		`{"name":"bubbles","successes":0,"attempts":4611686018427387904}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = doRequest(t, router, http.MethodGet, base+"/reinforcers/top?limit=1", "clin-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var top []struct {
		Name        string `json:"name"`
		RatePercent int    `json:"rate_percent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &top))
	require.Len(t, top, 1)
	assert.Equal(t, "Bubbles", top[0].Name)
	assert.Equal(t, 90, top[0].RatePercent)

	rec, _ = doRequest(t, router, http.MethodGet, base+"/reinforcers/top?limit=abc", "clin-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadinessRoutesReportCacheMeta(t *testing.T) {
	router := buildRouter(t)
	id := createChild(t, router, "clin-1")

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/children/"+id+"/readiness", "clin-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, env.Meta["cache_hit"])
	assert.Contains(t, string(env.Data), `"level":"Not Ready"`)

	rec, env = doRequest(t, router, http.MethodGet, "/api/v1/dashboard", "clin-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"total_children":1`)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/children/"+id+"/readiness/history", "clin-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(service.NewMetricsService(), map[string]ReadinessCheck{
		"store": func(context.Context) error { return errors.New("down") },
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	h.Health(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "down")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
