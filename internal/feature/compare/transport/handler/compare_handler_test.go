package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora_backend/internal/feature/compare/adapters"
	"aurora_backend/internal/feature/compare/domain/entity"
	"aurora_backend/internal/feature/compare/transport/handler"
	"aurora_backend/internal/feature/compare/usecase"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewCompareHandler(usecase.NewCompareUsecase(adapters.NewMemorySessionStore()))
	r := gin.New()
	r.POST("/api/compare", h.Create)
	r.GET("/api/compare/:id", h.Get)
	r.POST("/api/compare/:id/weight", h.UpdateWeight)
	r.POST("/api/compare/:id/snapshot", h.Snapshot)
	return r
}

func do(r http.Handler, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCompareHandler_Flow(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPost, "/api/compare", `{"title":"VDB","weights":{"a":1,"b":1},"metrics":{"a":1,"b":0}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entity.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.InDelta(t, 0.5, created.Score, 1e-9)

	w = do(r, http.MethodPost, "/api/compare/"+created.ID+"/weight", `{"metric":"b","weight":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var upd struct {
		Session entity.Session `json:"session"`
		Torque  float64        `json:"torque"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upd))
	assert.InDelta(t, 0.5, upd.Torque, 1e-9)
	assert.InDelta(t, 1.0, upd.Session.Score, 1e-9)

	w = do(r, http.MethodPost, "/api/compare/"+created.ID+"/snapshot", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var snap struct {
		Snapshot entity.Snapshot `json:"snapshot"`
		Session  entity.Session  `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Contains(t, snap.Snapshot.SVG, "VDB")
	assert.Len(t, snap.Session.Snapshots, 1)

	w = do(r, http.MethodGet, "/api/compare/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got entity.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Snapshots, 1)
	assert.InDelta(t, 0.0, got.Weights["b"], 1e-9)
}

func TestCompareHandler_Errors(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name           string
		method, url    string
		body           string
		expectedStatus int
	}{
		{"create: malformed json", http.MethodPost, "/api/compare", `{`, http.StatusBadRequest},
		{"create: metrics missing", http.MethodPost, "/api/compare", `{"title":"x"}`, http.StatusBadRequest},
		{"create: negative weight", http.MethodPost, "/api/compare", `{"weights":{"a":-1},"metrics":{"a":1}}`, http.StatusBadRequest},
		{"get: unknown", http.MethodGet, "/api/compare/nope", "", http.StatusNotFound},
		{"weight: unknown", http.MethodPost, "/api/compare/nope/weight", `{"metric":"a","weight":1}`, http.StatusNotFound},
		{"weight: missing weight", http.MethodPost, "/api/compare/nope/weight", `{"metric":"a"}`, http.StatusBadRequest},
		{"snapshot: unknown", http.MethodPost, "/api/compare/nope/snapshot", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
