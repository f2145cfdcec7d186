package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradefair/src/app/middleware"
	"tradefair/src/core/domain"
	"tradefair/src/core/ports/mocks"
	"tradefair/src/core/usecase"
)

// newTestRouter wires the shed routes with a mock repository. The actor
// middleware injects the given actor, standing in for token validation.
func newTestRouter(t *testing.T, capacity int, actor domain.Actor) (*gin.Engine, *mocks.MockMarketRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry, err := domain.NewRegistry(capacity)
	require.NoError(t, err)
	repo := mocks.NewMockMarketRepository()
	require.NoError(t, repo.EnsureDomains(context.Background(), registry.List()))

	shedSvc := usecase.NewShedService(repo, registry, nil, log)
	capSvc := usecase.NewCapacityService(repo, nil, log)
	h := NewShedHandler(shedSvc, capSvc)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ActorKey, actor)
		c.Next()
	})
	v1 := router.Group("/v1")
	v1.GET("/domains/availability", h.Availability)
	v1.GET("/sheds/:shed_id", h.Get)
	v1.POST("/sheds", h.Create)
	return router, repo
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateShedStatusCodes(t *testing.T) {
	vendor := domain.Actor{UserID: 1, Role: domain.RoleVendor}

	t.Run("unknown domain is 400", func(t *testing.T) {
		router, _ := newTestRouter(t, 5, vendor)
		w := doJSON(router, http.MethodPost, "/v1/sheds", `{"domain":"ZZ","name":"My Shed"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "UNKNOWN_DOMAIN")
	})

	t.Run("full domain is 409", func(t *testing.T) {
		router, _ := newTestRouter(t, 1, vendor)
		w := doJSON(router, http.MethodPost, "/v1/sheds", `{"domain":"EC","name":"First"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, http.MethodPost, "/v1/sheds", `{"domain":"EC","name":"Second"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "DOMAIN_FULL")
	})

	t.Run("guest is 403", func(t *testing.T) {
		router, _ := newTestRouter(t, 5, domain.Guest())
		w := doJSON(router, http.MethodPost, "/v1/sheds", `{"domain":"EC","name":"My Shed"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing shed is 404", func(t *testing.T) {
		router, _ := newTestRouter(t, 5, vendor)
		w := doJSON(router, http.MethodGet, "/v1/sheds/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAvailabilityPayloadShape(t *testing.T) {
	vendor := domain.Actor{UserID: 1, Role: domain.RoleVendor}
	router, _ := newTestRouter(t, 100, vendor)

	for i := 0; i < 12; i++ {
		w := doJSON(router, http.MethodPost, "/v1/sheds", `{"domain":"EC","name":"Shed"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(router, http.MethodGet, "/v1/domains/availability", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]struct {
			Total     int `json:"total"`
			Used      int `json:"used"`
			Available int `json:"available"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 4)

	ec := body.Data["Electronics and Computer wares"]
	assert.Equal(t, 100, ec.Total)
	assert.Equal(t, 12, ec.Used)
	assert.Equal(t, 88, ec.Available)

	fb := body.Data["Food and Beverages"]
	assert.Equal(t, 100, fb.Available)
}
