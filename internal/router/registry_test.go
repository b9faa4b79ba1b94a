package router_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-ddd-user-accounts/internal/router"
	"github.com/oksasatya/go-ddd-user-accounts/internal/router/modules"
)

func TestRegistryMountsModulesUnderBasePath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	reg := router.NewRegistry(engine, "", nil)
	hits := 0
	reg.Use(func(c *gin.Context) { hits++; c.Next() })
	reg.Add(modules.NewHealthModule(nil))
	reg.RegisterAll()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Equal(t, 1, hits)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthReportsDatabaseOutage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	reg := router.NewRegistry(engine, "/v1", nil)
	reg.Add(modules.NewHealthModule(downDB{}))
	reg.RegisterAll()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
