package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-user-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-user-accounts/pkg/response"
)

type DebugModule struct {
	rdb *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule { return &DebugModule{rdb: rdb} }

func (m *DebugModule) Name() string { return "debug" }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar metrics, rate limited per client
	rl := middleware.RateLimit(m.rdb, 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}

// Pinger reports whether a backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthModule struct {
	started time.Time
	db      Pinger
}

// NewHealthModule reports degraded health when db is set and fails to ping.
func NewHealthModule(db Pinger) *HealthModule {
	return &HealthModule{started: time.Now(), db: db}
}

func (m *HealthModule) Name() string { return "health" }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		if m.db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := m.db.Ping(ctx); err != nil {
				response.Error[any](c, http.StatusServiceUnavailable, "database unavailable", gin.H{"status": "degraded"})
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(m.started).Round(time.Second).String(),
		}, "healthy", nil)
	})
}
