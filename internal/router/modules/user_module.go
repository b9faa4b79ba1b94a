package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ddd-user-accounts/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-accounts/internal/interface/middleware"
)

// UserModule serves the user account API under the given group:
//
//	POST   /users                    create
//	GET    /users                    list (page, size, orderBy, direction)
//	GET    /users/search             full text search (q, size)
//	GET    /users/by-email           lookup by exact email
//	GET    /users/:id                lookup by id
//	PUT    /users/:id                update name, email, telephone
//	PATCH  /users/:id/password       change password
//	PATCH  /users/:id/activate       status transitions
//	PATCH  /users/:id/deactivate
//	PATCH  /users/:id/block
//	DELETE /users/:id                delete
//
// Writes are rate limited per IP and route when a limit is configured.
type UserModule struct {
	Handler   *handlers.UserHandler
	rdb       *redis.Client
	perMinute int
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, perMinute int) *UserModule {
	return &UserModule{Handler: h, rdb: rdb, perMinute: perMinute}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	limit := middleware.RateLimit(m.rdb, m.perMinute, time.Minute, middleware.KeyByIPAndPath(),
		middleware.AnyOf(middleware.AllowReads(), middleware.AllowPrivateIP()))

	users := rg.Group("/users", limit)
	{
		users.POST("", m.Handler.Create)
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/by-email", m.Handler.GetByEmail)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Update)
		users.PATCH("/:id/password", m.Handler.ChangePassword)
		users.PATCH("/:id/activate", m.Handler.Activate)
		users.PATCH("/:id/deactivate", m.Handler.Deactivate)
		users.PATCH("/:id/block", m.Handler.Block)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
