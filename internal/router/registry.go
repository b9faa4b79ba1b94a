package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const DefaultBasePath = "/api"

// Registry collects modules and mounts them under one base path.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	logger      *logrus.Logger
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine, basePath string, logger *logrus.Logger) *Registry {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	return &Registry{Engine: engine, API: engine.Group(basePath), logger: logger}
}

// Use adds middleware applied to every module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts the middleware and then every module in insertion
// order. It must run once.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"module": m.Name(), "base": r.API.BasePath()}).Debug("module registered")
		}
	}
}
