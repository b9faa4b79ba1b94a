package router

import "github.com/gin-gonic/gin"

// Module is a feature that mounts its routes on the API group.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
