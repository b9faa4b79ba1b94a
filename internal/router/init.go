package router

import (
	"github.com/oksasatya/go-ddd-user-accounts/internal/application"
	"github.com/oksasatya/go-ddd-user-accounts/internal/container"
	handlers "github.com/oksasatya/go-ddd-user-accounts/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-accounts/internal/router/modules"
)

// BuildUserUseCases constructs every user use case from the container.
func BuildUserUseCases() handlers.UserUseCases {
	uow := container.GetUnitOfWork()
	users := container.GetUsers()
	hasher := container.GetHasher()
	opts := container.UseCaseOptions()

	return handlers.UserUseCases{
		Create:         application.NewCreateUser(uow, hasher, opts...),
		Update:         application.NewUpdateUser(uow, opts...),
		ChangePassword: application.NewChangePassword(uow, hasher, opts...),
		Activate:       application.NewActivateUser(uow, opts...),
		Deactivate:     application.NewDeactivateUser(uow, opts...),
		Block:          application.NewBlockUser(uow, opts...),
		Delete:         application.NewDeleteUser(uow, opts...),
		FindByID:       application.NewFindUserByID(users, opts...),
		FindByEmail:    application.NewFindUserByEmail(users, opts...),
		List:           application.NewListUsers(users, opts...),
		Search:         application.NewSearchUsers(opts...),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	h := handlers.NewUserHandler(BuildUserUseCases(), container.GetLogger())

	var db modules.Pinger
	if pool := container.GetPGPool(); pool != nil {
		db = pool
	}
	r.Add(modules.NewHealthModule(db))
	r.Add(modules.NewUserModule(h, container.GetRedis(), cfg.RateLimitPerMinute))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
}
