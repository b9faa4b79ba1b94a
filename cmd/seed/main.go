package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-user-accounts/config"
	"github.com/oksasatya/go-ddd-user-accounts/internal/application"
	"github.com/oksasatya/go-ddd-user-accounts/internal/container"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/internal/infrastructure/security"
	"github.com/oksasatya/go-ddd-user-accounts/pkg/helpers"
)

var demoUsers = []application.CreateUserInput{
	{Name: "Maria Silva", Email: "maria.silva@example.com", Telephone: "(11) 98765-4321", Password: "Password1!"},
	{Name: "Joao Pereira", Email: "joao.pereira@example.com", Telephone: "(21) 99876-5432", Password: "Password1!"},
	{Name: "Ana Costa", Email: "ana.costa@example.com", Telephone: "(31) 3456-7890", Password: "Password1!"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	container.SetConfig(cfg)
	container.SetLogger(logger)

	ctx := context.Background()
	closeStorage, err := container.InitStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeStorage()

	hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}
	create := application.NewCreateUser(container.GetUnitOfWork(), hasher, application.WithLogger(logger))

	for _, in := range demoUsers {
		out, err := create.Execute(ctx, in)
		switch {
		case errors.Is(err, domainerr.KindDuplicateEmail):
			logger.WithField("email", in.Email).Info("already seeded")
		case err != nil:
			logger.WithError(err).Fatalf("seed %s", in.Email)
		default:
			logger.WithField("id", out.ID).Infof("seeded %s (password %s)", out.Email, in.Password)
		}
	}
}
