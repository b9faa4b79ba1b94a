package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/config"
	"github.com/oksasatya/go-ddd-user-accounts/internal/application"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/service"
	"github.com/oksasatya/go-ddd-user-accounts/internal/infrastructure/cache"
	"github.com/oksasatya/go-ddd-user-accounts/internal/infrastructure/search"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	esClient    *elasticsearch.Client

	publisher event.Publisher
	hasher    service.PasswordHasher
	users     repository.UserRepository
	uow       repository.UnitOfWork
)

func SetConfig(c *config.Config)         { cfg = c }
func GetConfig() *config.Config          { return cfg }
func SetLogger(l *logrus.Logger)         { logger = l }
func GetLogger() *logrus.Logger          { return logger }
func SetPGPool(p *pgxpool.Pool)          { pgPool = p }
func GetPGPool() *pgxpool.Pool           { return pgPool }
func SetRedis(r *redis.Client)           { redisClient = r }
func GetRedis() *redis.Client            { return redisClient }
func SetES(c *elasticsearch.Client)      { esClient = c }
func SetHasher(h service.PasswordHasher) { hasher = h }
func GetHasher() service.PasswordHasher  { return hasher }
func SetPublisher(p event.Publisher)     { publisher = p }
func GetPublisher() event.Publisher {
	if publisher == nil {
		return event.NopPublisher{}
	}
	return publisher
}

// SetStorage installs the repository and unit of work of the selected
// storage driver.
func SetStorage(r repository.UserRepository, u repository.UnitOfWork) {
	users = r
	uow = u
}

func GetUsers() repository.UserRepository  { return users }
func GetUnitOfWork() repository.UnitOfWork { return uow }

// UseCaseOptions wires the optional collaborators that are configured and
// enabled: logger, event publisher, Redis cache and Elasticsearch index.
func UseCaseOptions() []application.Option {
	opts := []application.Option{
		application.WithLogger(logger),
		application.WithPublisher(GetPublisher()),
	}
	if cfg == nil {
		return opts
	}
	if cfg.CacheEnabled && redisClient != nil {
		opts = append(opts, application.WithCache(cache.NewUserCache(redisClient, cfg.UserCacheTTL)))
	}
	if cfg.SearchEnabled && esClient != nil {
		opts = append(opts, application.WithIndex(search.NewUserIndex(esClient, cfg.ESUsersIndex, logger)))
	}
	return opts
}
