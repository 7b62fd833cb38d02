package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/blindbox-labs/backend/config"
	"github.com/blindbox-labs/backend/internal/domain"
	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/authenticator"
	"github.com/blindbox-labs/backend/pkg/logger"
	"github.com/blindbox-labs/backend/pkg/router"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"github.com/blindbox-labs/backend/pkg/xredis"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	ctx context.Context

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient xredis.Client

	userRepo     repository.UserRepository
	boxRepo      repository.BoxRepository
	prizeRepo    repository.PrizeRepository
	orderRepo    repository.OrderRepository
	wonPrizeRepo repository.WonPrizeRepository

	purchaseDomain  domain.PurchaseDomain
	catalogDomain   domain.CatalogDomain
	userDomain      domain.UserDomain
	orderDomain     domain.OrderDomain
	libraryDomain   domain.LibraryDomain
	statisticDomain domain.StatisticDomain

	router *router.Router
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func (s *srv) loadConfig() {
	godotenv.Load()

	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "blindbox"),
			Password: getEnv("MYSQL_PASSWORD", "blindbox"),
			Database: getEnv("MYSQL_DATABASE", "blindbox"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("API_HOST", "0.0.0.0"),
			Port:         getEnv("API_PORT", "8080"),
			Cert:         getEnv("API_CERT", ""),
			Key:          getEnv("API_KEY", ""),
			DefaultLimit: getEnvInt("API_DEFAULT_LIMIT", 10),
			MaxLimit:     getEnvInt("API_MAX_LIMIT", 50),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       getEnv("ACCESS_TOKEN_NAME", "access_token"),
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", time.Hour*24),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session-secret"),
			Name:   getEnv("SESSION_NAME", "blindbox_session"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Shop: config.ShopConfigs{
			MaxQuantityPerOrder: getEnvInt("SHOP_MAX_QUANTITY_PER_ORDER", 10),
			TopBoxesLimit:       getEnvInt("SHOP_TOP_BOXES_LIMIT", 10),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadContext() {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(s.configs.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(s.configs.Session.Secret)))

	s.ctx = ctx
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, top boxes fall back to the database: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.boxRepo = repository.NewBoxRepository()
	s.prizeRepo = repository.NewPrizeRepository()
	s.orderRepo = repository.NewOrderRepository()
	s.wonPrizeRepo = repository.NewWonPrizeRepository()
}

func (s *srv) loadDomains() {
	s.purchaseDomain = domain.NewPurchaseDomain(
		s.userRepo, s.boxRepo, s.prizeRepo, s.orderRepo, s.wonPrizeRepo, s.redisClient)
	s.catalogDomain = domain.NewCatalogDomain(s.boxRepo, s.prizeRepo, s.userRepo, s.redisClient)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.orderDomain = domain.NewOrderDomain(s.orderRepo, s.boxRepo)
	s.libraryDomain = domain.NewLibraryDomain(s.wonPrizeRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.boxRepo, s.redisClient)
}

func (s *srv) migrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadContext()

	return entity.MigrateTable(s.ctx)
}
