package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/katryana/airport-api/config"
	"github.com/katryana/airport-api/internal/auth"
	"github.com/katryana/airport-api/internal/bootstrap"
	"github.com/katryana/airport-api/internal/cache"
	"github.com/katryana/airport-api/internal/kafka"
	"github.com/katryana/airport-api/internal/logger"
	"github.com/katryana/airport-api/internal/repository"
	"github.com/katryana/airport-api/internal/service/catalog"
	"github.com/katryana/airport-api/internal/service/flights"
	"github.com/katryana/airport-api/internal/service/orders"
	"github.com/katryana/airport-api/internal/service/users"
	"github.com/katryana/airport-api/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLog := logger.New(cfg.HTTP.Debug)

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.AirportsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	images, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("init image storage: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	airportRepo := repository.NewAirportRepository(pool)
	typeRepo := repository.NewAirplaneTypeRepository(pool)
	airplaneRepo := repository.NewAirplaneRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	catalogService := catalog.NewCatalogService(airportRepo, typeRepo, airplaneRepo, crewRepo, routeRepo, redisCache, images)
	flightService := flights.NewFlightService(flightRepo)
	orderService := orders.NewOrderService(
		orderRepo,
		flightRepo,
		redisCache,
		producer,
		time.Duration(cfg.Cache.SeatLockTTLSeconds)*time.Second,
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	userService := users.NewUserService(userRepo, tokens)

	deps := bootstrap.Deps{
		Catalog: catalogService,
		Flights: flightService,
		Orders:  orderService,
		Users:   userService,
		Tokens:  tokens,
		Log:     appLog,
	}

	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
