package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/katryana/airport-api/api"
	"github.com/katryana/airport-api/config"
	"github.com/katryana/airport-api/internal/auth"
	"github.com/katryana/airport-api/internal/logger"
	"github.com/katryana/airport-api/internal/service/catalog"
	"github.com/katryana/airport-api/internal/service/flights"
	"github.com/katryana/airport-api/internal/service/orders"
	"github.com/katryana/airport-api/internal/service/users"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Catalog catalog.CatalogUseCase
	Flights flights.FlightUseCase
	Orders  orders.OrderUseCase
	Users   users.UserUseCase
	Tokens  *auth.TokenManager
	Log     *logger.Logger
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	engine := newEngine(cfg, deps)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	deps.Log.Info("http", "listening on %s", cfg.HTTP.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newEngine(cfg *config.Config, deps Deps) *gin.Engine {
	if !cfg.HTTP.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(api.RequestLogger(deps.Log), gin.Recovery())
	if cfg.RateLimit.PerSecond > 0 {
		engine.Use(api.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))
	}

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method \"" + c.Request.Method + "\" not allowed."})
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})

	registerRoutes(engine, cfg, deps)
	return engine
}

func registerRoutes(engine *gin.Engine, cfg *config.Config, deps Deps) {
	airport := engine.Group("/api/airport", api.Authenticate(deps.Tokens))

	readAuth := api.NewGuard(auth.ReadAuthenticatedWriteAdmin)
	api.NewAirportHandler(deps.Catalog).Register(airport.Group("/airports"), readAuth)
	api.NewAirplaneTypeHandler(deps.Catalog).Register(airport.Group("/airplane_types"), readAuth)
	api.NewAirplaneHandler(deps.Catalog).Register(airport.Group("/airplanes"), readAuth)
	api.NewCrewHandler(deps.Catalog).Register(airport.Group("/crews"), readAuth)
	api.NewRouteHandler(deps.Catalog).Register(airport.Group("/routes"), readAuth)

	flightHandler := api.NewFlightHandler(deps.Flights)
	flightHandler.Register(airport.Group("/flights"), api.NewGuard(auth.ReadOnlyAnyoneWriteAdmin))

	orderHandler := api.NewOrderHandler(deps.Orders)
	orderHandler.Register(airport.Group("/orders", api.RequireAuth()), api.NewGuard(auth.OwnerOnly))

	userHandler := api.NewUserHandler(deps.Users)
	userHandler.Register(engine.Group("/api/user"))

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFile("/openapi.json", filepath.Join(cfg.HTTP.SwaggerDir, "swagger.json"))
		engine.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/openapi.json"),
		)))
	}
}
