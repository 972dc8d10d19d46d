package http

import (
	"log/slog"

	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/http/handlers"
	"github.com/geocoder89/todohub/internal/http/middlewares"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps is everything the router needs beyond config. cmd/api builds it from
// Postgres or the in-memory stores; tests build it from the latter.
type Deps struct {
	Auth  handlers.AuthService
	Users handlers.UserService
	Todos handlers.TodoService

	Tokens  middlewares.TokenVerifier
	Store   handlers.Pinger
	Limiter middlewares.Limiter

	Metrics  *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error("invalid trusted proxies, trusting none", "err", err)
		_ = r.SetTrustedProxies(nil)
	}

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders(cfg.Env == "prod"))
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(otelgin.Middleware("todohub"))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.GinHandleMiddleware())
	}

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// health
	health := handlers.NewHealthHandler(deps.Store)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	// docs
	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	authHandler := handlers.NewAuthHandler(deps.Auth, log)
	usersHandler := handlers.NewUsersHandler(deps.Users, log)
	todosHandler := handlers.NewTodosHandler(deps.Todos, log)

	authMW := middlewares.NewAuthMiddleware(deps.Tokens)

	authGroup := r.Group("/auth")
	if deps.Limiter != nil {
		authGroup.Use(middlewares.RateLimit(deps.Limiter, middlewares.KeyByIP, deps.Metrics, log))
	}
	authGroup.Use(middlewares.RequireJSON())
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/login", authHandler.Login)

	users := r.Group("/users")
	users.Use(authMW.RequireAuth())
	users.GET("/me", usersHandler.Me)
	users.PATCH("/edit", middlewares.RequireJSON(), usersHandler.Edit)

	todos := r.Group("/todos")
	todos.Use(authMW.RequireAuth(), middlewares.RequireJSON())
	todos.GET("/", todosHandler.ListTodos)
	todos.POST("/", todosHandler.CreateTodo)
	todos.GET("/:id", todosHandler.GetTodoById)
	todos.PATCH("/:id", todosHandler.EditTodoById)
	todos.DELETE("/:id", todosHandler.DeleteTodoById)

	return r
}
