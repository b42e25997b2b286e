package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/projetointegrador/estoque-api/internal/auth"
	"github.com/projetointegrador/estoque-api/internal/config"
	"github.com/projetointegrador/estoque-api/internal/http/handlers"
	"github.com/projetointegrador/estoque-api/internal/http/middlewares"
	"github.com/projetointegrador/estoque-api/internal/observability"
	"github.com/projetointegrador/estoque-api/internal/repo/postgres"
)

// NewRouter wires middleware, repositories and handlers into the gin engine.
func NewRouter(cfg config.Config, log *slog.Logger, pool *pgxpool.Pool, tokens *auth.TokenService) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	r.Use(prom.GinHandleMiddleware())

	if cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("estoque-api"))
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		return prom.ObserveDB("ping", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			return pool.Ping(ctx)
		})
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	categoriesRepo := postgres.NewCategoriesRepo(pool, prom)
	brandsRepo := postgres.NewBrandsRepo(pool, prom)
	suppliersRepo := postgres.NewSuppliersRepo(pool, prom)
	clientsRepo := postgres.NewClientsRepo(pool, prom)
	productsRepo := postgres.NewProductsRepo(pool, prom)
	salesRepo := postgres.NewSalesRepo(pool, prom)
	purchaseOrdersRepo := postgres.NewPurchaseOrdersRepo(pool, prom)

	policy := auth.NewPolicy(cfg.AdminEmail)
	authn := auth.NewAuthenticator(usersRepo, tokens)
	authmw := middlewares.NewAuthMiddleware(tokens)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(authn, prom.LoginFailures.Inc)
	usersHandler := handlers.NewUsersHandler(usersRepo, policy)
	categoriesHandler := handlers.NewCategoriesHandler(categoriesRepo)
	brandsHandler := handlers.NewBrandsHandler(brandsRepo)
	suppliersHandler := handlers.NewSuppliersHandler(suppliersRepo)
	clientsHandler := handlers.NewClientsHandler(clientsRepo)
	productsHandler := handlers.NewProductsHandler(productsRepo)
	salesHandler := handlers.NewSalesHandler(salesRepo)
	purchaseOrdersHandler := handlers.NewPurchaseOrdersHandler(purchaseOrdersRepo)

	// public routes
	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)
	r.POST("/login", loginLimiter.ByIP(), authHandler.Login)

	// registration is open; a token changes what roles may be requested
	r.POST("/users", authmw.OptionalAuth(), usersHandler.Create)

	// everything else needs a valid token
	api := r.Group("/", authmw.RequireAuth())

	api.GET("/users", usersHandler.List)
	api.GET("/users/:id", usersHandler.GetByID)
	api.GET("/users/email/:email", usersHandler.GetByEmail)
	api.PUT("/users/:id", usersHandler.Update)
	api.DELETE("/users/:id", usersHandler.Delete)

	api.POST("/categories", categoriesHandler.Create)
	api.GET("/categories", categoriesHandler.List)
	api.GET("/categories/:id", categoriesHandler.GetByID)
	api.PUT("/categories/:id", categoriesHandler.Update)
	api.DELETE("/categories/:id", categoriesHandler.Delete)

	api.POST("/brands", brandsHandler.Create)
	api.GET("/brands", brandsHandler.List)
	api.GET("/brands/:id", brandsHandler.GetByID)
	api.PUT("/brands/:id", brandsHandler.Update)
	api.DELETE("/brands/:id", brandsHandler.Delete)

	api.POST("/suppliers", suppliersHandler.Create)
	api.GET("/suppliers", suppliersHandler.List)
	api.GET("/suppliers/:id", suppliersHandler.GetByID)
	api.PUT("/suppliers/:id", suppliersHandler.Update)
	api.DELETE("/suppliers/:id", suppliersHandler.Delete)

	api.POST("/clients", clientsHandler.Create)
	api.GET("/clients", clientsHandler.List)
	api.GET("/clients/:id", clientsHandler.GetByID)
	api.PUT("/clients/:id", clientsHandler.Update)
	api.DELETE("/clients/:id", clientsHandler.Delete)

	api.POST("/products", productsHandler.Create)
	api.GET("/products", productsHandler.List)
	api.GET("/products/:id", productsHandler.GetByID)
	api.PUT("/products/:id", productsHandler.Update)
	api.DELETE("/products/:id", productsHandler.Delete)

	api.POST("/sales", salesHandler.Create)
	api.GET("/sales", salesHandler.List)
	api.GET("/sales/:id", salesHandler.GetByID)

	api.POST("/purchase-orders", purchaseOrdersHandler.Create)
	api.GET("/purchase-orders", purchaseOrdersHandler.List)
	api.GET("/purchase-orders/:id", purchaseOrdersHandler.GetByID)
	api.PATCH("/purchase-orders/:id/status", purchaseOrdersHandler.SetStatus)

	return r
}
