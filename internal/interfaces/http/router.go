package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/application/access"
	"github.com/atelier-edu/atelier/internal/application/claim/usecases"
	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/infrastructure/auth"
	"github.com/atelier-edu/atelier/internal/infrastructure/cache"
	"github.com/atelier-edu/atelier/internal/infrastructure/config"
	"github.com/atelier-edu/atelier/internal/infrastructure/repository"
	"github.com/atelier-edu/atelier/internal/interfaces/http/handlers"
	"github.com/atelier-edu/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-edu/atelier/internal/shared/db"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine           *gin.Engine
	accessHandler    *handlers.AccessHandler
	claimHandler     *handlers.ClaimHandler
	allowanceHandler *handlers.AllowanceHandler
	authMiddleware   *middleware.AuthMiddleware
	rateLimiter      *middleware.RateLimiter
	allowedOrigins   []string
	log              logger.Interface
}

// NewRouter wires repositories, use cases and handlers onto a Gin engine.
// redisClient is optional; without it the allowance cache and rate limiting
// are disabled.
func NewRouter(database *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	productRepo := repository.NewProductRepository(database, log)
	purchaseRepo := repository.NewPurchaseRepository(database, log)
	principalRepo := repository.NewPrincipalRepository(database, log)
	subscriptionRepo := repository.NewSubscriptionRepository(database, log)
	planRepo := repository.NewPlanRepository(database, log)
	claimRepo := repository.NewClaimRepository(database, log)

	var delegationRepo principal.DelegationRepository = repository.NewDelegationRepository(database, log)
	if ttl := cfg.Access.DelegateCacheTTLSeconds; ttl > 0 {
		delegationRepo = cache.NewCachingDelegationRepository(
			delegationRepo, time.Duration(ttl)*time.Second, time.Now, log)
	}

	validators := access.NewValidatorRegistry(log)
	accessService := access.NewService(
		productRepo, purchaseRepo, principalRepo, delegationRepo,
		subscriptionRepo, planRepo, claimRepo, validators, log,
	)

	tx := db.NewTransactionManager(database)
	allowancesUC := usecases.NewGetMonthlyAllowancesUseCase(subscriptionRepo, planRepo, claimRepo, log)
	claimProductUC := usecases.NewClaimProductUseCase(
		productRepo, purchaseRepo, subscriptionRepo, planRepo, claimRepo, allowancesUC, tx, log)
	canClaimUC := usecases.NewCanClaimProductUseCase(
		productRepo, purchaseRepo, subscriptionRepo, claimRepo, allowancesUC, log)
	revokeClaimUC := usecases.NewRevokeClaimUseCase(claimRepo, tx, log)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		allowanceCache := cache.NewRedisAllowanceCache(
			redisClient, time.Duration(cfg.Access.AllowanceCacheTTLSeconds)*time.Second, log)
		allowancesUC.SetCache(allowanceCache)
		claimProductUC.SetCache(allowanceCache)
		revokeClaimUC.SetCache(allowanceCache)

		rateLimiter = middleware.NewRateLimiter(redisClient, 100, 1*time.Minute, log)
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	return &Router{
		engine:           engine,
		accessHandler:    handlers.NewAccessHandler(accessService, log),
		claimHandler:     handlers.NewClaimHandler(claimProductUC, canClaimUC, revokeClaimUC, log),
		allowanceHandler: handlers.NewAllowanceHandler(allowancesUC, log),
		authMiddleware:   middleware.NewAuthMiddleware(jwtSvc, log),
		rateLimiter:      rateLimiter,
		allowedOrigins:   cfg.Server.AllowedOrigins,
		log:              log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	api.Use(r.authMiddleware.RequireAuth())
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Limit())
	}
	{
		api.GET("/access/:content_type/:content_id", r.accessHandler.CheckAccess)

		claims := api.Group("/claims")
		{
			claims.GET("/allowances", r.allowanceHandler.GetMonthlyAllowances)
			claims.GET("/can-claim/:content_type/:content_id", r.claimHandler.CanClaim)
			claims.POST("", r.claimHandler.ClaimProduct)
			claims.DELETE("/:id", r.claimHandler.RevokeClaim)
		}
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
