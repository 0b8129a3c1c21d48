package handler

import (
	"net/http"
	"time"

	"dlt-orchestrator/config"
	"dlt-orchestrator/internal/adapter/http/middleware"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WageAdvanceSvc ports.WageAdvanceService
	PaymentSvc     ports.PaymentService
	SwapSvc        ports.SwapService
	HistorySvc     ports.HistoryService
	Ledger         ports.LedgerService
	Reconciler     ports.ReconcilerService
	Relay          ports.RelayService
	Signer         ports.Signer // nil = relay disabled
	Identities     ports.IdentityLookup
	TokenSvc       ports.TokenService
	SigSvc         ports.SignatureService
	NonceStore     ports.NonceStore
	Watcher        config.WatcherConfig
	StaleAfter     time.Duration
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	MetricsHandler http.Handler      // nil = /metrics not mounted
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20))

	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")
	session := middleware.SessionAuth(deps.TokenSvc, deps.Identities, deps.Logger)

	// --- Wage advances ---
	advances := NewWageAdvanceHandler(deps.WageAdvanceSvc, deps.HistorySvc)
	wage := v1.Group("/wage-advances", session)
	{
		wage.POST("", rl("wage_advances"), middleware.RequireRole(domain.RoleEmployee), advances.Create)
		wage.GET("/:id", rl("reads"), advances.Get)
		wage.POST("/:id/association", rl("saga_steps"), middleware.RequireRole(domain.RoleEmployee, domain.RoleAdmin), advances.Association)
		wage.POST("/:id/schedule", rl("saga_steps"), middleware.RequireRole(domain.RoleEmployee, domain.RoleAdmin), advances.Schedule)
		wage.POST("/:id/approvals", rl("saga_steps"), middleware.RequireRole(domain.RoleDecider), advances.CastApproval)
	}
	v1.GET("/enterprises/:id/history", session, rl("reads"),
		middleware.RequireRole(domain.RoleDecider, domain.RoleAdmin), advances.History)

	// --- Payments ---
	payments := NewPaymentHandler(deps.PaymentSvc)
	pay := v1.Group("/payment-requests", session)
	{
		pay.POST("", rl("saga_steps"), middleware.RequireRole(domain.RoleShop), payments.Create)
		pay.GET("/:id", rl("reads"), payments.Get)
		pay.POST("/:id/accept-token", rl("saga_steps"), middleware.RequireRole(domain.RoleShop, domain.RoleAdmin), payments.AcceptToken)
		pay.POST("/:id/pay", rl("saga_steps"), middleware.RequireRole(domain.RoleEmployee), payments.Pay)
	}

	// --- Swaps ---
	swaps := NewSwapHandler(deps.SwapSvc)
	swap := v1.Group("/swaps", session)
	{
		swap.POST("", rl("saga_steps"), middleware.RequireRole(domain.RoleEmployee, domain.RoleShop), swaps.Create)
		swap.GET("/:id", rl("reads"), swaps.Get)
		swap.POST("/:id/prepare", rl("saga_steps"), swaps.Prepare)
	}

	// --- Operations ---
	operations := NewOperationHandler(deps.Ledger, deps.Reconciler, deps.Relay, deps.Signer, deps.StaleAfter)
	ops := v1.Group("/operations", session)
	{
		ops.GET("/:id", rl("reads"), operations.Get)
		ops.POST("/:id/outcome", rl("outcomes"), operations.ReportOutcome)
		ops.POST("/:id/relay", rl("relay"), operations.Relay)
	}

	admin := v1.Group("/admin", session, middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/operations/:id/force-complete", rl("admin"), operations.ForceComplete)
		admin.GET("/operations/stale", rl("admin"), operations.Stale)
	}

	// --- Watcher callbacks (HMAC) ---
	watcherAuth := middleware.WatcherAuth(deps.Watcher, deps.SigSvc, deps.NonceStore, deps.Logger)
	watcherHandler := NewWatcherHandler(deps.Reconciler, deps.WageAdvanceSvc)
	watcher := v1.Group("/watcher", watcherAuth, rl("watcher"))
	{
		watcher.POST("/operations/:id/confirm", watcherHandler.Confirm)
		watcher.POST("/schedules/:id/executed", watcherHandler.ScheduleExecuted)
	}

	return r
}
