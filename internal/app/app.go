// Package app assembles the engine from configuration. Both the API server
// and the operator CLI build their services here.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dlt-orchestrator/config"
	"dlt-orchestrator/internal/adapter/chain"
	"dlt-orchestrator/internal/adapter/directory"
	httpHandler "dlt-orchestrator/internal/adapter/http/handler"
	"dlt-orchestrator/internal/adapter/metrics"
	"dlt-orchestrator/internal/adapter/signer"
	"dlt-orchestrator/internal/adapter/storage/memory"
	pgStorage "dlt-orchestrator/internal/adapter/storage/postgres"
	redisStorage "dlt-orchestrator/internal/adapter/storage/redis"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/internal/service"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App holds the wired engine.
type App struct {
	Config *config.Config

	Ledger      *service.LedgerServiceImpl
	Reconciler  *service.ReconcilerServiceImpl
	Relay       *service.RelayServiceImpl
	WageAdvance *service.WageAdvanceSaga
	Payments    *service.PaymentSaga
	Swaps       *service.SwapSaga
	History     ports.HistoryService
	Audit       ports.AuditService

	Policies   ports.PolicyStore
	Identities ports.IdentityLookup
	Signer     ports.Signer // nil when no custodial signer is configured
	Metrics    *metrics.Prometheus

	// Directory is set when the postgres driver is used, for seeding.
	Directory *pgStorage.DirectoryRepo

	nonces     ports.NonceStore
	rateLimits ports.RateLimitStore
	health     []ports.HealthChecker
	closers    []func()
	log        zerolog.Logger
}

// Option overrides a collaborator Build would otherwise construct.
type Option func(*options)

type options struct {
	chain     ports.ChainReader
	directory *directory.FileDirectory
	signer    ports.Signer
}

// WithChainReader replaces the mirror node client.
func WithChainReader(r ports.ChainReader) Option {
	return func(o *options) { o.chain = r }
}

// WithDirectory replaces the configured directory source.
func WithDirectory(d *directory.FileDirectory) Option {
	return func(o *options) { o.directory = d }
}

// WithSigner sets the custodial signer used by relays.
func WithSigner(s ports.Signer) Option {
	return func(o *options) { o.signer = s }
}

// Build connects storage and wires every service. Call Close when done.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Metrics: metrics.NewPrometheus(), log: log}
	var (
		opRepo      ports.OperationRepository
		opAuditRepo ports.OperationAuditRepository
		wageRepo    ports.WageAdvanceRepository
		paymentRepo ports.PaymentRequestRepository
		swapRepo    ports.SwapIntentRepository
		auditRepo   ports.AuditRepository
		transactor  ports.DBTransactor
		locker      ports.ParentLocker
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		opRepo = memory.NewOperationRepo(store)
		opAuditRepo = memory.NewOperationAuditRepo(store)
		wageRepo = memory.NewWageAdvanceRepo(store)
		paymentRepo = memory.NewPaymentRequestRepo(store)
		swapRepo = memory.NewSwapIntentRepo(store)
		auditRepo = memory.NewAuditRepo(store)
		transactor = memory.NewTransactor(store)
		a.health = append(a.health, memory.HealthCheck{})
		log.Warn().Msg("memory storage driver selected; state is lost on exit")

	default:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		if cfg.Database.AutoMigrate {
			if err := pgStorage.Migrate(ctx, pool, log); err != nil {
				a.Close()
				return nil, err
			}
		}
		opRepo = pgStorage.NewOperationRepo(pool)
		opAuditRepo = pgStorage.NewOperationAuditRepo(pool)
		wageRepo = pgStorage.NewWageAdvanceRepo(pool)
		paymentRepo = pgStorage.NewPaymentRequestRepo(pool)
		swapRepo = pgStorage.NewSwapIntentRepo(pool)
		auditRepo = pgStorage.NewAuditRepo(pool)
		transactor = pgStorage.NewTransactor(pool)
		a.Directory = pgStorage.NewDirectoryRepo(pool)
		a.health = append(a.health, pgStorage.NewHealthCheck(pool))
	}

	rdb, err := a.connectRedis(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if rdb != nil {
		locker = redisStorage.NewParentLocker(rdb, cfg.Engine.LockTTL, cfg.Engine.LockWait, log)
		a.nonces = redisStorage.NewNonceStore(rdb)
		a.rateLimits = redisStorage.NewRateLimitStore(rdb)
	} else {
		// Single-process fallback; rate limiting stays off.
		locker = memory.NewParentLocker(cfg.Engine.LockWait)
		a.nonces = memory.NewNonceStore()
		log.Warn().Msg("redis disabled; using in-process locks and nonce store")
	}

	if err := a.wireDirectory(o.directory); err != nil {
		a.Close()
		return nil, err
	}

	chainReader := o.chain
	if chainReader == nil {
		chainReader = chain.NewMirrorClient(cfg.Chain, &http.Client{Timeout: cfg.Chain.Timeout}, log)
	}

	a.Signer = o.signer
	if a.Signer == nil && cfg.Signer.Enabled {
		// Bounded by the relay's own timeout, so the client has none.
		a.Signer = signer.NewHTTPSigner(cfg.Signer, &http.Client{})
	}

	var notifier ports.Notifier
	if cfg.Notify.Enabled {
		notifier = service.NewNotificationService(
			a.Policies,
			service.NewHMACSignatureService(),
			&http.Client{Timeout: cfg.Notify.Timeout},
			cfg.Notify.Secret,
			cfg.Notify.MaxRetries,
			log,
		)
	}

	a.Ledger = service.NewLedgerService(opRepo, opAuditRepo, a.Metrics, log)
	preparer := service.NewPreparerService(chainReader, service.PreparerConfig{
		Network:           cfg.Chain.Network,
		NodeAccountIDs:    cfg.Chain.NodeAccountIDs,
		ValidDuration:     cfg.Chain.ValidDuration,
		MaxTransactionFee: cfg.Chain.MaxTransactionFee,
		SwapGas:           cfg.Chain.SwapGas,
	}, log)

	deps := service.SagaDeps{
		Ledger:     a.Ledger,
		Preparer:   preparer,
		Policies:   a.Policies,
		Identities: a.Identities,
		Notifier:   notifier,
		Locker:     locker,
		Transactor: transactor,
		Metrics:    a.Metrics,
	}
	a.WageAdvance = service.NewWageAdvanceSaga(wageRepo, deps, service.WageAdvanceConfig{
		AssociationMaxAttempts: cfg.Engine.AssociationMaxAttempts,
		ScheduleMaxAttempts:    cfg.Engine.ScheduleMaxAttempts,
		MemoPrefix:             cfg.Chain.ScheduleMemoPrefix,
	}, log)
	a.Payments = service.NewPaymentSaga(paymentRepo, deps, cfg.Engine.PaymentTTL, log)
	a.Swaps = service.NewSwapSaga(swapRepo, deps, cfg.Engine.SwapTTL, log)

	a.Reconciler = service.NewReconcilerService(a.Ledger, locker, transactor, a.Metrics, log)
	a.Reconciler.Register(domain.ParentWageAdvance, a.WageAdvance)
	a.Reconciler.Register(domain.ParentPaymentRequest, a.Payments)
	a.Reconciler.Register(domain.ParentSwapIntent, a.Swaps)

	a.Relay = service.NewRelayService(a.Ledger, a.Reconciler, cfg.Engine.SignerTimeout, a.Metrics, log)
	a.History = service.NewHistoryService(wageRepo, a.Ledger)
	a.Audit = service.NewAuditService(auditRepo, log)

	return a, nil
}

func (a *App) connectRedis(ctx context.Context) (*goredis.Client, error) {
	if !a.Config.Redis.Enabled {
		return nil, nil
	}
	rdb, err := redisStorage.NewClient(ctx, a.Config.Redis, a.log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	a.health = append(a.health, redisStorage.NewHealthCheck(rdb))
	return rdb, nil
}

func (a *App) wireDirectory(override *directory.FileDirectory) error {
	if override == nil && a.Config.Directory.Source == config.DirectoryFile {
		dir, err := directory.Load(a.Config.Directory.Path)
		if err != nil {
			return fmt.Errorf("loading directory: %w", err)
		}
		override = dir
	}
	if override != nil {
		a.Policies = override
		a.Identities = override
		return nil
	}
	if a.Directory == nil {
		return fmt.Errorf("directory source %q needs the postgres driver", a.Config.Directory.Source)
	}
	a.Policies = a.Directory
	a.Identities = a.Directory
	return nil
}

// Router builds the HTTP surface for the wired services.
func (a *App) Router() http.Handler {
	cfg := a.Config
	return httpHandler.SetupRouter(httpHandler.RouterDeps{
		WageAdvanceSvc: a.WageAdvance,
		PaymentSvc:     a.Payments,
		SwapSvc:        a.Swaps,
		HistorySvc:     a.History,
		Ledger:         a.Ledger,
		Reconciler:     a.Reconciler,
		Relay:          a.Relay,
		Signer:         a.Signer,
		Identities:     a.Identities,
		TokenSvc:       service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer),
		SigSvc:         service.NewHMACSignatureService(),
		NonceStore:     a.nonces,
		Watcher:        cfg.Watcher,
		StaleAfter:     cfg.Engine.StaleAfter,
		RateLimitStore: a.rateLimits,
		HealthCheckers: a.health,
		MetricsHandler: a.Metrics.Handler(),
		AuditSvc:       a.Audit,
		Logger:         a.log,
	})
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 10 * time.Second
