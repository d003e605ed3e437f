package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/api/http"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/api/http/handlers"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/cache"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/config"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/persistence"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/repository"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/sample"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/session"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/upstream"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App.Name, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	sealer, err := session.NewSealer(cfg.Session.EncryptionKey)
	if err != nil {
		logger.Fatal("failed to init session sealer", zap.Error(err))
	}
	store := session.NewRedisStore(redis.Client, sealer, cfg.Session.KeyPrefix, logger)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	queryCache := cache.New(redis.Client, logger)

	client := upstream.NewClient(cfg.Upstream, store, dispatcher, logger, metrics)

	generator := sample.NewGenerator(42)
	sampleSource := service.NewSampleSource(generator)
	remoteSource := service.NewRemoteSource(client)

	// Demo mode drives every panel from seeded sample data with no upstream
	// in the loop; otherwise the upstream is primary and samples only back
	// it up on availability failures.
	var explorerSrc service.ExplorerSource = remoteSource
	var validatorSrc service.ValidatorSource = remoteSource
	var tokenizationSrc service.TokenizationSource = remoteSource
	var complianceSrc service.ComplianceSource = remoteSource
	var channelSrc service.ChannelSource = remoteSource
	var networkSrc service.NetworkSource = remoteSource
	var explorerFb service.ExplorerSource = sampleSource
	var validatorFb service.ValidatorSource = sampleSource
	var tokenizationFb service.TokenizationSource = sampleSource
	var complianceFb service.ComplianceSource = sampleSource
	var channelFb service.ChannelSource = sampleSource
	var networkFb service.NetworkSource = sampleSource
	var upstreamProbe handlers.Pinger = client
	if cfg.Upstream.DemoMode {
		logger.Info("demo mode enabled; serving sample data")
		explorerSrc, explorerFb = sampleSource, nil
		validatorSrc, validatorFb = sampleSource, nil
		tokenizationSrc, tokenizationFb = sampleSource, nil
		complianceSrc, complianceFb = sampleSource, nil
		channelSrc, channelFb = sampleSource, nil
		networkSrc, networkFb = sampleSource, nil
		upstreamProbe = nil
	}

	authService := service.NewAuthService(client, store, dispatcher, logger)
	explorerService := service.NewExplorerService(service.ExplorerDependencies{
		Source:     explorerSrc,
		Fallback:   explorerFb,
		Cache:      queryCache,
		CacheTTL:   cfg.Cache.ExplorerTTL(),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	validatorService := service.NewValidatorService(service.ValidatorDependencies{
		Source:     validatorSrc,
		Fallback:   validatorFb,
		Cache:      queryCache,
		CacheTTL:   cfg.Cache.ValidatorTTL(),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	tokenizationService := service.NewTokenizationService(service.TokenizationDependencies{
		Source:     tokenizationSrc,
		Fallback:   tokenizationFb,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	complianceService := service.NewComplianceService(service.ComplianceDependencies{
		Source:     complianceSrc,
		Fallback:   complianceFb,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	channelService := service.NewChannelService(service.ChannelDependencies{
		Source:     channelSrc,
		Fallback:   channelFb,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	networkService := service.NewNetworkService(service.NetworkDependencies{
		Source:     networkSrc,
		Fallback:   networkFb,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	var auditRepo repository.AuditRepository
	if pool := pg.PoolHandle(); pool != nil {
		auditRepo = repository.NewAuditRepository(pool)
	}
	auditService := service.NewAuditService(auditRepo, dispatcher, logger)
	worker.StartAuditWorker(auditService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, upstreamProbe, metrics),
		Auth:         handlers.NewAuthHandler(authService),
		Explorer:     handlers.NewExplorerHandler(explorerService),
		Validators:   handlers.NewValidatorsHandler(validatorService),
		Tokenization: handlers.NewTokenizationHandler(tokenizationService),
		Compliance:   handlers.NewComplianceHandler(complianceService),
		Channels:     handlers.NewChannelsHandler(channelService),
		Network:      handlers.NewNetworkHandler(networkService),
		Audit:        handlers.NewAuditHandler(auditService),
		SessionStore: store,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
