// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"upkept-workers/internal/common/aws"
	"upkept-workers/internal/common/camunda"
	"upkept-workers/internal/common/config"
	"upkept-workers/internal/common/database"
	"upkept-workers/internal/common/errors"
	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/common/observability"
	"upkept-workers/internal/models"
	"upkept-workers/internal/planning"
	"upkept-workers/internal/session"
	"upkept-workers/internal/vendors"
	"upkept-workers/pkg/registry"

	at "upkept-workers/internal/workers/approval/approve-tasks"
	ns "upkept-workers/internal/workers/communication/notify-schedule"
	btt "upkept-workers/internal/workers/planning/build-task-templates"
	dv "upkept-workers/internal/workers/planning/discover-vendors"
	ms "upkept-workers/internal/workers/planning/materialize-session"
	ps "upkept-workers/internal/workers/planning/propose-schedule"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	var obsOpts []observability.Option
	if cfg.Observability.JaegerEndpoint != "" {
		obsOpts = append(obsOpts, observability.WithJaegerEndpoint(cfg.Observability.JaegerEndpoint))
	}
	obs := observability.New(cfg.Observability.ServiceName, obsOpts...)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	if topo, err := zeebe.Topology(ctx); err != nil {
		zapLog.Warn("zeebe topology unavailable", zap.Error(err))
	} else {
		zapLog.Info("Zeebe client connected successfully",
			zap.Int("brokers", topo.Brokers),
			zap.Int("partitions", topo.Partitions),
			zap.String("gatewayVersion", topo.GatewayVersion),
			zap.Int32s("leaderless", topo.Leaderless),
		)
	}

	// --- Vendor catalog ---
	catalog := vendors.DefaultCatalog()
	if cfg.Database.Postgres.Enabled() {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		catalog, err = vendors.LoadCatalog(ctx, pg.DB)
		if err != nil {
			zapLog.Fatal("vendor catalog load failed", zap.Error(errors.NewVendorCatalogUnavailableError(err)))
		}
		zapLog.Info("Vendor catalog loaded from PostgreSQL")
	} else {
		zapLog.Info("PostgreSQL not configured, using seeded vendor catalog")
	}

	// --- Vendor search ---
	var searcher planning.CandidateSearcher
	if cfg.Database.Elasticsearch.Enabled() {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}

		vendorSearch := vendors.NewSearcher(esClient.Client, cfg.Database.Elasticsearch.VendorIndex, catalog)
		if cfg.Database.Elasticsearch.SeedIndex {
			if err := vendorSearch.IndexVendors(ctx); err != nil {
				zapLog.Fatal("vendor index seeding failed", zap.Error(err))
			}
			zapLog.Info("Vendor index seeded")
		}
		searcher = vendorSearch
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Info("Elasticsearch not configured, ranking from the catalog only")
	}

	// --- Session store ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	store := session.NewRedisStore(rdb.Client, cfg.Session.KeyPrefix, cfg.SessionTTL(), log)
	zapLog.Info("Redis connected successfully")

	// --- Notification channels ---
	var sesClient ns.SESService
	var snsClient ns.SNSService
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		clients, err := aws.NewClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws clients failed", zap.Error(err))
		}
		sesClient = clients.SES
		snsClient = clients.SNS
		zapLog.Info("AWS notification clients initialized", zap.String("region", cfg.Notifications.AWS.Region))
	}

	activities, err := registry.Default()
	if err == nil {
		err = activities.Validate()
	}
	if err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	discoverer := planning.NewDiscoverer(catalog, searcher, log, cfg.Planning.Concurrency)
	jobWorkers := registerWorkers(cfg, zeebe, activities, discoverer, store, sesClient, snsClient, obs, log)
	zapLog.Info("Workers registered", zap.Int("count", len(jobWorkers)))

	// --- Health & Metrics Server ---
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := zeebe.HealthCheck(checkCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "zeebe unavailable")
			return
		}
		if err := rdb.Ping(checkCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	http.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Observability.MetricsAddress,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range jobWorkers {
		w.Close()
		w.AwaitClose()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

func registerWorkers(
	cfg *config.Config,
	zeebe *camunda.Client,
	activities *registry.ActivityRegistry,
	discoverer *planning.Discoverer,
	store session.Store,
	sesClient ns.SESService,
	snsClient ns.SNSService,
	obs *observability.Observability,
	log logger.Logger,
) []worker.JobWorker {
	var started []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if _, ok := activities.Find(taskType); !ok {
			log.Warn("task type missing from activity registry", map[string]interface{}{"taskType": taskType})
		}
		w := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log)
		if w != nil {
			started = append(started, w)
		}
	}
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	// --- Planning ---
	bttCfg := btt.LoadConfig()
	bttCfg.Timeout = timeout(btt.TaskType)
	start(btt.TaskType, btt.NewHandler(bttCfg, log).Handle)

	dvCfg := dv.LoadConfig()
	dvCfg.Timeout = timeout(dv.TaskType)
	dvCfg.DefaultContext = models.VendorSearchContext{
		City:         cfg.Planning.DefaultCity,
		State:        cfg.Planning.DefaultState,
		RadiusMiles:  cfg.Planning.DefaultRadiusMiles,
		PropertyType: cfg.Planning.DefaultPropertyType,
	}
	dvCfg.DefaultMode = models.OptimizationMode(cfg.Planning.DefaultMode).Normalize()
	start(dv.TaskType, dv.NewHandler(dvCfg, discoverer, log).Handle)

	psCfg := ps.LoadConfig()
	psCfg.Timeout = timeout(ps.TaskType)
	psCfg.StaggerDays = cfg.Planning.StaggerDays
	start(ps.TaskType, ps.NewHandler(psCfg, log).Handle)

	msCfg := ms.LoadConfig()
	msCfg.Timeout = timeout(ms.TaskType)
	start(ms.TaskType, ms.NewHandler(msCfg, store, log).Handle)

	// --- Approval ---
	atCfg := at.LoadConfig()
	atCfg.Timeout = timeout(at.TaskType)
	start(at.TaskType, at.NewHandler(atCfg, store, log).Handle)

	// --- Communication ---
	nsCfg := ns.LoadConfig()
	nsCfg.Timeout = timeout(ns.TaskType)
	nsCfg.EmailEnabled = cfg.Notifications.Email.Enabled
	nsCfg.SMSEnabled = cfg.Notifications.SMS.Enabled
	if cfg.Notifications.Email.FromEmail != "" {
		nsCfg.FromEmail = cfg.Notifications.Email.FromEmail
	}
	if cfg.Notifications.SMS.SenderID != "" {
		nsCfg.SenderID = cfg.Notifications.SMS.SenderID
	}
	start(ns.TaskType, ns.NewHandler(nsCfg, store, sesClient, snsClient, log).Handle)

	return started
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
