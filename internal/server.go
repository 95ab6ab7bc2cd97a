package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/notesbox/internal/config"
	"github.com/2beens/notesbox/internal/db"
	"github.com/2beens/notesbox/internal/middleware"
	notesBox "github.com/2beens/notesbox/internal/notes_box"
	"github.com/2beens/notesbox/internal/ratelimit"
	"github.com/2beens/notesbox/internal/store"
	"github.com/2beens/notesbox/internal/telemetry/metrics"
	"github.com/2beens/notesbox/internal/telemetry/tracing"
	"github.com/2beens/notesbox/pkg"
	"github.com/2beens/notesbox/pkg/apierr"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "notes-box"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config  *config.Config
	store   store.Store
	limiter ratelimit.Limiter

	// set only for the matching store backend
	redisClient *redis.Client
	dbPool      *pgxpool.Pool

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName)
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	s := &Server{
		config:       cfg,
		otelShutdown: otelShutdown,
	}

	var extraCollectors []prometheus.Collector
	switch cfg.StoreBackend {
	case store.BackendRedis:
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if params.HoneycombTracingEnabled {
			s.redisClient.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}

		s.store = store.NewRedisStore(s.redisClient, cfg.StoreNamespace)
	case store.BackendPostgres:
		s.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     cfg.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}

		if err := s.dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		psqlStore := store.NewPsqlStore(s.dbPool, cfg.StoreNamespace)
		if err := psqlStore.EnsureSchema(ctx); err != nil {
			s.dbPool.Close()
			return nil, fmt.Errorf("ensure kv schema: %w", err)
		}
		s.store = psqlStore

		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			s.dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	case store.BackendMemory:
		log.Warnln("using the in-memory store, notes are lost on restart")
		s.store = store.NewMemoryStore(cfg.StoreNamespace, cfg.MemoryStoreSizeMB)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("backend", "notes", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	s.limiter, err = s.newLimiter()
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("new rate limiter: %w", err)
	}

	return s, nil
}

func (s *Server) newLimiter() (ratelimit.Limiter, error) {
	window := time.Duration(s.config.RateLimitWindowSeconds) * time.Second
	switch s.config.RateLimitStrategy {
	case ratelimit.StrategyFixedWindow, "":
		return ratelimit.NewFixedWindow(s.store, s.config.RateLimitRequests, window)
	case ratelimit.StrategyGCRA:
		if s.redisClient == nil {
			return nil, fmt.Errorf("rate limit strategy %s needs the redis store backend", ratelimit.StrategyGCRA)
		}
		return ratelimit.NewGCRA(redis_rate.NewLimiter(s.redisClient), s.config.RateLimitRequests, window)
	default:
		return nil, fmt.Errorf("unknown rate limit strategy: %s", s.config.RateLimitStrategy)
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName + "-router"))

	notesService := notesBox.NewService(s.store, s.metricsManager, s.config.EnforceExpiry)
	notesRouter := notesBox.NewHandler(notesService).SetupRoutes(r)
	notesRouter.Use(middleware.RateLimit(s.limiter, s.metricsManager))

	r.HandleFunc("/health", handleHealth).Methods("GET").Name("health")

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Tracef("not found: [%s] %s", r.Method, r.URL.Path)
		pkg.WriteError(w, notFoundError)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Tracef("method not allowed: [%s] %s", r.Method, r.URL.Path)
		pkg.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest(middleware.MaxRequestBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	s.closeStore()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) closeStore() {
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
