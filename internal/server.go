package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

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

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/planner"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/internal/workouts"
	"github.com/2beens/fittrack/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	usersRepo   *users.Repo
	authService *auth.Service
	analyzer    *workouts.Analyzer

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	JWTSecret               string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	if cfg == nil {
		return nil, errors.New("config not set")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fittrack")
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	s := &Server{
		config:       cfg,
		otelShutdown: otelShutdown,
	}

	var extraCollectors []prometheus.Collector
	var store users.Store
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		s.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			otelShutdown()
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			s.dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))

		store, err = users.NewPsqlStore(ctx, s.dbPool)
		if err != nil {
			s.dbPool.Close()
			otelShutdown()
			return nil, fmt.Errorf("new psql store: %w", err)
		}
		log.Debugf("users stored in postgres db [%s]", cfg.PostgresDBName)
	default:
		fileStore, err := users.NewFileStore(cfg.UsersFilePath)
		if err != nil {
			otelShutdown()
			return nil, fmt.Errorf("new file store: %w", err)
		}
		store = fileStore
		log.Debugf("users stored in file [%s]", fileStore.Path())
	}

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("fittrack", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	if cfg.RedisEnabled() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
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
	} else {
		log.Warnln("redis not configured, login rate limiting and token revocation disabled")
	}

	tokens, err := auth.NewTokens(params.JWTSecret, cfg.TokenIssuer, auth.DefaultTokenTTL)
	if err != nil {
		s.closeStorage()
		otelShutdown()
		return nil, fmt.Errorf("new tokens: %w", err)
	}

	s.usersRepo = users.NewRepo(store, s.metricsManager)
	if s.redisClient != nil {
		s.authService = auth.NewService(s.usersRepo, tokens, auth.NewRevoker(s.redisClient), s.metricsManager)
	} else {
		// untyped nil, so the service sees no revoker at all
		s.authService = auth.NewService(s.usersRepo, tokens, nil, s.metricsManager)
	}
	s.analyzer = workouts.NewAnalyzer(nil, time.Local)

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "OPTIONS").Name("health")

	var credentialsMiddlewares []mux.MiddlewareFunc
	if s.redisClient != nil {
		credentialsMiddlewares = append(credentialsMiddlewares, middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"auth",
			s.config.LoginRateLimitAllowedPerMin,
			s.config.TrustProxyHeaders,
			s.metricsManager,
		))
	}
	authHandler := auth.NewHandler(s.authService)
	authHandler.SetupRoutes(r, credentialsMiddlewares...)

	workoutsHandler := workouts.NewHandler(s.usersRepo, s.analyzer, s.metricsManager)
	workoutsHandler.SetupRoutes(r)

	plannerHandler := planner.NewHandler()
	plannerHandler.SetupRoutes(r)

	// preflight on any other path, Methods("OPTIONS") here would turn unknown paths into 405
	r.MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
		return req.Method == http.MethodOptions
	}).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Name("preflight")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.LimitAndDrainRequest(middleware.DefaultMaxBodyBytes))
	r.Use(authMiddleware.AuthCheck())

	return r
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
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

func (s *Server) closeStorage() {
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

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the storage goes away
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

	s.closeStorage()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
