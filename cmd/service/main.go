package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/2beens/fittrack/internal"
	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/logging"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	// local runs keep secrets in .env, in prod they come from the environment
	if err := godotenv.Load(); err != nil {
		fmt.Printf("no .env file loaded: %s\n", err)
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			panic(fmt.Errorf("invalid PORT env var [%s]: %w", portEnv, err))
		}
		cfg.Port = port
		if err := cfg.Validate(); err != nil {
			panic(err)
		}
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "fittrack-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("using store backend: [%s]", cfg.StoreBackend)

	jwtSecret := os.Getenv("FITTRACK_JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalln("jwt secret not set, use FITTRACK_JWT_SECRET")
	}

	redisPassword := os.Getenv("FITTRACK_REDIS_PASS")
	if cfg.RedisEnabled() && redisPassword == "" {
		log.Warnln("redis password not set. use FITTRACK_REDIS_PASS")
	}

	postgresPassword := os.Getenv("FITTRACK_POSTGRES_PASS")
	if cfg.StoreBackend == config.StoreBackendPostgres && postgresPassword == "" {
		log.Warnln("postgres password not set. use FITTRACK_POSTGRES_PASS")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			JWTSecret:               jwtSecret,
			RedisPassword:           redisPassword,
			PostgresPassword:        postgresPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}
