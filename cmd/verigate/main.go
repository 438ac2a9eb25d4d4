package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/application/auth"
	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
	"github.com/amirhosseinghanipour/verigate/internal/application/retention"
	"github.com/amirhosseinghanipour/verigate/internal/config"
	httprouter "github.com/amirhosseinghanipour/verigate/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/persistence/db"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/queue"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/session"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/webhook"
)

const (
	apiVersion           = "1"
	sessionSweepInterval = 10 * time.Minute
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	checks := make(map[string]handlers.Pinger)

	var accounts ports.AccountRepository
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping database")
		}
		accounts = postgres.NewAccountRepository(db.New(pool))
		checks["database"] = pool
	default:
		log.Warn().Msg("using in-memory account store; accounts are lost on restart")
		mem := memory.NewAccountRepository()
		accounts = mem
		checks["database"] = mem
	}

	var redisClient *redis.Client
	var redisOpt *redis.Options
	if cfg.Redis.URL != "" {
		redisOpt, err = redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(redisOpt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	sessionTTL := time.Duration(cfg.Session.TTLSeconds) * time.Second
	var sessions ports.SessionStore
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, sessionTTL)
		rc := redisClient
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rc.Ping(ctx).Err() })
	} else {
		mem := session.NewMemoryStore(sessionTTL)
		sessions = mem
		go retention.SweepSessionsEvery(sweepCtx, mem, sessionSweepInterval, log)
	}

	// Audit events go to the webhook sink directly, or through the queue when one is running.
	var sink ports.WebhookEmitter = webhook.NewNoopEmitter()
	if cfg.Audit.WebhookURL != "" {
		var opts []webhook.HTTPEmitterOption
		if cfg.Audit.WebhookSecret != "" {
			opts = append(opts, webhook.WithSigningSecret(cfg.Audit.WebhookSecret))
		}
		sink = webhook.NewHTTPEmitter(cfg.Audit.WebhookURL, opts...)
	}
	auditEmitter := sink

	var notifier ports.Notifier
	var asynqWorker *queue.Worker
	if redisClient != nil {
		asynqOpt := queue.RedisClientOpt(redisOpt)
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		notifier = asynqEnq
		if cfg.Audit.WebhookURL != "" {
			auditEmitter = asynqEnq
		}
		asynqWorker = queue.NewWorker(asynqOpt, sink, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		notifier = queue.NewLogNotifier(log)
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	signupUC := auth.NewSignup(accounts, hasher, notifier, cfg.Verify.BaseURL, log)
	verifyEmailUC := auth.NewVerifyEmail(accounts)
	loginUC := auth.NewLogin(accounts, hasher, sessions)
	logoutUC := auth.NewLogout(sessions)
	guard := auth.NewSessionGuard(sessions)

	sessionCookies := middleware.NewSessionCookies([]byte(cfg.Session.Secret), middleware.SessionCookieOptions{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.TTLSeconds,
		Secure: cfg.Session.SecureCookie,
	}, log)
	authHandler := handlers.NewAuthHandler(signupUC, verifyEmailUC, loginUC, logoutUC, sessionCookies, handlers.AuthHandlerOptions{
		ExposeVerifyLink: cfg.Verify.ExposeLink,
		Webhooks:         auditEmitter,
	}, log)
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Security.Development))

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		HealthHandler:  handlers.NewHealthHandler(checks),
		SessionCookies: sessionCookies,
		Guard:          guard,
		Log:            log,
		Secure:         secureMiddleware,
		CORSOrigins:    cfg.Security.CORSOrigins,
		APIVersion:     apiVersion,
		Metrics:        cfg.Server.MetricsEnabled,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	stopSweep()
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
