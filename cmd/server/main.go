package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"kgov/internal/auth"
	"kgov/internal/knowledge"
	knowledgemetrics "kgov/internal/knowledge/metrics"
	"kgov/internal/knowledge/service"
	resourcestore "kgov/internal/knowledge/store/resource"
	reviewstore "kgov/internal/knowledge/store/review"
	"kgov/internal/notify"
	notifyhandler "kgov/internal/notify/handler"
	"kgov/internal/platform/config"
	"kgov/internal/platform/httpserver"
	"kgov/internal/platform/logger"
	platformmetrics "kgov/internal/platform/metrics"
	platformredis "kgov/internal/platform/redis"
	httptransport "kgov/internal/transport/http"
	"kgov/internal/user"
)

// main wires storage, the workflow engine, the notification pipeline and the
// HTTP surface, then runs everything under one errgroup. Business logic lives
// in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: PostgreSQL when configured, in-memory otherwise.
	var (
		resources   service.ResourceStore
		reviews     service.ReviewStore
		userStore   user.Store
		notifyStore notify.Store
		serviceOpts []service.Option
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("ping database: %w", err)
		}

		resources = resourcestore.NewPostgres(db)
		reviews = reviewstore.NewPostgres(db)
		userStore = user.NewPostgresStore(db)
		notifyStore = notify.NewPostgresStore(db)
		serviceOpts = append(serviceOpts, service.WithTx(newWorkflowPostgresTx(db)))
		log.Info("using postgres storage")
	} else {
		resources = resourcestore.NewInMemory()
		reviews = reviewstore.NewInMemory()
		userStore = user.NewInMemoryStore()
		notifyStore = notify.NewInMemoryStore()
		log.Info("using in-memory storage")
	}

	// Redis, when configured, takes over notification storage.
	redisClient, err := platformredis.New(cfg.Redis())
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		notifyStore = notify.NewRedisStore(redisClient.Client)
		log.Info("using redis notification storage")
	}

	users := user.New(userStore, user.WithLogger(log))
	if err := user.Seed(ctx, users, userStore, log, user.DefaultSeedUsers); err != nil {
		return err
	}

	notifyOpts := []notify.Option{
		notify.WithLogger(log),
		notify.WithMetrics(notify.NewMetrics()),
	}
	if cfg.KafkaBrokers != "" {
		publisher, err := notify.NewKafkaPublisher(ctx, strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer publisher.Close()
		notifyOpts = append(notifyOpts, notify.WithPublisher(publisher))
		log.Info("kafka notification fan-out enabled", "topic", cfg.KafkaTopic)
	}
	notifications := notify.New(notifyStore, users, cfg.NotifyBuffer, notifyOpts...)

	workflowMetrics := knowledgemetrics.New()
	serviceOpts = append(serviceOpts,
		service.WithLogger(log),
		service.WithMetrics(workflowMetrics),
	)
	workflow := knowledge.NewService(resources, reviews, users, notifications, serviceOpts...)

	jwtService := auth.NewJWTService(cfg.JWTSigningKey, "kgov", "kgov-api")
	router := httptransport.NewRouter(log, platformmetrics.New(),
		knowledge.NewHandler(workflow, log, workflowMetrics, jwtService),
		notifyhandler.New(notifications, log, jwtService),
	)
	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return notifications.Run(groupCtx)
	})
	group.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
