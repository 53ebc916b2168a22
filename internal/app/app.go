package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/storefront-tech/go-backend/internal/cfg"
	v1Http "github.com/storefront-tech/go-backend/internal/delivery/v1/http"
	"github.com/storefront-tech/go-backend/internal/infrastructure/kafka"
	minioInfra "github.com/storefront-tech/go-backend/internal/infrastructure/minio"
	s3Repo "github.com/storefront-tech/go-backend/internal/repository/minio"
	"github.com/storefront-tech/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/storefront-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/storefront-tech/go-backend/internal/repository/redis"
	redisConv "github.com/storefront-tech/go-backend/internal/repository/redis/converter"
	"github.com/storefront-tech/go-backend/internal/usecase"
	"github.com/storefront-tech/go-backend/pkg/clients"
	"github.com/storefront-tech/go-backend/pkg/closer"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/storefront-tech/go-backend/pkg/logger"
	"github.com/storefront-tech/go-backend/pkg/postgres"
)

const shutdownTimeout = 10 * time.Second

// Run собирает зависимости приложения, запускает HTTP-сервер и outbox-воркер
// и блокируется до сигнала завершения.
func Run(cfg *config.Config, logger logger.Logger) error {
	appCtx, appCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appCancel()

	c := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	c.Add("postgres pool", func(ctx context.Context) error {
		db.Close()
		return nil
	})

	txManager := pgdb.NewTxManager(db.Pool)
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
	accountRepo := pgdb.NewAccountRepo(db.Pool, pgdbConv.NewAccountConverter())
	cartRepo := pgdb.NewCartRepo(db.Pool, pgdbConv.NewCartLineConverter())
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.NewOrderConverter())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(appCtx, 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, logger, appCtx)
	c.Add("minio cleanup", func(ctx context.Context) error {
		return imagesInfra.WaitForCleanup(ctx)
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(appCtx, 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewProductInfoConverter(), cfg.Redis, logger)
	c.Add("redis client", func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	c.Add("kafka producer", func(ctx context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	outboxWorker.Start(appCtx)
	c.Add("outbox worker", func(ctx context.Context) error {
		outboxWorker.Stop()
		return nil
	})

	cartUC := usecase.NewCartUC(cartRepo, productRepo, logger)
	orderUC := usecase.NewOrderUC(orderRepo, cartRepo, productRepo, accountRepo, outboxRepo, cacheRepo, txManager, logger)
	productUC := usecase.NewProductUC(productRepo, imagesInfra, cacheRepo, logger)
	accountUC := usecase.NewAccountUC(accountRepo, logger)

	r := chi.NewRouter()
	auth := v1Http.NewAuthMiddleware(cfg.Auth, logger)
	router := v1Http.NewRouter(r, auth, logger)
	router.Init(cartUC, orderUC, productUC, accountUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	c.Add("http server", func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-appCtx.Done():
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}
	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := c.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		logger.Infof("Application shutdown complete")
	}

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
