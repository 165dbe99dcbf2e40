package watersubscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/water-subscription/internal/cache"
	"github.com/magabrotheeeer/water-subscription/internal/config"
	"github.com/magabrotheeeer/water-subscription/internal/lib/jwt"
	"github.com/magabrotheeeer/water-subscription/internal/lib/password"
	"github.com/magabrotheeeer/water-subscription/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/water-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/water-subscription/internal/migrations"
	"github.com/magabrotheeeer/water-subscription/internal/services/account"
	"github.com/magabrotheeeer/water-subscription/internal/services/address"
	"github.com/magabrotheeeer/water-subscription/internal/services/card"
	"github.com/magabrotheeeer/water-subscription/internal/services/catalog"
	"github.com/magabrotheeeer/water-subscription/internal/services/delivery"
	"github.com/magabrotheeeer/water-subscription/internal/services/subscription"
	"github.com/magabrotheeeer/water-subscription/internal/storage/repository"
)

type eventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher eventPublisher
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	const op = "app.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	sqlDB := db.SQLDB()
	err = migrations.Run(sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}
	if err = app.setupPublisher(cfg.RabbitMQ); err != nil {
		_ = cacheRedis.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	catalogService := catalog.NewCatalogService(db, cacheRedis, cfg.WaterTTL, logger)
	services := Services{
		Catalog:      catalogService,
		Subscription: subscription.NewSubscriptionService(db, catalogService, app.publisher, cfg.LockoutWindow, logger),
		Delivery:     delivery.NewDeliveryService(db, logger),
		Cards:        card.NewCardService(db, password.GetHash, app.publisher, logger),
		Address:      address.NewAddressService(db, logger),
		Account:      account.NewAccountService(db, app.publisher, logger),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, services, jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL), db, reg)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// setupPublisher подключается к RabbitMQ. Без URL события не публикуются.
func (a *App) setupPublisher(cfg config.RabbitMQ) error {
	if cfg.URL == "" {
		a.logger.Warn("rabbitmq url is empty, events are disabled")
		a.publisher = rabbitmq.NoopPublisher{}
		return nil
	}

	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.GetAccountQueues())
	if err != nil {
		_ = conn.Close()
		return err
	}
	a.amqpConn = conn
	a.publisher = rabbitmq.NewPublisher(ch, cfg.Exchange)
	return nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if p, ok := a.publisher.(*rabbitmq.Publisher); ok {
		if err := p.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close redis", sl.Err(err))
	}
	a.db.Close()
}
