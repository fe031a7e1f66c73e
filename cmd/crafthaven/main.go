package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/wisnubjoey/crafthaven/internal/api"
	"github.com/wisnubjoey/crafthaven/internal/cart"
	"github.com/wisnubjoey/crafthaven/internal/checkout"
	"github.com/wisnubjoey/crafthaven/internal/config"
	chhttp "github.com/wisnubjoey/crafthaven/internal/http"
	"github.com/wisnubjoey/crafthaven/internal/notify"
	"github.com/wisnubjoey/crafthaven/internal/storage"
	"github.com/wisnubjoey/crafthaven/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logger.New(cfg.LogLevel)
	log.WithFields(logrus.Fields{
		"port":    cfg.HTTPPort,
		"storage": cfg.CartStorage,
		"backend": cfg.APIBaseURL,
	}).Info("crafthaven starting")

	backend, cleanup, err := openStorage(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open cart storage")
	}
	defer cleanup()

	if cfg.WhatsAppPhone == "" {
		log.Warn("WHATSAPP_PHONE not set, checkout will be unavailable")
	}

	store := cart.NewStore(backend, log.WithField("component", "cart-store"))
	builder := checkout.NewBuilder(cfg.WhatsAppPhone)
	session := cart.NewSession(store, builder, log.WithField("component", "cart-session"))

	tokens := api.NewStoredTokens(backend)
	client := api.New(cfg.APIBaseURL, tokens, log.WithField("component", "api-client"))
	notifier := notify.NewLogNotifier(log.WithField("component", "notify"))

	router := chhttp.NewRouter(session, client, notifier, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "crafthaven"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server failed")
		}
	}()
	log.WithField("addr", srv.Addr).Info("http server listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// openStorage picks the persistence backend for the cart blob. "memory"
// is the no-capability mode: the cart works but does not survive restarts.
func openStorage(cfg *config.Config, log *logrus.Logger) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.CartStorage {
	case "memory":
		return storage.NewMemory(), noop, nil

	case "sqlite":
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return db, func() { db.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, noop, err
		}
		return storage.NewRedis(client), func() { client.Close() }, nil

	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, noop, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, noop, err
		}
		collection := client.Database(cfg.MongoDB).Collection("kv")
		cleanup := func() {
			disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer disconnectCancel()
			client.Disconnect(disconnectCtx)
		}
		return storage.NewMongo(collection), cleanup, nil

	default:
		log.WithField("storage", cfg.CartStorage).Warn("unknown storage driver, falling back to memory")
		return storage.NewMemory(), noop, nil
	}
}
