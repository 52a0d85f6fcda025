// Command api runs the campground booking HTTP service.
//
// @title        Campground Booking API
// @version      1.0
// @description  Resource-booking backend: users, campgrounds and reservations.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trailhead/campground-api/internal/api"
	"github.com/trailhead/campground-api/internal/infrastructure/config"
	mongodb "github.com/trailhead/campground-api/internal/infrastructure/db/mongo"
	redisdb "github.com/trailhead/campground-api/internal/infrastructure/db/redis"
	"github.com/trailhead/campground-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	opts := api.Options{
		DB:            db,
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		BcryptCost:    cfg.BcryptCost,
		SecureCookies: cfg.IsProduction(),
		Logger:        log,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
		opts.Redis = rdb
		log.Info().Msg("token deny-list enabled")
	} else {
		log.Warn().Msg("redis not configured; logout will not revoke tokens server-side")
	}

	e := api.NewRouter(opts)

	go func() {
		addr := ":" + cfg.Port
		var err error
		if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
			tlsCfg, cfgErr := buildTLSConfig(cfg.TLS)
			if cfgErr != nil {
				log.Fatal().Err(cfgErr).Msg("tls configuration failed")
			}
			e.TLSServer.Addr = addr
			e.TLSServer.TLSConfig = tlsCfg
			log.Info().Str("addr", addr).Msg("starting HTTPS server")
			err = e.StartServer(e.TLSServer)
		} else {
			log.Info().Str("addr", addr).Msg("starting HTTP server")
			err = e.Start(addr)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildTLSConfig enables client-certificate verification when a client CA
// bundle is configured. The products list route requires a verified peer
// certificate on top of bearer auth.
func buildTLSConfig(cfg config.TLSConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, err
	}
	tlsCfg := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{cert},
	}
	if cfg.ClientCAFile == "" {
		return tlsCfg, nil
	}

	ca, err := os.ReadFile(cfg.ClientCAFile)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return nil, errors.New("no certificates parsed from client CA file")
	}

	tlsCfg.ClientCAs = pool
	tlsCfg.ClientAuth = tls.VerifyClientCertIfGiven
	return tlsCfg, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewBookingRepository(db).EnsureIndexes(ctx)
}
