// Command web serves the catalog JSON API. Configuration comes from an
// optional config.yaml in the working directory and from environment
// variables (see pkg/config). With SPOTIFY_ACCESS_TOKEN set, requests use
// that user token; otherwise the client credentials flow is used and only
// catalog endpoints are available.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"Music-Catalog-Go/pkg/config"
	"Music-Catalog-Go/pkg/db"
	"Music-Catalog-Go/pkg/handlers"
	"Music-Catalog-Go/pkg/metrics"
	"Music-Catalog-Go/pkg/spotify"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

// newLogger returns a JSON logger at the named level.
func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(lvl)
	return log, nil
}

// newApplication wires metrics, the Web API client and the database into
// the handlers. The returned func closes the database.
func newApplication(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, reg *prometheus.Registry) (*handlers.Application, func(), error) {
	m := metrics.New(reg)
	// oauth2 picks this client's transport up from the context for both
	// token and API requests.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: m.Transport(nil)})

	opts := []spotify.Option{spotify.WithMarket(cfg.Market)}
	if cfg.BaseURL != "" {
		opts = append(opts, spotify.WithBaseURL(cfg.BaseURL))
	}
	var client *spotify.Client
	if cfg.AccessToken != "" {
		client = spotify.NewWithToken(ctx, cfg.AccessToken, opts...)
	} else {
		var err error
		client, err = spotify.NewClientCredentials(ctx, cfg.ClientID, cfg.ClientSecret, opts...)
		if err != nil {
			return nil, nil, err
		}
	}

	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	app := &handlers.Application{Client: client, DB: database, Log: log, Metrics: m.Handler()}
	return app, func() { database.Close() }, nil
}

// run serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	app, cleanup, err := newApplication(ctx, cfg, log, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           app.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	log.WithField("addr", cfg.ListenAddr).Info("listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
