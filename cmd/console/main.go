package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/billing-console/console"
	"github.com/jrsteele09/billing-console/gateway"
	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/jrsteele09/billing-console/internal/logging"
	"github.com/jrsteele09/billing-console/server"
	"github.com/jrsteele09/billing-console/session"
	"github.com/jrsteele09/billing-console/storage/drivers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", config.GetEnv("CONFIG_PATH", ""), "path to a YAML or JSONC config file")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Error running console")
	}
	log.Info().Msg("Console stopped")
}

func run(configPath string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Setup(c.GetEnv(), c.GetLogLevel())
	displayAppname(c.GetAppName())

	ctx := context.Background()
	store, closeStore, err := drivers.Open(ctx, c)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Err(err).Msg("failed to close credential store")
		}
	}()

	gw, err := gateway.New(store, gateway.NewResolver(c))
	if err != nil {
		return err
	}
	sessions, err := session.NewStore(store, session.NewGatewayAuth(gw), session.WithCookieName(c.GetSessionCookieName()))
	if err != nil {
		return err
	}
	sessions.Initialize(ctx)
	sessions.Subscribe(func(state session.State) {
		log.Debug().Bool("authenticated", state.Authenticated).Bool("loading", state.Loading).Msg("session state changed")
	})

	handler, err := server.New(c, sessions, console.New(gw))
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: c.GetPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(srv) }()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Console listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
