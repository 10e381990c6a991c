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
	"github.com/jrsteele09/billing-console/backend"
	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/jrsteele09/billing-console/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", config.GetEnv("CONFIG_PATH", ""), "path to a YAML or JSONC config file")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Error running billing backend")
	}
	log.Info().Msg("Billing backend stopped")
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
	displayAppname("Billing Backend")

	handler, err := backend.NewInMemory(c)
	if err != nil {
		return err
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go handler.RunSweeper(sweepCtx, time.Minute)

	srv := &http.Server{Addr: c.GetBackendPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(srv) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errs:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Billing backend listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
