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
	"github.com/jrsteele09/uzera-playground/analytics"
	"github.com/jrsteele09/uzera-playground/internal/config"
	interrors "github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/server"
	"github.com/jrsteele09/uzera-playground/sessions"
	"github.com/jrsteele09/uzera-playground/storage/backend"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	c, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	initLogger(c.GetEnv())

	for {
		if err := run(c); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func initLogger(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	ctx := context.Background()
	displayAppname(c.GetAppName())

	kv, closeStorage, err := backend.Open(ctx, c)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Err(err).Msg("Failed to close storage")
		}
	}()

	var identifier sessions.Identifier
	collector, err := analytics.New(c, c.GetAppName())
	switch {
	case err == nil:
		identifier = collector
	case errors.Is(err, interrors.ErrCollectorNotAvailable):
		log.Info().Msg("No identify collector configured, identify calls will be logged")
	default:
		return fmt.Errorf("collector: %w", err)
	}

	handler, err := server.New(ctx, c, kv, identifier)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: c.GetPort(), Handler: handler}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(srv) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
