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
	"github.com/jrsteele09/go-contacts-server/auth"
	"github.com/jrsteele09/go-contacts-server/contacts"
	"github.com/jrsteele09/go-contacts-server/internal/config"
	"github.com/jrsteele09/go-contacts-server/mail"
	"github.com/jrsteele09/go-contacts-server/server"
	"github.com/jrsteele09/go-contacts-server/storage"
	"github.com/jrsteele09/go-contacts-server/token"
	"github.com/jrsteele09/go-contacts-server/token/reset"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run(log zerolog.Logger) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	store, err := storage.NewSQLiteAdapter(c.GetDBPath())
	if err != nil {
		return fmt.Errorf("storage.NewSQLiteAdapter: %w", err)
	}

	issuer := token.NewIssuer(c)
	resetSigner := reset.NewSigner(c.GetJWTSecret(), c.GetResetTokenExpiry())
	mailer := mail.NewSMTPMailer(c)

	authService, err := auth.NewService(
		auth.Repos{Users: store, Sessions: store},
		issuer,
		resetSigner,
		mailer,
		c,
		auth.WithResetMailLink(c.GetSmtpFrom(), c.GetAppDomain()),
	)
	if err != nil {
		return fmt.Errorf("auth.NewService: %w", err)
	}

	contactService, err := contacts.NewService(store)
	if err != nil {
		return fmt.Errorf("contacts.NewService: %w", err)
	}

	httpServer := &http.Server{
		Addr:    c.GetPort(),
		Handler: server.New(c, authService, contactService, log),
	}
	go listenAndServe(httpServer, log)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(httpServer *http.Server, log zerolog.Logger) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
