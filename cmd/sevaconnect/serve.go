package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sevaconnect/internal/auth"
	"sevaconnect/internal/db"
	"sevaconnect/internal/search"
	"sevaconnect/internal/server"
	"sevaconnect/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	tokens, err := auth.NewTokenIssuer(config.JWTSecret, time.Duration(config.TokenTTLHours)*time.Hour)
	if err != nil {
		return err
	}

	userRepo := store.NewUserRepository(pool)
	ngoRepo := store.NewNGORepository(pool)
	donationRepo := store.NewDonationRepository(pool)
	inventoryRepo := store.NewInventoryRepository(pool)
	volunteerRepo := store.NewVolunteerRepository(pool)
	alertRepo := store.NewAlertRepository(pool)

	engine := search.NewEngine(ngoRepo)

	srv := server.New(
		config,
		logger,
		tokens,
		userRepo,
		ngoRepo,
		donationRepo,
		inventoryRepo,
		volunteerRepo,
		alertRepo,
		engine,
	)

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
