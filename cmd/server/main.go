package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/smartwings/booking-system/internal/booking"
	"github.com/smartwings/booking-system/internal/catalog"
	"github.com/smartwings/booking-system/internal/chat"
	"github.com/smartwings/booking-system/internal/config"
	"github.com/smartwings/booking-system/internal/confirmation"
	"github.com/smartwings/booking-system/internal/contact"
	"github.com/smartwings/booking-system/internal/handlers"
	"github.com/smartwings/booking-system/internal/router"
	"github.com/smartwings/booking-system/internal/service"
	"github.com/smartwings/booking-system/internal/session"
	"github.com/smartwings/booking-system/internal/status"
	"github.com/smartwings/booking-system/internal/ticket"
	"github.com/smartwings/booking-system/internal/ws"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.JSONFormatter{})

	// Catalog: Postgres when configured, the seeded demo inventory
	// otherwise.
	var provider catalog.Provider
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to database")
		}
		defer pool.Close()
		provider = catalog.NewPostgresProvider(pool)
		log.Info("using postgres flight catalog")
	} else {
		provider = catalog.Seeded()
		log.Info("using in-memory flight catalog")
	}

	issuer, err := confirmation.NewIssuer(cfg.CarrierPrefix)
	if err != nil {
		log.WithError(err).Fatal("invalid carrier prefix")
	}

	sessions := session.NewManager(func() *booking.Wizard {
		return booking.NewWizard(provider, issuer,
			booking.WithLatency(cfg.Latency),
			booking.WithLogger(log),
		)
	})

	users, err := session.NewUserStore(cfg.UserSlotPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open user store")
	}

	// Real-time status board
	hub := ws.NewHub(log)
	go hub.Run()

	feed := status.NewFeed(
		status.WithBroadcaster(hub),
		status.WithLogger(log),
	)
	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	go feed.Run(feedCtx)

	bookingService := service.NewBookingService(sessions, ticket.NewEmailSender(log), log)

	h := handlers.NewHandler(
		bookingService,
		chat.NewBot(),
		contact.NewService(log, cfg.Latency),
		feed,
		users,
		log,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.SetupRouter(h, hub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
