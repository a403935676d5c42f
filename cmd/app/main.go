package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meltemk/skyticket/config"
	"github.com/meltemk/skyticket/internal/accounts"
	"github.com/meltemk/skyticket/internal/bootstrap"
	"github.com/meltemk/skyticket/internal/catalog"
	"github.com/meltemk/skyticket/internal/kafka"
	"github.com/meltemk/skyticket/internal/ledger"
	"github.com/meltemk/skyticket/internal/repository"
	"github.com/meltemk/skyticket/internal/session"
	"github.com/meltemk/skyticket/internal/workflow"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	sessions := session.NewRedisRepository(cfg.Redis, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	ticketRepo := repository.NewTicketRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	if err := userRepo.EnsureDefault(ctx); err != nil {
		log.Fatalf("seed default user: %v", err)
	}

	flightCatalog := catalog.NewService(time.Duration(cfg.Simulation.SearchDelayMillis) * time.Millisecond)
	bookingService := workflow.NewService(
		sessions,
		flightCatalog,
		ticketRepo,
		time.Duration(cfg.Simulation.PaymentDelayMillis)*time.Millisecond,
	)
	ledgerService := ledger.NewService(
		ticketRepo,
		producer,
		cfg.Kafka.TicketsTopic,
		ledger.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	accountsService := accounts.NewService(userRepo, sessions)

	if err := bootstrap.Run(ctx, cfg, bookingService, ledgerService, accountsService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
