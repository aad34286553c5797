package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"ticketd/internal/app"
	"ticketd/internal/audit"
	"ticketd/internal/ledger"
	"ticketd/internal/ledger/metrics"
	"ticketd/internal/platform/clock"
	"ticketd/internal/platform/config"
	"ticketd/internal/platform/httpserver"
	"ticketd/internal/platform/logger"
	platformredis "ticketd/internal/platform/redis"
	"ticketd/internal/token"
	httptransport "ticketd/internal/transport/http"
	"ticketd/pkg/domain"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/ledger and internal/app.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	owner, err := domain.ParseAddress(cfg.OwnerAddress)
	if err != nil {
		log.Error("invalid TICKETD_OWNER_ADDRESS", "error", err)
		os.Exit(1)
	}
	venue, err := domain.ParseAddress(cfg.VenueAddress)
	if err != nil {
		log.Error("invalid TICKETD_VENUE_ADDRESS", "error", err)
		os.Exit(1)
	}

	core, err := ledger.New(owner, venue)
	if err != nil {
		log.Error("create ledger", "error", err)
		os.Exit(1)
	}

	store, cleanup, err := buildAuditStore(cfg)
	if err != nil {
		log.Error("configure audit store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	var sinks []audit.Sink
	if len(cfg.Audit.KafkaBrokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.Audit.KafkaBrokers, cfg.Audit.KafkaTopic)
		if err != nil {
			log.Error("configure kafka sink", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		sinks = append(sinks, sink)
	}
	publisher := audit.NewPublisher(store, sinks...)
	inbox := make(chan audit.Event, cfg.Audit.InboxSize)
	worker := audit.NewWorker(publisher, inbox)

	svc := app.New(core, clock.NewSystem(), inbox, metrics.New(), log)
	tokens := token.NewService(cfg.JWTSigningKey, "ticketd")
	handler := httptransport.NewHandler(svc, publisher)
	router := httptransport.NewRouter(handler, tokens, log)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting ticketd", "addr", cfg.Addr, "owner", owner.String(), "venue", venue.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// buildAuditStore picks the journal backend from config. The returned cleanup
// closes whatever connection the backend opened.
func buildAuditStore(cfg config.Config) (audit.Store, func(), error) {
	switch cfg.Audit.Backend {
	case "", "memory":
		return audit.NewInMemoryStore(), func() {}, nil
	case "redis":
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, errors.New("audit backend is redis but TICKETD_REDIS_URL is empty")
		}
		return audit.NewRedisStore(client.Client), func() { _ = client.Close() }, nil
	case "postgres":
		db, err := sql.Open("postgres", cfg.Audit.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		store := audit.NewPostgresStore(db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil
	default:
		return nil, nil, errors.New("unknown audit backend " + cfg.Audit.Backend)
	}
}
