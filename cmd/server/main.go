// Package main is the entry point for the fantalega auction ledger server.
// It restores the league from the latest snapshot, wires the ledger service
// to the HTTP API and the WebSocket auction board, and runs the periodic
// backup scheduler.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // postgres driver
	"github.com/shopspring/decimal"

	"github.com/fantalega/asta/internal/api"
	"github.com/fantalega/asta/internal/catalog"
	"github.com/fantalega/asta/internal/config"
	"github.com/fantalega/asta/internal/domain"
	"github.com/fantalega/asta/internal/repository"
	"github.com/fantalega/asta/internal/scheduler"
	"github.com/fantalega/asta/internal/service"
	"github.com/fantalega/asta/internal/ws"
)

func main() {
	// ── 1. Config + logger ────────────────────────────────────────────────────
	_ = godotenv.Load() // .env is optional; real env always wins

	cfg := config.MustLoad()

	var logHandler slog.Handler
	if cfg.IsProd() {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	logger.Info("starting fantalega auction server", "env", cfg.Server.Env, "port", cfg.Server.Port)

	// ── 2. Snapshot store ─────────────────────────────────────────────────────
	var (
		store service.SnapshotStore
		db    *sqlx.DB
	)
	if cfg.Snapshot.DSN != "" {
		var err error
		db, err = sqlx.Connect("postgres", cfg.Snapshot.DSN)
		if err != nil {
			logger.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		db.SetMaxOpenConns(cfg.Snapshot.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Snapshot.MaxIdleConns)

		pg := repository.NewPostgresStore(db)
		if err = pg.EnsureSchema(context.Background()); err != nil {
			logger.Error("schema setup failed", "err", err)
			os.Exit(1)
		}
		store = pg
		logger.Info("snapshot store: postgres")
	} else {
		store = repository.NewFileStore(cfg.Snapshot.Path, cfg.Snapshot.BackupDir)
		logger.Info("snapshot store: file", "path", cfg.Snapshot.Path)
	}

	// ── 3. Restore or create the league ───────────────────────────────────────
	league, err := store.Load(context.Background())
	switch {
	case err == nil:
		logger.Info("league restored from snapshot",
			"teams", len(league.Teams), "purchases", len(league.History))
	case errors.Is(err, domain.ErrSnapshotNotFound):
		league = domain.NewLeague(buildSettings(cfg.League))
		logger.Info("no snapshot found, starting a fresh league", "teams", len(league.Teams))
	default:
		logger.Error("snapshot load failed", "err", err)
		os.Exit(1)
	}
	// A league only grows: raising LEAGUE_TEAM_COUNT adds teams, lowering it
	// never evicts one that already spent credits.
	league.EnsureTeamCount(cfg.League.TeamCount)

	// ── 4. Player catalog ─────────────────────────────────────────────────────
	cat := catalog.NewEmpty()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			logger.Warn("catalog load failed, continuing without it", "path", cfg.Catalog.Path, "err", err)
		} else {
			cat = loaded
			logger.Info("catalog loaded", "path", cfg.Catalog.Path, "players", cat.Len())
		}
	}

	// ── 5. Ledger service ─────────────────────────────────────────────────────
	ledgerSvc := service.NewLedgerService(league, store, logger)

	// ── 6. WebSocket hub ──────────────────────────────────────────────────────
	var allowedOrigins []string
	for _, o := range strings.Split(cfg.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowedOrigins = append(allowedOrigins, o)
		}
	}
	hub := ws.NewHub(allowedOrigins)
	ledgerSvc.SetBroadcaster(hub)

	// ── 7. Root context + signal handling ─────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go hub.Run()
	logger.Info("websocket hub started")

	// ── 8. Scheduler ──────────────────────────────────────────────────────────
	sched := scheduler.NewScheduler(ledgerSvc, cfg, logger)
	sched.Start(ctx)

	// ── 9. HTTP router ────────────────────────────────────────────────────────
	router := api.SetupRouter(api.RouterDeps{
		LedgerSvc: ledgerSvc,
		Catalog:   cat,
		Hub:       hub,
		Cfg:       cfg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// ── 10. Start server ──────────────────────────────────────────────────────
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
			stop() // trigger graceful shutdown
		}
	}()

	// ── 11. Graceful shutdown ─────────────────────────────────────────────────
	<-ctx.Done()
	logger.Info("shutdown signal received, draining connections…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "err", err)
	}

	// One last backup so nothing recorded tonight is lost.
	if err = ledgerSvc.Backup(context.Background()); err != nil {
		logger.Warn("final backup failed", "err", err)
	}

	if db != nil {
		db.Close()
	}
	logger.Info("server stopped cleanly")
}

// buildSettings converts the env-level league config into domain settings.
func buildSettings(lc config.LeagueConfig) domain.Settings {
	return domain.Settings{
		TeamCount:       lc.TeamCount,
		InitialBudget:   lc.InitialBudget,
		AllowDuplicates: lc.AllowDuplicates,
		Quotas: map[domain.Position]int{
			domain.PositionGoalkeeper: lc.QuotaGoalkeeper,
			domain.PositionDefender:   lc.QuotaDefender,
			domain.PositionMidfielder: lc.QuotaMidfielder,
			domain.PositionAttacker:   lc.QuotaAttacker,
		},
		TargetFractions: map[domain.Position]decimal.Decimal{
			domain.PositionGoalkeeper: decimal.NewFromFloat(lc.TargetGK),
			domain.PositionDefender:   decimal.NewFromFloat(lc.TargetDF),
			domain.PositionMidfielder: decimal.NewFromFloat(lc.TargetMF),
			domain.PositionAttacker:   decimal.NewFromFloat(lc.TargetFW),
		},
	}
}
