// Package main is the entry point for the party score tracker server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"party-score-tracker/internal/config"
	"party-score-tracker/internal/handler"
	"party-score-tracker/internal/pkg/db"
	"party-score-tracker/internal/repository"
	"party-score-tracker/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	groupRepo := repository.NewGroupRepository(dbPool.Pool)
	memberRepo := repository.NewMemberRepository(dbPool.Pool)
	matchRepo := repository.NewMatchRepository(dbPool.Pool)
	approvalRepo := repository.NewApprovalRepository(dbPool.Pool)
	bonusRepo := repository.NewBonusRepository(dbPool.Pool)

	// Initialize services
	groupService := service.NewGroupService(groupRepo, memberRepo)
	matchService := service.NewMatchService(dbPool.Pool, groupRepo, memberRepo, matchRepo, approvalRepo)
	leaderboardService := service.NewLeaderboardService(groupRepo, memberRepo, matchRepo, bonusRepo)
	leagueService := service.NewLeagueService(dbPool.Pool, groupRepo, memberRepo, matchRepo, bonusRepo)

	// Initialize handlers and router
	router := handler.NewRouter(
		handler.NewGroupHandler(groupService),
		handler.NewMatchHandler(matchService),
		handler.NewLeagueHandler(leaderboardService, leagueService),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}

// runMigrations applies the database schema.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS groups (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			rule_set VARCHAR(20) NOT NULL,
			league_status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			kind VARCHAR(10) NOT NULL,
			display_name VARCHAR(255) NOT NULL,
			account_id BIGINT,
			status VARCHAR(10) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			map_id BIGINT NOT NULL,
			played_at DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			submitter_id BIGINT NOT NULL REFERENCES members(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id BIGSERIAL PRIMARY KEY,
			match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			member_id BIGINT NOT NULL REFERENCES members(id),
			stars INT NOT NULL DEFAULT 0,
			coins INT NOT NULL DEFAULT 0,
			minigames_won INT NOT NULL DEFAULT 0,
			showdown_wins INT NOT NULL DEFAULT 0,
			standing INT NOT NULL,
			points INT NOT NULL,
			UNIQUE (match_id, member_id)
		)`,
		`CREATE TABLE IF NOT EXISTS approvals (
			match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			member_id BIGINT NOT NULL REFERENCES members(id),
			vote VARCHAR(10) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (match_id, member_id)
		)`,
		`CREATE TABLE IF NOT EXISTS bonuses (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			member_id BIGINT NOT NULL REFERENCES members(id),
			kind VARCHAR(20) NOT NULL,
			points INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (group_id, kind)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Info().Msg("Database migrations applied")
	return nil
}
