package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/config"
	"github.com/fairsplit/fairsplit/internal/database"
	"github.com/fairsplit/fairsplit/internal/expense"
	expensesplit "github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/group"
	"github.com/fairsplit/fairsplit/internal/seed"
	"github.com/fairsplit/fairsplit/internal/server"
	"github.com/fairsplit/fairsplit/internal/settlement"
	"github.com/fairsplit/fairsplit/pkg/logging"
)

// @title           FairSplit API
// @version         1.0
// @description     Shared expense tracking and debt settlement for small groups.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// Load .env file
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()
	level, _ := config.ParseLevel(cfg.LogLevel)
	logging.SetupWithLevel(level)

	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	var (
		groupRepo   group.Repository
		expenseRepo expense.Repository
	)
	switch cfg.DataBackend {
	case config.BackendPostgres:
		db, err := openPostgres(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to initialise database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		groupRepo = group.NewRepository(db)
		expenseRepo = expense.NewRepository(db)
	default:
		groupRepo = group.NewMemoryRepository()
		expenseRepo = expense.NewMemoryRepository()
	}
	slog.Info("storage ready", "backend", cfg.DataBackend)

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewSplitStrategyFactory()

	limits := group.Limits{MaxGroups: cfg.MaxGroups, MaxParticipants: cfg.MaxParticipants}
	groupService := group.NewService(groupRepo, expenseRepo, limits)
	expenseService := expense.NewService(expenseRepo, groupService, splitFactory)
	settlementService := settlement.NewService(expenseService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedSampleData {
		if err := seed.Load(ctx, groupService, expenseService, time.Now()); err != nil {
			slog.Warn("failed to load sample data", "error", err)
		}
	}

	router := server.NewRouter(server.Handlers{
		Groups:      group.NewHandler(groupService),
		Expenses:    expense.NewHandler(expenseService),
		Settlements: settlement.NewHandler(settlementService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func openPostgres(url string) (*sql.DB, error) {
	db, err := database.NewPostgresConnection(url)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
