package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"brokerage/cmd"
	httpadapter "brokerage/internal/adapters/in/http"
	"brokerage/internal/core/application/usecases/queries"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func loadConfig(c *cobra.Command) (cmd.Config, error) {
	path, _ := c.Flags().GetString("config")
	cfg, err := cmd.LoadConfig(path)
	if err != nil {
		return cmd.Config{}, err
	}
	if c.Flags().Changed("port") {
		cfg.HTTPPort, _ = c.Flags().GetString("port")
	}
	if c.Flags().Changed("store") {
		cfg.StoreDriver, _ = c.Flags().GetString("store")
	}
	return cfg, nil
}

func serveCmd(logger *slog.Logger) *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the history consistency job",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := cmd.NewCompositionRoot(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					logger.Error("Failed to close connections", "error", closeErr)
				}
			}()

			if migrate {
				if err := app.Migrate(); err != nil {
					return err
				}
			}

			jobManager := app.CreateJobManager()
			if err := jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			return startWebServer(ctx, app, cfg.HTTPPort, logger)
		},
	}
	c.Flags().String("port", "", "HTTP port, overrides HTTP_PORT")
	c.Flags().String("store", "", "ledger store: postgres or memory")
	c.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return c
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e := httpadapter.NewEcho(app.CreateHTTPServer(), app.Metrics(), logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func migrateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the PostgreSQL schema",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			cfg.StoreDriver = cmd.StorePostgres

			app, err := cmd.NewCompositionRoot(c.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Migrate(); err != nil {
				return err
			}
			fmt.Println(color.New(color.FgGreen).Sprint("Schema is up to date"))
			return nil
		},
	}
}

var errHistoryDrift = errors.New("history drift detected")

func verifyHistoryCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-history",
		Short: "Replay every request's status history against its stored statuses",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			app, err := cmd.NewCompositionRoot(c.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.CreateVerifyHistoryQueryHandler().Handle(c.Context(), queries.NewVerifyHistoryQuery())
			if err != nil {
				return err
			}

			fmt.Printf("Checked %d requests\n", report.Checked)
			if len(report.Drifts) == 0 {
				fmt.Println(color.New(color.FgGreen).Sprint("OK"))
				return nil
			}
			for _, d := range report.Drifts {
				fmt.Printf("  %s %s: %s\n", color.New(color.FgRed).Sprint("DRIFT"), d.RequestID, d.Reason)
			}
			return fmt.Errorf("%w in %d requests", errHistoryDrift, len(report.Drifts))
		},
	}
}
