package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/joho/godotenv/autoload"

	"todoweb/internal/config"
	"todoweb/internal/database"
	"todoweb/internal/repository"
	"todoweb/internal/server"
	"todoweb/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "todoweb",
		Short:        "A small to-do list web application",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "todoweb.toml", "path to the config file")

	root.AddCommand(newServeCmd(&configPath), newMigrateCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			dbService, err := database.New(cfg.DB)
			if err != nil {
				return err
			}

			if err := database.Migrate(dbService.GetDB()); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			taskRepo := repository.NewGormTaskRepository(dbService.GetDB())
			taskService := service.NewTaskService(taskRepo)
			httpServer := server.NewServer(cfg, taskService, dbService)

			done := make(chan bool, 1)
			go gracefulShutdown(httpServer, dbService, done)

			log.Printf("Starting server on %s", httpServer.Addr)
			err = httpServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen and serve: %w", err)
			}

			<-done
			log.Println("Graceful shutdown complete.")
			return nil
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			dbService, err := database.New(cfg.DB)
			if err != nil {
				return err
			}
			defer dbService.Close()

			if err := database.Migrate(dbService.GetDB()); err != nil {
				return err
			}
			log.Println("Migrations up to date.")
			return nil
		},
	}
}

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// Give in-flight requests 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			log.Printf("Error closing database connection pool: %v", err)
		}
	}

	log.Println("Server exiting")
	done <- true
}
