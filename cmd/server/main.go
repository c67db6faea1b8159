// Package main is the social graph API binary: it serves the HTTP API,
// migrates the relational schema and seeds demo data.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-social/backend/internal/publisher"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/router"
	"github.com/anonto42/nano-social/backend/internal/seed"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/firebase"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Social graph and activity fanout API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(serveCmd(&logLevel), migrateCmd(&logLevel), seedCmd(&logLevel))
	return cmd
}

// bootstrap loads config, installs the logger and opens the databases
func bootstrap(ctx context.Context, logLevel string) (*config.Config, *config.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	slog.SetDefault(config.NewLogger(os.Stderr, cfg.LogLevel, cfg.Env))

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}
	return cfg, db, nil
}

func activityRepository(cfg *config.Config, db *config.DB) repositories.ActivityRepository {
	if db.Mongo == nil {
		return repositories.NopActivityRepository{}
	}
	return repositories.NewMongoActivityRepository(db.Mongo.Database(cfg.MongoDatabase))
}

func serveCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the metrics endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, db, err := bootstrap(ctx, *logLevel)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := repositories.AutoMigrate(db.Postgres); err != nil {
				return fmt.Errorf("failed to auto migrate models: %w", err)
			}

			deps := router.Dependencies{
				DB:           db.Postgres,
				Activities:   activityRepository(cfg, db),
				Publisher:    publisher.NewRedisPublisher(db.Redis),
				Logger:       slog.Default(),
				AuthProvider: cfg.AuthProvider,
				JWTSecret:    cfg.JWTSecret,
			}
			if cfg.AuthProvider == config.AuthProviderFirebase {
				app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
				if err != nil {
					return fmt.Errorf("failed to initialize Firebase: %w", err)
				}
				deps.FirebaseVerifier = app.AuthClient
			}

			e, err := router.New(deps)
			if err != nil {
				return err
			}

			metricsMux := http.NewServeMux()
			metricsMux.Handle("/metrics", promhttp.Handler())
			metricsSrv := &http.Server{
				Addr:              ":" + cfg.MetricsPort,
				Handler:           metricsMux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 2)
			go func() {
				slog.Info("metrics server listening", slog.String("addr", metricsSrv.Addr))
				if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- fmt.Errorf("metrics server: %w", err)
				}
			}()
			go func() {
				slog.Info("api server listening", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- fmt.Errorf("api server: %w", err)
				}
			}()

			select {
			case <-ctx.Done():
				slog.Info("shutting down")
			case err = <-errCh:
				slog.Error("server failed", slog.Any("error", err))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
				slog.Error("api shutdown", slog.Any("error", shutdownErr))
			}
			if shutdownErr := metricsSrv.Shutdown(shutdownCtx); shutdownErr != nil {
				slog.Error("metrics shutdown", slog.Any("error", shutdownErr))
			}
			return err
		},
	}
}

func migrateCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the relational schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := bootstrap(cmd.Context(), *logLevel)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := repositories.AutoMigrate(db.Postgres); err != nil {
				return fmt.Errorf("failed to auto migrate models: %w", err)
			}
			slog.Info("PostgreSQL auto-migrations completed")
			return nil
		},
	}
}

func seedCmd(logLevel *string) *cobra.Command {
	opts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo users, follows, posts, comments and likes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := bootstrap(cmd.Context(), *logLevel)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := repositories.AutoMigrate(db.Postgres); err != nil {
				return fmt.Errorf("failed to auto migrate models: %w", err)
			}

			store := repositories.NewStore(db.Postgres)
			svc := services.New(store, activityRepository(cfg, db), publisher.NewRedisPublisher(db.Redis), slog.Default())
			summary, err := seed.NewSeeder(svc, opts, slog.Default()).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d follows, %d posts, %d comments, %d likes\n",
				summary.Users, summary.Follows, summary.Posts, summary.Comments, summary.Likes)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", opts.Users, "Number of users to create")
	cmd.Flags().IntVar(&opts.FollowsPerUser, "follows", opts.FollowsPerUser, "Follows per user")
	cmd.Flags().IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "Posts per user")
	cmd.Flags().IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "Comments per post")
	cmd.Flags().IntVar(&opts.LikesPerPost, "likes", opts.LikesPerPost, "Likes per post")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed (0 picks one)")
	return cmd
}
