package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/balping/hashslug/hashslug"
	"github.com/balping/hashslug/internal/blog"
	"github.com/balping/hashslug/internal/config"
	"github.com/balping/hashslug/internal/db"
	"github.com/balping/hashslug/internal/server"
)

// Namespace names under which overrides are read from the namespaces file.
const (
	postsNamespace    = "posts"
	commentsNamespace = "comments"
)

// App holds the application dependencies and configuration.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	DBPool  *pgxpool.Pool
	Slugs   *hashslug.Registry
	Server  *server.Server
	Handler *blog.Handler
}

// New initializes and returns a new App instance with all dependencies wired up.
func New(ctx context.Context) (*App, error) {
	if err := loadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.App.LogLevel)

	logger.Info("starting application",
		"env", cfg.App.Environment,
		"version", cfg.App.ServiceVersion,
	)

	slugs, namespaces, err := setupSlugs(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure slugs: %w", err)
	}

	dbPool, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx, dbPool, logger); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	repo := blog.NewRepository(db.New(dbPool))
	svc, err := blog.NewService(repo, blog.ServiceConfig{
		Registry:   slugs,
		Namespaces: namespaces,
	})
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create blog service: %w", err)
	}
	handler := blog.NewHandler(blog.HandlerConfig{
		Service: svc,
		Logger:  logger,
		BaseURL: cfg.Server.BaseURL,
	})

	srv := server.New(cfg, logger, handler)

	logger.Info("application initialized",
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		DBPool:  dbPool,
		Slugs:   slugs,
		Server:  srv,
		Handler: handler,
	}, nil
}

// Start starts the application server.
func (a *App) Start(ctx context.Context) error {
	a.Logger.Info("server starting",
		"port", a.Config.Server.Port,
		"base_url", a.Config.Server.BaseURL,
	)

	if err := a.Server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.Logger.Info("shutting down application")

	if a.DBPool != nil {
		a.DBPool.Close()
		a.Logger.Info("database connection closed")
	}

	return nil
}

// loadEnv loads .env file only in non-production environments.
func loadEnv() error {
	env := os.Getenv("APP_ENV")
	if env == "development" || env == "test" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found.")
		}
	}
	return nil
}

// setupLogger creates a structured logger based on the log level.
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

// setupSlugs builds the slug registry and resolves the blog namespaces so
// a bad alphabet or engine setting fails startup.
func setupSlugs(cfg *config.Config, logger *slog.Logger) (*hashslug.Registry, blog.Namespaces, error) {
	engine, err := cfg.Slug.ParsedEngine()
	if err != nil {
		return nil, blog.Namespaces{}, err
	}

	registry := hashslug.NewRegistry(cfg.Slug.Secret(),
		hashslug.WithEngine(engine),
		hashslug.WithSlugCache(cfg.Slug.CacheSize),
		hashslug.WithLogger(logger),
	)

	namespaces := blog.Namespaces{
		Post:    cfg.Slug.Namespace(postsNamespace, blog.PostNamespace),
		Comment: cfg.Slug.Namespace(commentsNamespace, blog.CommentNamespace),
	}
	if err := registry.Prepare(namespaces.Post, namespaces.Comment); err != nil {
		return nil, blog.Namespaces{}, err
	}

	logger.Info("slug codec configured",
		"engine", engine.String(),
		"cache_size", cfg.Slug.CacheSize,
		"namespaces_file", cfg.Slug.NamespacesFile,
	)
	return registry, namespaces, nil
}

// connectDatabase establishes a connection to the PostgreSQL database.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.Database.MaxConns
	poolConfig.MinConns = cfg.Database.MinConns

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")

	return pool, nil
}
