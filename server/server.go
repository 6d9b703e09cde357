// Package server is a development REST backend with json-server semantics.
// Every collection is a table of JSON documents keyed by id.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Server is the development backend
type Server struct {
	db      *sqlx.DB
	docs    *Documents
	metrics *metrics
	echo    *echo.Echo
}

// Open connects to the database described by driver and dsn
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// New opens the configured database and prepares the server
func New(cfg config.ServerConfig) (*Server, error) {
	db, err := Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	s, err := NewWithDB(context.Background(), db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB migrates db, seeds the quotes and prepares the server
func NewWithDB(ctx context.Context, db *sqlx.DB) (*Server, error) {
	if err := Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Server{
		db:      db,
		docs:    NewDocuments(db),
		metrics: newMetrics(),
	}
	if err := s.seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed quotes: %w", err)
	}

	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(s.metrics.middleware)

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(s.metrics.handler()))

	e.GET("/:collection", s.handleList)
	e.POST("/:collection", s.handleCreate)
	e.GET("/:collection/:id", s.handleGet)
	e.PUT("/:collection/:id", s.handleReplace)
	e.PATCH("/:collection/:id", s.handlePatch)
	e.DELETE("/:collection/:id", s.handleDelete)

	s.echo = e
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.db.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	logger.Info("Backend listening", logger.F("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.db.PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
