package kuzudb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/yungbote/docgraph-backend/internal/platform/envutil"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

// Client wraps the single process-wide embedded Kuzu database. Connections
// are cheap and opened per logical operation via Conn.
type Client struct {
	DB   *kuzu.Database
	Path string
	log  *logger.Logger
}

func New(path string, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("kuzudb: logger required")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("kuzudb: database path required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("kuzudb: create database dir: %w", err)
		}
	}

	cfg := kuzu.DefaultSystemConfig()
	if mb := envutil.Int("KUZU_BUFFER_POOL_MB", 0); mb > 0 {
		cfg.BufferPoolSize = uint64(mb) << 20
	}
	if threads := envutil.Int("KUZU_MAX_THREADS", 0); threads > 0 {
		cfg.MaxNumThreads = uint64(threads)
	}

	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzudb: open database at %s: %w", path, err)
	}

	return &Client{
		DB:   db,
		Path: path,
		log:  log.With("client", "KuzuDB"),
	}, nil
}

// Conn opens a fresh connection against the shared database handle.
// Callers own the connection and must Close it.
func (c *Client) Conn() (*kuzu.Connection, error) {
	if c == nil || c.DB == nil {
		return nil, fmt.Errorf("kuzudb: client not initialized")
	}
	conn, err := kuzu.OpenConnection(c.DB)
	if err != nil {
		return nil, fmt.Errorf("kuzudb: open connection: %w", err)
	}
	return conn, nil
}

func (c *Client) Close() {
	if c == nil || c.DB == nil {
		return
	}
	c.DB.Close()
	c.DB = nil
	if c.log != nil {
		c.log.Info("database closed", "path", c.Path)
	}
}
