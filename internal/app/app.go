package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docgraph-backend/internal/data/graph"
	"github.com/yungbote/docgraph-backend/internal/observability"
	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
	"github.com/yungbote/docgraph-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	DB       *kuzudb.Client
	Router   *gin.Engine
	Cfg      Config
	Services Services

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg := LoadConfig()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})

	db, err := kuzudb.New(cfg.DBPath, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init kuzu: %w", err)
	}

	// Schema must be in place before anything touches the graph; any
	// unrecoverable DDL error is fatal at startup.
	if err := graph.EnsureSchema(ctx, db, log); err != nil {
		db.Close()
		log.Sync()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := graph.EnsureVectorSchema(ctx, db, log); err != nil {
		db.Close()
		log.Sync()
		return nil, fmt.Errorf("ensure vector schema: %w", err)
	}

	svcs := Services{
		Document: services.NewDocumentService(db, log),
		Search:   services.NewSearchService(db, log),
	}
	handlers := wireHandlers(log, svcs)
	router := wireRouter(log, cfg.ServiceName, handlers)

	return &App{
		Log:          log,
		DB:           db,
		Router:       router,
		Cfg:          cfg,
		Services:     svcs,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
		a.otelShutdown = nil
	}
	if a.DB != nil {
		a.DB.Close()
		a.DB = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
