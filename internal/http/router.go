package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/docgraph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/docgraph-backend/internal/http/middleware"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	ServiceName string

	HealthHandler   *httpH.HealthHandler
	DocumentHandler *httpH.DocumentHandler
	SearchHandler   *httpH.SearchHandler
	DebugHandler    *httpH.DebugHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if cfg.DocumentHandler != nil {
		r.POST("/seed", cfg.DocumentHandler.Seed)
		r.GET("/chunks", cfg.DocumentHandler.ListChunks)
		r.POST("/ingest", cfg.DocumentHandler.Ingest)
	}

	if cfg.SearchHandler != nil {
		r.GET("/search", cfg.SearchHandler.Search)
		r.POST("/search/semantic", cfg.SearchHandler.Semantic)
	}

	if cfg.DebugHandler != nil {
		debug := r.Group("/debug")
		debug.GET("/indexes", cfg.DebugHandler.Indexes)
		debug.POST("/set_dummy_embeddings", cfg.DebugHandler.SetDummyEmbeddings)
	}

	return r
}
