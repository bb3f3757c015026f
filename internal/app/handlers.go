package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/docgraph-backend/internal/http"
	httpH "github.com/yungbote/docgraph-backend/internal/http/handlers"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
	"github.com/yungbote/docgraph-backend/internal/services"
)

type Services struct {
	Document services.DocumentService
	Search   services.SearchService
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Document *httpH.DocumentHandler
	Search   *httpH.SearchHandler
	Debug    *httpH.DebugHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Document: httpH.NewDocumentHandler(log, svcs.Document),
		Search:   httpH.NewSearchHandler(log, svcs.Search),
		Debug:    httpH.NewDebugHandler(log, svcs.Search),
	}
}

func wireRouter(log *logger.Logger, serviceName string, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:             log,
		ServiceName:     serviceName,
		HealthHandler:   handlers.Health,
		DocumentHandler: handlers.Document,
		SearchHandler:   handlers.Search,
		DebugHandler:    handlers.Debug,
	})
}
