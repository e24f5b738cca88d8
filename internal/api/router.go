package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/rental-ledger-backend/internal/holder"
	holderHttp "github.com/nekogravitycat/rental-ledger-backend/internal/holder/http"
	"github.com/nekogravitycat/rental-ledger-backend/internal/journal"
	journalHttp "github.com/nekogravitycat/rental-ledger-backend/internal/journal/http"
	"github.com/nekogravitycat/rental-ledger-backend/internal/ledger"
	"github.com/nekogravitycat/rental-ledger-backend/internal/report"
	reportHttp "github.com/nekogravitycat/rental-ledger-backend/internal/report/http"
	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
	resourceHttp "github.com/nekogravitycat/rental-ledger-backend/internal/resource/http"
)

// Config holds the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger

	ResourceService resource.Service
	HolderService   holder.Service
	LedgerService   ledger.Service
	ReportService   report.Service
	Journal         *journal.Recorder
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (request id, access log, recovery, CORS) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(RequestID(), AccessLog(cfg.Logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	resourceHandler := resourceHttp.NewHandler(cfg.ResourceService, cfg.LedgerService)
	holderHandler := holderHttp.NewHandler(cfg.HolderService, cfg.LedgerService)
	journalHandler := journalHttp.NewHandler(cfg.Journal)
	reportHandler := reportHttp.NewHandler(cfg.ReportService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		resourceHttp.RegisterRoutes(v1, resourceHandler)
		holderHttp.RegisterRoutes(v1, holderHandler)
		journalHttp.RegisterRoutes(v1, journalHandler)
		reportHttp.RegisterRoutes(v1, reportHandler)
	}

	return r
}

func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{
		"http://localhost:8081", // Swagger
		"http://localhost:3000",
	}
	// cors.New panics on an empty origin list, so production without
	// PROD_ORIGINS keeps the local defaults.
	if origins := splitOrigins(cfg.ProdOrigins); cfg.IsProduction && len(origins) > 0 {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	return config
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
