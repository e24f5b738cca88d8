package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/rental-ledger-backend/internal/api"
	"github.com/nekogravitycat/rental-ledger-backend/internal/clock"
	"github.com/nekogravitycat/rental-ledger-backend/internal/holder"
	"github.com/nekogravitycat/rental-ledger-backend/internal/idgen"
	"github.com/nekogravitycat/rental-ledger-backend/internal/journal"
	"github.com/nekogravitycat/rental-ledger-backend/internal/ledger"
	"github.com/nekogravitycat/rental-ledger-backend/internal/report"
	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	// DBPool is optional. When set the journal is written to PostgreSQL.
	DBPool *pgxpool.Pool
	Logger *zap.Logger
	Clock  clock.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router    *gin.Engine
	Resources resource.Service
	Holders   holder.Service
	Ledger    ledger.Service
	Report    report.Service
	Journal   *journal.Recorder
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}

	ids := idgen.NewAllocator()

	// Catalog
	resService := resource.NewService(resource.NewMemoryRepository(), ids, clk)

	// Holder registry
	holderService := holder.NewService(holder.NewMemoryRepository(), ids, clk)

	// Journal
	var journalRepo journal.Repository
	if cfg.DBPool != nil {
		journalRepo = journal.NewPgxRepository(cfg.DBPool)
	} else {
		journalRepo = journal.NewMemoryRepository()
	}
	recorder := journal.NewRecorder(journalRepo, clk, logger.Named("journal"))

	// Ledger
	ledgerService := ledger.NewService(resService, holderService,
		ledger.WithJournal(recorder),
		ledger.WithLogger(logger.Named("ledger")))

	// Report
	reportService := report.NewService(resService, holderService, clk)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		Logger:          logger.Named("http"),
		ResourceService: resService,
		HolderService:   holderService,
		LedgerService:   ledgerService,
		ReportService:   reportService,
		Journal:         recorder,
	})

	return &Container{
		Router:    router,
		Resources: resService,
		Holders:   holderService,
		Ledger:    ledgerService,
		Report:    reportService,
		Journal:   recorder,
	}
}
