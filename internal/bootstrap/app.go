package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/audit"
	"catalog-backend/internal/imports"
	"catalog-backend/internal/products"
	"catalog-backend/internal/queue"
	"catalog-backend/internal/scans"
	"catalog-backend/internal/shared/config"
	"catalog-backend/internal/shared/server"
	"catalog-backend/internal/shared/storage/db"
	"catalog-backend/internal/shared/storage/object"
	localstore "catalog-backend/internal/shared/storage/object/local"
	s3store "catalog-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the API server and the worker.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	Queue           queue.Client
	ProductsRepo    products.ProductsRepo
	ScansRepo       scans.Repo
	ProductsService *products.Service
	ScansService    *scans.Service
	ScanProcessor   ScanProcessor
	ImportsService  *imports.Service
	ProductHandler  *products.Handler
	ScanHandler     *scans.Handler
	ImportHandler   *imports.Handler
}

// ScanProcessor allows callers to override scan processing for tests.
type ScanProcessor interface {
	ProcessScan(ctx context.Context, scanID string) error
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Router: nil,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		ProductHandler: app.ProductHandler,
		ScanHandler:    app.ScanHandler,
		ImportHandler:  app.ImportHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("CH_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var productRepo products.ProductsRepo
	var scanRepo scans.Repo

	if app.DB != nil {
		productRepo = &products.PGRepo{DB: app.DB}
		scanRepo = &scans.PGRepo{DB: app.DB}
	} else {
		productRepo = products.NewMemoryRepo()
		scanRepo = scans.NewMemoryRepo()
	}

	auditCfg := audit.DefaultConfig()
	if app.Config.AuditTargetMarginPercent > 0 {
		auditCfg.TargetMarginPercent = app.Config.AuditTargetMarginPercent
	}

	productSvc := products.NewService(productRepo, auditCfg)
	scanSvc := &scans.Service{
		Repo:     scanRepo,
		Products: productRepo,
		Queue:    app.Queue,
	}
	importSvc := imports.NewService(productSvc, app.Store)

	app.ProductsRepo = productRepo
	app.ScansRepo = scanRepo
	app.ProductsService = productSvc
	app.ScansService = scanSvc
	app.ScanProcessor = scanSvc
	app.ImportsService = importSvc
	app.ProductHandler = products.NewHandler(productSvc)
	app.ScanHandler = scans.NewHandler(scanSvc)
	app.ImportHandler = imports.NewHandler(importSvc)

	if app.ProductHandler == nil || app.ScanHandler == nil || app.ImportHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}
