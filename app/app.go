package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/GameIsFlash/Purchase-Generator/app/controller"
	"github.com/GameIsFlash/Purchase-Generator/app/router"
	"github.com/GameIsFlash/Purchase-Generator/app/session"
	"github.com/GameIsFlash/Purchase-Generator/config"
	"github.com/GameIsFlash/Purchase-Generator/db"
	"github.com/GameIsFlash/Purchase-Generator/repository"
	"github.com/GameIsFlash/Purchase-Generator/service"
)

// App holds the wired application
type App struct {
	Config  *config.Config
	Session *session.Session
	Handler http.Handler

	syncService service.ImageSyncServiceInterface
	conn        *sql.DB
}

// Initialize initializes the application.
// A failing initial catalog load is logged, the session starts with an empty catalog.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	newSource, err := a.sourceFactory(ctx)
	if err != nil {
		return nil, err
	}

	sink := newDocumentSink(cfg)
	a.Session = session.NewSession(cfg, newSource, sink)

	if cfg.DriveSyncEnabled() {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.syncService = service.NewImageSyncService(driveService, cfg.ImagesDir)
	}

	if _, err := a.Session.ReloadCatalog(ctx); err != nil {
		log.Printf("⚠️  Starting with an empty catalog: %v", err)
	}

	controllers := &router.Controllers{
		Catalog:    controller.NewCatalogController(a.Session),
		Order:      controller.NewOrderController(a.Session),
		Generation: controller.NewGenerationController(a.Session),
		Image:      controller.NewImageController(a.syncService, cfg.ImagesDriveFolderID),
	}
	a.Handler = router.SetupRoutes(controllers)

	return a, nil
}

func (a *App) sourceFactory(ctx context.Context) (session.SourceFactory, error) {
	switch a.Config.CatalogSource {
	case config.SourcePostgres:
		conn, err := db.Open(ctx, a.Config.CatalogDatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.conn = conn
		return func(paths session.Paths) repository.CatalogSourceInterface {
			return repository.NewPostgresCatalogRepository(conn, paths.ImagesDir)
		}, nil
	default:
		return session.ExcelSourceFactory(a.Config.Columns), nil
	}
}

func newDocumentSink(cfg *config.Config) service.DocumentSinkInterface {
	if cfg.OutputFormat == config.FormatPDF {
		return service.NewPDFDocumentSink(cfg.ChromePath)
	}
	return service.NewExcelDocumentSink()
}

// SyncService returns the Drive image sync service, nil when not configured
func (a *App) SyncService() service.ImageSyncServiceInterface {
	return a.syncService
}

// Close releases the catalog database connection
func (a *App) Close() {
	if err := db.Close(a.conn); err != nil {
		log.Printf("⚠️  Failed to close database: %v", err)
	}
}
