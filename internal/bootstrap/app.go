package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"skincare-backend/internal/catalog"
	"skincare-backend/internal/imageprep"
	"skincare-backend/internal/services/health"
	"skincare-backend/internal/shared/config"
	"skincare-backend/internal/shared/server"
	"skincare-backend/internal/shared/server/middleware"
	"skincare-backend/internal/shared/storage/db"
	"skincare-backend/internal/shared/storage/object"
	localstore "skincare-backend/internal/shared/storage/object/local"
	s3store "skincare-backend/internal/shared/storage/object/s3"
	"skincare-backend/internal/skinanalysis"
	"skincare-backend/internal/vision"
	"skincare-backend/internal/vision/facepp"
)

// App holds shared dependencies and the router built from them.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	Store               object.ImageStore
	MediaDir            string
	SkinTypes           catalog.SkinTypeRepo
	Products            catalog.ProductRepo
	Vision              vision.Client
	SkinAnalysisService *skinanalysis.Service
	SkinAnalysisHandler *skinanalysis.Handler
	HealthService       *health.Service
}

// Build prepares dependencies and wires the router.
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

	app := &App{Config: cfg, DB: sqlDB}

	if err := buildStore(ctx, app); err != nil {
		return nil, err
	}
	visionClient, err := buildVision(cfg)
	if err != nil {
		return nil, err
	}
	app.Vision = visionClient

	buildCatalog(app)
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Health:       app.HealthService,
		SkinAnalysis: app.SkinAnalysisHandler,
		MediaDir:     app.MediaDir,
		RateLimiter:  middleware.NewRateLimiter(nil),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory catalog")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if isDevLike(cfg.Env) {
		if err := migrateDev(ctx, cfg); err != nil {
			if errors.Is(err, errDevDBUnavailable) {
				log.Printf("bootstrap: database unavailable; using in-memory catalog: %v", err)
				return nil, nil
			}
			return nil, err
		}
	}
	return db.Connect(ctx, cfg.DatabaseURL, db.CatalogOptions().WithConfig(cfg))
}

var errDevDBUnavailable = errors.New("dev database unavailable")

// migrateDev applies migrations on a short-lived writable connection; the
// catalog pool itself is read-only.
func migrateDev(ctx context.Context, cfg config.Config) error {
	migrateDB, err := db.Connect(ctx, cfg.DatabaseURL, db.MigrateOptions().WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("%w: %v", errDevDBUnavailable, err)
	}
	defer migrateDB.Close()
	if err := db.RunMigrations(ctx, migrateDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func buildStore(ctx context.Context, app *App) error {
	cfg := app.Config
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, s3store.Options{
			Region:    cfg.AWSRegion,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			KMSKeyID:  cfg.SSEKMSKeyID,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return err
		}
		app.Store = store
	default:
		store := localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL)
		app.Store = store
		app.MediaDir = store.BaseDir()
	}
	return nil
}

func buildVision(cfg config.Config) (vision.Client, error) {
	if cfg.VisionProvider != "facepp" {
		log.Printf("bootstrap: vision provider disabled; analyses will fail with a configuration error")
		return vision.PlaceholderClient{}, nil
	}
	if strings.TrimSpace(cfg.VisionAPIKey) == "" && isDevLike(cfg.Env) {
		log.Printf("bootstrap: VISION_API_KEY empty; using placeholder vision client")
		return vision.PlaceholderClient{}, nil
	}
	client, err := facepp.NewClient(cfg.VisionEndpoint, cfg.VisionAPIKey, cfg.VisionAPISecret, cfg.VisionTimeout)
	if err != nil {
		return nil, err
	}
	return vision.NewRetrying(client, cfg.VisionMaxRetries, vision.DefaultRetryBaseDelay), nil
}

func buildCatalog(app *App) {
	if app.DB != nil {
		app.SkinTypes = &catalog.PGSkinTypeRepo{DB: app.DB}
		app.Products = &catalog.PGProductRepo{DB: app.DB}
		return
	}
	repo := catalog.NewMemoryRepo()
	if isDevLike(app.Config.Env) {
		catalog.SeedDemo(repo)
	}
	app.SkinTypes = repo
	app.Products = repo
}

func buildServices(app *App) {
	cfg := app.Config
	labels := skinanalysis.Labels{
		Oily:        cfg.SkinTypeLabelOily,
		Dry:         cfg.SkinTypeLabelDry,
		Combination: cfg.SkinTypeLabelCombination,
	}

	app.SkinAnalysisService = &skinanalysis.Service{
		Store:  app.Store,
		Vision: app.Vision,
		Preparer: imageprep.Preparer{
			MaxBytes:     cfg.MaxImageBytes,
			MaxDimension: cfg.MaxImageDimension,
		},
		Classifier:    skinanalysis.Classifier{SkinTypes: app.SkinTypes, Labels: labels},
		Matcher:       skinanalysis.Matcher{Products: app.Products},
		Advisor:       skinanalysis.Advisor{Labels: labels},
		UploadTimeout: cfg.UploadTimeout,
		VisionTimeout: cfg.VisionTimeout,
	}
	// Multipart framing adds overhead on top of the image itself.
	app.SkinAnalysisHandler = skinanalysis.NewHandler(app.SkinAnalysisService, cfg.MaxImageBytes+(1<<20))
	app.HealthService = health.NewService(app.SkinTypes)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
