package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"menu-price-map/app/controller"
	"menu-price-map/app/router"
	"menu-price-map/db"
	"menu-price-map/repository"
	"menu-price-map/service"
)

// envOr returns the environment variable or a default
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration parses a duration variable such as "10m", falling back to def
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

// Initialize wires repositories, services and controllers and returns the routes
func Initialize() (*http.ServeMux, error) {
	ctx := context.Background()

	// Feed sources: local files and HTTP(S) by default
	dataDir := envOr("DATA_DIR", ".")
	sources := repository.NewSourceRouter(dataDir)

	var driveService service.DriveServiceInterface
	var feedSync service.FeedSyncServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		ds, err := service.NewDriveService(ctx, credentialsPath)
		if err != nil {
			return nil, err
		}
		sources.Register("drive", ds)
		driveService = ds
		feedSync = service.NewFeedSyncService(ds, dataDir)
		log.Printf("✓ Google Drive feeds enabled")
	}

	if os.Getenv("S3_ENDPOINT") != "" || os.Getenv("S3_ACCESS_KEY") != "" {
		s3Source, err := repository.NewS3Source(ctx)
		if err != nil {
			return nil, err
		}
		sources.Register("s3", s3Source)
		log.Printf("✓ S3 feeds enabled")
	}

	feedTTL := envDuration("FEED_CACHE_TTL", 10*time.Minute)
	var source repository.FeedSource = sources
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := repository.NewRedisFeedCache(ctx, redisURL)
		if err != nil {
			return nil, err
		}
		source = repository.NewCachedSource(sources, cache, feedTTL)
		log.Printf("✓ Redis feed cache enabled (ttl=%s)", feedTTL)
	}

	// Repositories
	brandRepo := repository.NewYAMLBrandRepository(envOr("BRANDS_CONFIG", "config/brands.yaml"))
	feedPrices := repository.NewFeedPriceTableRepository(source)

	var prices repository.PriceTableRepositoryInterface = feedPrices
	var imports *service.ImportService
	if db.Configured() {
		if err := db.InitDB(); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		pgPrices := repository.NewPostgresPriceTableRepository(db.DB)
		imports = service.NewImportService(brandRepo, feedPrices, pgPrices)
		if os.Getenv("MENU_BACKEND") == "postgres" {
			prices = pgPrices
			log.Printf("✓ Menu prices served from PostgreSQL")
		}
	}

	// Services
	datasetTTL := envDuration("DATASET_TTL", feedTTL)
	datasets := service.NewDatasetService(brandRepo, prices, source, datasetTTL)
	sessions := service.NewSessionService(datasets, envDuration("SESSION_TTL", service.DefaultSessionTTL))

	images, err := service.NewImageCache(envOr("IMAGE_CACHE_DIR", "cache/images"))
	if err != nil {
		return nil, err
	}
	menu := service.NewMenuService(datasets, images)
	legends := service.NewLegendService(images)
	maps := service.NewMapService(sessions, source, service.LayerFeeds{
		Colleges:         os.Getenv("COLLEGES_FEED"),
		StatePoverty:     os.Getenv("CIVICS_FEED"),
		CountyPoverty:    os.Getenv("COUNTY_POVERTY_FEED"),
		StateBoundaries:  os.Getenv("STATE_BOUNDARIES_FEED"),
		CountyBoundaries: os.Getenv("COUNTY_BOUNDARIES_FEED"),
	}, datasetTTL)

	port := envOr("PORT", "8080")
	pages := service.NewPageService(sessions, datasets, envOr("TEMPLATE_DIR", "templates"), envOr("BASE_URL", "http://localhost:"+port))

	// Create controllers
	controllers := &router.Controllers{
		Session: controller.NewSessionController(sessions),
		Map:     controller.NewMapController(sessions, maps, pages),
		Menu:    controller.NewMenuController(menu, datasets, sessions),
		Layer:   controller.NewLayerController(maps, legends),
		Admin:   controller.NewAdminController(datasets, driveService, feedSync, imports),
	}

	// Setup routes using standard http router
	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	return mux, nil
}
