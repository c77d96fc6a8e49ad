package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"distrifoods/app/controller"
	"distrifoods/app/router"
	"distrifoods/db"
	"distrifoods/repository"
	"distrifoods/service"
)

// settingsCacheTTL is how long system settings (AI toggle, API key) stay
// cached before being re-read from the database
const settingsCacheTTL = 5 * time.Minute

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Ensure the image cache directory exists
	if err := service.EnsureCacheDir(); err != nil {
		return fmt.Errorf("failed to create image cache directory: %w", err)
	}

	// Key-value store: Redis when configured, in-memory otherwise
	var kv service.KVStore
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisStore := service.NewRedisKVStore(redisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisStore.Ping(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
		}
		log.Printf("✓ Connected to Redis at %s", redisAddr)
		kv = redisStore
	} else {
		log.Printf("⚠️ REDIS_ADDR not set, using in-memory cache")
		kv = service.NewMemoryKVStore()
	}

	dataCache := service.NewDataCache(kv, service.DefaultCacheTTL)
	settingsCache := service.NewDataCache(kv, settingsCacheTTL)

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	categoryRepo := repository.NewCategoryRepository()
	brandRepo := repository.NewBrandRepository()
	bannerRepo := repository.NewBannerRepository()
	contactRepo := repository.NewContactMessageRepository()
	catalogRepo := repository.NewPDFCatalogRepository()
	settingsRepo := repository.NewSettingsRepository()

	store := service.NewCachedStore(dataCache, productRepo, categoryRepo, brandRepo)

	// Drive service is optional; without it Drive-hosted images fall back to
	// plain HTTP fetches
	var driveService service.DriveServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return fmt.Errorf("failed to initialize drive service: %w", err)
		}
		driveService = ds
	} else {
		log.Printf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, Drive image downloads disabled")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}

	fetcher := service.NewImageFetcher(baseURL, driveService)

	// Preloader downloads each image once and writes the optimized thumbnail
	// to the disk cache so later requests are served without a fetch
	preloader := service.NewImagePreloader(func(url string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, _, err := fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		optimized, err := service.OptimizeImage(data, "thumb")
		if err != nil {
			return err
		}
		return service.SaveToCache(service.GetCachePathForURL(url, "thumb"), optimized)
	})

	catalogService := service.NewCatalogService(catalogRepo, store, fetcher, baseURL)
	assistantService := service.NewAssistantService(store, settingsRepo, settingsCache, "")

	// Create controllers
	controllers := &router.Controllers{
		Product:   controller.NewProductController(store, productRepo, fetcher, preloader),
		Category:  controller.NewCategoryController(store),
		Brand:     controller.NewBrandController(store),
		Banner:    controller.NewBannerController(bannerRepo),
		Contact:   controller.NewContactController(contactRepo),
		Catalog:   controller.NewCatalogController(catalogRepo, catalogService),
		Assistant: controller.NewAssistantController(assistantService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
