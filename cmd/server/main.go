package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glacier_storefront/internal/config"
	"glacier_storefront/internal/gateway"
	"glacier_storefront/internal/handler"
	"glacier_storefront/internal/middleware"
	"glacier_storefront/internal/repository"
	"glacier_storefront/internal/service"
	"glacier_storefront/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Persistence: Postgres or the fully simulated in-memory store ---
	var (
		userRepo    repository.UserRepository
		productRepo repository.ProductRepository
		orderRepo   repository.OrderRepository
		pinger      handler.Pinger
	)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		dbCfg, err := config.LoadDBConfig()
		if err != nil {
			log.Fatalf("Failed to load DB config: %v", err)
		}
		dbPool, err := config.ConnectDB(dbCfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()

		if err := config.Migrate(context.Background(), dbPool); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		userRepo = repository.NewUserRepository(dbPool)
		productRepo = repository.NewProductRepository(dbPool)
		orderRepo = repository.NewOrderRepository(dbPool)
		pinger = dbPool
	case config.StoreDriverMemory:
		log.Println("STORE_DRIVER=memory: running with simulated persistence")
		userRepo = repository.NewMemoryUserRepository()
		productRepo = repository.NewMemoryProductRepository()
		orderRepo = repository.NewMemoryOrderRepository()
	}

	// --- Catalog and identity seeding from configuration ---
	seedProducts, err := config.LoadSeedProducts(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed catalog: %v", err)
	}
	if err := config.SeedProducts(context.Background(), productRepo, seedProducts); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Printf("Seeded %d catalog products from %s", len(seedProducts), cfg.SeedFile)

	seedUsers, err := config.LoadSeedUsers(cfg.SeedUsersFile)
	if err != nil {
		log.Fatalf("Failed to load seed users: %v", err)
	}
	if err := config.SeedUsers(context.Background(), userRepo, seedUsers); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Seeded %d accounts from %s", len(seedUsers), cfg.SeedUsersFile)

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpHours)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	recommendService := service.NewRecommendService(cfg.AIEndpoint, cfg.AIKey, cfg.AITimeout, productRepo)

	// --- Build and validate the dispatch table ---
	router, err := gateway.NewStorefrontRouter(authService, productService, orderService, recommendService)
	if err != nil {
		log.Fatalf("Failed to build gateway routing table: %v", err)
	}

	// --- Initialize Handlers ---
	gatewayHandler := handler.NewGatewayHandler(router)
	healthHandler := handler.NewHealthHandler(pinger)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	engine := gin.Default()

	// Simple CORS middleware (allow all for development)
	engine.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Register Routes ---
	apiGroup := engine.Group("/api/v1")
	gatewayHandler.RegisterRoutes(apiGroup, middleware.JWTAuthMiddleware(jwtUtil), middleware.AdminMiddleware())
	engine.GET("/health", healthHandler.Check)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: engine,
	}

	go func() {
		log.Printf("Gateway server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
