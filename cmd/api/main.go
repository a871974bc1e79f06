package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go-retail-sales/internal/cache"
	"go-retail-sales/internal/config"
	"go-retail-sales/internal/handler"
	"go-retail-sales/internal/metrics"
	"go-retail-sales/internal/middleware"
	"go-retail-sales/internal/model"
	"go-retail-sales/internal/repository"
	"go-retail-sales/internal/service"
	"go-retail-sales/internal/ws"
	"go-retail-sales/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepo(db)
	seedAdmin(userRepo)

	// 3. Optional Redis cache for products and stores
	rdb := cache.Connect(context.Background(), cfg.RedisAddr)
	if rdb != nil {
		defer rdb.Close()
	}
	catalogCache := cache.NewCatalogCache(rdb, cfg.CatalogTTL)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	saleService := service.NewSaleService(saleRepo, productRepo, catalogCache, db, wsHub)
	summaryService := service.NewSummaryService(saleRepo, saleService)
	catalogService := service.NewCatalogService(productRepo, storeRepo, catalogCache, wsHub)
	authService := service.NewAuthService(userRepo, cfg.TokenTTL)

	saleHandler := handler.NewSaleHandler(saleService, summaryService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail Sales API v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	app.Get("/metrics", metrics.Handler())

	app.Post("/api/v1/auth/login", authHandler.Login)

	api := app.Group("/api", middleware.RequireAuth(userRepo))
	owner := middleware.RequireOwner("user_id")

	api.Get("/sales/get/:user_id", owner, saleHandler.GetSales)
	api.Get("/sales/summary/:user_id", owner, saleHandler.GetSummary)
	api.Post("/sales/add", saleHandler.AddSale)
	api.Get("/sales/:id", saleHandler.GetSale)

	api.Get("/product/get/:user_id", owner, catalogHandler.GetProducts)
	api.Post("/product/add", catalogHandler.CreateProduct)
	api.Get("/product/:id", catalogHandler.GetProduct)

	api.Get("/store/get/:user_id", owner, catalogHandler.GetStores)
	api.Post("/store/add", catalogHandler.CreateStore)
	api.Get("/store/:id", catalogHandler.GetStore)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		slog.Info("api listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server exited")
}

// seedAdmin creates the default login on an empty database
func seedAdmin(userRepo repository.UserRepository) {
	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Store Administrator",
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		slog.Warn("failed to hash admin password", "error", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		slog.Warn("failed to create admin user", "error", err)
		return
	}
	slog.Info("admin user created", "email", admin.Email)
}
