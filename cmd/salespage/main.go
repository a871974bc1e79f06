package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go-retail-sales/internal/config"
	"go-retail-sales/internal/handler"
	"go-retail-sales/internal/loader"
	"go-retail-sales/internal/metrics"
	"go-retail-sales/internal/middleware"
	"go-retail-sales/internal/page"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	client := loader.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	pages := page.NewRegistry(client, page.RenderInvoice)
	pageHandler := handler.NewPageHandler(pages, cfg.CurrencySymbol)

	app := fiber.New(fiber.Config{
		AppName: "Retail Sales Page v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/metrics", metrics.Handler())

	sales := app.Group("/sales", middleware.RequireSession())
	sales.Get("/", pageHandler.Show)
	sales.Post("/", pageHandler.AddSale)
	sales.Get("/data", pageHandler.Data)
	sales.Post("/refresh", pageHandler.Refresh)
	sales.Post("/modal/toggle", pageHandler.ToggleModal)
	sales.Post("/invoice", pageHandler.PrepareInvoice)
	sales.Get("/invoice", pageHandler.InvoiceStatus)
	sales.Get("/invoice.pdf", pageHandler.DownloadInvoice)
	sales.Get("/export.xlsx", pageHandler.Export)

	go func() {
		slog.Info("sales page listening", "port", cfg.PagePort, "api", cfg.APIBaseURL)
		if err := app.Listen(":" + cfg.PagePort); err != nil {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down sales page")
	pages.Close()
	if err := app.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("sales page exited")
}
