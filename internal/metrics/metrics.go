package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchFailures counts sales page loads that left a slot stale, by resource
	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salespage_fetch_failures_total",
		Help: "Sales page fetches that failed and kept the previous data.",
	}, []string{"resource"})

	// InvoiceRenders counts invoice materializations by outcome (ok, error)
	InvoiceRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salespage_invoice_renders_total",
		Help: "Invoice PDF renders by outcome.",
	}, []string{"outcome"})

	SalesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "retail_sales_recorded_total",
		Help: "Sales accepted by the API.",
	})

	CatalogCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retail_catalog_cache_lookups_total",
		Help: "Reference data cache lookups by result (hit, miss).",
	}, []string{"result"})
)

// Handler exposes the default registry on a Fiber route
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
