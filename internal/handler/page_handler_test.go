package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go-retail-sales/internal/loader"
	"go-retail-sales/internal/middleware"
	"go-retail-sales/internal/model"
	"go-retail-sales/internal/page"
	"go-retail-sales/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubSource struct {
	mu      sync.Mutex
	sales   []model.SaleRecord
	users   []string
	revoked bool
}

func (s *stubSource) FetchSales(ctx context.Context, sess loader.Session) ([]model.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revoked {
		return nil, fmt.Errorf("sales api: %w: Token has been revoked", loader.ErrUnauthorized)
	}
	s.users = append(s.users, sess.UserID)
	return s.sales, nil
}

func (s *stubSource) FetchProducts(ctx context.Context, sess loader.Session) ([]model.Product, error) {
	return []model.Product{{Name: "Pen"}, {Name: "Book"}}, nil
}

func (s *stubSource) FetchStores(ctx context.Context, sess loader.Session) ([]model.Store, error) {
	return nil, errors.New("stores unavailable")
}

func (s *stubSource) AddSale(ctx context.Context, sess loader.Session, in model.SaleInput) error {
	if in.SaleDate == "" {
		return errors.New("sale_date is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, model.SaleRecord{
		ID:              uuid.New(),
		StockSold:       in.StockSold,
		SaleDate:        in.SaleDate,
		TotalSaleAmount: in.TotalSaleAmount,
	})
	return nil
}

type pageFixture struct {
	app    *fiber.App
	src    *stubSource
	userID uuid.UUID
	token  string
}

func newPageApp(t *testing.T, render page.InvoiceRenderer) *pageFixture {
	t.Helper()
	src := &stubSource{sales: []model.SaleRecord{
		{ID: uuid.New(), Product: &model.RefRecord{Name: "Pen"}, Store: &model.RefRecord{Name: "Main St"}, StockSold: 2, SaleDate: "2024-01-05", TotalSaleAmount: decimal.NewFromInt(50)},
		{ID: uuid.New(), Product: &model.RefRecord{Name: "Book"}, Store: &model.RefRecord{Name: "Main St"}, StockSold: 1, SaleDate: "2024-01-06", TotalSaleAmount: decimal.NewFromInt(200)},
	}}
	pages := page.NewRegistry(src, render)
	t.Cleanup(pages.Close)
	h := NewPageHandler(pages, "₹")

	app := fiber.New()
	sales := app.Group("/sales", middleware.RequireSession())
	sales.Get("/", h.Show)
	sales.Post("/", h.AddSale)
	sales.Get("/data", h.Data)
	sales.Post("/refresh", h.Refresh)
	sales.Post("/modal/toggle", h.ToggleModal)
	sales.Post("/invoice", h.PrepareInvoice)
	sales.Get("/invoice", h.InvoiceStatus)
	sales.Get("/invoice.pdf", h.DownloadInvoice)
	sales.Get("/export.xlsx", h.Export)

	userID := uuid.New()
	token, err := jwt.GenerateToken(userID, "asha@example.com", "Asha", "v1", time.Hour)
	require.NoError(t, err)
	return &pageFixture{app: app, src: src, userID: userID, token: token}
}

func (f *pageFixture) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestShowRendersTableWithTotal(t *testing.T) {
	f := newPageApp(t, nil)

	resp, body := f.do(t, http.MethodGet, "/sales", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	html := string(body)
	for _, caption := range []string{"Product Name", "Store Name", "Stock Sold", "Sales Date", "Total Sale Amount"} {
		assert.Contains(t, html, "<th>"+caption+"</th>")
	}
	assert.Contains(t, html, "<td>₹50</td>")
	assert.Contains(t, html, "<td>₹200</td>")
	assert.Contains(t, html, "<td>₹250</td>")
	assert.Contains(t, html, "Prepare Invoice")
	assert.Less(t, strings.Index(html, "Pen"), strings.Index(html, "Book"))
}

func TestPageRequiresSession(t *testing.T) {
	f := newPageApp(t, nil)
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/sales/data", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestDataKeepsStoresEmptyOnFetchError(t *testing.T) {
	f := newPageApp(t, nil)

	resp, body := f.do(t, http.MethodGet, "/sales/data", nil)
	require.Equal(t, 200, resp.StatusCode)

	var out struct {
		View struct {
			Sales         []model.SaleRecord `json:"sales"`
			Products      []model.Product    `json:"products"`
			Stores        []model.Store      `json:"stores"`
			InvoiceStatus string             `json:"invoice_status"`
		} `json:"view"`
		Table struct {
			Total decimal.Decimal `json:"total"`
		} `json:"table"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out.View.Sales, 2)
	assert.Len(t, out.View.Products, 2)
	assert.Empty(t, out.View.Stores)
	assert.Equal(t, "idle", out.View.InvoiceStatus)
	assert.Equal(t, "250", out.Table.Total.String())
}

func TestToggleModalTwice(t *testing.T) {
	f := newPageApp(t, nil)

	var out struct {
		Modal page.SaleModal `json:"modal"`
		Props struct {
			Products []model.Product `json:"products"`
		} `json:"props"`
	}

	_, body := f.do(t, http.MethodPost, "/sales/modal/toggle", nil)
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Modal.Visible)
	assert.Len(t, out.Props.Products, 2)

	_, body = f.do(t, http.MethodPost, "/sales/modal/toggle", nil)
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Modal.Visible)
	assert.True(t, out.Modal.CameraActive)
}

func TestAddSaleThroughPage(t *testing.T) {
	f := newPageApp(t, nil)

	resp, body := f.do(t, http.MethodPost, "/sales", map[string]interface{}{
		"product_id":        uuid.New(),
		"store_id":          uuid.New(),
		"stock_sold":        1,
		"sale_date":         "2024-02-01",
		"total_sale_amount": "25",
	})
	require.Equal(t, 201, resp.StatusCode)
	var view struct {
		Sales []model.SaleRecord `json:"sales"`
	}
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Len(t, view.Sales, 3)

	resp, body = f.do(t, http.MethodPost, "/sales", map[string]interface{}{"stock_sold": 1})
	assert.Equal(t, 502, resp.StatusCode)
	assert.Contains(t, string(body), "sale_date is required")
}

func TestDownloadInvoice(t *testing.T) {
	f := newPageApp(t, nil)

	resp, body := f.do(t, http.MethodGet, "/sales/invoice.pdf", nil)
	require.Equal(t, 200, resp.StatusCode, string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="invoice.pdf"`)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	resp, body = f.do(t, http.MethodGet, "/sales/invoice", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "Download Invoice")

	// a refresh drops the ready document
	resp, _ = f.do(t, http.MethodPost, "/sales/refresh", nil)
	require.Equal(t, 200, resp.StatusCode)
	_, body = f.do(t, http.MethodGet, "/sales/invoice", nil)
	assert.Contains(t, string(body), "Prepare Invoice")
}

func TestDownloadInvoiceFailure(t *testing.T) {
	f := newPageApp(t, func(ctx context.Context, sales []model.SaleRecord) ([]byte, error) {
		return nil, errors.New("out of paper")
	})

	resp, body := f.do(t, http.MethodGet, "/sales/invoice.pdf", nil)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Contains(t, string(body), "out of paper")

	_, body = f.do(t, http.MethodGet, "/sales/invoice", nil)
	assert.Contains(t, string(body), "Invoice unavailable")
}

func TestPrepareInvoiceAccepted(t *testing.T) {
	release := make(chan struct{})
	f := newPageApp(t, func(ctx context.Context, sales []model.SaleRecord) ([]byte, error) {
		<-release
		return []byte("%PDF-"), nil
	})
	defer close(release)

	resp, body := f.do(t, http.MethodPost, "/sales/invoice", nil)
	assert.Equal(t, 202, resp.StatusCode)
	assert.Contains(t, string(body), "Loading document...")
	assert.Contains(t, string(body), `"status":"loading"`)
}

func TestExportWorkbook(t *testing.T) {
	f := newPageApp(t, nil)

	resp, body := f.do(t, http.MethodGet, "/sales/export.xlsx", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sales.xlsx")

	wb, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Product Name", rows[0][0])
	assert.Equal(t, "Pen", rows[1][0])
}

func TestRevokedSessionNotServedCachedPage(t *testing.T) {
	f := newPageApp(t, nil)
	resp, _ := f.do(t, http.MethodGet, "/sales/data", nil)
	require.Equal(t, 200, resp.StatusCode)

	f.src.mu.Lock()
	f.src.revoked = true
	f.src.mu.Unlock()

	resp, body := f.do(t, http.MethodPost, "/sales/refresh", nil)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Contains(t, string(body), "Session expired")

	// the cached page is gone, so a plain read must reload and is rejected too
	resp, _ = f.do(t, http.MethodGet, "/sales/data", nil)
	assert.Equal(t, 401, resp.StatusCode)

	f.src.mu.Lock()
	f.src.revoked = false
	f.src.mu.Unlock()

	token, err := jwt.GenerateToken(f.userID, "asha@example.com", "Asha", "v2", time.Hour)
	require.NoError(t, err)
	f.token = token
	resp, body = f.do(t, http.MethodGet, "/sales/data", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "Book")
}
