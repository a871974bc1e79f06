package handler

import (
	"bytes"
	"errors"
	"html/template"

	"go-retail-sales/internal/loader"
	"go-retail-sales/internal/model"
	"go-retail-sales/internal/page"
	"go-retail-sales/internal/report"

	"github.com/gofiber/fiber/v2"
)

var salesTemplate = template.Must(template.New("sales").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Sales</title></head>
<body>
<h1>Sales</h1>
<form method="post" action="/sales/modal/toggle"><button type="submit">Add Sale</button></form>
{{if .Modal.Visible}}<p>Add-sale form open ({{len .Products}} products, {{len .Stores}} stores)</p>{{end}}
<form method="post" action="/sales/invoice"><button type="submit">{{.InvoiceLabel}}</button></form>
<table>
<thead><tr>{{range .Table.Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}<tr><td colspan="4">{{.TotalLabel}}</td><td>{{.Currency}}{{.Table.Total}}</td></tr>
</tbody>
</table>
</body>
</html>
`))

type salesPageData struct {
	page.View
	Table        report.Table
	Rows         [][]string
	Currency     string
	TotalLabel   string
	InvoiceLabel string
}

// PageHandler serves the sales page of the authenticated session user
type PageHandler struct {
	pages    *page.Registry
	currency string
}

func NewPageHandler(pages *page.Registry, currency string) *PageHandler {
	return &PageHandler{pages: pages, currency: currency}
}

func (h *PageHandler) current(c *fiber.Ctx) (*page.SalesPage, error) {
	session := loader.Session{
		UserID: localString(c, "user_id"),
		Token:  localString(c, "token"),
	}
	return h.pages.Get(c.UserContext(), session)
}

func pageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, loader.ErrUnauthorized) {
		return c.Status(401).JSON(fiber.Map{"error": "Session expired, please log in again"})
	}
	if errors.Is(err, page.ErrPageClosed) {
		return c.Status(503).JSON(fiber.Map{"error": "Server is shutting down"})
	}
	return c.Status(502).JSON(fiber.Map{"error": err.Error()})
}

func invoiceBody(state page.InvoiceState) fiber.Map {
	body := fiber.Map{"status": state.Status, "label": state.Label()}
	if state.Err != nil {
		body["error"] = state.Err.Error()
	}
	return body
}

// Show renders the sales table as HTML
// GET /sales
func (h *PageHandler) Show(c *fiber.Ctx) error {
	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}

	view := p.Snapshot()
	table := report.BuildTable(view.Sales)
	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, row.Cells(h.currency))
	}

	var buf bytes.Buffer
	err = salesTemplate.Execute(&buf, salesPageData{
		View:         view,
		Table:        table,
		Rows:         rows,
		Currency:     h.currency,
		TotalLabel:   report.TotalLabel,
		InvoiceLabel: view.Invoice.Label(),
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render page"})
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// Data returns the page state as JSON
// GET /sales/data
func (h *PageHandler) Data(c *fiber.Ctx) error {
	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}
	view := p.Snapshot()
	return c.JSON(fiber.Map{
		"view":  view,
		"table": report.BuildTable(view.Sales),
	})
}

// Refresh reloads the page from the API
// POST /sales/refresh
func (h *PageHandler) Refresh(c *fiber.Ctx) error {
	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}
	if err := p.Refresh(c.UserContext()); err != nil {
		return pageError(c, err)
	}
	return c.JSON(p.Snapshot())
}

// ToggleModal opens or closes the add-sale modal
// POST /sales/modal/toggle
func (h *PageHandler) ToggleModal(c *fiber.Ctx) error {
	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}
	modal := p.ToggleModal()
	return c.JSON(fiber.Map{
		"modal": modal,
		"props": p.ModalProps(),
	})
}

// AddSale submits a sale through the API and reloads the page
// POST /sales
func (h *PageHandler) AddSale(c *fiber.Ctx) error {
	var req model.SaleInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}
	if err := p.AddSale(c.UserContext(), req); err != nil {
		return pageError(c, err)
	}
	return c.Status(201).JSON(p.Snapshot())
}

// PrepareInvoice starts building the invoice in the background
// POST /sales/invoice
func (h *PageHandler) PrepareInvoice(c *fiber.Ctx) error {
	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}
	if err := p.PrepareInvoice(); err != nil {
		return pageError(c, err)
	}
	return c.Status(202).JSON(invoiceBody(p.Invoice()))
}

// InvoiceStatus reports the invoice state and its control label
// GET /sales/invoice
func (h *PageHandler) InvoiceStatus(c *fiber.Ctx) error {
	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}
	return c.JSON(invoiceBody(p.Invoice()))
}

// DownloadInvoice waits for the invoice and sends it as invoice.pdf
// GET /sales/invoice.pdf
func (h *PageHandler) DownloadInvoice(c *fiber.Ctx) error {
	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}

	ctx := c.UserContext()
	for {
		if err := p.PrepareInvoice(); err != nil {
			return pageError(c, err)
		}
		state, err := p.WaitInvoice(ctx)
		if err != nil {
			return c.Status(504).JSON(fiber.Map{"error": "Timed out preparing invoice"})
		}

		switch state.Status {
		case page.InvoiceReady:
			c.Attachment(report.FileName)
			c.Set(fiber.HeaderContentType, report.ContentType)
			return c.Send(state.Artifact)
		case page.InvoiceFailed:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to generate invoice: " + state.Err.Error()})
		}
		// reset to Idle by a refresh while rendering; prepare again for the new list
	}
}

// Export sends the sales table as a spreadsheet
// GET /sales/export.xlsx
func (h *PageHandler) Export(c *fiber.Ctx) error {
	p, err := h.current(c)
	if err != nil {
		return pageError(c, err)
	}

	var buf bytes.Buffer
	if err := report.WriteWorkbook(report.BuildTable(p.Snapshot().Sales), &buf); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to export sales"})
	}

	c.Attachment(report.WorkbookName)
	c.Set(fiber.HeaderContentType, report.WorkbookType)
	return c.Send(buf.Bytes())
}
