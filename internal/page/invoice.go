package page

import (
	"context"
	"log/slog"

	"go-retail-sales/internal/metrics"
	"go-retail-sales/internal/model"
	"go-retail-sales/internal/report"
)

type InvoiceStatus int

const (
	InvoiceIdle InvoiceStatus = iota
	InvoiceLoading
	InvoiceReady
	InvoiceFailed
)

func (s InvoiceStatus) String() string {
	switch s {
	case InvoiceLoading:
		return "loading"
	case InvoiceReady:
		return "ready"
	case InvoiceFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Label is the caption of the invoice download control
func (s InvoiceStatus) Label() string {
	switch s {
	case InvoiceLoading:
		return "Loading document..."
	case InvoiceReady:
		return "Download Invoice"
	case InvoiceFailed:
		return "Invoice unavailable"
	default:
		return "Prepare Invoice"
	}
}

func (s InvoiceStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// InvoiceState is Idle, Loading, Ready with Artifact set, or Failed with Err set
type InvoiceState struct {
	Status   InvoiceStatus
	Artifact []byte
	Err      error
}

func (s InvoiceState) Label() string { return s.Status.Label() }

// InvoiceRenderer turns a sale list into a downloadable document
type InvoiceRenderer func(ctx context.Context, sales []model.SaleRecord) ([]byte, error)

// RenderInvoice builds the invoice document and renders it as PDF
func RenderInvoice(ctx context.Context, sales []model.SaleRecord) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := report.BuildInvoice(sales)
	if err != nil {
		return nil, &report.RenderError{Err: err}
	}
	return report.RenderPDFBytes(doc)
}

// PrepareInvoice starts rendering the invoice for the current sale list.
// It does nothing while a render is in flight or an artifact is ready.
func (p *SalesPage) PrepareInvoice() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPageClosed
	}
	if p.invoice.Status == InvoiceLoading || p.invoice.Status == InvoiceReady {
		p.mu.Unlock()
		return nil
	}

	p.invoiceGen++
	gen := p.invoiceGen
	done := make(chan struct{})
	p.invoiceDone = done
	p.invoice = InvoiceState{Status: InvoiceLoading}
	sales := p.sales
	p.mu.Unlock()

	go p.renderInvoice(gen, sales, done)
	return nil
}

func (p *SalesPage) renderInvoice(gen uint64, sales []model.SaleRecord, done chan struct{}) {
	artifact, err := p.render(p.ctx, sales)

	p.mu.Lock()
	defer p.mu.Unlock()
	// the sale list was replaced or the page closed while rendering
	if p.invoiceGen != gen {
		return
	}

	if err != nil {
		metrics.InvoiceRenders.WithLabelValues("error").Inc()
		slog.Error("invoice render failed", "user_id", p.session.UserID, "error", err)
		p.invoice = InvoiceState{Status: InvoiceFailed, Err: err}
	} else {
		metrics.InvoiceRenders.WithLabelValues("ok").Inc()
		p.invoice = InvoiceState{Status: InvoiceReady, Artifact: artifact}
	}
	close(done)
	p.invoiceDone = nil
}

// Invoice returns the current invoice state
func (p *SalesPage) Invoice() InvoiceState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.invoice
}

// WaitInvoice blocks until the invoice is no longer Loading or ctx is done
func (p *SalesPage) WaitInvoice(ctx context.Context) (InvoiceState, error) {
	for {
		p.mu.RLock()
		state, done := p.invoice, p.invoiceDone
		p.mu.RUnlock()

		if state.Status != InvoiceLoading || done == nil {
			return state, nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

// must hold p.mu
func (p *SalesPage) resetInvoiceLocked() {
	p.invoiceGen++
	p.invoice = InvoiceState{Status: InvoiceIdle}
	if p.invoiceDone != nil {
		close(p.invoiceDone)
		p.invoiceDone = nil
	}
}
