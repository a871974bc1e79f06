// Package page holds the per-user view state of the sales page: the three
// reference lists loaded from the API, the add-sale modal and the invoice.
package page

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go-retail-sales/internal/loader"
	"go-retail-sales/internal/metrics"
	"go-retail-sales/internal/model"
)

var ErrPageClosed = errors.New("sales page closed")

// Fetcher reads the page's three lists for a session
type Fetcher interface {
	FetchSales(ctx context.Context, s loader.Session) ([]model.SaleRecord, error)
	FetchProducts(ctx context.Context, s loader.Session) ([]model.Product, error)
	FetchStores(ctx context.Context, s loader.Session) ([]model.Store, error)
}

// Writer submits new sales on behalf of a session
type Writer interface {
	AddSale(ctx context.Context, s loader.Session, in model.SaleInput) error
}

// Source is what a page loads from and writes through. *loader.Client implements it.
type Source interface {
	Fetcher
	Writer
}

// SalesPage is the view state for one user. Each list is replaced wholesale
// on a successful fetch and never mutated in place, so a View may share them.
type SalesPage struct {
	source Source
	render InvoiceRenderer

	// lifetime of the page; cancelled by Close
	ctx    context.Context
	cancel context.CancelFunc
	mount  sync.Once

	mu          sync.RWMutex
	session     loader.Session
	sales       []model.SaleRecord
	products    []model.Product
	stores      []model.Store
	modal       SaleModal
	invoice     InvoiceState
	invoiceGen  uint64
	invoiceDone chan struct{}
	closed      bool
}

// New creates an unmounted page. A nil render uses RenderInvoice.
func New(source Source, session loader.Session, render InvoiceRenderer) *SalesPage {
	if render == nil {
		render = RenderInvoice
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SalesPage{
		source:   source,
		render:   render,
		ctx:      ctx,
		cancel:   cancel,
		session:  session,
		sales:    []model.SaleRecord{},
		products: []model.Product{},
		stores:   []model.Store{},
	}
}

// Mount performs the first load. Later calls return immediately, after the
// first one has finished.
func (p *SalesPage) Mount(ctx context.Context) error {
	var err error
	p.mount.Do(func() {
		err = p.Refresh(ctx)
	})
	return err
}

// Refresh reloads sales, products and stores concurrently. A failed fetch is
// logged and keeps the previous value of its slot. Refresh fails only when the
// page has been closed or the API rejects the session's token; a rejected
// token closes the page so its cached lists are never served again.
func (p *SalesPage) Refresh(ctx context.Context) error {
	if p.isClosed() {
		return ErrPageClosed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()

	session := p.Session()

	var (
		wg         sync.WaitGroup
		rejectOnce sync.Once
		rejected   error
	)
	failed := func(resource string, err error) {
		if errors.Is(err, loader.ErrUnauthorized) {
			rejectOnce.Do(func() { rejected = err })
			return
		}
		p.fetchFailed(resource, err)
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		sales, err := p.source.FetchSales(ctx, session)
		if err != nil {
			failed("sales", err)
			return
		}
		p.setSales(sales)
	}()
	go func() {
		defer wg.Done()
		products, err := p.source.FetchProducts(ctx, session)
		if err != nil {
			failed("products", err)
			return
		}
		p.mu.Lock()
		if !p.closed {
			p.products = products
		}
		p.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		stores, err := p.source.FetchStores(ctx, session)
		if err != nil {
			failed("stores", err)
			return
		}
		p.mu.Lock()
		if !p.closed {
			p.stores = stores
		}
		p.mu.Unlock()
	}()
	wg.Wait()

	if rejected != nil {
		p.reject(rejected)
		return rejected
	}
	if p.isClosed() {
		return ErrPageClosed
	}
	return nil
}

// reject closes the page and drops its lists after the API refused the session
func (p *SalesPage) reject(err error) {
	slog.Warn("sales page session rejected, dropping cached data",
		"user_id", p.Session().UserID,
		"error", err,
	)
	p.Close()
	p.mu.Lock()
	p.sales = []model.SaleRecord{}
	p.products = []model.Product{}
	p.stores = []model.Store{}
	p.mu.Unlock()
}

func (p *SalesPage) setSales(sales []model.SaleRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sales = sales
	// an invoice built from the old list must not be offered any more
	p.resetInvoiceLocked()
}

func (p *SalesPage) fetchFailed(resource string, err error) {
	if p.isClosed() {
		return
	}
	metrics.FetchFailures.WithLabelValues(resource).Inc()
	slog.Warn("sales page fetch failed, keeping previous data",
		"resource", resource,
		"user_id", p.Session().UserID,
		"error", err,
	)
}

// AddSale submits a sale through the writer and reloads the page
func (p *SalesPage) AddSale(ctx context.Context, in model.SaleInput) error {
	if p.isClosed() {
		return ErrPageClosed
	}
	if err := p.source.AddSale(ctx, p.Session(), in); err != nil {
		if errors.Is(err, loader.ErrUnauthorized) {
			p.reject(err)
		}
		return err
	}
	return p.Refresh(ctx)
}

// View is a consistent copy of the page state for one render pass
type View struct {
	Sales    []model.SaleRecord `json:"sales"`
	Products []model.Product    `json:"products"`
	Stores   []model.Store      `json:"stores"`
	Modal    SaleModal          `json:"modal"`
	Invoice  InvoiceStatus      `json:"invoice_status"`
}

func (p *SalesPage) Snapshot() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return View{
		Sales:    p.sales,
		Products: p.products,
		Stores:   p.stores,
		Modal:    p.modal,
		Invoice:  p.invoice.Status,
	}
}

func (p *SalesPage) Session() loader.Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session
}

// SetToken replaces the bearer token used for later fetches
func (p *SalesPage) SetToken(token string) {
	p.mu.Lock()
	p.session.Token = token
	p.mu.Unlock()
}

// Close cancels in-flight fetches and renders. Results that arrive later are discarded.
func (p *SalesPage) Close() {
	p.mu.Lock()
	p.closed = true
	p.resetInvoiceLocked()
	p.mu.Unlock()
	p.cancel()
}

// Closed reports whether the page was closed, either explicitly or because
// the API rejected its session
func (p *SalesPage) Closed() bool {
	return p.isClosed()
}

func (p *SalesPage) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
