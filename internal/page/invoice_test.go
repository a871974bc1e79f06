package page

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go-retail-sales/internal/model"
	"go-retail-sales/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedRenderer blocks each render until a value is sent on release
type gatedRenderer struct {
	release chan error
	seen    chan []model.SaleRecord
}

func newGatedRenderer() *gatedRenderer {
	return &gatedRenderer{release: make(chan error), seen: make(chan []model.SaleRecord, 4)}
}

func (g *gatedRenderer) render(ctx context.Context, sales []model.SaleRecord) ([]byte, error) {
	g.seen <- sales
	if err := <-g.release; err != nil {
		return nil, err
	}
	return []byte("doc"), nil
}

func waitInvoice(t *testing.T, p *SalesPage) InvoiceState {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	state, err := p.WaitInvoice(ctx)
	require.NoError(t, err)
	return state
}

func TestInvoiceLabels(t *testing.T) {
	assert.Equal(t, "Prepare Invoice", InvoiceIdle.Label())
	assert.Equal(t, "Loading document...", InvoiceLoading.Label())
	assert.Equal(t, "Download Invoice", InvoiceReady.Label())
	assert.Equal(t, "Invoice unavailable", InvoiceFailed.Label())
}

func TestInvoiceLoadingThenReady(t *testing.T) {
	g := newGatedRenderer()
	p := mounted(t, newFakeSource(), g.render)

	require.NoError(t, p.PrepareInvoice())
	assert.Equal(t, InvoiceLoading, p.Invoice().Status)
	assert.Equal(t, "Loading document...", p.Invoice().Label())

	// no second render while one is in flight
	require.NoError(t, p.PrepareInvoice())
	sales := <-g.seen
	assert.Len(t, sales, 2)

	g.release <- nil
	state := waitInvoice(t, p)
	assert.Equal(t, InvoiceReady, state.Status)
	assert.Equal(t, []byte("doc"), state.Artifact)
	assert.Equal(t, "Download Invoice", state.Label())

	// ready is kept until the sale list changes
	require.NoError(t, p.PrepareInvoice())
	assert.Equal(t, InvoiceReady, p.Invoice().Status)
	assert.Len(t, g.seen, 0)
}

func TestInvoiceFailureCanBeRetried(t *testing.T) {
	g := newGatedRenderer()
	p := mounted(t, newFakeSource(), g.render)

	require.NoError(t, p.PrepareInvoice())
	<-g.seen
	g.release <- errors.New("font missing")

	state := waitInvoice(t, p)
	assert.Equal(t, InvoiceFailed, state.Status)
	assert.EqualError(t, state.Err, "font missing")
	assert.Equal(t, "Invoice unavailable", state.Label())

	require.NoError(t, p.PrepareInvoice())
	assert.Equal(t, InvoiceLoading, p.Invoice().Status)
	<-g.seen
	g.release <- nil
	assert.Equal(t, InvoiceReady, waitInvoice(t, p).Status)
}

func TestRefreshInvalidatesInvoice(t *testing.T) {
	p := mounted(t, newFakeSource(), stubRenderer)

	require.NoError(t, p.PrepareInvoice())
	require.Equal(t, InvoiceReady, waitInvoice(t, p).Status)

	require.NoError(t, p.Refresh(context.Background()))
	assert.Equal(t, InvoiceIdle, p.Invoice().Status)
	assert.Equal(t, "Prepare Invoice", p.Invoice().Label())
}

func TestRefreshDuringRenderDiscardsStaleArtifact(t *testing.T) {
	g := newGatedRenderer()
	p := mounted(t, newFakeSource(), g.render)

	require.NoError(t, p.PrepareInvoice())
	<-g.seen

	require.NoError(t, p.Refresh(context.Background()))
	assert.Equal(t, InvoiceIdle, waitInvoice(t, p).Status)

	// the old render finishing must not resurrect its artifact
	g.release <- nil
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, InvoiceIdle, p.Invoice().Status)
}

func TestWaitInvoiceHonoursContext(t *testing.T) {
	g := newGatedRenderer()
	p := mounted(t, newFakeSource(), g.render)

	require.NoError(t, p.PrepareInvoice())
	<-g.seen

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	state, err := p.WaitInvoice(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, InvoiceLoading, state.Status)

	g.release <- nil
}

func TestRenderInvoiceProducesPDF(t *testing.T) {
	p := mounted(t, newFakeSource(), nil)

	require.NoError(t, p.PrepareInvoice())
	state := waitInvoice(t, p)
	require.Equal(t, InvoiceReady, state.Status, "%v", state.Err)
	assert.True(t, bytes.HasPrefix(state.Artifact, []byte("%PDF-")))
}

func TestRenderInvoiceRejectsInvalidRecord(t *testing.T) {
	sales := []model.SaleRecord{{StockSold: 1, TotalSaleAmount: decimal.NewFromInt(-5)}}

	_, err := RenderInvoice(context.Background(), sales)
	var renderErr *report.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.ErrorIs(t, err, report.ErrInvalidRecord)
}
