package page

import (
	"context"

	"go-retail-sales/internal/model"
)

// SaleModal is the visibility state of the add-sale dialog
type SaleModal struct {
	Visible      bool `json:"visible"`
	CameraActive bool `json:"camera_active"`
}

// Toggle flips visibility. The camera flag is raised on every toggle,
// closing included.
func (m *SaleModal) Toggle() {
	m.Visible = !m.Visible
	m.CameraActive = true
}

// ModalProps is what the add-sale form is opened with
type ModalProps struct {
	Products []model.Product `json:"products"`
	Stores   []model.Store   `json:"stores"`
	// Refresh reloads the page once the form has submitted a sale
	Refresh func(ctx context.Context) error `json:"-"`
}

// ToggleModal toggles the add-sale modal and returns its new state
func (p *SalesPage) ToggleModal() SaleModal {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modal.Toggle()
	return p.modal
}

func (p *SalesPage) ModalProps() ModalProps {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ModalProps{
		Products: p.products,
		Stores:   p.stores,
		Refresh:  p.Refresh,
	}
}
