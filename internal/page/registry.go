package page

import (
	"context"
	"sync"

	"go-retail-sales/internal/loader"
)

// Registry keeps one mounted SalesPage per user
type Registry struct {
	source Source
	render InvoiceRenderer

	mu     sync.Mutex
	pages  map[string]*SalesPage
	closed bool
}

func NewRegistry(source Source, render InvoiceRenderer) *Registry {
	return &Registry{
		source: source,
		render: render,
		pages:  make(map[string]*SalesPage),
	}
}

// Get returns the session user's page, creating and mounting it on first
// access. A page closed by a rejected session is replaced. When the session
// arrives with a new token the page reloads with it before being returned, so
// lists cached under the old token are only served to a token the API accepted.
func (r *Registry) Get(ctx context.Context, s loader.Session) (*SalesPage, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrPageClosed
	}
	p, ok := r.pages[s.UserID]
	if ok && p.Closed() {
		ok = false
	}
	if !ok {
		p = New(r.source, s, r.render)
		r.pages[s.UserID] = p
	}
	r.mu.Unlock()

	if err := p.Mount(ctx); err != nil {
		r.drop(s.UserID, p)
		return nil, err
	}
	if ok && p.Session().Token != s.Token {
		p.SetToken(s.Token)
		if err := p.Refresh(ctx); err != nil {
			r.drop(s.UserID, p)
			return nil, err
		}
	}
	return p, nil
}

// drop forgets p if it is closed and still registered for userID
func (r *Registry) drop(userID string, p *SalesPage) {
	if !p.Closed() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pages[userID] == p {
		delete(r.pages, userID)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

// Close closes every page. Get fails afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for id, p := range r.pages {
		p.Close()
		delete(r.pages, id)
	}
}
