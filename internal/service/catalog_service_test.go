package service

import (
	"context"
	"testing"

	"go-retail-sales/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductAssignsOwner(t *testing.T) {
	f := newFixture(t)

	// owner and id in the body are ignored
	p := &model.Product{Name: "Pen", Stock: 4, UserID: uuid.New()}
	p.ID = uuid.New()
	supplied := p.ID
	require.NoError(t, f.catalog.CreateProduct(context.Background(), p, f.actor))

	assert.Equal(t, f.userID, p.UserID)
	assert.NotEqual(t, supplied, p.ID)
	assert.Equal(t, f.actor.ID, p.CreatedBy)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)

	err := f.catalog.CreateProduct(context.Background(), &model.Product{Stock: 1}, f.actor)
	assert.ErrorIs(t, err, ErrValidation)

	err = f.catalog.CreateProduct(context.Background(), &model.Product{Name: "Pen", Stock: -1}, f.actor)
	assert.ErrorIs(t, err, ErrValidation)

	err = f.catalog.CreateStore(context.Background(), &model.Store{}, f.actor)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogListsAreScopedAndSorted(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Pen", 1)
	f.product(t, "Book", 1)
	f.store(t, "Main St")

	other := Actor{ID: uuid.NewString()}
	require.NoError(t, f.catalog.CreateStore(context.Background(), &model.Store{Name: "Elsewhere"}, other))

	products, err := f.catalog.GetProducts(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Book", products[0].Name)
	assert.Equal(t, "Pen", products[1].Name)

	stores, err := f.catalog.GetStores(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Main St", stores[0].Name)
}

func TestInvalidActorRejected(t *testing.T) {
	f := newFixture(t)
	err := f.catalog.CreateStore(context.Background(), &model.Store{Name: "X"}, Actor{ID: "system"})
	assert.Error(t, err)
}
