package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/app/services"
)

func newObjectID(t *testing.T) primitive.ObjectID {
	t.Helper()
	return primitive.NewObjectID()
}

func seedProduct(t *testing.T, store *repositories.Store, name string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Description: name + " description"}
	require.NoError(t, store.Products.Create(context.Background(), p))
	return p
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := services.NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	userID := newObjectID(t)
	product := seedProduct(t, store, "mug", 9.99)

	cart, err := svc.AddItem(ctx, userID, product.ID.Hex(), 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = svc.AddItem(ctx, userID, product.ID.Hex(), 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemAppendsNewLine(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := services.NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	userID := newObjectID(t)
	mug := seedProduct(t, store, "mug", 9.99)
	pen := seedProduct(t, store, "pen", 1.50)

	_, err := svc.AddItem(ctx, userID, mug.ID.Hex(), 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, userID, pen.ID.Hex(), 4)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, pen.ID, cart.Items[1].ProductID)
	assert.Equal(t, 4, cart.Items[1].Quantity)
}

func TestAddItemRejectsMalformedID(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := services.NewCartService(store.Carts, store.Products)

	_, err := svc.AddItem(context.Background(), newObjectID(t), "not-hex", 1)
	assert.ErrorIs(t, err, services.ErrMalformedID)
}

func TestRemoveItemFiltersLine(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := services.NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	userID := newObjectID(t)
	mug := seedProduct(t, store, "mug", 9.99)
	pen := seedProduct(t, store, "pen", 1.50)

	_, err := svc.AddItem(ctx, userID, mug.ID.Hex(), 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, pen.ID.Hex(), 2)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, userID, mug.ID.Hex())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "pen", cart.Items[0].Product.Name)
}

func TestRemoveItemWithoutCart(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := services.NewCartService(store.Carts, store.Products)

	_, err := svc.RemoveItem(context.Background(), newObjectID(t), newObjectID(t).Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGetWithoutCartReturnsEmpty(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := services.NewCartService(store.Carts, store.Products)

	cart, err := svc.Get(context.Background(), newObjectID(t))
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestGetResolvesDeletedProductAsNull(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := services.NewCartService(store.Carts, store.Products)
	ctx := context.Background()
	userID := newObjectID(t)
	mug := seedProduct(t, store, "mug", 9.99)

	_, err := svc.AddItem(ctx, userID, mug.ID.Hex(), 1)
	require.NoError(t, err)

	// Remove from the catalog only; the cart line stays behind.
	require.NoError(t, store.Products.Delete(ctx, mug.ID))

	cart, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Nil(t, cart.Items[0].Product)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}
