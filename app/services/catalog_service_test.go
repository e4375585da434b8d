package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/app/services"
	"github.com/shashiranjanraj/infocart/pkg/storage"
)

const testMaxUpload = 5 << 20

func newCatalogService(t *testing.T) (*services.CatalogService, *repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	disk := storage.NewLocalDisk(t.TempDir(), "/uploads")
	return services.NewCatalogService(store.Products, store.Carts, disk, testMaxUpload), store
}

func TestCreateProductWithoutImage(t *testing.T) {
	svc, store := newCatalogService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, services.CreateProductInput{
		Name:        "mug",
		Price:       9.99,
		Description: "a mug",
	})
	require.NoError(t, err)
	assert.False(t, product.ID.IsZero())
	assert.Empty(t, product.Image)

	all, err := store.Products.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateProductStoresImage(t *testing.T) {
	svc, _ := newCatalogService(t)

	product, err := svc.Create(context.Background(), services.CreateProductInput{
		Name:        "mug",
		Price:       9.99,
		Description: "a mug",
		Image: &services.ImageUpload{
			Filename:    "photo.png",
			ContentType: "image/png",
			Data:        []byte("png bytes"),
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(product.Image, "/uploads/"))
	assert.True(t, strings.HasSuffix(product.Image, ".png"))
}

func TestCreateProductKeepsJpegSpelling(t *testing.T) {
	svc, _ := newCatalogService(t)

	product, err := svc.Create(context.Background(), services.CreateProductInput{
		Name:        "mug",
		Price:       9.99,
		Description: "a mug",
		Image: &services.ImageUpload{
			Filename:    "photo.jpeg",
			ContentType: "image/jpeg",
			Data:        []byte("jpeg bytes"),
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(product.Image, ".jpeg"))
}

func TestCreateProductRejectsUnsupportedImage(t *testing.T) {
	svc, store := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, services.CreateProductInput{
		Name:        "mug",
		Price:       9.99,
		Description: "a mug",
		Image: &services.ImageUpload{
			Filename:    "notes.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF"),
		},
	})
	assert.ErrorIs(t, err, services.ErrUnsupportedImage)

	// Nothing persisted when the image is refused.
	all, err := store.Products.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateProductRejectsOversizeImage(t *testing.T) {
	store := repositories.NewMemoryStore()
	disk := storage.NewLocalDisk(t.TempDir(), "/uploads")
	svc := services.NewCatalogService(store.Products, store.Carts, disk, 16)

	_, err := svc.Create(context.Background(), services.CreateProductInput{
		Name:        "mug",
		Price:       9.99,
		Description: "a mug",
		Image: &services.ImageUpload{
			Filename:    "photo.png",
			ContentType: "image/png",
			Data:        []byte("this payload is larger than sixteen bytes"),
		},
	})
	assert.ErrorIs(t, err, services.ErrImageTooLarge)
}

func TestDeleteCascadesIntoCarts(t *testing.T) {
	svc, store := newCatalogService(t)
	cartSvc := services.NewCartService(store.Carts, store.Products)
	ctx := context.Background()

	mug := seedProduct(t, store, "mug", 9.99)
	pen := seedProduct(t, store, "pen", 1.50)

	alice := newObjectID(t)
	bob := newObjectID(t)
	_, err := cartSvc.AddItem(ctx, alice, mug.ID.Hex(), 2)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, alice, pen.ID.Hex(), 1)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, bob, mug.ID.Hex(), 5)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, mug.ID.Hex()))

	aliceCart, err := cartSvc.Get(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceCart.Items, 1)
	assert.Equal(t, "pen", aliceCart.Items[0].Product.Name)

	bobCart, err := cartSvc.Get(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobCart.Items)
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	err := svc.Delete(ctx, newObjectID(t).Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// A malformed id resolves to nothing as well.
	err = svc.Delete(ctx, "not-hex")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
