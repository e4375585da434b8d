package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/pkg/metrics"
	"github.com/shashiranjanraj/infocart/pkg/storage"
)

// imageExtensions maps accepted upload content types to stored extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ImageUpload is an optional product picture received as multipart data.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateProductInput is the validated payload for a new catalog entry.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Image       *ImageUpload
}

// CatalogService manages products and the cart cascade on delete.
type CatalogService struct {
	products repositories.ProductRepository
	carts    repositories.CartRepository
	disk     storage.Disk
	maxBytes int64
}

// NewCatalogService builds a CatalogService. maxBytes caps uploaded images.
func NewCatalogService(products repositories.ProductRepository, carts repositories.CartRepository, disk storage.Disk, maxBytes int64) *CatalogService {
	return &CatalogService{products: products, carts: carts, disk: disk, maxBytes: maxBytes}
}

// Create persists a product, storing its image first when one was uploaded.
func (s *CatalogService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
	}

	if input.Image != nil {
		url, err := s.storeImage(input.Image)
		if err != nil {
			return nil, err
		}
		product.Image = url
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// storeImage enforces the content-type allow-list and the size ceiling, then
// writes the file under a generated name and returns its public URL.
func (s *CatalogService) storeImage(img *ImageUpload) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(img.ContentType)]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if int64(len(img.Data)) > s.maxBytes {
		return "", ErrImageTooLarge
	}
	// Extension from the original name wins when it is one we accept, so a
	// .jpeg upload keeps its spelling.
	if orig := strings.ToLower(path.Ext(img.Filename)); orig == ".jpeg" || orig == ext {
		ext = orig
	}

	name := uuid.NewString() + ext
	if err := s.disk.Put(name, img.Data); err != nil {
		return "", fmt.Errorf("catalog: store image: %w", err)
	}
	return s.disk.URL(name), nil
}

// List returns every product in the catalog.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx)
}

// Delete removes a product and strips it from every cart that references it.
// The two writes are independent; if the cart pull fails after the product
// delete succeeded there is no rollback.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		// An id that cannot exist resolves to nothing, same as a miss.
		return repositories.ErrNotFound
	}

	if err := s.products.Delete(ctx, oid); err != nil {
		return err
	}
	if err := s.carts.PullProduct(ctx, oid); err != nil {
		return fmt.Errorf("catalog: cascade cart cleanup: %w", err)
	}

	metrics.ProductsDeleted.Inc()
	return nil
}
