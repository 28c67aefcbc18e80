package ports

import (
	"context"
	"io"

	"github.com/ayabeauty/storefront/internal/domain/model"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	// GetByIDs returns the products that exist among ids, in the order of ids.
	GetByIDs(ctx context.Context, ids []string) ([]*model.Product, error)
	// List returns products matching the filter, newest first.
	List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
	// ListRelated returns up to limit products of the category, newest first, excluding excludeID.
	ListRelated(ctx context.Context, category, excludeID string, limit int) ([]*model.Product, error)
	Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ImageUpload carries a file to be stored on the image host.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ImageHost stores, lists and deletes images on an external host.
type ImageHost interface {
	Upload(ctx context.Context, in ImageUpload) (model.Image, error)
	Delete(ctx context.Context, publicID string) error
	// List returns the images stored under folder.
	List(ctx context.Context, folder string) ([]model.Image, error)
}
