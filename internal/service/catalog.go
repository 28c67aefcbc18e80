package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ayabeauty/storefront/internal/domain/model"
	apperrors "github.com/ayabeauty/storefront/internal/errors"
	"github.com/ayabeauty/storefront/internal/ports"
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Repo   ports.ProductRepository // Required
	Images ports.ImageHost         // Optional: image routes report unavailable without it
	Logger *slog.Logger            // Optional
	// GalleryFolder is the image host folder listed by Gallery. Defaults to DefaultGalleryFolder.
	GalleryFolder string
}

// DefaultGalleryFolder holds the salon photos shown on the gallery page.
const DefaultGalleryFolder = "gallery"

// CatalogService serves storefront reads and admin writes over the product repository and image host.
type CatalogService struct {
	repo          ports.ProductRepository
	images        ports.ImageHost
	galleryFolder string
	logger        *slog.Logger
}

var errImageHostUnavailable = &apperrors.AppError{
	Code:    apperrors.ErrCodeUnavailable,
	Message: "image host is not configured",
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	if opts.Repo == nil {
		panic("CatalogService: Repo is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	folder := strings.Trim(strings.TrimSpace(opts.GalleryFolder), "/")
	if folder == "" {
		folder = DefaultGalleryFolder
	}
	return &CatalogService{
		repo:          opts.Repo,
		images:        opts.Images,
		galleryFolder: folder,
		logger:        logger.With("component", "catalog_service"),
	}
}

// Categories returns the category table.
func (s *CatalogService) Categories() []model.Category {
	return model.Categories()
}

// List returns products matching filter, newest first.
func (s *CatalogService) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	filter.Normalize()
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns a product with up to model.RelatedLimit other products of its category.
// Failing to load related products does not fail the request.
func (s *CatalogService) Get(ctx context.Context, id string) (*model.ProductDetail, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	related, err := s.repo.ListRelated(ctx, p.Category, p.ID, model.RelatedLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "load related products failed", "product_id", p.ID, "error", err)
		related = nil
	}
	if related == nil {
		related = []*model.Product{}
	}
	return &model.ProductDetail{Product: p, Related: related}, nil
}

// Lookup resolves a list of product ids, skipping ids that no longer exist.
func (s *CatalogService) Lookup(ctx context.Context, ids []string) ([]*model.Product, error) {
	if len(ids) > model.MaxLookupIDs {
		return nil, apperrors.ValidationField("ids", fmt.Sprintf("at most %d ids may be looked up", model.MaxLookupIDs))
	}
	if len(ids) == 0 {
		return []*model.Product{}, nil
	}
	products, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup products: %w", err)
	}
	return products, nil
}

// Create validates and stores a new product.
func (s *CatalogService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	p, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.InfoContext(ctx, "product created", "product_id", p.ID, "category", p.Category)
	return p, nil
}

// Update applies a partial update. When the image changes, the previous image is removed from the host.
func (s *CatalogService) Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if _, mergeErr := req.ApplyTo(*current); mergeErr != nil {
		return nil, apperrors.Wrap(mergeErr, apperrors.ErrCodeValidation, mergeErr.Error())
	}
	if req.ImageURL != nil && req.ImagePublicID == nil {
		derived := model.ExtractPublicID(*req.ImageURL)
		req.ImagePublicID = &derived
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if current.ImagePublicID != "" && current.ImagePublicID != updated.ImagePublicID {
		s.deleteImageBestEffort(ctx, current.ImagePublicID)
	}
	s.logger.InfoContext(ctx, "product updated", "product_id", updated.ID)
	return updated, nil
}

// Delete removes a product and then its image. Image removal failures are logged only.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("product not found")
	}

	if current.ImagePublicID != "" {
		s.deleteImageBestEffort(ctx, current.ImagePublicID)
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", id)
	return nil
}

// UploadImage stores an image on the image host.
func (s *CatalogService) UploadImage(ctx context.Context, in ports.ImageUpload) (model.Image, error) {
	if s.images == nil {
		return model.Image{}, errImageHostUnavailable
	}
	if in.Body == nil {
		return model.Image{}, apperrors.ValidationField("file", "file is required")
	}
	img, err := s.images.Upload(ctx, in)
	if err != nil {
		return model.Image{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "image upload failed")
	}
	s.logger.InfoContext(ctx, "image uploaded", "public_id", img.PublicID)
	return img, nil
}

// DeleteImage removes an image from the image host.
func (s *CatalogService) DeleteImage(ctx context.Context, publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return apperrors.ValidationField("public_id", "public_id is required")
	}
	if s.images == nil {
		return errImageHostUnavailable
	}
	if err := s.images.Delete(ctx, publicID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "image delete failed")
	}
	return nil
}

// Gallery lists the images of the gallery folder.
func (s *CatalogService) Gallery(ctx context.Context) ([]model.Image, error) {
	if s.images == nil {
		return nil, errImageHostUnavailable
	}
	images, err := s.images.List(ctx, s.galleryFolder)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "gallery listing failed")
	}
	if images == nil {
		images = []model.Image{}
	}
	return images, nil
}

func (s *CatalogService) deleteImageBestEffort(ctx context.Context, publicID string) {
	if s.images == nil {
		return
	}
	// Detached from request cancellation: the row change is already committed.
	if err := s.images.Delete(context.WithoutCancel(ctx), publicID); err != nil {
		s.logger.WarnContext(ctx, "delete previous image failed", "public_id", publicID, "error", err)
	}
}
