package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ayabeauty/storefront/internal/domain/model"
	"github.com/ayabeauty/storefront/internal/ports"
)

// defaultMaxUploadBytes bounds multipart image uploads.
const defaultMaxUploadBytes = 10 << 20

// CatalogServiceInterface defines the catalog operations used by the HTTP layer.
type CatalogServiceInterface interface {
	Categories() []model.Category
	List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
	Get(ctx context.Context, id string) (*model.ProductDetail, error)
	Lookup(ctx context.Context, ids []string) ([]*model.Product, error)
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, in ports.ImageUpload) (model.Image, error)
	DeleteImage(ctx context.Context, publicID string) error
	Gallery(ctx context.Context) ([]model.Image, error)
}

// CatalogHandlers serves the public storefront reads and the admin catalog writes.
type CatalogHandlers struct {
	Svc            CatalogServiceInterface
	Logger         *slog.Logger
	MaxUploadBytes int64
}

func (h *CatalogHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type productListResponse struct {
	Products []*model.Product `json:"products"`
	Limit    int              `json:"limit,omitempty"`
	Offset   int              `json:"offset,omitempty"`
}

// Categories returns the category table.
// GET /api/categories.
func (h *CatalogHandlers) Categories(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"categories": h.Svc.Categories()})
}

// Gallery lists the salon gallery images.
// GET /api/gallery.
func (h *CatalogHandlers) Gallery(w http.ResponseWriter, r *http.Request) {
	images, err := h.Svc.Gallery(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"images": images})
}

// List returns products newest first.
// GET /api/products?category=&subcategory=&q=&limit=&offset=.
func (h *CatalogHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := ParseLimitOffset(r, model.DefaultListLimit, model.MaxListLimit)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}
	q := r.URL.Query()
	filter := model.ProductFilter{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Search:      q.Get("q"),
		Limit:       limit,
		Offset:      offset,
	}

	products, err := h.Svc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, productListResponse{Products: nonNil(products), Limit: limit, Offset: offset})
}

// Get returns a product with related items.
// GET /api/products/{id}.
func (h *CatalogHandlers) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}

type lookupRequest struct {
	IDs []string `json:"ids"`
}

// Lookup resolves a list of product ids for the favorites page.
// POST /api/products/lookup.
func (h *CatalogHandlers) Lookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	products, err := h.Svc.Lookup(r.Context(), req.IDs)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, productListResponse{Products: nonNil(products)})
}

// Create adds a product.
// POST /admin/api/products.
func (h *CatalogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	p, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// Update applies a partial update.
// PUT /admin/api/products/{id}.
func (h *CatalogHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProductRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	p, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// Delete removes a product and its image.
// DELETE /admin/api/products/{id}.
func (h *CatalogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage stores the multipart "file" field on the image host.
// POST /admin/api/images.
func (h *CatalogHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, ErrorParams{Code: http.StatusRequestEntityTooLarge, ErrCode: "file_too_large", Err: err})
			return
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_upload",
			Err:     errors.New("multipart field \"file\" is required"),
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnsupportedMediaType,
			ErrCode: "unsupported_media_type",
			Err:     errors.New("only image uploads are accepted"),
		})
		return
	}

	img, err := h.Svc.UploadImage(r.Context(), ports.ImageUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusCreated, img)
}

type deleteImageRequest struct {
	PublicID string `json:"public_id"`
}

// DeleteImage removes an image from the image host.
// POST /admin/api/images/delete.
func (h *CatalogHandlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	var req deleteImageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.DeleteImage(r.Context(), req.PublicID); err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	writeOK(w, http.StatusOK, true, "")
}

func nonNil(products []*model.Product) []*model.Product {
	if products == nil {
		return []*model.Product{}
	}
	return products
}
