package httpx

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/ayabeauty/storefront/internal/domain/model"
	apperrors "github.com/ayabeauty/storefront/internal/errors"
	"github.com/ayabeauty/storefront/internal/mocks"
	"github.com/ayabeauty/storefront/internal/ports"
	"github.com/ayabeauty/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type catalogHandlerFixture struct {
	repo     *mocks.MockProductRepository
	images   *mocks.MockImageHost
	handlers *CatalogHandlers
}

func newCatalogHandlerFixture(t *testing.T) catalogHandlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProductRepository(ctrl)
	images := mocks.NewMockImageHost(ctrl)
	svc := service.NewCatalogService(service.CatalogServiceOptions{Repo: repo, Images: images, Logger: discardLogger()})
	return catalogHandlerFixture{
		repo:     repo,
		images:   images,
		handlers: &CatalogHandlers{Svc: svc, Logger: discardLogger()},
	}
}

func TestCatalogHandlers_List(t *testing.T) {
	t.Run("passes filters", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.repo.EXPECT().
			List(gomock.Any(), model.ProductFilter{Category: "Hair", Subcategory: "Shampoo", Search: "argan", Limit: 10, Offset: 20}).
			Return([]*model.Product{{ID: "p1", Name: "Argan Shampoo"}}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products?category=Hair&subcategory=Shampoo&q=argan&limit=10&offset=20", nil)
		f.handlers.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Argan Shampoo"`)
		assert.Contains(t, rec.Body.String(), `"limit":10`)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

		rec := httptest.NewRecorder()
		f.handlers.List(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"products":[]`)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.repo.EXPECT().
			List(gomock.Any(), model.ProductFilter{Limit: model.MaxListLimit}).
			Return(nil, nil)
		rec := httptest.NewRecorder()
		f.handlers.List(rec, httptest.NewRequest(http.MethodGet, "/api/products?limit=100000", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		rec := httptest.NewRecorder()
		f.handlers.List(rec, httptest.NewRequest(http.MethodGet, "/api/products?limit=ten", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_query")
	})

	t.Run("database failure hides detail", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("pq: password authentication failed"))
		rec := httptest.NewRecorder()
		f.handlers.List(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
	})
}

func TestCatalogHandlers_Get(t *testing.T) {
	f := newCatalogHandlerFixture(t)
	p := &model.Product{ID: "p1", Name: "Serum", Category: "Skin Care"}
	f.repo.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)
	f.repo.EXPECT().ListRelated(gomock.Any(), "Skin Care", "p1", model.RelatedLimit).Return(nil, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, apperrors.NotFound("product not found"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products/{id}", f.handlers.Get)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/p1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"related":[]`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"product not found"}`, rec.Body.String())
}

func TestCatalogHandlers_Lookup(t *testing.T) {
	f := newCatalogHandlerFixture(t)
	f.repo.EXPECT().GetByIDs(gomock.Any(), []string{"a", "b"}).Return([]*model.Product{{ID: "a"}}, nil)

	rec := httptest.NewRecorder()
	f.handlers.Lookup(rec, jsonRequest(http.MethodPost, "/api/products/lookup", `{"ids":["a","b"]}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"a"`)

	rec = httptest.NewRecorder()
	f.handlers.Lookup(rec, jsonRequest(http.MethodPost, "/api/products/lookup", `{"ids":["a"],"extra":1}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestCatalogHandlers_CreateUpdateDelete(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Product{ID: "new", Name: "Lotion"}, nil)

		rec := httptest.NewRecorder()
		body := `{"name":"Lotion","price":9.5,"category":"Body","subcategory":"Lotion"}`
		f.handlers.Create(rec, jsonRequest(http.MethodPost, "/admin/api/products", body))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"new"`)
	})

	t.Run("create validation error", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		rec := httptest.NewRecorder()
		body := `{"name":"Lotion","price":-1,"category":"Body","subcategory":"Lotion"}`
		f.handlers.Create(rec, jsonRequest(http.MethodPost, "/admin/api/products", body))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"validation","message":"price cannot be negative"}`, rec.Body.String())
	})

	t.Run("update", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		current := &model.Product{ID: "p1", Name: "Old", Category: "Body", Subcategory: "Lotion"}
		f.repo.EXPECT().GetByID(gomock.Any(), "p1").Return(current, nil)
		f.repo.EXPECT().Update(gomock.Any(), "p1", gomock.Any()).Return(&model.Product{ID: "p1", Name: "New"}, nil)

		mux := http.NewServeMux()
		mux.HandleFunc("PUT /admin/api/products/{id}", f.handlers.Update)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, jsonRequest(http.MethodPut, "/admin/api/products/p1", `{"name":"New"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"New"`)
	})

	t.Run("delete", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "p1").Return(&model.Product{ID: "p1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), "p1").Return(true, nil)

		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /admin/api/products/{id}", f.handlers.Delete)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/api/products/p1", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func multipartImage(t *testing.T, field, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="look.jpg"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/api/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCatalogHandlers_UploadImage(t *testing.T) {
	t.Run("uploads image", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.images.EXPECT().Upload(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in ports.ImageUpload) (model.Image, error) {
				assert.Equal(t, "look.jpg", in.Filename)
				assert.Equal(t, "image/jpeg", in.ContentType)
				return model.Image{URL: "https://img/look.jpg", PublicID: "storefront/look"}, nil
			})

		rec := httptest.NewRecorder()
		f.handlers.UploadImage(rec, multipartImage(t, "file", "image/jpeg", []byte("jpegdata")))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"url":"https://img/look.jpg","public_id":"storefront/look"}`, rec.Body.String())
	})

	t.Run("missing file field", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		rec := httptest.NewRecorder()
		f.handlers.UploadImage(rec, multipartImage(t, "image", "image/jpeg", []byte("x")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-image content type", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		rec := httptest.NewRecorder()
		f.handlers.UploadImage(rec, multipartImage(t, "file", "application/pdf", []byte("%PDF")))
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.handlers.MaxUploadBytes = 512
		rec := httptest.NewRecorder()
		f.handlers.UploadImage(rec, multipartImage(t, "file", "image/jpeg", bytes.Repeat([]byte("x"), 4096)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("image host failure is 502", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.images.EXPECT().Upload(gomock.Any(), gomock.Any()).Return(model.Image{}, errors.New("upstream 500"))
		rec := httptest.NewRecorder()
		f.handlers.UploadImage(rec, multipartImage(t, "file", "image/png", []byte("png")))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "image upload failed")
	})
}

func TestCatalogHandlers_DeleteImage(t *testing.T) {
	f := newCatalogHandlerFixture(t)
	f.images.EXPECT().Delete(gomock.Any(), "storefront/look").Return(nil)

	rec := httptest.NewRecorder()
	f.handlers.DeleteImage(rec, jsonRequest(http.MethodPost, "/admin/api/images/delete", `{"public_id":"storefront/look"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	f.handlers.DeleteImage(rec, jsonRequest(http.MethodPost, "/admin/api/images/delete", `{"public_id":""}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogHandlers_Categories(t *testing.T) {
	f := newCatalogHandlerFixture(t)
	rec := httptest.NewRecorder()
	f.handlers.Categories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Hair Tools"`)
}

func TestCatalogHandlers_Gallery(t *testing.T) {
	t.Run("lists gallery folder", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.images.EXPECT().List(gomock.Any(), service.DefaultGalleryFolder).Return([]model.Image{
			{URL: "https://img/gallery/salon.jpg", PublicID: "gallery/salon"},
		}, nil)

		rec := httptest.NewRecorder()
		f.handlers.Gallery(rec, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"images":[{"url":"https://img/gallery/salon.jpg","public_id":"gallery/salon"}]}`, rec.Body.String())
	})

	t.Run("empty folder is an empty list", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.images.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

		rec := httptest.NewRecorder()
		f.handlers.Gallery(rec, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"images":[]}`, rec.Body.String())
	})

	t.Run("image host failure is 502", func(t *testing.T) {
		f := newCatalogHandlerFixture(t)
		f.images.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("upstream 500"))

		rec := httptest.NewRecorder()
		f.handlers.Gallery(rec, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "gallery listing failed")
	})
}
