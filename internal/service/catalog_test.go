package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ayabeauty/storefront/internal/domain/model"
	apperrors "github.com/ayabeauty/storefront/internal/errors"
	"github.com/ayabeauty/storefront/internal/mocks"
	"github.com/ayabeauty/storefront/internal/ports"
	"github.com/ayabeauty/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type catalogFixture struct {
	repo   *mocks.MockProductRepository
	images *mocks.MockImageHost
	svc    *CatalogService
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProductRepository(ctrl)
	images := mocks.NewMockImageHost(ctrl)
	return catalogFixture{
		repo:   repo,
		images: images,
		svc:    NewCatalogService(CatalogServiceOptions{Repo: repo, Images: images}),
	}
}

func sampleProduct() *model.Product {
	return &model.Product{
		ID:            "7f1d8f2a-7a1e-4a5c-9f55-0b7a3f1e2d11",
		Name:          "Argan Hair Oil",
		Price:         18.5,
		Category:      "Hair",
		Subcategory:   "Hair Oil",
		ImageURL:      "https://res.cloudinary.com/demo/image/upload/v1/storefront/argan.jpg",
		ImagePublicID: "storefront/argan",
	}
}

func TestNewCatalogService_RequiresRepo(t *testing.T) {
	assert.Panics(t, func() { NewCatalogService(CatalogServiceOptions{}) })
}

func TestCatalogService_Categories(t *testing.T) {
	f := newCatalogFixture(t)
	cats := f.svc.Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, "Body", cats[0].Name)
}

func TestCatalogService_List(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().
		List(ctx, model.ProductFilter{Category: "Hair", Limit: model.DefaultListLimit}).
		Return([]*model.Product{sampleProduct()}, nil)

	got, err := f.svc.List(ctx, model.ProductFilter{Category: " Hair "})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	f.repo.EXPECT().List(ctx, gomock.Any()).Return(nil, errors.New("db down"))
	_, err = f.svc.List(ctx, model.ProductFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list products")
}

func TestCatalogService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns related products", func(t *testing.T) {
		f := newCatalogFixture(t)
		p := sampleProduct()
		related := []*model.Product{{ID: "other", Category: "Hair"}}

		f.repo.EXPECT().GetByID(ctx, p.ID).Return(p, nil)
		f.repo.EXPECT().ListRelated(ctx, "Hair", p.ID, model.RelatedLimit).Return(related, nil)

		detail, err := f.svc.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, detail.Product)
		assert.Equal(t, related, detail.Related)
	})

	t.Run("related failure is not fatal", func(t *testing.T) {
		f := newCatalogFixture(t)
		p := sampleProduct()
		f.repo.EXPECT().GetByID(ctx, p.ID).Return(p, nil)
		f.repo.EXPECT().ListRelated(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		detail, err := f.svc.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.NotNil(t, detail.Related)
		assert.Empty(t, detail.Related)
	})

	t.Run("not found propagates", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.repo.EXPECT().GetByID(ctx, "missing").Return(nil, apperrors.NotFound("product not found"))

		_, err := f.svc.Get(ctx, "missing")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestCatalogService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input skips the repository", func(t *testing.T) {
		f := newCatalogFixture(t)
		got, err := f.svc.Lookup(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("too many ids", func(t *testing.T) {
		f := newCatalogFixture(t)
		ids := strings.Split(strings.Repeat("x,", model.MaxLookupIDs+1), ",")
		_, err := f.svc.Lookup(ctx, ids)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "ids", apperrors.GetField(err))
	})

	t.Run("delegates to the repository", func(t *testing.T) {
		f := newCatalogFixture(t)
		ids := []string{"a", "b"}
		f.repo.EXPECT().GetByIDs(ctx, ids).Return([]*model.Product{sampleProduct()}, nil)
		got, err := f.svc.Lookup(ctx, ids)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestCatalogService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request", func(t *testing.T) {
		f := newCatalogFixture(t)
		req := testutil.NewProductRequest().WithName("  Argan Hair Oil ").Build()
		f.repo.EXPECT().Create(ctx, req).DoAndReturn(
			func(_ context.Context, r *model.CreateProductRequest) (*model.Product, error) {
				assert.Equal(t, "Argan Hair Oil", r.Name)
				return sampleProduct(), nil
			})

		p, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("invalid category never reaches the repository", func(t *testing.T) {
		f := newCatalogFixture(t)
		req := testutil.NewProductRequest().InCategory("Perfumes", "Shampoo").Build()
		_, err := f.svc.Create(ctx, req)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("negative price", func(t *testing.T) {
		f := newCatalogFixture(t)
		_, err := f.svc.Create(ctx, testutil.NewProductRequest().WithPrice(-1).Build())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price cannot be negative")
	})

	t.Run("nil request", func(t *testing.T) {
		f := newCatalogFixture(t)
		_, err := f.svc.Create(ctx, nil)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestCatalogService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("changing the image removes the previous one", func(t *testing.T) {
		f := newCatalogFixture(t)
		current := sampleProduct()
		newURL := "https://res.cloudinary.com/demo/image/upload/v2/storefront/argan-new.png"

		f.repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil)
		f.repo.EXPECT().Update(ctx, current.ID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, req model.UpdateProductRequest) (*model.Product, error) {
				require.NotNil(t, req.ImagePublicID)
				assert.Equal(t, "storefront/argan-new", *req.ImagePublicID)
				updated := *current
				updated.ImageURL = newURL
				updated.ImagePublicID = *req.ImagePublicID
				return &updated, nil
			})
		f.images.EXPECT().Delete(gomock.Any(), "storefront/argan").Return(nil)

		updated, err := f.svc.Update(ctx, current.ID, model.UpdateProductRequest{ImageURL: &newURL})
		require.NoError(t, err)
		assert.Equal(t, "storefront/argan-new", updated.ImagePublicID)
	})

	t.Run("unchanged image is kept", func(t *testing.T) {
		f := newCatalogFixture(t)
		current := sampleProduct()
		f.repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil)
		f.repo.EXPECT().Update(ctx, current.ID, gomock.Any()).Return(current, nil)

		_, err := f.svc.Update(ctx, current.ID, model.UpdateProductRequest{Price: testutil.Float64Ptr(20)})
		require.NoError(t, err)
	})

	t.Run("image cleanup failure does not fail the update", func(t *testing.T) {
		f := newCatalogFixture(t)
		current := sampleProduct()
		updated := *current
		updated.ImageURL, updated.ImagePublicID = "", ""

		f.repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil)
		f.repo.EXPECT().Update(ctx, current.ID, gomock.Any()).Return(&updated, nil)
		f.images.EXPECT().Delete(gomock.Any(), "storefront/argan").Return(errors.New("host down"))

		_, err := f.svc.Update(ctx, current.ID, model.UpdateProductRequest{ImageURL: testutil.StringPtr("")})
		require.NoError(t, err)
	})

	t.Run("subcategory must match the merged category", func(t *testing.T) {
		f := newCatalogFixture(t)
		current := sampleProduct()
		f.repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil)

		_, err := f.svc.Update(ctx, current.ID, model.UpdateProductRequest{Category: testutil.StringPtr("Makeup")})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("empty update", func(t *testing.T) {
		f := newCatalogFixture(t)
		_, err := f.svc.Update(ctx, "id", model.UpdateProductRequest{})
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestCatalogService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes row then image", func(t *testing.T) {
		f := newCatalogFixture(t)
		p := sampleProduct()
		gomock.InOrder(
			f.repo.EXPECT().GetByID(ctx, p.ID).Return(p, nil),
			f.repo.EXPECT().Delete(ctx, p.ID).Return(true, nil),
			f.images.EXPECT().Delete(gomock.Any(), p.ImagePublicID).Return(nil),
		)
		require.NoError(t, f.svc.Delete(ctx, p.ID))
	})

	t.Run("product without image", func(t *testing.T) {
		f := newCatalogFixture(t)
		p := sampleProduct()
		p.ImagePublicID = ""
		f.repo.EXPECT().GetByID(ctx, p.ID).Return(p, nil)
		f.repo.EXPECT().Delete(ctx, p.ID).Return(true, nil)
		require.NoError(t, f.svc.Delete(ctx, p.ID))
	})

	t.Run("row vanished concurrently", func(t *testing.T) {
		f := newCatalogFixture(t)
		p := sampleProduct()
		f.repo.EXPECT().GetByID(ctx, p.ID).Return(p, nil)
		f.repo.EXPECT().Delete(ctx, p.ID).Return(false, nil)
		err := f.svc.Delete(ctx, p.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("repository error keeps the image", func(t *testing.T) {
		f := newCatalogFixture(t)
		p := sampleProduct()
		f.repo.EXPECT().GetByID(ctx, p.ID).Return(p, nil)
		f.repo.EXPECT().Delete(ctx, p.ID).Return(false, errors.New("db down"))
		require.Error(t, f.svc.Delete(ctx, p.ID))
	})
}

func TestCatalogService_Images(t *testing.T) {
	ctx := context.Background()

	t.Run("upload", func(t *testing.T) {
		f := newCatalogFixture(t)
		in := ports.ImageUpload{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpeg")}
		f.images.EXPECT().Upload(ctx, in).Return(model.Image{URL: "https://img/a.jpg", PublicID: "a"}, nil)

		img, err := f.svc.UploadImage(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "a", img.PublicID)
	})

	t.Run("upload failure is unavailable", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.images.EXPECT().Upload(ctx, gomock.Any()).Return(model.Image{}, errors.New("502"))
		_, err := f.svc.UploadImage(ctx, ports.ImageUpload{Body: strings.NewReader("x")})
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.GetCode(err))
	})

	t.Run("upload requires a body", func(t *testing.T) {
		f := newCatalogFixture(t)
		_, err := f.svc.UploadImage(ctx, ports.ImageUpload{})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("delete", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.images.EXPECT().Delete(ctx, "storefront/a").Return(nil)
		require.NoError(t, f.svc.DeleteImage(ctx, " storefront/a "))
	})

	t.Run("delete requires public id", func(t *testing.T) {
		f := newCatalogFixture(t)
		err := f.svc.DeleteImage(ctx, "  ")
		assert.Equal(t, "public_id", apperrors.GetField(err))
	})

	t.Run("no image host configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewCatalogService(CatalogServiceOptions{Repo: mocks.NewMockProductRepository(ctrl)})
		_, err := svc.UploadImage(ctx, ports.ImageUpload{Body: strings.NewReader("x")})
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.GetCode(err))
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.GetCode(svc.DeleteImage(ctx, "a")))
	})
}

func TestCatalogService_Gallery(t *testing.T) {
	ctx := context.Background()

	t.Run("lists configured folder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		images := mocks.NewMockImageHost(ctrl)
		svc := NewCatalogService(CatalogServiceOptions{
			Repo:          mocks.NewMockProductRepository(ctrl),
			Images:        images,
			GalleryFolder: "/salon/",
		})
		images.EXPECT().List(ctx, "salon").Return([]model.Image{{URL: "https://img/s.jpg", PublicID: "salon/s"}}, nil)

		got, err := svc.Gallery(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "salon/s", got[0].PublicID)
	})

	t.Run("defaults to gallery folder", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.images.EXPECT().List(ctx, DefaultGalleryFolder).Return(nil, nil)

		got, err := f.svc.Gallery(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("listing failure is unavailable", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.images.EXPECT().List(ctx, gomock.Any()).Return(nil, errors.New("401"))
		_, err := f.svc.Gallery(ctx)
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.GetCode(err))
	})

	t.Run("no image host configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewCatalogService(CatalogServiceOptions{Repo: mocks.NewMockProductRepository(ctrl)})
		_, err := svc.Gallery(ctx)
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.GetCode(err))
	})
}
