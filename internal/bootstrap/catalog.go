package bootstrap

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/ayabeauty/storefront/config"
	"github.com/ayabeauty/storefront/internal/adapters/imagehost"
	"github.com/ayabeauty/storefront/internal/data"
	"github.com/ayabeauty/storefront/internal/ports"
	"github.com/ayabeauty/storefront/internal/service"
)

// CatalogDeps contains the inputs for BuildCatalog.
type CatalogDeps struct {
	DB        *sql.DB
	ImageHost config.ImageHostConfig
	Logger    *slog.Logger
}

// BuildCatalog wires the product repository and, when configured, the image host.
// It returns nil when there is no database.
func BuildCatalog(deps CatalogDeps) *service.CatalogService {
	if deps.DB == nil {
		return nil
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var images ports.ImageHost
	if deps.ImageHost.IsEnabled() {
		images = imagehost.New(imagehost.Options{
			BaseURL:      deps.ImageHost.BaseURL,
			CloudName:    deps.ImageHost.CloudName,
			UploadPreset: deps.ImageHost.UploadPreset,
			APIKey:       deps.ImageHost.APIKey,
			APISecret:    deps.ImageHost.APISecret,
			Folder:       deps.ImageHost.Folder,
			HTTPClient:   &http.Client{Timeout: deps.ImageHost.Timeout},
		})
	} else {
		logger.Warn("image host not configured; image uploads are disabled")
	}

	return service.NewCatalogService(service.CatalogServiceOptions{
		Repo:          data.NewProductRepo(deps.DB),
		Images:        images,
		Logger:        logger,
		GalleryFolder: deps.ImageHost.GalleryFolder,
	})
}
