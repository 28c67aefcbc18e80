package config

import (
	"strings"
	"time"
)

// ImageHostConfig configures the hosted image service used for product photos.
type ImageHostConfig struct {
	CloudName    string `env:"CLOUD_NAME"`
	UploadPreset string `env:"UPLOAD_PRESET"`
	// APIKey and APISecret are only needed to delete images.
	APIKey    string        `env:"API_KEY"`
	APISecret string        `env:"API_SECRET"`
	BaseURL   string        `env:"BASE_URL"   envDefault:"https://api.cloudinary.com/v1_1"`
	Folder    string        `env:"FOLDER"     envDefault:"storefront"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"30s"`
	// GalleryFolder is listed by GET /api/gallery; listing needs APIKey and APISecret.
	GalleryFolder string `env:"GALLERY_FOLDER" envDefault:"gallery"`
}

// Sanitize trims credentials and clamps the timeout.
func (c *ImageHostConfig) Sanitize() {
	c.CloudName = strings.TrimSpace(c.CloudName)
	c.UploadPreset = strings.TrimSpace(c.UploadPreset)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.GalleryFolder = strings.Trim(strings.TrimSpace(c.GalleryFolder), "/")
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// IsEnabled reports whether uploads can be performed.
func (c *ImageHostConfig) IsEnabled() bool {
	return c.CloudName != "" && c.UploadPreset != ""
}
