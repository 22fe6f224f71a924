package filestorage

import (
	"fmt"
	"strings"

	"github.com/yigit/studentrecords/internal/config"
)

// NewImageHost builds the image host selected by cfg.ImageHost.Provider
func NewImageHost(cfg *config.Config) (ImageHost, error) {
	switch strings.ToLower(cfg.ImageHost.Provider) {
	case config.ProviderCloudinary:
		return NewCloudinaryHost(cfg.ImageHost.Cloudinary.URL)
	case config.ProviderS3:
		s3cfg := cfg.ImageHost.S3
		return NewS3Host(S3Config{
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
			Bucket:    s3cfg.Bucket,
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			PublicURL: s3cfg.PublicURL,
		})
	case config.ProviderLocal, "":
		return NewLocalStorage(cfg.Server.StoragePath, cfg.PublicBaseURL()+"/uploads")
	default:
		return nil, fmt.Errorf("unknown image host provider %q", cfg.ImageHost.Provider)
	}
}
