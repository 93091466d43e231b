package libs

import (
	"context"
	"easy-shop/config"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

var ErrBlobStoreNotConfigured = errors.New("cloudinary credentials not configured")

// CloudinaryStore is the blob store for product images.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

func NewCloudinaryStore(cfg *config.Config, logger *zap.Logger) (*CloudinaryStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)

	switch {
	case cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case cfg.CloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	default:
		return nil, ErrBlobStoreNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryStore{cld: cld, folder: cfg.CloudinaryFolder, logger: logger}, nil
}

// Upload stores body under a timestamped public id and returns its secure URL and public id.
func (s *CloudinaryStore) Upload(ctx context.Context, body io.Reader, filename string) (string, string, error) {
	name := strings.TrimSuffix(strings.ReplaceAll(filename, " ", "_"), filepath.Ext(filename))
	publicID := fmt.Sprintf("%d_%s", time.Now().Unix(), name)

	res, err := s.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         s.folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", "", fmt.Errorf("cloudinary upload rejected: %s", res.Error.Message)
	}

	url := res.SecureURL
	if url == "" {
		url = res.URL
	}
	if url == "" {
		return "", "", errors.New("cloudinary returned no URL")
	}

	s.logger.Debug("image uploaded", zap.String("public_id", res.PublicID))
	return url, res.PublicID, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary deletion failed: %s", res.Result)
	}

	return nil
}
