package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Uploader stores a car image and returns its public URL. Injected into the
// car service so tests can stub the provider.
type Uploader interface {
	UploadCarImage(ctx context.Context, carID uint, file multipart.File) (string, error)
}

type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader creates an Uploader backed by Cloudinary.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloudinary client: %w", err)
	}
	return &cloudinaryUploader{cld: cld, folder: folder}, nil
}

func (u *cloudinaryUploader) UploadCarImage(ctx context.Context, carID uint, file multipart.File) (string, error) {
	// Unique public id per upload so replacing an image never serves a stale
	// CDN entry for the old one.
	publicID := fmt.Sprintf("car-%d-%s", carID, uuid.NewString())

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}

	return resp.SecureURL, nil
}
