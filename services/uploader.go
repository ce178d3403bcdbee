package services

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadedImage is the hosted image metadata returned after an upload.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int    `json:"bytes"`
	Format   string `json:"format"`
}

// ImageUploader stores issue photos in Cloudinary.
type ImageUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewImageUploader(cloudinaryURL string) (*ImageUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &ImageUploader{cld: cld, folder: "campus-sos"}, nil
}

func (u *ImageUploader) Upload(ctx context.Context, file io.Reader) (*UploadedImage, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return nil, err
	}

	return &UploadedImage{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Width:    result.Width,
		Height:   result.Height,
		Bytes:    result.Bytes,
		Format:   result.Format,
	}, nil
}
