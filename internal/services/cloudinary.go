package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService gère l'upload des images (avatars, photos de progression)
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService crée le service depuis la configuration
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.Cloudinary.CloudName == "" || cfg.Cloudinary.APIKey == "" || cfg.Cloudinary.APISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadAvatar upload l'avatar d'un utilisateur (recadré sur le visage)
func (s *CloudinaryService) UploadAvatar(ctx context.Context, file multipart.File, userID string) (string, error) {
	publicID := fmt.Sprintf("avatars/%s", userID)
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "workoutwise/avatars",
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Format:         "jpg",
		Transformation: "c_fill,g_face,h_500,w_500",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// UploadProgressPhoto upload une photo de progression datée
func (s *CloudinaryService) UploadProgressPhoto(ctx context.Context, file multipart.File, userID, photoID string) (string, error) {
	publicID := fmt.Sprintf("progress/%s/%s", userID, photoID)

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       "workoutwise/progress",
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload progress photo: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// DeleteImage supprime une image par son public ID
func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
