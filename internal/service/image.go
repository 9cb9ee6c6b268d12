package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/plateful/backend/config"
)

// ImageService stores recipe images in S3
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage uploads image data under a key derived from the recipe id
// and returns the public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	if s.s3Config == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	ext := path.Ext(filename)
	if ext == "" {
		ext = ".png"
	}
	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	logrus.WithField("url", publicURL).Info("recipe image uploaded")
	return publicURL, nil
}
