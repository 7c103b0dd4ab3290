package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/TheOneTrueGod/lomithBackend/config"
)

// ImageService stores uploaded recipe images in S3 and hands back a
// public URL suitable for a recipe's imageUrl field.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates an ImageService.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadRecipeImage uploads the file under a fresh key and returns
// its public URL. The original filename only contributes the
// extension.
func (s *ImageService) UploadRecipeImage(ctx context.Context, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	key := fmt.Sprintf("recipes/%s%s", uuid.NewString(), ext)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return s.s3Config.ObjectURL(key), nil
}
