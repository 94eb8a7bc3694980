package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/smartchef/ai-service/config"
)

// ImageService archives uploaded detection images to S3. Archival is best
// effort: a nil service or a failed upload never blocks the predict flow.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// ArchiveUpload stores the raw uploaded image under uploads/ and returns its
// public URL.
func (s *ImageService) ArchiveUpload(ctx context.Context, imageData []byte, sessionID string) (string, error) {
	if s == nil || s.s3Config == nil {
		return "", nil
	}

	fileName := fmt.Sprintf("uploads/%s/%s.jpg", sessionID, uuid.New().String())
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Archived upload to %s", publicURL)
	return publicURL, nil
}
