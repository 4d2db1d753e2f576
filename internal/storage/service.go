package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gestorly/gestorly/internal/config"
	ierr "github.com/gestorly/gestorly/internal/errors"
)

// Service publishes rendered invoice PDFs to the backend's
// S3-compatible object storage.
type Service interface {
	// UploadInvoicePDF writes the PDF at {ownerID}/{fileName},
	// overwriting any previous version, and returns its public URL
	UploadInvoicePDF(ctx context.Context, ownerID string, fileName string, data []byte) (string, error)

	// RemoveInvoicePDF deletes the stored object
	RemoveInvoicePDF(ctx context.Context, ownerID string, fileName string) error

	// PublicURL returns the public URL of a stored object
	PublicURL(ownerID string, fileName string) string
}

type storageService struct {
	client *s3.Client
	config *config.StorageConfig
}

func NewService(cfg *config.Configuration) (Service, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.Storage.Region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to load storage config").
			Mark(ierr.ErrHTTPClient)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		o.UsePathStyle = true
	})

	return &storageService{
		client: client,
		config: &cfg.Storage,
	}, nil
}

func objectKey(ownerID string, fileName string) string {
	return fmt.Sprintf("%s/%s", ownerID, fileName)
}

func (s *storageService) UploadInvoicePDF(ctx context.Context, ownerID string, fileName string, data []byte) (string, error) {
	key := objectKey(ownerID, fileName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to upload invoice pdf").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	return s.PublicURL(ownerID, fileName), nil
}

func (s *storageService) RemoveInvoicePDF(ctx context.Context, ownerID string, fileName string) error {
	key := objectKey(ownerID, fileName)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to remove invoice pdf").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

func (s *storageService) PublicURL(ownerID string, fileName string) string {
	base := strings.TrimRight(s.config.PublicBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s", base, s.config.Bucket, objectKey(ownerID, fileName))
}
