package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/you/schoolauth/domain"
)

// MinioStorage implements domain.FileStorage against a MinIO/S3-compatible
// object store. Uploaded photos are served through the configured public
// base URL.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// MinioOptions configures MinIO client initialization
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

// NewMinioStorage constructs a MinIO-backed file storage
func NewMinioStorage(opts MinioOptions) (*MinioStorage, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage client: %w", err)
	}

	return &MinioStorage{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimSuffix(opts.PublicURL, "/"),
	}, nil
}

// Upload implements domain.FileStorage
func (s *MinioStorage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

var _ domain.FileStorage = (*MinioStorage)(nil)
