// Package storage provides MinIO-backed object storage adapters.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	ordersvc "fixserve_backend/internal/orders/service"
)

// Config is the subset of application config the storage adapter needs.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketOrderImages() string
	IsMinIOEnabled() bool
}

// ImageChecker verifies that order images referenced by id exist in the
// order-images bucket. Image upload and download are handled elsewhere; the
// order flow only ever needs existence.
type ImageChecker struct {
	client *minio.Client
	bucket string
}

// NewImageChecker creates a MinIO-backed image checker.
func NewImageChecker(cfg Config) (*ImageChecker, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &ImageChecker{client: client, bucket: cfg.GetMinioBucketOrderImages()}, nil
}

// Exists reports whether the object named by the image id is present.
func (c *ImageChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := c.client.StatObject(ctx, c.bucket, id.String(), minio.StatObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat order image: %w", err)
	}
	return true, nil
}

var _ ordersvc.ImageChecker = (*ImageChecker)(nil)
