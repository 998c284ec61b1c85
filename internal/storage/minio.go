package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/secondplate/restaurant-service/internal/config"
)

// MinioStore talks to an S3-compatible object store.
type MinioStore struct {
	client *minio.Client
	bucket string
	public string
}

// NewMinioStore connects a client and verifies the bucket exists, creating
// it when absent.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("created bucket", zap.String("bucket", cfg.Bucket))
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		public: fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

// Put uploads the file under a collision-free key derived from the request.
func (s *MinioStore) Put(ctx context.Context, req PutRequest) (*StoredObject, error) {
	key := fmt.Sprintf("%s/%s_%s%s", req.Folder, req.Name, uuid.NewString(), req.Ext)

	opts := minio.PutObjectOptions{ContentType: req.ContentType}
	if _, err := s.client.FPutObject(ctx, s.bucket, key, req.LocalPath, opts); err != nil {
		return nil, fmt.Errorf("put %s: %w", key, err)
	}

	return &StoredObject{
		RemoteID: key,
		URL:      fmt.Sprintf("%s/%s", s.public, key),
	}, nil
}

// Delete removes the object. S3 deletes are idempotent: removing a key that
// is already gone succeeds.
func (s *MinioStore) Delete(ctx context.Context, remoteID string) error {
	return s.client.RemoveObject(ctx, s.bucket, remoteID, minio.RemoveObjectOptions{})
}
