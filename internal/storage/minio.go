package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bookledger/internal/config"
)

// maxPresignExpiry is the longest validity S3 accepts for a V4 signature.
const maxPresignExpiry = 7 * 24 * time.Hour

// minioStorage is safe for concurrent use.
type minioStorage struct {
	client *minio.Client
	bucket string
}

func validateMinIO(cfg config.MinIOConfig) error {
	switch {
	case cfg.Endpoint == "":
		return errors.New("minio endpoint is required")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return errors.New("minio credentials are required")
	case cfg.Bucket == "":
		return errors.New("minio bucket is required")
	}
	return nil
}

// NewMinIO connects to the archive bucket, creating it when it does not exist yet.
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (Storage, error) {
	if err := validateMinIO(cfg); err != nil {
		return nil, err
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check archive bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create archive bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &minioStorage{client: cli, bucket: cfg.Bucket}, nil
}

func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	putOpts := minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	}
	if opt.Filename != "" {
		putOpts.ContentDisposition = attachment(opt.Filename)
	}

	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, putOpts)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{Key: key, Size: info.Size, ETag: info.ETag}, nil
}

func (m *minioStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, clampExpiry(expiry), url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

// clampExpiry keeps expiry within what a V4 presigned URL allows.
func clampExpiry(d time.Duration) time.Duration {
	switch {
	case d < time.Second:
		return time.Second
	case d > maxPresignExpiry:
		return maxPresignExpiry
	}
	return d
}
