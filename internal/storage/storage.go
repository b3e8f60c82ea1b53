// Package storage keeps ledger archives in S3-compatible object storage.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions describe an upload. Size is the exact byte count, or -1
// when unknown. Filename, when set, becomes the attachment name on download.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Filename    string
	Metadata    map[string]string
}

// ObjectInfo is what the backend reports after an upload.
type ObjectInfo struct {
	Key  string
	Size int64
	ETag string
}

// Storage is the object storage client interface.
type Storage interface {
	// Put streams r to key. Nothing touches local disk.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// PresignGet returns a time-limited URL that downloads key without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
