package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"bookledger/internal/export"
	"bookledger/internal/storage"
)

// ArchiveResult describes a ledger snapshot written to object storage.
type ArchiveResult struct {
	Key       string
	URL       string
	Records   int
	CreatedAt time.Time
}

// ArchiveService writes CSV snapshots of the ledger to object storage.
type ArchiveService interface {
	// Archive stores the listing Search(text) would return and returns a
	// pre-signed download link for it.
	Archive(ctx context.Context, text string) (*ArchiveResult, error)
}

type archiveService struct {
	store  storage.Storage
	ledger LedgerService
	expiry time.Duration
	now    func() time.Time
}

// NewArchiveService constructs a new ArchiveService. Links expire after expiry.
func NewArchiveService(store storage.Storage, ledger LedgerService, expiry time.Duration) ArchiveService {
	return &archiveService{store: store, ledger: ledger, expiry: expiry, now: time.Now}
}

func (s *archiveService) Archive(ctx context.Context, text string) (*ArchiveResult, error) {
	records, err := s.ledger.Search(ctx, text)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		return nil, fmt.Errorf("encode archive: %w", err)
	}

	createdAt := s.now().UTC()
	name := fmt.Sprintf("ledger-%s-%s.csv", createdAt.Format("20060102T150405Z"), uuid.NewString())
	key := path.Join("ledger", name)

	info, err := s.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: export.ContentType,
		Filename:    name,
		Metadata: map[string]string{
			// S3 user metadata travels as HTTP headers; keep it plain ASCII.
			"search":  url.QueryEscape(text),
			"records": strconv.Itoa(len(records)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload archive: %w", err)
	}

	url, err := s.store.PresignGet(ctx, info.Key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign archive: %w", err)
	}

	return &ArchiveResult{Key: info.Key, URL: url, Records: len(records), CreatedAt: createdAt}, nil
}
