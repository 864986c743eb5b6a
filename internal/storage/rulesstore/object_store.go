package rulesstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"porttariff/internal/domain"
	"porttariff/internal/port"
)

type objectStore struct {
	storage port.ObjectStorage
	bucket  string
	key     string
}

// NewObjectStore creates a RulesStore that keeps the rules as a single object.
func NewObjectStore(storage port.ObjectStorage, bucket, key string) port.RulesStore {
	return &objectStore{storage: storage, bucket: bucket, key: key}
}

func (s *objectStore) Load(ctx context.Context) (string, error) {
	data, err := s.storage.Download(ctx, s.bucket, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrObjectNotFound) {
			return "", fmt.Errorf("s3://%s/%s: %w", s.bucket, s.key, domain.ErrRulesNotFound)
		}
		return "", fmt.Errorf("loading rules object: %w", err)
	}
	return string(data), nil
}

func (s *objectStore) Save(ctx context.Context, text string) error {
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         s.key,
		Body:        strings.NewReader(text),
		ContentType: "text/markdown; charset=utf-8",
		Size:        int64(len(text)),
	})
	if err != nil {
		return fmt.Errorf("saving rules object: %w", err)
	}
	return nil
}

type objectDocument struct {
	storage port.ObjectStorage
	bucket  string
	key     string
}

// NewObjectDocument creates a DocumentSource reading the tariff PDF from object storage.
func NewObjectDocument(storage port.ObjectStorage, bucket, key string) port.DocumentSource {
	return &objectDocument{storage: storage, bucket: bucket, key: key}
}

func (d *objectDocument) Load(ctx context.Context) (*port.Attachment, error) {
	data, err := d.storage.Download(ctx, d.bucket, d.key)
	if err != nil {
		if errors.Is(err, domain.ErrObjectNotFound) {
			return nil, fmt.Errorf("s3://%s/%s: %w", d.bucket, d.key, domain.ErrTariffDocumentNotFound)
		}
		return nil, fmt.Errorf("loading tariff document: %w", err)
	}
	return &port.Attachment{Data: data, MimeType: domain.MIMETypePDF, Name: path.Base(d.key)}, nil
}
