// Package rulesstore persists extracted rules text and loads the tariff document.
package rulesstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"porttariff/internal/domain"
	"porttariff/internal/port"
)

type fileStore struct {
	path string
}

// NewFileStore creates a RulesStore backed by a local markdown file.
func NewFileStore(path string) port.RulesStore {
	return &fileStore{path: path}
}

func (s *fileStore) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", s.path, domain.ErrRulesNotFound)
		}
		return "", fmt.Errorf("reading rules file: %w", err)
	}
	return string(data), nil
}

// Save writes text atomically: a temp file in the same directory is renamed over the target.
func (s *fileStore) Save(_ context.Context, text string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".rules-*.md")
	if err != nil {
		return fmt.Errorf("creating temp rules file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing rules file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing rules file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing rules file: %w", err)
	}
	return nil
}

type fileDocument struct {
	path string
}

// NewFileDocument creates a DocumentSource reading the tariff PDF from disk.
func NewFileDocument(path string) port.DocumentSource {
	return &fileDocument{path: path}
}

func (d *fileDocument) Load(_ context.Context) (*port.Attachment, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", d.path, domain.ErrTariffDocumentNotFound)
		}
		return nil, fmt.Errorf("reading tariff document: %w", err)
	}
	return &port.Attachment{Data: data, MimeType: domain.MIMETypePDF, Name: filepath.Base(d.path)}, nil
}
