package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/katryana/airport-api/config"
)

// ImageStore persists an uploaded airplane image and returns the URL under
// which it can be retrieved.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// New builds the store selected by the config: plain local disk or Aliyun OSS
// layered over it.
func New(cfg config.StorageConfig) (ImageStore, error) {
	local := NewLocalStore(cfg.Dir, cfg.BaseURL)
	switch cfg.Backend {
	case "", "local":
		return local, nil
	case "oss":
		return NewOSSStore(cfg.OSS, local), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// objectName keeps the original extension but randomizes the rest so uploads
// for the same airplane never collide.
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}
