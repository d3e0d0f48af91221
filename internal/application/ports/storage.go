package ports

import (
	"context"
	"io"
	"time"
)

// ObjectStorage armazenamento de arquivos (S3 ou compatível).
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
