package ports

import (
	"context"
	"time"
)

// BlobStore é o colaborador opaco de armazenamento de binários de jogos
// e thumbnails. O core só conhece caminhos; o upload em si acontece fora.
type BlobStore interface {
	// SignedURL retorna uma URL de acesso com validade limitada
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
