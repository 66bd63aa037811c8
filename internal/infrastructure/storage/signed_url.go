package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rafabene/gamehub-backend/internal/domain/ports"
)

// SignedURLStore implementa ports.BlobStore gerando URLs assinadas com
// HMAC e validade limitada. O conteúdo em si é servido pelo blob store
// externo que compartilha a chave de assinatura.
type SignedURLStore struct {
	baseURL    string
	signingKey []byte
}

// NewSignedURLStore cria um novo SignedURLStore
func NewSignedURLStore(baseURL, signingKey string) ports.BlobStore {
	return &SignedURLStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		signingKey: []byte(signingKey),
	}
}

// SignedURL retorna uma URL com expiração e assinatura HMAC-SHA256
// sobre caminho + expiração
func (s *SignedURLStore) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	if path == "" {
		return "", fmt.Errorf("blob path is empty")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	expires := time.Now().UTC().Add(ttl).Unix()
	signature := s.sign(path, expires)

	query := url.Values{}
	query.Set("expires", strconv.FormatInt(expires, 10))
	query.Set("signature", signature)

	return fmt.Sprintf("%s/%s?%s", s.baseURL, strings.TrimLeft(path, "/"), query.Encode()), nil
}

func (s *SignedURLStore) sign(path string, expires int64) string {
	mac := hmac.New(sha256.New, s.signingKey)
	fmt.Fprintf(mac, "%s:%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
