package storage

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestSignedURLStore_SignedURL(t *testing.T) {
	store := NewSignedURLStore("https://blobs.example.com/", "signing-key")

	t.Run("gera URL sob o base URL com expiração e assinatura", func(t *testing.T) {
		signed, err := store.SignedURL(context.Background(), "games/sub-1/index.html", 15*time.Minute)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		parsed, err := url.Parse(signed)
		if err != nil {
			t.Fatalf("URL inválida: %v", err)
		}
		if !strings.HasPrefix(signed, "https://blobs.example.com/games/sub-1/index.html?") {
			t.Errorf("URL fora do base URL: %s", signed)
		}

		expires, err := strconv.ParseInt(parsed.Query().Get("expires"), 10, 64)
		if err != nil {
			t.Fatalf("expires ilegível: %v", err)
		}
		if time.Unix(expires, 0).Before(time.Now()) {
			t.Error("expiração deveria estar no futuro")
		}
		if parsed.Query().Get("signature") == "" {
			t.Error("esperava assinatura presente")
		}
	})

	t.Run("assinatura é determinística para o mesmo caminho e expiração", func(t *testing.T) {
		s := store.(*SignedURLStore)
		if s.sign("games/a", 100) != s.sign("games/a", 100) {
			t.Error("mesma entrada deveria gerar mesma assinatura")
		}
		if s.sign("games/a", 100) == s.sign("games/b", 100) {
			t.Error("caminhos diferentes não deveriam colidir")
		}
		if s.sign("games/a", 100) == s.sign("games/a", 200) {
			t.Error("expirações diferentes não deveriam colidir")
		}
	})

	t.Run("chaves diferentes geram assinaturas diferentes", func(t *testing.T) {
		other := NewSignedURLStore("https://blobs.example.com", "other-key").(*SignedURLStore)
		s := store.(*SignedURLStore)
		if s.sign("games/a", 100) == other.sign("games/a", 100) {
			t.Error("chaves distintas não deveriam gerar a mesma assinatura")
		}
	})

	t.Run("caminho vazio é erro", func(t *testing.T) {
		if _, err := store.SignedURL(context.Background(), "", time.Minute); err == nil {
			t.Error("esperava erro para caminho vazio")
		}
	})
}
