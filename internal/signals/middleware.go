package signals

import (
	"context"
	"net/http"
	"strings"

	"outreach_backend/internal/prospects/repository"
	"outreach_backend/platform/httpkit"
	"outreach_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// KeyStore looks up ingest API keys.
type KeyStore interface {
	GetIngestKey(ctx context.Context, id uuid.UUID) (repository.IngestKey, error)
}

// APIKeyAuth authenticates integrations via the X-Api-Key header. Keys have
// the form "key_<uuid>.<secret>"; the secret half is verified against the
// stored bcrypt hash, so a database leak does not expose usable keys.
func APIKeyAuth(store KeyStore, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Api-Key"))
		keyID, secret, ok := splitKey(raw)
		if !ok {
			httpkit.Error(c, http.StatusUnauthorized, "invalid api key", nil)
			c.Abort()
			return
		}

		key, err := store.GetIngestKey(c.Request.Context(), keyID)
		if err != nil {
			httpkit.Error(c, http.StatusUnauthorized, "invalid api key", nil)
			c.Abort()
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(key.SecretHash), []byte(secret)) != nil {
			log.Warn("api key secret mismatch", "key_id", keyID)
			httpkit.Error(c, http.StatusUnauthorized, "invalid api key", nil)
			c.Abort()
			return
		}

		c.Set(httpkit.ContextTenantIDKey, key.TenantID)
		c.Next()
	}
}

func splitKey(raw string) (uuid.UUID, string, bool) {
	const prefix = "key_"
	if !strings.HasPrefix(raw, prefix) {
		return uuid.Nil, "", false
	}

	idPart, secret, found := strings.Cut(raw[len(prefix):], ".")
	if !found || secret == "" {
		return uuid.Nil, "", false
	}

	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, secret, true
}
