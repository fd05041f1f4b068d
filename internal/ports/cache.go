package ports

import (
	"context"
	"time"
)

// DocumentCache guarda respuestas upstream crudas indexadas por URL.
// Un fallo del backend se trata como miss: el cache nunca rompe un fetch.
type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
