// Package cache implementa ports.DocumentCache: en memoria con ristretto
// o compartido entre procesos con Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/alejandrodnm/rebalancer/internal/metrics"
)

// Memory es un cache TTL en proceso. El coste de cada documento es su tamaño
// en bytes, así maxCost acota la memoria usada.
type Memory struct {
	c *ristretto.Cache
}

// NewMemory crea un cache en memoria de hasta maxCost bytes.
func NewMemory(maxCost int64) (*Memory, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		// ~10x el número de documentos esperados; hay pocos y grandes
		NumCounters: 10_000,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache.NewMemory: %w", err)
	}
	return &Memory{c: c}, nil
}

// Get devuelve el documento si está y no ha expirado.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if ok {
		if b, isBytes := v.([]byte); isBytes {
			metrics.ObserveCache("memory", true)
			return b, true
		}
	}
	metrics.ObserveCache("memory", false)
	return nil, false
}

// Set guarda el documento durante ttl. Espera a que ristretto aplique la
// escritura para que el siguiente Get la vea.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if !m.c.SetWithTTL(key, value, int64(len(value)), ttl) {
		return
	}
	m.c.Wait()
}

// Close libera los goroutines internos de ristretto.
func (m *Memory) Close() {
	m.c.Close()
}
