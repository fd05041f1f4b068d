package ports

import (
	"context"

	"github.com/alejandrodnm/rebalancer/internal/domain"
)

// BreakdownFetcher obtiene el desglose de APR por categoría de reward de un pool.
type BreakdownFetcher interface {
	// FetchBreakdown devuelve un ledger nuevo con cada APR ya escalado por ratio.
	// Es todo-o-nada: ante cualquier error no hay ledger parcial.
	FetchBreakdown(ctx context.Context, sel domain.PoolSelector, ratio float64) (domain.Ledger, error)
}
