package ports

import (
	"context"

	"github.com/alejandrodnm/rebalancer/internal/domain"
)

// Notifier presenta las composiciones calculadas al usuario.
type Notifier interface {
	// Notify muestra una composición por estrategia.
	// En la implementación de consola, imprime una tabla por pool.
	Notify(ctx context.Context, compositions []domain.PortfolioComposition) error
}
