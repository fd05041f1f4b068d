package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/rebalancer/internal/domain"
)

// Storage persiste las composiciones calculadas en cada ciclo.
// Son copias para histórico: el core nunca las lee como input.
type Storage interface {
	// SaveComposition persiste una composición con todos sus pools y categorías.
	SaveComposition(ctx context.Context, pc domain.PortfolioComposition) error

	// GetHistory devuelve las composiciones de la estrategia en el rango dado,
	// ordenadas por fecha de cálculo.
	GetHistory(ctx context.Context, strategy string, from, to time.Time) ([]domain.PortfolioComposition, error)

	// Latest devuelve la última composición guardada de la estrategia.
	// Si no hay ninguna devuelve *domain.NotFoundError.
	Latest(ctx context.Context, strategy string) (domain.PortfolioComposition, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
