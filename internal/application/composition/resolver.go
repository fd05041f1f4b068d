package composition

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/ports"
)

// Quoters agrupa los adapters que resuelven los yields en vivo. Un campo nil
// hace fallar solo a las posiciones que lo necesitan.
type Quoters struct {
	PoolToken  ports.PoolTokenQuoter
	EPendle    ports.EPendleQuoter
	Pair       ports.PairQuoter
	LockedCVX  ports.LockedCVXQuoter
	Hypervisor ports.HypervisorQuoter
	PoolYield  ports.PoolYieldQuoter
}

// Resolver calcula el APR de una posición del registry según su fuente de yield.
// Las cotizaciones en vivo se piden en el momento, nunca al construir el registry.
type Resolver struct {
	q Quoters
}

// NewResolver crea un Resolver.
func NewResolver(q Quoters) *Resolver {
	return &Resolver{q: q}
}

// ResolveAPR devuelve el APR crudo de la posición junto con su descuento.
func (r *Resolver) ResolveAPR(ctx context.Context, meta domain.PositionMetadata) (domain.PositionYield, error) {
	if meta.Yield == nil {
		return domain.PositionYield{}, fmt.Errorf("composition.ResolveAPR: %s has no yield source", meta.ID)
	}

	var (
		apr float64
		err error
	)
	switch y := meta.Yield.(type) {
	case domain.Precomputed:
		apr = y.APR
	case domain.StaticDefault:
		apr = y.APR
	case domain.ExternalLookup:
		if r.q.PoolYield == nil {
			return domain.PositionYield{}, fmt.Errorf("composition.ResolveAPR: %s: no pool yield quoter configured", meta.ID)
		}
		apr, err = r.q.PoolYield.PoolAPR(ctx, y.PoolID)
	case domain.LiveQuote:
		apr, err = r.quote(ctx, y)
	default:
		return domain.PositionYield{}, fmt.Errorf("composition.ResolveAPR: %s: unknown yield source %T", meta.ID, meta.Yield)
	}
	if err != nil {
		return domain.PositionYield{}, fmt.Errorf("composition.ResolveAPR: %s: %w", meta.ID, err)
	}

	discount := meta.DiscountFactor
	if discount == 0 {
		discount = 1
	}
	return domain.PositionYield{
		PositionID:     meta.ID,
		APR:            apr,
		DiscountFactor: discount,
		Source:         meta.Yield.Kind(),
	}, nil
}

func (r *Resolver) quote(ctx context.Context, q domain.LiveQuote) (float64, error) {
	switch q.Quote {
	case domain.QuoteEquilibriaPool:
		if r.q.PoolToken != nil {
			return r.q.PoolToken.PoolTokenAPR(ctx, q.Chain.ID, q.Ref)
		}
	case domain.QuoteEquilibriaEPendle:
		if r.q.EPendle != nil {
			return r.q.EPendle.EPendleAPR(ctx, q.Chain.ID)
		}
	case domain.QuoteEquilibrePair:
		if r.q.Pair != nil {
			return r.q.Pair.PairAPR(ctx, q.Ref)
		}
	case domain.QuoteConvexLockedCVX:
		if r.q.LockedCVX != nil {
			return r.q.LockedCVX.LockedCVXAPR(ctx)
		}
	case domain.QuoteQuickswapPool:
		if r.q.Hypervisor != nil {
			return r.q.Hypervisor.HypervisorAPR(ctx, q.Ref)
		}
	default:
		return 0, fmt.Errorf("unknown quote kind %q", q.Quote)
	}
	return 0, fmt.Errorf("no quoter configured for %s", q.Quote)
}
