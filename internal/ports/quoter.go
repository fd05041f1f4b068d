package ports

import "context"

// Cotizaciones de un solo valor. Los resuelve composition.Resolver según el
// tipo de domain.LiveQuote de cada posición; todos devuelven APR simple.

// PoolTokenQuoter: APR de un pool de Equilibria identificado por su token.
type PoolTokenQuoter interface {
	PoolTokenAPR(ctx context.Context, chainID, token string) (float64, error)
}

// EPendleQuoter: APR del staking de ePENDLE en Equilibria.
type EPendleQuoter interface {
	EPendleAPR(ctx context.Context, chainID string) (float64, error)
}

// PairQuoter: APR de un par de Equilibre por símbolo.
type PairQuoter interface {
	PairAPR(ctx context.Context, symbol string) (float64, error)
}

// LockedCVXQuoter: APR de CVX bloqueado (vlCVX) en Convex.
type LockedCVXQuoter interface {
	LockedCVXAPR(ctx context.Context) (float64, error)
}

// HypervisorQuoter: APR de un hypervisor de Quickswap (fees + farm).
type HypervisorQuoter interface {
	HypervisorAPR(ctx context.Context, pool string) (float64, error)
}

// PoolYieldQuoter: APR de un pool de la API de yields de DefiLlama.
type PoolYieldQuoter interface {
	PoolAPR(ctx context.Context, poolID string) (float64, error)
}
