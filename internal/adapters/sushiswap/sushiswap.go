// Package sushiswap lee la API de pools de Sushi y compone el ledger de un pool
// a partir de sus incentivos y del fee APR de las últimas 24h.
package sushiswap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/rebalancer/internal/adapters/upstream"
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

const (
	// Source es el nombre de la fuente en errores, logs y métricas.
	Source = "sushiswap"
	// DefaultBaseURL es la API pública de pools de Sushi.
	DefaultBaseURL = "https://pools.sushi.com"
)

// Adapter implementa ports.BreakdownFetcher. Sushi ya reporta APR: no se normaliza.
type Adapter struct {
	client *upstream.Client
}

// New crea el adapter.
func New(client *upstream.Client) *Adapter {
	return &Adapter{client: client}
}

// FetchBreakdown compone el ledger del pool:
//   - un incentivo con apr > 0 suma apr × ratio bajo el símbolo de su reward token
//   - "Swap Fee" suma feeApr1d × ratio
func (a *Adapter) FetchBreakdown(ctx context.Context, sel domain.PoolSelector, ratio float64) (domain.Ledger, error) {
	var pool *poolResponse
	path := fmt.Sprintf("/api/v0/%s/%s", sel.Chain.ID, sel.Address)
	if err := a.client.GetJSON(ctx, path, &pool); err != nil {
		return nil, fmt.Errorf("sushiswap.FetchBreakdown: %w", err)
	}
	// La API responde 200 con null para pools que no indexa
	if pool == nil {
		return nil, &domain.UpstreamNotFoundError{Source: Source, ID: sel.String()}
	}
	if err := pool.validate(); err != nil {
		return nil, fmt.Errorf("sushiswap.FetchBreakdown: pool %s: %w", sel.Address, &domain.UpstreamFetchError{Source: Source, Err: err})
	}

	ledger := domain.NewLedger()
	for _, inc := range *pool.Incentives {
		if *inc.APR <= 0 {
			continue
		}
		ledger.Accumulate(inc.RewardToken.Symbol, *inc.APR*ratio).
			SetToken(domain.NewTokenID(sel.Chain, inc.RewardToken.Address))
	}
	ledger.Accumulate(domain.RewardSwapFee, *pool.FeeApr1d*ratio)

	slog.Debug("sushiswap breakdown",
		"pool", sel.Address,
		"ratio", ratio,
		"categories", len(ledger),
		"total_apr", ledger.TotalAPR(),
	)
	return ledger, nil
}
