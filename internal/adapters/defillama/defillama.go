// Package defillama resuelve APRs contra la API de yields de DefiLlama y
// precios contra su API de coins.
package defillama

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/rebalancer/internal/adapters/upstream"
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

const (
	// Source es el nombre de la fuente de yields.
	Source = "defillama"
	// CoinsSource es el nombre de la fuente de precios.
	CoinsSource = "defillama-coins"

	DefaultYieldsURL = "https://yields.llama.fi"
	DefaultCoinsURL  = "https://coins.llama.fi"

	poolsPath = "/pools"
)

// Adapter implementa ports.PoolYieldQuoter.
type Adapter struct {
	yields    *upstream.Client
	coins     *upstream.Client
	normalize domain.Normalizer
}

// New crea el adapter. coins puede ser nil si no se necesitan precios.
// DefiLlama reporta APY en porcentaje: normalize recibe apy/100.
func New(yields, coins *upstream.Client, normalize domain.Normalizer) *Adapter {
	return &Adapter{yields: yields, coins: coins, normalize: normalize}
}

type poolsResponse struct {
	Status string     `json:"status"`
	Data   *[]poolRow `json:"data"`
}

type poolRow struct {
	Pool    string   `json:"pool"`
	Project string   `json:"project"`
	Symbol  string   `json:"symbol"`
	Chain   string   `json:"chain"`
	APY     *float64 `json:"apy"`
}

// PoolAPR devuelve el APR del pool de DefiLlama con el id dado.
// El documento /pools es grande (miles de pools); conviene que el client tenga cache.
func (a *Adapter) PoolAPR(ctx context.Context, poolID string) (float64, error) {
	var resp poolsResponse
	if err := a.yields.GetJSON(ctx, poolsPath, &resp); err != nil {
		return 0, fmt.Errorf("defillama.PoolAPR: %w", err)
	}
	if resp.Data == nil {
		return 0, fmt.Errorf("defillama.PoolAPR: %w", &domain.UpstreamFetchError{Source: Source, Err: fmt.Errorf("missing field data")})
	}

	for _, row := range *resp.Data {
		if row.Pool != poolID {
			continue
		}
		if row.APY == nil {
			return 0, fmt.Errorf("defillama.PoolAPR: pool %s: %w", poolID, &domain.UpstreamFetchError{Source: Source, Err: fmt.Errorf("missing field apy")})
		}
		return a.normalize.ToSimpleRate(*row.APY / 100), nil
	}
	return 0, &domain.UpstreamNotFoundError{Source: Source, ID: poolID}
}

// Price es el precio actual de un token según DefiLlama.
type Price struct {
	PriceID    string  `json:"price_id"`
	Symbol     string  `json:"symbol"`
	USD        float64 `json:"usd"`
	Timestamp  int64   `json:"timestamp"`
	Confidence float64 `json:"confidence"`
}

type coinsResponse struct {
	Coins map[string]struct {
		Price      *float64 `json:"price"`
		Symbol     string   `json:"symbol"`
		Timestamp  int64    `json:"timestamp"`
		Confidence float64  `json:"confidence"`
	} `json:"coins"`
}

// PriceByCoingeckoID devuelve el precio USD del token con ese id de CoinGecko
// ("ethereum", "convex-crv"...).
func (a *Adapter) PriceByCoingeckoID(ctx context.Context, id string) (Price, error) {
	if a.coins == nil {
		return Price{}, fmt.Errorf("defillama.PriceByCoingeckoID: coins client not configured")
	}

	key := "coingecko:" + id
	var resp coinsResponse
	if err := a.coins.GetJSON(ctx, "/prices/current/"+key, &resp); err != nil {
		return Price{}, fmt.Errorf("defillama.PriceByCoingeckoID: %w", err)
	}

	coin, ok := resp.Coins[key]
	if !ok {
		return Price{}, &domain.UpstreamNotFoundError{Source: CoinsSource, ID: key}
	}
	if coin.Price == nil {
		return Price{}, fmt.Errorf("defillama.PriceByCoingeckoID: %s: %w", key, &domain.UpstreamFetchError{Source: CoinsSource, Err: fmt.Errorf("missing field price")})
	}
	return Price{
		PriceID:    id,
		Symbol:     coin.Symbol,
		USD:        *coin.Price,
		Timestamp:  coin.Timestamp,
		Confidence: coin.Confidence,
	}, nil
}
