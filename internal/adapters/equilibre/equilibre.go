// Package equilibre cotiza el APR de los pares de Equilibre (DEX en Kava).
package equilibre

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/rebalancer/internal/adapters/upstream"
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

const (
	// Source es el nombre de la fuente en errores, logs y métricas.
	Source = "equilibre"
	// DefaultBaseURL es la API pública de Equilibre.
	DefaultBaseURL = "https://api.equilibrefinance.com"

	pairsPath = "/api/v1/pairs"
)

// Adapter implementa ports.PairQuoter.
type Adapter struct {
	client *upstream.Client
}

// New crea el adapter.
func New(client *upstream.Client) *Adapter {
	return &Adapter{client: client}
}

type pairsResponse struct {
	Data *[]pair `json:"data"`
}

type pair struct {
	Symbol string   `json:"symbol"`
	APR    *float64 `json:"apr"`
}

// PairAPR devuelve el APR del par con el símbolo dado ("vAMM-WKAVA/multiETH").
// La API lo reporta en porcentaje.
func (a *Adapter) PairAPR(ctx context.Context, symbol string) (float64, error) {
	var resp pairsResponse
	if err := a.client.GetJSON(ctx, pairsPath, &resp); err != nil {
		return 0, fmt.Errorf("equilibre.PairAPR: %w", err)
	}
	if resp.Data == nil {
		return 0, fmt.Errorf("equilibre.PairAPR: %w", &domain.UpstreamFetchError{Source: Source, Err: fmt.Errorf("missing field data")})
	}

	for _, p := range *resp.Data {
		if p.Symbol != symbol {
			continue
		}
		if p.APR == nil {
			return 0, fmt.Errorf("equilibre.PairAPR: pair %s: %w", symbol, &domain.UpstreamFetchError{Source: Source, Err: fmt.Errorf("missing field apr")})
		}
		return *p.APR / 100, nil
	}
	return 0, &domain.UpstreamNotFoundError{Source: Source, ID: symbol}
}
