// Package convex cotiza el APR de CVX bloqueado (vlCVX).
package convex

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/rebalancer/internal/adapters/upstream"
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

const (
	// Source es el nombre de la fuente en errores, logs y métricas.
	Source = "convex"
	// DefaultBaseURL es la web de Convex, que expone la API.
	DefaultBaseURL = "https://www.convexfinance.com"

	lockedCVXPath = "/api/cvx/vlcvx-extra-incentives"
)

// Adapter implementa ports.LockedCVXQuoter.
type Adapter struct {
	client *upstream.Client
}

// New crea el adapter.
func New(client *upstream.Client) *Adapter {
	return &Adapter{client: client}
}

// LockedCVXAPR devuelve el APR de vlCVX. La API lo reporta en porcentaje.
func (a *Adapter) LockedCVXAPR(ctx context.Context) (float64, error) {
	var resp struct {
		CvxApr *float64 `json:"cvxApr"`
	}
	if err := a.client.GetJSON(ctx, lockedCVXPath, &resp); err != nil {
		return 0, fmt.Errorf("convex.LockedCVXAPR: %w", err)
	}
	if resp.CvxApr == nil {
		return 0, fmt.Errorf("convex.LockedCVXAPR: %w", &domain.UpstreamFetchError{Source: Source, Err: fmt.Errorf("missing field cvxApr")})
	}
	return *resp.CvxApr / 100, nil
}
