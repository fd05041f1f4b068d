// Package quickswap cotiza el APR de los hypervisors de Gamma en Quickswap
// (Polygon): fee APR diario del hypervisor más el APR de su farm.
package quickswap

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/alejandrodnm/rebalancer/internal/adapters/upstream"
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

const (
	// Source es el nombre de la fuente en errores, logs y métricas.
	Source = "quickswap"
	// DefaultBaseURL es la API de Gamma que indexa Quickswap.
	DefaultBaseURL = "https://wire2.gamma.xyz"

	hypervisorsPath = "/quickswap/polygon/hypervisors/allData"
	rewardsPath     = "/quickswap/polygon/allRewards2"
)

// Adapter implementa ports.HypervisorQuoter.
type Adapter struct {
	client *upstream.Client
}

// New crea el adapter.
func New(client *upstream.Client) *Adapter {
	return &Adapter{client: client}
}

// HypervisorAPR devuelve feeApr diario del hypervisor + apr del pool en su farm.
// Ambos documentos están indexados por dirección; el match ignora mayúsculas.
func (a *Adapter) HypervisorAPR(ctx context.Context, pool string) (float64, error) {
	rewards, err := a.document(ctx, rewardsPath)
	if err != nil {
		return 0, fmt.Errorf("quickswap.HypervisorAPR: %w", err)
	}

	var farmPool gjson.Result
	rewards.ForEach(func(_, farm gjson.Result) bool {
		farm.Get("pools").ForEach(func(addr, p gjson.Result) bool {
			if strings.EqualFold(addr.String(), pool) {
				farmPool = p
				return false
			}
			return true
		})
		return !farmPool.Exists()
	})
	if !farmPool.Exists() {
		return 0, &domain.UpstreamNotFoundError{Source: Source, ID: pool}
	}

	hypervisors, err := a.document(ctx, hypervisorsPath)
	if err != nil {
		return 0, fmt.Errorf("quickswap.HypervisorAPR: %w", err)
	}

	var hypervisor gjson.Result
	hypervisors.ForEach(func(addr, h gjson.Result) bool {
		if strings.EqualFold(addr.String(), pool) {
			hypervisor = h
			return false
		}
		return true
	})
	if !hypervisor.Exists() {
		return 0, &domain.UpstreamNotFoundError{Source: Source, ID: pool}
	}

	feeAPR := hypervisor.Get("returns.daily.feeApr")
	farmAPR := farmPool.Get("apr")
	if feeAPR.Type != gjson.Number || farmAPR.Type != gjson.Number {
		return 0, fmt.Errorf("quickswap.HypervisorAPR: pool %s: %w", pool,
			&domain.UpstreamFetchError{Source: Source, Err: fmt.Errorf("missing returns.daily.feeApr or farm apr")})
	}
	return feeAPR.Float() + farmAPR.Float(), nil
}

func (a *Adapter) document(ctx context.Context, path string) (gjson.Result, error) {
	raw, err := a.client.GetRaw(ctx, path)
	if err != nil {
		return gjson.Result{}, err
	}
	doc := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !doc.IsObject() {
		return gjson.Result{}, &domain.UpstreamFetchError{Source: Source, Err: fmt.Errorf("%s: expected a JSON object", path)}
	}
	return doc, nil
}
