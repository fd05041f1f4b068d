// Package equilibria lee el chain-info-map de Equilibria (booster de Pendle)
// y lo traduce a ledgers de APR por categoría de reward.
package equilibria

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/alejandrodnm/rebalancer/internal/adapters/upstream"
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

const (
	// Source es el nombre de la fuente en errores, logs y métricas.
	Source = "equilibria"
	// DefaultBaseURL es la API pública de Equilibria.
	DefaultBaseURL = "https://equilibria.fi"

	chainInfoPath = "/api/chain-info-map"
)

// rewardTokens son los tokens PENDLE y EQB de cada chain, indexados por chain ID.
var rewardTokens = map[string]struct{ pendle, eqb string }{
	domain.Arbitrum.ID: {
		pendle: "0x0c880f6761F1af8d9Aa9C466984b80DAb9a8c9e8",
		eqb:    "0xBfbCFe8873fE28Dfa25f1099282b088D52bbAD9C",
	},
}

// Adapter implementa ports.BreakdownFetcher, ports.PoolTokenQuoter y ports.EPendleQuoter.
type Adapter struct {
	client    *upstream.Client
	normalize domain.Normalizer
}

// New crea el adapter. Equilibria reporta APY: normalize los pasa a APR.
func New(client *upstream.Client, normalize domain.Normalizer) *Adapter {
	return &Adapter{client: client, normalize: normalize}
}

// FetchBreakdown compone el ledger de un market de Pendle:
//
//	Swap Fee       ← marketInfo.swapFeeApy
//	Underlying APY ← marketInfo.underlyingApy + marketInfo.lpRewardApy
//	PENDLE         ← marketInfo.pendleApy + (pendleBoostedApy − pendleApy + pendleBaseBoostableApy)
//	EQB            ← eqbApy
//
// Cada valor se normaliza y se escala por ratio antes de acumularse.
func (a *Adapter) FetchBreakdown(ctx context.Context, sel domain.PoolSelector, ratio float64) (domain.Ledger, error) {
	tokens, ok := rewardTokens[sel.Chain.ID]
	if !ok {
		return nil, fmt.Errorf("equilibria.FetchBreakdown: no reward tokens for chain %s", sel.Chain.ID)
	}

	chain, err := a.chainInfo(ctx, sel.Chain.ID)
	if err != nil {
		return nil, fmt.Errorf("equilibria.FetchBreakdown: %w", err)
	}

	pool, err := a.findMarket(chain, sel.Address)
	if err != nil {
		return nil, fmt.Errorf("equilibria.FetchBreakdown: %w", err)
	}

	// Se leen todos los campos antes de tocar el ledger: todo o nada
	f := fields{pool: pool}
	swapFee := f.number("marketInfo.swapFeeApy")
	underlying := f.number("marketInfo.underlyingApy")
	lpReward := f.number("marketInfo.lpRewardApy")
	pendle := f.number("marketInfo.pendleApy")
	boosted := f.number("pendleBoostedApy")
	topPendle := f.number("pendleApy")
	baseBoostable := f.number("pendleBaseBoostableApy")
	eqb := f.number("eqbApy")
	underlyingTokens := f.underlyingTokens(sel.Chain)
	if f.err != nil {
		return nil, fmt.Errorf("equilibria.FetchBreakdown: market %s: %w", sel.Address, a.shapeError(f.err))
	}

	// Sin campos de boost el pool no tiene boost: PENDLE es solo marketInfo.pendleApy
	var boostDelta float64
	if boosted != 0 || baseBoostable != 0 {
		boostDelta = boosted - topPendle + baseBoostable
	}
	if boostDelta < 0 {
		slog.Warn("equilibria negative PENDLE boost delta",
			"market", sel.Address,
			"boosted", boosted,
			"pendle", topPendle,
			"base_boostable", baseBoostable,
		)
	}

	scaled := func(v float64) float64 { return domain.ScaledAPR(a.normalize, v, ratio) }

	ledger := domain.NewLedger()
	ledger.Accumulate(domain.RewardSwapFee, scaled(swapFee))

	ledger.Accumulate(domain.RewardUnderlyingAPY, scaled(underlying))
	ledger.Accumulate(domain.RewardUnderlyingAPY, scaled(lpReward)).AppendTokens(underlyingTokens...)

	ledger.Accumulate(domain.RewardPENDLE, scaled(pendle))
	ledger.Accumulate(domain.RewardPENDLE, scaled(boostDelta)).SetToken(domain.NewTokenID(sel.Chain, tokens.pendle))

	ledger.Accumulate(domain.RewardEQB, scaled(eqb)).SetToken(domain.NewTokenID(sel.Chain, tokens.eqb))

	slog.Debug("equilibria breakdown",
		"market", sel.Address,
		"ratio", ratio,
		"total_apr", ledger.TotalAPR(),
	)
	return ledger, nil
}

// PoolTokenAPR devuelve el APR de un pool de Equilibria identificado por su token
// de depósito (poolInfos[].token).
func (a *Adapter) PoolTokenAPR(ctx context.Context, chainID, token string) (float64, error) {
	chain, err := a.chainInfo(ctx, chainID)
	if err != nil {
		return 0, fmt.Errorf("equilibria.PoolTokenAPR: %w", err)
	}

	var (
		apy   gjson.Result
		found bool
	)
	chain.Get("poolInfos").ForEach(func(_, pool gjson.Result) bool {
		if strings.EqualFold(pool.Get("token").String(), token) {
			apy, found = pool.Get("apy"), true
			return false
		}
		return true
	})
	if !found {
		return 0, &domain.UpstreamNotFoundError{Source: Source, ID: token}
	}
	if apy.Type != gjson.Number {
		return 0, fmt.Errorf("equilibria.PoolTokenAPR: pool %s: %w", token, a.shapeError(fmt.Errorf("missing numeric field apy")))
	}
	return a.normalize.ToSimpleRate(apy.Float()), nil
}

// EPendleAPR devuelve el APR del staking de ePENDLE.
func (a *Adapter) EPendleAPR(ctx context.Context, chainID string) (float64, error) {
	chain, err := a.chainInfo(ctx, chainID)
	if err != nil {
		return 0, fmt.Errorf("equilibria.EPendleAPR: %w", err)
	}
	apy := chain.Get("ePendle.apy")
	if apy.Type != gjson.Number {
		return 0, fmt.Errorf("equilibria.EPendleAPR: %w", a.shapeError(fmt.Errorf("missing numeric field ePendle.apy")))
	}
	return a.normalize.ToSimpleRate(apy.Float()), nil
}

// chainInfo descarga el chain-info-map y devuelve la sección de la chain.
// El documento pasa por el cache del client: los cuatro legs de un portfolio
// y las cotizaciones comparten una sola descarga.
func (a *Adapter) chainInfo(ctx context.Context, chainID string) (gjson.Result, error) {
	raw, err := a.client.GetRaw(ctx, chainInfoPath)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, a.shapeError(fmt.Errorf("invalid JSON document"))
	}
	chain := gjson.GetBytes(raw, chainID)
	if !chain.IsObject() {
		return gjson.Result{}, &domain.UpstreamNotFoundError{Source: Source, ID: "chain " + chainID}
	}
	return chain, nil
}

// findMarket busca el pool activo del market. Si hay varios, gana el primero
// en el orden del documento.
func (a *Adapter) findMarket(chain gjson.Result, market string) (gjson.Result, error) {
	pools := chain.Get("poolInfos")
	if !pools.IsArray() {
		return gjson.Result{}, a.shapeError(fmt.Errorf("missing poolInfos array"))
	}

	var matches []gjson.Result
	pools.ForEach(func(_, pool gjson.Result) bool {
		if strings.EqualFold(pool.Get("market").String(), market) && pool.Get("shutdown").Type == gjson.False {
			matches = append(matches, pool)
		}
		return true
	})

	switch len(matches) {
	case 0:
		return gjson.Result{}, &domain.UpstreamNotFoundError{Source: Source, ID: market}
	case 1:
	default:
		slog.Warn("equilibria market has several active pools, using the first",
			"market", market,
			"matches", len(matches),
			"pid", matches[0].Get("pid").Int(),
		)
	}
	return matches[0], nil
}

func (a *Adapter) shapeError(err error) error {
	return &domain.UpstreamFetchError{Source: Source, Err: err}
}

// fields lee campos de un pool guardando el primer error.
type fields struct {
	pool gjson.Result
	err  error
}

func (f *fields) number(path string) float64 {
	if f.err != nil {
		return 0
	}
	v := f.pool.Get(path)
	if v.Type != gjson.Number {
		f.err = fmt.Errorf("missing numeric field %s", path)
		return 0
	}
	return v.Float()
}

// underlyingTokens: tokens de reward del underlying en orden y al final el
// asset base del market.
func (f *fields) underlyingTokens(chain domain.Chain) []domain.TokenID {
	if f.err != nil {
		return nil
	}
	breakdown := f.pool.Get("marketInfo.underlyingRewardApyBreakdown")
	if !breakdown.IsArray() {
		f.err = fmt.Errorf("missing marketInfo.underlyingRewardApyBreakdown array")
		return nil
	}

	var ids []domain.TokenID
	breakdown.ForEach(func(_, reward gjson.Result) bool {
		addr := reward.Get("asset.address")
		if addr.Type != gjson.String {
			f.err = fmt.Errorf("missing asset.address in underlyingRewardApyBreakdown")
			return false
		}
		ids = append(ids, domain.NewTokenID(chain, addr.String()))
		return true
	})
	if f.err != nil {
		return nil
	}

	base := f.pool.Get("marketInfo.basePricingAsset.address")
	if base.Type != gjson.String {
		f.err = fmt.Errorf("missing marketInfo.basePricingAsset.address")
		return nil
	}
	return append(ids, domain.NewTokenID(chain, base.String()))
}
