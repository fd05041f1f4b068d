package composition_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/rebalancer/internal/application/composition"
	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/registry"
)

// fakeQuoter implementa todos los quoters y guarda el último argumento recibido.
type fakeQuoter struct {
	apr  float64
	err  error
	last []string
}

func (f *fakeQuoter) record(args ...string) (float64, error) {
	f.last = args
	return f.apr, f.err
}

func (f *fakeQuoter) PoolTokenAPR(_ context.Context, chainID, token string) (float64, error) {
	return f.record("pool-token", chainID, token)
}

func (f *fakeQuoter) EPendleAPR(_ context.Context, chainID string) (float64, error) {
	return f.record("ependle", chainID)
}

func (f *fakeQuoter) PairAPR(_ context.Context, symbol string) (float64, error) {
	return f.record("pair", symbol)
}

func (f *fakeQuoter) LockedCVXAPR(_ context.Context) (float64, error) {
	return f.record("vlcvx")
}

func (f *fakeQuoter) HypervisorAPR(_ context.Context, pool string) (float64, error) {
	return f.record("hypervisor", pool)
}

func (f *fakeQuoter) PoolAPR(_ context.Context, poolID string) (float64, error) {
	return f.record("pool", poolID)
}

func allQuoters(f *fakeQuoter) composition.Quoters {
	return composition.Quoters{PoolToken: f, EPendle: f, Pair: f, LockedCVX: f, Hypervisor: f, PoolYield: f}
}

func TestResolveAPR_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		yield    domain.YieldSource
		wantAPR  float64
		wantArgs []string
	}{
		{"precomputed", domain.Precomputed{APR: 0.11}, 0.11, nil},
		{"static default", domain.StaticDefault{APR: 0.19}, 0.19, nil},
		{"defillama", domain.ExternalLookup{PoolID: "pool-1"}, 0.07, []string{"pool", "pool-1"}},
		{"equilibria pool", domain.LiveQuote{Quote: domain.QuoteEquilibriaPool, Chain: domain.Arbitrum, Ref: "0xabc"}, 0.07, []string{"pool-token", "42161", "0xabc"}},
		{"ependle", domain.LiveQuote{Quote: domain.QuoteEquilibriaEPendle, Chain: domain.Arbitrum}, 0.07, []string{"ependle", "42161"}},
		{"equilibre", domain.LiveQuote{Quote: domain.QuoteEquilibrePair, Ref: "vAMM-WKAVA/multiETH"}, 0.07, []string{"pair", "vAMM-WKAVA/multiETH"}},
		{"vlcvx", domain.LiveQuote{Quote: domain.QuoteConvexLockedCVX}, 0.07, []string{"vlcvx"}},
		{"quickswap", domain.LiveQuote{Quote: domain.QuoteQuickswapPool, Chain: domain.Polygon, Ref: "0x81ce"}, 0.07, []string{"hypervisor", "0x81ce"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeQuoter{apr: 0.07}
			r := composition.NewResolver(allQuoters(f))

			y, err := r.ResolveAPR(context.Background(), domain.PositionMetadata{ID: "0xpos", Yield: tt.yield, DiscountFactor: 0.5})

			require.NoError(t, err)
			assert.InDelta(t, tt.wantAPR, y.APR, 1e-12)
			assert.Equal(t, "0xpos", y.PositionID)
			assert.Equal(t, 0.5, y.DiscountFactor)
			assert.Equal(t, tt.yield.Kind(), y.Source)
			assert.Equal(t, tt.wantArgs, f.last)
		})
	}
}

func TestResolveAPR_MissingQuoter(t *testing.T) {
	r := composition.NewResolver(composition.Quoters{})

	_, err := r.ResolveAPR(context.Background(), domain.PositionMetadata{
		ID:    "0xpos",
		Yield: domain.LiveQuote{Quote: domain.QuoteConvexLockedCVX},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no quoter configured")

	_, err = r.ResolveAPR(context.Background(), domain.PositionMetadata{ID: "0xpos", Yield: domain.ExternalLookup{PoolID: "x"}})
	assert.Error(t, err)

	// las variantes estáticas no necesitan quoter
	y, err := r.ResolveAPR(context.Background(), domain.PositionMetadata{ID: "0xpos", Yield: domain.StaticDefault{APR: 0.2}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, y.DiscountFactor)
}

func TestResolveAPR_PropagatesQuoterError(t *testing.T) {
	f := &fakeQuoter{err: &domain.UpstreamNotFoundError{Source: "equilibre", ID: "vAMM-X/Y"}}
	r := composition.NewResolver(allQuoters(f))

	_, err := r.ResolveAPR(context.Background(), domain.PositionMetadata{
		ID:    "0xpos",
		Yield: domain.LiveQuote{Quote: domain.QuoteEquilibrePair, Ref: "vAMM-X/Y"},
	})
	assert.ErrorIs(t, err, domain.ErrUpstreamNotFound)
	assert.Contains(t, err.Error(), "0xpos")
}

func TestResolveAPR_NoYieldSource(t *testing.T) {
	r := composition.NewResolver(composition.Quoters{})
	_, err := r.ResolveAPR(context.Background(), domain.PositionMetadata{ID: "0xpos"})
	assert.Error(t, err)
}

func TestPositionYields_SkipsFailures(t *testing.T) {
	reg, err := registry.New(registry.DefaultParams(), registry.Table{
		Name: "test",
		Entries: []registry.Entry{
			{ID: "0xaaa", Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.Gold},
				Project:     "uniswap-v3",
				Composition: map[string]float64{"weth": 1},
				Yield:       domain.StaticDefault{APR: 0.1},
			}},
			{ID: "0xbbb", Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.Gold},
				Project:     "convex-finance",
				Composition: map[string]float64{"cvx": 1},
				Yield:       domain.LiveQuote{Quote: domain.QuoteConvexLockedCVX},
			}},
		},
	})
	require.NoError(t, err)

	f := &fakeQuoter{err: errors.New("convex down")}
	yields := composition.PositionYields(context.Background(), reg, composition.NewResolver(allQuoters(f)))

	require.Len(t, yields, 1)
	assert.Equal(t, "0xaaa", yields[0].PositionID)
	assert.Equal(t, 0.5, yields[0].DiscountFactor)
	assert.InDelta(t, 0.05, yields[0].DiscountedAPR(), 1e-12)
}
