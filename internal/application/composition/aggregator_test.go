package composition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/rebalancer/internal/application/composition"
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

func ledger(entries map[string]float64) domain.Ledger {
	l := domain.NewLedger()
	for cat, apr := range entries {
		l.Accumulate(cat, apr)
	}
	return l
}

func TestMerge_SumsByCategory(t *testing.T) {
	a := ledger(map[string]float64{domain.RewardSwapFee: 0.01, domain.RewardPENDLE: 0.02})
	b := ledger(map[string]float64{domain.RewardSwapFee: 0.03, "DPX": 0.04})

	m := composition.Merge(a, b)

	assert.InDelta(t, 0.04, m.APR(domain.RewardSwapFee), 1e-12)
	assert.InDelta(t, 0.02, m.APR(domain.RewardPENDLE), 1e-12)
	assert.InDelta(t, 0.04, m.APR("DPX"), 1e-12)
	assert.InDelta(t, a.TotalAPR()+b.TotalAPR(), m.TotalAPR(), 1e-12)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := ledger(map[string]float64{domain.RewardSwapFee: 0.01})
	a.Entry(domain.RewardSwapFee).AppendTokens("arb:0xaaa")
	b := ledger(map[string]float64{domain.RewardSwapFee: 0.02})
	b.Entry(domain.RewardSwapFee).AppendTokens("arb:0xbbb")

	m := composition.Merge(a, b)
	m.Accumulate(domain.RewardSwapFee, 1)

	assert.InDelta(t, 0.01, a.APR(domain.RewardSwapFee), 1e-12)
	assert.Equal(t, []domain.TokenID{"arb:0xaaa"}, a.Entry(domain.RewardSwapFee).Token.IDs())
	assert.Equal(t, []domain.TokenID{"arb:0xbbb"}, b.Entry(domain.RewardSwapFee).Token.IDs())
}

func TestMerge_TokenRules(t *testing.T) {
	a := domain.NewLedger()
	a.Accumulate(domain.RewardUnderlyingAPY, 0.01).AppendTokens("arb:0x1", "arb:0x2")
	a.Accumulate(domain.RewardPENDLE, 0.01).SetToken("arb:0xpendle-a")
	b := domain.NewLedger()
	b.Accumulate(domain.RewardUnderlyingAPY, 0.01).AppendTokens("arb:0x3")
	b.Accumulate(domain.RewardPENDLE, 0.01).SetToken("arb:0xpendle-b")

	m := composition.Merge(a, b)

	assert.Equal(t, []domain.TokenID{"arb:0x1", "arb:0x2", "arb:0x3"}, m.Entry(domain.RewardUnderlyingAPY).Token.IDs())
	assert.Equal(t, domain.TokenID("arb:0xpendle-b"), m.Entry(domain.RewardPENDLE).Token.Single())
}

func TestMerge_AssociativeAndCommutativeOnAPR(t *testing.T) {
	a := ledger(map[string]float64{domain.RewardSwapFee: 0.011, domain.RewardEQB: 0.003})
	b := ledger(map[string]float64{domain.RewardSwapFee: 0.027, domain.RewardPENDLE: 0.05})
	c := ledger(map[string]float64{domain.RewardPENDLE: 0.013, "DPX": 0.2})

	left := composition.Merge(composition.Merge(a, b), c)
	right := composition.Merge(a, composition.Merge(b, c))
	swapped := composition.Merge(c, b, a)

	require.ElementsMatch(t, left.Categories(), right.Categories())
	for _, cat := range left.Categories() {
		assert.InDelta(t, left.APR(cat), right.APR(cat), 1e-12, cat)
		assert.InDelta(t, left.APR(cat), swapped.APR(cat), 1e-12, cat)
	}
}

func TestMerge_Empty(t *testing.T) {
	m := composition.Merge()
	assert.NotNil(t, m)
	assert.Empty(t, m)

	m = composition.Merge(domain.NewLedger(), nil)
	assert.Empty(t, m)
}

func TestApplyMergeMode(t *testing.T) {
	pc := domain.PortfolioComposition{
		Strategy: "permanent_portfolio",
		Pools: []domain.PoolLedger{
			{Label: "A", Ratio: 0.5, Ledger: ledger(map[string]float64{domain.RewardSwapFee: 0.01})},
			{Label: "B", Ratio: 0.5, Ledger: ledger(map[string]float64{domain.RewardSwapFee: 0.02, "DPX": 0.03})},
		},
	}

	assert.Equal(t, pc, composition.ApplyMergeMode(pc, domain.MergeModePool))

	collapsed := composition.ApplyMergeMode(pc, domain.MergeModeCollapsed)
	require.Len(t, collapsed.Pools, 1)
	assert.Equal(t, "permanent_portfolio", collapsed.Pools[0].Label)
	assert.InDelta(t, 1.0, collapsed.Pools[0].Ratio, 1e-12)
	assert.InDelta(t, 0.03, collapsed.Pools[0].Ledger.APR(domain.RewardSwapFee), 1e-12)
	assert.InDelta(t, pc.TotalAPR(), collapsed.TotalAPR(), 1e-12)
	// el original conserva sus pools
	assert.Len(t, pc.Pools, 2)
}
