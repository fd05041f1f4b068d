package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AccumulateStartsAtZero(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, 0.0, l.APR(RewardSwapFee))

	e := l.Accumulate(RewardSwapFee, 0.01)
	assert.InDelta(t, 0.01, e.APR, 1e-12)

	l.Accumulate(RewardSwapFee, 0.02)
	assert.InDelta(t, 0.03, l.APR(RewardSwapFee), 1e-12)
	assert.Len(t, l, 1)
}

func TestLedger_AccumulateZeroCreatesCategory(t *testing.T) {
	l := NewLedger()
	l.Accumulate(RewardEQB, 0)

	require.NotNil(t, l.Entry(RewardEQB))
	assert.Equal(t, 0.0, l.Entry(RewardEQB).APR)
}

func TestLedger_TotalAndCategories(t *testing.T) {
	l := NewLedger()
	l.Accumulate(RewardSwapFee, 0.01)
	l.Accumulate(RewardPENDLE, 0.02)
	l.Accumulate(RewardUnderlyingAPY, 0.03)

	assert.InDelta(t, 0.06, l.TotalAPR(), 1e-12)
	assert.Equal(t, []string{RewardPENDLE, RewardSwapFee, RewardUnderlyingAPY}, l.Categories())
}

func TestRewardEntry_AppendTokensPromotesScalar(t *testing.T) {
	e := &RewardEntry{}
	e.SetToken("arb:0xaaa")
	e.AppendTokens("arb:0xbbb")

	assert.True(t, e.Token.IsList())
	assert.Equal(t, []TokenID{"arb:0xaaa", "arb:0xbbb"}, e.Token.IDs())
}

func TestRewardEntry_SetTokenLastWriteWins(t *testing.T) {
	e := &RewardEntry{}
	e.SetToken("arb:0xaaa")
	e.SetToken("arb:0xbbb")

	assert.False(t, e.Token.IsList())
	assert.Equal(t, TokenID("arb:0xbbb"), e.Token.Single())
}

func TestLedger_CloneIsDeep(t *testing.T) {
	l := NewLedger()
	l.Accumulate(RewardUnderlyingAPY, 0.01).AppendTokens("arb:0xaaa")

	cp := l.Clone()
	cp.Accumulate(RewardUnderlyingAPY, 0.5).AppendTokens("arb:0xbbb")

	assert.InDelta(t, 0.01, l.APR(RewardUnderlyingAPY), 1e-12)
	assert.Len(t, l.Entry(RewardUnderlyingAPY).Token.IDs(), 1)
}

func TestLedger_JSONShape(t *testing.T) {
	l := NewLedger()
	l.Accumulate(RewardSwapFee, 0.0125)
	l.Accumulate(RewardPENDLE, 0.025).SetToken("arb:0x0c880f6761f1af8d9aa9c466984b80dab9a8c9e8")
	l.Accumulate(RewardUnderlyingAPY, 0.0125).AppendTokens("arb:0xaaa", "arb:0xbbb")

	data, err := json.Marshal(l)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	_, hasToken := raw[RewardSwapFee]["token"]
	assert.False(t, hasToken, "Swap Fee no tiene token")
	assert.Equal(t, "arb:0x0c880f6761f1af8d9aa9c466984b80dab9a8c9e8", raw[RewardPENDLE]["token"])
	assert.Equal(t, []any{"arb:0xaaa", "arb:0xbbb"}, raw[RewardUnderlyingAPY]["token"])

	var back Ledger
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Entry(RewardUnderlyingAPY).Token.IsList())
	assert.Equal(t, l.Entry(RewardPENDLE).Token.Single(), back.Entry(RewardPENDLE).Token.Single())
	assert.True(t, back.Entry(RewardSwapFee).Token.IsZero())
}

func TestPortfolioComposition_JSONKeepsPoolOrder(t *testing.T) {
	a := NewLedger()
	a.Accumulate(RewardSwapFee, 0.01)
	b := NewLedger()
	b.Accumulate(RewardSwapFee, 0.02)

	pc := PortfolioComposition{
		Strategy:   "permanent_portfolio",
		ComputedAt: time.Now(),
		Pools: []PoolLedger{
			{Label: "Zeta", Ratio: 0.5, Ledger: a},
			{Label: "Alpha", Ratio: 0.5, Ledger: b},
		},
	}

	data, err := json.Marshal(pc)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":{"Swap Fee":{"APR":0.01}},"Alpha":{"Swap Fee":{"APR":0.02}}}`, string(data))
	assert.InDelta(t, 0.03, pc.TotalAPR(), 1e-12)
	assert.InDelta(t, 1.0, pc.RatioSum(), 1e-12)
	assert.Equal(t, []string{"Zeta", "Alpha"}, pc.Labels())
}

func TestParseMergeMode(t *testing.T) {
	m, err := ParseMergeMode("")
	require.NoError(t, err)
	assert.Equal(t, MergeModePool, m)

	m, err = ParseMergeMode("collapsed")
	require.NoError(t, err)
	assert.Equal(t, MergeModeCollapsed, m)

	_, err = ParseMergeMode("flat")
	assert.Error(t, err)
}
