package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/rebalancer/internal/adapters/notify"
	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/ports"
	"github.com/alejandrodnm/rebalancer/internal/registry"
)

var _ ports.Notifier = (*notify.Console)(nil)

func makeComposition() domain.PortfolioComposition {
	eq := domain.NewLedger()
	eq.Accumulate(domain.RewardSwapFee, 0.0125)
	eq.Accumulate(domain.RewardPENDLE, 0.025).SetToken("arb:0x0c880f6761f1af8d9aa9c466984b80dab9a8c9e8")

	sushi := domain.NewLedger()
	sushi.Accumulate("DPX", 0.02)

	return domain.PortfolioComposition{
		Strategy:   "permanent_portfolio",
		ComputedAt: time.Now(),
		Pools: []domain.PoolLedger{
			{Label: "Equilibria-GDAI", Protocol: "equilibria", Ratio: 0.25, Ledger: eq},
			{Label: "SushSwap-DpxETH", Protocol: "sushiswap", Ratio: 0.25, Ledger: sushi},
		},
	}
}

func TestConsole_Notify_Table(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, n.Notify(context.Background(), []domain.PortfolioComposition{makeComposition()}))

	out := buf.String()
	assert.Contains(t, out, "permanent_portfolio")
	assert.Contains(t, out, "Equilibria-GDAI")
	assert.Contains(t, out, "SushSwap-DpxETH")
	assert.Contains(t, out, "1.25%")
	assert.Contains(t, out, "2.50%")
	assert.Contains(t, out, "arb:0x0c88...c9e8")
	assert.Contains(t, out, "TOTAL APR 5.75%")
}

func TestConsole_Notify_Compact(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	require.NoError(t, n.Notify(context.Background(), []domain.PortfolioComposition{makeComposition()}))

	out := buf.String()
	assert.Contains(t, out, "permanent_portfolio total:5.75%")
	assert.Contains(t, out, "| Equilibria-GDAI 3.75%")
	assert.Contains(t, out, "| SushSwap-DpxETH 2.00%")
}

func TestConsole_Notify_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, n.Notify(context.Background(), nil))
	assert.Contains(t, buf.String(), "no compositions")
}

func TestConsole_PrintHistory(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	first := makeComposition()
	second := makeComposition()
	second.Pools[1].Ledger.Accumulate("DPX", 0.01)

	n.PrintHistory("permanent_portfolio", []domain.PortfolioComposition{first, second})

	out := buf.String()
	assert.Contains(t, out, "2 snapshots")
	assert.Contains(t, out, "6.75%")
	assert.Contains(t, out, "1.00%")

	buf.Reset()
	n.PrintHistory("permanent_portfolio", nil)
	assert.Contains(t, buf.String(), "no history for permanent_portfolio")
}

func TestConsole_PrintPositions(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	reg, err := registry.New(registry.DefaultParams(), registry.Table{
		Name: "test",
		Entries: []registry.Entry{{ID: "0xabc", Meta: domain.PositionMetadata{
			Categories:  []domain.AssetCategory{domain.Gold},
			Symbol:      "PAXG",
			Project:     "uniswap-v3",
			Composition: map[string]float64{"paxg": 1},
			Yield:       domain.StaticDefault{APR: 0.1},
		}}},
	})
	require.NoError(t, err)

	n.PrintPositions(reg, []domain.PositionYield{{PositionID: "0xabc", APR: 0.1, DiscountFactor: 0.5, Source: domain.KindStaticDefault}})

	out := buf.String()
	assert.Contains(t, out, "1/1 resolved")
	assert.Contains(t, out, "PAXG")
	assert.Contains(t, out, "10.00%")
	assert.Contains(t, out, "5.00%")
}
