package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyCompounding_RoundTrip(t *testing.T) {
	n := DailyCompounding{}
	apr := n.ToSimpleRate(0.10)

	// Recomponer diariamente debe devolver el APY original
	apy := math.Pow(1+apr/compoundingPeriods, compoundingPeriods) - 1
	assert.InDelta(t, 0.10, apy, 1e-9)
	assert.Less(t, apr, 0.10)
}

func TestDailyCompounding_ZeroAndNegative(t *testing.T) {
	n := DailyCompounding{}
	assert.Equal(t, 0.0, n.ToSimpleRate(0))
	assert.Less(t, n.ToSimpleRate(-0.05), 0.0)
	assert.Equal(t, float64(-compoundingPeriods), n.ToSimpleRate(-1))
	assert.False(t, math.IsNaN(n.ToSimpleRate(-2)))
}

func TestScaledAPR_IsLinearInRatio(t *testing.T) {
	n := DailyCompounding{}
	one := ScaledAPR(n, 0.2, 0.25)
	two := ScaledAPR(n, 0.2, 0.5)
	assert.InDelta(t, 2*one, two, 1e-12)
	assert.InDelta(t, n.ToSimpleRate(0.2)*0.25, one, 1e-12)
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, 0.05, Identity.ToSimpleRate(0.05))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "5.12%", FormatPercent(0.0512))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "-1.50%", FormatPercent(-0.015))
}

func TestErrors_MatchSentinels(t *testing.T) {
	cause := errors.New("connection reset")
	fetch := fmt.Errorf("wrapped: %w", &UpstreamFetchError{Source: "equilibria", Status: 503, Err: cause})
	assert.ErrorIs(t, fetch, ErrUpstreamFetch)
	assert.ErrorIs(t, fetch, cause)
	assert.Contains(t, fetch.Error(), "equilibria")

	assert.ErrorIs(t, &UpstreamNotFoundError{Source: "sushiswap", ID: "0xabc"}, ErrUpstreamNotFound)
	assert.ErrorIs(t, &NotFoundError{ID: "0xabc"}, ErrNotFound)
	assert.ErrorIs(t, &UnsupportedStrategyError{Name: "x"}, ErrUnsupportedStrategy)
	assert.NotErrorIs(t, &NotFoundError{ID: "0xabc"}, ErrUpstreamNotFound)
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0x0c880f6761f1af8d9aa9c466984b80dab9a8c9e8", NormalizeAddress("0x0c880f6761F1af8d9Aa9C466984b80DAb9a8c9e8"))
	// Los ids no-EVM no se tocan
	id := "EA1D43981D5C9A1C4AAEA9C23BB1D4FA126BA9BC7020A25E0AE4AA841EA25DC5"
	assert.Equal(t, id, NormalizeAddress(id))
	assert.Equal(t, "0xunknownaddress", NormalizeAddress("0xunknownaddress"))
}

func TestNormalizePositionID_KeepsIndex(t *testing.T) {
	assert.Equal(t,
		"0x4d32c8ff2facc771ec7efc70d6a8468bc30c26bf:8",
		NormalizePositionID("0x4D32C8FF2fACC771eC7Efc70d6A8468bC30C26bF:8"),
	)
}

func TestNewTokenID(t *testing.T) {
	id := NewTokenID(Arbitrum, "0xBfbCFe8873fE28Dfa25f1099282b088D52bbAD9C")
	assert.Equal(t, TokenID("arb:0xbfbcfe8873fe28dfa25f1099282b088d52bbad9c"), id)
	assert.Equal(t, "arb", id.Chain())

	c, ok := ChainByPrefix("ARB")
	assert.True(t, ok)
	assert.Equal(t, Arbitrum, c)
}
