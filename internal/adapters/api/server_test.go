package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/rebalancer/internal/adapters/api"
	"github.com/alejandrodnm/rebalancer/internal/adapters/defillama"
	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/registry"
)

type fakeComposer struct {
	err      error
	lastMode domain.MergeMode
}

func (f *fakeComposer) ComposeWithMode(_ context.Context, name string, mode domain.MergeMode) (domain.PortfolioComposition, error) {
	f.lastMode = mode
	if f.err != nil {
		return domain.PortfolioComposition{}, f.err
	}
	if name != "permanent_portfolio" {
		return domain.PortfolioComposition{}, &domain.UnsupportedStrategyError{Name: name}
	}
	l := domain.NewLedger()
	l.Accumulate(domain.RewardSwapFee, 0.0125)
	l.Accumulate(domain.RewardPENDLE, 0.025).SetToken("arb:0x0c880f6761f1af8d9aa9c466984b80dab9a8c9e8")
	return domain.PortfolioComposition{
		Strategy:   name,
		ComputedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Pools:      []domain.PoolLedger{{Label: "Equilibria-GDAI", Ratio: 0.25, Ledger: l}},
	}, nil
}

func (f *fakeComposer) Strategies() []string { return []string{"permanent_portfolio"} }

// Equilibria-RETH en la tabla de DeBank
const rethPosition = "0x4d32c8ff2facc771ec7efc70d6a8468bc30c26bf:8"

type fakeResolver struct{ err error }

func (f fakeResolver) ResolveAPR(_ context.Context, meta domain.PositionMetadata) (domain.PositionYield, error) {
	if f.err != nil {
		return domain.PositionYield{}, f.err
	}
	return domain.PositionYield{PositionID: meta.ID, APR: 0.1, DiscountFactor: meta.DiscountFactor, Source: meta.Yield.Kind()}, nil
}

type fakePrices struct{ lastID string }

func (f *fakePrices) PriceByCoingeckoID(_ context.Context, id string) (defillama.Price, error) {
	f.lastID = id
	return defillama.Price{PriceID: id, Symbol: "ETH", USD: 2500, Confidence: 0.99}, nil
}

type fakeStorage struct{ history []domain.PortfolioComposition }

func (f *fakeStorage) SaveComposition(context.Context, domain.PortfolioComposition) error { return nil }

func (f *fakeStorage) GetHistory(_ context.Context, strategy string, from, to time.Time) ([]domain.PortfolioComposition, error) {
	return f.history, nil
}

func (f *fakeStorage) Latest(_ context.Context, strategy string) (domain.PortfolioComposition, error) {
	return domain.PortfolioComposition{}, &domain.NotFoundError{ID: strategy}
}

func (f *fakeStorage) Close() error { return nil }

type fixture struct {
	composer *fakeComposer
	prices   *fakePrices
	storage  *fakeStorage
	srv      *httptest.Server
}

func newFixture(t *testing.T, resolver api.APRResolver) *fixture {
	t.Helper()
	reg, err := registry.Default()
	require.NoError(t, err)

	if resolver == nil {
		resolver = fakeResolver{}
	}
	f := &fixture{composer: &fakeComposer{}, prices: &fakePrices{}, storage: &fakeStorage{}}
	s := api.NewServer(api.Config{}, api.Deps{
		Composer: f.composer,
		Registry: reg,
		Resolver: resolver,
		Prices:   f.prices,
		Storage:  f.storage,
	})
	f.srv = httptest.NewServer(s.Handler())
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	resp, body := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 46, body["positions"])
}

func TestComposition_PoolScoped(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.get(t, "/v1/compositions/permanent_portfolio")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.MergeModePool, f.composer.lastMode)
	gdai, ok := body["Equilibria-GDAI"].(map[string]any)
	require.True(t, ok)
	pendle := gdai["PENDLE"].(map[string]any)
	assert.InDelta(t, 0.025, pendle["APR"], 1e-12)
	assert.Equal(t, "arb:0x0c880f6761f1af8d9aa9c466984b80dab9a8c9e8", pendle["token"])
	assert.NotContains(t, gdai["Swap Fee"], "token")
	assert.Equal(t, "2026-10-19T12:00:00Z", resp.Header.Get("X-Computed-At"))
}

func TestComposition_MergeModeParam(t *testing.T) {
	f := newFixture(t, nil)

	resp, _ := f.get(t, "/v1/compositions/permanent_portfolio?merge=collapsed")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.MergeModeCollapsed, f.composer.lastMode)

	resp, body := f.get(t, "/v1/compositions/permanent_portfolio?merge=weird")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, api.ErrCodeInvalidInput, errorCode(body))
}

func TestComposition_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"fetch", &domain.UpstreamFetchError{Source: "equilibria", Status: 503}, http.StatusBadGateway, api.ErrCodeUpstreamFailed},
		{"upstream not found", &domain.UpstreamNotFoundError{Source: "equilibria", ID: "0x1"}, http.StatusNotFound, api.ErrCodeNotFound},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, api.ErrCodeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.composer.err = tt.err

			resp, body := f.get(t, "/v1/compositions/permanent_portfolio")

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, errorCode(body))
		})
	}
}

func TestComposition_UnknownStrategy(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.get(t, "/v1/compositions/all_weather")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, api.ErrCodeUnsupportedStrategy, errorCode(body))
	assert.Contains(t, body["error"].(map[string]any)["message"], "portfolio all_weather is not implemented")
}

func TestPosition(t *testing.T) {
	f := newFixture(t, nil)

	// dirección checksummed: se normaliza antes del lookup
	resp, body := f.get(t, "/v1/positions/0x4D32C8Ff2fACC771eC7Efc70d6A8468bC30C26bF:8")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, rethPosition, body["id"])

	resp, body = f.get(t, "/v1/positions/0xunknownaddress")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, api.ErrCodeNotFound, errorCode(body))
}

func TestPositions_ByProjectSymbol(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.get(t, "/v1/positions?project=gains-network&symbol=DAI")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0x673cf5ab7b44caac43c80de5b99a37ed5b3e4cc6", body["id"])

	resp, _ = f.get(t, "/v1/positions?project=nope&symbol=DAI")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPositions_List(t *testing.T) {
	f := newFixture(t, nil)

	resp, err := http.Get(f.srv.URL + "/v1/positions?project=radiant")
	require.NoError(t, err)
	defer resp.Body.Close()

	// Yield es una interfaz: se decodifica como map
	var raw []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, raw)
	for _, p := range raw {
		assert.Equal(t, "radiant", p["project"])
	}
}

func TestPositionAPR(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.get(t, "/v1/positions/"+rethPosition+"/apr")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, rethPosition, body["position_id"])
	assert.InDelta(t, 0.1, body["apr"], 1e-12)
	assert.Equal(t, "10.00%", body["apr_pct"])
	assert.Equal(t, string(domain.KindLiveQuote), body["source"])
}

func TestPositionAPR_UpstreamFailure(t *testing.T) {
	f := newFixture(t, fakeResolver{err: &domain.UpstreamFetchError{Source: "equilibria", Status: 500}})

	resp, body := f.get(t, "/v1/positions/"+rethPosition+"/apr")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, api.ErrCodeUpstreamFailed, errorCode(body))
}

func TestPrice(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.get(t, "/v1/prices/WETH")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ethereum", f.prices.lastID)
	assert.InDelta(t, 2500, body["usd"], 1e-9)

	resp, body = f.get(t, "/v1/prices/NOPE")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, api.ErrCodeNotFound, errorCode(body))
}

func TestHistory(t *testing.T) {
	f := newFixture(t, nil)
	l := domain.NewLedger()
	l.Accumulate(domain.RewardSwapFee, 0.02)
	f.storage.history = []domain.PortfolioComposition{{
		ID:         "abc",
		Strategy:   "permanent_portfolio",
		ComputedAt: time.Now().UTC(),
		Pools:      []domain.PoolLedger{{Label: "Equilibria-GDAI", Ratio: 0.25, Ledger: l}},
	}}

	resp, err := http.Get(f.srv.URL + "/v1/compositions/permanent_portfolio/history")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "abc", out[0]["id"])
	assert.InDelta(t, 0.02, out[0]["total_apr"], 1e-12)

	resp2, body := f.get(t, "/v1/compositions/permanent_portfolio/history?from=yesterday")
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	assert.Equal(t, api.ErrCodeInvalidInput, errorCode(body))
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, nil)

	req, err := http.NewRequest(http.MethodOptions, f.srv.URL+"/v1/strategies", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, nil)
	f.get(t, "/healthz")

	resp, err := http.Get(f.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
