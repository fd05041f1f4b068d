package equilibre_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/rebalancer/internal/adapters/equilibre"
	"github.com/alejandrodnm/rebalancer/internal/adapters/upstream"
	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/ports"
)

var _ ports.PairQuoter = (*equilibre.Adapter)(nil)

func newAdapter(t *testing.T, handler http.HandlerFunc) *equilibre.Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return equilibre.New(upstream.NewClient(equilibre.Source, srv.URL, upstream.WithRetry(1, time.Millisecond)))
}

func fixture(t *testing.T) http.HandlerFunc {
	data, err := os.ReadFile("../../../testdata/fixtures/equilibre_pairs.json")
	require.NoError(t, err)
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pairs", r.URL.Path)
		w.Write(data)
	}
}

func TestPairAPR_ConvertsPercent(t *testing.T) {
	a := newAdapter(t, fixture(t))

	apr, err := a.PairAPR(context.Background(), "vAMM-WKAVA/multiETH")

	require.NoError(t, err)
	assert.InDelta(t, 0.235, apr, 1e-12)
}

func TestPairAPR_UnknownSymbol(t *testing.T) {
	a := newAdapter(t, fixture(t))

	_, err := a.PairAPR(context.Background(), "vAMM-NOPE/WKAVA")

	assert.ErrorIs(t, err, domain.ErrUpstreamNotFound)
	assert.Contains(t, err.Error(), "vAMM-NOPE/WKAVA")
}

func TestPairAPR_MissingAPR(t *testing.T) {
	a := newAdapter(t, fixture(t))

	_, err := a.PairAPR(context.Background(), "vAMM-BROKEN/WKAVA")

	assert.ErrorIs(t, err, domain.ErrUpstreamFetch)
}

func TestPairAPR_ServerError(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := a.PairAPR(context.Background(), "vAMM-WKAVA/multiETH")

	assert.ErrorIs(t, err, domain.ErrUpstreamFetch)
}
