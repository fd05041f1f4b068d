package registry

import "github.com/alejandrodnm/rebalancer/internal/domain"

// NansenTable devuelve las posiciones indexadas por Nansen (Cosmos y Kava).
// Los ids de pools Osmosis son hashes en mayúsculas y se guardan tal cual.
func NansenTable() Table {
	return Table{Name: "nansen", Entries: []Entry{
		{
			ID:   "EA1D43981D5C9A1C4AAEA9C23BB1D4FA126BA9BC7020A25E0AE4AA841EA25DC5",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.NonUSEmergingMarketStocks, domain.LongTermBond},
				Symbol:      "OSMO-WETH",
				Project:     "Osmosis",
				Composition: map[string]float64{"eth": 0.5, "osmo": 0.5},
				Tags:        []string{"osmo", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "5fe464d2-3575-4b70-bc69-cc52d2857e4a"},
			},
		},
		{
			ID:   "57AA1A70A4BC9769C525EBF6386F7A21536E04A79D62E1981EFCEF9428EBB205",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.NonUSEmergingMarketStocks, domain.NonUSDevelopedMarketStocks},
				Symbol:      "OSMO-KAVA",
				Project:     "Osmosis",
				Composition: map[string]float64{"kava": 0.5, "osmo": 0.5},
				Tags:        []string{"osmo", "kava"},
				Yield:       domain.ExternalLookup{PoolID: "f6efb5eb-b6fc-4ada-8fe2-05702f38d606"},
			},
		},
		{
			ID:   "27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.NonUSEmergingMarketStocks},
				Symbol:      "ATOM",
				Project:     "Osmosis",
				Composition: map[string]float64{"atom": 1},
				Tags:        []string{"atom"},
				Yield:       domain.StaticDefault{APR: 0.19},
			},
		},
		{
			ID:   "DEC41A02E47658D40FC71E5A35A9C807111F5A6662A3FB5DA84C4E6F53E616B3",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.NonUSEmergingMarketStocks, domain.Commodities},
				Symbol:      "ATOM",
				Project:     "Cosmos",
				Composition: map[string]float64{"atom": 1},
				Tags:        []string{"atom"},
				Yield:       domain.StaticDefault{APR: 0.15},
			},
		},
		{
			ID:   "0x371d33963fb89ec9542a11ccf955b3a90391f99f",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.NonUSDevelopedMarketStocks, domain.LongTermBond},
				Symbol:      "KAVA-WETH",
				Project:     "Equilibre",
				Composition: map[string]float64{"kava": 0.5, "eth": 0.5},
				Tags:        []string{"kava", "eth"},
				Yield:       domain.LiveQuote{Quote: domain.QuoteEquilibrePair, Ref: "vAMM-WKAVA/multiETH"},
			},
		},
	}}
}
