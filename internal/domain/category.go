package domain

import "fmt"

// AssetCategory es una clase de activo de la taxonomía cerrada del rebalancer.
// No confundir con las categorías de reward del Ledger ("Swap Fee", "PENDLE"...).
type AssetCategory string

const (
	LongTermBond               AssetCategory = "long_term_bond"
	IntermediateTermBond       AssetCategory = "intermediate_term_bond"
	Commodities                AssetCategory = "commodities"
	Gold                       AssetCategory = "gold"
	LargeCapUSStocks           AssetCategory = "large_cap_us_stocks"
	SmallCapUSStocks           AssetCategory = "small_cap_us_stocks"
	NonUSDevelopedMarketStocks AssetCategory = "non_us_developed_market_stocks"
	NonUSEmergingMarketStocks  AssetCategory = "non_us_emerging_market_stocks"
)

// AssetCategories lista la taxonomía en el orden en que la expone el rebalancer.
var AssetCategories = []AssetCategory{
	LongTermBond,
	IntermediateTermBond,
	Commodities,
	Gold,
	LargeCapUSStocks,
	SmallCapUSStocks,
	NonUSDevelopedMarketStocks,
	NonUSEmergingMarketStocks,
}

// Valid devuelve true si la categoría pertenece a la taxonomía.
func (c AssetCategory) Valid() bool {
	for _, known := range AssetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseAssetCategory convierte un string en AssetCategory validando la taxonomía.
func ParseAssetCategory(s string) (AssetCategory, error) {
	c := AssetCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("domain.ParseAssetCategory: unknown category %q", s)
	}
	return c, nil
}

// Categorías de reward que emiten los adapters.
const (
	RewardSwapFee       = "Swap Fee"
	RewardUnderlyingAPY = "Underlying APY"
	RewardPENDLE        = "PENDLE"
	RewardEQB           = "EQB"
)
