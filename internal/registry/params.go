package registry

import (
	"strings"

	"github.com/alejandrodnm/rebalancer/internal/domain"
)

// Params agrupa las tablas estáticas que el rebalancer consume junto al registry.
// Este paquete solo las expone; no las aplica.
type Params struct {
	// MinRebalancePositionUSD: posiciones por debajo no se rebalancean.
	MinRebalancePositionUSD float64
	// DefillamaRequestFrequencyReciprocal: 1 de cada N ciclos refresca DefiLlama.
	DefillamaRequestFrequencyReciprocal int

	BlacklistChains              map[string]bool
	BlacklistChainsForStableCoin map[string]bool
	BlacklistProtocols           map[string]bool
	StableCoinWhitelist          map[string]bool

	// DiscountFactors: proyecto → descuento multiplicativo sobre el APR reportado
	// (pools de liquidez concentrada).
	DiscountFactors map[string]float64

	// PriceIDs: símbolo on-chain → id de precio externo (CoinGecko).
	PriceIDs map[string]string

	// TokenCategories: clase de activo → símbolos candidatos. Aún no lo usa el
	// rebalancer para buscar composiciones nuevas.
	TokenCategories map[domain.AssetCategory][]string
}

// DiscountFactor devuelve el descuento del proyecto (1 si no tiene).
func (p Params) DiscountFactor(project string) float64 {
	if f, ok := p.DiscountFactors[project]; ok {
		return f
	}
	return 1
}

// PriceID devuelve el id de precio externo del símbolo. Prueba el símbolo exacto
// y luego sin distinguir mayúsculas ("cvxCRV" vs "CVXCRV").
func (p Params) PriceID(symbol string) (string, bool) {
	if id, ok := p.PriceIDs[symbol]; ok {
		return id, true
	}
	for sym, id := range p.PriceIDs {
		if strings.EqualFold(sym, symbol) {
			return id, true
		}
	}
	return "", false
}

// DefaultParams devuelve los valores con los que opera el rebalancer.
func DefaultParams() Params {
	return Params{
		MinRebalancePositionUSD:             500,
		DefillamaRequestFrequencyReciprocal: 50,
		BlacklistChains:                     set("Avalanche", "BSC", "Solana"),
		BlacklistChainsForStableCoin:        set("Ethereum"),
		BlacklistProtocols:                  set("rehold", "deri-protocol", "acryptos", "filet-finance"),
		StableCoinWhitelist:                 set("USDT", "USDC", "USDT.E", "USDC.E"),
		DiscountFactors: map[string]float64{
			"uniswap-v3":        0.5,
			"kyberswap-elastic": 0.5,
		},
		PriceIDs: map[string]string{
			"EURS":                                   "stasis-eurs",
			"OHM":                                    "olympus",
			"gOHM":                                   "governance-ohm",
			"BNB":                                    "binancecoin",
			"FRAX":                                   "frax",
			"USDC":                                   "usd-coin",
			"USDC.e":                                 "usd-coin",
			"WBTC":                                   "bitcoin",
			"WBTC.e":                                 "bitcoin",
			"BTC.b":                                  "bitcoin",
			"ETH":                                    "ethereum",
			"WETH":                                   "ethereum",
			"WETH.e":                                 "ethereum",
			"WAVAX":                                  "avalanche-2",
			"LINK":                                   "chainlink",
			"UNI":                                    "uniswap",
			"USDT":                                   "tether",
			"DAI":                                    "dai",
			"VST":                                    "vesta-stable",
			"MAGIC":                                  "magic",
			"RDNT":                                   "radiant-capital",
			"DPX":                                    "dopex",
			"CVX":                                    "convex-finance",
			"cvxCRV":                                 "convex-crv",
			"MIM":                                    "magic-internet-money",
			"WKAVA":                                  "kava",
			"KAVA":                                   "kava",
			"FIL":                                    "filecoin",
			"OSMO":                                   "osmosis",
			"ATOM":                                   "cosmos",
			"AVAX":                                   "avalanche",
			"VELO":                                   "velodrome-finance",
			"OP":                                     "optimism",
			"CRV":                                    "curve-dao-token",
			"MATIC":                                  "matic-network",
			"PT-GLP-28MAR2024":                       "jones-glp", // GLP no tiene precio directo
			"PT-gDAI-28MAR2024":                      "dai",
			"frxETH":                                 "frax-ether",
			"PT-sfrxETH-26DEC2024":                   "frax-ether",
			"PT-rETH-WETH_BalancerLP Aura-26DEC2024": "rocket-pool-eth",
			"BTCB":                                   "bitcoin",
			"BUSD":                                   "binance-usd",
			"PENDLE":                                 "pendle",
		},
		TokenCategories: map[domain.AssetCategory][]string{
			domain.LongTermBond:               {"eth"},
			domain.IntermediateTermBond:       {"ohm", "gohm", "usdc", "frax", "dai", "gdai"},
			domain.Commodities:                {"fil", "cvxcrv", "crv", "cvx", "matic", "bnb"},
			domain.Gold:                       {},
			domain.LargeCapUSStocks:           {},
			domain.SmallCapUSStocks:           {},
			domain.NonUSDevelopedMarketStocks: {},
			domain.NonUSEmergingMarketStocks:  {},
		},
	}
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
