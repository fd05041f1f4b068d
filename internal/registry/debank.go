package registry

import "github.com/alejandrodnm/rebalancer/internal/domain"

// DebankTable devuelve las posiciones EVM indexadas por DeBank.
// Los ids con sufijo ":<n>" son posiciones dentro de un mismo contrato (pool index).
func DebankTable() Table {
	return Table{Name: "debank", Entries: []Entry{
		{
			ID:   "0x76ba3ec5f5adbf1c58c91e86502232317eea72de",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LargeCapUSStocks, domain.LongTermBond},
				Symbol:      "RDNT-ETH",
				Project:     "radiant",
				Composition: map[string]float64{"eth": 0.2, "rdnt": 0.8},
				Tags:        []string{"rdnt", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "118281c6-3a4a-4324-b804-5664617df77d"},
			},
		},
		{
			ID:   "0xb7e50106a5bd3cf21af210a755f9c8740890a8c9",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks, domain.LongTermBond},
				Symbol:      "MAGIC-WETH",
				Project:     "uniswap-v3",
				Composition: map[string]float64{"eth": 0.5, "magic": 0.5},
				Tags:        []string{"magic", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "afb71713-9c2e-4717-a8a3-9f959b966e49"},
			},
		},
		{
			ID:   "0x127963a74c07f72d862f2bdc225226c3251bd117",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "VST-FRAX",
				Project:     "frax",
				Composition: map[string]float64{"vst": 0.5, "frax": 0.5},
				Tags:        []string{"vst", "frax"},
				Yield:       domain.ExternalLookup{PoolID: "ca8b6649-b825-41c7-8955-47b955b37bb0"},
			},
		},
		{
			ID:   "0x673cf5ab7b44caac43c80de5b99a37ed5b3e4cc6",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "DAI",
				Project:     "gains-network",
				Composition: map[string]float64{"dai": 1},
				Tags:        []string{"gdai"},
				Yield:       domain.ExternalLookup{PoolID: "15c3e528-2825-4ca4-804b-406e8b8e2ebd"},
			},
		},
		{
			ID:   "0x4e971a87900b931ff39d1aad67697f49835400b6",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LargeCapUSStocks, domain.LongTermBond, domain.IntermediateTermBond, domain.Gold},
				Symbol:      "GLP",
				Project:     "gmx",
				Composition: map[string]float64{"eth": 0.3, "wbtc": 0.25, "link": 0.01, "uni": 0.01, "usdc": 0.34, "usdt": 0.02, "dai": 0.05, "frax": 0.02, "mim": 0},
				Tags:        []string{"glp"},
				Yield:       domain.ExternalLookup{PoolID: "825688c0-c694-4a6b-8497-177e425b7348"},
			},
		},
		{
			ID:   "0xbdec4a045446f583dc564c0a227ffd475b329bf0",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.Gold, domain.LongTermBond, domain.IntermediateTermBond},
				Symbol:      "WETH-DAI",
				Project:     "kyberswap-elastic",
				Composition: map[string]float64{"eth": 0.5, "dai": 0.5},
				Tags:        []string{"dai", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "592db49f-ac12-4072-b659-4e4a29c2b197"},
			},
		},
		{
			ID:   "0x41a5881c17185383e19df6fa4ec158a6f4851a69",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "OHMFRAXBP-F",
				Project:     "yearn-finance",
				Composition: map[string]float64{"ohm": 0.5, "frax": 0.25, "usdc": 0.25},
				Tags:        []string{"ohm", "frax", "usdc"},
				Yield:       domain.ExternalLookup{PoolID: "4f000353-5bb0-4e8c-ad03-194f0662680d"},
			},
		},
		{
			ID:   "0xf562b2f33b3c90d5d273f88cdf0ced866e17092e",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "OHM-FRAX",
				Project:     "frax",
				Composition: map[string]float64{"ohm": 0.5, "frax": 0.5},
				Tags:        []string{"frax", "ohm"},
				Yield:       domain.ExternalLookup{PoolID: "41e4d018-b7df-422d-93af-d7d4ff94b300"},
			},
		},
		{
			ID:   "0x4804357ace69330524ceb18f2a647c3c162e1f95",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.NonUSDevelopedMarketStocks},
				Symbol:      "WKAVA",
				Project:     "mare-finance",
				Composition: map[string]float64{"kava": 1},
				Tags:        []string{"kava"},
				Yield:       domain.ExternalLookup{PoolID: "d09a22df-779c-4917-b66f-9e57b2f379f6"},
			},
		},
		{
			ID:   "0xf4b1486dd74d07706052a33d31d7c0aafd0659e1",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond},
				Symbol:      "Radiant-ETH-lending",
				Project:     "radiant",
				Composition: map[string]float64{"eth": 1},
				Tags:        []string{"eth"},
				Yield:       domain.StaticDefault{APR: 0.09},
			},
		},
		{
			ID:   "0x4fd9f7c5ca0829a656561486bada018505dfcb5e",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LargeCapUSStocks, domain.Commodities},
				Symbol:      "RDNT-BNB",
				Project:     "radiant",
				Composition: map[string]float64{"bnb": 0.5, "rdnt": 0.5},
				Tags:        []string{"rdnt", "bnb"},
				Yield:       domain.ExternalLookup{PoolID: "118281c6-3a4a-4324-b804-5664617df77d"},
			},
		},
		{
			ID:   "0xd50cf00b6e600dd036ba8ef475677d816d6c4281",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond},
				Symbol:      "lending",
				Project:     "radiant",
				Composition: map[string]float64{"eth": 1},
				Tags:        []string{"eth"},
				Yield:       domain.StaticDefault{APR: 0.07},
			},
		},
		{
			ID:   "0x21178dd2ba9caee9df37f2d5f89a097d69fb0a7d",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks, domain.LongTermBond},
				Symbol:      "MAGIC-WETH",
				Project:     "gamma",
				Composition: map[string]float64{"eth": 0.5, "magic": 0.5},
				Tags:        []string{"magic", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "98d1d43f-dacf-42c3-b2f9-259d34ec930d"},
			},
		},
		{
			ID:   "0x9dbbbaecacedf53d5caa295b8293c1def2055adc",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LargeCapUSStocks, domain.LongTermBond, domain.IntermediateTermBond, domain.Gold},
				Symbol:      "WETH-WBTC-LINK-UNI-USDC-USDT-DAI-FRAX",
				Project:     "beefy",
				Composition: map[string]float64{"eth": 0.3, "wbtc": 0.25, "link": 0.01, "uni": 0.01, "usdc": 0.34, "usdt": 0.02, "dai": 0.05, "frax": 0.02, "mim": 0},
				Tags:        []string{"glp"},
				Yield:       domain.ExternalLookup{PoolID: "79587734-a461-4f4c-b9e2-c85c70484cf8"},
			},
		},
		{
			ID:   "0x1f36f95a02c744f2b3cd196b5e44e749c153d3b9",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks},
				Symbol:      "VELO-OP",
				Project:     "velodrome",
				Composition: map[string]float64{"velo": 0.5, "op": 0.5},
				Tags:        []string{"velo", "op"},
				Yield:       domain.ExternalLookup{PoolID: "d268cba2-bf82-43c7-b4dc-1e8f2c37e150"},
			},
		},
		{
			ID:   "0x6b8edc43de878fd5cd5113c42747d32500db3873",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks, domain.IntermediateTermBond, domain.Gold},
				Symbol:      "VELO-USDC",
				Project:     "pickle",
				Composition: map[string]float64{"velo": 0.5, "usdc": 0.5},
				Tags:        []string{"velo", "usdc"},
				Yield:       domain.ExternalLookup{PoolID: "6e053f06-e90d-4f16-b31b-d615d33f26f5"},
			},
		},
		{
			ID:   "0x9c7305eb78a432ced5c4d14cac27e8ed569a2e26",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks},
				Symbol:      "velodrome-lock",
				Project:     "velodrome",
				Composition: map[string]float64{"velo": 1},
				Tags:        []string{"velo"},
				Yield:       domain.StaticDefault{APR: 0.0001},
			},
		},
		{
			ID:   "0x085a2054c51ea5c91dbf7f90d65e728c0f2a270f",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond, domain.Commodities, domain.LargeCapUSStocks},
				Symbol:      "WETH-CRV",
				Project:     "convex-finance",
				Composition: map[string]float64{"eth": 0.5, "crv": 0.5},
				Tags:        []string{"crv", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "caad8223-bae8-4ef4-bdf3-c12cc55c94e3"},
			},
		},
		{
			ID:   "0x20ec0d06f447d550fc6edee42121bc8c1817b97d",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond, domain.Commodities},
				Symbol:      "WMATIC-WETH",
				Project:     "gamma",
				Composition: map[string]float64{"eth": 0.5, "matic": 0.5},
				Tags:        []string{"matic", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "1f23a6a9-84d0-4cf9-b978-aba431703757"},
			},
		},
		{
			ID:   "0xacf5a67f2fcfeda3946ccb1ad9d16d2eb65c3c96:2",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond, domain.IntermediateTermBond, domain.Gold},
				Symbol:      "USDC-ETH",
				Project:     "SpaceFi",
				Composition: map[string]float64{"eth": 0.5, "usdc": 0.5},
				Tags:        []string{"usdc", "eth"},
				Yield:       domain.StaticDefault{APR: 0.23},
			},
		},
		{
			ID:   "0x7d49e5adc0eaad9c027857767638613253ef125f",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LargeCapUSStocks, domain.LongTermBond, domain.IntermediateTermBond, domain.Gold},
				Symbol:      "GLP",
				Project:     "pendle",
				Composition: map[string]float64{"eth": 0.3, "wbtc": 0.25, "link": 0.01, "uni": 0.01, "usdc": 0.34, "usdt": 0.02, "dai": 0.05, "frax": 0.02, "mim": 0, "pt-glp-28mar2024": 0},
				Tags:        []string{"glp"},
				Yield:       domain.ExternalLookup{PoolID: "24524d98-7fa5-47ca-b788-e7879319176c"},
			},
		},
		{
			ID:   "0xa0192f6567f8f5dc38c53323235fd08b318d2dca",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "GDAI",
				Project:     "pendle",
				Composition: map[string]float64{"dai": 1},
				Tags:        []string{"gdai"},
				Yield:       domain.ExternalLookup{PoolID: "95c950d1-8479-42b3-852c-282ed30c1f6c"},
			},
		},
		{
			ID:   "0x2ec8c498ec997ad963969a2c93bf7150a1f5b213",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond},
				Symbol:      "RETH-WETH",
				Project:     "pendle",
				Composition: map[string]float64{"eth": 1},
				Tags:        []string{"eth"},
				Yield:       domain.ExternalLookup{PoolID: "90205f92-bb2b-4e97-bbfd-e7a1c91a6fd1"},
			},
		},
		{
			ID:   "0xd85e038593d7a098614721eae955ec2022b9b91b",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "DAI",
				Project:     "gains-network",
				Composition: map[string]float64{"dai": 1},
				Tags:        []string{"gdai"},
				Yield:       domain.ExternalLookup{PoolID: "15c3e528-2825-4ca4-804b-406e8b8e2ebd"},
			},
		},
		{
			ID:   "0xf4d73326c13a4fc5fd7a064217e12780e9bd62c3:17",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks, domain.LongTermBond},
				Symbol:      "DPX-WETH",
				Project:     "sushiswap",
				Composition: map[string]float64{"eth": 0.5, "dpx": 0.5},
				Tags:        []string{"dpx", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "97cb382d-8dc4-4e17-b0f6-b6b51994dbeb"},
			},
		},
		{
			ID:   "0x72a19342e8f1838460ebfccef09f6585e32db86e",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks, domain.Commodities},
				Symbol:      "CVX",
				Project:     "convex-finance",
				Composition: map[string]float64{"cvx": 1},
				Tags:        []string{"cvx"},
				Yield:       domain.LiveQuote{Quote: domain.QuoteConvexLockedCVX},
			},
		},
		{
			ID:   "0x2b95a1dcc3d405535f9ed33c219ab38e8d7e0884",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LargeCapUSStocks, domain.Commodities},
				Symbol:      "CVXCRV",
				Project:     "convex-finance",
				Composition: map[string]float64{"cvxcrv": 1},
				Tags:        []string{"cvxcrv"},
				Yield:       domain.ExternalLookup{PoolID: "8d7633d8-be8c-4b65-ba87-76bc808c9aed"},
			},
		},
		{
			ID:   "0xc96e1a26264d965078bd01eaceb129a65c09ffe7",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "OHMFRAXBP-F",
				Project:     "yearn-finance",
				Composition: map[string]float64{"ohm": 0.5, "frax": 0.25, "usdc": 0.25},
				Tags:        []string{"ohm", "frax", "usdc"},
				Yield:       domain.ExternalLookup{PoolID: "4f000353-5bb0-4e8c-ad03-194f0662680d"},
			},
		},
		{
			ID:   "0x34101fe647ba02238256b5c5a58aeaa2e532a049",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "USDT",
				Project:     "gmd-protocol",
				Composition: map[string]float64{"usdt": 1},
				Tags:        []string{"usdt"},
				Yield:       domain.ExternalLookup{PoolID: "30d03a2d-f857-472d-91e7-d10d6264765c"},
			},
		},
		{
			ID:   "0x3db4b7da67dd5af61cb9b3c70501b1bdb24b2c22",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "USDC",
				Project:     "gmd-protocol",
				Composition: map[string]float64{"usdc": 1},
				Tags:        []string{"usdc"},
				Yield:       domain.ExternalLookup{PoolID: "30d03a2d-f857-472d-91e7-d10d6264765c"},
			},
		},
		{
			ID:   "0x868a943ca49a63eb0456a00ae098d470915eea0d",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "USDC",
				Project:     "rehold",
				Composition: map[string]float64{"usdc": 1},
				Tags:        []string{"usdc"},
				Yield:       domain.ExternalLookup{PoolID: "1acd3a3f-3ed6-4e24-9333-f1a9e41c3b17"},
			},
		},
		{
			ID:   "0xfff4b05a10c5df1382272e554254ea8b097ec03e",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks},
				Symbol:      "PENDLE",
				Project:     "Equilibria",
				Composition: map[string]float64{"pendle": 1},
				Tags:        []string{"pendle"},
				Yield:       domain.LiveQuote{Quote: domain.QuoteEquilibriaEPendle, Chain: domain.Arbitrum},
			},
		},
		{
			ID:   "0x481fcfa00ee6b2384ff0b3c3b5b29ad911c1aaa7",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond, domain.Commodities},
				Symbol:      "WMATIC-WETH",
				Project:     "quickswap-dex",
				Composition: map[string]float64{"eth": 0.5, "matic": 0.5},
				Tags:        []string{"matic", "eth"},
				Yield:       domain.LiveQuote{Quote: domain.QuoteQuickswapPool, Chain: domain.Polygon, Ref: "0x81cec323bf8c4164c66ec066f53cc053a535f03d"},
			},
		},
		{
			ID:   "0x0fa70bd9b892c7b6d2a9ea8dd1ce446e52f86935",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.Commodities},
				Symbol:      "FIL",
				Project:     "stfil",
				Composition: map[string]float64{"fil": 1},
				Tags:        []string{"fil"},
				Yield:       domain.ExternalLookup{PoolID: "03cdc005-9fb7-4e0a-9f11-e0155ee4c8bf"},
			},
		},
		{
			ID:   "0xc531570e9508fb73a2c223956fa21dbeafb60568",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "USDT-USDC",
				Project:     "auragi-finance",
				Composition: map[string]float64{"usdc": 0.5, "usdt": 0.5},
				Tags:        []string{"usdt", "usdc"},
				Yield:       domain.ExternalLookup{PoolID: "a8ffb4ac-47ce-4f23-abee-c88832574c6d"},
			},
		},
		{
			ID:   "0xeed247ba513a8d6f78be9318399f5ed1a4808f8e",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "USDC",
				Project:     "tender_lending",
				Composition: map[string]float64{"usdc": 1},
				Tags:        []string{"usdc"},
				Yield:       domain.ExternalLookup{PoolID: "f152ff88-dd31-4efb-a0a9-ad26b5536cc7"},
			},
		},
		{
			ID:   "0x4d32c8ff2facc771ec7efc70d6a8468bc30c26bf:1",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LargeCapUSStocks, domain.LongTermBond, domain.IntermediateTermBond, domain.Gold},
				Symbol:      "GLP",
				Project:     "equilibria",
				Composition: map[string]float64{"eth": 0.3, "wbtc": 0.25, "link": 0.01, "uni": 0.01, "usdc": 0.34, "usdt": 0.02, "dai": 0.05, "frax": 0.02, "mim": 0},
				Tags:        []string{"glp"},
				Yield:       domain.LiveQuote{Quote: domain.QuoteEquilibriaPool, Chain: domain.Arbitrum, Ref: "0xb0D7182Ba15eD02326590f033F72c393C978EB7a"},
			},
		},
		{
			ID:   "0x4d32c8ff2facc771ec7efc70d6a8468bc30c26bf:8",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond},
				Symbol:      "RETH",
				Project:     "equilibria",
				Composition: map[string]float64{"eth": 1},
				Tags:        []string{"eth"},
				Yield:       domain.LiveQuote{Quote: domain.QuoteEquilibriaPool, Chain: domain.Arbitrum, Ref: "0xD5d1276B85A51F6D2B5eE26b9D7317bEa022ecbf"},
			},
		},
		{
			ID:   "0xd8d51c42557343f8f1696eb63d9c3c96a2aae903",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.SmallCapUSStocks, domain.Commodities},
				Symbol:      "PENDLE-stake2",
				Project:     "equilibria",
				Composition: map[string]float64{"pendle": 1},
				Tags:        []string{"pendle"},
				Yield:       domain.LiveQuote{Quote: domain.QuoteEquilibriaEPendle, Chain: domain.Arbitrum},
			},
		},
		{
			ID:   "0xd5dc65ec6948845c1c428fb60be38fe59b50bd13",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.LongTermBond, domain.LargeCapUSStocks, domain.Commodities},
				Symbol:      "CRV-FRXETH",
				Project:     "convex-finance",
				Composition: map[string]float64{"eth": 0.5, "crv": 0.5},
				Tags:        []string{"crv", "eth"},
				Yield:       domain.ExternalLookup{PoolID: "b8c90f85-fcf5-4bcf-af8a-e361209dff0d"},
			},
		},
		{
			ID:   "0xe2b11d3002a2e49f1005e212e860f3b3ec73f985",
			Meta: domain.PositionMetadata{
				Categories:  []domain.AssetCategory{domain.IntermediateTermBond},
				Symbol:      "USDT.E-USDC",
				Project:     "joe-v2.1",
				Composition: map[string]float64{"usdt": 0.5, "usdc": 0.5},
				Tags:        []string{"usdc", "usdt"},
				Yield:       domain.ExternalLookup{PoolID: "51bbd6eb-b6ba-4202-b4ae-098273bbbb29"},
			},
		},
	}}
}
