package composition

import (
	"github.com/alejandrodnm/rebalancer/internal/domain"
)

// Merge suma ledgers categoría por categoría en un ledger nuevo.
// Los tokens lista se concatenan en orden; un token escalar sobreescribe al
// anterior (last write wins). Los inputs no se modifican.
//
// Sobre los APR, Merge es asociativa y conmutativa: el orden solo afecta a los tokens.
func Merge(ledgers ...domain.Ledger) domain.Ledger {
	out := domain.NewLedger()
	for _, l := range ledgers {
		// orden alfabético para que el resultado no dependa del orden del map
		for _, cat := range l.Categories() {
			src := l[cat]
			dst := out.Accumulate(cat, src.APR)
			switch {
			case src.Token.IsList():
				dst.AppendTokens(src.Token.IDs()...)
			case !src.Token.IsZero():
				dst.SetToken(src.Token.Single())
			}
		}
	}
	return out
}

// Collapse funde todos los pools de una composición en un único ledger, en el
// orden de los pools.
func Collapse(pc domain.PortfolioComposition) domain.Ledger {
	ledgers := make([]domain.Ledger, len(pc.Pools))
	for i, pl := range pc.Pools {
		ledgers[i] = pl.Ledger
	}
	return Merge(ledgers...)
}

// ApplyMergeMode devuelve la composición en el modo pedido. En modo collapsed
// queda un solo pool con el nombre de la estrategia y la suma de los ratios.
func ApplyMergeMode(pc domain.PortfolioComposition, mode domain.MergeMode) domain.PortfolioComposition {
	if mode != domain.MergeModeCollapsed {
		return pc
	}
	out := pc
	out.Pools = []domain.PoolLedger{{
		Label:  pc.Strategy,
		Ratio:  pc.RatioSum(),
		Ledger: Collapse(pc),
	}}
	return out
}
