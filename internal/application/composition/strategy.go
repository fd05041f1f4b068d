// Package composition compone el APR de un portfolio a partir de los adapters
// de protocolo: estrategias, orquestación, merge de ledgers, resolución de
// yields por posición y el loop periódico.
package composition

import (
	"fmt"

	"github.com/alejandrodnm/rebalancer/internal/domain"
)

// Protocol identifica el adapter de breakdown de un leg.
type Protocol string

const (
	ProtocolEquilibria Protocol = "equilibria"
	ProtocolSushiswap  Protocol = "sushiswap"
)

// ParseProtocol valida el nombre de un protocolo.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(s); p {
	case ProtocolEquilibria, ProtocolSushiswap:
		return p, nil
	}
	return "", fmt.Errorf("composition.ParseProtocol: unknown protocol %q", s)
}

// Leg es un pool de una estrategia con su peso.
type Leg struct {
	Label    string
	Protocol Protocol
	Selector domain.PoolSelector
	Ratio    float64
}

// Strategy es un portfolio con nombre: una lista ordenada de legs.
type Strategy struct {
	Name string
	Legs []Leg
}

// RatioSum suma los ratios de los legs. Debería ser 1; no se fuerza.
func (s Strategy) RatioSum() float64 {
	sum := 0.0
	for _, l := range s.Legs {
		sum += l.Ratio
	}
	return sum
}

// validate comprueba que las etiquetas son únicas (son las claves del JSON).
func (s Strategy) validate() error {
	if s.Name == "" {
		return fmt.Errorf("strategy without name")
	}
	if len(s.Legs) == 0 {
		return fmt.Errorf("strategy %s has no legs", s.Name)
	}
	seen := make(map[string]bool, len(s.Legs))
	for _, l := range s.Legs {
		if l.Label == "" {
			return fmt.Errorf("strategy %s: leg without label", s.Name)
		}
		if seen[l.Label] {
			return fmt.Errorf("strategy %s: duplicated leg label %q", s.Name, l.Label)
		}
		seen[l.Label] = true
	}
	return nil
}

// PermanentPortfolio es el nombre de la estrategia por defecto.
const PermanentPortfolio = "permanent_portfolio"

// PermanentPortfolioStrategy: tres markets de Pendle vía Equilibria y el pool
// DPX-WETH de Sushi, 25% cada uno, todos en Arbitrum.
func PermanentPortfolioStrategy() Strategy {
	leg := func(label string, p Protocol, addr string) Leg {
		return Leg{Label: label, Protocol: p, Selector: domain.NewPoolSelector(domain.Arbitrum, addr), Ratio: 0.25}
	}
	return Strategy{
		Name: PermanentPortfolio,
		Legs: []Leg{
			leg("Equilibria-GDAI", ProtocolEquilibria, "0xa0192f6567f8f5DC38C53323235FD08b318D2dcA"),
			leg("Equilibria-GLP", ProtocolEquilibria, "0x7D49E5Adc0EAAD9C027857767638613253eF125f"),
			leg("Equilibria-RETH", ProtocolEquilibria, "0x14FbC760eFaF36781cB0eb3Cb255aD976117B9Bd"),
			leg("SushSwap-DpxETH", ProtocolSushiswap, "0x0c1cf6883efa1b496b01f654e247b9b419873054"),
		},
	}
}

// DefaultStrategies devuelve las estrategias integradas indexadas por nombre.
func DefaultStrategies() map[string]Strategy {
	pp := PermanentPortfolioStrategy()
	return map[string]Strategy{pp.Name: pp}
}
