package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MergeMode decide cómo se presentan los ledgers de un portfolio.
type MergeMode string

const (
	// MergeModePool mantiene un ledger por pool: {pool_label: ledger}.
	MergeModePool MergeMode = "pool"
	// MergeModeCollapsed suma las categorías con el mismo nombre de todos los pools.
	MergeModeCollapsed MergeMode = "collapsed"
)

// ParseMergeMode valida el modo de merge. "" equivale a MergeModePool.
func ParseMergeMode(s string) (MergeMode, error) {
	switch MergeMode(s) {
	case "", MergeModePool:
		return MergeModePool, nil
	case MergeModeCollapsed:
		return MergeModeCollapsed, nil
	}
	return "", fmt.Errorf("domain.ParseMergeMode: unknown merge mode %q", s)
}

// PoolLedger es la contribución de un pool a un portfolio.
type PoolLedger struct {
	Label    string
	Protocol string
	Ratio    float64
	Ledger   Ledger
}

// PortfolioComposition es el resultado de componer una estrategia.
// Los pools se mantienen en el orden en que se invocaron sus adapters.
type PortfolioComposition struct {
	ID         string
	Strategy   string
	ComputedAt time.Time
	Pools      []PoolLedger
}

// Pool devuelve el ledger del pool con la etiqueta dada.
func (p PortfolioComposition) Pool(label string) (Ledger, bool) {
	for _, pl := range p.Pools {
		if pl.Label == label {
			return pl.Ledger, true
		}
	}
	return nil, false
}

// Labels devuelve las etiquetas de pool en orden.
func (p PortfolioComposition) Labels() []string {
	labels := make([]string, len(p.Pools))
	for i, pl := range p.Pools {
		labels[i] = pl.Label
	}
	return labels
}

// TotalAPR suma el APR (ya escalado por ratio) de todos los pools.
func (p PortfolioComposition) TotalAPR() float64 {
	total := 0.0
	for _, pl := range p.Pools {
		total += pl.Ledger.TotalAPR()
	}
	return total
}

// RatioSum suma los ratios de los pools. Debería ser 1 pero no se fuerza.
func (p PortfolioComposition) RatioSum() float64 {
	sum := 0.0
	for _, pl := range p.Pools {
		sum += pl.Ratio
	}
	return sum
}

// MarshalJSON serializa como {pool_label: ledger} respetando el orden de los pools.
func (p PortfolioComposition) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pl := range p.Pools {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pl.Label)
		if err != nil {
			return nil, err
		}
		ledger := pl.Ledger
		if ledger == nil {
			ledger = NewLedger()
		}
		val, err := json.Marshal(ledger)
		if err != nil {
			return nil, fmt.Errorf("domain.PortfolioComposition: pool %s: %w", pl.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
