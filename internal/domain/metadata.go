package domain

import "encoding/json"

// PositionMetadata es la metadata canónica de una posición del registry.
type PositionMetadata struct {
	ID          string             `json:"id"`
	Categories  []AssetCategory    `json:"categories"`
	Symbol      string             `json:"symbol"`
	Project     string             `json:"project"`
	Composition map[string]float64 `json:"composition"`
	Tags        []string           `json:"tags,omitempty"`
	Yield       YieldSource        `json:"yield"`

	// DiscountFactor es el descuento multiplicativo del proyecto sobre su APR
	// reportado (1 si el proyecto no tiene). Lo aplica el rebalancer, no este core.
	DiscountFactor float64 `json:"discount_factor"`
}

// HasCategory devuelve true si la posición está clasificada en la categoría dada.
func (m PositionMetadata) HasCategory(c AssetCategory) bool {
	for _, cat := range m.Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// YieldSourceKind etiqueta la variante de YieldSource.
type YieldSourceKind string

const (
	KindPrecomputed    YieldSourceKind = "precomputed"
	KindStaticDefault  YieldSourceKind = "static_default"
	KindExternalLookup YieldSourceKind = "external_lookup"
	KindLiveQuote      YieldSourceKind = "live_quote"
)

// YieldSource es la estrategia de yield de una posición. Es un sum type cerrado:
// solo las variantes de este paquete lo implementan.
type YieldSource interface {
	Kind() YieldSourceKind
	sealed()
}

// Precomputed es un APR ya calculado que viene con la tabla.
type Precomputed struct {
	APR float64
}

// StaticDefault es un APR estático de fallback.
type StaticDefault struct {
	APR float64
}

// ExternalLookup resuelve el APR en la API de yields de DefiLlama.
type ExternalLookup struct {
	PoolID string
}

// QuoteKind selecciona el adapter de un LiveQuote.
type QuoteKind string

const (
	QuoteEquilibriaPool    QuoteKind = "equilibria-pool"
	QuoteEquilibriaEPendle QuoteKind = "equilibria-ependle"
	QuoteEquilibrePair     QuoteKind = "equilibre-pair"
	QuoteConvexLockedCVX   QuoteKind = "convex-vlcvx"
	QuoteQuickswapPool     QuoteKind = "quickswap-pool"
)

// LiveQuote es un APR que se pide a un adapter de protocolo solo cuando alguien
// lo necesita. Ref depende del Quote: pool token, símbolo del par o dirección del pool.
type LiveQuote struct {
	Quote QuoteKind
	Chain Chain
	Ref   string
}

func (Precomputed) Kind() YieldSourceKind { return KindPrecomputed }
func (StaticDefault) Kind() YieldSourceKind { return KindStaticDefault }
func (ExternalLookup) Kind() YieldSourceKind { return KindExternalLookup }
func (LiveQuote) Kind() YieldSourceKind { return KindLiveQuote }

func (Precomputed) sealed() {}
func (StaticDefault) sealed() {}
func (ExternalLookup) sealed() {}
func (LiveQuote) sealed() {}

// yieldSourceJSON es la forma serializada común a todas las variantes.
type yieldSourceJSON struct {
	Kind   YieldSourceKind `json:"kind"`
	APR    *float64        `json:"apr,omitempty"`
	PoolID string          `json:"pool_id,omitempty"`
	Quote  QuoteKind       `json:"quote,omitempty"`
	Chain  string          `json:"chain,omitempty"`
	Ref    string          `json:"ref,omitempty"`
}

func (y Precomputed) MarshalJSON() ([]byte, error) {
	return json.Marshal(yieldSourceJSON{Kind: KindPrecomputed, APR: &y.APR})
}

func (y StaticDefault) MarshalJSON() ([]byte, error) {
	return json.Marshal(yieldSourceJSON{Kind: KindStaticDefault, APR: &y.APR})
}

func (y ExternalLookup) MarshalJSON() ([]byte, error) {
	return json.Marshal(yieldSourceJSON{Kind: KindExternalLookup, PoolID: y.PoolID})
}

func (y LiveQuote) MarshalJSON() ([]byte, error) {
	return json.Marshal(yieldSourceJSON{Kind: KindLiveQuote, Quote: y.Quote, Chain: y.Chain.Prefix, Ref: y.Ref})
}

// PositionYield es el resultado de resolver el YieldSource de una posición.
type PositionYield struct {
	PositionID     string          `json:"position_id"`
	APR            float64         `json:"apr"`
	DiscountFactor float64         `json:"discount_factor"`
	Source         YieldSourceKind `json:"source"`
}

// DiscountedAPR aplica el factor de descuento del proyecto.
func (p PositionYield) DiscountedAPR() float64 {
	return p.APR * p.DiscountFactor
}
