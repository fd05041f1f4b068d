package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain identifica una red: ID numérico (como lo indexan las APIs upstream)
// y prefijo corto (como aparece en los token ids).
type Chain struct {
	ID     string `json:"id" yaml:"id"`
	Prefix string `json:"prefix" yaml:"prefix"`
}

var (
	Arbitrum = Chain{ID: "42161", Prefix: "arb"}
	Polygon  = Chain{ID: "137", Prefix: "matic"}
)

// chainsByPrefix permite resolver una Chain desde config o desde un token id.
var chainsByPrefix = map[string]Chain{
	Arbitrum.Prefix: Arbitrum,
	Polygon.Prefix:  Polygon,
}

// ChainByPrefix devuelve la Chain conocida para el prefijo dado.
func ChainByPrefix(prefix string) (Chain, bool) {
	c, ok := chainsByPrefix[strings.ToLower(prefix)]
	return c, ok
}

// TokenID es un identificador "<chain>:<address>" ya normalizado.
// Es la clave de unión entre reward tokens y metadata.
type TokenID string

// NewTokenID construye un TokenID para la chain dada.
func NewTokenID(chain Chain, address string) TokenID {
	return TokenID(chain.Prefix + ":" + NormalizeAddress(address))
}

// String implementa fmt.Stringer.
func (t TokenID) String() string {
	return string(t)
}

// Chain devuelve el prefijo de chain del token id.
func (t TokenID) Chain() string {
	prefix, _, _ := strings.Cut(string(t), ":")
	return prefix
}

// NormalizeAddress pasa a minúsculas las direcciones EVM (checksummed o no).
// Los identificadores no-EVM (hashes de pools Osmosis, etc.) se devuelven tal cual.
func NormalizeAddress(address string) string {
	a := strings.TrimSpace(address)
	if common.IsHexAddress(a) {
		return strings.ToLower(a)
	}
	return a
}

// NormalizePositionID normaliza un id de posición "<address>[:<index>]".
// Cada segmento que sea una dirección EVM se pasa a minúsculas; el resto no se toca.
func NormalizePositionID(id string) string {
	parts := strings.Split(strings.TrimSpace(id), ":")
	for i, p := range parts {
		parts[i] = NormalizeAddress(p)
	}
	return strings.Join(parts, ":")
}

// PoolSelector identifica el pool que un adapter debe leer.
type PoolSelector struct {
	Chain   Chain  `json:"chain" yaml:"chain"`
	Address string `json:"address" yaml:"address"`
}

// NewPoolSelector crea un selector con la dirección normalizada.
func NewPoolSelector(chain Chain, address string) PoolSelector {
	return PoolSelector{Chain: chain, Address: NormalizeAddress(address)}
}

// String devuelve el selector con el formato de un TokenID.
func (s PoolSelector) String() string {
	return s.Chain.Prefix + ":" + s.Address
}
