// Package registry es la tabla estática, de solo lectura, que mapea ids de
// posición a su metadata (clases de activo, composición y fuente de yield).
//
// Se construye una vez al arrancar (New o Default) y se pasa por referencia a
// quien la necesite. No hace llamadas de red: las posiciones cuyo APR depende
// de un protocolo llevan un domain.LiveQuote que se resuelve bajo demanda.
package registry

import (
	"fmt"
	"strings"

	"github.com/alejandrodnm/rebalancer/internal/domain"
)

// Entry es una fila de una tabla semilla.
type Entry struct {
	ID   string
	Meta domain.PositionMetadata
}

// Table es una tabla semilla ordenada (DeBank, Nansen...).
type Table struct {
	Name    string
	Entries []Entry
}

// Registry es la unión inmutable de las tablas semilla.
type Registry struct {
	entries map[string]domain.PositionMetadata
	order   []string
	params  Params
}

// New mezcla las tablas en orden y valida cada entrada. Si un id se repite, la
// última tabla gana pero la posición en el orden de iteración es la de la primera
// aparición (mismo comportamiento que un merge de diccionarios).
func New(params Params, tables ...Table) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]domain.PositionMetadata),
		params:  params,
	}

	for _, t := range tables {
		for _, e := range t.Entries {
			id := domain.NormalizePositionID(e.ID)
			meta := e.Meta
			meta.ID = id
			meta.DiscountFactor = params.DiscountFactor(meta.Project)

			if err := validate(meta); err != nil {
				return nil, fmt.Errorf("registry.New: table %s: entry %s: %w", t.Name, id, err)
			}

			if _, exists := r.entries[id]; !exists {
				r.order = append(r.order, id)
			}
			r.entries[id] = meta
		}
	}

	return r, nil
}

// Default construye el registry con las tablas semilla DeBank (EVM) y Nansen.
func Default() (*Registry, error) {
	return New(DefaultParams(), DebankTable(), NansenTable())
}

// Lookup devuelve la metadata de la posición. El id se normaliza antes del match.
func (r *Registry) Lookup(id string) (domain.PositionMetadata, error) {
	key := domain.NormalizePositionID(id)
	meta, ok := r.entries[key]
	if !ok {
		return domain.PositionMetadata{}, &domain.NotFoundError{ID: id}
	}
	return meta, nil
}

// LookupByProjectSymbol busca por "<project>:<symbol>" sin distinguir mayúsculas.
// Si hay duplicados gana el primero en orden de inserción.
func (r *Registry) LookupByProjectSymbol(project, symbol string) (domain.PositionMetadata, error) {
	want := strings.ToLower(project + ":" + symbol)
	for _, id := range r.order {
		meta := r.entries[id]
		if strings.ToLower(meta.Project+":"+meta.Symbol) == want {
			return meta, nil
		}
	}
	return domain.PositionMetadata{}, &domain.NotFoundError{ID: project + ":" + symbol}
}

// Entries devuelve todas las posiciones en orden de inserción.
func (r *Registry) Entries() []domain.PositionMetadata {
	out := make([]domain.PositionMetadata, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Len devuelve el número de posiciones.
func (r *Registry) Len() int {
	return len(r.order)
}

// Params devuelve las tablas auxiliares que consume el rebalancer.
func (r *Registry) Params() Params {
	return r.params
}

// validate comprueba los invariantes de una entrada.
func validate(m domain.PositionMetadata) error {
	if len(m.Categories) == 0 {
		return fmt.Errorf("no categories")
	}
	for _, c := range m.Categories {
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	if len(m.Composition) == 0 {
		return fmt.Errorf("empty composition")
	}
	for sym, w := range m.Composition {
		if sym == "" || sym != strings.ToLower(sym) {
			return fmt.Errorf("composition key %q must be a lowercase token symbol", sym)
		}
		if w < 0 || w > 1 {
			return fmt.Errorf("composition weight for %s out of [0,1]: %v", sym, w)
		}
	}
	if m.Yield == nil {
		return fmt.Errorf("no yield source")
	}
	return nil
}
