package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// TokenRef es el token de una categoría de reward: un único TokenID o una lista
// ordenada ("Underlying APY" acumula los tokens base y de reward del pool).
type TokenRef struct {
	ids  []TokenID
	list bool
}

// SingleToken crea un TokenRef escalar.
func SingleToken(id TokenID) TokenRef {
	return TokenRef{ids: []TokenID{id}}
}

// TokenList crea un TokenRef de tipo lista (puede estar vacía).
func TokenList(ids ...TokenID) TokenRef {
	return TokenRef{ids: append([]TokenID{}, ids...), list: true}
}

// IsList devuelve true si el ref es una lista.
func (t TokenRef) IsList() bool {
	return t.list
}

// IsZero devuelve true si no se asignó ningún token.
func (t TokenRef) IsZero() bool {
	return !t.list && len(t.ids) == 0
}

// IDs devuelve una copia de los token ids.
func (t TokenRef) IDs() []TokenID {
	return append([]TokenID(nil), t.ids...)
}

// Single devuelve el token escalar, o "" si el ref es lista o está vacío.
func (t TokenRef) Single() TokenID {
	if t.list || len(t.ids) == 0 {
		return ""
	}
	return t.ids[0]
}

// MarshalJSON serializa un escalar como string y una lista como array.
func (t TokenRef) MarshalJSON() ([]byte, error) {
	switch {
	case t.list:
		ids := t.ids
		if ids == nil {
			ids = []TokenID{}
		}
		return json.Marshal(ids)
	case len(t.ids) == 0:
		return []byte("null"), nil
	default:
		return json.Marshal(t.ids[0])
	}
}

// UnmarshalJSON acepta string, array o null.
func (t *TokenRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TokenRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var ids []TokenID
		if err := json.Unmarshal(data, &ids); err != nil {
			return fmt.Errorf("domain.TokenRef: %w", err)
		}
		*t = TokenList(ids...)
		return nil
	}
	var id TokenID
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("domain.TokenRef: %w", err)
	}
	*t = SingleToken(id)
	return nil
}

// RewardEntry es una categoría del ledger: APR acumulado y su token.
type RewardEntry struct {
	APR   float64
	Token TokenRef
}

// SetToken asigna un token escalar (last write wins).
func (e *RewardEntry) SetToken(id TokenID) {
	e.Token = SingleToken(id)
}

// AppendTokens añade tokens a la lista. Un escalar previo pasa a ser el primer
// elemento de la lista.
func (e *RewardEntry) AppendTokens(ids ...TokenID) {
	if !e.Token.list {
		e.Token = TokenList(e.Token.ids...)
	}
	e.Token.ids = append(e.Token.ids, ids...)
}

type rewardEntryJSON struct {
	APR   float64   `json:"APR"`
	Token *TokenRef `json:"token,omitempty"`
}

// MarshalJSON omite "token" cuando la categoría no tiene token asignado.
func (e RewardEntry) MarshalJSON() ([]byte, error) {
	out := rewardEntryJSON{APR: e.APR}
	if !e.Token.IsZero() {
		tok := e.Token
		out.Token = &tok
	}
	return json.Marshal(out)
}

// UnmarshalJSON es el inverso de MarshalJSON.
func (e *RewardEntry) UnmarshalJSON(data []byte) error {
	var in rewardEntryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	e.APR = in.APR
	e.Token = TokenRef{}
	if in.Token != nil {
		e.Token = *in.Token
	}
	return nil
}

// Ledger es la composición de yield de un pool (o de un portfolio):
// categoría de reward → entrada acumulada.
type Ledger map[string]*RewardEntry

// NewLedger crea un ledger vacío.
func NewLedger() Ledger {
	return make(Ledger)
}

// Accumulate suma apr a la categoría, creándola con APR 0 si no existe
// (get-or-insert-zero). Los valores siempre se suman, nunca se sobreescriben.
func (l Ledger) Accumulate(category string, apr float64) *RewardEntry {
	e, ok := l[category]
	if !ok {
		e = &RewardEntry{}
		l[category] = e
	}
	e.APR += apr
	return e
}

// Entry devuelve la entrada de la categoría o nil.
func (l Ledger) Entry(category string) *RewardEntry {
	return l[category]
}

// APR devuelve el APR de la categoría (0 si no existe).
func (l Ledger) APR(category string) float64 {
	if e, ok := l[category]; ok {
		return e.APR
	}
	return 0
}

// TotalAPR suma el APR de todas las categorías.
func (l Ledger) TotalAPR() float64 {
	total := 0.0
	for _, e := range l {
		total += e.APR
	}
	return total
}

// Categories devuelve las categorías ordenadas alfabéticamente.
func (l Ledger) Categories() []string {
	cats := make([]string, 0, len(l))
	for c := range l {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Clone hace una copia profunda del ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for c, e := range l {
		cp := RewardEntry{APR: e.APR, Token: TokenRef{ids: e.Token.IDs(), list: e.Token.list}}
		out[c] = &cp
	}
	return out
}
