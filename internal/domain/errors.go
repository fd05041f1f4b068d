package domain

import (
	"errors"
	"fmt"
)

// Sentinels de la taxonomía de errores. Los tipos concretos de abajo hacen
// match con errors.Is contra su sentinel.
var (
	ErrUpstreamFetch       = errors.New("upstream fetch failed")
	ErrUpstreamNotFound    = errors.New("upstream record not found")
	ErrNotFound            = errors.New("not found")
	ErrUnsupportedStrategy = errors.New("unsupported strategy")
)

// UpstreamFetchError: la fuente externa respondió con un status no exitoso, falló
// el transporte, o el documento no tiene la forma esperada.
type UpstreamFetchError struct {
	Source string
	Status int // 0 si no hubo respuesta HTTP
	Err    error
}

func (e *UpstreamFetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("failed to fetch %s: status %d: %v", e.Source, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("failed to fetch %s: status %d", e.Source, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("failed to fetch %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s", e.Source)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }
func (e *UpstreamFetchError) Is(target error) bool { return target == ErrUpstreamFetch }

// UpstreamNotFoundError: la respuesta es válida pero no contiene el registro pedido.
type UpstreamNotFoundError struct {
	Source string
	ID     string
}

func (e *UpstreamNotFoundError) Error() string {
	return fmt.Sprintf("failed to find %s in %s", e.ID, e.Source)
}

func (e *UpstreamNotFoundError) Is(target error) bool { return target == ErrUpstreamNotFound }

// NotFoundError: el registry no tiene la posición pedida.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find %s in the position registry", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnsupportedStrategyError: no hay estrategia con ese nombre.
type UnsupportedStrategyError struct {
	Name string
}

func (e *UnsupportedStrategyError) Error() string {
	return fmt.Sprintf("portfolio %s is not implemented", e.Name)
}

func (e *UnsupportedStrategyError) Is(target error) bool { return target == ErrUnsupportedStrategy }
