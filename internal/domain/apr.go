package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// compoundingPeriods es el número de capitalizaciones por año que asumen las
// APIs que reportan APY (capitalización diaria).
const compoundingPeriods = 365

// Normalizer convierte un yield anual compuesto (APY) en una tasa simple (APR).
// Tiene que ser pura, determinista y total.
type Normalizer interface {
	ToSimpleRate(apy float64) float64
}

// NormalizerFunc adapta una función a Normalizer.
type NormalizerFunc func(apy float64) float64

// ToSimpleRate implementa Normalizer.
func (f NormalizerFunc) ToSimpleRate(apy float64) float64 {
	return f(apy)
}

// DailyCompounding deshace una capitalización diaria:
//
//	APR = n × ((1 + APY)^(1/n) − 1), n = 365
//
// Para APY ≤ −1 devuelve el límite −n en vez de NaN.
type DailyCompounding struct{}

// ToSimpleRate implementa Normalizer.
func (DailyCompounding) ToSimpleRate(apy float64) float64 {
	if 1+apy <= 0 {
		return -compoundingPeriods
	}
	return compoundingPeriods * (math.Pow(1+apy, 1.0/compoundingPeriods) - 1)
}

// Identity no convierte nada. Útil para fuentes que ya reportan APR y en tests.
var Identity Normalizer = NormalizerFunc(func(apy float64) float64 { return apy })

// ScaledAPR es la contribución de un yield crudo a un ledger: normalize(y) × ratio.
func ScaledAPR(n Normalizer, raw, ratio float64) float64 {
	return n.ToSimpleRate(raw) * ratio
}

var hundred = decimal.NewFromInt(100)

// FormatPercent formatea una tasa (0.0512) como porcentaje con 2 decimales ("5.12%").
func FormatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(hundred).StringFixed(2) + "%"
}
