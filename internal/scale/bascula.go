// Package scale defines the weight-source capability consumed by the station
// engine. The repository ships a simulated driver; a real serial/USB driver
// substitutes it without touching the state machine.
package scale

import (
	"context"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"
)

// Bascula returns the current reading of the platform in kilograms.
// Reading may block on a real device, hence the context.
type Bascula interface {
	Leer(ctx context.Context) (decimal.Decimal, error)
}

// Simulador produces random readings inside a plausible range, rounded to
// two decimals. It stands in for the real scale during development.
type Simulador struct {
	mu  sync.Mutex
	rng *rand.Rand
	min float64
	max float64
}

// NewSimulador builds a simulator over [min, max] kg. A zero or inverted
// range falls back to 0.50–55.00.
func NewSimulador(min, max float64, seed int64) *Simulador {
	if max <= min {
		min, max = 0.50, 55.00
	}
	return &Simulador{rng: rand.New(rand.NewSource(seed)), min: min, max: max}
}

func (s *Simulador) Leer(_ context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	v := s.min + s.rng.Float64()*(s.max-s.min)
	s.mu.Unlock()
	return decimal.NewFromFloat(v).Round(2), nil
}
