package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func time1Hora() time.Duration { return time.Hour }

func TestCircuitBreaker_AbreTrasUmbralDeFallas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time1Hora()})
	falla := errors.New("boom")

	for i := 0; i < 3; i++ {
		require.Equal(t, CBClosed, cb.State())
		_ = cb.Execute(func() error { return falla })
	}
	assert.Equal(t, CBOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return nil }), ErrCircuitOpen)
}

func TestCircuitBreaker_ExitoReiniciaElConteo(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time1Hora()})
	falla := errors.New("boom")

	_ = cb.Execute(func() error { return falla })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return falla })

	assert.Equal(t, CBClosed, cb.State(), "interleaved success keeps the circuit closed")
}

func TestCircuitBreaker_MedioAbiertoYRecuperacion(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	_ = cb.Execute(func() error { return errors.New("boom") })
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	// Two probe successes close the circuit again
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_FalloEnSondaReabre(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	_ = cb.Execute(func() error { return errors.New("boom") })
	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	_ = cb.Execute(func() error { return errors.New("boom") })
	assert.Equal(t, CBOpen, cb.State())
}
