package eos

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdealGas(t *testing.T) {
	e := NewIdealGas(1.4, 1.e-8, 1.e-10)
	{ // Round trip prim -> cons -> prim
		w := []float64{1.2, 0.3, -0.1, 0.05, 0.75}
		u := make([]float64, 5)
		w2 := make([]float64, 5)
		e.PrimToCons(w, u)
		assert.Equal(t, w[IDN], u[IDN])
		assert.InDelta(t, w[IDN]*w[IVX], u[IVX], 1.e-14)
		floored := e.ConsToPrim(u, w2, false)
		assert.False(t, floored)
		for n := 0; n < 5; n++ {
			assert.InDelta(t, w[n], w2[n], 1.e-13)
		}
	}
	{ // Floors fire on negative density and energy deficit
		u := []float64{-1., 0., 0., 0., 1.}
		w := make([]float64, 5)
		assert.True(t, e.ConsToPrim(u, w, false))
		assert.True(t, w[IDN] > 0.)
		u = []float64{1., 10., 0., 0., 1.} // kinetic energy exceeds total
		assert.True(t, e.ConsToPrim(u, w, false))
		assert.True(t, w[IPR] > 0.)
	}
	{ // Test mode flags without touching the output state
		u := []float64{-1., 0., 0., 0., 1.}
		w := []float64{7., 7., 7., 7., 7.}
		assert.True(t, e.ConsToPrim(u, w, true))
		assert.Equal(t, []float64{7., 7., 7., 7., 7.}, w)
		assert.True(t, e.ConsToPrim(u, nil, true))
		u = []float64{1., 0.1, 0., 0., 1.}
		assert.False(t, e.ConsToPrim(u, nil, true))
	}
	{
		w := []float64{1., 0., 0., 0., 1.4}
		assert.InDelta(t, 1.4, e.SoundSpeed(w), 1.e-12)
		assert.True(t, e.Adiabatic())
		assert.Equal(t, 5, e.NVars())
		assert.Panics(t, func() { NewIdealGas(1., 0, 0) })
	}
}

func TestIsothermal(t *testing.T) {
	e := NewIsothermal(0.5, 1.e-8)
	{
		w := []float64{2., 0.3, -0.1, 0.05}
		u := make([]float64, 4)
		w2 := make([]float64, 4)
		e.PrimToCons(w, u)
		assert.False(t, e.ConsToPrim(u, w2, false))
		for n := 0; n < 4; n++ {
			assert.InDelta(t, w[n], w2[n], 1.e-13)
		}
		assert.Equal(t, 0.5, e.SoundSpeed(nil))
		assert.False(t, e.Adiabatic())
		assert.Equal(t, 4, e.NVars())
	}
	{
		u := []float64{math.NaN(), 0., 0., 0.}
		assert.True(t, e.ConsToPrim(u, nil, true))
		assert.Panics(t, func() { NewIsothermal(0., 0) })
	}
}

func TestEOSNames(t *testing.T) {
	assert.Equal(t, IDEAL_GAS, NewType("Ideal_Gas"))
	assert.Equal(t, ISOTHERMAL, NewType("isothermal"))
	assert.Equal(t, "Ideal Gas", IDEAL_GAS.Print())
	assert.Panics(t, func() { NewType("polytropic") })
}
