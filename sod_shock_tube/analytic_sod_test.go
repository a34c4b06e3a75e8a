package sod_shock_tube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyticSod(t *testing.T) {
	{ // The post shock pressure solves the Rankine-Hugoniot relation
		pPost := postPressure()
		assert.InDelta(t, 0., sod_func(pPost), 0.000001)
		assert.InDelta(t, 0.30313, pPost, 0.0001)
	}
	{ // Wave ordering and classic values at t = 0.2
		x1, x2, x3, x4 := WavePositions(0.2)
		assert.True(t, x1 < x2 && x2 < x3 && x3 < x4)
		assert.InDelta(t, 0.26335, x1, 0.001)
		assert.InDelta(t, 0.68528, x3, 0.001)
		assert.InDelta(t, 0.85022, x4, 0.001)
	}
	{ // Far field states are untouched, middle states match references
		X := []float64{0.05, 0.5, 0.75, 0.95}
		Rho, P, U, E := Sample(0.2, X)
		assert.InDelta(t, 1., Rho[0], 1.e-12)
		assert.InDelta(t, 1., P[0], 1.e-12)
		assert.InDelta(t, 0., U[0], 1.e-12)
		assert.InDelta(t, 0.42632, Rho[1], 0.0001)
		assert.InDelta(t, 0.92745, U[1], 0.0001)
		assert.InDelta(t, 0.26557, Rho[2], 0.0001)
		assert.InDelta(t, 0.30313, P[2], 0.0001)
		assert.InDelta(t, 0.125, Rho[3], 1.e-12)
		assert.InDelta(t, 0.1, P[3], 1.e-12)
		for i := range X {
			assert.InDelta(t, P[i]/((gamma-1.)*Rho[i]), E[i], 1.e-12)
		}
	}
	{ // SOD_calc brackets each wave with a near-degenerate point pair
		X, Rho, _, _, _ := SOD_calc(0.2)
		assert.Equal(t, 10, len(X))
		for i := 1; i < len(X); i++ {
			assert.True(t, X[i] >= X[i-1])
		}
		// Density jumps across the shock
		assert.True(t, math.Abs(Rho[7]-Rho[8]) > 0.1)
	}
}
