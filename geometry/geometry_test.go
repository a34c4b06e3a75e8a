package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gohydro/mesh"
)

func TestFlat(t *testing.T) {
	g3d, betaU, alpha := Flat{}.FaceMetric(0, 0, 0, mesh.X1)
	assert.Equal(t, [6]float64{1, 0, 0, 1, 0, 1}, g3d)
	assert.Equal(t, [3]float64{0, 0, 0}, betaU)
	assert.Equal(t, 1., alpha)
	assert.InDelta(t, 1., SpatialDet(g3d), 1.e-14)
}

func TestSpatialDet(t *testing.T) {
	// Diagonal metric
	assert.InDelta(t, 24., SpatialDet([6]float64{2, 0, 0, 3, 0, 4}), 1.e-12)
	// Full symmetric metric, checked against cofactor expansion by hand
	g := [6]float64{2, 0.5, 0.1, 3, 0.2, 4}
	det := 2*(3*4-0.2*0.2) - 0.5*(0.5*4-0.2*0.1) + 0.1*(0.5*0.2-3*0.1)
	assert.InDelta(t, det, SpatialDet(g), 1.e-12)
}

func TestSchwarzschildKS(t *testing.T) {
	var (
		mb = mesh.NewMeshBlock(64, 1, 1, 2, 2., 10., -0.5, 0.5, -0.5, 0.5)
		p  = NewSchwarzschildKS(mb, 1.)
	)
	{ // Kerr-Schild identities: det(g) = 1+2H and alpha^2*(1+2H) = 1
		for _, i := range []int{mb.Is, mb.Is + 10, mb.Ie} {
			g3d, betaU, alpha := p.FaceMetric(mb.Ks, mb.Js, i, mesh.X1)
			x := mb.FaceX1(i)
			r := math.Abs(x)
			H := p.Mass / r
			assert.InDelta(t, 1.+2.*H, SpatialDet(g3d), 1.e-12)
			assert.InDelta(t, 1., alpha*alpha*(1.+2.*H), 1.e-12)
			// On the x axis the shift points along x only
			assert.InDelta(t, 2.*H/(1.+2.*H), math.Abs(betaU[0]), 1.e-12)
			assert.InDelta(t, 0., betaU[1], 1.e-12)
			assert.InDelta(t, 0., betaU[2], 1.e-12)
			assert.True(t, alpha < 1.)
		}
	}
	{ // Far from the hole the metric approaches Minkowski
		far := NewSchwarzschildKS(mb, 1.e-8)
		g3d, betaU, alpha := far.FaceMetric(mb.Ks, mb.Js, mb.Ie, mesh.X1)
		assert.InDelta(t, 1., g3d[S11], 1.e-7)
		assert.InDelta(t, 0., g3d[S12], 1.e-7)
		assert.InDelta(t, 1., alpha, 1.e-7)
		assert.InDelta(t, 0., betaU[0], 1.e-7)
	}
	{ // The excision radius keeps the metric finite at the origin
		mb0 := mesh.NewMeshBlock(16, 1, 1, 2, -1., 1., -0.5, 0.5, -0.5, 0.5)
		p0 := NewSchwarzschildKS(mb0, 1.)
		g3d, _, alpha := p0.FaceMetric(mb0.Ks, mb0.Js, mb0.Is+8, mesh.X1)
		assert.False(t, math.IsInf(g3d[S11], 0) || math.IsNaN(g3d[S11]))
		assert.True(t, alpha > 0.)
	}
}
