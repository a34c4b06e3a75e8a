package geometry

import (
	"math"

	"github.com/notargets/gohydro/mesh"
)

// Packed component order of the symmetric spatial 3-metric
const (
	S11 = iota
	S12
	S13
	S22
	S23
	S33
)

// Provider supplies the ADM geometry bundle at a cell face: the spatial
// metric, the shift vector and the lapse. Providers own the spacetime
// data; callers never mutate what they are handed.
type Provider interface {
	FaceMetric(k, j, i, dir int) (g3d [6]float64, betaU [3]float64, alpha float64)
}

// SpatialDet is the determinant of the packed symmetric 3-metric
func SpatialDet(g [6]float64) float64 {
	return g[S11]*(g[S22]*g[S33]-g[S23]*g[S23]) -
		g[S12]*(g[S12]*g[S33]-g[S23]*g[S13]) +
		g[S13]*(g[S12]*g[S23]-g[S22]*g[S13])
}

// Flat is Minkowski space in Cartesian coordinates
type Flat struct{}

func (Flat) FaceMetric(k, j, i, dir int) (g3d [6]float64, betaU [3]float64, alpha float64) {
	g3d[S11], g3d[S22], g3d[S33] = 1., 1., 1.
	alpha = 1.
	return
}

/*
	SchwarzschildKS is the non-spinning Cartesian Kerr-Schild metric of a
	black hole of mass M at the coordinate origin:

		g_ij   = eta_ij + 2H l_i l_j,  H = M/r,  l_i = x_i/r
		alpha  = 1/sqrt(1 + 2H)
		beta^i = 2H l^i / (1 + 2H)

	The radius is clamped away from the singularity by rMin, an excision
	radius set from the cell width at construction.
*/
type SchwarzschildKS struct {
	Mass float64
	rMin float64
	mb   *mesh.MeshBlock
}

func NewSchwarzschildKS(mb *mesh.MeshBlock, mass float64) (p *SchwarzschildKS) {
	p = &SchwarzschildKS{
		Mass: mass,
		rMin: 0.5 * mb.Dx1,
		mb:   mb,
	}
	return
}

func (p *SchwarzschildKS) FaceMetric(k, j, i, dir int) (g3d [6]float64, betaU [3]float64, alpha float64) {
	var (
		mb      = p.mb
		x, y, z float64
	)
	switch dir {
	case mesh.X1:
		x, y, z = mb.FaceX1(i), mb.CellX2(j), mb.CellX3(k)
	case mesh.X2:
		x, y, z = mb.CellX1(i), mb.FaceX2(j), mb.CellX3(k)
	case mesh.X3:
		x, y, z = mb.CellX1(i), mb.CellX2(j), mb.FaceX3(k)
	}
	r := math.Sqrt(x*x + y*y + z*z)
	if r < p.rMin {
		r = p.rMin
	}
	var (
		H   = p.Mass / r
		l   = [3]float64{x / r, y / r, z / r}
		f   = 2. * H
		oop = 1. / (1. + f)
	)
	g3d[S11] = 1. + f*l[0]*l[0]
	g3d[S12] = f * l[0] * l[1]
	g3d[S13] = f * l[0] * l[2]
	g3d[S22] = 1. + f*l[1]*l[1]
	g3d[S23] = f * l[1] * l[2]
	g3d[S33] = 1. + f*l[2]*l[2]
	alpha = math.Sqrt(oop)
	for n := 0; n < 3; n++ {
		betaU[n] = f * l[n] * oop
	}
	return
}
