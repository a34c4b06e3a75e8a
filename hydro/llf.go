package hydro

import (
	"math"

	"github.com/notargets/gohydro/eos"
	"github.com/notargets/gohydro/geometry"
)

/*
	SingleStateLLF computes a first order local Lax-Friedrichs flux for
	one face from the cell centered primitives on either side and the
	ADM geometry bundle at the face. The one sided transport fluxes are
	scaled by the lapse, advected by the face normal shift component and
	densitized by sqrt(det g); the dissipation term is bounded by the
	fastest local signal speed. In flat space (identity metric, zero
	shift, unit lapse) this is the classic LLF flux.

	wl, wr and flux carry the full variable set including any passive
	scalars; flux is overwritten in place.
*/
func SingleStateLLF(e eos.EOS, wl, wr []float64, ivx int,
	g3d [6]float64, betaU [3]float64, alpha float64, flux []float64) {
	var (
		d     = ivx - IVX
		betan = betaU[d]
		sdetg = math.Sqrt(geometry.SpatialDet(g3d))
		nvar  = len(flux)
		nhyd  = e.NVars()
		ul    = make([]float64, nhyd)
		ur    = make([]float64, nhyd)
		fl    = make([]float64, nhyd)
		fr    = make([]float64, nhyd)
	)
	e.PrimToCons(wl, ul)
	e.PrimToCons(wr, ur)
	physicalFlux(e, wl, ivx, fl)
	physicalFlux(e, wr, ivx, fr)

	cl := e.SoundSpeed(wl)
	cr := e.SoundSpeed(wr)
	lam := alpha*math.Max(math.Abs(wl[ivx])+cl, math.Abs(wr[ivx])+cr) + math.Abs(betan)

	for n := 0; n < nhyd; n++ {
		qfl := alpha*fl[n] - betan*ul[n]
		qfr := alpha*fr[n] - betan*ur[n]
		flux[n] = sdetg * (0.5*(qfl+qfr) - 0.5*lam*(ur[n]-ul[n]))
	}
	// Scalars upwind on the corrected density flux
	for n := nhyd; n < nvar; n++ {
		if flux[IDN] >= 0. {
			flux[n] = flux[IDN] * wl[n]
		} else {
			flux[n] = flux[IDN] * wr[n]
		}
	}
}

// physicalFlux is the exact Euler flux of a single primitive state in
// the ivx direction
func physicalFlux(e eos.EOS, w []float64, ivx int, f []float64) {
	var (
		ivy = IVX + (ivx-IVX+1)%3
		ivz = IVX + (ivx-IVX+2)%3
		rho = w[IDN]
		vx  = w[ivx]
	)
	f[IDN] = rho * vx
	f[ivx] = rho * vx * vx
	f[ivy] = rho * w[ivy] * vx
	f[ivz] = rho * w[ivz] * vx
	if e.Adiabatic() {
		p := w[IPR]
		en := p/(e.Gamma()-1.) + 0.5*rho*(w[IVX]*w[IVX]+w[IVY]*w[IVY]+w[IVZ]*w[IVZ])
		f[ivx] += p
		f[IEN] = (en + p) * vx
	} else {
		cs := e.SoundSpeed(w)
		f[ivx] += cs * cs * rho
	}
}
