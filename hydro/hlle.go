package hydro

import (
	"math"

	"github.com/notargets/gohydro/utils"
)

/*
	HLLEFluxes computes fluxes over the face range [il,iu] of one pencil
	using the Harten-Lax-van Leer-Einfeldt two wave solver. The flux is
	diffusive, especially at contacts, but it is positively conservative:
	one conservative update with these fluxes cannot produce negative
	density or pressure, which is why it also backs the flux correction
	fallback path.

	wl and wr hold the reconstructed primitive states on the left and
	right of each face, rows indexed by the variable constants with the
	stored (unpermuted) component order; ivx names the normal direction
	and the transverse momentum rows are permuted cyclically from it.

	REFERENCES:
	- E.F. Toro, "Riemann Solvers and numerical methods for fluid
	  dynamics", 2nd ed., Springer-Verlag, Berlin, (1999) chpt. 10.
	- Einfeldt et al., "On Godunov-type methods near low densities",
	  JCP, 92, 273 (1991)
*/
func (h *Hydro) HLLEFluxes(il, iu, ivx int, wl, wr, flx utils.Matrix) {
	var (
		ivy              = IVX + (ivx-IVX+1)%3
		ivz              = IVX + (ivx-IVX+2)%3
		adiabatic        = h.EOS.Adiabatic()
		gm1, igm1, isoCs float64
		_, stride        = flx.Dims()
		wlD, wrD, fD     = wl.DataP, wr.DataP, flx.DataP
		wli, wri, wroe   [5]float64
		fl, fr, flxi     [5]float64
	)
	if adiabatic {
		gm1 = h.EOS.Gamma() - 1.
		igm1 = 1. / gm1
	} else {
		isoCs = h.EOS.SoundSpeed(nil)
	}

	for i := il; i <= iu; i++ {
		// Step 1: load L/R states, normal component first
		wli[IDN] = wlD[i+IDN*stride]
		wli[IVX] = wlD[i+ivx*stride]
		wli[IVY] = wlD[i+ivy*stride]
		wli[IVZ] = wlD[i+ivz*stride]
		if adiabatic {
			wli[IPR] = wlD[i+IPR*stride]
		}

		wri[IDN] = wrD[i+IDN*stride]
		wri[IVX] = wrD[i+ivx*stride]
		wri[IVY] = wrD[i+ivy*stride]
		wri[IVZ] = wrD[i+ivz*stride]
		if adiabatic {
			wri[IPR] = wrD[i+IPR*stride]
		}

		// Step 2: Roe averaged state with sqrt(density) weights
		var (
			sqrtdl  = math.Sqrt(wli[IDN])
			sqrtdr  = math.Sqrt(wri[IDN])
			isdlpdr = 1. / (sqrtdl + sqrtdr)
			el, er  float64
		)
		wroe[IDN] = sqrtdl * sqrtdr
		wroe[IVX] = (sqrtdl*wli[IVX] + sqrtdr*wri[IVX]) * isdlpdr
		wroe[IVY] = (sqrtdl*wli[IVY] + sqrtdr*wri[IVY]) * isdlpdr
		wroe[IVZ] = (sqrtdl*wli[IVZ] + sqrtdr*wri[IVZ]) * isdlpdr

		// Following Roe(1981) the enthalpy H=(E+P)/d is averaged for
		// adiabatic flows rather than E or P directly:
		// sqrtdl*hl = sqrtdl*(el+pl)/dl = (el+pl)/sqrtdl
		var hroe float64
		if adiabatic {
			el = wli[IPR]*igm1 + 0.5*wli[IDN]*(wli[IVX]*wli[IVX]+wli[IVY]*wli[IVY]+wli[IVZ]*wli[IVZ])
			er = wri[IPR]*igm1 + 0.5*wri[IDN]*(wri[IVX]*wri[IVX]+wri[IVY]*wri[IVY]+wri[IVZ]*wri[IVZ])
			hroe = ((el+wli[IPR])/sqrtdl + (er+wri[IPR])/sqrtdr) * isdlpdr
		}

		// Step 3: sound speeds of the L, R and Roe averaged states
		cl := h.EOS.SoundSpeed(wli[:])
		cr := h.EOS.SoundSpeed(wri[:])
		a := isoCs
		if adiabatic {
			q := hroe - 0.5*(wroe[IVX]*wroe[IVX]+wroe[IVY]*wroe[IVY]+wroe[IVZ]*wroe[IVZ])
			if q < 0. { // round-off protection for the radicand
				a = 0.
			} else {
				a = math.Sqrt(gm1 * q)
			}
		}

		// Step 4: bound the extremal wave speeds
		al := math.Min(wroe[IVX]-a, wli[IVX]-cl)
		ar := math.Max(wroe[IVX]+a, wri[IVX]+cr)
		bp := math.Max(ar, 0.)
		bm := math.Min(al, 0.)

		// Step 5: L/R fluxes along the lines bm/bp: F_L - bm*U_L, F_R - bp*U_R
		vxl := wli[IVX] - bm
		vxr := wri[IVX] - bp

		fl[IDN] = wli[IDN] * vxl
		fr[IDN] = wri[IDN] * vxr

		fl[IVX] = wli[IDN] * wli[IVX] * vxl
		fr[IVX] = wri[IDN] * wri[IVX] * vxr

		fl[IVY] = wli[IDN] * wli[IVY] * vxl
		fr[IVY] = wri[IDN] * wri[IVY] * vxr

		fl[IVZ] = wli[IDN] * wli[IVZ] * vxl
		fr[IVZ] = wri[IDN] * wri[IVZ] * vxr

		if adiabatic {
			fl[IVX] += wli[IPR]
			fr[IVX] += wri[IPR]
			fl[IEN] = el*vxl + wli[IPR]*wli[IVX]
			fr[IEN] = er*vxr + wri[IPR]*wri[IVX]
		} else {
			fl[IVX] += (isoCs * isoCs) * wli[IDN]
			fr[IVX] += (isoCs * isoCs) * wri[IDN]
		}

		// Step 6: the HLL blend, degenerate bp == bm reduces to an average
		tmp := 0.
		if bp != bm {
			tmp = 0.5 * (bp + bm) / (bp - bm)
		}

		flxi[IDN] = 0.5*(fl[IDN]+fr[IDN]) + (fl[IDN]-fr[IDN])*tmp
		flxi[IVX] = 0.5*(fl[IVX]+fr[IVX]) + (fl[IVX]-fr[IVX])*tmp
		flxi[IVY] = 0.5*(fl[IVY]+fr[IVY]) + (fl[IVY]-fr[IVY])*tmp
		flxi[IVZ] = 0.5*(fl[IVZ]+fr[IVZ]) + (fl[IVZ]-fr[IVZ])*tmp
		if adiabatic {
			flxi[IEN] = 0.5*(fl[IEN]+fr[IEN]) + (fl[IEN]-fr[IEN])*tmp
		}

		fD[i+IDN*stride] = flxi[IDN]
		fD[i+ivx*stride] = flxi[IVX]
		fD[i+ivy*stride] = flxi[IVY]
		fD[i+ivz*stride] = flxi[IVZ]
		if adiabatic {
			fD[i+IEN*stride] = flxi[IEN]
		}

		// Passive scalars ride the density flux, upwinded
		for n := h.NHydro; n < h.NVar; n++ {
			if flxi[IDN] >= 0. {
				fD[i+n*stride] = flxi[IDN] * wlD[i+n*stride]
			} else {
				fD[i+n*stride] = flxi[IDN] * wrD[i+n*stride]
			}
		}
	}
}
