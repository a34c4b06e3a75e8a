package hydro

import (
	"sync"

	"github.com/notargets/gohydro/mesh"
)

/*
	FirstOrderFluxCorrection guards the upcoming conservative update.
	First an estimate of the updated conserved variables is made from
	the current face fluxes and the stage blend recurrence

		utest = gam0*u0 + gam1*u1 - beta*dt/dx * divF

	This estimate is run through the equation of state in test mode to
	flag any cell where floors would be required during the conversion
	to primitives. Then every face of a flagged cell, on both sides and
	in every active dimension, has its flux replaced with a first order
	local Lax-Friedrichs flux built from the cell centered primitives
	and the face metric. Often this is enough to prevent floors from
	being needed.

	Three bulk synchronous phases: predict, test, patch. Within each
	phase workers own disjoint index ranges; the patch phase sweeps
	faces rather than cells so that two adjacent flagged cells never
	contend for their shared face.

	Returns the number of flagged cells; zero means the flux field was
	left untouched.
*/
func (h *Hydro) FirstOrderFluxCorrection(gam0, gam1, betaDt float64) (nFlagged int) {
	var (
		mb     = h.MB
		ncells = mb.NCells()
		NP     = h.ParallelDegree
		wg     = sync.WaitGroup{}

		u0D, u1D, utD = h.U0.DataP, h.U1.DataP, h.Utest.DataP
		flx1D         = h.Flx[mesh.X1].DataP
		flx2D         = h.Flx[mesh.X2].DataP
		flx3D         = h.Flx[mesh.X3].DataP

		dtodx1 = betaDt / mb.Dx1
		dtodx2 = betaDt / mb.Dx2
		dtodx3 = betaDt / mb.Dx3

		// Flat index offset to a cell's upper face in each direction
		of1, of2, of3 = 1, mb.N1, mb.N1 * mb.N2
	)

	// Phase A: estimate updated conserved variables into the scratch
	// buffer, never the live state
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			cMin, cMax := h.CellParts.GetBucketRange(np)
			for c := cMin; c < cMax; c++ {
				k, j, i := mb.InteriorCell(c)
				id := mb.ID(k, j, i)
				for n := 0; n < h.NVar; n++ {
					nid := id + n*ncells
					divf := dtodx1 * (flx1D[nid+of1] - flx1D[nid])
					if mb.MultiD {
						divf += dtodx2 * (flx2D[nid+of2] - flx2D[nid])
					}
					if mb.ThreeD {
						divf += dtodx3 * (flx3D[nid+of3] - flx3D[nid])
					}
					utD[nid] = gam0*u0D[nid] + gam1*u1D[nid] - divf
				}
			}
		}(np)
	}
	wg.Wait()

	// Test whether conversion to primitives would require floors
	var counts = make([]int, NP)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				uc         = h.sweep[np].uc
				cMin, cMax = h.CellParts.GetBucketRange(np)
			)
			for c := cMin; c < cMax; c++ {
				k, j, i := mb.InteriorCell(c)
				id := mb.ID(k, j, i)
				for n := 0; n < h.NVar; n++ {
					uc[n] = utD[id+n*ncells]
				}
				flag := h.EOS.ConsToPrim(uc, nil, true)
				h.FOFCFlags[id] = flag
				if flag {
					counts[np]++
				}
			}
		}(np)
	}
	wg.Wait()
	for np := 0; np < NP; np++ {
		nFlagged += counts[np]
	}
	if nFlagged == 0 {
		return
	}

	// Phase B: replace the fluxes on every face touching a flagged cell
	// with first order LLF fluxes
	for d := 0; d < mb.NDim(); d++ {
		pm := h.PencilParts[d]
		for np := 0; np < NP; np++ {
			wg.Add(1)
			go func(d, np int) {
				defer wg.Done()
				pMin, pMax := pm.GetBucketRange(np)
				for p := pMin; p < pMax; p++ {
					h.patchPencil(d, p, np)
				}
			}(d, np)
		}
		wg.Wait()
	}
	return
}

func (h *Hydro) patchPencil(d, p, np int) {
	var (
		mb       = h.MB
		ncells   = mb.NCells()
		wD       = h.W0.DataP
		fD       = h.Flx[d].DataP
		sLo, sHi = h.SweepBounds(d)
		ivx      = IVX + d
		s        = &h.sweep[np]
		wli, wri = s.wc, s.uc
		fi       = s.fc
	)
	for f := sLo; f <= sHi+1; f++ {
		idL := h.PencilCell(d, p, f-1)
		idR := h.PencilCell(d, p, f)
		if !(h.FOFCFlags[idL] || h.FOFCFlags[idR]) {
			continue
		}
		// First order states: the pre-reconstruction cell centers
		for n := 0; n < h.NVar; n++ {
			wli[n] = wD[idL+n*ncells]
			wri[n] = wD[idR+n*ncells]
		}
		k, j, i := h.PencilKJI(d, p, f)
		g3d, betaU, alpha := h.Geom.FaceMetric(k, j, i, d)
		SingleStateLLF(h.EOS, wli, wri, ivx, g3d, betaU, alpha, fi)
		for n := 0; n < h.NVar; n++ {
			fD[idR+n*ncells] = fi[n]
		}
	}
}
