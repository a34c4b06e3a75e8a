package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gohydro/mesh"
)

func TestFOFCNoOpOnSmoothFlow(t *testing.T) {
	var (
		h  = newTestHydro1D(32, 2, 0, FLUX_HLLE, true)
		mb = h.MB
	)
	h.InitializeSolution(DENSITY_WAVE)
	h.ApplyBCs()
	h.ComputeFluxes()
	h.U1.CopyFrom(h.U0)
	saved := h.Flx[mesh.X1].Copy()

	nFlagged := h.FirstOrderFluxCorrection(1., 0., 0.001)
	assert.Equal(t, 0, nFlagged)
	assert.Equal(t, saved.DataP, h.Flx[mesh.X1].DataP)
	for id := 0; id < mb.NCells(); id++ {
		assert.False(t, h.FOFCFlags[id])
	}
}

func TestFOFCPredictedState(t *testing.T) {
	var (
		h      = newTestHydro1D(16, 1, 0, FLUX_HLLE, true)
		mb     = h.MB
		ncells = mb.NCells()
	)
	h.InitializeSolution(DENSITY_WAVE)
	h.ApplyBCs()
	h.ComputeFluxes()
	h.U1.CopyFrom(h.U0)
	// Make the two registers distinct so the blend coefficients matter
	h.U1.Scale(0.9)

	var (
		gam0, gam1 = 0.25, 0.75
		betaDt     = 0.002
		u0D, u1D   = h.U0.DataP, h.U1.DataP
		fD         = h.Flx[mesh.X1].DataP
		utD        = h.Utest.DataP
		dtodx      = betaDt / mb.Dx1
	)
	// Hand-computed blend, captured before the call can touch anything
	expect := make([]float64, h.NVar*ncells)
	for c := 0; c < mb.NInterior(); c++ {
		k, j, i := mb.InteriorCell(c)
		id := mb.ID(k, j, i)
		for n := 0; n < h.NVar; n++ {
			nid := id + n*ncells
			expect[nid] = gam0*u0D[nid] + gam1*u1D[nid] - dtodx*(fD[nid+1]-fD[nid])
		}
	}
	nFlagged := h.FirstOrderFluxCorrection(gam0, gam1, betaDt)
	assert.Equal(t, 0, nFlagged)
	for c := 0; c < mb.NInterior(); c++ {
		k, j, i := mb.InteriorCell(c)
		id := mb.ID(k, j, i)
		for n := 0; n < h.NVar; n++ {
			nid := id + n*ncells
			assert.InDelta(t, expect[nid], utD[nid], 1.e-14)
		}
	}
}

func TestFOFCPatchesFlaggedCellFaces(t *testing.T) {
	var (
		h      = newTestHydro1D(32, 2, 0, FLUX_HLLE, true)
		mb     = h.MB
		ncells = mb.NCells()
	)
	h.InitializeSolution(DENSITY_WAVE)
	h.ApplyBCs()
	h.ComputeFluxes()
	h.U1.CopyFrom(h.U0)
	saved := h.Flx[mesh.X1].Copy()

	// Break the energy of one interior cell so its predicted state fails
	// the floor test
	var (
		ic = mb.Is + 13
		id = mb.ID(mb.Ks, mb.Js, ic)
	)
	h.U0.DataP[id+IEN*ncells] = -1.

	nFlagged := h.FirstOrderFluxCorrection(1., 0., 0.001)
	assert.Equal(t, 1, nFlagged)
	assert.True(t, h.FOFCFlags[id])

	// Both faces of the flagged cell carry the first order flux built
	// from the adjacent cell centers
	var (
		wD = h.W0.DataP
		fD = h.Flx[mesh.X1].DataP
	)
	for _, face := range []int{ic, ic + 1} {
		var (
			idL  = mb.ID(mb.Ks, mb.Js, face-1)
			idR  = mb.ID(mb.Ks, mb.Js, face)
			wl   = make([]float64, h.NVar)
			wr   = make([]float64, h.NVar)
			want = make([]float64, h.NVar)
		)
		for n := 0; n < h.NVar; n++ {
			wl[n] = wD[idL+n*ncells]
			wr[n] = wD[idR+n*ncells]
		}
		g3d, betaU, alpha := h.Geom.FaceMetric(mb.Ks, mb.Js, face, mesh.X1)
		SingleStateLLF(h.EOS, wl, wr, IVX, g3d, betaU, alpha, want)
		for n := 0; n < h.NVar; n++ {
			assert.Equal(t, want[n], fD[idR+n*ncells])
		}
		// The patch actually changed the reconstructed flux
		assert.False(t, nearVec(want, savedCol(saved.DataP, idR, h.NVar, ncells), 1.e-12))
	}
	// Every other face is untouched
	for i := mb.Is; i <= mb.Ie+1; i++ {
		if i == ic || i == ic+1 {
			continue
		}
		fid := mb.ID(mb.Ks, mb.Js, i)
		for n := 0; n < h.NVar; n++ {
			assert.Equal(t, saved.DataP[fid+n*ncells], fD[fid+n*ncells])
		}
	}
}

// Two adjacent flagged cells share a face; the sweep must patch it once
// with the same value either cell would produce
func TestFOFCAdjacentFlaggedCells(t *testing.T) {
	var (
		h      = newTestHydro1D(32, 2, 0, FLUX_HLLE, true)
		mb     = h.MB
		ncells = mb.NCells()
	)
	h.InitializeSolution(DENSITY_WAVE)
	h.ApplyBCs()
	h.ComputeFluxes()
	var (
		ic  = mb.Is + 7
		id0 = mb.ID(mb.Ks, mb.Js, ic)
		id1 = mb.ID(mb.Ks, mb.Js, ic+1)
	)
	h.FOFCFlags[id0] = true
	h.FOFCFlags[id1] = true
	h.patchPencil(mesh.X1, 0, 0)

	var (
		wD = h.W0.DataP
		fD = h.Flx[mesh.X1].DataP
	)
	// Three faces patched: lower of ic, shared, upper of ic+1
	for _, face := range []int{ic, ic + 1, ic + 2} {
		var (
			idL  = mb.ID(mb.Ks, mb.Js, face-1)
			idR  = mb.ID(mb.Ks, mb.Js, face)
			wl   = make([]float64, h.NVar)
			wr   = make([]float64, h.NVar)
			want = make([]float64, h.NVar)
		)
		for n := 0; n < h.NVar; n++ {
			wl[n] = wD[idL+n*ncells]
			wr[n] = wD[idR+n*ncells]
		}
		g3d, betaU, alpha := h.Geom.FaceMetric(mb.Ks, mb.Js, face, mesh.X1)
		SingleStateLLF(h.EOS, wl, wr, IVX, g3d, betaU, alpha, want)
		for n := 0; n < h.NVar; n++ {
			assert.Equal(t, want[n], fD[idR+n*ncells])
		}
	}
	// Patching again with the same flags is a no-op
	saved := h.Flx[mesh.X1].Copy()
	h.patchPencil(mesh.X1, 0, 0)
	assert.Equal(t, saved.DataP, h.Flx[mesh.X1].DataP)
}

func savedCol(data []float64, id, nvar, ncells int) (w []float64) {
	w = make([]float64, nvar)
	for n := 0; n < nvar; n++ {
		w[n] = data[id+n*ncells]
	}
	return
}
