package hydro

import (
	"fmt"
	"strings"
	"sync"

	"github.com/notargets/gohydro/mesh"
	"github.com/notargets/gohydro/utils"
)

type FluxType uint

const (
	FLUX_HLLE FluxType = iota
	FLUX_LLF
)

var (
	FluxNames = map[string]FluxType{
		"hlle": FLUX_HLLE,
		"llf":  FLUX_LLF,
	}
	FluxPrintNames = []string{"HLLE", "Local Lax Friedrichs"}
)

func (ft FluxType) Print() (txt string) {
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
		panic(err)
	}
	return
}

/*
	ComputeFluxes fills the face flux fields for every active direction
	from the cell centered primitives in W0. Each direction is swept as
	a set of independent grid lines (pencils) distributed over worker
	goroutines; a pencil is gathered into worker local tables, the left
	and right face states reconstructed, and the Riemann solver run over
	the interior face range. Workers own disjoint pencils so the flux
	field writes never overlap.
*/
func (h *Hydro) ComputeFluxes() {
	var (
		mb = h.MB
	)
	for d := 0; d < mb.NDim(); d++ {
		h.sweepDirection(d)
	}
}

func (h *Hydro) sweepDirection(d int) {
	var (
		pm = h.PencilParts[d]
		NP = h.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			pMin, pMax := pm.GetBucketRange(np)
			for p := pMin; p < pMax; p++ {
				h.sweepPencil(d, p, np)
			}
		}(np)
	}
	wg.Wait()
}

func (h *Hydro) sweepPencil(d, p, np int) {
	var (
		mb        = h.MB
		ncells    = mb.NCells()
		s         = &h.sweep[np]
		wD        = h.W0.DataP
		fD        = h.Flx[d].DataP
		_, stride = s.wp.Dims()
		sLo, sHi  = h.SweepBounds(d)
		ivx       = IVX + d
		lineLen   int
	)
	// Full line length along d including ghosts
	switch d {
	case mesh.X1:
		lineLen = mb.N1
	case mesh.X2:
		lineLen = mb.N2
	case mesh.X3:
		lineLen = mb.N3
	}
	// Gather the pencil
	wpD := s.wp.DataP
	for n := 0; n < h.NVar; n++ {
		for c := 0; c < lineLen; c++ {
			wpD[c+n*stride] = wD[h.PencilCell(d, p, c)+n*ncells]
		}
	}
	// Reconstruct face states on faces sLo..sHi+1
	switch h.ReconOrder {
	case 1:
		DonorCell(h.NVar, sLo, sHi+1, s.wp, s.wl, s.wr)
	case 2:
		PiecewiseLinear(h.NVar, sLo, sHi+1, s.wp, s.wl, s.wr)
	}
	// Solve the local Riemann problem on each face
	switch h.FluxCalcAlgo {
	case FLUX_HLLE:
		h.HLLEFluxes(sLo, sHi+1, ivx, s.wl, s.wr, s.fx)
	case FLUX_LLF:
		h.LLFFluxes(d, p, sLo, sHi+1, ivx, s.wl, s.wr, s.fx)
	}
	// Scatter into the global flux field
	fxD := s.fx.DataP
	for n := 0; n < h.NVar; n++ {
		for c := sLo; c <= sHi+1; c++ {
			fD[h.PencilCell(d, p, c)+n*ncells] = fxD[c+n*stride]
		}
	}
}

// LLFFluxes runs the geometry aware single state flux over a face range,
// used when the local Lax Friedrichs solver is selected for the bulk sweep
func (h *Hydro) LLFFluxes(d, p, il, iu, ivx int, wl, wr, flx utils.Matrix) {
	var (
		_, stride = flx.Dims()
		wlD, wrD  = wl.DataP, wr.DataP
		fD        = flx.DataP
		wli       = make([]float64, h.NVar)
		wri       = make([]float64, h.NVar)
		fi        = make([]float64, h.NVar)
	)
	for i := il; i <= iu; i++ {
		for n := 0; n < h.NVar; n++ {
			wli[n] = wlD[i+n*stride]
			wri[n] = wrD[i+n*stride]
		}
		k, j, ii := h.PencilKJI(d, p, i)
		g3d, betaU, alpha := h.Geom.FaceMetric(k, j, ii, d)
		SingleStateLLF(h.EOS, wli, wri, ivx, g3d, betaU, alpha, fi)
		for n := 0; n < h.NVar; n++ {
			fD[i+n*stride] = fi[n]
		}
	}
}
