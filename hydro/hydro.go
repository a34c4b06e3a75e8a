package hydro

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/notargets/gohydro/eos"
	"github.com/notargets/gohydro/geometry"
	"github.com/notargets/gohydro/mesh"
	"github.com/notargets/gohydro/utils"
)

// Aliases into the state vectors, see package eos
const (
	IDN = eos.IDN
	IVX = eos.IVX
	IVY = eos.IVY
	IVZ = eos.IVZ
	IPR = eos.IPR
	IEN = eos.IEN
)

/*
	Hydro is a finite volume solver for the compressible Euler equations
	on one structured mesh block. All fields live in flat Matrix arenas
	of shape (NVar, NCells) owned here and passed by reference into the
	Riemann solver and flux correction sweeps, which never allocate:
		U0    - conserved state, advanced in place by the integrator
		U1    - conserved state saved at the start of the full step
		W0    - primitive state, cell centers
		Utest - scratch candidate state used by flux correction
		Flx   - one face centered flux field per logical direction,
		        addressed by the lower-face cell index
*/
type Hydro struct {
	MB   *mesh.MeshBlock
	EOS  eos.EOS
	Geom geometry.Provider

	FluxCalcAlgo           FluxType
	ReconOrder             int // 1: donor cell, 2: piecewise linear
	CFL, FinalTime         float64
	NHydro, NScalars, NVar int
	FOFCEnabled            bool
	BCs                    [3]BCType
	Case                   InitType

	U0, U1, W0, Utest utils.Matrix
	Flx               [3]utils.Matrix
	FOFCFlags         []bool
	FloorsApplied     int // floors silently applied (flux correction disabled)

	ParallelDegree int
	CellParts      *utils.PartitionMap    // interior cells, for cell scans
	PencilParts    [3]*utils.PartitionMap // sweep pencils, one map per direction

	Stages []StageCoeffs
	chart  ChartState

	sweep []sweepScratch // one per worker
	Time  float64
	Steps int
}

type sweepScratch struct {
	wp, wl, wr, fx utils.Matrix // pencil tables: (NVar, longest line)
	uc, wc, fc     []float64    // single cell workspaces
}

func NewHydro(mb *mesh.MeshBlock, e eos.EOS, geom geometry.Provider,
	fluxType FluxType, reconOrder, nScalars int, cfl float64,
	integrator string, fofc bool, procLimit int) (h *Hydro) {
	if reconOrder < 1 || reconOrder > 2 {
		panic(fmt.Errorf("unsupported reconstruction order %d", reconOrder))
	}
	h = &Hydro{
		MB:           mb,
		EOS:          e,
		Geom:         geom,
		FluxCalcAlgo: fluxType,
		ReconOrder:   reconOrder,
		CFL:          cfl,
		NHydro:       e.NVars(),
		NScalars:     nScalars,
		FOFCEnabled:  fofc,
		Stages:       NewStageCoeffs(integrator),
		BCs:          [3]BCType{BC_PERIODIC, BC_PERIODIC, BC_PERIODIC},
	}
	h.NVar = h.NHydro + nScalars
	if reconOrder == 2 && mb.NGhost < 2 {
		panic("piecewise linear reconstruction needs two ghost zones")
	}

	ncells := mb.NCells()
	h.U0 = utils.NewMatrix(h.NVar, ncells).SetName("U0")
	h.U1 = utils.NewMatrix(h.NVar, ncells).SetName("U1")
	h.W0 = utils.NewMatrix(h.NVar, ncells).SetName("W0")
	h.Utest = utils.NewMatrix(h.NVar, ncells).SetName("Utest")
	for d := 0; d < 3; d++ {
		h.Flx[d] = utils.NewMatrix(h.NVar, ncells)
	}
	h.FOFCFlags = make([]bool, ncells)

	h.SetParallelDegree(procLimit)
	return
}

func (h *Hydro) SetParallelDegree(procLimit int) {
	var (
		mb = h.MB
	)
	if procLimit != 0 {
		h.ParallelDegree = procLimit
	} else {
		h.ParallelDegree = runtime.NumCPU()
	}
	if h.ParallelDegree > mb.NInterior() {
		h.ParallelDegree = 1
	}
	h.CellParts = utils.NewPartitionMap(h.ParallelDegree, mb.NInterior())
	for d := 0; d < mb.NDim(); d++ {
		h.PencilParts[d] = utils.NewPartitionMap(h.ParallelDegree, h.NPencils(d))
	}
	// Per worker pencil scratch, sized by the longest grid line
	maxN := mb.N1
	if mb.N2 > maxN {
		maxN = mb.N2
	}
	if mb.N3 > maxN {
		maxN = mb.N3
	}
	h.sweep = make([]sweepScratch, h.ParallelDegree)
	for np := 0; np < h.ParallelDegree; np++ {
		h.sweep[np] = sweepScratch{
			wp: utils.NewMatrix(h.NVar, maxN),
			wl: utils.NewMatrix(h.NVar, maxN),
			wr: utils.NewMatrix(h.NVar, maxN),
			fx: utils.NewMatrix(h.NVar, maxN),
			uc: make([]float64, h.NVar),
			wc: make([]float64, h.NVar),
			fc: make([]float64, h.NVar),
		}
	}
}

// NPencils is the number of grid lines a sweep in direction d visits
func (h *Hydro) NPencils(d int) (n int) {
	var (
		mb = h.MB
	)
	switch d {
	case mesh.X1:
		n = (mb.Je - mb.Js + 1) * (mb.Ke - mb.Ks + 1)
	case mesh.X2:
		n = (mb.Ie - mb.Is + 1) * (mb.Ke - mb.Ks + 1)
	case mesh.X3:
		n = (mb.Ie - mb.Is + 1) * (mb.Je - mb.Js + 1)
	}
	return
}

// PencilCell maps (pencil number, position along the sweep) to the flat
// cell index, where position s counts from zero at the block edge
// including ghost cells
func (h *Hydro) PencilCell(d, p, s int) (id int) {
	var (
		mb = h.MB
	)
	switch d {
	case mesh.X1:
		nj := mb.Je - mb.Js + 1
		k := mb.Ks + p/nj
		j := mb.Js + p%nj
		id = mb.ID(k, j, s)
	case mesh.X2:
		ni := mb.Ie - mb.Is + 1
		k := mb.Ks + p/ni
		i := mb.Is + p%ni
		id = mb.ID(k, s, i)
	case mesh.X3:
		ni := mb.Ie - mb.Is + 1
		j := mb.Js + p/ni
		i := mb.Is + p%ni
		id = mb.ID(s, j, i)
	}
	return
}

// PencilKJI recovers full block indices for (pencil, position)
func (h *Hydro) PencilKJI(d, p, s int) (k, j, i int) {
	var (
		mb = h.MB
	)
	switch d {
	case mesh.X1:
		nj := mb.Je - mb.Js + 1
		k, j, i = mb.Ks+p/nj, mb.Js+p%nj, s
	case mesh.X2:
		ni := mb.Ie - mb.Is + 1
		k, j, i = mb.Ks+p/ni, s, mb.Is+p%ni
	case mesh.X3:
		ni := mb.Ie - mb.Is + 1
		k, j, i = s, mb.Js+p/ni, mb.Is+p%ni
	}
	return
}

// SweepBounds are the interior cell bounds along direction d
func (h *Hydro) SweepBounds(d int) (sLo, sHi int) {
	var (
		mb = h.MB
	)
	switch d {
	case mesh.X1:
		sLo, sHi = mb.Is, mb.Ie
	case mesh.X2:
		sLo, sHi = mb.Js, mb.Je
	case mesh.X3:
		sLo, sHi = mb.Ks, mb.Ke
	}
	return
}

// PrimToConsAll fills U0 from W0 over the full block including ghosts
func (h *Hydro) PrimToConsAll() {
	var (
		uD, wD = h.U0.DataP, h.W0.DataP
		ncells = h.MB.NCells()
		uc     = make([]float64, h.NVar)
		wc     = make([]float64, h.NVar)
	)
	for id := 0; id < ncells; id++ {
		for n := 0; n < h.NVar; n++ {
			wc[n] = wD[id+n*ncells]
		}
		h.EOS.PrimToCons(wc, uc)
		for n := h.NHydro; n < h.NVar; n++ {
			uc[n] = wc[n] * wc[IDN] // conserved scalar: rho times concentration
		}
		for n := 0; n < h.NVar; n++ {
			uD[id+n*ncells] = uc[n]
		}
	}
}

// ConsToPrimAll converts the interior of U0 into W0, applying floors.
// It reports how many cells needed floors and the first such cell.
func (h *Hydro) ConsToPrimAll() (nFloored, firstCell int) {
	var (
		mb     = h.MB
		ncells = mb.NCells()
		uD, wD = h.U0.DataP, h.W0.DataP
		NP     = h.ParallelDegree
		counts = make([]int, NP)
		firsts = make([]int, NP)
		wg     = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				uc, wc     = h.sweep[np].uc, h.sweep[np].wc
				cMin, cMax = h.CellParts.GetBucketRange(np)
			)
			firsts[np] = -1
			for c := cMin; c < cMax; c++ {
				k, j, i := mb.InteriorCell(c)
				id := mb.ID(k, j, i)
				for n := 0; n < h.NVar; n++ {
					uc[n] = uD[id+n*ncells]
				}
				if h.EOS.ConsToPrim(uc, wc, false) {
					counts[np]++
					if firsts[np] < 0 {
						firsts[np] = id
					}
				}
				for n := h.NHydro; n < h.NVar; n++ {
					wc[n] = uc[n] / wc[IDN]
				}
				for n := 0; n < h.NVar; n++ {
					wD[id+n*ncells] = wc[n]
				}
			}
		}(np)
	}
	wg.Wait()
	firstCell = -1
	for np := 0; np < NP; np++ {
		nFloored += counts[np]
		if firstCell < 0 && firsts[np] >= 0 {
			firstCell = firsts[np]
		}
	}
	return
}
