package hydro

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/notargets/gohydro/utils"
)

// ErrFloorViolation reports a cell whose state remained invalid after
// the first order flux correction pass: the sub step cannot be trusted
// and is surfaced rather than silently clamped.
var ErrFloorViolation = errors.New("floor violation after first-order flux correction")

/*
	StageCoeffs are the blend coefficients of one stage of a strong
	stability preserving Runge-Kutta method in the low storage two
	register form: with u0 the evolving state and u1 the state saved at
	the start of the step,

		u0 <- Gam0*u0 + Gam1*u1 - Beta*dt/dx * divF
*/
type StageCoeffs struct {
	Gam0, Gam1, Beta float64
}

var (
	rk2Stages = []StageCoeffs{
		{1., 0., 1.},
		{0.5, 0.5, 0.5},
	}
	rk3Stages = []StageCoeffs{
		{1., 0., 1.},
		{0.25, 0.75, 0.25},
		{2. / 3., 1. / 3., 2. / 3.},
	}
)

func NewStageCoeffs(label string) (stages []StageCoeffs) {
	switch strings.ToLower(label) {
	case "rk2":
		stages = rk2Stages
	case "rk3":
		stages = rk3Stages
	default:
		panic(fmt.Errorf("unable to use integrator named %s", label))
	}
	return
}

// CalculateDT is the CFL limited time step from the fastest signal
// speed over the interior cells
func (h *Hydro) CalculateDT() (dt float64) {
	var (
		mb     = h.MB
		ncells = mb.NCells()
		wD     = h.W0.DataP
		NP     = h.ParallelDegree
		wg     = sync.WaitGroup{}
		dts    = make([]float64, NP)
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				wc         = make([]float64, h.NVar)
				cMin, cMax = h.CellParts.GetBucketRange(np)
				dtMin      = math.MaxFloat64
			)
			for c := cMin; c < cMax; c++ {
				k, j, i := mb.InteriorCell(c)
				id := mb.ID(k, j, i)
				for n := 0; n < h.NVar; n++ {
					wc[n] = wD[id+n*ncells]
				}
				cs := h.EOS.SoundSpeed(wc)
				dtc := mb.Dx1 / (math.Abs(wc[IVX]) + cs)
				if mb.MultiD {
					dtc = math.Min(dtc, mb.Dx2/(math.Abs(wc[IVY])+cs))
				}
				if mb.ThreeD {
					dtc = math.Min(dtc, mb.Dx3/(math.Abs(wc[IVZ])+cs))
				}
				if dtc < dtMin {
					dtMin = dtc
				}
			}
			dts[np] = dtMin
		}(np)
	}
	wg.Wait()
	dt = dts[0]
	for _, d := range dts[1:] {
		dt = math.Min(dt, d)
	}
	dt *= h.CFL
	utils.IsNanPanic(dt)
	return
}

/*
	Step advances the solution through one full multistage step of size
	dt. Each stage runs the bulk synchronous pipeline: ghost fill,
	reconstruction and Riemann sweeps into the flux fields, optional
	first order flux correction, conservative update, conversion back
	to primitives. A floor violation that survives the flux correction
	aborts the step with ErrFloorViolation.
*/
func (h *Hydro) Step(dt float64) (err error) {
	// Save the state at the start of the step for the stage blends
	h.U1.CopyFrom(h.U0)
	for _, st := range h.Stages {
		h.ApplyBCs()
		h.ComputeFluxes()
		if h.FOFCEnabled {
			h.FirstOrderFluxCorrection(st.Gam0, st.Gam1, st.Beta*dt)
		}
		h.UpdateConserved(st.Gam0, st.Gam1, st.Beta*dt)
		nFloored, firstCell := h.ConsToPrimAll()
		if nFloored != 0 {
			if h.FOFCEnabled {
				return fmt.Errorf("%w: %d cells, first at index %d",
					ErrFloorViolation, nFloored, firstCell)
			}
			h.FloorsApplied += nFloored
		}
	}
	h.Time += dt
	h.Steps++
	return
}

// UpdateConserved applies the stage blend and the flux divergence to
// the live conserved state
func (h *Hydro) UpdateConserved(gam0, gam1, betaDt float64) {
	var (
		mb            = h.MB
		ncells        = mb.NCells()
		u0D, u1D      = h.U0.DataP, h.U1.DataP
		flx1D         = h.Flx[0].DataP
		flx2D         = h.Flx[1].DataP
		flx3D         = h.Flx[2].DataP
		dtodx1        = betaDt / mb.Dx1
		dtodx2        = betaDt / mb.Dx2
		dtodx3        = betaDt / mb.Dx3
		of1, of2, of3 = 1, mb.N1, mb.N1 * mb.N2
		NP            = h.ParallelDegree
		wg            = sync.WaitGroup{}
	)
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
					u0D[nid] = gam0*u0D[nid] + gam1*u1D[nid] - divf
				}
			}
		}(np)
	}
	wg.Wait()
}

// Solve runs the simulation to FinalTime, printing progress in the
// style of the model problem drivers
func (h *Hydro) Solve(finalTime float64, maxSteps int, pm *PlotMeta) (err error) {
	var (
		finished bool
		elapsed  time.Duration
	)
	h.FinalTime = finalTime
	if pm.StepsBeforePlot <= 0 {
		pm.StepsBeforePlot = 1
	}
	h.PrintInitialization(finalTime)
	for !finished {
		dt := h.CalculateDT()
		if h.Time+dt > finalTime {
			dt = finalTime - h.Time
		}
		start := time.Now()
		if err = h.Step(dt); err != nil {
			return
		}
		elapsed += time.Since(start)
		finished = h.Time >= finalTime || (maxSteps > 0 && h.Steps >= maxSteps)
		if finished || h.Steps%pm.StepsBeforePlot == 0 || h.Steps == 1 {
			h.PrintUpdate(dt)
			if pm.Plot {
				h.PlotSolution(pm)
			}
		}
	}
	h.PrintFinal(elapsed)
	return
}

func (h *Hydro) PrintInitialization(finalTime float64) {
	fmt.Printf("Euler Equations in %d Dimension(s)\n", h.MB.NDim())
	fmt.Printf("Using %d go routines in parallel\n", h.ParallelDegree)
	fmt.Printf("Algorithm: %s, EOS: %s\n", h.FluxCalcAlgo.Print(), eosPrint(h.EOS))
	fmt.Printf("CFL = %8.4f, FinalTime = %8.4f, Cells = [%d,%d,%d]\n\n",
		h.CFL, finalTime, h.MB.Nx1, h.MB.Nx2, h.MB.Nx3)
}

func (h *Hydro) PrintUpdate(dt float64) {
	var (
		rhoMin, rhoMax = h.fieldRange(IDN)
	)
	fmt.Printf("Time = %8.4f, dt = %8.6f, step %d, rho in [%8.6f,%8.6f]\n",
		h.Time, dt, h.Steps, rhoMin, rhoMax)
}

func (h *Hydro) PrintFinal(elapsed time.Duration) {
	rate := elapsed.Seconds() / (float64(h.Steps * h.MB.NInterior()))
	fmt.Printf("\nTotal time: %8.5f seconds, time per cell step: %8.5f microseconds\n",
		elapsed.Seconds(), rate*1.e6)
	if !h.FOFCEnabled && h.FloorsApplied != 0 {
		fmt.Printf("Floors applied in %d cell updates\n", h.FloorsApplied)
	}
	fmt.Printf("%s\n", utils.GetMemUsage())
}

func (h *Hydro) fieldRange(n int) (min, max float64) {
	var (
		mb     = h.MB
		ncells = mb.NCells()
		wD     = h.W0.DataP
	)
	min, max = math.MaxFloat64, -math.MaxFloat64
	for c := 0; c < mb.NInterior(); c++ {
		k, j, i := mb.InteriorCell(c)
		v := wD[mb.ID(k, j, i)+n*ncells]
		min, max = math.Min(min, v), math.Max(max, v)
	}
	return
}
