package hydro

import (
	"math"
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gohydro/sod_shock_tube"
)

type PlotMeta struct {
	Plot            bool
	StepsBeforePlot int
	Delay           time.Duration
}

type ChartState struct {
	chart      *chart2d.Chart2D
	colorMap   *utils2.ColorMap
	plotOnce   sync.Once
	frameCount int
}

// PlotSolution displays 1D profiles of density, momentum and energy,
// overlaying the analytic Sod solution near the final time
func (h *Hydro) PlotSolution(pm *PlotMeta) {
	var (
		mb         = h.MB
		ncells     = mb.NCells()
		wD         = h.W0.DataP
		fmin, fmax = float32(-0.1), float32(2.6)
	)
	if mb.MultiD {
		return // line charts only
	}
	h.chart.plotOnce.Do(func() {
		h.chart.chart = chart2d.NewChart2D(1920, 1280,
			float32(mb.X1Min), float32(mb.X1Max), fmin, fmax)
		h.chart.colorMap = utils2.NewColorMap(-1, 1, 1)
		go h.chart.chart.Plot()
	})
	var (
		nx              = mb.Nx1
		x               = make([]float64, nx)
		rho, rhou, ener = make([]float64, nx), make([]float64, nx), make([]float64, nx)
		k, j            = mb.Ks, mb.Js
	)
	for i := mb.Is; i <= mb.Ie; i++ {
		var (
			c  = i - mb.Is
			id = mb.ID(k, j, i)
			d  = wD[id+IDN*ncells]
			vx = wD[id+IVX*ncells]
		)
		x[c] = mb.CellX1(i)
		rho[c] = d
		rhou[c] = d * vx
		if h.EOS.Adiabatic() {
			p := wD[id+IPR*ncells]
			ener[c] = p/(h.EOS.Gamma()-1.) + 0.5*d*vx*vx
		}
	}
	pSeries := func(name string, y []float64, color float32) {
		if err := h.chart.chart.AddSeries(name, x, y,
			chart2d.NoGlyph, chart2d.Solid, h.chart.colorMap.GetRGB(color)); err != nil {
			panic("unable to add graph series")
		}
	}
	pSeries("Rho", rho, -0.7)
	pSeries("RhoU", rhou, 0.0)
	if h.EOS.Adiabatic() {
		pSeries("Ener", ener, 0.7)
	}
	h.chart.frameCount++
	if h.Case == SOD_TUBE && math.Abs(h.Time-h.FinalTime) < 0.001 {
		h.addAnalyticSod()
	}
	if pm.Delay != 0 {
		time.Sleep(pm.Delay)
	}
}

func (h *Hydro) addAnalyticSod() {
	X, Rho, _, U, E := sod_shock_tube.SOD_calc(h.Time)
	RhoU := make([]float64, len(X))
	for i := range X {
		RhoU[i] = Rho[i] * U[i]
	}
	cs := &h.chart
	if err := cs.chart.AddSeries("ExactRho", X, Rho, chart2d.XGlyph, chart2d.NoLine, cs.colorMap.GetRGB(-0.7)); err != nil {
		panic("unable to add exact solution Rho")
	}
	if err := cs.chart.AddSeries("ExactRhoU", X, RhoU, chart2d.XGlyph, chart2d.NoLine, cs.colorMap.GetRGB(0.0)); err != nil {
		panic("unable to add exact solution RhoU")
	}
	if err := cs.chart.AddSeries("ExactE", X, E, chart2d.XGlyph, chart2d.NoLine, cs.colorMap.GetRGB(0.7)); err != nil {
		panic("unable to add exact solution E")
	}
}
