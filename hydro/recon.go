package hydro

import (
	"math"

	"github.com/notargets/gohydro/utils"
)

/*
	Face state reconstruction on one gathered pencil. For the face range
	[fLo,fHi], face f separates cell f-1 (left) from cell f (right).
	High order reconstruction proper lives outside this solver; donor
	cell and the limited piecewise linear scheme here exist to feed the
	Riemann sweeps and to give the flux correction pass a scheme capable
	of overshooting that it can guard.
*/

// DonorCell copies the adjacent cell centers onto the face
func DonorCell(nvar, fLo, fHi int, wp, wl, wr utils.Matrix) {
	var (
		_, stride     = wp.Dims()
		wpD, wlD, wrD = wp.DataP, wl.DataP, wr.DataP
	)
	for n := 0; n < nvar; n++ {
		for f := fLo; f <= fHi; f++ {
			wlD[f+n*stride] = wpD[f-1+n*stride]
			wrD[f+n*stride] = wpD[f+n*stride]
		}
	}
}

// PiecewiseLinear applies minmod limited linear reconstruction, second
// order in smooth flow, reverting to donor cell at extrema
func PiecewiseLinear(nvar, fLo, fHi int, wp, wl, wr utils.Matrix) {
	var (
		_, stride     = wp.Dims()
		wpD, wlD, wrD = wp.DataP, wl.DataP, wr.DataP
	)
	slope := func(n, c int) float64 {
		dwl := wpD[c+n*stride] - wpD[c-1+n*stride]
		dwr := wpD[c+1+n*stride] - wpD[c+n*stride]
		return minmod(dwl, dwr)
	}
	for n := 0; n < nvar; n++ {
		for f := fLo; f <= fHi; f++ {
			wlD[f+n*stride] = wpD[f-1+n*stride] + 0.5*slope(n, f-1)
			wrD[f+n*stride] = wpD[f+n*stride] - 0.5*slope(n, f)
		}
	}
}

func minmod(a, b float64) float64 {
	if a*b <= 0. {
		return 0.
	}
	if math.Abs(a) < math.Abs(b) {
		return a
	}
	return b
}
