package sod_shock_tube

import (
	"math"

	"github.com/notargets/gohydro/utils"
)

/*
	Exact solution of Sod's shock tube problem on [0,1] with the
	diaphragm at x = 0.5 and gamma = 1.4:
		left  state: rho = 1,     P = 1,   u = 0
		right state: rho = 0.125, P = 0.1, u = 0
	The post shock pressure comes from a secant iteration on the
	Rankine-Hugoniot relation; the remaining states follow in closed
	form.
*/
const (
	gamma        = 1.4
	x0           = 0.5
	rhoL, pL, uL = 1., 1., 0.
	rhoR, pR, uR = 0.125, 0.1, 0.
)

// SOD_calc samples the exact solution at the key wave positions at
// time t, bracketing each discontinuity, for plot overlays
func SOD_calc(t float64) (X, Rho, P, U, E []float64) {
	var (
		xMin, xMax     = 0., 1.
		x1, x2, x3, x4 = WavePositions(t)
		tol            = 0.00000001
	)
	X = []float64{
		xMin,
		x1 - tol, x1 + tol,
		x2 - tol, x2 + tol,
		x3 - tol, x3 + tol,
		x4 - tol, x4 + tol,
		xMax,
	}
	Rho, P, U, E = Sample(t, X)
	return
}

// Sample evaluates the exact solution at time t for each position in X
func Sample(t float64, X []float64) (Rho, P, U, E []float64) {
	var (
		mu             = math.Sqrt((gamma - 1) / (gamma + 1))
		cL             = math.Sqrt(gamma * pL / rhoL)
		pPost          = postPressure()
		vPost          = 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(pPost, (gamma-1)/(2*gamma)))
		rhoPost        = rhoR * ((pPost/pR + mu*mu) / (1 + mu*mu*(pPost/pR)))
		rhoMiddle      = rhoL * math.Pow(pPost/pL, 1./gamma)
		x1, x2, x3, x4 = WavePositions(t)
	)
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		switch {
		case x < x1:
			Rho[i] = rhoL
			P[i] = pL
			U[i] = uL
		case x1 <= x && x <= x2:
			c := mu*mu*((x0-x)/t) + (1.-mu*mu)*cL
			Rho[i] = rhoL * math.Pow(c/cL, 2/(gamma-1))
			P[i] = pL * math.Pow(Rho[i]/rhoL, gamma)
			U[i] = (1. - mu*mu) * ((-(x0 - x) / t) + cL)
		case x2 <= x && x <= x3:
			Rho[i] = rhoMiddle
			P[i] = pPost
			U[i] = vPost
		case x3 <= x && x <= x4:
			Rho[i] = rhoPost
			P[i] = pPost
			U[i] = vPost
		case x4 < x:
			Rho[i] = rhoR
			P[i] = pR
			U[i] = uR
		}
		E[i] = P[i] / ((gamma - 1.) * Rho[i])
	}
	return
}

// WavePositions are the rarefaction head and tail, the contact and the
// shock at time t
func WavePositions(t float64) (x1, x2, x3, x4 float64) {
	var (
		mu      = math.Sqrt((gamma - 1) / (gamma + 1))
		cL      = math.Sqrt(gamma * pL / rhoL)
		pPost   = postPressure()
		vPost   = 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(pPost, (gamma-1)/(2*gamma)))
		rhoPost = rhoR * ((pPost/pR + mu*mu) / (1 + mu*mu*(pPost/pR)))
		vShock  = vPost * (rhoPost / rhoR) / ((rhoPost / rhoR) - 1.)
		c2      = cL - 0.5*(gamma-1.)*vPost
	)
	x1 = x0 - cL*t
	x2 = x0 + t*(vPost-c2)
	x3 = x0 + vPost*t
	x4 = x0 + vShock*t
	return
}

func postPressure() float64 {
	return fzero(sod_func, math.Pi)
}

func fzero(f func(P float64) (y float64), start float64) float64 {
	var (
		tol = 0.0000001
		res float64
	)
	start_old := start / 2
	res = f(start_old)
	for math.Abs(res) > tol {
		resNew := f(start)
		deriv := (start - start_old) / (resNew - res)
		start_new := math.Abs(start - 0.01*f(start)/deriv)
		start_old = start
		start = start_new
		res = resNew
	}
	return start
}

func sod_func(P float64) (y float64) {
	var (
		mu  = math.Sqrt((gamma - 1) / (gamma + 1))
		mu2 = mu * mu
	)
	y = (P-pR)*math.Sqrt(utils.POW(1-mu2, 2)/(rhoR*(P+mu2*pR))) - 2*(math.Sqrt(gamma)/(gamma-1))*(1-math.Pow(P, (gamma-1)/(2*gamma)))
	return
}
