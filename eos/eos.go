package eos

import (
	"fmt"
	"math"
	"strings"
)

// Indices into the primitive and conserved state vectors. The primitive
// vector is {density, three velocities, pressure}; the conserved vector
// is {density, three momenta, total energy}. IPR and IEN alias the same
// slot, present only for an adiabatic equation of state.
const (
	IDN = 0
	IVX = 1
	IVY = 2
	IVZ = 3
	IPR = 4
	IEN = 4
)

// EOS is the thermodynamic closure consumed by the Riemann solvers and
// the flux correction pass. Implementations must be deterministic and,
// when testOnly is set on ConsToPrim, free of side effects.
type EOS interface {
	Adiabatic() bool
	Gamma() float64
	BaryonMass() float64
	NVars() int // hydro variables per cell: 5 adiabatic, 4 isothermal
	SoundSpeed(w []float64) float64
	PrimToCons(w, u []float64)
	// ConsToPrim converts one cell. The returned flag reports whether
	// density or pressure floors were required. With testOnly set, w is
	// left untouched.
	ConsToPrim(u, w []float64, testOnly bool) (floored bool)
}

type Type uint

const (
	IDEAL_GAS Type = iota
	ISOTHERMAL
)

var (
	TypeNames = map[string]Type{
		"ideal":      IDEAL_GAS,
		"ideal_gas":  IDEAL_GAS,
		"isothermal": ISOTHERMAL,
	}
	TypePrintNames = []string{"Ideal Gas", "Isothermal"}
)

func NewType(label string) (tt Type) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if tt, ok = TypeNames[label]; !ok {
		err = fmt.Errorf("unable to use eos named %s", label)
		panic(err)
	}
	return
}

func (tt Type) Print() (txt string) {
	txt = TypePrintNames[tt]
	return
}

/*
	IdealGas is the adiabatic gamma-law closure: p = (gamma-1) e_int.
	Density and pressure floors are enforced during conserved to
	primitive conversion; the floors are expressed as number densities
	and scaled by the baryon mass.
*/
type IdealGas struct {
	gamma, gm1 float64
	dfloor     float64
	pfloor     float64
	mb         float64
}

func NewIdealGas(gamma, dfloor, pfloor float64) (e *IdealGas) {
	if gamma <= 1. {
		panic(fmt.Errorf("invalid gamma %f", gamma))
	}
	e = &IdealGas{
		gamma:  gamma,
		gm1:    gamma - 1.,
		dfloor: dfloor,
		pfloor: pfloor,
		mb:     1.,
	}
	return
}

func (e *IdealGas) Adiabatic() bool { return true }
func (e *IdealGas) Gamma() float64 { return e.gamma }
func (e *IdealGas) BaryonMass() float64 { return e.mb }
func (e *IdealGas) NVars() int { return 5 }

func (e *IdealGas) SoundSpeed(w []float64) float64 {
	return math.Sqrt(math.Abs(e.gamma * w[IPR] / w[IDN]))
}

func (e *IdealGas) PrimToCons(w, u []float64) {
	var (
		rho        = w[IDN]
		vx, vy, vz = w[IVX], w[IVY], w[IVZ]
	)
	u[IDN] = rho
	u[IVX] = rho * vx
	u[IVY] = rho * vy
	u[IVZ] = rho * vz
	u[IEN] = w[IPR]/e.gm1 + 0.5*rho*(vx*vx+vy*vy+vz*vz)
}

func (e *IdealGas) ConsToPrim(u, w []float64, testOnly bool) (floored bool) {
	var (
		dfloor = e.dfloor * e.mb
		rho    = u[IDN]
	)
	if !(rho > dfloor) || math.IsNaN(rho) {
		rho = dfloor
		floored = true
	}
	oorho := 1. / rho
	vx, vy, vz := u[IVX]*oorho, u[IVY]*oorho, u[IVZ]*oorho
	p := e.gm1 * (u[IEN] - 0.5*rho*(vx*vx+vy*vy+vz*vz))
	if !(p > e.pfloor) || math.IsNaN(p) {
		p = e.pfloor
		floored = true
	}
	if testOnly {
		return
	}
	w[IDN] = rho
	w[IVX], w[IVY], w[IVZ] = vx, vy, vz
	w[IPR] = p
	return
}

// Isothermal closes the system with a fixed sound speed, dropping the
// energy equation: p = cs^2 rho everywhere.
type Isothermal struct {
	cs     float64
	dfloor float64
	mb     float64
}

func NewIsothermal(cs, dfloor float64) (e *Isothermal) {
	if cs <= 0. {
		panic(fmt.Errorf("invalid isothermal sound speed %f", cs))
	}
	e = &Isothermal{cs: cs, dfloor: dfloor, mb: 1.}
	return
}

func (e *Isothermal) Adiabatic() bool { return false }
func (e *Isothermal) Gamma() float64 { return 1. }
func (e *Isothermal) BaryonMass() float64 { return e.mb }
func (e *Isothermal) NVars() int { return 4 }

func (e *Isothermal) SoundSpeed(w []float64) float64 { return e.cs }

func (e *Isothermal) PrimToCons(w, u []float64) {
	var (
		rho = w[IDN]
	)
	u[IDN] = rho
	u[IVX] = rho * w[IVX]
	u[IVY] = rho * w[IVY]
	u[IVZ] = rho * w[IVZ]
}

func (e *Isothermal) ConsToPrim(u, w []float64, testOnly bool) (floored bool) {
	var (
		dfloor = e.dfloor * e.mb
		rho    = u[IDN]
	)
	if !(rho > dfloor) || math.IsNaN(rho) {
		rho = dfloor
		floored = true
	}
	if testOnly {
		return
	}
	oorho := 1. / rho
	w[IDN] = rho
	w[IVX], w[IVY], w[IVZ] = u[IVX]*oorho, u[IVY]*oorho, u[IVZ]*oorho
	return
}
