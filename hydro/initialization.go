package hydro

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gohydro/eos"
)

type InitType uint

const (
	SOD_TUBE InitType = iota
	DENSITY_WAVE
	FREESTREAM
)

var (
	InitNames = map[string]InitType{
		"sod":          SOD_TUBE,
		"density_wave": DENSITY_WAVE,
		"freestream":   FREESTREAM,
	}
	InitPrintNames = []string{"SOD Shock Tube", "Density Wave", "Freestream"}
)

func (it InitType) Print() (txt string) {
	txt = InitPrintNames[it]
	return
}

func NewInitType(label string) (it InitType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use initialization named %s", label)
		panic(err)
	}
	return
}

// InitializeSolution fills the primitive field for the selected case,
// sets matching boundary conditions and loads the conserved state
func (h *Hydro) InitializeSolution(c InitType) {
	var (
		mb     = h.MB
		ncells = mb.NCells()
		wD     = h.W0.DataP
	)
	h.Case = c
	setCell := func(id int, rho, vx, vy, vz, p, tracer float64) {
		wD[id+IDN*ncells] = rho
		wD[id+IVX*ncells] = vx
		wD[id+IVY*ncells] = vy
		wD[id+IVZ*ncells] = vz
		if h.EOS.Adiabatic() {
			wD[id+IPR*ncells] = p
		}
		for n := h.NHydro; n < h.NVar; n++ {
			wD[id+n*ncells] = tracer
		}
	}
	for k := 0; k < mb.N3; k++ {
		for j := 0; j < mb.N2; j++ {
			for i := 0; i < mb.N1; i++ {
				var (
					id = mb.ID(k, j, i)
					x  = mb.CellX1(i)
				)
				switch c {
				case SOD_TUBE:
					if x < 0.5*(mb.X1Min+mb.X1Max) {
						setCell(id, 1., 0., 0., 0., 1., 1.)
					} else {
						setCell(id, 0.125, 0., 0., 0., 0.1, 0.)
					}
				case DENSITY_WAVE:
					arg := 2. * math.Pi * (x - mb.X1Min) / (mb.X1Max - mb.X1Min)
					setCell(id, 1.+0.3*math.Sin(arg), 1., 0., 0., 1., 0.5*(1.+math.Sin(arg)))
				case FREESTREAM:
					setCell(id, 1., 1., 0., 0., 1., 1.)
				}
			}
		}
	}
	switch c {
	case SOD_TUBE:
		h.BCs = [3]BCType{BC_OUTFLOW, BC_PERIODIC, BC_PERIODIC}
	default:
		h.BCs = [3]BCType{BC_PERIODIC, BC_PERIODIC, BC_PERIODIC}
	}
	h.PrimToConsAll()
}

func eosPrint(e eos.EOS) (txt string) {
	if e.Adiabatic() {
		txt = eos.IDEAL_GAS.Print()
	} else {
		txt = eos.ISOTHERMAL.Print()
	}
	return
}
