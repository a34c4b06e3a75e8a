package hydro

import (
	"fmt"
	"strings"

	"github.com/notargets/gohydro/mesh"
)

type BCType uint

const (
	BC_PERIODIC BCType = iota
	BC_OUTFLOW
)

var (
	BCNames = map[string]BCType{
		"periodic": BC_PERIODIC,
		"outflow":  BC_OUTFLOW,
	}
	BCPrintNames = []string{"Periodic", "Outflow"}
)

func NewBCType(label string) (bc BCType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if bc, ok = BCNames[label]; !ok {
		err = fmt.Errorf("unable to use boundary condition named %s", label)
		panic(err)
	}
	return
}

// ApplyBCs fills the ghost zones of the primitive field for every
// active direction, called before each reconstruction sweep
func (h *Hydro) ApplyBCs() {
	var (
		mb = h.MB
	)
	h.fillGhostX1(h.BCs[mesh.X1])
	if mb.MultiD {
		h.fillGhostX2(h.BCs[mesh.X2])
	}
	if mb.ThreeD {
		h.fillGhostX3(h.BCs[mesh.X3])
	}
}

func (h *Hydro) fillGhostX1(bc BCType) {
	var (
		mb     = h.MB
		ncells = mb.NCells()
		wD     = h.W0.DataP
	)
	for n := 0; n < h.NVar; n++ {
		for k := 0; k < mb.N3; k++ {
			for j := 0; j < mb.N2; j++ {
				for g := 1; g <= mb.NGhost; g++ {
					var srcLo, srcHi int
					switch bc {
					case BC_PERIODIC:
						srcLo = mb.ID(k, j, mb.Ie-g+1)
						srcHi = mb.ID(k, j, mb.Is+g-1)
					case BC_OUTFLOW:
						srcLo = mb.ID(k, j, mb.Is)
						srcHi = mb.ID(k, j, mb.Ie)
					}
					wD[mb.ID(k, j, mb.Is-g)+n*ncells] = wD[srcLo+n*ncells]
					wD[mb.ID(k, j, mb.Ie+g)+n*ncells] = wD[srcHi+n*ncells]
				}
			}
		}
	}
}

func (h *Hydro) fillGhostX2(bc BCType) {
	var (
		mb     = h.MB
		ncells = mb.NCells()
		wD     = h.W0.DataP
	)
	for n := 0; n < h.NVar; n++ {
		for k := 0; k < mb.N3; k++ {
			for i := 0; i < mb.N1; i++ {
				for g := 1; g <= mb.NGhost; g++ {
					var srcLo, srcHi int
					switch bc {
					case BC_PERIODIC:
						srcLo = mb.ID(k, mb.Je-g+1, i)
						srcHi = mb.ID(k, mb.Js+g-1, i)
					case BC_OUTFLOW:
						srcLo = mb.ID(k, mb.Js, i)
						srcHi = mb.ID(k, mb.Je, i)
					}
					wD[mb.ID(k, mb.Js-g, i)+n*ncells] = wD[srcLo+n*ncells]
					wD[mb.ID(k, mb.Je+g, i)+n*ncells] = wD[srcHi+n*ncells]
				}
			}
		}
	}
}

func (h *Hydro) fillGhostX3(bc BCType) {
	var (
		mb     = h.MB
		ncells = mb.NCells()
		wD     = h.W0.DataP
	)
	for n := 0; n < h.NVar; n++ {
		for j := 0; j < mb.N2; j++ {
			for i := 0; i < mb.N1; i++ {
				for g := 1; g <= mb.NGhost; g++ {
					var srcLo, srcHi int
					switch bc {
					case BC_PERIODIC:
						srcLo = mb.ID(mb.Ke-g+1, j, i)
						srcHi = mb.ID(mb.Ks+g-1, j, i)
					case BC_OUTFLOW:
						srcLo = mb.ID(mb.Ks, j, i)
						srcHi = mb.ID(mb.Ke, j, i)
					}
					wD[mb.ID(mb.Ks-g, j, i)+n*ncells] = wD[srcLo+n*ncells]
					wD[mb.ID(mb.Ke+g, j, i)+n*ncells] = wD[srcHi+n*ncells]
				}
			}
		}
	}
}
