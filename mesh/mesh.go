package mesh

import (
	"fmt"
)

// Direction labels for the three logical axes
const (
	X1 = iota
	X2
	X3
)

/*
	MeshBlock is a regular structured block of cells with ghost zones on
	every active dimension. Cell centered and face centered fields share
	one flat index space: the face (dir,k,j,i) is the lower face of cell
	(k,j,i) in that direction, so a face array is addressed with the same
	ID(k,j,i) as the cell array. The upper face of the last interior cell
	lands in the first ghost cell slot, which is why NGhost >= 1 is
	required even in 1D.
*/
type MeshBlock struct {
	Nx1, Nx2, Nx3          int // Interior cell counts
	NGhost                 int
	N1, N2, N3             int // Total cell counts including ghost zones
	Is, Ie, Js, Je, Ks, Ke int // Interior index bounds, inclusive
	X1Min, X1Max           float64
	X2Min, X2Max           float64
	X3Min, X3Max           float64
	Dx1, Dx2, Dx3          float64
	MultiD, ThreeD         bool
}

func NewMeshBlock(nx1, nx2, nx3, nGhost int, x1min, x1max, x2min, x2max, x3min, x3max float64) (mb *MeshBlock) {
	if nx1 < 1 || nx2 < 1 || nx3 < 1 {
		panic(fmt.Errorf("invalid mesh dimensions [%d,%d,%d]", nx1, nx2, nx3))
	}
	if nx2 == 1 && nx3 > 1 {
		panic("x3 cannot be active while x2 is collapsed")
	}
	if nGhost < 1 {
		panic("need at least one ghost zone")
	}
	mb = &MeshBlock{
		Nx1: nx1, Nx2: nx2, Nx3: nx3,
		NGhost: nGhost,
		X1Min:  x1min, X1Max: x1max,
		X2Min: x2min, X2Max: x2max,
		X3Min: x3min, X3Max: x3max,
		MultiD: nx2 > 1,
		ThreeD: nx3 > 1,
	}
	mb.N1 = nx1 + 2*nGhost
	mb.Is, mb.Ie = nGhost, nGhost+nx1-1
	mb.Dx1 = (x1max - x1min) / float64(nx1)
	// Ghost zones exist only on active dimensions
	if mb.MultiD {
		mb.N2 = nx2 + 2*nGhost
		mb.Js, mb.Je = nGhost, nGhost+nx2-1
		mb.Dx2 = (x2max - x2min) / float64(nx2)
	} else {
		mb.N2, mb.Js, mb.Je = 1, 0, 0
		mb.Dx2 = x2max - x2min
	}
	if mb.ThreeD {
		mb.N3 = nx3 + 2*nGhost
		mb.Ks, mb.Ke = nGhost, nGhost+nx3-1
		mb.Dx3 = (x3max - x3min) / float64(nx3)
	} else {
		mb.N3, mb.Ks, mb.Ke = 1, 0, 0
		mb.Dx3 = x3max - x3min
	}
	return
}

// NCells is the allocation size for one variable of any cell or face
// centered field on this block
func (mb *MeshBlock) NCells() int {
	return mb.N1 * mb.N2 * mb.N3
}

func (mb *MeshBlock) NInterior() int {
	return mb.Nx1 * mb.Nx2 * mb.Nx3
}

func (mb *MeshBlock) ID(k, j, i int) int {
	return i + mb.N1*(j+mb.N2*k)
}

// InteriorCell maps a linear interior cell number c in [0,NInterior) to
// its (k,j,i) block indices, used to partition cell scans across workers
func (mb *MeshBlock) InteriorCell(c int) (k, j, i int) {
	i = mb.Is + c%mb.Nx1
	c /= mb.Nx1
	j = mb.Js + c%mb.Nx2
	k = mb.Ks + c/mb.Nx2
	return
}

func (mb *MeshBlock) CellX1(i int) float64 {
	return mb.X1Min + (float64(i-mb.Is)+0.5)*mb.Dx1
}

func (mb *MeshBlock) CellX2(j int) float64 {
	if !mb.MultiD {
		return 0.5 * (mb.X2Min + mb.X2Max)
	}
	return mb.X2Min + (float64(j-mb.Js)+0.5)*mb.Dx2
}

func (mb *MeshBlock) CellX3(k int) float64 {
	if !mb.ThreeD {
		return 0.5 * (mb.X3Min + mb.X3Max)
	}
	return mb.X3Min + (float64(k-mb.Ks)+0.5)*mb.Dx3
}

// FaceX1 is the position of the lower x1 face of cell i
func (mb *MeshBlock) FaceX1(i int) float64 {
	return mb.X1Min + float64(i-mb.Is)*mb.Dx1
}

func (mb *MeshBlock) FaceX2(j int) float64 {
	if !mb.MultiD {
		return 0.5 * (mb.X2Min + mb.X2Max)
	}
	return mb.X2Min + float64(j-mb.Js)*mb.Dx2
}

func (mb *MeshBlock) FaceX3(k int) float64 {
	if !mb.ThreeD {
		return 0.5 * (mb.X3Min + mb.X3Max)
	}
	return mb.X3Min + float64(k-mb.Ks)*mb.Dx3
}

func (mb *MeshBlock) Dx(dir int) (dx float64) {
	switch dir {
	case X1:
		dx = mb.Dx1
	case X2:
		dx = mb.Dx2
	case X3:
		dx = mb.Dx3
	}
	return
}

// NDim reports the number of active dimensions
func (mb *MeshBlock) NDim() (n int) {
	n = 1
	if mb.MultiD {
		n++
	}
	if mb.ThreeD {
		n++
	}
	return
}
