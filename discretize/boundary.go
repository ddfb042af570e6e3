// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discretize

import "github.com/ipelupessy/fvm/stencil"

// BoundaryConditions folds ghost-cell coefficients into their interior
// neighbour in place (eliminating every out-of-range stencil reference) and
// returns the constant forcing vector the elimination pushes onto the
// right-hand side. Every face handler below expresses its ghost-cell fold
// through stencil.Tensor's Slice/AddSliceScaled/ZeroSlice/FillSlice
// primitives.
type BoundaryConditions struct {
	g Geometry
}

// NewBoundaryConditions builds the face-handler set for a geometry.
func NewBoundaryConditions(g Geometry) BoundaryConditions {
	return BoundaryConditions{g: g}
}

func allSlice() stencil.Slice {
	var s stencil.Slice
	for i := range s {
		s[i] = stencil.All
	}
	return s
}

// otherTwo returns the two axes, in {0,1,2}, other than axis.
func otherTwo(axis int) [2]int {
	switch axis {
	case 0:
		return [2]int{1, 2}
	case 1:
		return [2]int{0, 2}
	default:
		return [2]int{0, 1}
	}
}

func stateIndex(g Geometry, i, j, k, v int) int {
	dof := g.Layout.Dof
	return v + i*dof + j*dof*g.Nx + k*dof*g.Nx*g.Ny
}

// DirichletEast folds the east-face ghost for every (row, column) pair,
// "v[i+1] = -v[i] + 2*V" in fixed-value notation, then additionally
// overwrites u's own row with the trivial identity u[i]=0, since u
// satisfies the homogeneous no-penetration condition outright.
func (b BoundaryConditions) DirichletEast(atom *stencil.Tensor) {
	g := b.g
	u := g.Layout.U
	i := g.Nx - 1
	base := allSlice().Fix(stencil.AxI, i)
	atom.SubtractSlice(base.Fix(stencil.AxSX, 1), base.Fix(stencil.AxSX, 2))
	atom.ZeroSlice(base.Fix(stencil.AxD2, u).Fix(stencil.AxSX, 1))
	atom.ZeroSlice(base.Fix(stencil.AxD1, u))
	atom.ZeroSlice(base.Fix(stencil.AxSX, 2))
	atom.FillSlice(base.Fix(stencil.AxD1, u).Fix(stencil.AxD2, u).
		Fix(stencil.AxSX, 1).Fix(stencil.AxSY, 1).Fix(stencil.AxSZ, 1), -1)
	atom.ZeroSlice(allSlice().Fix(stencil.AxI, g.Nx-2).
		Fix(stencil.AxD1, u).Fix(stencil.AxD2, u).Fix(stencil.AxSX, 2))
}

// DirichletWest folds the west-face ghost: "v[i-1] = -v[i]".
func (b BoundaryConditions) DirichletWest(atom *stencil.Tensor) {
	g := b.g
	u := g.Layout.U
	base := allSlice().Fix(stencil.AxI, 0)
	atom.ZeroSlice(base.Fix(stencil.AxD2, u).Fix(stencil.AxSX, 0))
	atom.SubtractSlice(base.Fix(stencil.AxSX, 1), base.Fix(stencil.AxSX, 0))
	atom.ZeroSlice(base.Fix(stencil.AxSX, 0))
}

// DirichletNorth folds the north-face ghost for every pair, then overwrites
// v's own row with v[j]=0.
func (b BoundaryConditions) DirichletNorth(atom *stencil.Tensor) {
	g := b.g
	v := g.Layout.V
	j := g.Ny - 1
	base := allSlice().Fix(stencil.AxJ, j)
	atom.SubtractSlice(base.Fix(stencil.AxSY, 1), base.Fix(stencil.AxSY, 2))
	atom.ZeroSlice(base.Fix(stencil.AxD2, v).Fix(stencil.AxSY, 1))
	atom.ZeroSlice(base.Fix(stencil.AxD1, v))
	atom.ZeroSlice(base.Fix(stencil.AxSY, 2))
	atom.FillSlice(base.Fix(stencil.AxD1, v).Fix(stencil.AxD2, v).
		Fix(stencil.AxSX, 1).Fix(stencil.AxSY, 1).Fix(stencil.AxSZ, 1), -1)
	atom.ZeroSlice(allSlice().Fix(stencil.AxJ, g.Ny-2).
		Fix(stencil.AxD1, v).Fix(stencil.AxD2, v).Fix(stencil.AxSY, 2))
}

// DirichletSouth folds the south-face ghost.
func (b BoundaryConditions) DirichletSouth(atom *stencil.Tensor) {
	g := b.g
	v := g.Layout.V
	base := allSlice().Fix(stencil.AxJ, 0)
	atom.ZeroSlice(base.Fix(stencil.AxD2, v).Fix(stencil.AxSY, 0))
	atom.SubtractSlice(base.Fix(stencil.AxSY, 1), base.Fix(stencil.AxSY, 0))
	atom.ZeroSlice(base.Fix(stencil.AxSY, 0))
}

// DirichletTop folds the top-face ghost (3D only), then overwrites w's own
// row with w[k]=0.
func (b BoundaryConditions) DirichletTop(atom *stencil.Tensor) {
	g := b.g
	if !g.Layout.HasW() {
		return
	}
	w := g.Layout.W
	k := g.Nz - 1
	base := allSlice().Fix(stencil.AxK, k)
	atom.SubtractSlice(base.Fix(stencil.AxSZ, 1), base.Fix(stencil.AxSZ, 2))
	atom.ZeroSlice(base.Fix(stencil.AxD2, w).Fix(stencil.AxSZ, 1))
	atom.ZeroSlice(base.Fix(stencil.AxD1, w))
	atom.ZeroSlice(base.Fix(stencil.AxSZ, 2))
	atom.FillSlice(base.Fix(stencil.AxD1, w).Fix(stencil.AxD2, w).
		Fix(stencil.AxSX, 1).Fix(stencil.AxSY, 1).Fix(stencil.AxSZ, 1), -1)
	atom.ZeroSlice(allSlice().Fix(stencil.AxK, g.Nz-2).
		Fix(stencil.AxD1, w).Fix(stencil.AxD2, w).Fix(stencil.AxSZ, 2))
}

// DirichletBottom folds the bottom-face ghost (3D only).
func (b BoundaryConditions) DirichletBottom(atom *stencil.Tensor) {
	g := b.g
	if !g.Layout.HasW() {
		return
	}
	w := g.Layout.W
	base := allSlice().Fix(stencil.AxK, 0)
	atom.ZeroSlice(base.Fix(stencil.AxD2, w).Fix(stencil.AxSZ, 0))
	atom.SubtractSlice(base.Fix(stencil.AxSZ, 1), base.Fix(stencil.AxSZ, 0))
	atom.ZeroSlice(base.Fix(stencil.AxSZ, 0))
}

// constantForcingFace sums the coefficient atom attaches to (varSlot,
// varSlot) at the ghost offset of the given face (axis/faceIdx/offIdx, e.g.
// axis=0,faceIdx=Nx-1,offIdx=2 for the east face), over the other two
// offset axes, times value, and writes the result into the varSlot-th dof
// of a full-size forcing vector at every cell on that face. One
// axis-parameterized helper covers all six faces, since they only differ in
// which spatial axis is held fixed and at which end.
func (b BoundaryConditions) constantForcingFace(atom *stencil.Tensor, axis, faceIdx, offIdx, varSlot int, value float64) []float64 {
	g := b.g
	frc := make([]float64, g.Nx*g.Ny*g.Nz*g.Layout.Dof)
	dims := [3]int{g.Nx, g.Ny, g.Nz}
	sp := otherTwo(axis)

	for a := 0; a < dims[sp[0]]; a++ {
		for c := 0; c < dims[sp[1]]; c++ {
			var pos [3]int
			pos[axis], pos[sp[0]], pos[sp[1]] = faceIdx, a, c

			sum := 0.0
			for o1 := 0; o1 < 3; o1++ {
				for o2 := 0; o2 < 3; o2++ {
					var off [3]int
					off[0], off[1], off[2] = 1, 1, 1
					off[axis] = offIdx
					off[sp[0]] = o1
					off[sp[1]] = o2
					sum += atom.At(pos[0], pos[1], pos[2], varSlot, varSlot, off[0], off[1], off[2])
				}
			}
			frc[stateIndex(g, pos[0], pos[1], pos[2], varSlot)] += sum * value
		}
	}
	return frc
}

func addInto(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// MovingLidNorth drives the cavity by a moving north wall: the ghost u
// value is folded as u[j+1] = -u[j] + 2*velocity, contributing a constant
// forcing term before the north dirichlet fold zeroes v's own row.
func (b BoundaryConditions) MovingLidNorth(atom *stencil.Tensor, velocity float64) []float64 {
	g := b.g
	frc := b.constantForcingFace(atom, 1, g.Ny-1, 2, g.Layout.U, 2*velocity)
	b.DirichletNorth(atom)
	return frc
}

// MovingLidTop drives the cavity by a moving top wall, folding both u and v
// ghosts against it (3D only).
func (b BoundaryConditions) MovingLidTop(atom *stencil.Tensor, velocity float64) []float64 {
	g := b.g
	if !g.Layout.HasW() {
		return make([]float64, g.Nx*g.Ny*g.Nz*g.Layout.Dof)
	}
	frc := b.constantForcingFace(atom, 2, g.Nz-1, 2, g.Layout.U, 2*velocity)
	addInto(frc, b.constantForcingFace(atom, 2, g.Nz-1, 2, g.Layout.V, 2*velocity))
	b.DirichletTop(atom)
	return frc
}

// TemperatureEast imposes a fixed east-wall temperature: T[i]+T[i+1] = 2*Tb.
func (b BoundaryConditions) TemperatureEast(atom *stencil.Tensor, temperature float64) []float64 {
	g := b.g
	t := g.Layout.T
	frc := b.constantForcingFace(atom, 0, g.Nx-1, 2, t, 2*temperature)
	b.DirichletEast(atom)
	return frc
}

// TemperatureWest imposes a fixed west-wall temperature: T[i]+T[i-1] = 2*Tb.
func (b BoundaryConditions) TemperatureWest(atom *stencil.Tensor, temperature float64) []float64 {
	g := b.g
	t := g.Layout.T
	frc := b.constantForcingFace(atom, 0, 0, 0, t, 2*temperature)
	b.DirichletWest(atom)
	return frc
}

// HeatfluxEast imposes a fixed east-wall heat flux: T[i+1]-T[i] = h*Tbc,
// h = (x[nx] - x[nx-2]).
func (b BoundaryConditions) HeatfluxEast(atom *stencil.Tensor, heatflux float64) []float64 {
	g := b.g
	t := g.Layout.T
	h := g.X[g.Nx] - g.X[g.Nx-2]
	frc := b.constantForcingFace(atom, 0, g.Nx-1, 2, t, -heatflux*h/2)
	base := allSlice().Fix(stencil.AxI, g.Nx-1).Fix(stencil.AxD1, t).Fix(stencil.AxD2, t)
	atom.AddSliceScaled(base.Fix(stencil.AxSX, 1), base.Fix(stencil.AxSX, 2), 2)
	b.DirichletEast(atom)
	return frc
}

// HeatfluxWest imposes a fixed west-wall heat flux: T[i]-T[i-1] = h*Tbc,
// h = (x[0] - x[-2]) (the west boundary does not start at x=0).
func (b BoundaryConditions) HeatfluxWest(atom *stencil.Tensor, heatflux float64) []float64 {
	g := b.g
	t := g.Layout.T
	h := g.X[0] - g.X[g.Nx+1]
	frc := b.constantForcingFace(atom, 0, 0, 0, t, -heatflux*h/2)
	base := allSlice().Fix(stencil.AxI, 0).Fix(stencil.AxD1, t).Fix(stencil.AxD2, t)
	atom.AddSliceScaled(base.Fix(stencil.AxSX, 1), base.Fix(stencil.AxSX, 0), 2)
	b.DirichletWest(atom)
	return frc
}

// HeatfluxNorth imposes a fixed north-wall heat flux.
func (b BoundaryConditions) HeatfluxNorth(atom *stencil.Tensor, heatflux float64) []float64 {
	g := b.g
	t := g.Layout.T
	h := g.Y[g.Ny] - g.Y[g.Ny-2]
	frc := b.constantForcingFace(atom, 1, g.Ny-1, 2, t, -heatflux*h/2)
	base := allSlice().Fix(stencil.AxJ, g.Ny-1).Fix(stencil.AxD1, t).Fix(stencil.AxD2, t)
	atom.AddSliceScaled(base.Fix(stencil.AxSY, 1), base.Fix(stencil.AxSY, 2), 2)
	b.DirichletNorth(atom)
	return frc
}

// HeatfluxSouth imposes a fixed south-wall heat flux.
func (b BoundaryConditions) HeatfluxSouth(atom *stencil.Tensor, heatflux float64) []float64 {
	g := b.g
	t := g.Layout.T
	h := g.Y[0] - g.Y[g.Ny+1]
	frc := b.constantForcingFace(atom, 1, 0, 0, t, -heatflux*h/2)
	base := allSlice().Fix(stencil.AxJ, 0).Fix(stencil.AxD1, t).Fix(stencil.AxD2, t)
	atom.AddSliceScaled(base.Fix(stencil.AxSY, 1), base.Fix(stencil.AxSY, 0), 2)
	b.DirichletSouth(atom)
	return frc
}

// HeatfluxTop imposes a fixed top-wall heat flux (3D only).
func (b BoundaryConditions) HeatfluxTop(atom *stencil.Tensor, heatflux float64) []float64 {
	g := b.g
	if !g.Layout.HasW() {
		return make([]float64, g.Nx*g.Ny*g.Nz*g.Layout.Dof)
	}
	t := g.Layout.T
	h := g.Z[g.Nz] - g.Z[g.Nz-2]
	frc := b.constantForcingFace(atom, 2, g.Nz-1, 2, t, -heatflux*h/2)
	base := allSlice().Fix(stencil.AxK, g.Nz-1).Fix(stencil.AxD1, t).Fix(stencil.AxD2, t)
	atom.AddSliceScaled(base.Fix(stencil.AxSZ, 1), base.Fix(stencil.AxSZ, 2), 2)
	b.DirichletTop(atom)
	return frc
}

// HeatfluxBottom imposes a fixed bottom-wall heat flux (3D only).
func (b BoundaryConditions) HeatfluxBottom(atom *stencil.Tensor, heatflux float64) []float64 {
	g := b.g
	if !g.Layout.HasW() {
		return make([]float64, g.Nx*g.Ny*g.Nz*g.Layout.Dof)
	}
	t := g.Layout.T
	h := g.Z[0] - g.Z[g.Nz+1]
	frc := b.constantForcingFace(atom, 2, 0, 0, t, -heatflux*h/2)
	base := allSlice().Fix(stencil.AxK, 0).Fix(stencil.AxD1, t).Fix(stencil.AxD2, t)
	atom.AddSliceScaled(base.Fix(stencil.AxSZ, 1), base.Fix(stencil.AxSZ, 0), 2)
	b.DirichletBottom(atom)
	return frc
}
