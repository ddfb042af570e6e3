// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package discretize builds the per-operator stencil tensors (diffusion,
// pressure gradient, divergence, convective term), folds boundary
// conditions into them in place, and assembles the combined atom into a
// compressed-row sparse matrix plus right-hand side. This is the numerical
// heart of the discretization: linear_part/nonlinear_part/boundaries here
// correspond directly to the LinearOperators, ConvectiveTerm and
// BoundaryConditions responsibilities.
package discretize

import (
	"github.com/ipelupessy/fvm/grid"
	"github.com/ipelupessy/fvm/layout"
	"github.com/ipelupessy/fvm/stencil"
)

// axisGrid bundles one axis's extent and coordinate vector, so the operator
// builders below can loop over x/y/z identically.
type axisGrid struct {
	n int
	x []float64
}

// Geometry is the fixed per-problem grid/layout context every operator and
// boundary handler needs: cell counts, coordinate vectors and the dof
// layout. It is built once per Discretization and reused across Newton
// iterations (only the state-dependent convective tensors are rebuilt).
type Geometry struct {
	Nx, Ny, Nz int
	Dim        int
	X, Y, Z    []float64
	Layout     layout.VariableLayout
}

func (g Geometry) axes() [3]axisGrid {
	return [3]axisGrid{{g.Nx, g.X}, {g.Ny, g.Y}, {g.Nz, g.Z}}
}

// ownAxis returns the staggering axis of velocity dof slot v, or -1 if v is
// p or T (cell-centred, never staggered).
func (g Geometry) ownAxis(v int) int {
	for axis := 0; axis < 3; axis++ {
		if g.Layout.IsStaggered(v, axis) {
			return axis
		}
	}
	return -1
}

// faceFactor returns the distance used as a face-area factor along axis b
// at index idx, for an operator whose row variable has staggering axis
// ownAxis: centred when b is that variable's own staggering axis (the
// variable is NOT cell-aligned along b), direct spacing otherwise.
func faceFactor(b, ownAxis, idx int, x []float64, n int) float64 {
	if b == ownAxis {
		return grid.Centered(x, n, idx)
	}
	return grid.Spacing(x, n, idx)
}

// diffusionOperator builds the second-derivative stencil for the variable
// in dof slot v, differentiated along axis, over the full grid: the
// differentiation axis uses direct (asymmetric) spacing when it is the
// variable's own staggering axis and centred spacing otherwise; every other
// axis is a face-area factor using centred spacing exactly when that OTHER
// axis is the variable's own staggering axis, direct spacing otherwise. p
// and T have no own axis, so both rules simplify to "always centred along
// the differentiation axis, always direct elsewhere" for them.
func diffusionOperator(g Geometry, v, axis int) *stencil.Tensor {
	own := g.ownAxis(v)
	t := stencil.New(g.Nx, g.Ny, g.Nz, g.Layout.Dof)
	axes := g.axes()

	idxOf := func(i, j, k int) [3]int { return [3]int{i, j, k} }

	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				idx := idxOf(i, j, k)

				var distMinus, distPlus float64
				if axis == own {
					distMinus = grid.Spacing(axes[axis].x, axes[axis].n, idx[axis])
					distPlus = grid.SpacingPlus(axes[axis].x, axes[axis].n, idx[axis])
				} else {
					distMinus = grid.Centered(axes[axis].x, axes[axis].n, idx[axis]-1)
					distPlus = grid.Centered(axes[axis].x, axes[axis].n, idx[axis])
				}

				faceArea := 1.0
				for b := 0; b < 3; b++ {
					if b == axis {
						continue
					}
					faceArea *= faceFactor(b, own, idx[b], axes[b].x, axes[b].n)
				}

				coeffMinus := faceArea / distMinus
				coeffPlus := faceArea / distPlus

				var sMinus, sPlus, self [3]int
				sMinus = [3]int{1, 1, 1}
				sPlus = [3]int{1, 1, 1}
				self = [3]int{1, 1, 1}
				sMinus[axis] = 0
				sPlus[axis] = 2

				t.Set(i, j, k, v, v, sMinus[0], sMinus[1], sMinus[2], coeffMinus)
				t.Set(i, j, k, v, v, sPlus[0], sPlus[1], sPlus[2], coeffPlus)
				t.Set(i, j, k, v, v, self[0], self[1], self[2], -(coeffMinus + coeffPlus))
			}
		}
	}
	return t
}

// gradientOperator builds the pressure gradient stencil on row `rowVar` (a
// velocity component staggered along `axis`), column `colVar`: coefficients
// ±faceArea at the self/plus-neighbour offsets along axis.
func gradientOperator(g Geometry, rowVar, colVar, axis int) *stencil.Tensor {
	t := stencil.New(g.Nx, g.Ny, g.Nz, g.Layout.Dof)
	axes := g.axes()
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				idx := [3]int{i, j, k}
				faceArea := 1.0
				for b := 0; b < 3; b++ {
					if b == axis {
						continue
					}
					faceArea *= grid.Spacing(axes[b].x, axes[b].n, idx[b])
				}
				self := [3]int{1, 1, 1}
				plus := [3]int{1, 1, 1}
				plus[axis] = 2
				t.Set(i, j, k, rowVar, colVar, self[0], self[1], self[2], -faceArea)
				t.Set(i, j, k, rowVar, colVar, plus[0], plus[1], plus[2], faceArea)
			}
		}
	}
	return t
}

// buoyancyOperator builds the Boussinesq source stencil coupling T into the
// vertical momentum row `rowVar` (staggered along `axis`): coefficients
// +faceArea/2 at both the self and plus-neighbour offsets along axis,
// averaging the two straddled cells' T values onto the velocity's own
// location. Uses the same face-area weighting as gradientOperator, but
// summed rather than differenced, since this is a source term, not a
// gradient.
func buoyancyOperator(g Geometry, rowVar, colVar, axis int) *stencil.Tensor {
	t := stencil.New(g.Nx, g.Ny, g.Nz, g.Layout.Dof)
	axes := g.axes()
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				idx := [3]int{i, j, k}
				faceArea := 1.0
				for b := 0; b < 3; b++ {
					if b == axis {
						continue
					}
					faceArea *= grid.Spacing(axes[b].x, axes[b].n, idx[b])
				}
				self := [3]int{1, 1, 1}
				plus := [3]int{1, 1, 1}
				plus[axis] = 2
				t.Set(i, j, k, rowVar, colVar, self[0], self[1], self[2], faceArea/2)
				t.Set(i, j, k, rowVar, colVar, plus[0], plus[1], plus[2], faceArea/2)
			}
		}
	}
	return t
}

// divergenceOperator builds the continuity stencil on row `rowVar` (p),
// column `colVar` (a velocity component staggered along `axis`):
// coefficients ±faceArea at the minus-neighbour/self offsets along axis.
func divergenceOperator(g Geometry, rowVar, colVar, axis int) *stencil.Tensor {
	t := stencil.New(g.Nx, g.Ny, g.Nz, g.Layout.Dof)
	axes := g.axes()
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				idx := [3]int{i, j, k}
				faceArea := 1.0
				for b := 0; b < 3; b++ {
					if b == axis {
						continue
					}
					faceArea *= grid.Spacing(axes[b].x, axes[b].n, idx[b])
				}
				self := [3]int{1, 1, 1}
				minus := [3]int{1, 1, 1}
				minus[axis] = 0
				t.Set(i, j, k, rowVar, colVar, minus[0], minus[1], minus[2], -faceArea)
				t.Set(i, j, k, rowVar, colVar, self[0], self[1], self[2], faceArea)
			}
		}
	}
	return t
}

// LinearOperators builds every diffusion/gradient/divergence stencil for
// the given geometry, before Reynolds/Rayleigh/Prandtl scaling is applied
// (that scaling, and the summation into a single tensor, is
// buildLinearPart's job in discretization.go).
type LinearOperators struct {
	Diffusion  map[int]*stencil.Tensor // keyed by velocity/T dof slot; sum of xx+yy+zz
	Gradient   map[int]*stencil.Tensor // keyed by velocity dof slot; p-gradient along its own axis
	Divergence map[int]*stencil.Tensor // keyed by velocity dof slot; its contribution to the p row
}

// BuildLinearOperators constructs every diffusion/gradient/divergence
// stencil a discretization needs: diffusion of u, v, (w), (T) summed over
// the dim available axes, and the matching gradient/divergence pair for
// each velocity component.
func BuildLinearOperators(g Geometry) LinearOperators {
	l := LinearOperators{
		Diffusion:  map[int]*stencil.Tensor{},
		Gradient:   map[int]*stencil.Tensor{},
		Divergence: map[int]*stencil.Tensor{},
	}

	velocities := []int{g.Layout.U, g.Layout.V}
	if g.Layout.HasW() {
		velocities = append(velocities, g.Layout.W)
	}
	// Pressure has no diffusion operator; temperature does when present.
	diffused := append([]int{}, velocities...)
	if g.Layout.HasT() {
		diffused = append(diffused, g.Layout.T)
	}

	for _, v := range diffused {
		sum := stencil.New(g.Nx, g.Ny, g.Nz, g.Layout.Dof)
		for axis := 0; axis < g.Dim; axis++ {
			sum.AddTensor(diffusionOperator(g, v, axis), 1)
		}
		l.Diffusion[v] = sum
	}

	for _, v := range velocities {
		axis := g.ownAxis(v)
		l.Gradient[v] = gradientOperator(g, v, g.Layout.P, axis)
		l.Divergence[v] = divergenceOperator(g, g.Layout.P, v, axis)
	}

	return l
}
