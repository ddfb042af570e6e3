// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discretize

import (
	"github.com/ipelupessy/fvm/grid"
	"github.com/ipelupessy/fvm/layout"
	"github.com/ipelupessy/fvm/stencil"
)

// cellArray is a plain [nx*ny*nz] view of one degree of freedom's values,
// addressed (i,j,k), used while building the convective term: face
// averages are most naturally expressed over a single component's raw
// values rather than through the 8-D stencil tensor.
type cellArray struct {
	nx, ny, nz int
	data       []float64
}

func newCellArray(nx, ny, nz int) cellArray {
	return cellArray{nx, ny, nz, make([]float64, nx*ny*nz)}
}

func (c cellArray) at(i, j, k int) float64 {
	return c.data[k+c.nz*(j+c.ny*i)]
}

func (c cellArray) set(i, j, k int, v float64) {
	c.data[k+c.nz*(j+c.ny*i)] = v
}

// extractComponent pulls dof slot v out of the flat state vector into a
// cellArray, undoing the row-major (k,j,i,dof) interleaving stateIndex uses.
func extractComponent(state []float64, g Geometry, v int) cellArray {
	c := newCellArray(g.Nx, g.Ny, g.Nz)
	dof := g.Layout.Dof
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				idx := v + i*dof + j*dof*g.Nx + k*dof*g.Nx*g.Ny
				c.set(i, j, k, state[idx])
			}
		}
	}
	return c
}

func (c cellArray) dimAt(a int) int {
	switch a {
	case 0:
		return c.nx
	case 1:
		return c.ny
	default:
		return c.nz
	}
}

// atOffset reads c at idx shifted by offset along axis a, or returns
// (0, false) if that falls outside the array (boundary folding handles
// the physical meaning of the missing neighbour afterwards).
func (c cellArray) atOffset(idx [3]int, a, offset int) (float64, bool) {
	shifted := idx
	shifted[a] += offset
	if shifted[a] < 0 || shifted[a] >= c.dimAt(a) {
		return 0, false
	}
	return c.at(shifted[0], shifted[1], shifted[2]), true
}

// nodalAverage is the simple two-point average of c between idx and idx's
// neighbour +1 along axis: 0.5*(c[idx] + c[idx shifted +1 along axis]),
// dropping the shifted term (treating it as zero) at the upper domain edge.
func nodalAverage(c cellArray, idx [3]int, axis int) float64 {
	self := c.at(idx[0], idx[1], idx[2])
	next, ok := c.atOffset(idx, axis, 1)
	if !ok {
		return self / 2
	}
	return (self + next) / 2
}

// ConvectiveTerm holds the bilinear (u.grad)u stencil tensors built from a
// given state: atomJ for the Jacobian (both product-rule summands), atomF
// for the residual (one summand). Only velocity rows are populated; p and T
// rows are untouched, since no convective transport is modelled for them.
type ConvectiveTerm struct {
	AtomJ *stencil.Tensor
	AtomF *stencil.Tensor
}

// NonlinearPart builds the convective-term tensors for the given state.
//
// For each momentum row (velocity component rowVar staggered along
// rowAxis) and each spatial axis a, the contribution models
// advectVar_a * d(rowVar)/dx_a with a central difference: d(rowVar)/dx_a
// is written as (rowVar[idx+1] - rowVar[idx-1]) / dist, touching only the
// two neighbour offsets along a (never the self offset), and the
// advecting velocity is frozen at its current-state value: rowVar itself
// when a is rowVar's own axis (the u.du/dx self-advection term), or the
// two-point average of advectVar onto rowVar's own axis otherwise (average
// u onto the face where v or w lives, and vice versa).
//
// atomF carries only the d(rowVar) summand (the frozen-advection part), so
// it never places a coefficient on the diagonal. atomJ adds the
// d(advectVar) summand too, following the product rule d(a*b) = a*db +
// b*da; when advectVar == rowVar (self-advection) this second summand
// lands on the same diagonal entry atomF deliberately avoids, giving
// atomJ.x == 2*atomF.x exactly for that term.
func NonlinearPart(g Geometry, state []float64) ConvectiveTerm {
	dof := g.Layout.Dof
	atomJ := stencil.New(g.Nx, g.Ny, g.Nz, dof)
	atomF := stencil.New(g.Nx, g.Ny, g.Nz, dof)

	velocities := []int{g.Layout.U, g.Layout.V}
	if g.Layout.HasW() {
		velocities = append(velocities, g.Layout.W)
	}
	components := map[int]cellArray{}
	for _, v := range velocities {
		components[v] = extractComponent(state, g, v)
	}

	axes := g.axes()

	for _, rowVar := range velocities {
		rowAxis := g.ownAxis(rowVar)
		rowC := components[rowVar]

		for a := 0; a < g.Dim; a++ {
			advectVar := velocityOnAxis(g.Layout, a)
			if advectVar < 0 {
				continue
			}
			advectC := components[advectVar]

			for i := 0; i < g.Nx; i++ {
				for j := 0; j < g.Ny; j++ {
					for k := 0; k < g.Nz; k++ {
						idx := [3]int{i, j, k}
						dist := grid.Spacing(axes[a].x, axes[a].n, idx[a]) +
							grid.SpacingPlus(axes[a].x, axes[a].n, idx[a])
						if dist == 0 {
							continue
						}

						var frozenAdvect float64
						if a == rowAxis {
							frozenAdvect = rowC.at(i, j, k)
						} else {
							frozenAdvect = nodalAverage(advectC, idx, rowAxis)
						}

						minusOff, plusOff := [3]int{1, 1, 1}, [3]int{1, 1, 1}
						minusOff[a], plusOff[a] = 0, 2

						coeff := frozenAdvect / dist
						atomJ.Add(i, j, k, rowVar, rowVar, minusOff[0], minusOff[1], minusOff[2], -coeff)
						atomJ.Add(i, j, k, rowVar, rowVar, plusOff[0], plusOff[1], plusOff[2], coeff)
						atomF.Add(i, j, k, rowVar, rowVar, minusOff[0], minusOff[1], minusOff[2], -coeff)
						atomF.Add(i, j, k, rowVar, rowVar, plusOff[0], plusOff[1], plusOff[2], coeff)

						rowMinus, _ := rowC.atOffset(idx, a, -1)
						rowPlus, _ := rowC.atOffset(idx, a, 1)
						rowDiff := rowPlus - rowMinus

						if a == rowAxis {
							self := [3]int{1, 1, 1}
							atomJ.Add(i, j, k, rowVar, rowVar, self[0], self[1], self[2], rowDiff/dist)
							continue
						}

						self := [3]int{1, 1, 1}
						plusRowAxis := [3]int{1, 1, 1}
						plusRowAxis[rowAxis] = 2
						atomJ.Add(i, j, k, rowVar, advectVar, self[0], self[1], self[2], 0.5*rowDiff/dist)
						atomJ.Add(i, j, k, rowVar, advectVar, plusRowAxis[0], plusRowAxis[1], plusRowAxis[2], 0.5*rowDiff/dist)
					}
				}
			}
		}
	}

	return ConvectiveTerm{AtomJ: atomJ, AtomF: atomF}
}

// velocityOnAxis returns the velocity dof slot staggered along axis a, or
// -1 if dim doesn't reach that axis.
func velocityOnAxis(l layout.VariableLayout, a int) int {
	for _, v := range []int{l.U, l.V, l.W} {
		if v >= 0 && l.IsStaggered(v, a) {
			return v
		}
	}
	return -1
}
