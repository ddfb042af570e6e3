// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discretize

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ipelupessy/fvm/stencil"
)

// randomState fills a deterministic, non-constant state vector so the
// convective term actually picks up nonzero central differences everywhere.
func randomState(g Geometry) []float64 {
	n := g.Nx * g.Ny * g.Nz * g.Layout.Dof
	state := make([]float64, n)
	for i := range state {
		state[i] = math.Sin(float64(i)*0.37) + 0.1*float64(i%5)
	}
	return state
}

// Test_bilin01 checks the no-self-coupling invariant: atomF must never
// place a coefficient on the (row, row) diagonal for any velocity row, for
// any state.
func Test_bilin01(tst *testing.T) {

	chk.PrintTitle("bilin01")

	g := uniformGeometry(4, 3, 1, 2, 3)
	state := randomState(g)
	nonlinear := NonlinearPart(g, state)

	velocities := []int{g.Layout.U, g.Layout.V}
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				for _, v := range velocities {
					diag := nonlinear.AtomF.At(i, j, k, v, v, 1, 1, 1)
					if diag != 0 {
						tst.Errorf("atomF has a nonzero self-coupling entry at (%d,%d,%d,%d): %g", i, j, k, v, diag)
					}
				}
			}
		}
	}
}

// rowContribution sums one cell's stencil row against state directly (no
// CRS assembly), reading neighbours from the flat state vector the same
// way stateIndex addresses it. Only valid where every nonzero coefficient's
// offset stays within the grid: away from the domain edges (the restriction
// Test_jac_shortcut01 applies before calling this), or at the edges once
// boundary folding has zeroed the ghost offsets (as in Test_assemble01).
func rowContribution(atom *stencil.Tensor, g Geometry, state []float64, i, j, k, row int) float64 {
	dof := g.Layout.Dof
	var sum float64
	for sx := 0; sx < 3; sx++ {
		for sy := 0; sy < 3; sy++ {
			for sz := 0; sz < 3; sz++ {
				for d2 := 0; d2 < dof; d2++ {
					c := atom.At(i, j, k, row, d2, sx, sy, sz)
					if c == 0 {
						continue
					}
					sum += c * state[stateIndex(g, i+sx-1, j+sy-1, k+sz-1, d2)]
				}
			}
		}
	}
	return sum
}

// Test_jac_shortcut01 checks the quadratic-nonlinearity Newton shortcut:
// atomJ.x == 2*atomF.x exactly, evaluated per interior cell/row directly
// from the stencil tensors (bypassing CRS assembly, whose column formula
// would need boundary folding first to stay in range at domain edges,
// which is irrelevant to the identity being checked here).
func Test_jac_shortcut01(tst *testing.T) {

	chk.PrintTitle("jac_shortcut01")

	g := uniformGeometry(6, 5, 1, 2, 3)
	state := randomState(g)
	nonlinear := NonlinearPart(g, state)

	velocities := []int{g.Layout.U, g.Layout.V}
	for i := 1; i < g.Nx-1; i++ {
		for j := 1; j < g.Ny-1; j++ {
			for _, v := range velocities {
				fx := rowContribution(nonlinear.AtomF, g, state, i, j, 0, v)
				jx := rowContribution(nonlinear.AtomJ, g, state, i, j, 0, v)
				chk.Scalar(tst, "atomJ.x == 2*atomF.x", 1e-9, jx, 2*fx)
			}
		}
	}
}
