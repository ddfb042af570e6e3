// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discretize

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ipelupessy/fvm/stencil"
)

// Test_dirichlet_east01 checks the structural shape DirichletEast leaves
// behind: the east wall's own u-row becomes the trivial identity u=const
// (self coefficient -1, everything else on that row zeroed), and the
// interior cell just inside the wall no longer references the eliminated
// east ghost.
func Test_dirichlet_east01(tst *testing.T) {

	chk.PrintTitle("dirichlet_east01")

	g := uniformGeometry(4, 3, 1, 2, 3)
	atom := stencil.New(g.Nx, g.Ny, g.Nz, g.Layout.Dof)

	// populate a diffusion-like stencil touching the east ghost, as
	// diffusionOperator would before boundary folding.
	diff := diffusionOperator(g, g.Layout.U, 0)
	atom.AddTensor(diff, 1)

	b := NewBoundaryConditions(g)
	b.DirichletEast(atom)

	u := g.Layout.U
	i := g.Nx - 1
	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			self := atom.At(i, j, k, u, u, 1, 1, 1)
			chk.Scalar(tst, "east wall u identity", 1e-15, self, -1)

			east := atom.At(i, j, k, u, u, 2, 1, 1)
			chk.Scalar(tst, "east wall has no east neighbour left", 1e-15, east, 0)
		}
	}

	// the interior cell just inside the east wall must no longer
	// reference the eliminated ghost coefficient on u's own row.
	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			ghostRef := atom.At(g.Nx-2, j, k, u, u, 2, 1, 1)
			chk.Scalar(tst, "interior cell's east-neighbour ref cleared", 1e-15, ghostRef, 0)
		}
	}
}

// Test_moving_lid01 checks that MovingLidNorth returns a nonzero forcing
// vector exactly on the u-row of the north-wall cells, and that calling it
// leaves the same wall-identity structure DirichletNorth alone would (since
// it delegates to DirichletNorth after building the forcing).
func Test_moving_lid01(tst *testing.T) {

	chk.PrintTitle("moving_lid01")

	g := uniformGeometry(4, 3, 1, 2, 3)
	atom := stencil.New(g.Nx, g.Ny, g.Nz, g.Layout.Dof)
	diff := diffusionOperator(g, g.Layout.U, 1)
	atom.AddTensor(diff, 1)

	b := NewBoundaryConditions(g)
	frc := b.MovingLidNorth(atom, 1.0)

	v := g.Layout.V
	j := g.Ny - 1
	for i := 0; i < g.Nx; i++ {
		for k := 0; k < g.Nz; k++ {
			self := atom.At(i, j, k, v, v, 1, 1, 1)
			chk.Scalar(tst, "north wall v identity", 1e-15, self, -1)
		}
	}

	nonzero := false
	for _, f := range frc {
		if f != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		tst.Errorf("MovingLidNorth should produce a nonzero forcing vector")
	}

	u := g.Layout.U
	lidRows := map[int]bool{}
	for i := 0; i < g.Nx; i++ {
		for k := 0; k < g.Nz; k++ {
			lidRows[stateIndex(g, i, j, k, u)] = true
		}
	}
	for idx, f := range frc {
		if lidRows[idx] && f == 0 {
			tst.Errorf("MovingLidNorth left a zero forcing entry on north-wall u row %d", idx)
		}
		if !lidRows[idx] && f != 0 {
			tst.Errorf("MovingLidNorth put a nonzero forcing entry %g on row %d outside the north-wall u rows", f, idx)
		}
	}
}
