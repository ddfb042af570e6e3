// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discretize

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ipelupessy/fvm/grid"
	"github.com/ipelupessy/fvm/params"
)

func newLidDrivenCavity(tst *testing.T, nx, ny, nz, dim, dof int) *Discretization {
	p := params.Parameters{Reynolds: 100, Problem: params.LidDrivenCavity}
	p.SetDefault()

	x := grid.Uniform(0, 1, nx)
	y := grid.Uniform(0, 1, ny)
	var z []float64
	if dim == 3 {
		z = grid.Uniform(0, 1, nz)
	}

	d, err := New(p, nx, ny, nz, dim, dof, x, y, z)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	return d
}

// Test_new01 checks New builds cleanly for both 2D and 3D lid-driven
// cavities, and rejects an invalid parameter set before touching geometry.
func Test_new01(tst *testing.T) {

	chk.PrintTitle("new01")

	newLidDrivenCavity(tst, 4, 4, 1, 2, 3)
	newLidDrivenCavity(tst, 4, 4, 4, 3, 4)

	bad := params.Parameters{Reynolds: -5}
	bad.SetDefault()
	x := grid.Uniform(0, 1, 4)
	if _, err := New(bad, 4, 4, 1, 2, 3, x, x, nil); err == nil {
		tst.Errorf("New should reject a negative Reynolds number")
	}
}

// Test_rhs_zero01 checks Rhs at the zero state reduces to -forcing: the
// linear part and the (quadratic) nonlinear part both vanish at state=0, so
// only the moving-lid boundary forcing survives, and only on the lid row.
func Test_rhs_zero01(tst *testing.T) {

	chk.PrintTitle("rhs_zero01")

	d := newLidDrivenCavity(tst, 4, 4, 1, 2, 3)
	n := d.Geometry.Nx * d.Geometry.Ny * d.Geometry.Nz * d.Geometry.Layout.Dof
	state := make([]float64, n)

	rhs := d.Rhs(state)

	u := d.Geometry.Layout.U
	lidRow := stateIndex(d.Geometry, 1, d.Geometry.Ny-1, 0, u)
	if rhs[lidRow] == 0 {
		tst.Errorf("expected a nonzero residual on the moving-lid u row at zero state")
	}

	deepInterior := stateIndex(d.Geometry, 2, 1, 0, d.Geometry.Layout.P)
	chk.Scalar(tst, "deep-interior pressure row at zero state", 1e-12, rhs[deepInterior], 0)
}

// Test_jacobian_consistency01 is a finite-difference Jacobian check:
// Jacobian(state)*dx must match the central difference of Rhs along a
// small perturbation dx, to first order in h.
func Test_jacobian_consistency01(tst *testing.T) {

	chk.PrintTitle("jacobian_consistency01")

	d := newLidDrivenCavity(tst, 5, 4, 1, 2, 3)
	n := d.Geometry.Nx * d.Geometry.Ny * d.Geometry.Nz * d.Geometry.Layout.Dof
	state := randomState(d.Geometry)
	dx := randomState(d.Geometry)
	for i := range dx {
		dx[i] *= 0.01
	}

	jac := d.Jacobian(state)
	jdx := jac.MulVec(dx)

	h := 1e-6
	plus := make([]float64, n)
	minus := make([]float64, n)
	for i := range state {
		plus[i] = state[i] + h*dx[i]
		minus[i] = state[i] - h*dx[i]
	}
	rp := d.Rhs(plus)
	rm := d.Rhs(minus)

	for i := 0; i < n; i++ {
		fd := (rp[i] - rm[i]) / (2 * h)
		chk.Scalar(tst, "Jacobian*dx matches finite-difference directional derivative", 1e-4, jdx[i], fd)
	}
}

// Test_dparameter01 checks DParameter's central difference against a direct
// recomputation of Rhs at the perturbed Reynolds numbers.
func Test_dparameter01(tst *testing.T) {

	chk.PrintTitle("dparameter01")

	d := newLidDrivenCavity(tst, 4, 4, 1, 2, 3)
	state := randomState(d.Geometry)

	got := d.DParameter("Reynolds Number", state)

	orig := d.Parameter("Reynolds Number")
	eps := 1e-6
	d.SetParameter("Reynolds Number", orig+eps)
	plus := d.Rhs(state)
	d.SetParameter("Reynolds Number", orig-eps)
	minus := d.Rhs(state)
	d.SetParameter("Reynolds Number", orig)

	for i := range got {
		want := (plus[i] - minus[i]) / (2 * eps)
		chk.Scalar(tst, "DParameter matches direct recomputation", 1e-9, got[i], want)
	}
}
