// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ipelupessy/fvm/crs"
	"github.com/ipelupessy/fvm/ferr"
)

// quadraticProblem is a 2-variable synthetic Problem with a known root,
// x[0] = sqrt(2), x[1] = 3: f0 = x0^2 - 2, f1 = x1 - 3. Small enough to
// hand-assemble the Jacobian directly via crs.Builder, exercising the same
// Problem interface discretize.Discretization satisfies.
type quadraticProblem struct{}

func (quadraticProblem) Rhs(x []float64) []float64 {
	return []float64{x[0]*x[0] - 2, x[1] - 3}
}

func (quadraticProblem) Jacobian(x []float64) *crs.Matrix {
	b := crs.NewBuilder(2, 3)
	b.StartRow(0)
	b.Put(0, 2*x[0])
	b.EndRow()
	b.StartRow(1)
	b.Put(1, 1)
	b.EndRow()
	return b.Finish()
}

func Test_solve01(tst *testing.T) {

	chk.PrintTitle("solve01")

	s := New(1e-10, 1e-10, 50, false)
	x, iters, err := s.Solve(quadraticProblem{}, []float64{1.0, 1.0})
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	chk.Scalar(tst, "x0 converges to sqrt(2)", 1e-8, x[0], math.Sqrt2)
	chk.Scalar(tst, "x1 converges to 3", 1e-8, x[1], 3)
	if iters <= 0 {
		tst.Errorf("expected at least one Newton iteration, got %d", iters)
	}
}

// Test_solve_maxiter01 checks a problem with no root within reach of the
// iteration budget reports NewtonDidNotConverge rather than hanging.
type unreachableProblem struct{}

func (unreachableProblem) Rhs(x []float64) []float64 {
	return []float64{math.Exp(x[0]) + 1}
}

func (unreachableProblem) Jacobian(x []float64) *crs.Matrix {
	b := crs.NewBuilder(1, 1)
	b.StartRow(0)
	b.Put(0, math.Exp(x[0]))
	b.EndRow()
	return b.Finish()
}

func Test_solve_maxiter01(tst *testing.T) {

	chk.PrintTitle("solve_maxiter01")

	s := New(1e-12, 1e-14, 3, false)
	_, _, err := s.Solve(unreachableProblem{}, []float64{0})
	if !ferr.Is(err, ferr.NewtonDidNotConverge) {
		tst.Errorf("expected NewtonDidNotConverge for a residual with no root")
	}
}
