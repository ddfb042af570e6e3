// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package newton implements damped-Newton iteration over an abstract
// residual/Jacobian problem, reaching the linear correction via gosl/la's
// external sparse direct solver: assemble, then InitR/Fact/SolveR per
// iteration.
package newton

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/ipelupessy/fvm/crs"
	"github.com/ipelupessy/fvm/ferr"
)

// Problem is whatever NonlinearPart/Assemble-backed type the caller wants
// solved: given a state vector, it returns the residual and the Jacobian at
// that state. discretize.Discretization satisfies this directly.
type Problem interface {
	Rhs(state []float64) []float64
	Jacobian(state []float64) *crs.Matrix
}

// Solver is a damped-Newton iteration driver: Tolerance/StepTolerance bound
// the residual and step norms that count as converged; MaxIterations bounds
// the iteration budget before NewtonDidNotConverge is returned.
type Solver struct {
	Tolerance     float64
	StepTolerance float64
	MaxIterations int
	Verbose       bool
}

// New returns a Solver with the given knobs already resolved (the caller is
// expected to have run params.Parameters.SetDefault first).
func New(tolerance, stepTolerance float64, maxIterations int, verbose bool) *Solver {
	return &Solver{Tolerance: tolerance, StepTolerance: stepTolerance, MaxIterations: maxIterations, Verbose: verbose}
}

// Solve runs damped Newton iteration from x0, returning the converged state
// and the number of iterations taken. Each iteration assembles fresh
// (Rhs, Jacobian) at the current state (the Jacobian is never reused
// between iterations: the convective term's atomJ depends on the state),
// factorises the Jacobian via gosl/la's external solver and updates
// x -= J^-1 F(x).
func (s *Solver) Solve(p Problem, x0 []float64) ([]float64, int, error) {
	x := append([]float64{}, x0...)
	n := len(x)

	solver := la.GetSolver("umfpack")
	defer solver.Clean()

	for it := 0; it < s.MaxIterations; it++ {
		f := p.Rhs(x)
		fnorm := la.VecNorm(f)
		if s.Verbose {
			io.Pforan("newton: iter=%d |F|=%g\n", it, fnorm)
		}
		if fnorm < s.Tolerance {
			return x, it, nil
		}

		jac := p.Jacobian(x)
		triplet := jac.ToTriplet()

		solver.InitR(triplet, false, s.Verbose, false)
		if err := solver.Fact(); err != nil {
			return x, it, ferr.Wrap(ferr.SingularJacobian, err, "factorisation failed at iteration %d", it)
		}

		neg := make([]float64, n)
		for i := range f {
			neg[i] = -f[i]
		}
		dx := make([]float64, n)
		if err := solver.SolveR(dx, neg, false); err != nil {
			return x, it, ferr.Wrap(ferr.SingularJacobian, err, "linear solve failed at iteration %d", it)
		}

		for i := range x {
			x[i] += dx[i]
		}

		if la.VecNorm(dx) < s.StepTolerance {
			return x, it + 1, nil
		}
	}

	return x, s.MaxIterations, ferr.New(ferr.NewtonDidNotConverge,
		"Newton iteration did not converge in %d iterations", s.MaxIterations)
}
