// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package continuation implements pseudo-arclength continuation of a
// solution branch in one physical parameter, predictor-corrector style: a
// tangent predictor step followed by a bordered-Newton corrector on the
// augmented (state, parameter) system, with adaptive step-size control
// driven by the Newton iteration count.
package continuation

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/ipelupessy/fvm/ferr"
	"github.com/ipelupessy/fvm/newton"
)

// Problem extends newton.Problem with the parameter accessors continuation
// needs to build and correct the augmented bordered system.
type Problem interface {
	newton.Problem
	Parameter(name string) float64
	SetParameter(name string, value float64)
	DParameter(name string, state []float64) []float64
}

// Tracker drives pseudo-arclength continuation. Solver supplies both the
// convergence knobs and the sparse-solve plumbing its ordinary Newton
// iteration already implements, reused here for the final on-target
// correction; the bordered corrector for ordinary predictor steps is
// implemented locally in correct, since it needs two solves per iteration
// against the same factorization rather than one.
type Tracker struct {
	Solver            *newton.Solver
	Grow              float64
	Shrink            float64
	MaxStepSize       float64
	MinStepSize       float64
	OptimalIterations int
	DestinationTol    float64
	Verbose           bool
}

// Run continues the branch in parameter paramName from (x0, the problem's
// current value of that parameter) toward target, returning the state and
// parameter value of the last accepted point, which lands exactly on
// target when continuation succeeds.
func (t *Tracker) Run(p Problem, x0 []float64, paramName string, target, ds float64, maxSteps int) ([]float64, float64, error) {
	n := len(x0)
	x := append([]float64{}, x0...)
	param := p.Parameter(paramName)

	dx := make([]float64, n)
	dparam := 1.0
	if target < param {
		dparam = -1.0
	}

	step := math.Abs(ds)
	if step == 0 {
		step = t.MaxStepSize
	}

	for s := 0; s < maxSteps; s++ {
		if math.Abs(param-target) < t.DestinationTol {
			return x, param, nil
		}

		xPred := make([]float64, n)
		for i := range xPred {
			xPred[i] = x[i] + step*dx[i]
		}
		paramPred := param + step*dparam

		xNew, paramNew, iters, err := t.correct(p, paramName, x, param, dx, dparam, xPred, paramPred, step)
		if err != nil {
			step /= t.Shrink
			if step < t.MinStepSize {
				return x, param, ferr.New(ferr.StepSizeUnderflow,
					"continuation step fell below %g before reaching %s=%g (at %s=%g)",
					t.MinStepSize, paramName, target, paramName, param)
			}
			continue
		}

		if (paramNew-target)*(param-target) < 0 || math.Abs(paramNew-target) < t.DestinationTol {
			p.SetParameter(paramName, target)
			xFinal, _, err := t.Solver.Solve(p, xNew)
			if err != nil {
				return x, param, err
			}
			return xFinal, target, nil
		}

		newDx := make([]float64, n)
		for i := range newDx {
			newDx[i] = xNew[i] - x[i]
		}
		newDparam := paramNew - param
		norm := math.Hypot(la.VecNorm(newDx), newDparam)
		if norm > 0 {
			for i := range newDx {
				newDx[i] /= norm
			}
			newDparam /= norm
		}

		x, param, dx, dparam = xNew, paramNew, newDx, newDparam

		if iters < t.OptimalIterations {
			step = math.Min(step*t.Grow, t.MaxStepSize)
		} else if iters > t.OptimalIterations {
			step = math.Max(step/t.Shrink, t.MinStepSize)
		}
	}

	return x, param, ferr.New(ferr.StepSizeUnderflow,
		"continuation exhausted %d steps before reaching %s=%g", maxSteps, paramName, target)
}

// correct runs the bordered-Newton iteration for one predictor step,
// following Keller's bordering algorithm: each iteration solves the same
// Jacobian factorization twice, once against -F_lambda and once against
// -F(x,lambda), then combines the two solutions through the scalar
// arclength constraint
//
//	dx.(x-xPrev) + dparam*(lambda-lambdaPrev) - step = 0
//
// to get the parameter correction dlambda, and dx = z2 + dlambda*z1.
func (t *Tracker) correct(p Problem, paramName string, xPrev []float64, paramPrev float64, tanX []float64, tanParam float64, xPred []float64, paramPred, step float64) ([]float64, float64, int, error) {
	n := len(xPrev)
	x := append([]float64{}, xPred...)
	lambda := paramPred

	solver := la.GetSolver("umfpack")
	defer solver.Clean()

	for it := 0; it < t.Solver.MaxIterations; it++ {
		p.SetParameter(paramName, lambda)

		f := p.Rhs(x)
		arc := dot(tanX, diff(x, xPrev)) + tanParam*(lambda-paramPrev) - step

		if la.VecNorm(f) < t.Solver.Tolerance && math.Abs(arc) < t.Solver.Tolerance {
			return x, lambda, it, nil
		}

		jac := p.Jacobian(x)
		triplet := jac.ToTriplet()
		solver.InitR(triplet, false, t.Verbose, false)
		if err := solver.Fact(); err != nil {
			return nil, 0, it, ferr.Wrap(ferr.SingularJacobian, err, "continuation corrector factorisation failed")
		}

		fLambda := p.DParameter(paramName, x)

		z1 := make([]float64, n)
		if err := solver.SolveR(z1, scale(fLambda, -1), false); err != nil {
			return nil, 0, it, ferr.Wrap(ferr.SingularJacobian, err, "continuation corrector solve (z1) failed")
		}

		z2 := make([]float64, n)
		if err := solver.SolveR(z2, scale(f, -1), false); err != nil {
			return nil, 0, it, ferr.Wrap(ferr.SingularJacobian, err, "continuation corrector solve (z2) failed")
		}

		denom := tanParam + dot(tanX, z1)
		if denom == 0 {
			return nil, 0, it, ferr.New(ferr.SingularJacobian, "continuation corrector: singular bordering denominator")
		}
		dlambda := (-arc - dot(tanX, z2)) / denom

		for i := range x {
			x[i] += z2[i] + dlambda*z1[i]
		}
		lambda += dlambda
	}

	return nil, 0, t.Solver.MaxIterations, ferr.New(ferr.NewtonDidNotConverge,
		"continuation corrector did not converge in %d iterations", t.Solver.MaxIterations)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func diff(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func scale(a []float64, f float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * f
	}
	return out
}
