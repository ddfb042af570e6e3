// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fvm is the external-facing facade: it re-exports the
// params.Parameters/ProblemType configuration record, wraps
// discretize.Discretization with the Newton and continuation drivers, and
// re-exports crs.Matrix as CrsMatrix, so a caller never needs to import the
// internal discretize/newton/continuation/stencil/crs/layout/grid packages
// directly.
package fvm

import (
	"github.com/cpmech/gosl/la"

	"github.com/ipelupessy/fvm/continuation"
	"github.com/ipelupessy/fvm/crs"
	"github.com/ipelupessy/fvm/discretize"
	"github.com/ipelupessy/fvm/ferr"
	"github.com/ipelupessy/fvm/grid"
	"github.com/ipelupessy/fvm/layout"
	"github.com/ipelupessy/fvm/newton"
	"github.com/ipelupessy/fvm/params"
)

// Parameters is the recognized-keys configuration record.
type Parameters = params.Parameters

// ProblemType selects the boundary-condition wiring a Discretization uses.
type ProblemType = params.ProblemType

const (
	LidDrivenCavity = params.LidDrivenCavity
	RayleighBenard  = params.RayleighBenard
)

// CrsMatrix is the compressed-row sparse matrix format used for the
// assembled linear system.
type CrsMatrix = crs.Matrix

// Discretization wraps discretize.Discretization with the Newton and
// continuation drivers, so Rhs/Jacobian/Newton/Continuation are all
// reachable from one value without importing the internal packages.
type Discretization struct {
	inner *discretize.Discretization

	newtonSolver        *newton.Solver
	continuationTracker *continuation.Tracker
}

// New builds a Discretization for the given grid shape, spatial dimension
// and degree-of-freedom count. x, y, z are per-axis coordinate vectors; a
// nil axis is replaced by grid.Uniform(0, 1, n) for that axis (when dim==2,
// z only sets the out-of-plane depth of the single cell layer that scales
// the face areas).
func New(p Parameters, nx, ny, nz, dim, dof int, x, y, z []float64) (*Discretization, error) {
	p.SetDefault()

	if x == nil {
		x = grid.Uniform(0, 1, nx)
	}
	if y == nil {
		y = grid.Uniform(0, 1, ny)
	}
	if dim == 3 && z == nil {
		z = grid.Uniform(0, 1, nz)
	}

	inner, err := discretize.New(p, nx, ny, nz, dim, dof, x, y, z)
	if err != nil {
		return nil, err
	}

	solver := &newton.Solver{
		Tolerance:     p.NewtonTolerance,
		StepTolerance: p.NewtonStepTolerance,
		MaxIterations: p.MaxNewtonIters,
		Verbose:       p.Verbose,
	}

	tracker := &continuation.Tracker{
		Solver:            solver,
		Grow:              p.Grow,
		Shrink:            p.Shrink,
		MaxStepSize:       p.MaxStepSize,
		MinStepSize:       p.MinStepSize,
		OptimalIterations: p.OptimalNewtonIters,
		DestinationTol:    p.DestinationTolerance,
		Verbose:           p.Verbose,
	}

	return &Discretization{inner: inner, newtonSolver: solver, continuationTracker: tracker}, nil
}

// Rhs evaluates the discretized residual F(state).
func (d *Discretization) Rhs(state []float64) []float64 {
	return d.inner.Rhs(state)
}

// Jacobian evaluates the Jacobian of Rhs at state.
func (d *Discretization) Jacobian(state []float64) *CrsMatrix {
	return d.inner.Jacobian(state)
}

// Solve solves the linear system A*x = b via the same external sparse
// direct solver Newton and continuation drive internally, for a caller
// that wants to reuse an assembled Jacobian directly (e.g. a custom
// linearization outside the Newton/continuation drivers).
func (d *Discretization) Solve(A *CrsMatrix, b []float64) ([]float64, error) {
	solver := la.GetSolver("umfpack")
	defer solver.Clean()

	solver.InitR(A.ToTriplet(), false, false, false)
	if err := solver.Fact(); err != nil {
		return nil, ferr.Wrap(ferr.SingularJacobian, err, "Solve: factorisation failed")
	}

	x := make([]float64, len(b))
	if err := solver.SolveR(x, b, false); err != nil {
		return nil, ferr.Wrap(ferr.SingularJacobian, err, "Solve: linear solve failed")
	}
	return x, nil
}

// Parameter reads one of the three recognized physical-parameter keys
// ("Reynolds Number", "Rayleigh Number", "Prandtl Number").
func (d *Discretization) Parameter(name string) float64 {
	return d.inner.Parameter(name)
}

// SetParameter updates one of the three recognized physical-parameter keys.
func (d *Discretization) SetParameter(name string, value float64) {
	d.inner.SetParameter(name, value)
}

// DParameter estimates d(Rhs)/d(parameter) at state by central finite
// difference.
func (d *Discretization) DParameter(name string, state []float64) []float64 {
	return d.inner.DParameter(name, state)
}

// Newton runs damped Newton iteration from x0 to convergence.
func (d *Discretization) Newton(x0 []float64) ([]float64, error) {
	x, _, err := d.newtonSolver.Solve(d.inner, x0)
	return x, err
}

// Continuation follows the solution branch in parameter paramName from
// (x0, the discretization's current value of that parameter) to target via
// pseudo-arclength continuation.
func (d *Discretization) Continuation(x0 []float64, paramName string, target, ds float64, maxSteps int) ([]float64, float64, error) {
	return d.continuationTracker.Run(d.inner, x0, paramName, target, ds, maxSteps)
}

// VariableLayout exposes the dof-slot layout for the given (dim, dof)
// combination, for callers that need to address individual state-vector
// components directly (e.g. a caller assembling a custom initial guess).
func VariableLayout(dim, dof int) layout.VariableLayout {
	return layout.New(dim, dof)
}
