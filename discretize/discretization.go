// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discretize

import (
	"github.com/ipelupessy/fvm/crs"
	"github.com/ipelupessy/fvm/ferr"
	"github.com/ipelupessy/fvm/grid"
	"github.com/ipelupessy/fvm/layout"
	"github.com/ipelupessy/fvm/params"
	"github.com/ipelupessy/fvm/stencil"
)

// dParameterEps is the central-difference step used by DParameter. The
// three physical parameters enter the stencil scaling nonlinearly (1/Re,
// 1/(Re*Pr), Ra/(Re^2*Pr)), so there is no direct analytic derivative to
// fall back to; a fixed small epsilon estimates it numerically instead.
const dParameterEps = 1e-6

// Discretization is the full per-problem discretization context: geometry,
// physical parameters, the boundary-condition wiring selected by
// params.Parameters.Problem, and the cached linear-part atom (rebuilt only
// when a parameter affecting its scaling changes).
type Discretization struct {
	Geometry   Geometry
	Parameters params.Parameters

	boundary BoundaryConditions
	linear   *stencil.Tensor
}

// New builds a Discretization for the given grid and parameters. x, y, z are
// the per-axis coordinate vectors from the grid package (z may be nil in
// 2D, in which case grid.Uniform(0, 1, nz) supplies a unit out-of-plane
// depth); p is validated against the (dim, dof) layout before anything else
// is built.
func New(p params.Parameters, nx, ny, nz, dim, dof int, x, y, z []float64) (*Discretization, error) {
	if err := p.Validate(dim, dof); err != nil {
		return nil, err
	}
	if z == nil {
		z = grid.Uniform(0, 1, nz)
	}
	l := layout.New(dim, dof)
	g := Geometry{Nx: nx, Ny: ny, Nz: nz, Dim: dim, X: x, Y: y, Z: z, Layout: l}

	d := &Discretization{
		Geometry:   g,
		Parameters: p,
		boundary:   NewBoundaryConditions(g),
	}
	d.buildLinearPart()
	return d, nil
}

// verticalAxis is the axis the Boussinesq buoyancy source couples into:
// y (V, axis 1) in 2D, z (W, axis 2) in 3D. It holds regardless of which
// walls carry the imposed temperature difference; see applyBoundaries.
func (d *Discretization) verticalAxis() int {
	if d.Geometry.Layout.HasW() {
		return 2
	}
	return 1
}

func (d *Discretization) verticalVelocity() int {
	if d.Geometry.Layout.HasW() {
		return d.Geometry.Layout.W
	}
	return d.Geometry.Layout.V
}

// buildLinearPart assembles the Reynolds/Rayleigh/Prandtl-scaled sum of
// every linear operator (diffusion, gradient, divergence, and, for a
// Rayleigh-Benard problem, the buoyancy source) into a single cached atom.
// Called once by New and again by SetParameter, since every one of the
// three physical parameters only ever enters through this scaling.
func (d *Discretization) buildLinearPart() {
	g := d.Geometry
	ops := BuildLinearOperators(g)

	sum := stencil.New(g.Nx, g.Ny, g.Nz, g.Layout.Dof)

	re := d.Parameters.Reynolds
	velocities := []int{g.Layout.U, g.Layout.V}
	if g.Layout.HasW() {
		velocities = append(velocities, g.Layout.W)
	}

	if re > 0 {
		for _, v := range velocities {
			sum.AddTensor(ops.Diffusion[v], 1/re)
		}
		if g.Layout.HasT() {
			pr := d.Parameters.Prandtl
			sum.AddTensor(ops.Diffusion[g.Layout.T], 1/(re*pr))
		}
	}

	for _, v := range velocities {
		sum.AddTensor(ops.Gradient[v], 1)
		sum.AddTensor(ops.Divergence[v], 1)
	}

	if g.Layout.HasT() && d.Parameters.Problem == params.RayleighBenard && re > 0 {
		ra := d.Parameters.Rayleigh
		pr := d.Parameters.Prandtl
		factor := ra / (re * re * pr)
		b := buoyancyOperator(g, d.verticalVelocity(), g.Layout.T, d.verticalAxis())
		sum.AddTensor(b, factor)
	}

	d.linear = sum
}

// applyBoundaries folds the ghost-cell coefficients for every face into
// atom (in place) according to the problem type, and returns the
// accumulated forcing vector those folds produce. Two problem types are
// wired:
//
//   - LidDrivenCavity: no-slip on every wall except one moving lid (the
//     north wall in 2D, the top wall in 3D), driven at unit velocity.
//   - RayleighBenard: the hot wall (T=1) is wired onto west and the cold
//     wall (T=0) onto east, with the remaining walls adiabatic (zero heat
//     flux); buoyancy still couples into the vertical velocity component
//     (see verticalAxis) regardless of which walls carry the temperature
//     gradient.
func (d *Discretization) applyBoundaries(atom *stencil.Tensor) []float64 {
	g := d.Geometry
	n := g.Nx * g.Ny * g.Nz * g.Layout.Dof
	frc := make([]float64, n)
	b := d.boundary

	switch d.Parameters.Problem {
	case params.RayleighBenard:
		addInto(frc, b.TemperatureWest(atom, 1))
		addInto(frc, b.TemperatureEast(atom, 0))
		if g.Layout.HasW() {
			addInto(frc, b.HeatfluxNorth(atom, 0))
			addInto(frc, b.HeatfluxSouth(atom, 0))
			addInto(frc, b.HeatfluxTop(atom, 0))
			addInto(frc, b.HeatfluxBottom(atom, 0))
		} else {
			addInto(frc, b.HeatfluxNorth(atom, 0))
			addInto(frc, b.HeatfluxSouth(atom, 0))
		}

	default: // LidDrivenCavity
		if g.Layout.HasW() {
			addInto(frc, b.MovingLidTop(atom, 1))
			b.DirichletBottom(atom)
			b.DirichletNorth(atom)
			b.DirichletSouth(atom)
		} else {
			addInto(frc, b.MovingLidNorth(atom, 1))
			b.DirichletSouth(atom)
		}
		b.DirichletEast(atom)
		b.DirichletWest(atom)
	}

	return frc
}

// combinedAtom builds linear + extra (the state-dependent convective
// contribution) into a fresh tensor, leaving the cached linear part
// untouched, then folds boundary conditions into the copy.
func (d *Discretization) combinedAtom(extra *stencil.Tensor) (*stencil.Tensor, []float64) {
	atom := d.linear.Clone()
	atom.AddTensor(extra, 1)
	frc := d.applyBoundaries(atom)
	return atom, frc
}

// Rhs evaluates the discretized residual F(state) = linear_part*state +
// nonlinear_part(state) - f_boundary.
func (d *Discretization) Rhs(state []float64) []float64 {
	nonlinear := NonlinearPart(d.Geometry, state)
	atom, frc := d.combinedAtom(nonlinear.AtomF)
	g := d.Geometry
	m := Assemble(atom, g.Nx, g.Ny, g.Nz, g.Layout.Dof)
	result := m.MulVec(state)
	for i := range result {
		result[i] -= frc[i]
	}
	return result
}

// Jacobian evaluates the Jacobian of Rhs at state: linear_part +
// d(nonlinear_part)/d(state).
func (d *Discretization) Jacobian(state []float64) *crs.Matrix {
	nonlinear := NonlinearPart(d.Geometry, state)
	atom, _ := d.combinedAtom(nonlinear.AtomJ)
	g := d.Geometry
	return Assemble(atom, g.Nx, g.Ny, g.Nz, g.Layout.Dof)
}

// Parameter reads one of the three recognized physical-parameter dictionary
// keys.
func (d *Discretization) Parameter(name string) float64 {
	switch name {
	case "Reynolds Number":
		return d.Parameters.Reynolds
	case "Rayleigh Number":
		return d.Parameters.Rayleigh
	case "Prandtl Number":
		return d.Parameters.Prandtl
	default:
		panic(ferr.New(ferr.MissingParameter, "unknown continuation parameter %q", name))
	}
}

// SetParameter updates one of the three recognized physical-parameter
// dictionary keys and rebuilds the cached linear part, since all three only
// ever enter the discretization through buildLinearPart's scaling.
func (d *Discretization) SetParameter(name string, value float64) {
	switch name {
	case "Reynolds Number":
		d.Parameters.Reynolds = value
	case "Rayleigh Number":
		d.Parameters.Rayleigh = value
	case "Prandtl Number":
		d.Parameters.Prandtl = value
	default:
		panic(ferr.New(ferr.MissingParameter, "unknown continuation parameter %q", name))
	}
	d.buildLinearPart()
}

// DParameter estimates d(Rhs)/d(parameter) at state by central finite
// difference; the continuation tangent needs this partial derivative to
// build the bordered system. See dParameterEps's doc comment for why no
// analytic derivative is attempted.
func (d *Discretization) DParameter(name string, state []float64) []float64 {
	orig := d.Parameter(name)

	d.SetParameter(name, orig+dParameterEps)
	plus := d.Rhs(state)

	d.SetParameter(name, orig-dParameterEps)
	minus := d.Rhs(state)

	d.SetParameter(name, orig)

	out := make([]float64, len(plus))
	for i := range out {
		out[i] = (plus[i] - minus[i]) / (2 * dParameterEps)
	}
	return out
}
