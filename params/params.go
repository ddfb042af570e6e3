// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package params holds the Parameters configuration record and ProblemType
// enumeration, split out of the root package so discretize can consume
// parameters without importing the root package (avoids an import cycle
// with the root Discretization facade).
package params

import "github.com/ipelupessy/fvm/ferr"

// ProblemType selects which BoundaryConditions wiring a Discretization uses.
type ProblemType int

const (
	// LidDrivenCavity drives the flow by a moving wall (no-slip elsewhere).
	LidDrivenCavity ProblemType = iota
	// RayleighBenard couples a fixed east/west temperature difference
	// (the only Dirichlet-temperature walls the boundary wiring exposes)
	// to the vertical momentum equation via the Boussinesq approximation;
	// see discretize.Discretization.applyBoundaries for the exact wiring.
	RayleighBenard
)

func (p ProblemType) String() string {
	switch p {
	case LidDrivenCavity:
		return "Lid-driven cavity"
	case RayleighBenard:
		return "Rayleigh-Benard"
	default:
		return "unknown problem type"
	}
}

// Parameters is the recognized-keys configuration record, realized as a
// JSON-tagged struct with SetDefault/Validate methods rather than a
// string-keyed map, so unknown options are rejected at construction time.
type Parameters struct {
	Reynolds float64     `json:"reynolds"`
	Rayleigh float64     `json:"rayleigh"`
	Prandtl  float64     `json:"prandtl"`
	Problem  ProblemType `json:"problem"`

	// continuation knobs
	MaxStepSize          float64 `json:"max_step_size"`
	MinStepSize          float64 `json:"min_step_size"`
	OptimalNewtonIters   int     `json:"optimal_newton_iters"`
	DestinationTolerance float64 `json:"destination_tolerance"`
	Grow                 float64 `json:"grow"`
	Shrink               float64 `json:"shrink"`

	// Newton knobs
	NewtonTolerance     float64 `json:"newton_tolerance"`
	NewtonStepTolerance float64 `json:"newton_step_tolerance"`
	MaxNewtonIters      int     `json:"max_newton_iters"`

	Verbose bool `json:"verbose"`
}

// SetDefault fills every continuation/Newton knob left at its zero value.
// Reynolds/Rayleigh/Prandtl/Problem are left untouched: the caller must
// always supply those explicitly.
func (p *Parameters) SetDefault() {
	if p.MaxStepSize == 0 {
		p.MaxStepSize = 1.0
	}
	if p.MinStepSize == 0 {
		p.MinStepSize = 1e-6
	}
	if p.OptimalNewtonIters == 0 {
		p.OptimalNewtonIters = 4
	}
	if p.DestinationTolerance == 0 {
		p.DestinationTolerance = 1e-8
	}
	if p.Grow == 0 {
		p.Grow = 1.5
	}
	if p.Shrink == 0 {
		p.Shrink = 2.0
	}
	if p.NewtonTolerance == 0 {
		p.NewtonTolerance = 1e-10
	}
	if p.NewtonStepTolerance == 0 {
		p.NewtonStepTolerance = 1e-10
	}
	if p.MaxNewtonIters == 0 {
		p.MaxNewtonIters = 20
	}
}

// Validate rejects parameter combinations that are inconsistent with the
// given (dim, dof) layout, at construction time rather than at first use.
func (p *Parameters) Validate(dim, dof int) error {
	if p.Reynolds < 0 {
		return ferr.New(ferr.MissingParameter, "Reynolds Number must be >= 0, got %g", p.Reynolds)
	}
	hasT := dof == dim+2
	if hasT && p.Problem == RayleighBenard {
		if p.Rayleigh == 0 {
			return ferr.New(ferr.MissingParameter, "Rayleigh Number is required for a Rayleigh-Benard problem")
		}
		if p.Prandtl == 0 {
			return ferr.New(ferr.MissingParameter, "Prandtl Number is required for a Rayleigh-Benard problem")
		}
	}
	if p.MinStepSize <= 0 || p.MaxStepSize < p.MinStepSize {
		return ferr.New(ferr.MissingParameter, "continuation step bounds are inconsistent: min=%g max=%g", p.MinStepSize, p.MaxStepSize)
	}
	return nil
}
