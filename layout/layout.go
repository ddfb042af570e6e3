// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout names the degree-of-freedom slots of the staggered state
// vector with a single named-slot value, consulted everywhere a stencil
// routine needs to know which row/column belongs to u, v, w, p or T.
package layout

import "github.com/cpmech/gosl/chk"

// VariableLayout fixes the dof-axis slot of every staggered variable for a
// given (dim, dof) combination. W is -1 when dim==2; T is -1 when the
// problem carries no temperature field.
type VariableLayout struct {
	Dim int
	Dof int
	U   int
	V   int
	W   int
	P   int
	T   int
}

// New builds the layout for a given spatial dimension and degree-of-freedom
// count:
//
//	2D isothermal:      {u, v, p}       dof=3
//	3D isothermal:      {u, v, w, p}    dof=4
//	2D with temperature {u, v, p, T}    dof=4
//	3D with temperature {u, v, w, p, T} dof=5
//
// The index of p always equals dim; the index of T, when present, always
// equals dim+1. An unsupported (dim, dof) pair is a programmer/structural
// error: it panics via gosl/chk rather than returning an error.
func New(dim, dof int) VariableLayout {
	switch {
	case dim == 2 && dof == 3:
		return VariableLayout{Dim: 2, Dof: 3, U: 0, V: 1, W: -1, P: 2, T: -1}
	case dim == 2 && dof == 4:
		return VariableLayout{Dim: 2, Dof: 4, U: 0, V: 1, W: -1, P: 2, T: 3}
	case dim == 3 && dof == 4:
		return VariableLayout{Dim: 3, Dof: 4, U: 0, V: 1, W: 2, P: 3, T: -1}
	case dim == 3 && dof == 5:
		return VariableLayout{Dim: 3, Dof: 5, U: 0, V: 1, W: 2, P: 3, T: 4}
	default:
		chk.Panic("layout: unsupported combination dim=%d dof=%d", dim, dof)
		return VariableLayout{}
	}
}

// HasW reports whether a w-velocity slot exists (3D layouts).
func (l VariableLayout) HasW() bool { return l.W >= 0 }

// HasT reports whether a temperature slot exists.
func (l VariableLayout) HasT() bool { return l.T >= 0 }

// StaggerAxis returns the axis (0=x,1=y,2=z) that velocity component v is
// staggered along, i.e. the face-normal direction it lives on. Panics for
// p or T, which are cell-centred and staggered in no axis.
func (l VariableLayout) StaggerAxis(v int) int {
	switch v {
	case l.U:
		return 0
	case l.V:
		return 1
	case l.W:
		if l.HasW() {
			return 2
		}
	}
	chk.Panic("layout: degree of freedom %d is not a staggered velocity component", v)
	return -1
}

// IsStaggered reports whether degree of freedom v is staggered along axis a.
func (l VariableLayout) IsStaggered(v, a int) bool {
	switch v {
	case l.U:
		return a == 0
	case l.V:
		return a == 1
	case l.W:
		return l.HasW() && a == 2
	default:
		return false
	}
}
