// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ferr holds the recoverable error kinds shared by grid, discretize,
// newton and continuation. Structural/programmer errors (bad tensor shapes,
// dof-layout violations) are NOT modelled here: those go through
// github.com/cpmech/gosl/chk's panic-based assertions instead, keeping
// "this input was wrong" separate from "this can never happen".
package ferr

import (
	"errors"
	"fmt"
)

// Kind enumerates the recoverable failure modes from spec section 7.
type Kind int

const (
	// InvalidDomain: grid stretching requested outside [0,1].
	InvalidDomain Kind = iota
	// MissingParameter: a required parameter has no value and no default.
	MissingParameter
	// SingularJacobian: the sparse direct solve failed.
	SingularJacobian
	// NewtonDidNotConverge: Newton iteration exceeded its iteration budget.
	NewtonDidNotConverge
	// StepSizeUnderflow: continuation arclength step fell below the floor
	// before reaching the target parameter value.
	StepSizeUnderflow
)

func (k Kind) String() string {
	switch k {
	case InvalidDomain:
		return "InvalidDomain"
	case MissingParameter:
		return "MissingParameter"
	case SingularJacobian:
		return "SingularJacobian"
	case NewtonDidNotConverge:
		return "NewtonDidNotConverge"
	case StepSizeUnderflow:
		return "StepSizeUnderflow"
	default:
		return "Unknown"
	}
}

// Error is the recoverable-error value returned by grid, newton and
// continuation. It wraps an optional cause so callers can still use
// errors.Is/errors.As against the underlying failure (e.g. a solver error).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with no wrapped cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
