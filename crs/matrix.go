// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crs implements the compressed-row sparse matrix format used for
// the assembled Jacobian/linear-part matrices (coA/jcoA/begA), plus the
// bridge into github.com/cpmech/gosl/la's Triplet/LinSol machinery
// used to reach an external direct solver.
package crs

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// dropTol is the magnitude below which an assembled coefficient is treated
// as a structural zero and omitted from the sparsity pattern.
const dropTol = 1e-14

// Matrix is a compressed-row sparse matrix: coA holds values, jcoA holds
// column indices, begA holds row pointers (length N+1). Rows are stored in
// natural order; see Builder for how column order within a row is fixed.
type Matrix struct {
	N    int
	CoA  []float64
	JcoA []int
	BegA []int
}

// Builder assembles a Matrix row by row. Call StartRow once per row (in
// increasing row order), Put for each nonzero in that row, EndRow to close
// it, and Finish once every row is closed.
type Builder struct {
	n    int
	coA  []float64
	jcoA []int
	begA []int
}

// NewBuilder preallocates a builder for an N-row matrix with an estimated
// nnz capacity hint (over-estimating is fine; slices grow as needed).
func NewBuilder(n, nnzHint int) *Builder {
	return &Builder{
		n:    n,
		coA:  make([]float64, 0, nnzHint),
		jcoA: make([]int, 0, nnzHint),
		begA: []int{0},
	}
}

// StartRow must be called exactly once before each row's Put calls, in
// increasing row order starting at 0.
func (b *Builder) StartRow(row int) {
	if row != len(b.begA)-1 {
		chk.Panic("crs: rows must be started in order: expected %d, got %d", len(b.begA)-1, row)
	}
}

// Put appends a nonzero at (row, col) if its magnitude exceeds the drop
// tolerance; it is a no-op otherwise, keeping structural zeros out of the
// sparsity pattern entirely.
func (b *Builder) Put(col int, val float64) {
	if math.Abs(val) <= dropTol {
		return
	}
	b.coA = append(b.coA, val)
	b.jcoA = append(b.jcoA, col)
}

// EndRow closes out the current row, recording its end pointer.
func (b *Builder) EndRow() {
	b.begA = append(b.begA, len(b.coA))
}

// Finish returns the assembled Matrix. The builder must have emitted
// exactly n rows.
func (b *Builder) Finish() *Matrix {
	if len(b.begA) != b.n+1 {
		chk.Panic("crs: expected %d rows, got %d", b.n, len(b.begA)-1)
	}
	return &Matrix{N: b.n, CoA: b.coA, JcoA: b.jcoA, BegA: b.begA}
}

// Row returns the column indices and values stored for row i.
func (m *Matrix) Row(i int) (cols []int, vals []float64) {
	return m.JcoA[m.BegA[i]:m.BegA[i+1]], m.CoA[m.BegA[i]:m.BegA[i+1]]
}

// Nnz returns the number of stored nonzeros.
func (m *Matrix) Nnz() int { return len(m.CoA) }

// MulVec computes y = M*x using the CRS arrays directly (no external
// dependency needed for a plain sparse mat-vec).
func (m *Matrix) MulVec(x []float64) []float64 {
	y := make([]float64, m.N)
	for i := 0; i < m.N; i++ {
		var sum float64
		for j := m.BegA[i]; j < m.BegA[i+1]; j++ {
			sum += m.CoA[j] * x[m.JcoA[j]]
		}
		y[i] = sum
	}
	return y
}

// ToTriplet converts m into a gosl/la Triplet, the bridge format la.LinSol
// consumes; this is only used on the way to an external sparse direct
// solve (see the newton package), never as the primary storage format.
func (m *Matrix) ToTriplet() *la.Triplet {
	t := new(la.Triplet)
	t.Init(m.N, m.N, m.Nnz())
	for i := 0; i < m.N; i++ {
		for j := m.BegA[i]; j < m.BegA[i+1]; j++ {
			t.Put(i, m.JcoA[j], m.CoA[j])
		}
	}
	return t
}
