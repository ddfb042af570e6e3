// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stencil implements the 8-D per-cell atom container used by the
// finite-volume discretization: a [nx,ny,nz,dof,dof,3,3,3] coefficient grid
// over a 3x3x3 cell neighbourhood, together with in-place slice arithmetic
// so boundary-condition code can fold and zero hyperplanes without copying.
package stencil

import "github.com/cpmech/gosl/chk"

// Axis indices into a Slice / index array. Order matches the tensor's own
// dimension order (i,j,k,d1,d2,sx,sy,sz).
const (
	AxI = iota
	AxJ
	AxK
	AxD1
	AxD2
	AxSX
	AxSY
	AxSZ
	nAxes
)

// All marks an axis as unconstrained ("​:" in numpy slicing notation).
const All = -1

// Slice selects a hyperplane of a Tensor: each entry is either All or a
// fixed index along that axis.
type Slice [nAxes]int

// Fix returns a copy of s with axis set to value.
func (s Slice) Fix(axis, value int) Slice {
	s[axis] = value
	return s
}

// Tensor is the per-cell stencil atom: atom[i,j,k,d1,d2,sx,sy,sz] is the
// coefficient contributed by unknown d2 at the neighbour offset (sx,sy,sz)
// to equation d1 at cell (i,j,k). Offsets use 0/1/2 for -axis/self/+axis.
type Tensor struct {
	Nx, Ny, Nz, Dof int
	data            []float64
}

// New allocates a zeroed stencil tensor for a grid of nx*ny*nz cells with
// dof degrees of freedom per cell.
func New(nx, ny, nz, dof int) *Tensor {
	if nx <= 0 || ny <= 0 || nz <= 0 || dof <= 0 {
		chk.Panic("stencil: invalid tensor shape nx=%d ny=%d nz=%d dof=%d", nx, ny, nz, dof)
	}
	n := nx * ny * nz * dof * dof * 27
	return &Tensor{Nx: nx, Ny: ny, Nz: nz, Dof: dof, data: make([]float64, n)}
}

// dims returns the extent of each axis, in the fixed (i,j,k,d1,d2,sx,sy,sz) order.
func (t *Tensor) dims() [nAxes]int {
	return [nAxes]int{t.Nx, t.Ny, t.Nz, t.Dof, t.Dof, 3, 3, 3}
}

func (t *Tensor) flatIndex(idx [nAxes]int) int {
	dof := t.Dof
	return idx[AxSZ] +
		3*idx[AxSY] +
		9*idx[AxSX] +
		27*idx[AxD2] +
		27*dof*idx[AxD1] +
		27*dof*dof*idx[AxK] +
		27*dof*dof*t.Nz*idx[AxJ] +
		27*dof*dof*t.Nz*t.Ny*idx[AxI]
}

// At reads a single fully-specified entry.
func (t *Tensor) At(i, j, k, d1, d2, sx, sy, sz int) float64 {
	return t.data[t.flatIndex([nAxes]int{i, j, k, d1, d2, sx, sy, sz})]
}

// Set writes a single fully-specified entry.
func (t *Tensor) Set(i, j, k, d1, d2, sx, sy, sz int, v float64) {
	t.data[t.flatIndex([nAxes]int{i, j, k, d1, d2, sx, sy, sz})] = v
}

// SetIdx writes a single fully-specified entry addressed as an index array.
func (t *Tensor) SetIdx(idx [nAxes]int, v float64) {
	t.data[t.flatIndex(idx)] = v
}

// GetIdx reads a single fully-specified entry addressed as an index array.
func (t *Tensor) GetIdx(idx [nAxes]int) float64 {
	return t.data[t.flatIndex(idx)]
}

// AddIdx adds v to a single fully-specified entry.
func (t *Tensor) AddIdx(idx [nAxes]int, v float64) {
	t.data[t.flatIndex(idx)] += v
}

// Add adds v to a single fully-specified entry addressed positionally.
func (t *Tensor) Add(i, j, k, d1, d2, sx, sy, sz int, v float64) {
	t.AddIdx([nAxes]int{i, j, k, d1, d2, sx, sy, sz}, v)
}

func freeAxes(s Slice) []int {
	var axes []int
	for a := 0; a < nAxes; a++ {
		if s[a] == All {
			axes = append(axes, a)
		}
	}
	return axes
}

// Each calls fn once per concrete index matching the slice selector.
func (t *Tensor) Each(s Slice, fn func(idx [nAxes]int)) {
	axes := freeAxes(s)
	dims := t.dims()
	var idx [nAxes]int
	for a := 0; a < nAxes; a++ {
		idx[a] = s[a]
	}
	var rec func(pos int)
	rec = func(pos int) {
		if pos == len(axes) {
			fn(idx)
			return
		}
		a := axes[pos]
		for v := 0; v < dims[a]; v++ {
			idx[a] = v
			rec(pos + 1)
		}
	}
	rec(0)
}

// ZeroSlice sets every entry matching s to zero.
func (t *Tensor) ZeroSlice(s Slice) {
	t.Each(s, func(idx [nAxes]int) { t.SetIdx(idx, 0) })
}

// FillSlice sets every entry matching s to v.
func (t *Tensor) FillSlice(s Slice, v float64) {
	t.Each(s, func(idx [nAxes]int) { t.SetIdx(idx, v) })
}

// combine maps the free-axis values observed while walking dst onto src's
// own free axes, in declaration order; dst and src must share the same set
// of free axes (this always holds for the boundary-folding slices used
// throughout discretize.BoundaryConditions).
func combine(s Slice, axes []int, idx [nAxes]int) [nAxes]int {
	var out [nAxes]int
	out = s
	for _, a := range axes {
		out[a] = idx[a]
	}
	return out
}

// AddSliceScaled performs dst[...] += scale * src[...] entry-by-entry over
// the hyperplanes selected by dst and src (which must share the same free
// axes in the same order).
func (t *Tensor) AddSliceScaled(dst, src Slice, scale float64) {
	axes := freeAxes(dst)
	t.Each(dst, func(idx [nAxes]int) {
		srcIdx := combine(src, axes, idx)
		t.AddIdx(idx, scale*t.GetIdx(srcIdx))
	})
}

// SubtractSlice performs dst[...] -= src[...].
func (t *Tensor) SubtractSlice(dst, src Slice) {
	t.AddSliceScaled(dst, src, -1)
}

// CopyInto performs dst[...] = src[...].
func (t *Tensor) CopyInto(dst, src Slice) {
	axes := freeAxes(dst)
	t.Each(dst, func(idx [nAxes]int) {
		srcIdx := combine(src, axes, idx)
		t.SetIdx(idx, t.GetIdx(srcIdx))
	})
}

// Scale multiplies every entry matching s by factor.
func (t *Tensor) Scale(s Slice, factor float64) {
	t.Each(s, func(idx [nAxes]int) { t.SetIdx(idx, factor*t.GetIdx(idx)) })
}

// AddTensor performs t[...] += scale * other[...] over the full tensor; both
// tensors must have identical shape.
func (t *Tensor) AddTensor(other *Tensor, scale float64) {
	if t.Nx != other.Nx || t.Ny != other.Ny || t.Nz != other.Nz || t.Dof != other.Dof {
		chk.Panic("stencil: shape mismatch in AddTensor: (%d,%d,%d,%d) vs (%d,%d,%d,%d)",
			t.Nx, t.Ny, t.Nz, t.Dof, other.Nx, other.Ny, other.Nz, other.Dof)
	}
	for i := range t.data {
		t.data[i] += scale * other.data[i]
	}
}

// Clone returns an independent copy of t.
func (t *Tensor) Clone() *Tensor {
	out := &Tensor{Nx: t.Nx, Ny: t.Ny, Nz: t.Nz, Dof: t.Dof, data: make([]float64, len(t.data))}
	copy(out.data, t.data)
	return out
}
