// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid builds the per-axis cell-position vectors (uniform or
// tanh-stretched) that the staggered-grid discretization is built on.
package grid

import (
	"math"

	"github.com/ipelupessy/fvm/ferr"
)

// Uniform returns the n+3 coordinates of a uniform axis from start to end
// split into n cells, stored with the wrap convention: indices 0..n-1 hold
// the upper-face position of each cell (x_0 = start+dx, x_{n-1} = end),
// index n holds the single ghost position past 'end', and indices n+1/n+2
// hold the ghost positions before and at 'start'.
//
// Concretely, for n cells the returned slice is
//
//	{x_0, ..., x_{n-1}, end+dx, start-dx, start}
//
// A caller never indexes n+1/n+2 directly; valueAt below maps the logical
// negative offsets -2/-1 onto them, which is what Spacing/SpacingPlus/
// Centered rely on at the domain edges.
func Uniform(start, end float64, n int) []float64 {
	dx := (end - start) / float64(n)
	x := make([]float64, n+3)
	for i := 0; i < n; i++ {
		x[i] = start + dx*float64(i+1)
	}
	x[n] = end + dx
	x[n+1] = start - dx
	x[n+2] = start
	return x
}

// Stretched applies the tanh stretching 0.5*(1+tanh(2*sigma*(x-0.5))/tanh(sigma))
// pointwise to a Uniform(start, end, n) vector, concentrating cells near the domain
// boundaries as sigma grows. Only valid on [0,1]; returns an error otherwise
// rather than panicking, since an out-of-range domain is caller input, not a
// programming error.
func Stretched(start, end float64, n int, sigma float64) ([]float64, error) {
	if start < 0 || end > 1 {
		return nil, ferr.New(ferr.InvalidDomain, "grid stretching only supports a [0,1] domain, got [%g,%g]", start, end)
	}
	x := Uniform(start, end, n)
	th := math.Tanh(sigma)
	for i := range x {
		x[i] = 0.5 * (1 + math.Tanh(2*sigma*(x[i]-0.5))/th)
	}
	return x, nil
}

// Spacing returns x[i] - x[i-1], reading the west/south/bottom ghost value
// at i==0 via valueAt's negative-index wrap.
func Spacing(x []float64, n, i int) float64 {
	return valueAt(x, n, i) - valueAt(x, n, i-1)
}

// SpacingPlus returns x[i+1] - x[i], reading the east/north/top ghost value
// at i==n-1 via valueAt's index-n slot.
func SpacingPlus(x []float64, n, i int) float64 {
	return valueAt(x, n, i+1) - valueAt(x, n, i)
}

// Centered returns (x[i+1]-x[i-1])/2, the transverse spacing used when a
// staggered velocity component is averaged across an axis it is not
// normal to.
func Centered(x []float64, n, i int) float64 {
	return (valueAt(x, n, i+1) - valueAt(x, n, i-1)) / 2
}

// valueAt reads x at a possibly out-of-[0,n) logical index using the wrap
// convention Uniform lays the array out with: n is the single positive
// overflow slot (the east/north/top ghost, x[n]); -1 and -2 wrap to the
// last two stored slots via x[len(x)+i].
func valueAt(x []float64, n, i int) float64 {
	if i < 0 {
		return x[len(x)+i]
	}
	return x[i]
}
