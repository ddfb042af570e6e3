// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fvm

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ipelupessy/fvm/crs"
)

// Test_solve01 checks Discretization.Solve against a small diagonal system
// with a known solution, independent of any Newton/continuation driver.
func Test_solve01(tst *testing.T) {

	chk.PrintTitle("solve01")

	b := crs.NewBuilder(3, 3)
	b.StartRow(0)
	b.Put(0, 2)
	b.EndRow()
	b.StartRow(1)
	b.Put(1, 4)
	b.EndRow()
	b.StartRow(2)
	b.Put(2, 5)
	b.EndRow()
	A := b.Finish()

	d, err := New(Parameters{Problem: LidDrivenCavity}, 2, 2, 1, 2, 3, nil, nil, nil)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	x, err := d.Solve(A, []float64{4, 8, 15})
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	chk.Scalar(tst, "x0", 1e-12, x[0], 2)
	chk.Scalar(tst, "x1", 1e-12, x[1], 2)
	chk.Scalar(tst, "x2", 1e-12, x[2], 3)
}
