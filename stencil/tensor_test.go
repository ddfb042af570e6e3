// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stencil

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_setget01(tst *testing.T) {

	chk.PrintTitle("setget01")

	t := New(2, 2, 1, 3)
	t.Set(0, 0, 0, 1, 2, 1, 1, 1, 5)
	chk.Scalar(tst, "At", 1e-15, t.At(0, 0, 0, 1, 2, 1, 1, 1), 5)

	t.Add(0, 0, 0, 1, 2, 1, 1, 1, 3)
	chk.Scalar(tst, "Add", 1e-15, t.At(0, 0, 0, 1, 2, 1, 1, 1), 8)
}

func Test_slice01(tst *testing.T) {

	chk.PrintTitle("slice01")

	t := New(2, 1, 1, 2)
	t.FillSlice(Slice{0: All, 1: All, 2: All, 3: All, 4: All, 5: All, 6: All, 7: All}, 1)

	// every one of 2*1*1*2*2*27 entries should now read 1
	sum := 0.0
	t.Each(Slice{0: All, 1: All, 2: All, 3: All, 4: All, 5: All, 6: All, 7: All}, func(idx [nAxes]int) {
		sum += t.GetIdx(idx)
	})
	chk.Scalar(tst, "filled count", 1e-15, sum, float64(2*1*1*2*2*27))

	base := Slice{0: 0, 1: 0, 2: 0, 3: 0, 4: 0, 5: All, 6: 1, 7: 1}
	t.ZeroSlice(base)
	t.Each(base, func(idx [nAxes]int) {
		if t.GetIdx(idx) != 0 {
			tst.Errorf("ZeroSlice left a nonzero entry at %+v", idx)
		}
	})
}

func Test_addtensor01(tst *testing.T) {

	chk.PrintTitle("addtensor01")

	a := New(2, 2, 1, 2)
	b := New(2, 2, 1, 2)
	a.Set(0, 0, 0, 0, 0, 1, 1, 1, 2)
	b.Set(0, 0, 0, 0, 0, 1, 1, 1, 3)

	a.AddTensor(b, 2)
	chk.Scalar(tst, "combined", 1e-15, a.At(0, 0, 0, 0, 0, 1, 1, 1), 8)
}

func Test_clone01(tst *testing.T) {

	chk.PrintTitle("clone01")

	a := New(1, 1, 1, 2)
	a.Set(0, 0, 0, 0, 0, 1, 1, 1, 7)
	b := a.Clone()
	b.Set(0, 0, 0, 0, 0, 1, 1, 1, 9)

	chk.Scalar(tst, "original unaffected", 1e-15, a.At(0, 0, 0, 0, 0, 1, 1, 1), 7)
	chk.Scalar(tst, "clone mutated", 1e-15, b.At(0, 0, 0, 0, 0, 1, 1, 1), 9)
}
