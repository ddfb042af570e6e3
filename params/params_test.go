// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package params

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ipelupessy/fvm/ferr"
)

func Test_setdefault01(tst *testing.T) {

	chk.PrintTitle("setdefault01")

	var p Parameters
	p.Reynolds = 100
	p.SetDefault()

	if p.MaxStepSize != 1.0 || p.MinStepSize != 1e-6 {
		tst.Errorf("SetDefault did not fill step-size bounds: %+v", p)
	}
	if p.Reynolds != 100 {
		tst.Errorf("SetDefault must not touch an already-set Reynolds: %+v", p)
	}
}

func Test_validate01(tst *testing.T) {

	chk.PrintTitle("validate01")

	p := Parameters{Reynolds: 100, Problem: LidDrivenCavity}
	p.SetDefault()
	if err := p.Validate(2, 3); err != nil {
		tst.Errorf("a plain lid-driven-cavity setup should validate: %v", err)
	}

	p2 := Parameters{Reynolds: 100, Problem: RayleighBenard}
	p2.SetDefault()
	err := p2.Validate(2, 4)
	if err == nil {
		tst.Errorf("RayleighBenard with zero Rayleigh/Prandtl should fail validation")
	}
	if !ferr.Is(err, ferr.MissingParameter) {
		tst.Errorf("expected MissingParameter, got %v", err)
	}

	p3 := Parameters{Reynolds: -1}
	p3.SetDefault()
	if err := p3.Validate(2, 3); !ferr.Is(err, ferr.MissingParameter) {
		tst.Errorf("negative Reynolds should fail validation, got %v", err)
	}
}
