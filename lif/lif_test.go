// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing expected values
const difTol = float32(1.0e-6)

func TestISynFmInput(t *testing.T) {
	lp := Params{}
	lp.Defaults()

	// exp(-1/5) applied after accumulating the input
	isyn := float32(0)
	lp.ISynFmInput(&isyn, 1, 1)
	ex := float32(0.81873075)
	if math32.Abs(isyn-ex) > difTol {
		t.Errorf("ISyn after one input: %v != %v", isyn, ex)
	}

	// zero input just decays
	lp.ISynFmInput(&isyn, 0, 1)
	ex *= math32.Exp(-1.0 / 5)
	if math32.Abs(isyn-ex) > difTol {
		t.Errorf("ISyn after decay: %v != %v", isyn, ex)
	}
}

func TestVmFmISyn(t *testing.T) {
	lp := Params{}
	lp.Defaults()

	vm := float32(0)
	lp.VmFmISyn(&vm, 0.81873075, 1)
	ex := float32(0.040936537)
	if math32.Abs(vm-ex) > difTol {
		t.Errorf("Vm after one step: %v != %v", vm, ex)
	}
}

func TestVmDecayMonotone(t *testing.T) {
	lp := Params{}
	lp.Defaults()

	// at zero input, |Vm - VRest| decays strictly toward zero and never
	// reaches threshold once below it
	vm := float32(0.9)
	prev := math32.Abs(vm - lp.VRest)
	for i := 0; i < 200; i++ {
		lp.VmFmISyn(&vm, 0, 1)
		cur := math32.Abs(vm - lp.VRest)
		if cur >= prev {
			t.Errorf("step %v: |Vm-VRest| did not strictly decrease: %v >= %v", i, cur, prev)
		}
		if lp.Spiked(vm) {
			t.Errorf("step %v: decaying neuron crossed threshold: Vm = %v", i, vm)
		}
		prev = cur
	}
	if prev > 0.001 {
		t.Errorf("Vm did not settle toward rest: remaining %v", prev)
	}
}

func TestSpiked(t *testing.T) {
	lp := Params{}
	lp.Defaults()

	if lp.Spiked(0.999) {
		t.Errorf("spiked below threshold")
	}
	if !lp.Spiked(1.0) {
		t.Errorf("no spike at exactly threshold")
	}
	if !lp.Spiked(1.5) {
		t.Errorf("no spike above threshold")
	}
}
