// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif provides the leaky integrate-and-fire (LIF) neuron model:
a filtered synaptic current that accumulates weighted input spikes and
decays exponentially, driving forward-Euler integration of the membrane
potential toward rest, with a hard threshold and same-step reset.

There is no refractory period and no intrinsic noise -- all randomness
enters through the spike encoding of the inputs, so a neuron is a pure
deterministic function of its accumulated state and input.
*/
package lif

import "github.com/chewxy/math32"

// Params are the LIF neuron parameters, shared by all neurons in a layer.
// All time constants are in milliseconds.
type Params struct {
	Thr    float32 `def:"1" desc:"spiking threshold for the membrane potential -- reaching or exceeding this emits a spike and resets Vm to VReset within the same step"`
	TauM   float32 `def:"20" min:"1" desc:"membrane time constant -- how slowly the potential leaks back toward VRest (reflects capacitance of the neuron in principle)"`
	TauS   float32 `def:"5" min:"1" desc:"synaptic current time constant -- exponential decay rate of the filtered synaptic current ISyn"`
	VRest  float32 `def:"0" desc:"resting membrane potential that Vm leaks toward in the absence of input"`
	VReset float32 `def:"0" desc:"membrane potential immediately after a spike"`
}

func (lp *Params) Update() {
}

func (lp *Params) Defaults() {
	lp.Thr = 1
	lp.TauM = 20
	lp.TauS = 5
	lp.VRest = 0
	lp.VReset = 0
	lp.Update()
}

// ISynFmInput accumulates external input current into the filtered synaptic
// current and then applies the exponential decay for one step of dt msec.
// The accumulate-then-decay order is part of the model contract.
func (lp *Params) ISynFmInput(isyn *float32, input, dt float32) {
	*isyn = (*isyn + input) * math32.Exp(-dt/lp.TauS)
}

// VmFmISyn integrates the membrane potential for one step of dt msec from
// the current value of the filtered synaptic current, using forward Euler:
// dVm = (-(Vm - VRest) + ISyn) / TauM.
func (lp *Params) VmFmISyn(vm *float32, isyn, dt float32) {
	*vm += dt * (-(*vm - lp.VRest) + isyn) / lp.TauM
}

// Spiked returns true if the given membrane potential has reached threshold.
// The caller is responsible for the same-step reset to VReset.
func (lp *Params) Spiked(vm float32) bool {
	return vm >= lp.Thr
}
