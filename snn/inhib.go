// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// InhibParams governs the lateral inhibition applied within an Output layer
// before its neurons are integrated: each neuron's raw input current is
// reduced by Gi times the sum of the other neurons' positive raw currents.
// Negative raw currents do not contribute to the inhibitory pool.
type InhibParams struct {
	On bool    `desc:"whether to apply lateral inhibition within this layer"`
	Gi float32 `viewif:"On" min:"0" def:"0.1" desc:"gain multiplier on the sum of other neurons' positive raw input currents"`
}

func (ip *InhibParams) Update() {
}

func (ip *InhibParams) Defaults() {
	ip.On = true
	ip.Gi = 0.1
}

// Inhib subtracts from each raw input current Gi times the sum of the other
// currents' positive parts, in place.  No-op when inhibition is off.
func (ip *InhibParams) Inhib(raw []float32) {
	if !ip.On {
		return
	}
	var possum float32
	for _, r := range raw {
		if r > 0 {
			possum += r
		}
	}
	for i, r := range raw {
		pool := possum
		if r > 0 {
			pool -= r
		}
		raw[i] = r - ip.Gi*pool
	}
}

// TeachParams governs the supervised teaching current injected into an Output
// layer when a target label is given: the target neuron's input is boosted by
// Bias and every other neuron's input is reduced by Penalty.
type TeachParams struct {
	Bias    float32 `min:"0" def:"0.5" desc:"extra input current injected into the target neuron"`
	Penalty float32 `min:"0" def:"0.4" desc:"input current subtracted from all non-target neurons"`
}

func (tp *TeachParams) Update() {
}

func (tp *TeachParams) Defaults() {
	tp.Bias = 0.5
	tp.Penalty = 0.4
}

// Teach applies the teaching bias for the given target index to the raw input
// currents, in place.  A negative target is a no-op (unsupervised step).
func (tp *TeachParams) Teach(raw []float32, target int) {
	if target < 0 || target >= len(raw) {
		return
	}
	for i := range raw {
		if i == target {
			raw[i] += tp.Bias
		} else {
			raw[i] -= tp.Penalty
		}
	}
}
