// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package poisson encodes static binary patterns as Poisson spike trains:
each input neuron fires independently at a rate chosen by its pattern bit
(RateOn if set, RateOff if not), with one Bernoulli draw per simulation step
at probability p = rate * dt / 1000.

The entire train for the full presentation duration is generated up front,
before any simulation step runs -- the network consumes it as data, never as
a live generator.  Given a fixed random seed, encoding is fully reproducible.
*/
package poisson

import (
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
)

// Params are the Poisson encoding rates, in Hz.
type Params struct {
	RateOn  float32 `def:"100" min:"0" desc:"firing rate for input neurons whose pattern bit is set"`
	RateOff float32 `def:"5" min:"0" desc:"background firing rate for input neurons whose pattern bit is off"`
}

func (pp *Params) Update() {
}

func (pp *Params) Defaults() {
	pp.RateOn = 100
	pp.RateOff = 5
	pp.Update()
}

// SpikeProb returns the per-step spike probability for the given firing
// rate (Hz) and step size dt (msec).
func (pp *Params) SpikeProb(rate, dt float32) float64 {
	return float64(rate * dt / 1000)
}

// Rate returns the firing rate for the given pattern value, treating
// values above 0.5 as set.
func (pp *Params) Rate(patVal float64) float32 {
	if patVal > 0.5 {
		return pp.RateOn
	}
	return pp.RateOff
}

// Encode generates the full spike train for the given binary pattern over
// nsteps steps of dt msec each, as a Neuron x Step bit tensor.  One
// independent Bernoulli draw is made per neuron per step.
func (pp *Params) Encode(pattern etensor.Tensor, nsteps int, dt float32) *etensor.Bits {
	n := pattern.Len()
	trains := etensor.NewBits([]int{n, nsteps}, nil, []string{"Neuron", "Step"})
	for i := 0; i < n; i++ {
		p := pp.SpikeProb(pp.Rate(pattern.FloatVal1D(i)), dt)
		for st := 0; st < nsteps; st++ {
			if erand.BoolProb(p, -1) {
				trains.Set([]int{i, st}, true)
			}
		}
	}
	return trains
}
