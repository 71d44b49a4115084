// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp provides spike-timing dependent plasticity (STDP) rules for
synaptic weight learning.

Two rules are provided.  The Trace rule is the one used by the network
simulation loop: each synapse carries a pre and a post eligibility trace that
decays every step, and weight changes are gated by the trace of the opposite
side whenever a spike arrives.  The SpikeTiming rule is the closed-form
exponential STDP curve keyed on an explicit spike-time difference -- it is
retained as a selectable event-driven alternate mode and is not the default.

Weights are hard-bounded: every update clips back into WtRange.
*/
package stdp

import (
	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
)

// Rules are the different STDP update rules.
type Rules int

//go:generate stringer -type=Rules

var KiT_Rules = kit.Enums.AddEnum(RulesN, kit.NotBitFlag, nil)

func (ev Rules) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Rules) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Trace is the online trace-based rule driven by per-step spike flags --
	// this is the default and the rule exercised by the network step loop.
	Trace Rules = iota

	// SpikeTiming is the closed-form exponential rule keyed on the explicit
	// time difference between a pre and a post spike -- an alternate
	// event-driven mode.
	SpikeTiming

	RulesN
)

// Params are the STDP learning parameters for all synapses in a pathway.
// Time constants are in milliseconds.
type Params struct {
	Rule     Rules      `desc:"which STDP update rule to apply"`
	APlus    float32    `def:"0.01" desc:"potentiation amplitude -- increment added to the pre trace on each pre spike"`
	AMinus   float32    `def:"0.01" desc:"depression amplitude -- increment added to the post trace on each post spike"`
	TauPlus  float32    `def:"20" min:"1" desc:"potentiation time constant -- decay of the pre trace"`
	TauMinus float32    `def:"20" min:"1" desc:"depression time constant -- decay of the post trace"`
	WtRange  minmax.F32 `view:"inline" desc:"hard weight bounds -- weight is clipped back into this range after every update"`
}

func (sp *Params) Update() {
}

func (sp *Params) Defaults() {
	sp.Rule = Trace
	sp.APlus = 0.01
	sp.AMinus = 0.01
	sp.TauPlus = 20
	sp.TauMinus = 20
	sp.WtRange.Min = 0
	sp.WtRange.Max = 1
	sp.Update()
}

// DecayTraces applies one step of exponential decay to both traces.
func (sp *Params) DecayTraces(preTr, postTr *float32, dt float32) {
	*preTr *= math32.Exp(-dt / sp.TauPlus)
	*postTr *= math32.Exp(-dt / sp.TauMinus)
}

// UpdateTraces runs the Trace rule for one step of dt msec on the given
// weight and traces, using this step's pre and post spike flags.
// Exact order: decay both traces; on a pre spike add APlus to the pre trace
// and depress by the post trace if positive (pre shortly after post); on a
// post spike add AMinus to the post trace and potentiate by the pre trace if
// positive (post shortly after pre); clip the weight into WtRange.
func (sp *Params) UpdateTraces(wt, preTr, postTr *float32, dt float32, preSpike, postSpike bool) {
	sp.DecayTraces(preTr, postTr, dt)
	if preSpike {
		*preTr += sp.APlus
		if *postTr > 0 {
			*wt -= *postTr
		}
	}
	if postSpike {
		*postTr += sp.AMinus
		if *preTr > 0 {
			*wt += *preTr
		}
	}
	*wt = sp.WtRange.ClipVal(*wt)
}

// DWtFmDt returns the closed-form SpikeTiming weight change for an explicit
// spike-time difference deltaT = tpost - tpre (msec): potentiation for
// deltaT > 0, depression for deltaT < 0, zero for coincident spikes.
func (sp *Params) DWtFmDt(deltaT float32) float32 {
	switch {
	case deltaT > 0:
		return sp.APlus * math32.Exp(-deltaT/sp.TauPlus)
	case deltaT < 0:
		return -sp.AMinus * math32.Exp(deltaT/sp.TauMinus)
	}
	return 0
}

// ApplySpikePair applies the SpikeTiming rule to the weight for a single
// pre/post spike pairing at the given times (msec), with clipping.
func (sp *Params) ApplySpikePair(wt *float32, tpre, tpost float32) {
	*wt = sp.WtRange.ClipVal(*wt + sp.DWtFmDt(tpost-tpre))
}
