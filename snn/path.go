// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"

	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/params"
	"github.com/emer/etable/etensor"
	"github.com/neursim/spikenet/stdp"
)

// RewardParams is the supervised modulation applied to hidden -> output
// weights on top of the trace rule, when a target label is supplied.
// Weights onto the target output neuron are rewarded, weights onto every
// other output neuron are punished, gated by which side spiked this step.
type RewardParams struct {
	PreRew  float32 `def:"0.01" desc:"weight increment onto the target output when the sending hidden neuron spiked"`
	PostRew float32 `def:"0.005" desc:"additional weight increment onto the target output when the target itself spiked"`
	PrePun  float32 `def:"0.015" desc:"weight decrement onto non-target outputs when the sending hidden neuron spiked"`
	PostPun float32 `def:"0.02" desc:"additional weight decrement onto a non-target output when that output spiked"`
}

func (rp *RewardParams) Update() {
}

func (rp *RewardParams) Defaults() {
	rp.PreRew = 0.01
	rp.PostRew = 0.005
	rp.PrePun = 0.015
	rp.PostPun = 0.02
}

// DWt returns the signed reward adjustment for one synapse given whether the
// receiving unit is the target and which sides spiked this step.
func (rp *RewardParams) DWt(isTarget, preSpike, postSpike bool) float32 {
	var dwt float32
	if isTarget {
		if preSpike {
			dwt += rp.PreRew
		}
		if postSpike {
			dwt += rp.PostRew
		}
	} else {
		if preSpike {
			dwt -= rp.PrePun
		}
		if postSpike {
			dwt -= rp.PostPun
		}
	}
	return dwt
}

// snn.Path is a dense, fully-connected pathway of synapses from a sending
// to a receiving layer.  Synapses are stored send-major: all of sending
// neuron 0's synapses first, then sending neuron 1's, etc.  The path owns
// and exclusively mutates its synapses -- it is the slow state of the
// network, persisting across presentations.
type Path struct {
	Send   *Layer          `desc:"sending layer for this pathway"`
	Recv   *Layer          `desc:"receiving layer for this pathway"`
	Cls    string          `desc:"class(es) for styling parameters, space separated"`
	Learn  stdp.Params     `view:"inline" desc:"STDP learning parameters for all synapses in this pathway"`
	Reward RewardParams    `view:"inline" desc:"supervised reward / punishment parameters -- only exercised when the network cycles with a target label"`
	WtInit erand.RndParams `view:"inline" desc:"initial random weight distribution"`
	Syns   []Synapse       `desc:"synapses, send-major dense: len = Send.NUnits() * Recv.NUnits()"`
}

func (pt *Path) Name() string {
	return pt.Send.Name() + "To" + pt.Recv.Name()
}

func (pt *Path) Label() string       { return pt.Name() }
func (pt *Path) Class() string       { return pt.Cls }
func (pt *Path) TypeName() string    { return "Path" }
func (pt *Path) SetClass(cls string) { pt.Cls = cls }

func (pt *Path) Defaults() {
	pt.Learn.Defaults()
	pt.Reward.Defaults()
	pt.WtInit.Mean = 0.35
	pt.WtInit.Var = 0.15
	pt.WtInit.Dist = erand.Uniform
}

func (pt *Path) UpdateParams() {
	pt.Learn.Update()
	pt.Reward.Update()
}

// ApplyParams applies given parameter style Sheet to this pathway.
// Calls UpdateParams if anything set to ensure derived parameters are all updated.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
// it always prints a message if a parameter fails to be set.
// returns true if any params were set, and error if there were any errors.
func (pt *Path) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	app, err := pars.Apply(pt, setMsg)
	if app {
		pt.UpdateParams()
	}
	return app, err
}

// Connect sets the sending and receiving layers for this pathway.
func (pt *Path) Connect(send, recv *Layer) {
	pt.Send = send
	pt.Recv = recv
}

// Build allocates the dense synapse matrix.  Layers must be connected and
// built first.
func (pt *Path) Build() error {
	if pt.Send == nil || pt.Recv == nil {
		return fmt.Errorf("Path.Build: send and recv layers must be set")
	}
	ns := pt.Send.NUnits()
	nr := pt.Recv.NUnits()
	if ns == 0 || nr == 0 {
		return fmt.Errorf("Path %v Build: layers must be built first (zero units)", pt.Name())
	}
	pt.Syns = make([]Synapse, ns*nr)
	return nil
}

// SynIndex returns the index of the synapse for given sending, receiving
// unit indexes, or -1 if out of range.
func (pt *Path) SynIndex(si, ri int) int {
	nr := pt.Recv.NUnits()
	if si < 0 || si >= pt.Send.NUnits() || ri < 0 || ri >= nr {
		return -1
	}
	return si*nr + ri
}

// Syn returns the synapse for given sending, receiving unit indexes, or nil
// if out of range.
func (pt *Path) Syn(si, ri int) *Synapse {
	idx := pt.SynIndex(si, ri)
	if idx < 0 {
		return nil
	}
	return &pt.Syns[idx]
}

// InitWts initializes the weights from the WtInit random distribution and
// zeroes the eligibility traces.  This is the only point at which slow state
// is reset -- presentations never touch it.
func (pt *Path) InitWts() {
	for si := range pt.Syns {
		sy := &pt.Syns[si]
		sy.Wt = pt.Learn.WtRange.ClipVal(float32(pt.WtInit.Gen(-1)))
		sy.PreTr = 0
		sy.PostTr = 0
	}
}

// InitTraces zeroes the eligibility traces without touching the weights.
func (pt *Path) InitTraces() {
	for si := range pt.Syns {
		pt.Syns[si].PreTr = 0
		pt.Syns[si].PostTr = 0
	}
}

// SendSpikes accumulates this step's synaptic transmission into the
// receiving layer's raw currents: every sending neuron that spiked this step
// adds each of its synaptic weights to the corresponding receiver.
// Transmission has zero added latency within a step.
func (pt *Path) SendSpikes() {
	nr := pt.Recv.NUnits()
	for si := range pt.Send.Neurons {
		if pt.Send.Neurons[si].Spike == 0 {
			continue
		}
		syns := pt.Syns[si*nr : (si+1)*nr]
		for ri := range syns {
			pt.Recv.Raw[ri] += syns[ri].Wt
		}
	}
}

// DWt runs one step of plasticity over every synapse in the pathway, using
// this step's spike flags on both sides.  target < 0 is the unsupervised
// case; otherwise target is the index of the correct receiving unit and the
// reward / punishment adjustment is applied on top of the trace update, with
// a re-clip after.
func (pt *Path) DWt(tm *Time, target int) {
	nr := pt.Recv.NUnits()
	for si := range pt.Send.Neurons {
		snd := &pt.Send.Neurons[si]
		preSpike := snd.Spike > 0
		syns := pt.Syns[si*nr : (si+1)*nr]
		for ri := range syns {
			rcv := &pt.Recv.Neurons[ri]
			postSpike := rcv.Spike > 0
			sy := &syns[ri]
			switch pt.Learn.Rule {
			case stdp.Trace:
				pt.Learn.UpdateTraces(&sy.Wt, &sy.PreTr, &sy.PostTr, tm.Dt, preSpike, postSpike)
			case stdp.SpikeTiming:
				pt.Learn.DecayTraces(&sy.PreTr, &sy.PostTr, tm.Dt)
				if postSpike && snd.LastSpike >= 0 {
					pt.Learn.ApplySpikePair(&sy.Wt, snd.LastSpike, rcv.LastSpike)
				} else if preSpike && rcv.LastSpike >= 0 {
					pt.Learn.ApplySpikePair(&sy.Wt, snd.LastSpike, rcv.LastSpike)
				}
			}
			if target >= 0 {
				dwt := pt.Reward.DWt(ri == target, preSpike, postSpike)
				if dwt != 0 {
					sy.Wt = pt.Learn.WtRange.ClipVal(sy.Wt + dwt)
				}
			}
		}
	}
}

// WtMatrix returns the weights as a fresh dense Send x Recv tensor, safe
// for the caller to retain.
func (pt *Path) WtMatrix() *etensor.Float32 {
	ns := pt.Send.NUnits()
	nr := pt.Recv.NUnits()
	mat := etensor.NewFloat32([]int{ns, nr}, nil, []string{"Send", "Recv"})
	for si := 0; si < ns; si++ {
		for ri := 0; ri < nr; ri++ {
			mat.Set([]int{si, ri}, pt.Syns[si*nr+ri].Wt)
		}
	}
	return mat
}

// SynVals fills in values of given variable name for each synapse in the
// pathway, send-major, into given float32 slice (only resized if not big
// enough).  Returns error on invalid var name.
func (pt *Path) SynVals(vals *[]float32, varNm string) error {
	vidx, err := SynapseVarByName(varNm)
	if err != nil {
		return err
	}
	ns := len(pt.Syns)
	if *vals == nil || cap(*vals) < ns {
		*vals = make([]float32, ns)
	}
	*vals = (*vals)[:ns]
	for si := range pt.Syns {
		(*vals)[si] = pt.Syns[si].VarByIndex(vidx)
	}
	return nil
}

// SynVal returns the value of given variable name on the synapse between
// given sending, receiving unit indexes, or error for an invalid name or
// out-of-range indexes.
func (pt *Path) SynVal(varNm string, si, ri int) (float32, error) {
	sy := pt.Syn(si, ri)
	if sy == nil {
		return 0, fmt.Errorf("Path %v SynVal: indexes %v, %v out of range", pt.Name(), si, ri)
	}
	return sy.VarByName(varNm)
}
