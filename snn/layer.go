// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"

	"github.com/emer/emergent/params"
	"github.com/neursim/spikenet/lif"
)

// snn.Layer is a named group of LIF neurons with a common role in the
// network.  Input layers are not integrated -- their spike flags are set
// directly from the encoded train each step.  Hidden and Output layers
// integrate the raw input currents accumulated by their receiving paths,
// with Output layers additionally applying lateral inhibition and the
// teaching current to the raw values first.
type Layer struct {
	Nm      string      `desc:"name of the layer"`
	Cls     string      `desc:"class(es) for styling parameters, space separated"`
	Typ     LayerTypes  `desc:"role of this layer in the cycle"`
	Act     lif.Params  `view:"inline" desc:"LIF integration parameters"`
	Inhib   InhibParams `view:"inline" desc:"lateral inhibition parameters -- only applied to Output layers"`
	Teach   TeachParams `view:"inline" desc:"supervised teaching current parameters -- only applied to Output layers"`
	Neurons []Neuron    `desc:"slice of neurons for this layer"`
	Raw     []float32   `view:"-" desc:"per-step raw input currents, accumulated by receiving paths and consumed by Integrate"`
}

// emer.Layer-style Name / Class accessors, also satisfying params.Styler
// so that params.Sheet selectors can target layers by name, class, or type.
func (ly *Layer) Name() string        { return ly.Nm }
func (ly *Layer) Label() string       { return ly.Nm }
func (ly *Layer) Class() string       { return ly.Typ.String() + " " + ly.Cls }
func (ly *Layer) TypeName() string    { return "Layer" }
func (ly *Layer) SetClass(cls string) { ly.Cls = cls }

func (ly *Layer) Defaults() {
	ly.Act.Defaults()
	ly.Inhib.Defaults()
	ly.Teach.Defaults()
	if ly.Typ != Output {
		ly.Inhib.On = false
	}
}

// UpdateParams updates all params given any changes that might have been
// made to individual values.
func (ly *Layer) UpdateParams() {
	ly.Act.Update()
	ly.Inhib.Update()
	ly.Teach.Update()
}

// ApplyParams applies given parameter style Sheet to this layer.
// Calls UpdateParams if anything set to ensure derived parameters are all updated.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
// it always prints a message if a parameter fails to be set.
// returns true if any params were set, and error if there were any errors.
func (ly *Layer) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	app, err := pars.Apply(ly, setMsg)
	if app {
		ly.UpdateParams()
	}
	return app, err
}

// Build allocates the neuron and raw-current state for n units.
func (ly *Layer) Build(n int) {
	ly.Neurons = make([]Neuron, n)
	ly.Raw = make([]float32, n)
}

// NUnits returns the number of neurons in the layer.
func (ly *Layer) NUnits() int {
	return len(ly.Neurons)
}

// InitActs resets the fast neuron state for a new presentation: currents and
// potentials back to rest, spike records cleared.  Synaptic state is not
// touched -- see Path.InitWts and Path.InitTraces for the slow state.
func (ly *Layer) InitActs() {
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		nrn.ISyn = 0
		nrn.Vm = ly.Act.VRest
		nrn.Spike = 0
		nrn.LastSpike = -1
		nrn.SpikeTimes = nrn.SpikeTimes[:0]
	}
	ly.InitRaw()
}

// InitRaw zeroes the raw input-current accumulators, called at the start of
// every step before paths accumulate into them.
func (ly *Layer) InitRaw() {
	for i := range ly.Raw {
		ly.Raw[i] = 0
	}
}

// SetSpikes drives an Input layer directly from one step of an encoded spike
// train: spike flags are copied in and spike times recorded, with no
// integration.  on[i] is whether input neuron i fires this step.
func (ly *Layer) SetSpikes(on []bool, tm *Time) {
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		if ni < len(on) && on[ni] {
			nrn.Spike = 1
			nrn.LastSpike = tm.Time
			nrn.SpikeTimes = append(nrn.SpikeTimes, tm.Time)
		} else {
			nrn.Spike = 0
		}
	}
}

// Integrate advances every neuron one LIF step from the accumulated Raw
// currents, setting spike flags and applying the same-step reset.
func (ly *Layer) Integrate(tm *Time) {
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		ly.Act.ISynFmInput(&nrn.ISyn, ly.Raw[ni], tm.Dt)
		ly.Act.VmFmISyn(&nrn.Vm, nrn.ISyn, tm.Dt)
		if ly.Act.Spiked(nrn.Vm) {
			nrn.Spike = 1
			nrn.Vm = ly.Act.VReset
			nrn.LastSpike = tm.Time
			nrn.SpikeTimes = append(nrn.SpikeTimes, tm.Time)
		} else {
			nrn.Spike = 0
		}
	}
}

// SpikeCounts returns the per-neuron spike counts for the current
// presentation, appending into counts (resized as needed).
func (ly *Layer) SpikeCounts(counts *[]int) {
	if cap(*counts) < len(ly.Neurons) {
		*counts = make([]int, len(ly.Neurons))
	}
	*counts = (*counts)[:len(ly.Neurons)]
	for ni := range ly.Neurons {
		(*counts)[ni] = ly.Neurons[ni].NSpikes()
	}
}

// UnitVals fills in values of given variable name on unit for each unit in
// the layer, into given float32 slice (only resized if not big enough).
// Returns error on invalid var name.
func (ly *Layer) UnitVals(vals *[]float32, varNm string) error {
	vidx, err := NeuronVarByName(varNm)
	if err != nil {
		return err
	}
	nn := len(ly.Neurons)
	if *vals == nil || cap(*vals) < nn {
		*vals = make([]float32, nn)
	}
	*vals = (*vals)[:nn]
	for ni := range ly.Neurons {
		(*vals)[ni] = ly.Neurons[ni].VarByIndex(vidx)
	}
	return nil
}

// UnitVal returns value of given variable name on given unit, or error.
func (ly *Layer) UnitVal(varNm string, idx int) (float32, error) {
	if idx < 0 || idx >= len(ly.Neurons) {
		return 0, fmt.Errorf("Layer %v UnitVal: index %v out of range", ly.Nm, idx)
	}
	return ly.Neurons[idx].VarByName(varNm)
}
