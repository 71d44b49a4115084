// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"

	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/params"
	"github.com/emer/etable/etensor"
	"github.com/neursim/spikenet/poisson"
)

// snn.Network is a three-layer spiking network: a dense input -> hidden
// pathway and a dense hidden -> output pathway, with lateral inhibition and
// an optional supervised teaching signal on the output layer.  There is no
// direct input -> output pathway and no recurrence.
//
// The network separates fast from slow state: neuron potentials, currents
// and spike histories are reset at the start of every presentation by
// InitActs, while synaptic weights and eligibility traces persist across
// presentations and are only set by InitWts at construction.  Residual
// traces therefore bleed across presentation boundaries; this is part of the
// model, not an oversight.
//
// The network exclusively owns and mutates its synapse matrices: weights
// are written only by the plasticity phase of Cycle and read by the
// propagation phases.
type Network struct {
	Nm     string         `desc:"name of the network"`
	Input  Layer          `desc:"input layer -- driven directly by encoded spike trains, not integrated"`
	Hidden Layer          `desc:"hidden layer of LIF neurons"`
	Output Layer          `desc:"output layer of LIF neurons with lateral inhibition and teaching current"`
	IH     Path           `desc:"dense input -> hidden pathway"`
	HO     Path           `desc:"dense hidden -> output pathway"`
	Enc    poisson.Params `view:"inline" desc:"Poisson encoding parameters used by Present"`
	Learn  bool           `desc:"whether plasticity is applied during cycling -- turn off for inference"`
}

// NewNetwork returns a new network with the given name and default
// parameters, not yet built.
func NewNetwork(name string) *Network {
	nt := &Network{Nm: name}
	nt.Defaults()
	return nt
}

func (nt *Network) Name() string { return nt.Nm }

func (nt *Network) Defaults() {
	nt.Input.Nm = "Input"
	nt.Input.Typ = Input
	nt.Hidden.Nm = "Hidden"
	nt.Hidden.Typ = Hidden
	nt.Output.Nm = "Output"
	nt.Output.Typ = Output
	nt.Input.Defaults()
	nt.Hidden.Defaults()
	nt.Output.Defaults()
	nt.IH.Connect(&nt.Input, &nt.Hidden)
	nt.HO.Connect(&nt.Hidden, &nt.Output)
	nt.IH.Defaults()
	nt.HO.Defaults()
	// initial weights per pathway: input->hidden U(0.2,0.5), hidden->output U(0.1,0.3)
	nt.IH.WtInit.Dist = erand.Uniform
	nt.IH.WtInit.Mean = 0.35
	nt.IH.WtInit.Var = 0.15
	nt.HO.WtInit.Dist = erand.Uniform
	nt.HO.WtInit.Mean = 0.2
	nt.HO.WtInit.Var = 0.1
	nt.Enc.Defaults()
	nt.Learn = true
}

// UpdateParams updates all the derived parameters if any have changed.
func (nt *Network) UpdateParams() {
	nt.Input.UpdateParams()
	nt.Hidden.UpdateParams()
	nt.Output.UpdateParams()
	nt.IH.UpdateParams()
	nt.HO.UpdateParams()
}

// AllLayers returns the layers in canonical order.
func (nt *Network) AllLayers() []*Layer {
	return []*Layer{&nt.Input, &nt.Hidden, &nt.Output}
}

// AllPaths returns the pathways in canonical order.
func (nt *Network) AllPaths() []*Path {
	return []*Path{&nt.IH, &nt.HO}
}

// LayerByName returns the layer with the given name, or error if not found.
func (nt *Network) LayerByName(name string) (*Layer, error) {
	for _, ly := range nt.AllLayers() {
		if ly.Nm == name {
			return ly, nil
		}
	}
	return nil, fmt.Errorf("Network %v: layer named: %v not found", nt.Nm, name)
}

// ApplyParams applies given parameter style Sheet to layers and pathways in
// this network.  Calls UpdateParams to ensure derived parameters are all
// updated.  If setMsg is true, then a message is printed to confirm each
// parameter that is set.  it always prints a message if a parameter fails to
// be set.  returns true if any params were set, and error if there were any
// errors.
func (nt *Network) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for _, ly := range nt.AllLayers() {
		app, err := ly.ApplyParams(pars, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	for _, pt := range nt.AllPaths() {
		app, err := pt.ApplyParams(pars, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

// Build allocates all the neuron and synapse state for the given layer
// sizes, then initializes weights.
func (nt *Network) Build(nIn, nHid, nOut int) error {
	if nIn <= 0 || nHid <= 0 || nOut <= 0 {
		return fmt.Errorf("Network %v Build: layer sizes must be positive, got %v, %v, %v", nt.Nm, nIn, nHid, nOut)
	}
	nt.Input.Build(nIn)
	nt.Hidden.Build(nHid)
	nt.Output.Build(nOut)
	if err := nt.IH.Build(); err != nil {
		return err
	}
	if err := nt.HO.Build(); err != nil {
		return err
	}
	nt.InitWts()
	return nil
}

// InitWts initializes the synaptic weights from each pathway's WtInit
// distribution and zeroes all eligibility traces.  Only called at
// construction (or to restart training) -- presentations never reset slow
// state.
func (nt *Network) InitWts() {
	nt.IH.InitWts()
	nt.HO.InitWts()
}

// InitActs resets the fast neuron state of all layers for a new
// presentation.  Weights and traces are deliberately untouched.
func (nt *Network) InitActs() {
	for _, ly := range nt.AllLayers() {
		ly.InitActs()
	}
}

// Cycle runs one simulation step given this step's input spike flags and the
// optional target label (< 0 for unsupervised / inference), in the strict
// phase order: input flags, hidden integration, output raw currents from
// same-step hidden spikes, lateral inhibition, teaching bias, output
// integration, then plasticity on input->hidden (always, when learning) and
// hidden->output (with reward modulation when labeled).  Advances tm by one
// step at the end.
func (nt *Network) Cycle(inSpikes []bool, label int, tm *Time) {
	nt.Input.SetSpikes(inSpikes, tm)

	nt.Hidden.InitRaw()
	nt.IH.SendSpikes()
	nt.Hidden.Integrate(tm)

	nt.Output.InitRaw()
	nt.HO.SendSpikes()
	nt.Output.Inhib.Inhib(nt.Output.Raw)
	if nt.Learn && label >= 0 { // teaching signal is training-time only
		nt.Output.Teach.Teach(nt.Output.Raw, label)
	}
	nt.Output.Integrate(tm)

	if nt.Learn {
		nt.IH.DWt(tm, -1)
		nt.HO.DWt(tm, label)
	}
	tm.StepInc()
}

// PresentTrain runs one full presentation from a pre-encoded spike train
// (Neuron x Step bits, as produced by poisson.Params.Encode), with the given
// target label (< 0 for unsupervised).  Fast state is reset first; the train
// must cover every input neuron.
func (nt *Network) PresentTrain(trains *etensor.Bits, label int, tm *Time) error {
	nIn := nt.Input.NUnits()
	if trains.Dim(0) != nIn {
		return fmt.Errorf("Network %v PresentTrain: train has %v neurons, input layer has %v", nt.Nm, trains.Dim(0), nIn)
	}
	if label >= nt.Output.NUnits() {
		return fmt.Errorf("Network %v PresentTrain: label %v out of range for %v output units", nt.Nm, label, nt.Output.NUnits())
	}
	nt.InitActs()
	tm.Reset()
	nsteps := trains.Dim(1)
	spikes := make([]bool, nIn)
	for st := 0; st < nsteps; st++ {
		for i := 0; i < nIn; i++ {
			spikes[i] = trains.Value([]int{i, st})
		}
		nt.Cycle(spikes, label, tm)
	}
	tm.TrialInc()
	return nil
}

// Present encodes the given binary pattern as Poisson spike trains and runs
// one full presentation of dur msec with the given target label (< 0 for
// unsupervised / inference).  The pattern length must equal the input layer
// size and the label must be within the output layer range; validation fails
// fast before any simulation step runs.
func (nt *Network) Present(pattern etensor.Tensor, label int, dur float32, tm *Time) error {
	if pattern.Len() != nt.Input.NUnits() {
		return fmt.Errorf("Network %v Present: pattern length %v != input layer size %v", nt.Nm, pattern.Len(), nt.Input.NUnits())
	}
	if label >= nt.Output.NUnits() {
		return fmt.Errorf("Network %v Present: label %v out of range for %v output units", nt.Nm, label, nt.Output.NUnits())
	}
	nsteps := int(dur / tm.Dt)
	trains := nt.Enc.Encode(pattern, nsteps, tm.Dt)
	return nt.PresentTrain(trains, label, tm)
}

// WtMatrix returns the named weight matrix as a fresh Send x Recv tensor.
// Valid names are "input_hidden" and "hidden_output"; any other name fails
// with an unknown layer error.
func (nt *Network) WtMatrix(name string) (*etensor.Float32, error) {
	switch name {
	case "input_hidden":
		return nt.IH.WtMatrix(), nil
	case "hidden_output":
		return nt.HO.WtMatrix(), nil
	}
	return nil, fmt.Errorf("unknown layer: %q", name)
}

// Winner returns the index of the output neuron with the most spikes this
// presentation, ties going to the lowest index.
func (nt *Network) Winner() int {
	var counts []int
	nt.Output.SpikeCounts(&counts)
	return Winner(counts)
}
