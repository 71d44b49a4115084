// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"reflect"

	"github.com/chewxy/math32"
)

// snn.Neuron holds all of the LIF neuron state variables.  This is the fast
// state of the network: it is re-initialized at the start of every pattern
// presentation by InitActs, while synaptic state persists.
// All variables accessible via the Vars interface must be float32 and start
// at the top, in contiguous order.
type Neuron struct {
	ISyn       float32   `desc:"filtered synaptic current -- accumulates the summed weights of this step's incoming spikes and decays exponentially with Act.TauS"`
	Vm         float32   `desc:"membrane potential -- forward-Euler integration of leak toward Act.VRest plus ISyn, reset to Act.VReset on spiking within the same step"`
	Spike      float32   `desc:"whether the neuron spiked this step (0 or 1)"`
	LastSpike  float32   `desc:"simulation time (msec) of the most recent spike this presentation -- -1 if none yet"`
	SpikeTimes []float32 `view:"-" desc:"times (msec) of all spikes this presentation -- append-only within one presentation, cleared by InitActs"`
}

// NeuronVars are the named float32 state variables, for display and logging access.
var NeuronVars = []string{"ISyn", "Vm", "Spike", "LastSpike"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarByName returns the index of the variable in the Neuron, or error
func NeuronVarByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	v := reflect.ValueOf(*nrn)
	return v.Field(idx).Interface().(float32)
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return nrn.VarByIndex(i), nil
}

// NSpikes returns the number of spikes recorded this presentation.
func (nrn *Neuron) NSpikes() int {
	return len(nrn.SpikeTimes)
}
