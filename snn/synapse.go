// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"reflect"

	"github.com/chewxy/math32"
)

// snn.Synapse holds the slow state of one connection: the weight and the
// pre / post eligibility traces that drive trace-based plasticity.  Unlike
// neuron state, synaptic state is never reset between presentations -- traces
// decay continuously and can bleed across pattern boundaries.
type Synapse struct {
	Wt     float32 `desc:"synaptic weight, clipped to Learn.WtRange after every update"`
	PreTr  float32 `desc:"presynaptic eligibility trace -- incremented by Learn.APlus on pre spikes, decays with Learn.TauPlus"`
	PostTr float32 `desc:"postsynaptic eligibility trace -- incremented by Learn.AMinus on post spikes, decays with Learn.TauMinus"`
}

var SynapseVars = []string{"Wt", "PreTr", "PostTr"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

func (sy *Synapse) VarNames() []string {
	return SynapseVars
}

// SynapseVarByName returns the index of the variable in the Synapse, or error
func SynapseVarByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) VarByIndex(idx int) float32 {
	v := reflect.ValueOf(*sy)
	return v.Field(idx).Interface().(float32)
}

// VarByName returns variable by name, or error
func (sy *Synapse) VarByName(varNm string) (float32, error) {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return sy.VarByIndex(i), nil
}
