// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/etable/etensor"
	"github.com/neursim/spikenet/stdp"
)

// difTol is the numerical difference tolerance for comparing expected values
const difTol = float32(1.0e-6)

func CmprFloats(out, cor []float32, msg string, t *testing.T) {
	for i := range out {
		dif := math32.Abs(out[i] - cor[i])
		if dif > difTol {
			t.Errorf("%v err: out: %v, cor: %v, dif: %v\n", msg, out[i], cor[i], dif)
		}
	}
}

func newTestNet(t *testing.T, nIn, nHid, nOut int) *Network {
	nt := NewNetwork("TestNet")
	if err := nt.Build(nIn, nHid, nOut); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return nt
}

// zeroWts zeroes all synaptic weights, for deterministic propagation tests.
func zeroWts(nt *Network) {
	for _, pt := range nt.AllPaths() {
		for si := range pt.Syns {
			pt.Syns[si].Wt = 0
		}
	}
}

func TestBuildSizes(t *testing.T) {
	nt := newTestNet(t, 4, 10, 3)
	if nt.Input.NUnits() != 4 || nt.Hidden.NUnits() != 10 || nt.Output.NUnits() != 3 {
		t.Errorf("layer sizes wrong: %v %v %v", nt.Input.NUnits(), nt.Hidden.NUnits(), nt.Output.NUnits())
	}
	if len(nt.IH.Syns) != 40 || len(nt.HO.Syns) != 30 {
		t.Errorf("synapse counts wrong: %v %v", len(nt.IH.Syns), len(nt.HO.Syns))
	}
	if err := NewNetwork("Bad").Build(0, 5, 3); err == nil {
		t.Errorf("Build accepted zero-size layer")
	}
	ly, err := nt.LayerByName("Hidden")
	if err != nil || ly != &nt.Hidden {
		t.Errorf("LayerByName(Hidden) = %v, %v", ly, err)
	}
	if _, err := nt.LayerByName("Bogus"); err == nil {
		t.Errorf("LayerByName accepted unknown layer name")
	}
}

func TestInitWtsRange(t *testing.T) {
	rand.Seed(1)
	nt := newTestNet(t, 4, 10, 3)
	for si := range nt.IH.Syns {
		w := nt.IH.Syns[si].Wt
		if w < 0.2-difTol || w > 0.5+difTol {
			t.Errorf("input->hidden weight %v outside U(0.2, 0.5)", w)
		}
	}
	for si := range nt.HO.Syns {
		w := nt.HO.Syns[si].Wt
		if w < 0.1-difTol || w > 0.3+difTol {
			t.Errorf("hidden->output weight %v outside U(0.1, 0.3)", w)
		}
	}
}

func TestSynIndexBounds(t *testing.T) {
	nt := newTestNet(t, 4, 10, 3)
	if idx := nt.IH.SynIndex(0, 0); idx != 0 {
		t.Errorf("SynIndex(0,0) = %v", idx)
	}
	if idx := nt.IH.SynIndex(3, 9); idx != 39 {
		t.Errorf("SynIndex(3,9) = %v", idx)
	}
	for _, bad := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 10}} {
		if idx := nt.IH.SynIndex(bad[0], bad[1]); idx != -1 {
			t.Errorf("SynIndex%v = %v, want -1", bad, idx)
		}
		if sy := nt.IH.Syn(bad[0], bad[1]); sy != nil {
			t.Errorf("Syn%v returned non-nil", bad)
		}
	}
}

func TestInhib(t *testing.T) {
	ip := InhibParams{}
	ip.Defaults()
	raw := []float32{1.0, 0.5, -0.2}
	ip.Inhib(raw)
	cor := []float32{1.0 - 0.1*0.5, 0.5 - 0.1*1.0, -0.2 - 0.1*1.5}
	CmprFloats(raw, cor, "lateral inhibition", t)

	ip.On = false
	raw = []float32{1.0, 0.5}
	ip.Inhib(raw)
	CmprFloats(raw, []float32{1.0, 0.5}, "inhibition off", t)
}

func TestTeach(t *testing.T) {
	tp := TeachParams{}
	tp.Defaults()
	raw := []float32{0.1, 0.2, 0.3}
	tp.Teach(raw, 1)
	cor := []float32{0.1 - 0.4, 0.2 + 0.5, 0.3 - 0.4}
	CmprFloats(raw, cor, "teaching bias", t)

	raw = []float32{0.1, 0.2, 0.3}
	tp.Teach(raw, -1)
	CmprFloats(raw, []float32{0.1, 0.2, 0.3}, "no target", t)
}

func TestSpikeReset(t *testing.T) {
	nt := newTestNet(t, 2, 3, 2)
	tm := NewTime()
	ly := &nt.Hidden
	ly.InitActs()
	ly.InitRaw()
	for i := range ly.Raw {
		ly.Raw[i] = 100 // way past threshold in one step
	}
	ly.Integrate(tm)
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		if nrn.Spike != 1 {
			t.Errorf("neuron %v did not spike under strong drive", ni)
		}
		if nrn.Vm != ly.Act.VReset {
			t.Errorf("neuron %v Vm = %v after spike, want VReset %v", ni, nrn.Vm, ly.Act.VReset)
		}
		if nrn.NSpikes() != 1 || nrn.SpikeTimes[0] != tm.Time {
			t.Errorf("neuron %v spike time record wrong: %v", ni, nrn.SpikeTimes)
		}
	}
}

func TestZeroEndToEnd(t *testing.T) {
	nt := newTestNet(t, 4, 10, 3)
	zeroWts(nt)
	nt.Enc.RateOn = 0
	nt.Enc.RateOff = 0
	nt.Learn = false // no teaching current -- pure propagation

	pat := etensor.NewFloat64([]int{4}, nil, []string{"Neuron"})
	pat.SetFloat1D(0, 1)
	pat.SetFloat1D(2, 1)
	pat.SetFloat1D(3, 1)

	tm := NewTime()
	if err := nt.Present(pat, 0, 200, tm); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	var counts []int
	nt.Hidden.SpikeCounts(&counts)
	for ni, c := range counts {
		if c != 0 {
			t.Errorf("hidden neuron %v spiked %v times with zero input", ni, c)
		}
	}
	nt.Output.SpikeCounts(&counts)
	for ni, c := range counts {
		if c != 0 {
			t.Errorf("output neuron %v spiked %v times with zero input", ni, c)
		}
	}
}

func TestPresentValidation(t *testing.T) {
	nt := newTestNet(t, 4, 10, 3)
	tm := NewTime()

	short := etensor.NewFloat64([]int{3}, nil, []string{"Neuron"})
	if err := nt.Present(short, 0, 100, tm); err == nil {
		t.Errorf("Present accepted wrong-length pattern")
	}

	pat := etensor.NewFloat64([]int{4}, nil, []string{"Neuron"})
	if err := nt.Present(pat, 3, 100, tm); err == nil {
		t.Errorf("Present accepted out-of-range label")
	}
	if err := nt.Present(pat, -1, 100, tm); err != nil {
		t.Errorf("Present rejected unsupervised label: %v", err)
	}
}

func TestWtMatrixAccessor(t *testing.T) {
	nt := newTestNet(t, 4, 10, 3)
	ih, err := nt.WtMatrix("input_hidden")
	if err != nil {
		t.Fatalf("input_hidden accessor failed: %v", err)
	}
	if ih.Dim(0) != 4 || ih.Dim(1) != 10 {
		t.Errorf("input_hidden shape: %v x %v", ih.Dim(0), ih.Dim(1))
	}
	if got := ih.Value([]int{2, 5}); math32.Abs(got-nt.IH.Syns[2*10+5].Wt) > difTol {
		t.Errorf("matrix value mismatch: %v", got)
	}

	ho, err := nt.WtMatrix("hidden_output")
	if err != nil {
		t.Fatalf("hidden_output accessor failed: %v", err)
	}
	if ho.Dim(0) != 10 || ho.Dim(1) != 3 {
		t.Errorf("hidden_output shape: %v x %v", ho.Dim(0), ho.Dim(1))
	}

	if _, err := nt.WtMatrix("output_input"); err == nil {
		t.Errorf("accessor accepted unknown layer name")
	}
}

func TestWinner(t *testing.T) {
	if wi := Winner([]int{2, 5, 5}); wi != 1 {
		t.Errorf("Winner([2,5,5]) = %v, want 1", wi)
	}
	if wi := Winner([]int{0, 0, 0}); wi != 0 {
		t.Errorf("Winner([0,0,0]) = %v, want 0", wi)
	}
	if wi := Winner(nil); wi != 0 {
		t.Errorf("Winner(nil) = %v, want 0", wi)
	}
	if wi := Winner([]int{7, 3, 9, 9}); wi != 2 {
		t.Errorf("Winner([7,3,9,9]) = %v, want 2", wi)
	}
}

// TestTraceBleed verifies that eligibility traces persist across InitActs:
// only neuron state is reset between presentations.
func TestTraceBleed(t *testing.T) {
	rand.Seed(7)
	nt := newTestNet(t, 4, 10, 3)
	tm := NewTime()

	pat := etensor.NewFloat64([]int{4}, nil, []string{"Neuron"})
	for i := 0; i < 4; i++ {
		pat.SetFloat1D(i, 1)
	}
	nt.Enc.RateOn = 1000 // fire every step to guarantee trace buildup
	if err := nt.Present(pat, 0, 50, tm); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	var maxTr float32
	for si := range nt.IH.Syns {
		if tr := nt.IH.Syns[si].PreTr; tr > maxTr {
			maxTr = tr
		}
	}
	if maxTr <= 0 {
		t.Fatalf("no trace built up during driven presentation")
	}

	nt.InitActs()
	var maxAfter float32
	for si := range nt.IH.Syns {
		if tr := nt.IH.Syns[si].PreTr; tr > maxAfter {
			maxAfter = tr
		}
	}
	if math32.Abs(maxAfter-maxTr) > difTol {
		t.Errorf("InitActs changed traces: %v -> %v", maxTr, maxAfter)
	}
	for ni := range nt.Hidden.Neurons {
		nrn := &nt.Hidden.Neurons[ni]
		if nrn.Vm != nt.Hidden.Act.VRest || nrn.ISyn != 0 || nrn.NSpikes() != 0 {
			t.Errorf("InitActs did not reset neuron %v fast state", ni)
		}
	}

	var wtsBefore []float32
	if err := nt.IH.SynVals(&wtsBefore, "Wt"); err != nil {
		t.Fatalf("SynVals failed: %v", err)
	}
	nt.IH.InitTraces()
	for si := range nt.IH.Syns {
		if nt.IH.Syns[si].PreTr != 0 || nt.IH.Syns[si].PostTr != 0 {
			t.Fatalf("InitTraces left synapse %v traces non-zero", si)
		}
	}
	var wtsAfter []float32
	if err := nt.IH.SynVals(&wtsAfter, "Wt"); err != nil {
		t.Fatalf("SynVals failed: %v", err)
	}
	CmprFloats(wtsAfter, wtsBefore, "weights after InitTraces", t)
}

// TestWtBoundsCycling verifies the global weight-bound invariant across many
// supervised learning steps with dense spiking.
func TestWtBoundsCycling(t *testing.T) {
	rand.Seed(3)
	nt := newTestNet(t, 4, 10, 3)
	nt.Enc.RateOn = 500
	nt.Enc.RateOff = 100
	tm := NewTime()

	pat := etensor.NewFloat64([]int{4}, nil, []string{"Neuron"})
	pat.SetFloat1D(0, 1)
	pat.SetFloat1D(3, 1)

	for trial := 0; trial < 10; trial++ {
		if err := nt.Present(pat, trial%3, 100, tm); err != nil {
			t.Fatalf("Present failed: %v", err)
		}
		if tm.Trial != trial+1 {
			t.Fatalf("trial counter = %v after %v presentations", tm.Trial, trial+1)
		}
		for _, pt := range nt.AllPaths() {
			for si := range pt.Syns {
				w := pt.Syns[si].Wt
				if w < pt.Learn.WtRange.Min || w > pt.Learn.WtRange.Max {
					t.Fatalf("trial %v: %v weight %v outside [%v, %v]", trial, pt.Name(), w, pt.Learn.WtRange.Min, pt.Learn.WtRange.Max)
				}
			}
		}
	}
}

// TestLearnToggle verifies that no slow state changes when learning is off.
func TestLearnToggle(t *testing.T) {
	rand.Seed(5)
	nt := newTestNet(t, 4, 10, 3)
	nt.Enc.RateOn = 1000
	nt.Learn = false
	tm := NewTime()

	var before []float32
	if err := nt.IH.SynVals(&before, "Wt"); err != nil {
		t.Fatalf("SynVals failed: %v", err)
	}

	pat := etensor.NewFloat64([]int{4}, nil, []string{"Neuron"})
	for i := 0; i < 4; i++ {
		pat.SetFloat1D(i, 1)
	}
	if err := nt.Present(pat, -1, 100, tm); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	var after []float32
	if err := nt.IH.SynVals(&after, "Wt"); err != nil {
		t.Fatalf("SynVals failed: %v", err)
	}
	CmprFloats(after, before, "weights with learning off", t)
}

// TestRewardModulation verifies the exact signed weight adjustments on the
// hidden -> output pathway for every spike x target combination in a single
// supervised plasticity step.
func TestRewardModulation(t *testing.T) {
	nt := newTestNet(t, 2, 2, 3)
	tm := NewTime()
	setWts := func() {
		for si := range nt.HO.Syns {
			sy := &nt.HO.Syns[si]
			sy.Wt = 0.5
			sy.PreTr = 0
			sy.PostTr = 0
		}
	}
	setWts()
	nt.Hidden.Neurons[0].Spike = 1
	nt.Hidden.Neurons[1].Spike = 0
	nt.Output.Neurons[1].Spike = 1

	nt.HO.DWt(tm, 1)
	var wts []float32
	if err := nt.HO.SynVals(&wts, "Wt"); err != nil {
		t.Fatalf("SynVals failed: %v", err)
	}
	cor := []float32{
		0.5 - 0.015,               // pre spiked, non-target: punished
		0.5 + 0.01 + 0.01 + 0.005, // both spiked, target: trace potentiation + both rewards
		0.5 - 0.015,               // pre spiked, non-target: punished
		0.5,                       // no spikes, non-target
		0.5 + 0.005,               // post spiked, target: post reward only
		0.5,                       // no spikes, non-target
	}
	CmprFloats(wts, cor, "supervised weight adjustments", t)

	// without a target only the trace rule applies
	setWts()
	nt.HO.DWt(tm, -1)
	if err := nt.HO.SynVals(&wts, "Wt"); err != nil {
		t.Fatalf("SynVals failed: %v", err)
	}
	cor = []float32{0.5, 0.51, 0.5, 0.5, 0.5, 0.5}
	CmprFloats(wts, cor, "unsupervised weight adjustments", t)
}

// TestSpikeTimingRule verifies the closed-form pair rule on the
// hidden -> output pathway, keyed on recorded last-spike times.
func TestSpikeTimingRule(t *testing.T) {
	nt := newTestNet(t, 2, 2, 3)
	nt.HO.Learn.Rule = stdp.SpikeTiming
	tm := NewTime()
	for si := range nt.HO.Syns {
		nt.HO.Syns[si].Wt = 0.5
	}
	nt.Hidden.Neurons[0].Spike = 0
	nt.Hidden.Neurons[0].LastSpike = 5
	nt.Hidden.Neurons[1].Spike = 1
	nt.Hidden.Neurons[1].LastSpike = 10
	nt.Output.Neurons[0].Spike = 1
	nt.Output.Neurons[0].LastSpike = 8
	nt.Output.Neurons[1].Spike = 0
	nt.Output.Neurons[1].LastSpike = 4
	nt.Output.Neurons[2].Spike = 0
	nt.Output.Neurons[2].LastSpike = -1

	nt.HO.DWt(tm, -1)
	lrn := &nt.HO.Learn
	var wts []float32
	if err := nt.HO.SynVals(&wts, "Wt"); err != nil {
		t.Fatalf("SynVals failed: %v", err)
	}
	cor := []float32{
		0.5 + lrn.APlus*math32.Exp(-3.0/lrn.TauPlus),   // pre at 5, post fires at 8
		0.5,                                            // neither side fired this step
		0.5,                                            // neither side fired this step
		0.5 - lrn.AMinus*math32.Exp(-2.0/lrn.TauMinus), // pre fires at 10, post at 8
		0.5 - lrn.AMinus*math32.Exp(-6.0/lrn.TauMinus), // pre fires at 10, post last at 4
		0.5,                                            // post never fired: no pairing
	}
	CmprFloats(wts, cor, "pair-rule weight updates", t)

	// full presentations under the pair rule stay within the weight bounds
	nt.IH.Learn.Rule = stdp.SpikeTiming
	nt.Enc.RateOn = 500
	pat := etensor.NewFloat64([]int{2}, nil, []string{"Neuron"})
	pat.SetFloat1D(0, 1)
	pat.SetFloat1D(1, 1)
	if err := nt.Present(pat, 0, 100, tm); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	for _, pt := range nt.AllPaths() {
		for si := range pt.Syns {
			w := pt.Syns[si].Wt
			if w < pt.Learn.WtRange.Min || w > pt.Learn.WtRange.Max {
				t.Fatalf("%v weight %v outside [%v, %v]", pt.Name(), w, pt.Learn.WtRange.Min, pt.Learn.WtRange.Max)
			}
		}
	}
}

func TestVarAccess(t *testing.T) {
	nt := newTestNet(t, 2, 3, 2)
	nt.Hidden.Neurons[1].Vm = 0.42
	v, err := nt.Hidden.UnitVal("Vm", 1)
	if err != nil {
		t.Fatalf("UnitVal failed: %v", err)
	}
	if math32.Abs(v-0.42) > difTol {
		t.Errorf("UnitVal Vm = %v", v)
	}
	if _, err := nt.Hidden.UnitVal("Bogus", 0); err == nil {
		t.Errorf("UnitVal accepted invalid var name")
	}
	if _, err := nt.Hidden.UnitVal("Vm", 9); err == nil {
		t.Errorf("UnitVal accepted out-of-range index")
	}
	if _, err := nt.IH.SynVal("Bogus", 0, 0); err == nil {
		t.Errorf("SynVal accepted invalid var name")
	}
	wt, err := nt.IH.SynVal("Wt", 1, 2)
	if err != nil {
		t.Fatalf("SynVal failed: %v", err)
	}
	if math32.Abs(wt-nt.IH.Syns[1*3+2].Wt) > difTol {
		t.Errorf("SynVal Wt = %v", wt)
	}
	var vms []float32
	if err := nt.Hidden.UnitVals(&vms, "Vm"); err != nil {
		t.Fatalf("UnitVals failed: %v", err)
	}
	CmprFloats(vms, []float32{0, 0.42, 0}, "UnitVals Vm", t)
	if err := nt.Hidden.UnitVals(&vms, "Bogus"); err == nil {
		t.Errorf("UnitVals accepted invalid var name")
	}
}
