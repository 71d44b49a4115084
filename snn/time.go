// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// snn.Time contains the simulation time state for one pattern presentation
// and across presentations within a run.
type Time struct {
	Time  float32 `desc:"accumulated simulated time within the current presentation, in msec"`
	Step  int     `desc:"step within the current presentation, reset to 0 by Reset"`
	Trial int     `desc:"presentation counter across the run -- not reset by Reset"`
	Dt    float32 `def:"1" desc:"integration timestep, in msec"`
}

// NewTime returns a new Time struct with default Dt
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

func (tm *Time) Defaults() {
	tm.Dt = 1
}

// Reset resets the within-presentation counters (Time, Step), leaving the
// Trial counter and Dt intact.
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Step = 0
}

// StepInc advances time by one Dt step.
func (tm *Time) StepInc() {
	tm.Step++
	tm.Time += tm.Dt
}

// TrialInc increments the presentation counter and resets per-presentation time.
func (tm *Time) TrialInc() {
	tm.Trial++
	tm.Reset()
}
