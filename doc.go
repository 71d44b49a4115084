// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikenet is the overall repository for the spikenet spiking neural
network (SNN) simulation engine, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* snn: the core engine -- a three-layer network of leaky integrate-and-fire
(LIF) neurons with dense plastic connectivity trained by spike-timing dependent
plasticity (STDP), competitive lateral inhibition on the output layer, and an
optional supervised teaching signal.

* lif: the LIF neuron model parameters and update equations, as a standalone
leaf package.

* stdp: the plasticity rules -- the trace-based STDP rule used in the
simulation loop, and the closed-form spike-time-difference rule as an
alternate event-driven mode.

* poisson: the Poisson spike-train encoder that converts static binary
patterns into per-neuron spike trains.

* weights: the downstream export collaborator -- fixed-point quantization of
trained weight matrices and the structured JSON record consumed by the
hardware parameter generator.

* examples: these compile into runnable programs.  examples/pats2x2 trains the
network on the 2x2 pattern recognition task (L-shape, T-shape, Cross) and is
the place to start.
*/
package spikenet
