// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snn implements a three-layer spiking neural network of leaky
integrate-and-fire neurons with trace-based STDP learning, competitive
lateral inhibition on the output layer, and an optional supervised teaching
signal.

The main types are Neuron (fast state, reset every presentation), Synapse
(slow state, persists across presentations), Layer, Path (dense synapse
matrix between two layers), and Network (three layers, two pathways, and the
strictly ordered per-step cycle).  Simulation is single-threaded and fully
deterministic given a fixed random seed for the spike encoding.
*/
package snn
