// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"github.com/goki/ki/kit"
)

// LayerTypes is the role of a layer within the network, which determines how
// it is driven during a cycle: Input layers carry pre-generated spike trains,
// Hidden layers integrate input spikes, Output layers additionally receive
// lateral inhibition and the optional teaching current.
type LayerTypes int

//go:generate stringer -type=LayerTypes

var KiT_LayerTypes = kit.Enums.AddEnum(LayerTypesN, kit.NotBitFlag, nil)

func (ev LayerTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *LayerTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Input layers copy spike flags from an externally generated train --
	// their neurons are not integrated.
	Input LayerTypes = iota

	// Hidden layers integrate incoming weighted spikes with LIF dynamics.
	Hidden

	// Output layers integrate like Hidden, plus lateral inhibition among
	// themselves and the supervised teaching current when a label is given.
	Output

	LayerTypesN
)
