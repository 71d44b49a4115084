// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// Winner returns the index of the maximum spike count under a stable
// max-scan: ties resolve to the lowest index, and an empty or all-zero
// record returns 0.
func Winner(counts []int) int {
	wi := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[wi] {
			wi = i
		}
	}
	return wi
}
