// This file is part of Pulse2040.
//
// Pulse2040 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pulse2040 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pulse2040.  If not, see <https://www.gnu.org/licenses/>.

// Package resets implements the reset controller. Peripheral blocks are
// held in reset at power-on; software clears the block's bit in the RESET
// register and then polls until the bit reads back clear, which takes a few
// cycles of modelled latency. The poll loop in the firmware has no timeout;
// the latency makes sure the loop body genuinely runs.
package resets

import (
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/memory/trace"
	"github.com/flynnpc/pulse2040/logger"
)

// the number of Step() calls between software requesting a reset release
// and the peripheral reporting that it is out of reset.
const releaseLatency = 16

// Resets implements the reset controller block.
type Resets struct {
	env *environment.Environment
	rec *trace.Recorder

	// the RESET register. a set bit means the peripheral is in reset
	reset uint32

	// release countdown for each peripheral bit position
	countdown [32]int
}

// NewResets is the preferred method of initialisation for the Resets type.
// IO_BANK0 starts held in reset and must be released by the firmware. The
// pads bank is already out of reset, the boot ROM has touched it before
// handing control to the program.
func NewResets(env *environment.Environment) *Resets {
	return &Resets{
		env:   env,
		reset: addresses.ResetIOBank0,
	}
}

// Trace attaches a register write recorder. A nil recorder detaches.
func (rst *Resets) Trace(rec *trace.Recorder) {
	rst.rec = rec
}

// WriteReset replaces the RESET register. Setting a bit puts the peripheral
// into reset immediately. Clearing a bit begins the release; the bit
// continues to read as set until the peripheral is ready.
func (rst *Resets) WriteReset(data uint32) {
	rst.rec.Record(addresses.ResetsReset, data)

	for bit := 0; bit < 32; bit++ {
		mask := uint32(1) << bit

		if data&mask != 0 {
			// reset asserted. cancel any release in progress
			rst.reset |= mask
			rst.countdown[bit] = 0
			continue
		}

		if rst.reset&mask != 0 && rst.countdown[bit] == 0 {
			rst.countdown[bit] = releaseLatency
		}
	}
}

// Reset returns the RESET register.
func (rst *Resets) Reset() uint32 {
	return rst.reset
}

// InReset returns true while any of the masked peripherals is still held in
// reset.
func (rst *Resets) InReset(mask uint32) bool {
	return rst.reset&mask != 0
}

// Step the reset controller forward one cycle.
func (rst *Resets) Step() {
	for bit := 0; bit < 32; bit++ {
		if rst.countdown[bit] == 0 {
			continue
		}
		rst.countdown[bit]--
		if rst.countdown[bit] == 0 {
			rst.reset &^= 1 << bit
			logger.Logf(rst.env, "resets", "peripheral %d out of reset", bit)
		}
	}
}
