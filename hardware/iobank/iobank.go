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

// Package iobank implements the IO_BANK0 block: per-pin function selection
// and the GPIO interrupt machinery.
//
// Edge conditions are latched into the INTR register when an input pin
// changes level. A latched edge never clears itself; software must write
// one to the corresponding INTR bit. A second edge arriving while the latch
// is still set is coalesced, the latch is a single bit and not a counter.
//
// PROC0_INTS is the masked view of INTR: only conditions enabled in
// PROC0_INTE appear. The bank's aggregate interrupt line to the NVIC is
// asserted while any PROC0_INTS bit is set.
package iobank

import (
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/memory/trace"
	"github.com/flynnpc/pulse2040/hardware/pads"
	"github.com/flynnpc/pulse2040/logger"
)

// the INTR/INTE/INTS register groups cover eight pins per 32-bit register.
const numIntRegisters = 4

// the edge condition bits of every 4-bit field in an interrupt register.
// only these bits are latched and only these bits are write-one-to-clear.
const edgeLatchMask = uint32(0xcccccccc)

// Bank implements the IO_BANK0 peripheral block.
type Bank struct {
	env  *environment.Environment
	rec  *trace.Recorder
	pads *pads.Pads

	// false while the block is held in reset. a block in reset drops
	// register writes and reads as zero
	enabled bool

	// function select for each pin (the CTRL register)
	ctrl [addresses.NumGPIO]uint32

	// externally driven pin levels, before pad input buffer gating
	input [addresses.NumGPIO]bool

	// pin levels as last seen by the edge detector
	seen [addresses.NumGPIO]bool

	// latched edge conditions (the INTR register group)
	intr [numIntRegisters]uint32

	// interrupt enable for processor 0 (the PROC0_INTE register group)
	inte [numIntRegisters]uint32
}

// NewBank is the preferred method of initialisation for the Bank type. The
// pads block is needed to gate the input buffers.
func NewBank(env *environment.Environment, pads *pads.Pads) *Bank {
	bnk := &Bank{
		env:  env,
		pads: pads,
	}
	for i := range bnk.ctrl {
		bnk.ctrl[i] = addresses.FuncselNull
	}
	return bnk
}

// Trace attaches a register write recorder. A nil recorder detaches.
func (bnk *Bank) Trace(rec *trace.Recorder) {
	bnk.rec = rec
}

// SetEnabled is called by the machine when the reset controller releases or
// reasserts the block's reset line.
func (bnk *Bank) SetEnabled(enabled bool) {
	if enabled && !bnk.enabled {
		// the edge detector must not see the pre-release pin levels as
		// transitions
		for pin := range bnk.seen {
			bnk.seen[pin] = bnk.level(pin)
		}
	}
	bnk.enabled = enabled
}

// SetInput drives an external level onto a pin. Pin levels exist whether or
// not the block is out of reset but edges are only latched while the block
// is running.
func (bnk *Bank) SetInput(pin int, level bool) {
	bnk.input[pin] = level

	if !bnk.enabled {
		return
	}

	eff := bnk.level(pin)
	if eff == bnk.seen[pin] {
		return
	}
	bnk.seen[pin] = eff

	bits := addresses.IntEdgeLow
	if eff {
		bits = addresses.IntEdgeHigh
	}
	reg, field := addresses.IntField(pin, bits)
	bnk.intr[reg] |= field
}

// level is the pin level after pad input buffer gating.
func (bnk *Bank) level(pin int) bool {
	return bnk.input[pin] && bnk.pads.InputEnabled(pin)
}

// Levels returns the gated input level of every pin as a bitmask. This is
// what the SIO GPIO_IN register reads.
func (bnk *Bank) Levels() uint32 {
	var l uint32
	for pin := 0; pin < addresses.NumGPIO; pin++ {
		if bnk.level(pin) {
			l |= 1 << pin
		}
	}
	return l
}

// WriteCtrl sets the CTRL register (function selection) for the pin.
func (bnk *Bank) WriteCtrl(pin int, data uint32) {
	if !bnk.dropWrite(addresses.IOBank0GPIOCtrl(pin), data) {
		bnk.ctrl[pin] = data
	}
}

// Ctrl returns the CTRL register for the pin.
func (bnk *Bank) Ctrl(pin int) uint32 {
	if !bnk.enabled {
		return 0
	}
	return bnk.ctrl[pin]
}

// WriteIntr clears latched edge conditions. Writing one to a latched edge
// bit clears the latch; level condition bits are unaffected.
func (bnk *Bank) WriteIntr(reg int, data uint32) {
	if !bnk.dropWrite(addresses.IOBank0Intr+uint32(reg)*4, data) {
		bnk.intr[reg] &^= data & edgeLatchMask
	}
}

// Intr returns the raw interrupt register: latched edge conditions plus the
// live level conditions of each pin covered by the register.
func (bnk *Bank) Intr(reg int) uint32 {
	if !bnk.enabled {
		return 0
	}

	v := bnk.intr[reg]
	for i := 0; i < 8; i++ {
		pin := reg*8 + i
		if pin >= addresses.NumGPIO {
			break
		}
		bits := addresses.IntLevelLow
		if bnk.level(pin) {
			bits = addresses.IntLevelHigh
		}
		_, field := addresses.IntField(pin, bits)
		v |= field
	}
	return v
}

// WriteInte sets the PROC0_INTE register.
func (bnk *Bank) WriteInte(reg int, data uint32) {
	if !bnk.dropWrite(addresses.IOBank0Proc0Inte+uint32(reg)*4, data) {
		bnk.inte[reg] = data
	}
}

// Inte returns the PROC0_INTE register.
func (bnk *Bank) Inte(reg int) uint32 {
	if !bnk.enabled {
		return 0
	}
	return bnk.inte[reg]
}

// Ints returns the PROC0_INTS register: the raw conditions masked by the
// interrupt enables.
func (bnk *Bank) Ints(reg int) uint32 {
	return bnk.Intr(reg) & bnk.Inte(reg)
}

// IRQAsserted returns true while any enabled interrupt condition is
// present. This is the bank's combined interrupt line to the NVIC.
func (bnk *Bank) IRQAsserted() bool {
	for reg := 0; reg < numIntRegisters; reg++ {
		if bnk.Ints(reg) != 0 {
			return true
		}
	}
	return false
}

// dropWrite records the register write and returns true if the write must
// be discarded because the block is held in reset.
func (bnk *Bank) dropWrite(address uint32, data uint32) bool {
	if !bnk.enabled {
		logger.Logf(bnk.env, "io_bank0", "write of %08x to %08x dropped while held in reset", data, address)
		return true
	}
	bnk.rec.Record(address, data)
	return false
}
