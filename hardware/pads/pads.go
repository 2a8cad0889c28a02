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

// Package pads implements the PADS_BANK0 block: the electrical
// configuration of each physical pin, independent of its logical function
// selection.
package pads

import (
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/memory/trace"
)

// power-on value of every pad control register: input enabled, 4mA drive,
// pull-down, schmitt trigger on.
const padResetValue = uint32(0x56)

// Pads implements the PADS_BANK0 peripheral block.
type Pads struct {
	env *environment.Environment
	rec *trace.Recorder

	gpio [addresses.NumGPIO]uint32
}

// NewPads is the preferred method of initialisation for the Pads type.
func NewPads(env *environment.Environment) *Pads {
	pd := &Pads{env: env}
	for i := range pd.gpio {
		pd.gpio[i] = padResetValue
	}
	return pd
}

// Trace attaches a register write recorder. A nil recorder detaches.
func (pd *Pads) Trace(rec *trace.Recorder) {
	pd.rec = rec
}

// WritePad sets the pad control register for the pin.
func (pd *Pads) WritePad(pin int, data uint32) {
	pd.rec.Record(addresses.PadsBank0GPIO(pin), data)
	pd.gpio[pin] = data
}

// Pad returns the pad control register for the pin.
func (pd *Pads) Pad(pin int) uint32 {
	return pd.gpio[pin]
}

// InputEnabled returns true if the pin's input buffer is enabled. A pin
// with a disabled input buffer reads as low and produces no edges.
func (pd *Pads) InputEnabled(pin int) bool {
	return pd.gpio[pin]&addresses.PadInputEn == addresses.PadInputEn
}

// PullUpEnabled returns true if the pin's pull-up resistor is enabled.
func (pd *Pads) PullUpEnabled(pin int) bool {
	return pd.gpio[pin]&addresses.PadPullUpEn == addresses.PadPullUpEn
}
