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

// Package nvic implements the Cortex-M0+ interrupt controller as far as the
// boot layer needs it: the enable and pending state of the 32 external
// interrupt lines.
//
// Pending bits clear when the core takes the exception. A peripheral whose
// interrupt line is still asserted after the handler returns immediately
// re-pends, which is what produces the infinite retrigger when a handler
// fails to acknowledge its source. A pend that came from the line alone
// unpends again when the peripheral drops the line before the core takes
// the exception; only ISPR-written pends survive the line going quiet.
package nvic

import (
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/memory/trace"
)

// NumInterrupts is the number of external interrupt lines into the NVIC.
const NumInterrupts = 32

// NVIC implements the interrupt controller state for the single simulated
// core.
type NVIC struct {
	env *environment.Environment
	rec *trace.Recorder

	enabled uint32

	// pending bits set by software (ISPR)
	pending uint32

	// pending bits held up by an asserted peripheral line. these follow the
	// line: they drop again if the peripheral deasserts before the core
	// takes the exception
	line uint32
}

// NewNVIC is the preferred method of initialisation for the NVIC type.
func NewNVIC(env *environment.Environment) *NVIC {
	return &NVIC{env: env}
}

// Trace attaches a register write recorder. A nil recorder detaches.
func (ic *NVIC) Trace(rec *trace.Recorder) {
	ic.rec = rec
}

// WriteIser enables the masked interrupt lines (write one to set).
func (ic *NVIC) WriteIser(mask uint32) {
	ic.rec.Record(addresses.NVICIser, mask)
	ic.enabled |= mask
}

// WriteIcer disables the masked interrupt lines (write one to clear).
func (ic *NVIC) WriteIcer(mask uint32) {
	ic.rec.Record(addresses.NVICIcer, mask)
	ic.enabled &^= mask
}

// WriteIspr pends the masked interrupt lines (write one to set).
func (ic *NVIC) WriteIspr(mask uint32) {
	ic.rec.Record(addresses.NVICIspr, mask)
	ic.pending |= mask
}

// WriteIcpr unpends the masked interrupt lines (write one to clear). A line
// that is still asserted at the peripheral re-pends on the next cycle.
func (ic *NVIC) WriteIcpr(mask uint32) {
	ic.rec.Record(addresses.NVICIcpr, mask)
	ic.pending &^= mask
	ic.line &^= mask
}

// Enabled returns the ISER register.
func (ic *NVIC) Enabled() uint32 {
	return ic.enabled
}

// Pending returns the ISPR register.
func (ic *NVIC) Pending() uint32 {
	return ic.pending | ic.line
}

// Assert pends an interrupt line from a peripheral. Unlike WriteIspr this
// is the hardware signal path, not a register write, so it is not recorded
// in the trace.
func (ic *NVIC) Assert(irq int) {
	ic.line |= 1 << irq
}

// Deassert drops a peripheral's interrupt line. The pend it was holding up
// goes with it unless an ISPR write pended the line independently.
func (ic *NVIC) Deassert(irq int) {
	ic.line &^= 1 << irq
}

// Acknowledge clears the pending bit when the core takes the exception.
func (ic *NVIC) Acknowledge(irq int) {
	ic.pending &^= 1 << irq
	ic.line &^= 1 << irq
}

// Next returns the lowest numbered interrupt line that is both enabled and
// pending. All interrupts are at the same priority in this design so lowest
// number wins.
func (ic *NVIC) Next() (int, bool) {
	live := ic.enabled & (ic.pending | ic.line)
	if live == 0 {
		return 0, false
	}
	for irq := 0; irq < NumInterrupts; irq++ {
		if live&(1<<irq) != 0 {
			return irq, true
		}
	}
	return 0, false
}
