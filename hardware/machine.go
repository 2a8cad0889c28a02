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

package hardware

import (
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/core"
	"github.com/flynnpc/pulse2040/hardware/iobank"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/memory/trace"
	"github.com/flynnpc/pulse2040/hardware/nvic"
	"github.com/flynnpc/pulse2040/hardware/pads"
	"github.com/flynnpc/pulse2040/hardware/resets"
	"github.com/flynnpc/pulse2040/hardware/sio"
	"github.com/flynnpc/pulse2040/hardware/vectors"
)

// Pico is the main container for the simulated components of the machine.
// Each peripheral block is created exactly once and every code path that
// needs a register goes through the typed view held here; there are no
// loose register addresses anywhere else.
type Pico struct {
	env *environment.Environment

	Core   *core.Core
	Resets *resets.Resets
	Pads   *pads.Pads
	IO     *iobank.Bank
	SIO    *sio.SIO
	NVIC   *nvic.NVIC
}

// NewPico creates a new machine and everything associated with the
// hardware. The machine is in its power-on state: IO_BANK0 held in reset,
// no interrupts enabled, no vector table attached.
func NewPico(env *environment.Environment) *Pico {
	pico := &Pico{env: env}

	pico.Resets = resets.NewResets(env)
	pico.Pads = pads.NewPads(env)
	pico.IO = iobank.NewBank(env, pico.Pads)
	pico.SIO = sio.NewSIO(env, pico.IO)
	pico.NVIC = nvic.NewNVIC(env)
	pico.Core = core.NewCore(env, pico.NVIC)

	return pico
}

// AttachTracer routes every register write through the recorder. A nil
// recorder detaches.
func (pico *Pico) AttachTracer(rec *trace.Recorder) {
	pico.Resets.Trace(rec)
	pico.Pads.Trace(rec)
	pico.IO.Trace(rec)
	pico.SIO.Trace(rec)
	pico.NVIC.Trace(rec)
}

// step is the per-cycle work of everything on the bus except the core
// itself. Peripherals keep running while the core sleeps in WFI.
func (pico *Pico) step() {
	pico.Resets.Step()

	// the IO bank follows its reset line
	pico.IO.SetEnabled(!pico.Resets.InReset(addresses.ResetIOBank0))

	// the bank's combined interrupt line is level-like: it pends the NVIC
	// for as long as an enabled condition is latched and unpends again when
	// the condition is acknowledged at source before the core takes the
	// exception. an interrupt that is not acknowledged at source re-pends
	// as soon as the handler returns
	if pico.IO.IRQAsserted() {
		pico.NVIC.Assert(addresses.IRQIOBank0)
	} else {
		pico.NVIC.Deassert(addresses.IRQIOBank0)
	}
}

// Boot attaches the vector table and starts the core: stack pointer from
// slot 0, then the reset handler in slot 1. Boot blocks until the machine
// is powered off (an error matching core.PowerOff, the normal way down) or
// the reset handler returns (an error matching core.ResetReturned).
func (pico *Pico) Boot(tbl *vectors.Table) error {
	pico.Core.Plumb(tbl, pico.step)
	return pico.Core.Boot()
}

// PowerOff stops the machine at the next cycle. Safe to call from any
// goroutine.
func (pico *Pico) PowerOff() {
	pico.Core.PowerOff()
}
