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

package hardware_test

import (
	"testing"

	"github.com/flynnpc/pulse2040/curated"
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware"
	"github.com/flynnpc/pulse2040/hardware/core"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/vectors"
	"github.com/flynnpc/pulse2040/test"
)

func TestPowerOnState(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	mch := hardware.NewPico(env)

	// IO_BANK0 held in reset, nothing enabled at the NVIC, no outputs
	test.ExpectSuccess(t, mch.Resets.InReset(addresses.ResetIOBank0))
	test.ExpectEquality(t, mch.NVIC.Enabled(), uint32(0))
	test.ExpectEquality(t, mch.SIO.Out(), uint32(0))
	test.ExpectEquality(t, mch.SIO.Oe(), uint32(0))
	test.ExpectEquality(t, mch.SIO.Cpuid(), uint32(0))
}

// a machine-level rendition of the unacknowledged interrupt: the handler
// drives the latched edge through the real IO bank and NVIC wiring but
// never writes to INTR, so the bank keeps the line asserted and the handler
// re-enters as fast as the core can take it.
func TestUnacknowledgedInterruptRetriggers(t *testing.T) {
	const pin = 16

	env := environment.NewEnvironment(environment.TestInstance)
	mch := hardware.NewPico(env)

	entries := 0
	handler := func() {
		entries++
	}

	reset := func() {
		mch.Resets.WriteReset(mch.Resets.Reset() &^ addresses.ResetIOBank0)
		for mch.Resets.InReset(addresses.ResetIOBank0) {
			mch.Core.Tick()
		}

		reg, edge := addresses.IntField(pin, addresses.IntEdgeHigh)
		mch.IO.WriteInte(reg, edge)
		mch.NVIC.WriteIser(1 << addresses.IRQIOBank0)

		mch.IO.SetInput(pin, true)
		mch.IO.SetInput(pin, false)

		for {
			mch.Core.Tick()
		}
	}

	tbl, err := vectors.NewTable(addresses.StackTop, reset, func() {}, vectors.Overrides{
		IOIRQBank0: handler,
	})
	test.DemandSuccess(t, err)

	mch.Core.OnTick(func(t uint64) {
		if t >= 1000 {
			mch.PowerOff()
		}
	})

	err = mch.Boot(tbl)
	test.ExpectSuccess(t, curated.Is(err, core.PowerOff))

	// one press, many entries
	test.ExpectSuccess(t, entries > 10)

	// the latch is still set; nothing ever cleared it
	reg, edge := addresses.IntField(pin, addresses.IntEdgeHigh)
	test.ExpectEquality(t, mch.IO.Intr(reg)&edge, edge)
}

// the bank holds its line up while the handler works, re-pending the NVIC
// every cycle. the acknowledge at source must take those pends down with it
// or a single press delivers a second, spurious handler entry.
func TestAcknowledgedInterruptEntersOnce(t *testing.T) {
	const pin = 16

	env := environment.NewEnvironment(environment.TestInstance)
	mch := hardware.NewPico(env)

	reg, edge := addresses.IntField(pin, addresses.IntEdgeHigh)
	_, field := addresses.IntField(pin, addresses.IntFieldMask)

	entries := 0
	handler := func() {
		entries++

		// hold the line up through some cycles of work before
		// acknowledging
		for i := 0; i < 10; i++ {
			mch.Core.Tick()
		}
		mch.IO.WriteIntr(reg, field)
	}

	reset := func() {
		mch.Resets.WriteReset(mch.Resets.Reset() &^ addresses.ResetIOBank0)
		for mch.Resets.InReset(addresses.ResetIOBank0) {
			mch.Core.Tick()
		}

		mch.IO.WriteInte(reg, edge)
		mch.NVIC.WriteIser(1 << addresses.IRQIOBank0)

		for {
			mch.Core.WaitForInterrupt()
		}
	}

	tbl, err := vectors.NewTable(addresses.StackTop, reset, func() {}, vectors.Overrides{
		IOIRQBank0: handler,
	})
	test.DemandSuccess(t, err)

	mch.Core.OnTick(func(t uint64) {
		switch {
		case t == 100:
			mch.IO.SetInput(pin, true)
		case t == 101:
			mch.IO.SetInput(pin, false)
		case t >= 500:
			mch.PowerOff()
		}
	})

	err = mch.Boot(tbl)
	test.ExpectSuccess(t, curated.Is(err, core.PowerOff))

	// one press, one entry
	test.ExpectEquality(t, entries, 1)

	// nothing left pending once the source is acknowledged and the line has
	// dropped
	test.ExpectEquality(t, mch.NVIC.Pending()&(1<<addresses.IRQIOBank0), uint32(0))
}
