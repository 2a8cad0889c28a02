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

package iobank_test

import (
	"testing"

	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/iobank"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/memory/trace"
	"github.com/flynnpc/pulse2040/hardware/pads"
	"github.com/flynnpc/pulse2040/test"
)

const pin = 16

func newBank() (*iobank.Bank, *pads.Pads) {
	env := environment.NewEnvironment(environment.TestInstance)
	pd := pads.NewPads(env)
	bnk := iobank.NewBank(env, pd)
	bnk.SetEnabled(true)
	return bnk, pd
}

func TestEdgeLatch(t *testing.T) {
	bnk, _ := newBank()

	reg, edgeHigh := addresses.IntField(pin, addresses.IntEdgeHigh)
	_, levelHigh := addresses.IntField(pin, addresses.IntLevelHigh)
	_, levelLow := addresses.IntField(pin, addresses.IntLevelLow)
	_, field := addresses.IntField(pin, addresses.IntFieldMask)

	// a quiescent low pin shows only its live level-low condition
	test.ExpectEquality(t, bnk.Intr(reg)&field, levelLow)

	// rising edge latches. the level condition is live alongside it
	bnk.SetInput(pin, true)
	test.ExpectEquality(t, bnk.Intr(reg)&field, edgeHigh|levelHigh)

	// the input staying high is not another edge
	bnk.SetInput(pin, true)
	test.ExpectEquality(t, bnk.Intr(reg)&field, edgeHigh|levelHigh)

	// write-one-to-clear releases the latch; the live level remains
	bnk.WriteIntr(reg, field)
	test.ExpectEquality(t, bnk.Intr(reg)&field, levelHigh)
}

func TestEdgeCoalescing(t *testing.T) {
	bnk, _ := newBank()

	reg, edgeHigh := addresses.IntField(pin, addresses.IntEdgeHigh)
	_, edgeLow := addresses.IntField(pin, addresses.IntEdgeLow)
	_, field := addresses.IntField(pin, addresses.IntFieldMask)

	// two full presses without an acknowledge in between. both edge
	// conditions latch but the latch is a single bit, not a counter
	for i := 0; i < 2; i++ {
		bnk.SetInput(pin, true)
		bnk.SetInput(pin, false)
	}
	test.ExpectEquality(t, bnk.Intr(reg)&(edgeHigh|edgeLow), edgeHigh|edgeLow)

	// one acknowledge clears everything the presses latched. the released
	// pin still shows its live level-low condition
	bnk.WriteIntr(reg, field)
	test.ExpectEquality(t, bnk.Intr(reg)&(edgeHigh|edgeLow), uint32(0))
}

func TestIntsMasking(t *testing.T) {
	bnk, _ := newBank()

	reg, edgeHigh := addresses.IntField(pin, addresses.IntEdgeHigh)

	bnk.SetInput(pin, true)
	bnk.SetInput(pin, false)

	// the condition is latched but not enabled: INTS is silent and the
	// interrupt line stays low
	test.ExpectInequality(t, bnk.Intr(reg)&edgeHigh, uint32(0))
	test.ExpectEquality(t, bnk.Ints(reg), uint32(0))
	test.ExpectEquality(t, bnk.IRQAsserted(), false)

	// enabling the condition exposes the already-latched edge
	bnk.WriteInte(reg, edgeHigh)
	test.ExpectEquality(t, bnk.Ints(reg)&edgeHigh, edgeHigh)
	test.ExpectEquality(t, bnk.IRQAsserted(), true)

	// acknowledge at source drops the line
	_, field := addresses.IntField(pin, addresses.IntFieldMask)
	bnk.WriteIntr(reg, field)
	test.ExpectEquality(t, bnk.Ints(reg), uint32(0))
	test.ExpectEquality(t, bnk.IRQAsserted(), false)
}

func TestPadInputGating(t *testing.T) {
	bnk, pd := newBank()

	reg, edgeHigh := addresses.IntField(pin, addresses.IntEdgeHigh)
	_, edgeLow := addresses.IntField(pin, addresses.IntEdgeLow)

	// disable the pad input buffer. the external level no longer reaches
	// the bank: the gated level reads low and no edge latches
	pd.WritePad(pin, 0)
	bnk.SetInput(pin, true)

	test.ExpectEquality(t, bnk.Levels()&(1<<pin), uint32(0))
	test.ExpectEquality(t, bnk.Intr(reg)&(edgeHigh|edgeLow), uint32(0))

	// re-enabling the buffer makes the held level visible as an edge
	pd.WritePad(pin, addresses.PadInputEn)
	bnk.SetInput(pin, true)
	test.ExpectEquality(t, bnk.Intr(reg)&edgeHigh, edgeHigh)
	test.ExpectEquality(t, bnk.Levels()&(1<<pin), uint32(1<<pin))
}

func TestHeldInReset(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	pd := pads.NewPads(env)
	bnk := iobank.NewBank(env, pd)

	rec := trace.NewRecorder()
	bnk.Trace(rec)

	// writes to a block in reset are dropped and not recorded; reads are
	// zero
	bnk.WriteCtrl(pin, addresses.FuncselSIO)
	test.ExpectEquality(t, bnk.Ctrl(pin), uint32(0))
	test.ExpectEquality(t, len(rec.Entries()), 0)

	reg, edgeHigh := addresses.IntField(pin, addresses.IntEdgeHigh)
	bnk.WriteInte(reg, edgeHigh)
	test.ExpectEquality(t, bnk.Inte(reg), uint32(0))

	// pin levels exist while the block is in reset but edges do not latch
	bnk.SetInput(pin, true)
	test.ExpectEquality(t, bnk.Intr(reg), uint32(0))

	// on release the edge detector syncs to the held level: the pre-release
	// transition is not retroactively an edge
	bnk.SetEnabled(true)
	test.ExpectEquality(t, bnk.Intr(reg)&edgeHigh, uint32(0))

	bnk.WriteCtrl(pin, addresses.FuncselSIO)
	test.ExpectEquality(t, bnk.Ctrl(pin), addresses.FuncselSIO)
	test.ExpectEquality(t, len(rec.Entries()), 1)
}

func TestWriteIntrEdgeBitsOnly(t *testing.T) {
	bnk, _ := newBank()

	reg, edgeHigh := addresses.IntField(pin, addresses.IntEdgeHigh)
	_, levelBits := addresses.IntField(pin, addresses.IntLevelLow|addresses.IntLevelHigh)

	bnk.SetInput(pin, true)

	// writing to the level condition bits has no effect; they are not
	// latches
	bnk.WriteIntr(reg, levelBits)
	test.ExpectEquality(t, bnk.Intr(reg)&edgeHigh, edgeHigh)
}
