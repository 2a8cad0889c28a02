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

package memorymap_test

import (
	"testing"

	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/memory/memorymap"
	"github.com/flynnpc/pulse2040/test"
)

func TestMapAddress(t *testing.T) {
	area, offset := memorymap.MapAddress(addresses.ResetsReset)
	test.ExpectEquality(t, area, memorymap.Resets)
	test.ExpectEquality(t, offset, uint32(0))

	area, offset = memorymap.MapAddress(addresses.IOBank0GPIOCtrl(25))
	test.ExpectEquality(t, area, memorymap.IOBank0)
	test.ExpectEquality(t, offset, uint32(0x0cc))

	area, offset = memorymap.MapAddress(addresses.PadsBank0GPIO(16))
	test.ExpectEquality(t, area, memorymap.PadsBank0)
	test.ExpectEquality(t, offset, uint32(0x044))

	area, offset = memorymap.MapAddress(addresses.SIOGPIOOutSet)
	test.ExpectEquality(t, area, memorymap.SIO)
	test.ExpectEquality(t, offset, uint32(0x014))

	area, offset = memorymap.MapAddress(addresses.NVICIser)
	test.ExpectEquality(t, area, memorymap.PPB)
	test.ExpectEquality(t, offset, uint32(0xe100))

	area, _ = memorymap.MapAddress(addresses.StackTop - 4)
	test.ExpectEquality(t, area, memorymap.SRAM)

	area, _ = memorymap.MapAddress(0x00000000)
	test.ExpectEquality(t, area, memorymap.ROM)

	area, _ = memorymap.MapAddress(0x50000000)
	test.ExpectEquality(t, area, memorymap.Undefined)
}

func TestIntField(t *testing.T) {
	// pin 16 lives in the third interrupt register, lowest field
	reg, field := addresses.IntField(16, addresses.IntEdgeHigh)
	test.ExpectEquality(t, reg, 2)
	test.ExpectEquality(t, field, uint32(0x8))

	reg, field = addresses.IntField(16, addresses.IntFieldMask)
	test.ExpectEquality(t, reg, 2)
	test.ExpectEquality(t, field, uint32(0xf))

	// pin 7 is the topmost field of the first register
	reg, field = addresses.IntField(7, addresses.IntEdgeHigh)
	test.ExpectEquality(t, reg, 0)
	test.ExpectEquality(t, field, uint32(0x80000000))
}
