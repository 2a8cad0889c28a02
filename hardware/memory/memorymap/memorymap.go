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

// Package memorymap identifies which peripheral block of the simulated
// RP2040 an address belongs to. It is used when pretty-printing register
// traces and when sanity checking addresses handed in from outside the
// hardware package.
package memorymap

import "github.com/flynnpc/pulse2040/hardware/memory/addresses"

// Area represents the different areas of the memory map that the simulation
// models.
type Area int

// The different memory areas in the simulated RP2040. Only the blocks
// needed by the boot and interrupt layer are modelled; anything else maps
// to Undefined.
const (
	Undefined Area = iota
	ROM
	SRAM
	Resets
	IOBank0
	PadsBank0
	SIO
	PPB
)

func (a Area) String() string {
	switch a {
	case ROM:
		return "ROM"
	case SRAM:
		return "SRAM"
	case Resets:
		return "RESETS"
	case IOBank0:
		return "IO_BANK0"
	case PadsBank0:
		return "PADS_BANK0"
	case SIO:
		return "SIO"
	case PPB:
		return "PPB"
	}

	return "undefined"
}

// The origin and memtop of each modelled area.
const (
	OriginROM       = uint32(0x00000000)
	MemtopROM       = uint32(0x00003fff)
	OriginSRAM      = uint32(0x20000000)
	MemtopSRAM      = uint32(0x20041fff)
	OriginResets    = addresses.ResetsBase
	MemtopResets    = addresses.ResetsBase | 0x3fff
	OriginIOBank0   = addresses.IOBank0Base
	MemtopIOBank0   = addresses.IOBank0Base | 0x3fff
	OriginPadsBank0 = addresses.PadsBank0Base
	MemtopPadsBank0 = addresses.PadsBank0Base | 0x3fff
	OriginSIO       = addresses.SIOBase
	MemtopSIO       = addresses.SIOBase | 0x3fff
	OriginPPB       = addresses.PPBBase
	MemtopPPB       = addresses.PPBBase | 0xffff
)

// MapAddress returns the Area the address falls within and the offset of
// the address from the area's origin.
func MapAddress(address uint32) (Area, uint32) {
	switch {
	case address >= OriginSRAM && address <= MemtopSRAM:
		return SRAM, address ^ OriginSRAM
	case address >= OriginResets && address <= MemtopResets:
		return Resets, address ^ OriginResets
	case address >= OriginIOBank0 && address <= MemtopIOBank0:
		return IOBank0, address ^ OriginIOBank0
	case address >= OriginPadsBank0 && address <= MemtopPadsBank0:
		return PadsBank0, address ^ OriginPadsBank0
	case address >= OriginSIO && address <= MemtopSIO:
		return SIO, address ^ OriginSIO
	case address >= OriginPPB && address <= MemtopPPB:
		return PPB, address ^ OriginPPB
	case address <= MemtopROM:
		return ROM, address
	}

	return Undefined, address
}
