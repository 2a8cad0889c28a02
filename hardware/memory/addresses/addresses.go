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

// Package addresses records the physical address of every register in the
// simulated RP2040 that the rest of the project touches. Each value is a
// bit-exact contract with the silicon, not renegotiable. Nothing outside
// this package should construct a register address by hand.
package addresses

// Base addresses of the peripheral blocks.
const (
	ResetsBase    = uint32(0x4000c000)
	IOBank0Base   = uint32(0x40014000)
	PadsBank0Base = uint32(0x4001c000)
	SIOBase       = uint32(0xd0000000)
	PPBBase       = uint32(0xe0000000)
)

// Reset controller registers.
const (
	ResetsReset     = ResetsBase + 0x0
	ResetsResetDone = ResetsBase + 0x8
)

// Peripheral bits in the RESETS registers.
const (
	ResetIOBank0   = uint32(1 << 5)
	ResetPadsBank0 = uint32(1 << 8)
)

// IO bank 0 registers. The bank has a status/ctrl register pair for each of
// the 30 user GPIOs, followed by the raw interrupt latches and the per
// processor enable/force/status registers. Each of the interrupt register
// groups covers the 30 pins with four 32-bit registers, four bits per pin.
const (
	IOBank0Intr      = IOBank0Base + 0x0f0
	IOBank0Proc0Inte = IOBank0Base + 0x100
	IOBank0Proc0Intf = IOBank0Base + 0x110
	IOBank0Proc0Ints = IOBank0Base + 0x120
)

// IOBank0GPIOCtrl returns the address of the CTRL register for the pin.
func IOBank0GPIOCtrl(pin int) uint32 {
	return IOBank0Base + uint32(pin)*8 + 4
}

// IOBank0GPIOStatus returns the address of the STATUS register for the pin.
func IOBank0GPIOStatus(pin int) uint32 {
	return IOBank0Base + uint32(pin)*8
}

// Function select values for the GPIO CTRL register.
const (
	FuncselSIO  = uint32(5)
	FuncselNull = uint32(0x1f)
)

// The interrupt condition bits for a pin's 4-bit field in the INTR, INTE,
// INTF and INTS registers.
const (
	IntLevelLow  = uint32(0x1)
	IntLevelHigh = uint32(0x2)
	IntEdgeLow   = uint32(0x4)
	IntEdgeHigh  = uint32(0x8)

	// all four condition bits for a pin. the edge demo treats the field as
	// a unit when acknowledging
	IntFieldMask = uint32(0xf)
)

// Pads bank 0 registers. VoltageSelect at offset 0 then one register per
// GPIO.
func PadsBank0GPIO(pin int) uint32 {
	return PadsBank0Base + 4 + uint32(pin)*4
}

// Bits in a pad control register.
const (
	PadSlewFast      = uint32(1 << 0)
	PadSchmitt       = uint32(1 << 1)
	PadPullDownEn    = uint32(1 << 2)
	PadPullUpEn      = uint32(1 << 3)
	PadInputEn       = uint32(1 << 6)
	PadOutputDisable = uint32(1 << 7)
)

// SIO registers.
const (
	SIOCpuid      = SIOBase + 0x000
	SIOGPIOIn     = SIOBase + 0x004
	SIOGPIOHiIn   = SIOBase + 0x008
	SIOGPIOOut    = SIOBase + 0x010
	SIOGPIOOutSet = SIOBase + 0x014
	SIOGPIOOutClr = SIOBase + 0x018
	SIOGPIOOutXor = SIOBase + 0x01c
	SIOGPIOOe     = SIOBase + 0x020
	SIOGPIOOeSet  = SIOBase + 0x024
	SIOGPIOOeClr  = SIOBase + 0x028
	SIOGPIOOeXor  = SIOBase + 0x02c
)

// NVIC registers in the PPB.
const (
	NVICIser = PPBBase + 0xe100
	NVICIcer = PPBBase + 0xe180
	NVICIspr = PPBBase + 0xe200
	NVICIcpr = PPBBase + 0xe280
)

// IRQ numbers for the peripheral interrupt lines routed to the NVIC.
const (
	IRQTimer0   = 0
	IRQTimer1   = 1
	IRQTimer2   = 2
	IRQTimer3   = 3
	IRQPWMWrap  = 4
	IRQUSBCtrl  = 5
	IRQXIP      = 6
	IRQPIO0_0   = 7
	IRQPIO0_1   = 8
	IRQPIO1_0   = 9
	IRQPIO1_1   = 10
	IRQDMA0     = 11
	IRQDMA1     = 12
	IRQIOBank0  = 13
	IRQIOQspi   = 14
	IRQSIOProc0 = 15
	IRQSIOProc1 = 16
	IRQClocks   = 17
	IRQSPI0     = 18
	IRQSPI1     = 19
	IRQUART0    = 20
	IRQUART1    = 21
	IRQADCFifo  = 22
	IRQI2C0     = 23
	IRQI2C1     = 24
	IRQRTC      = 25
)

// NumGPIO is the number of user pins in IO bank 0.
const NumGPIO = 30

// StackTop is the initial stack pointer value placed in slot 0 of the vector
// table. It is the top of the RP2040's 264KB of SRAM, which is what the
// linker script of the original firmware supplies through the _sstack
// symbol.
const StackTop = uint32(0x20042000)

// IntField returns the pin's 4-bit interrupt field, as positioned within the
// interrupt register that covers it, for the given condition bits. Each of
// the INTR/INTE/INTF/INTS register groups covers eight pins per register.
func IntField(pin int, bits uint32) (reg int, field uint32) {
	return pin / 8, bits << (4 * (pin % 8))
}
