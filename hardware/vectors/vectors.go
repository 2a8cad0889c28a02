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

// Package vectors implements the exception vector table read by the
// simulated core. Slot 0 holds the initial stack pointer word, not a
// handler. Slot 1 is the reset handler and is mandatory. Every other slot
// resolves when the table is built: either to a handler named in the
// Overrides registry or to the fallback handler.
//
// The Overrides registry is the equivalent of the weak-alias pattern used
// by bare-metal C vector tables. A firmware declares the handlers it
// implements in a single structure; everything it leaves unset binds to the
// fallback. Resolution happens exactly once, before the core boots, and
// dispatch afterwards is a direct array index with no lookup and no
// registration step.
package vectors

import "github.com/flynnpc/pulse2040/curated"

// Handler is the signature of every vector table entry beyond slot 0: a
// no-argument procedure. A handler that returns causes the core to resume
// the interrupted context.
type Handler func()

// The shape of the table: 16 system exception slots followed by one slot
// per NVIC interrupt line.
const (
	NumExceptions = 16
	NumInterrupts = 32
	NumSlots      = NumExceptions + NumInterrupts
)

// The system exception slots. Slots 4 to 10, 12 and 13 are reserved on the
// Cortex-M0+.
const (
	SlotStack     = 0
	SlotReset     = 1
	SlotNMI       = 2
	SlotHardFault = 3
	SlotSVCall    = 11
	SlotPendSV    = 14
	SlotSysTick   = 15
)

// InterruptSlot returns the table slot for an NVIC interrupt line.
func InterruptSlot(irq int) int {
	return NumExceptions + irq
}

// Overrides names the handlers a firmware implements. Any field left nil
// binds to the fallback handler when the table is built. The field order
// matches the table order.
type Overrides struct {
	NMI       Handler
	HardFault Handler
	SVCall    Handler
	PendSV    Handler
	SysTick   Handler

	TimerIRQ0   Handler
	TimerIRQ1   Handler
	TimerIRQ2   Handler
	TimerIRQ3   Handler
	PWMIRQWrap  Handler
	USBCtrlIRQ  Handler
	XIPIRQ      Handler
	PIO0IRQ0    Handler
	PIO0IRQ1    Handler
	PIO1IRQ0    Handler
	PIO1IRQ1    Handler
	DMAIRQ0     Handler
	DMAIRQ1     Handler
	IOIRQBank0  Handler
	IOIRQQspi   Handler
	SIOIRQProc0 Handler
	SIOIRQProc1 Handler
	ClocksIRQ   Handler
	SPI0IRQ     Handler
	SPI1IRQ     Handler
	UART0IRQ    Handler
	UART1IRQ    Handler
	ADCIRQFifo  Handler
	I2C0IRQ     Handler
	I2C1IRQ     Handler
	RTCIRQ      Handler
}

// Sentinel error patterns for the NewTable() function.
const (
	NoStackTop = "vectors: stack top word is zero"
	NoReset    = "vectors: no reset handler"
	NoFallback = "vectors: no fallback handler"
)

// Table is the resolved vector table. Once built it never changes.
type Table struct {
	stackTop uint32
	slots    [NumSlots]Handler
}

// NewTable resolves a vector table from the firmware's override registry.
// The reset and fallback handlers are mandatory; the stack top word must be
// non-zero because the core loads it blindly.
func NewTable(stackTop uint32, reset Handler, fallback Handler, ov Overrides) (*Table, error) {
	if stackTop == 0 {
		return nil, curated.Errorf(NoStackTop)
	}
	if reset == nil {
		return nil, curated.Errorf(NoReset)
	}
	if fallback == nil {
		return nil, curated.Errorf(NoFallback)
	}

	tbl := &Table{stackTop: stackTop}

	// the or() function stands in for the weak alias: the override when one
	// is named, the fallback otherwise
	or := func(h Handler) Handler {
		if h == nil {
			return fallback
		}
		return h
	}

	// system exception slots. the reserved slots also bind to the fallback
	// so that no slot is ever left unresolved
	for i := range tbl.slots {
		tbl.slots[i] = fallback
	}

	// slot 0 is the stack top word, not code
	tbl.slots[SlotStack] = nil

	tbl.slots[SlotReset] = reset
	tbl.slots[SlotNMI] = or(ov.NMI)
	tbl.slots[SlotHardFault] = or(ov.HardFault)
	tbl.slots[SlotSVCall] = or(ov.SVCall)
	tbl.slots[SlotPendSV] = or(ov.PendSV)
	tbl.slots[SlotSysTick] = or(ov.SysTick)

	// interrupt slots, in NVIC line order
	irqs := []Handler{
		ov.TimerIRQ0, ov.TimerIRQ1, ov.TimerIRQ2, ov.TimerIRQ3,
		ov.PWMIRQWrap, ov.USBCtrlIRQ, ov.XIPIRQ,
		ov.PIO0IRQ0, ov.PIO0IRQ1, ov.PIO1IRQ0, ov.PIO1IRQ1,
		ov.DMAIRQ0, ov.DMAIRQ1,
		ov.IOIRQBank0, ov.IOIRQQspi,
		ov.SIOIRQProc0, ov.SIOIRQProc1,
		ov.ClocksIRQ,
		ov.SPI0IRQ, ov.SPI1IRQ, ov.UART0IRQ, ov.UART1IRQ,
		ov.ADCIRQFifo, ov.I2C0IRQ, ov.I2C1IRQ, ov.RTCIRQ,
	}
	for irq, h := range irqs {
		tbl.slots[InterruptSlot(irq)] = or(h)
	}

	return tbl, nil
}

// StackTop returns the initial stack pointer word in slot 0.
func (tbl *Table) StackTop() uint32 {
	return tbl.stackTop
}

// Handler returns the resolved handler for the slot. Slot 0 is not a
// handler and calling Handler() with it is a programming error.
func (tbl *Table) Handler(slot int) Handler {
	return tbl.slots[slot]
}

// Resolved returns true if the slot holds a callable handler.
func (tbl *Table) Resolved(slot int) bool {
	return tbl.slots[slot] != nil
}
