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

// Package firmware is the program that runs on the simulated machine: the
// button/LED/speaker transmitter demo. It owns the vector table, the
// startup sequence and the IO bank interrupt handler.
//
// The startup sequence is strictly ordered and never recovers from
// failure. Every wait is either a fixed-count busy delay or an unbounded
// poll; if the hardware never answers, startup hangs forever. That is the
// fail-safe of this layer, there is no watchdog and no reporting channel
// below the application.
package firmware

import (
	"github.com/flynnpc/pulse2040/board"
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/vectors"
	"github.com/flynnpc/pulse2040/logger"
)

// Transmitter is the demo firmware. All hardware access goes through the
// typed views held by the machine; the firmware holds no register state of
// its own.
type Transmitter struct {
	env *environment.Environment
	mch *hardware.Pico
	brd board.Board
}

// NewTransmitter is the preferred method of initialisation for the
// Transmitter type.
func NewTransmitter(env *environment.Environment, mch *hardware.Pico, brd board.Board) (*Transmitter, error) {
	if err := brd.Validate(); err != nil {
		return nil, err
	}

	return &Transmitter{
		env: env,
		mch: mch,
		brd: brd,
	}, nil
}

// Table builds the firmware's vector table. The transmitter implements the
// reset handler and the IO bank 0 interrupt; every other slot binds to the
// fallback handler.
func (fw *Transmitter) Table() (*vectors.Table, error) {
	return vectors.NewTable(addresses.StackTop, fw.reset, fw.fallback, vectors.Overrides{
		IOIRQBank0: fw.irqIOBank0,
	})
}

// fallback is the handler for any event the firmware does not implement.
// It never returns and never faults: the core is parked in the low-power
// wait state so an unexpected interrupt degrades to a safe hang.
func (fw *Transmitter) fallback() {
	logger.Log(fw.env, "firmware", "unhandled exception, parking core")
	for {
		fw.mch.Core.WaitForInterrupt()
	}
}

// reset is the first code to run after the core loads the stack pointer.
// main() is written never to return; the trailing loop is the documented
// fallback if it somehow does.
func (fw *Transmitter) reset() {
	fw.main()
	for {
		fw.mch.Core.Tick()
	}
}

// outputMask is the LED and speaker pins, which are always driven
// together.
func (fw *Transmitter) outputMask() uint32 {
	return 1<<fw.brd.LEDPin | 1<<fw.brd.SpeakerPin
}

// delay busy-waits for the given number of cycles. It is a blocking
// primitive: nothing at the same priority can preempt the caller while it
// spins.
func (fw *Transmitter) delay(cycles int) {
	for i := 0; i < cycles; i++ {
		fw.mch.Core.Tick()
	}
}

// awaitPeripheralReady polls the reset controller until the masked
// peripherals report they are out of reset. There is no timeout: if the
// hardware never answers this never returns, which is fatal by design.
func (fw *Transmitter) awaitPeripheralReady(mask uint32) {
	for fw.mch.Resets.Reset()&mask != 0 {
		fw.mch.Core.Tick()
	}
}

// main is the startup sequence. Strictly sequential; no step recovers from
// failure.
func (fw *Transmitter) main() {
	mch := fw.mch
	brd := fw.brd

	// release IO_BANK0 from reset and wait for it to report ready
	mch.Resets.WriteReset(mch.Resets.Reset() &^ addresses.ResetIOBank0)
	fw.awaitPeripheralReady(addresses.ResetIOBank0)
	logger.Log(fw.env, "firmware", "io_bank0 ready")

	// configure the button: function select first, then direction, then
	// pad properties (pull-up and input buffer)
	mch.IO.WriteCtrl(brd.ButtonPin, addresses.FuncselSIO)
	mch.SIO.WriteOeClr(1 << brd.ButtonPin)
	mch.Pads.WritePad(brd.ButtonPin, addresses.PadPullUpEn|addresses.PadInputEn)

	// configure the LED and speaker as outputs
	mch.IO.WriteCtrl(brd.LEDPin, addresses.FuncselSIO)
	mch.SIO.WriteOeSet(1 << brd.LEDPin)
	mch.IO.WriteCtrl(brd.SpeakerPin, addresses.FuncselSIO)
	mch.SIO.WriteOeSet(1 << brd.SpeakerPin)

	// arm the button interrupt. the order matters: clear any stale latch
	// first, then enable the edge at the peripheral, and only then let the
	// NVIC see the line. the other way round the controller could latch a
	// condition that was never intentionally enabled
	reg, stale := addresses.IntField(brd.ButtonPin, addresses.IntFieldMask)
	mch.IO.WriteIntr(reg, stale)

	_, edge := addresses.IntField(brd.ButtonPin, addresses.IntEdgeHigh)
	mch.IO.WriteInte(reg, mch.IO.Inte(reg)|edge)

	mch.NVIC.WriteIser(1 << addresses.IRQIOBank0)
	logger.Log(fw.env, "firmware", "button interrupt armed")

	// startup self-test: a fixed number of blocking pulses on both
	// outputs, no interrupt dependency
	for i := 0; i < brd.SelfTestPulses; i++ {
		mch.SIO.WriteOutSet(fw.outputMask())
		fw.delay(brd.PulseTicks)
		mch.SIO.WriteOutClr(fw.outputMask())
		fw.delay(brd.PulseTicks)
	}

	// single LED flash to say startup is complete
	mch.SIO.WriteOutSet(1 << brd.LEDPin)
	fw.delay(brd.FlashTicks)
	mch.SIO.WriteOutClr(1 << brd.LEDPin)
	logger.Log(fw.env, "firmware", "startup complete, entering idle loop")

	// idle loop. the only way out is an interrupt and afterwards control
	// comes straight back to the wait
	for {
		mch.Core.WaitForInterrupt()
	}
}

// irqIOBank0 services the IO bank 0 combined interrupt. Contract: confirm
// the expected condition in PROC0_INTS, drive the outputs, and acknowledge
// the source by writing the pin's whole 4-bit field to INTR before
// returning. Skipping the acknowledge re-enters this handler immediately
// after return, forever.
//
// If the expected status bit is not set the handler does nothing at all.
// Any other condition that might be pending on the line is left uncleared;
// the wiring of this demo configures a single edge on a single pin so in
// practice the line always matches.
func (fw *Transmitter) irqIOBank0() {
	mch := fw.mch
	brd := fw.brd

	reg, edge := addresses.IntField(brd.ButtonPin, addresses.IntEdgeHigh)
	if mch.IO.Ints(reg)&edge == 0 {
		return
	}

	// pulse LED and speaker together. the delay is a busy wait: a second
	// edge arriving inside it stays latched but cannot preempt
	mch.SIO.WriteOutSet(fw.outputMask())
	fw.delay(brd.PulseTicks)
	mch.SIO.WriteOutClr(fw.outputMask())

	// acknowledge: clear the pin's whole 4-bit field. safe to clear all
	// four condition bits together because this firmware only ever
	// configures the one edge on this pin
	_, field := addresses.IntField(brd.ButtonPin, addresses.IntFieldMask)
	mch.IO.WriteIntr(reg, field)
}
