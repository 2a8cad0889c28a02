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

// Package sio implements the single-cycle IO block: GPIO input sampling,
// output values and output enables, with the atomic SET/CLR/XOR aliases the
// firmware uses to drive pins without read-modify-write sequences.
//
// The SIO is not a peripheral on the system bus and is never held in reset;
// its registers are always accessible.
package sio

import (
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/memory/trace"
)

// InputSource supplies the current level of every input pin. Implemented by
// the IO bank.
type InputSource interface {
	Levels() uint32
}

// SIO implements the single-cycle IO block for processor core 0.
type SIO struct {
	env *environment.Environment
	rec *trace.Recorder

	src InputSource

	out uint32
	oe  uint32
}

// NewSIO is the preferred method of initialisation for the SIO type.
func NewSIO(env *environment.Environment, src InputSource) *SIO {
	return &SIO{
		env: env,
		src: src,
	}
}

// Trace attaches a register write recorder. A nil recorder detaches.
func (s *SIO) Trace(rec *trace.Recorder) {
	s.rec = rec
}

// Cpuid returns the identity of the processor core. Always zero, the
// simulation models the single core that the firmware runs on.
func (s *SIO) Cpuid() uint32 {
	return 0
}

// In returns the GPIO_IN register.
func (s *SIO) In() uint32 {
	return s.src.Levels()
}

// Out returns the GPIO_OUT register.
func (s *SIO) Out() uint32 {
	return s.out
}

// Oe returns the GPIO_OE register.
func (s *SIO) Oe() uint32 {
	return s.oe
}

// WriteOut replaces the GPIO_OUT register.
func (s *SIO) WriteOut(data uint32) {
	s.rec.Record(addresses.SIOGPIOOut, data)
	s.out = data
}

// WriteOutSet sets the masked bits of GPIO_OUT.
func (s *SIO) WriteOutSet(mask uint32) {
	s.rec.Record(addresses.SIOGPIOOutSet, mask)
	s.out |= mask
}

// WriteOutClr clears the masked bits of GPIO_OUT.
func (s *SIO) WriteOutClr(mask uint32) {
	s.rec.Record(addresses.SIOGPIOOutClr, mask)
	s.out &^= mask
}

// WriteOutXor toggles the masked bits of GPIO_OUT.
func (s *SIO) WriteOutXor(mask uint32) {
	s.rec.Record(addresses.SIOGPIOOutXor, mask)
	s.out ^= mask
}

// WriteOe replaces the GPIO_OE register.
func (s *SIO) WriteOe(data uint32) {
	s.rec.Record(addresses.SIOGPIOOe, data)
	s.oe = data
}

// WriteOeSet sets the masked bits of GPIO_OE.
func (s *SIO) WriteOeSet(mask uint32) {
	s.rec.Record(addresses.SIOGPIOOeSet, mask)
	s.oe |= mask
}

// WriteOeClr clears the masked bits of GPIO_OE.
func (s *SIO) WriteOeClr(mask uint32) {
	s.rec.Record(addresses.SIOGPIOOeClr, mask)
	s.oe &^= mask
}

// WriteOeXor toggles the masked bits of GPIO_OE.
func (s *SIO) WriteOeXor(mask uint32) {
	s.rec.Record(addresses.SIOGPIOOeXor, mask)
	s.oe ^= mask
}

// OutputLevel returns the level being driven onto the pin. A pin whose
// output enable is clear drives nothing and reads as low. Used by front
// ends to observe the LED and speaker pins.
func (s *SIO) OutputLevel(pin int) bool {
	mask := uint32(1) << pin
	return s.out&s.oe&mask == mask
}
