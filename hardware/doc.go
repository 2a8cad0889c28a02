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

// Package hardware is the container package for the simulated RP2040.
// The Pico type gathers the peripheral blocks and the core; the sub
// packages implement them.
//
// The simulation runs on a single goroutine, the one that calls Boot().
// It mirrors the single hardware thread of the real part: there is no
// scheduler and no preemption, an interrupt handler runs to completion at
// the instruction boundary (cycle boundary here) where it was taken. Front
// ends on other goroutines interact with the machine only by posting
// events through the core, which applies them between cycles; the
// peripheral registers themselves are never touched concurrently.
package hardware
