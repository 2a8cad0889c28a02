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

// Package trace records register writes made through the peripheral blocks.
// A Recorder can be attached to a machine, after which every write is
// appended in program order. Ordering properties of the firmware (the
// clear-pending before peripheral-enable before controller-enable sequence
// for example) are asserted against the recorded entries.
//
// A nil *Recorder is valid and records nothing, so the peripheral blocks
// can call Record() unconditionally.
package trace

import (
	"fmt"

	"github.com/flynnpc/pulse2040/hardware/memory/memorymap"
)

// Entry is a single register write.
type Entry struct {
	Address uint32
	Data    uint32
}

func (e Entry) String() string {
	area, offset := memorymap.MapAddress(e.Address)
	return fmt.Sprintf("%s+%03x <- %08x", area, offset, e.Data)
}

// Recorder accumulates register writes in program order.
type Recorder struct {
	entries []Entry
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder() *Recorder {
	return &Recorder{
		entries: make([]Entry, 0, 64),
	}
}

// Record a register write. Safe to call on a nil Recorder.
func (rec *Recorder) Record(address uint32, data uint32) {
	if rec == nil {
		return
	}
	rec.entries = append(rec.entries, Entry{Address: address, Data: data})
}

// Entries returns the recorded writes in program order. The slice must not
// be retained across further recording.
func (rec *Recorder) Entries() []Entry {
	if rec == nil {
		return nil
	}
	return rec.entries
}

// Clear all recorded entries.
func (rec *Recorder) Clear() {
	if rec == nil {
		return
	}
	rec.entries = rec.entries[:0]
}

// Writes returns the data of every write to the given address, in program
// order.
func (rec *Recorder) Writes(address uint32) []uint32 {
	if rec == nil {
		return nil
	}
	var w []uint32
	for _, e := range rec.entries {
		if e.Address == address {
			w = append(w, e.Data)
		}
	}
	return w
}

// IndexOf returns the position of the first write to the given address, or
// -1 if the address was never written.
func (rec *Recorder) IndexOf(address uint32) int {
	if rec == nil {
		return -1
	}
	for i, e := range rec.entries {
		if e.Address == address {
			return i
		}
	}
	return -1
}
