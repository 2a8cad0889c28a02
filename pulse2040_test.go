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

package main_test

import (
	"fmt"
	"testing"

	"github.com/flynnpc/pulse2040/board"
	"github.com/flynnpc/pulse2040/curated"
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/firmware"
	"github.com/flynnpc/pulse2040/hardware"
	"github.com/flynnpc/pulse2040/hardware/core"
)

func BenchmarkMachine(b *testing.B) {
	env := environment.NewEnvironment(environment.TestInstance)
	mch := hardware.NewPico(env)

	brd := board.Default()

	fw, err := firmware.NewTransmitter(env, mch, brd)
	if err != nil {
		panic(fmt.Errorf("error preparing firmware: %w", err))
	}

	tbl, err := fw.Table()
	if err != nil {
		panic(err)
	}

	// press the button on every idle cycle so the machine is always
	// either dispatching or running the handler
	pressed := false
	mch.Core.OnTick(func(t uint64) {
		if t >= uint64(b.N) {
			mch.PowerOff()
			return
		}
		if mch.Core.State() == core.Waiting {
			pressed = !pressed
			mch.IO.SetInput(brd.ButtonPin, pressed)
		}
	})

	b.ResetTimer()
	err = mch.Boot(tbl)
	if err != nil && !curated.Is(err, core.PowerOff) {
		panic(err)
	}
}
