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

package pads_test

import (
	"testing"

	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/pads"
	"github.com/flynnpc/pulse2040/test"
)

func TestPowerOnValue(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	pd := pads.NewPads(env)

	// reset value 0x56: input buffer and schmitt trigger on, pull-down
	for pin := 0; pin < addresses.NumGPIO; pin++ {
		test.ExpectEquality(t, pd.Pad(pin), uint32(0x56))
	}
	test.ExpectSuccess(t, pd.InputEnabled(0))
	test.ExpectEquality(t, pd.PullUpEnabled(0), false)
}

func TestWritePad(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	pd := pads.NewPads(env)

	pd.WritePad(16, addresses.PadPullUpEn|addresses.PadInputEn)
	test.ExpectSuccess(t, pd.InputEnabled(16))
	test.ExpectSuccess(t, pd.PullUpEnabled(16))

	pd.WritePad(16, 0)
	test.ExpectEquality(t, pd.InputEnabled(16), false)
	test.ExpectEquality(t, pd.PullUpEnabled(16), false)
}
