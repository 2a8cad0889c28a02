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

package resets_test

import (
	"testing"

	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
	"github.com/flynnpc/pulse2040/hardware/resets"
	"github.com/flynnpc/pulse2040/test"
)

func TestReleaseLatency(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	rst := resets.NewResets(env)

	// power-on state: IO_BANK0 held in reset
	test.ExpectSuccess(t, rst.InReset(addresses.ResetIOBank0))

	// requesting the release is not the same as the release having
	// happened. the bit keeps reading as set for a few cycles
	rst.WriteReset(rst.Reset() &^ addresses.ResetIOBank0)
	test.ExpectSuccess(t, rst.InReset(addresses.ResetIOBank0))

	cycles := 0
	for rst.InReset(addresses.ResetIOBank0) {
		rst.Step()
		cycles++
		if cycles > 1000 {
			t.Fatal("reset release never completed")
		}
	}

	// the poll loop must have genuinely run
	test.ExpectSuccess(t, cycles > 1)
}

func TestReassertCancelsRelease(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	rst := resets.NewResets(env)

	rst.WriteReset(rst.Reset() &^ addresses.ResetIOBank0)
	rst.Step()

	// re-asserting the reset mid-release cancels the countdown
	rst.WriteReset(rst.Reset() | addresses.ResetIOBank0)
	for i := 0; i < 100; i++ {
		rst.Step()
	}
	test.ExpectSuccess(t, rst.InReset(addresses.ResetIOBank0))

	// a fresh release still works
	rst.WriteReset(rst.Reset() &^ addresses.ResetIOBank0)
	for i := 0; i < 100; i++ {
		rst.Step()
	}
	test.ExpectEquality(t, rst.InReset(addresses.ResetIOBank0), false)
}
