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

package nvic_test

import (
	"testing"

	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/nvic"
	"github.com/flynnpc/pulse2040/test"
)

func TestEnablePend(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	ic := nvic.NewNVIC(env)

	// a pending interrupt that is not enabled is never taken
	ic.Assert(13)
	_, ok := ic.Next()
	test.ExpectEquality(t, ok, false)

	ic.WriteIser(1 << 13)
	irq, ok := ic.Next()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, irq, 13)

	// taking the exception clears the pending bit
	ic.Acknowledge(13)
	_, ok = ic.Next()
	test.ExpectEquality(t, ok, false)
	test.ExpectEquality(t, ic.Enabled(), uint32(1<<13))

	// a disabled line keeps its pending bit for later
	ic.Assert(13)
	ic.WriteIcer(1 << 13)
	_, ok = ic.Next()
	test.ExpectEquality(t, ok, false)
	test.ExpectEquality(t, ic.Pending(), uint32(1<<13))

	ic.WriteIser(1 << 13)
	_, ok = ic.Next()
	test.ExpectSuccess(t, ok)
}

func TestLowestWins(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	ic := nvic.NewNVIC(env)

	ic.WriteIser(1<<5 | 1<<13 | 1<<25)
	ic.WriteIspr(1<<13 | 1<<25)

	irq, ok := ic.Next()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, irq, 13)

	ic.Acknowledge(13)
	irq, ok = ic.Next()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, irq, 25)

	// ICPR unpends without taking
	ic.WriteIcpr(1 << 25)
	_, ok = ic.Next()
	test.ExpectEquality(t, ok, false)
}

func TestLineFollowsPeripheral(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	ic := nvic.NewNVIC(env)

	ic.WriteIser(1 << 13)

	// a pend held up by the peripheral line alone drops with the line
	ic.Assert(13)
	test.ExpectEquality(t, ic.Pending(), uint32(1<<13))
	ic.Deassert(13)
	test.ExpectEquality(t, ic.Pending(), uint32(0))
	_, ok := ic.Next()
	test.ExpectEquality(t, ok, false)

	// an ISPR pend survives the line going quiet
	ic.WriteIspr(1 << 13)
	ic.Deassert(13)
	test.ExpectEquality(t, ic.Pending(), uint32(1<<13))
	irq, ok := ic.Next()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, irq, 13)
}
