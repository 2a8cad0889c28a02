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

package sio_test

import (
	"testing"

	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/sio"
	"github.com/flynnpc/pulse2040/test"
)

type stubSource uint32

func (s stubSource) Levels() uint32 {
	return uint32(s)
}

func TestAtomicAliases(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	s := sio.NewSIO(env, stubSource(0))

	s.WriteOut(0x0000_00ff)
	s.WriteOutSet(0x0000_0f00)
	test.ExpectEquality(t, s.Out(), uint32(0x0000_0fff))

	s.WriteOutClr(0x0000_00f0)
	test.ExpectEquality(t, s.Out(), uint32(0x0000_0f0f))

	s.WriteOutXor(0x0000_ffff)
	test.ExpectEquality(t, s.Out(), uint32(0x0000_f0f0))

	s.WriteOeSet(1 << 25)
	s.WriteOeClr(1 << 25)
	s.WriteOeXor(1 << 25)
	test.ExpectEquality(t, s.Oe(), uint32(1<<25))
}

func TestOutputLevel(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	s := sio.NewSIO(env, stubSource(0))

	// a pin drives nothing until its output enable is set
	s.WriteOutSet(1 << 25)
	test.ExpectEquality(t, s.OutputLevel(25), false)

	s.WriteOeSet(1 << 25)
	test.ExpectEquality(t, s.OutputLevel(25), true)

	s.WriteOutClr(1 << 25)
	test.ExpectEquality(t, s.OutputLevel(25), false)
}

func TestInputRegister(t *testing.T) {
	env := environment.NewEnvironment(environment.TestInstance)
	s := sio.NewSIO(env, stubSource(1<<16))

	test.ExpectEquality(t, s.In(), uint32(1<<16))
	test.ExpectEquality(t, s.Cpuid(), uint32(0))
}
