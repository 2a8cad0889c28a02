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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like the fmt package, and
// returns an error. The difference is that the pattern is kept alongside the
// formatted message and can be matched against later:
//
//	err := curated.Errorf(core.PowerOff)
//
//	if curated.Is(err, core.PowerOff) {
//		// not really an error, the simulation was asked to stop
//	}
//
// The Has() function is similar but checks if a pattern occurs anywhere in
// the error chain rather than only at the head.
//
// Sentinel patterns used across the project (core.PowerOff for example) are
// declared in the package that generates them.
package curated
