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

// Package environment defines those parts of the simulation that might
// change from instance to instance of the machine but are not the machine
// itself. It is passed to every component that needs to identify which
// instance it belongs to or that wants to write to the central log.
package environment

// Label is used to name the environment.
type Label string

// List of recognised Label values.
const (
	// the main machine instance in the program
	MainInstance Label = ""

	// a machine instance created by a unit test. log requests from these
	// instances are refused so that tests do not pollute the central log
	TestInstance Label = "test"
)

// Environment is used to provide context for a machine instance.
// Particularly useful when more than one instance exists in the same
// process.
type Environment struct {
	Label Label
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(label Label) *Environment {
	return &Environment{Label: label}
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.IsLabel(TestInstance)
}

// IsLabel checks the environment label and returns true if it matches.
func (env *Environment) IsLabel(label Label) bool {
	return env.Label == label
}
