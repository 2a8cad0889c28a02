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

// Package version records the version information for the program.
package version

import (
	"runtime/debug"
)

// The name to use when referring to the application.
const ApplicationName = "Pulse2040"

// Revision contains the vcs revision. If the source has been modified but
// not committed the string is suffixed with "+dirty". If there is no vcs
// information at all (when running with "go run ." for example) the string
// is "local".
var Revision string = "local"

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var revision string
	var modified bool

	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			revision = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if revision == "" {
		return
	}

	Revision = revision
	if modified {
		Revision += "+dirty"
	}
}
