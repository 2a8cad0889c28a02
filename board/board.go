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

// Package board describes the wiring of the physical board: which pins the
// button, LED and speaker are on, and the timing constants of the demo
// firmware. Pin assignment is board policy, not firmware logic, so it
// lives in a descriptor file rather than in code.
//
// Descriptors are YAML. The default descriptor is compiled into the
// binary; an alternative board can be loaded from disk.
package board

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flynnpc/pulse2040/curated"
	"github.com/flynnpc/pulse2040/hardware/memory/addresses"
)

//go:embed pico.yaml
var rawDefault []byte

// Sentinel error patterns for the board package.
const (
	NotLoaded  = "board: %v"
	BadBoard   = "board: %s: %v"
	BadPin     = "pin %s out of range"
	SharedPin  = "pins must be distinct"
	BadTimings = "timings must be positive"
)

// Board describes the wiring and timing of one physical board.
type Board struct {
	Name string `yaml:"name"`

	// pin assignments
	ButtonPin  int `yaml:"buttonPin"`
	LEDPin     int `yaml:"ledPin"`
	SpeakerPin int `yaml:"speakerPin"`

	// width in cycles of every output pulse (self-test and interrupt
	// response)
	PulseTicks int `yaml:"pulseTicks"`

	// width in cycles of the single LED flash at the end of startup
	FlashTicks int `yaml:"flashTicks"`

	// number of on/off pulses in the startup self-test
	SelfTestPulses int `yaml:"selfTestPulses"`
}

// Default returns the descriptor compiled into the binary: a Raspberry Pi
// Pico with the demo transmitter wiring.
func Default() Board {
	var brd Board

	// the embedded descriptor is checked by the package tests. a failure
	// here is a build defect, not a runtime condition
	if err := yaml.Unmarshal(rawDefault, &brd); err != nil {
		panic(err)
	}

	return brd
}

// Load a board descriptor from disk. Fields not present in the file keep
// the default board's values.
func Load(filename string) (Board, error) {
	brd := Default()

	d, err := os.ReadFile(filename)
	if err != nil {
		return Board{}, curated.Errorf(NotLoaded, err)
	}

	if err := yaml.Unmarshal(d, &brd); err != nil {
		return Board{}, curated.Errorf(BadBoard, filename, err)
	}

	if err := brd.Validate(); err != nil {
		return Board{}, curated.Errorf(BadBoard, filename, err)
	}

	return brd, nil
}

// Validate the descriptor against the limits of the part.
func (brd Board) Validate() error {
	for _, p := range []struct {
		name string
		pin  int
	}{
		{"button", brd.ButtonPin},
		{"led", brd.LEDPin},
		{"speaker", brd.SpeakerPin},
	} {
		if p.pin < 0 || p.pin >= addresses.NumGPIO {
			return curated.Errorf(BadPin, p.name)
		}
	}

	if brd.ButtonPin == brd.LEDPin || brd.ButtonPin == brd.SpeakerPin || brd.LEDPin == brd.SpeakerPin {
		return curated.Errorf(SharedPin)
	}

	if brd.PulseTicks <= 0 || brd.FlashTicks <= 0 || brd.SelfTestPulses <= 0 {
		return curated.Errorf(BadTimings)
	}

	return nil
}
