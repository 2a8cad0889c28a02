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

// Package playmode is the interactive terminal front end. The terminal is
// put into cbreak mode; the space bar presses the button, q (or ctrl-c)
// powers the machine off. The LED and speaker pins are drawn as a status
// line that updates as the pins change.
//
// The machine runs on the calling goroutine. The keyboard reader runs on
// its own goroutine and influences the machine only by posting events
// through the core.
package playmode

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/term"

	"github.com/flynnpc/pulse2040/board"
	"github.com/flynnpc/pulse2040/curated"
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/firmware"
	"github.com/flynnpc/pulse2040/hardware"
	"github.com/flynnpc/pulse2040/hardware/core"
	"github.com/flynnpc/pulse2040/logger"
)

// the simulated clock rate, in cycles per second of wall time. pacing is
// coarse: the core sleeps at intervals rather than per cycle.
const (
	clockRate    = 1000000
	paceInterval = clockRate / 100
	paceSleep    = 10 * time.Millisecond
)

// Play runs the transmitter firmware interactively until the user quits.
func Play(env *environment.Environment, brd board.Board, output io.Writer, withAudio bool) error {
	mch := hardware.NewPico(env)

	fw, err := firmware.NewTransmitter(env, mch, brd)
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	tbl, err := fw.Table()
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	trm, err := term.Open("/dev/tty")
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}
	defer func() {
		_ = trm.Restore()
		_ = trm.Close()
		fmt.Fprintf(output, "\n")
	}()

	if err := trm.SetCbreak(); err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	if withAudio {
		spk, err := newSpeaker()
		if err != nil {
			// no audio is not fatal, the status line still shows the
			// speaker pin
			logger.Logf(env, "playmode", "no audio: %v", err)
		} else {
			mch.Core.OnTick(func(_ uint64) {
				spk.setLevel(mch.SIO.OutputLevel(brd.SpeakerPin))
			})
		}
	}

	// keyboard reader. posts events to the core and never touches the
	// machine directly
	go func() {
		b := make([]byte, 1)
		for {
			n, err := trm.Read(b)
			if err != nil || n == 0 {
				return
			}
			switch b[0] {
			case ' ':
				mch.Core.Post(func() { mch.IO.SetInput(brd.ButtonPin, true) })
				mch.Core.Post(func() { mch.IO.SetInput(brd.ButtonPin, false) })
			case 'q', 3: // 3 is ctrl-c in cbreak mode
				mch.PowerOff()
				return
			}
		}
	}()

	// status line, redrawn only when a pin changes
	var lastLED, lastSpk bool
	var drawn bool
	draw := func(led bool, spk bool) {
		glyph := func(on bool, name string) string {
			if on {
				return fmt.Sprintf("[%s]", name)
			}
			return fmt.Sprintf(" %s ", name)
		}
		fmt.Fprintf(output, "\r%s %s  (space=button, q=quit)", glyph(led, "LED"), glyph(spk, "SPK"))
	}

	mch.Core.OnTick(func(t uint64) {
		led := mch.SIO.OutputLevel(brd.LEDPin)
		spk := mch.SIO.OutputLevel(brd.SpeakerPin)
		if !drawn || led != lastLED || spk != lastSpk {
			draw(led, spk)
			lastLED = led
			lastSpk = spk
			drawn = true
		}

		// coarse pacing towards the nominal clock rate
		if t%paceInterval == 0 {
			time.Sleep(paceSleep)
		}
	})

	err = mch.Boot(tbl)
	if curated.Is(err, core.PowerOff) {
		return nil
	}
	return err
}
