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

// Package sdlpanel is the windowed front end: a small SDL window showing
// the LED and speaker pins as lamps, with the space bar or a mouse click
// standing in for the button.
//
// SDL event handling must happen on the main thread so the machine runs on
// a second goroutine. The two sides share nothing: the panel posts button
// events through the core and reads pin levels from an atomic snapshot
// published by a tick hook on the machine side.
package sdlpanel

import (
	"sync/atomic"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/flynnpc/pulse2040/board"
	"github.com/flynnpc/pulse2040/curated"
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/firmware"
	"github.com/flynnpc/pulse2040/hardware"
	"github.com/flynnpc/pulse2040/hardware/core"
)

const (
	winTitle  = "Pulse2040"
	winWidth  = 320
	winHeight = 160
)

// bits in the published pin level snapshot.
const (
	snapLED = uint32(1 << 0)
	snapSpk = uint32(1 << 1)
)

// Panel runs the transmitter firmware behind an SDL window. It must be
// called from the main thread (or at least from a goroutine locked to the
// main OS thread) because of SDL's event handling rules.
func Panel(env *environment.Environment, brd board.Board) error {
	mch := hardware.NewPico(env)

	fw, err := firmware.NewTransmitter(env, mch, brd)
	if err != nil {
		return curated.Errorf("sdlpanel: %v", err)
	}

	tbl, err := fw.Table()
	if err != nil {
		return curated.Errorf("sdlpanel: %v", err)
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return curated.Errorf("sdlpanel: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(winTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		winWidth, winHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		return curated.Errorf("sdlpanel: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return curated.Errorf("sdlpanel: %v", err)
	}
	defer renderer.Destroy()

	// pin level snapshot published by the machine goroutine
	var snapshot atomic.Uint32

	mch.Core.OnTick(func(_ uint64) {
		var s uint32
		if mch.SIO.OutputLevel(brd.LEDPin) {
			s |= snapLED
		}
		if mch.SIO.OutputLevel(brd.SpeakerPin) {
			s |= snapSpk
		}
		snapshot.Store(s)
	})

	// the machine runs on its own goroutine. its error is collected when
	// the window closes
	bootErr := make(chan error, 1)
	go func() {
		bootErr <- mch.Boot(tbl)
	}()

	press := func() {
		mch.Core.Post(func() { mch.IO.SetInput(brd.ButtonPin, true) })
		mch.Core.Post(func() { mch.IO.SetInput(brd.ButtonPin, false) })
	}

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				running = false

			case *sdl.KeyboardEvent:
				if ev.Type == sdl.KEYDOWN {
					switch ev.Keysym.Sym {
					case sdl.K_SPACE:
						press()
					case sdl.K_q, sdl.K_ESCAPE:
						running = false
					}
				}

			case *sdl.MouseButtonEvent:
				if ev.Type == sdl.MOUSEBUTTONDOWN {
					press()
				}
			}
		}

		s := snapshot.Load()

		renderer.SetDrawColor(20, 20, 20, 255)
		renderer.Clear()

		drawLamp(renderer, 40, s&snapLED == snapLED, 220, 40, 40)
		drawLamp(renderer, 180, s&snapSpk == snapSpk, 40, 180, 220)

		renderer.Present()
		sdl.Delay(16)
	}

	mch.PowerOff()

	err = <-bootErr
	if curated.Is(err, core.PowerOff) {
		return nil
	}
	return err
}

// drawLamp draws one indicator lamp. A dark outline when off, filled with
// the lamp colour when on.
func drawLamp(renderer *sdl.Renderer, x int32, on bool, r uint8, g uint8, b uint8) {
	lamp := sdl.Rect{X: x, Y: 40, W: 100, H: 80}

	if on {
		renderer.SetDrawColor(r, g, b, 255)
		renderer.FillRect(&lamp)
	} else {
		renderer.SetDrawColor(r/4, g/4, b/4, 255)
		renderer.FillRect(&lamp)
		renderer.SetDrawColor(r/2, g/2, b/2, 255)
		renderer.DrawRect(&lamp)
	}
}
