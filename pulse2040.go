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

package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/flynnpc/pulse2040/board"
	"github.com/flynnpc/pulse2040/curated"
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/firmware"
	"github.com/flynnpc/pulse2040/gui/sdlpanel"
	"github.com/flynnpc/pulse2040/hardware"
	"github.com/flynnpc/pulse2040/hardware/core"
	"github.com/flynnpc/pulse2040/logger"
	"github.com/flynnpc/pulse2040/modalflag"
	"github.com/flynnpc/pulse2040/playmode"
	"github.com/flynnpc/pulse2040/statsview"
	"github.com/flynnpc/pulse2040/version"
	"github.com/flynnpc/pulse2040/wavwriter"
)

func init() {
	// SDL requires window and event handling to happen on the main thread.
	// the panel mode runs the machine on a second goroutine and keeps the
	// main goroutine for SDL
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "PANEL", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "PLAY":
		err = play(md)

	case "PANEL":
		err = panel(md)

	case "VERSION":
		fmt.Printf("%s (%s)\n", version.ApplicationName, version.Revision)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md, err)
		os.Exit(20)
	}
}

// loadBoard handles the -board flag common to every mode. an empty filename
// means the built-in Raspberry Pi Pico descriptor.
func loadBoard(filename string) (board.Board, error) {
	if filename == "" {
		return board.Default(), nil
	}
	return board.Load(filename)
}

// parsePresses converts the -press argument, a comma separated list of cycle
// counts, into a sorted-enough slice. the cycle counts are taken as given;
// presses scheduled in the past simply never happen.
func parsePresses(arg string) ([]uint64, error) {
	if arg == "" {
		return nil, nil
	}

	var presses []uint64
	for _, s := range strings.Split(arg, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("press list: %w", err)
		}
		presses = append(presses, v)
	}
	return presses, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	brdFile := md.AddString("board", "", "board descriptor file (default: built-in pico)")
	wav := md.AddString("wav", "", "record speaker output to wav file")
	press := md.AddString("press", "", "press button at cycle counts (comma separated)")
	ticks := md.AddUint64("ticks", 0, "power off after this many cycles (0 = run forever)")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	brd, err := loadBoard(*brdFile)
	if err != nil {
		return err
	}

	presses, err := parsePresses(*press)
	if err != nil {
		return err
	}

	env := environment.NewEnvironment(environment.MainInstance)
	mch := hardware.NewPico(env)

	fw, err := firmware.NewTransmitter(env, mch, brd)
	if err != nil {
		return err
	}

	tbl, err := fw.Table()
	if err != nil {
		return err
	}

	// wav recording: the nominal 1MHz core clock divided down to the wav
	// sample frequency
	if *wav != "" {
		aw := wavwriter.New(*wav)
		mch.Core.OnTick(func(t uint64) {
			if t%wavwriter.TickDivisor == 0 {
				aw.Sample(mch.SIO.OutputLevel(brd.SpeakerPin))
			}
		})
		defer func() {
			if err := aw.End(); err != nil {
				fmt.Printf("* wav recording: %v\n", err)
			}
		}()
	}

	// scripted button presses. the hook runs on the machine goroutine so the
	// input pin can be driven directly. each press is a one cycle high pulse,
	// enough for the edge detector
	if len(presses) > 0 {
		mch.Core.OnTick(func(t uint64) {
			for _, at := range presses {
				switch t {
				case at:
					mch.IO.SetInput(brd.ButtonPin, true)
				case at + 1:
					mch.IO.SetInput(brd.ButtonPin, false)
				}
			}
		})
	}

	if *ticks > 0 {
		limit := *ticks
		mch.Core.OnTick(func(t uint64) {
			if t >= limit {
				mch.PowerOff()
			}
		})
	}

	err = mch.Boot(tbl)
	if err != nil && !curated.Is(err, core.PowerOff) {
		return err
	}

	fmt.Printf("ran for %d cycles\n", mch.Core.Ticks())
	return nil
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	brdFile := md.AddString("board", "", "board descriptor file (default: built-in pico)")
	audio := md.AddBool("audio", true, "sound the speaker pin through the host audio device")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	brd, err := loadBoard(*brdFile)
	if err != nil {
		return err
	}

	env := environment.NewEnvironment(environment.MainInstance)
	return playmode.Play(env, brd, os.Stdout, *audio)
}

func panel(md *modalflag.Modes) error {
	md.NewMode()

	brdFile := md.AddString("board", "", "board descriptor file (default: built-in pico)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	brd, err := loadBoard(*brdFile)
	if err != nil {
		return err
	}

	env := environment.NewEnvironment(environment.MainInstance)
	return sdlpanel.Panel(env, brd)
}
