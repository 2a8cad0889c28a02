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

package playmode

import (
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// live audio for the speaker pin. the pin is a digital level; to make it
// audible the speaker plays a fixed tone while the pin is high, the way a
// piezo buzzer sounds when driven with a steady stream of pulses.
const (
	sampleRate = 44100
	toneFreq   = 440
)

type speaker struct {
	ctx    *oto.Context
	player *oto.Player

	// written from the core goroutine, read from oto's audio goroutine
	level atomic.Bool

	// position within the tone period, in samples. only the audio
	// goroutine touches this
	phase int
}

// newSpeaker opens the audio device and starts the player. The player
// pulls samples from the speaker's Read() function on its own goroutine.
func newSpeaker() (*speaker, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	spk := &speaker{ctx: ctx}
	spk.player = ctx.NewPlayer(spk)
	spk.player.Play()

	return spk, nil
}

// setLevel is called from the core goroutine with the current level of the
// speaker pin.
func (spk *speaker) setLevel(level bool) {
	spk.level.Store(level)
}

// Read implements io.Reader for the oto player: a square wave while the
// pin is high, silence otherwise.
func (spk *speaker) Read(p []byte) (int, error) {
	const period = sampleRate / toneFreq

	high := spk.level.Load()

	for i := 0; i+1 < len(p); i += 2 {
		var s int16
		if high {
			if spk.phase < period/2 {
				s = 8000
			} else {
				s = -8000
			}
		}
		spk.phase = (spk.phase + 1) % period
		p[i] = byte(s)
		p[i+1] = byte(s >> 8)
	}

	return len(p) &^ 1, nil
}
