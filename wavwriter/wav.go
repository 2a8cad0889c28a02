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

// Package wavwriter records the speaker pin as a WAV file. The pin level
// is sampled at a fixed cycle interval and buffered in memory in its
// entirety, written to disk on program end. It is therefore only really
// suitable for short sessions and testing.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/flynnpc/pulse2040/curated"
	"github.com/flynnpc/pulse2040/logger"
)

// SampleFreq is the sample frequency of the written file. Chosen to divide
// the nominal 1MHz core clock exactly so the tick hook's divisor introduces
// no pitch skew.
const SampleFreq = 20000

// TickDivisor is the number of cycles of the nominal 1MHz core clock per
// sample. Attach Sample to a tick hook firing every TickDivisor cycles.
const TickDivisor = 1000000 / SampleFreq

// amplitude of a high pin level in the 8-bit output. the pin is a digital
// square wave so there are only two values
const amplitude = 200

// WavWriter accumulates samples of the speaker pin.
type WavWriter struct {
	filename string
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) *WavWriter {
	return &WavWriter{
		filename: filename,
		buffer:   make([]int, 0, SampleFreq),
	}
}

// Sample the current level of the speaker pin. Attach to the machine with
// a tick hook, dividing the core clock down to SampleFreq.
func (aw *WavWriter) Sample(level bool) {
	v := 0
	if level {
		v = amplitude
	}
	aw.buffer = append(aw.buffer, v)
}

// End writes the accumulated samples to disk.
func (aw *WavWriter) End() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	enc := wav.NewEncoder(f, SampleFreq, 8, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleFreq,
		},
		Data:           aw.buffer,
		SourceBitDepth: 8,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return curated.Errorf("wavwriter: %v", err)
	}

	if err := enc.Close(); err != nil {
		_ = f.Close()
		return curated.Errorf("wavwriter: %v", err)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf(logger.Allow, "wavwriter", "%d samples written to %s", len(aw.buffer), aw.filename)

	return nil
}
