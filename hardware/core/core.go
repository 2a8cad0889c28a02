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

// Package core implements the single Cortex-M0+ core of the simulation as
// far as the boot and interrupt layer needs it. There is no instruction
// emulation; the firmware is Go code and the core models the things the
// silicon does around it: the reset entry through the vector table, the
// delivery of interrupts at instruction boundaries, the stacking of a
// minimal context frame on exception entry, and the wait-for-interrupt
// sleep state.
//
// Hardware time advances one cycle per Tick(). The firmware's busy loops
// call Tick() once per iteration, which is where pending interrupts are
// taken; a handler already being serviced is never preempted by another
// interrupt at the same priority, exactly as on the single core.
//
// The core runs on one goroutine. Other goroutines (front ends, tests)
// influence it only by posting events with Post(); events are applied on
// the core goroutine at the next cycle. Every blocking wait in the firmware
// eventually reaches Tick(), so a PowerOff() request always unwinds the
// boot, however deeply the firmware is nested. The unwind travels as a
// panic with a private type and is recovered in Boot(); no stack frame in
// between gets a chance to mishandle it.
package core

import (
	"sync/atomic"

	"github.com/flynnpc/pulse2040/curated"
	"github.com/flynnpc/pulse2040/environment"
	"github.com/flynnpc/pulse2040/hardware/nvic"
	"github.com/flynnpc/pulse2040/hardware/vectors"
	"github.com/flynnpc/pulse2040/logger"
)

// Sentinel error patterns returned by Boot().
const (
	PowerOff = "core: power off"
	NoTable  = "core: no vector table"

	// the reset handler is written never to return. if it somehow does the
	// silicon would fall off the end of the world; the simulation prefers
	// to say so
	ResetReturned = "core: reset handler returned"
)

// the type carried by the power-off panic. private so nothing outside the
// package can fake or swallow it.
type powerOffSignal struct{}

// State describes what the core is doing.
type State int

// List of valid State values.
const (
	// executing the thread context (or an exception handler)
	Running State = iota

	// asleep in a WFI instruction
	Waiting
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Waiting:
		return "waiting for interrupt"
	}
	return "undefined"
}

// the size of the context frame the hardware pushes on exception entry:
// r0-r3, r12, lr, pc, xPSR.
const contextFrame = 32

// Core is the simulated processor core.
type Core struct {
	env *environment.Environment

	ic  *nvic.NVIC
	tbl *vectors.Table

	// peripheral step function supplied by the machine. called every cycle
	step func()

	// events posted from other goroutines, applied at the next cycle
	events chan func()

	// power-off request. atomic because front ends set it from their own
	// goroutines
	off atomic.Bool

	// hooks called every cycle, in order of registration. samplers, pacers
	// and scripted stimulus attach here
	hooks []func(uint64)

	ticks uint64
	sp    uint32
	state State

	// exception nesting depth. zero means thread context. interrupts are
	// taken only at depth zero, the single fixed priority means a handler
	// can never preempt another
	depth int
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore(env *environment.Environment, ic *nvic.NVIC) *Core {
	return &Core{
		env:    env,
		ic:     ic,
		events: make(chan func(), 64),
		state:  Running,
	}
}

// Plumb the vector table and the machine's peripheral step function into
// the core. Must be called before Boot().
func (mc *Core) Plumb(tbl *vectors.Table, step func()) {
	mc.tbl = tbl
	mc.step = step
}

// OnTick registers a hook to be called every cycle with the current cycle
// count. Not safe to call once the core has booted.
func (mc *Core) OnTick(hook func(uint64)) {
	mc.hooks = append(mc.hooks, hook)
}

// Post an event to be applied on the core goroutine at the next cycle.
// Safe to call from any goroutine.
func (mc *Core) Post(f func()) {
	mc.events <- f
}

// PowerOff asks the core to stop. The request is honoured at the next
// cycle, wherever the firmware happens to be. Safe to call from any
// goroutine.
func (mc *Core) PowerOff() {
	mc.off.Store(true)
}

// Ticks returns the number of cycles since boot.
func (mc *Core) Ticks() uint64 {
	return mc.ticks
}

// SP returns the current stack pointer value.
func (mc *Core) SP() uint32 {
	return mc.sp
}

// State returns what the core is currently doing. Callers on other
// goroutines see a possibly stale value; that is good enough for a front
// end deciding what to draw.
func (mc *Core) State() State {
	return mc.state
}

// Tick advances hardware time by one cycle. The firmware's busy-wait loops
// call this once per iteration.
//
// A pending enabled interrupt is taken before Tick returns, so a loop
// polling a register observes the effects of any handler that fired
// between iterations.
func (mc *Core) Tick() {
	if mc.off.Load() {
		panic(powerOffSignal{})
	}

	mc.cycle()

	if mc.depth == 0 {
		mc.dispatch()
	}
}

// cycle advances hardware time: applies externally posted events, steps the
// peripherals and runs the tick hooks.
func (mc *Core) cycle() {
	mc.ticks++

	for {
		select {
		case f := <-mc.events:
			f()
		default:
			if mc.step != nil {
				mc.step()
			}
			for _, hook := range mc.hooks {
				hook(mc.ticks)
			}
			return
		}
	}
}

// dispatch takes the lowest numbered enabled and pending interrupt, if
// there is one. Returns true if a handler was entered (and has returned).
func (mc *Core) dispatch() bool {
	irq, ok := mc.ic.Next()
	if !ok {
		return false
	}

	// the pending bit clears on entry. if the peripheral line is still
	// asserted when the handler returns the machine pends it again, which
	// is where the infinite retrigger of an unacknowledged interrupt
	// comes from
	mc.ic.Acknowledge(irq)

	// hardware stacks the minimal context frame and unstacks it on return
	mc.sp -= contextFrame
	mc.depth++
	prev := mc.state
	mc.state = Running

	mc.tbl.Handler(vectors.InterruptSlot(irq))()

	mc.state = prev
	mc.depth--
	mc.sp += contextFrame

	return true
}

// WaitForInterrupt is the WFI instruction: the core sleeps until an enabled
// interrupt has been taken, then resumes immediately after. Peripherals
// keep running while the core sleeps.
//
// When executed inside a handler (the fallback handler parks the core this
// way) no further interrupt can be taken at the same priority and the sleep
// never ends; only a power-off request gets out.
func (mc *Core) WaitForInterrupt() {
	prev := mc.state
	mc.state = Waiting

	for {
		if mc.off.Load() {
			panic(powerOffSignal{})
		}

		mc.cycle()

		if mc.depth == 0 && mc.dispatch() {
			break // for loop
		}
	}

	mc.state = prev
}

// Boot performs the reset sequence: load the stack pointer from slot 0 of
// the vector table and enter the reset handler in slot 1. It returns when
// the core is powered off, with an error matching the PowerOff pattern.
func (mc *Core) Boot() (rerr error) {
	if mc.tbl == nil {
		return curated.Errorf(NoTable)
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(powerOffSignal); !ok {
				panic(r)
			}
			logger.Logf(mc.env, "core", "powered off after %d cycles", mc.ticks)
			rerr = curated.Errorf(PowerOff)
		}
	}()

	// stack init is performed by hardware using the slot 0 word, before
	// any code runs
	mc.sp = mc.tbl.StackTop()
	mc.ticks = 0
	mc.depth = 0
	mc.state = Running

	logger.Logf(mc.env, "core", "reset: sp=%08x", mc.sp)
	mc.tbl.Handler(vectors.SlotReset)()

	return curated.Errorf(ResetReturned)
}
