// Package engine runs the simulation on a dedicated calculation
// goroutine, double-buffered against the foreground: while the caller
// consumes one frame, the worker computes the next into the other.
package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/farwind/engine/internal/frame"
	"github.com/farwind/engine/internal/system"
	"github.com/farwind/engine/internal/world"
)

// Engine owns the worker goroutine and the two frame buffers. The
// foreground drives it with the Wait / Step / Go protocol, once per
// frame, in that order:
//
//	e.Wait()            // block until the previous calculation is done
//	events := e.Step(active)  // exchange inputs and outputs; worker is paused
//	e.Go()              // kick off the next calculation
//	f := e.Frame()      // read the completed frame while the worker runs
type Engine struct {
	mu   sync.Mutex
	cond *sync.Cond

	pipeline *system.Pipeline
	ws       *world.State

	frames       [2]frame.Frame
	drawTickTock bool
	calcTickTock bool
	terminate    bool

	step   int64
	active bool

	zoom       float64
	zoomTarget float64

	pending []world.Event

	tickRate time.Duration
	log      *zap.Logger
	wg       sync.WaitGroup
}

type Options struct {
	Pipeline *system.Pipeline
	World    *world.State
	TickRate time.Duration
	Log      *zap.Logger
}

// New starts the worker goroutine. The worker idles until the first Go.
func New(opts Options) *Engine {
	e := &Engine{
		pipeline:   opts.Pipeline,
		ws:         opts.World,
		tickRate:   opts.TickRate,
		log:        opts.Log,
		zoom:       1,
		zoomTarget: 1,
	}
	e.cond = sync.NewCond(&e.mu)
	e.wg.Add(1)
	go e.worker()
	return e
}

// Place seeds the initial population. Call before the first Go; the
// worker is guaranteed idle until then.
func (e *Engine) Place() {
	e.pipeline.Place()
}

// Wait blocks until the calculation for the previous frame has finished.
func (e *Engine) Wait() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for e.calcTickTock != e.drawTickTock && !e.terminate {
		e.cond.Wait()
	}
}

// Step exchanges state with the paused worker: it applies input-side
// changes (zoom smoothing, activity flag) and returns the gameplay
// events the last calculation produced. Only valid between Wait and Go.
func (e *Engine) Step(isActive bool) []world.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = isActive

	if e.zoomTarget > e.zoom {
		e.zoom = min(e.zoom*1.03, e.zoomTarget)
	} else if e.zoomTarget < e.zoom {
		e.zoom = max(e.zoom*0.97, e.zoomTarget)
	}

	events := e.pending
	e.pending = nil
	return events
}

// Go hands the buffers over: the frame just calculated becomes the draw
// frame, and the worker is released to compute the next one.
func (e *Engine) Go() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.step++
	e.drawTickTock = !e.drawTickTock
	e.cond.Broadcast()
}

// Frame returns the completed frame for drawing. Valid after Go, while
// the worker writes the other buffer.
func (e *Engine) Frame() *frame.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &e.frames[btoi(e.drawTickTock)]
}

// SetZoomTarget sets the zoom level Step smooths toward.
func (e *Engine) SetZoomTarget(z float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.zoomTarget = z
}

// Stop terminates the worker and joins it. The engine is unusable after.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.terminate = true
	e.cond.Broadcast()
	e.mu.Unlock()
	e.wg.Wait()
}

func (e *Engine) worker() {
	defer e.wg.Done()
	e.mu.Lock()
	for {
		for e.calcTickTock == e.drawTickTock && !e.terminate {
			e.cond.Wait()
		}
		if e.terminate {
			break
		}
		calc := e.calcTickTock
		active := e.active
		zoom := e.zoom
		e.mu.Unlock()

		out := &e.frames[btoi(calc)]
		if active {
			e.pipeline.SetOutput(out)
			e.pipeline.Step(e.tickRate)
		} else {
			// Paused: keep serving the last state without advancing it.
			e.pipeline.SetOutput(out)
			e.pipeline.Assemble()
		}
		out.Zoom = zoom
		events := e.ws.TakeEvents()

		e.mu.Lock()
		e.pending = append(e.pending, events...)
		e.calcTickTock = e.drawTickTock
		e.cond.Broadcast()
	}
	e.mu.Unlock()
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
