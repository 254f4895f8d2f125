// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marrasen/go-fop1/clog"
)

const (
	statusInitial uint32 = iota
	statusRunning
	statusDisposed
)

// stimulusKind tags the variant held by a stimulus value.
type stimulusKind int

const (
	stmCLCW stimulusKind = iota
	stmTimerExpired
	stmTransmitAD
	stmTransmitBD
	stmDirective
	stmLowerLayer
)

// stimulus is the single message type carried on Engine.stimuli: every
// external event (spec §4.1) funnels through one of these six shapes so the
// engine worker can classify-then-dispatch without per-kind channels.
type stimulus struct {
	kind      stimulusKind
	clcw      CLCW
	frame     Frame
	directive Directive
	accepted  bool
	epoch     uint64
}

// Engine is the FOP-1 sending-side state machine (spec §4.1). All state
// (scalars, queues, current State) is owned exclusively by the single
// worker goroutine started by Start; every other method only ever posts a
// stimulus onto Engine.stimuli or touches a field that is itself
// concurrency-safe (the observer set, the output sink, the atomic status
// and timer epoch).
type Engine struct {
	option EngineOption
	output atomic.Value // OutputFunc

	state   State
	scalars Scalars
	sent    sentQueue
	wait    waitQueue

	observers observerSet

	stimuli      chan stimulus
	toLowerLayer chan Frame

	timer      *time.Timer
	timerEpoch uint64

	status uint32
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger clog.Clog
}

// NewEngine constructs an Engine in S6 (Initial), configured by opt. Call
// Start before issuing any directive or stimulus.
func NewEngine(opt *EngineOption) *Engine {
	if opt == nil {
		opt = NewOption()
	}
	e := &Engine{
		option:       *opt,
		state:        S6Initial,
		scalars:      Scalars{ADOutReady: true, BDOutReady: true},
		stimuli:      make(chan stimulus, 64),
		toLowerLayer: make(chan Frame, 16),
		logger:       opt.logger,
	}
	e.output.Store(opt.output)
	return e
}

// Start launches the engine worker and the lower-layer shim worker. It
// returns an error if the engine was already started or has been disposed.
func (e *Engine) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&e.status, statusInitial, statusRunning) {
		return errors.New("cop1: engine already started")
	}
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.wg.Add(2)
	go e.worker()
	go e.lowerLayerWorker()
	e.logger.Debug("engine started")
	return nil
}

// Abort requests an orderly shutdown: no further stimuli are accepted, both
// queues are purged (NEGATIVE_CONFIRM/REJECT each entry), T1 is cancelled
// and both workers are joined before Abort returns. The Engine value itself
// remains inspectable (scalars, last state) for diagnostics afterwards.
// Unlike Dispose, Abort does not reject subsequent calls with ErrDisposed —
// a fresh Start is still refused, matching the teacher stack's one-shot
// Client.Close semantics.
func (e *Engine) Abort() {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	for _, f := range e.sent.purge() {
		e.observers.notifyTransfer(NegativeConfirm, f)
	}
	if f, ok := e.wait.clear(); ok {
		e.observers.notifyTransfer(Reject, f)
	}
	e.cancelTimer()
}

// Dispose permanently shuts the engine down, joins both workers and frees
// the retransmission timer. Every subsequent call that posts a stimulus
// returns ErrDisposed.
func (e *Engine) Dispose() {
	atomic.StoreUint32(&e.status, statusDisposed)
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.cancelTimer()
}

// SetOutput swaps the lower-layer sink. Safe to call concurrently with a
// running engine.
func (e *Engine) SetOutput(fn OutputFunc) {
	if fn != nil {
		e.output.Store(fn)
	}
}

// RegisterObserver adds o to the set notified of transfers, directives,
// alerts and state changes.
func (e *Engine) RegisterObserver(o Observer) { e.observers.register(o) }

// DeregisterObserver removes o from the notified set.
func (e *Engine) DeregisterObserver(o Observer) { e.observers.deregister(o) }

// State returns the engine's current FOP-1 state. Safe to call from any
// goroutine once Start has returned, though the value may be stale by the
// time it is read — it is intended for diagnostics, not control flow.
func (e *Engine) State() State { return e.state }

// Directive submits a FOP directive (spec §4.2 E23-E39) and returns the
// correlation tag the resulting DirectiveNotification will carry.
func (e *Engine) Directive(kind DirectiveKind, qualifier int) (DirectiveTag, error) {
	tag := NewDirectiveTag()
	err := e.post(stimulus{kind: stmDirective, directive: Directive{Tag: tag, Kind: kind, Qualifier: qualifier}})
	return tag, err
}

// TransmitAD requests transmission of payload as a Type-AD (sequence
// controlled) frame.
func (e *Engine) TransmitAD(payload []byte) error {
	return e.post(stimulus{kind: stmTransmitAD, frame: Frame{Type: FrameAD, Payload: payload}})
}

// TransmitBD requests transmission of payload as a Type-BD (expedited,
// unacknowledged) frame.
func (e *Engine) TransmitBD(payload []byte) error {
	return e.post(stimulus{kind: stmTransmitBD, frame: Frame{Type: FrameBD, Payload: payload}})
}

// ReportCLCW feeds a received CLCW into the engine (spec §4.2 E1-E14,
// E101-E103).
func (e *Engine) ReportCLCW(c CLCW) error {
	return e.post(stimulus{kind: stmCLCW, clcw: c})
}

// LowerLayer reports the lower layer's accept/reject outcome for a
// previously delivered frame (spec §4.2 E41-E46). The shim worker calls
// this automatically for frames delivered via the configured OutputFunc;
// it is exported so a caller driving the lower layer directly can report
// outcomes without going through OutputFunc at all.
func (e *Engine) LowerLayer(f Frame, accepted bool) error {
	return e.post(stimulus{kind: stmLowerLayer, frame: f, accepted: accepted})
}

// TimerExpired reports that T1 fired for the given epoch. Exposed so tests
// can simulate timer expiry deterministically instead of sleeping; a real
// firing from restartTimer's time.AfterFunc calls the same path. Epochs
// that no longer match the engine's current timer are silently discarded
// (spec §5, §9 timer/epoch discussion).
func (e *Engine) TimerExpired(epoch uint64) error {
	return e.post(stimulus{kind: stmTimerExpired, epoch: epoch})
}

// Epoch returns the engine's current timer epoch, for tests that want to
// construct a TimerExpired call against the live epoch.
func (e *Engine) Epoch() uint64 { return atomic.LoadUint64(&e.timerEpoch) }

// post enqueues a stimulus, refusing it once the engine is disposed and
// unblocking if the engine's context is cancelled first.
func (e *Engine) post(stm stimulus) error {
	if atomic.LoadUint32(&e.status) == statusDisposed {
		return ErrDisposed
	}
	select {
	case e.stimuli <- stm:
		return nil
	case <-e.ctx.Done():
		return e.ctx.Err()
	}
}

// worker is the single-threaded cooperative loop that owns every piece of
// engine state (spec §5 "Concurrency & resource model").
func (e *Engine) worker() {
	defer e.wg.Done()
	e.logger.Debug("engine worker started")
	for {
		select {
		case <-e.ctx.Done():
			e.logger.Debug("engine worker stopped")
			return
		case stm := <-e.stimuli:
			e.handle(stm)
		}
	}
}

// handle classifies a stimulus into an event against the engine's current
// scalars, then dispatches it through the transition table.
func (e *Engine) handle(stm stimulus) {
	e.refreshScalars()
	switch stm.kind {
	case stmCLCW:
		if stm.clcw.CopInEffect != 0 && stm.clcw.CopInEffect != COP1 {
			return // CLCW reports a different procedure in effect; not ours to act on
		}
		e.dispatch(classifyCLCW(stm.clcw, e.scalars), actionCtx{clcw: stm.clcw})
	case stmTimerExpired:
		if stm.epoch != atomic.LoadUint64(&e.timerEpoch) {
			return // stale firing from a timer that has since been cancelled or re-armed
		}
		e.dispatch(classifyTimerExpired(e.scalars), actionCtx{})
	case stmTransmitAD:
		e.dispatch(classifyTransmitAD(e.scalars), actionCtx{frame: stm.frame})
	case stmTransmitBD:
		e.dispatch(classifyTransmitBD(e.scalars), actionCtx{frame: stm.frame})
	case stmDirective:
		ev := classifyDirective(stm.directive, e.scalars)
		if ev == 0 {
			e.observers.notifyDirective(NegativeConfirm, stm.directive.Tag, stm.directive)
			return
		}
		e.dispatch(ev, actionCtx{directive: stm.directive})
	case stmLowerLayer:
		e.dispatch(classifyLowerLayer(stm.frame.Type, stm.accepted), actionCtx{frame: stm.frame, accepted: stm.accepted})
	}
}

// refreshScalars syncs the derived scalar bits (queue emptiness, BC
// occupancy, the live config values) before every classification, since the
// classifier functions take an immutable Scalars snapshot (spec §3, §4.2).
// ad_out_ready and bd_out_ready are NOT recomputed here: they track whether
// a single-flight lower-layer dispatch is outstanding, and are maintained
// directly by transmitAD/transmitBD (cleared on dispatch) and
// markADReady/markBDReady (set on the matching E41/E42/E45/E46 outcome).
func (e *Engine) refreshScalars() {
	e.scalars.WaitQueueEmpty = e.wait.empty()
	e.scalars.BCOutReady = !e.sent.hasBC()
	e.scalars.TransmissionLimit = e.option.config.TransmissionLimit
	e.scalars.TimeoutType = e.option.config.TimeoutType
}

// dispatch looks up (state, event) in the transition table and runs its
// action list, then moves to its next state. An unlisted cell is ignored
// outright (spec §9 "unnamed transition-table cells default to ignore").
func (e *Engine) dispatch(ev Event, actx actionCtx) {
	entry, ok := transitionTable[transitionKey{state: e.state, event: ev}]
	if !ok {
		e.logger.Debug("no transition for state=%v event=%v, ignoring", e.state, ev)
		return
	}
	for _, a := range entry.actions {
		a(e, actx)
	}
	if entry.next != 0 && entry.next != e.state {
		prev := e.state
		e.state = entry.next
		e.observers.notifyStateChanged(prev, entry.next)
	}
}

// deliver hands a frame to the lower-layer shim worker for transmission.
func (e *Engine) deliver(f Frame) {
	select {
	case e.toLowerLayer <- f:
	case <-e.ctx.Done():
	}
}

// restartTimer cancels any running T1 and re-arms it for config.T1Initial,
// bumping the epoch so a previously scheduled firing is discarded on
// arrival (spec §5, §9).
func (e *Engine) restartTimer() {
	epoch := atomic.AddUint64(&e.timerEpoch, 1)
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.option.config.T1Initial, func() {
		_ = e.post(stimulus{kind: stmTimerExpired, epoch: epoch})
	})
}

// cancelTimer stops T1 without re-arming it.
func (e *Engine) cancelTimer() {
	atomic.AddUint64(&e.timerEpoch, 1)
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// secondsToDuration interprets a SET_T1_INITIAL directive qualifier as
// whole seconds, the CCSDS convention for that directive's parameter.
func secondsToDuration(qualifier int) time.Duration {
	if qualifier < 0 {
		qualifier = 0
	}
	return time.Duration(qualifier) * time.Second
}
