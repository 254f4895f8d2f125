// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

// actionCtx carries whatever stimulus-specific data an action needs. Only
// the fields relevant to the stimulus that triggered the current dispatch
// are populated; actions read only the fields they need (spec §4.3).
type actionCtx struct {
	clcw      CLCW
	frame     Frame
	directive Directive
	accepted  bool
}

// action is one cell of the transition table's action list. Actions run in
// order on the engine worker; they never block.
type action func(e *Engine, actx actionCtx)

// purgeSentQueue empties the sent queue, negatively confirming every frame
// still on it (spec §4.4 initialise/terminate paths).
func purgeSentQueue(e *Engine, _ actionCtx) {
	for _, f := range e.sent.purge() {
		e.observers.notifyTransfer(NegativeConfirm, f)
	}
}

// purgeWaitQueue drops the wait queue's single entry, if any, with a
// REJECT notification.
func purgeWaitQueue(e *Engine, _ actionCtx) {
	if f, ok := e.wait.clear(); ok {
		e.observers.notifyTransfer(Reject, f)
	}
}

// acceptRequest notifies ACCEPT for the frame carried by actx (the higher
// procedure's transmit request has been taken in by FOP).
func acceptRequest(e *Engine, actx actionCtx) {
	e.observers.notifyTransfer(Accept, actx.frame)
}

// rejectRequest notifies REJECT for the frame carried by actx.
func rejectRequest(e *Engine, actx actionCtx) {
	e.observers.notifyTransfer(Reject, actx.frame)
}

// addToWaitQueue parks the AD frame in actx until the sent queue has room
// (spec §4.4 E20 handling).
func addToWaitQueue(e *Engine, actx actionCtx) {
	e.wait.set(actx.frame)
}

// transmitAD assigns the next V(S), appends the frame to the sent queue,
// arms/keeps T1 running and hands it to the lower layer shim. Handing the
// frame down occupies the single-flight lower-layer slot: ad_out_ready goes
// false until the matching E41/E42 accept/reject arrives (spec §3, §4.4).
func transmitAD(e *Engine, actx actionCtx) {
	f := actx.frame
	f.Type = FrameAD
	f.NS = e.scalars.VS
	e.sent.append(f)
	e.scalars.VS++
	e.scalars.TransmissionCount = 1
	e.scalars.ADOutReady = false
	e.restartTimer()
	e.deliver(f)
}

// transmitBC hands the BC (unlock / set-V(R)) frame down, replacing any BC
// already on the sent queue (only one BC may be outstanding at a time).
func transmitBC(e *Engine, actx actionCtx) {
	e.sent.removeBC()
	f := actx.frame
	f.Type = FrameBC
	e.sent.append(f)
	e.scalars.TransmissionCount = 1
	e.restartTimer()
	e.deliver(f)
}

// transmitBD hands a BD (expedited, unacknowledged) frame straight to the
// lower layer; BD frames never occupy the sent queue or affect V(S). As
// with AD, occupying the lower-layer slot clears bd_out_ready until the
// matching E45/E46 accept/reject arrives.
func transmitBD(e *Engine, actx actionCtx) {
	f := actx.frame
	f.Type = FrameBD
	e.scalars.BDOutReady = false
	e.deliver(f)
}

// initiateRetransmission flags every outstanding sent-queue entry for
// retransmission and bumps the transmission count (spec §4.4 "Initiate
// Retransmission").
func initiateRetransmission(e *Engine, _ actionCtx) {
	e.sent.markAllForRetransmission()
	e.scalars.TransmissionCount++
	e.retransmitNext()
}

// retransmitNext hands the next flagged sent-queue entry back to the lower
// layer and clears its flag, restarting T1. It is a no-op if nothing is
// flagged.
func (e *Engine) retransmitNext() {
	i := e.sent.firstToBeRetransmitted()
	if i < 0 {
		return
	}
	e.sent.clearRetransmitFlag(i)
	e.scalars.ADOutReady = false
	e.restartTimer()
	e.deliver(e.sent.entries[i].frame)
}

// lookForFrame pulls the wait queue's parked AD frame, if any, into the
// sent queue once the lower layer is free to take it and the sliding
// window has room (spec §4.4 "Look for FDU": "if ad_out_ready is false do
// nothing", reached after an acknowledgement frees a slot).
func lookForFrame(e *Engine, _ actionCtx) {
	if !e.scalars.ADOutReady || e.wait.empty() || e.sent.adCount() >= e.option.config.FOPSlidingWindow {
		return
	}
	f, _ := e.wait.clear()
	transmitAD(e, actionCtx{frame: f})
}

// acceptAndTransmitOrQueue accepts a higher-procedure AD transmit request
// and either sends it immediately, if the lower layer is free and the
// sliding window has room, or parks it on the wait queue (spec §4.4 E19
// handling — the classifier only tells us the wait queue was empty when
// the request arrived, not whether ad_out_ready or the window itself still
// has room).
func acceptAndTransmitOrQueue(e *Engine, actx actionCtx) {
	e.observers.notifyTransfer(Accept, actx.frame)
	if e.scalars.ADOutReady && e.sent.adCount() < e.option.config.FOPSlidingWindow {
		transmitAD(e, actx)
	} else {
		addToWaitQueue(e, actx)
	}
}

// markADReady marks the lower layer free to accept another AD dispatch,
// reached whenever the outstanding AD frame's accept/reject outcome
// arrives (spec §3 ad_out_ready, E41/E42).
func markADReady(e *Engine, _ actionCtx) {
	e.scalars.ADOutReady = true
}

// markBDReady marks the lower layer free to accept another BD dispatch,
// reached whenever the outstanding BD frame's accept/reject outcome
// arrives (spec §3 bd_out_ready, E45/E46).
func markBDReady(e *Engine, _ actionCtx) {
	e.scalars.BDOutReady = true
}

// retransmitNextAction is the action-table adapter for Engine.retransmitNext.
func retransmitNextAction(e *Engine, _ actionCtx) {
	e.retransmitNext()
}

// removeAckFramesFromSentQueue removes every AD entry the CLCW's N(R)
// confirms and positively confirms each one.
func removeAckFramesFromSentQueue(e *Engine, actx actionCtx) {
	for _, f := range e.sent.removeAcked(actx.clcw.NR) {
		e.observers.notifyTransfer(PositiveConfirm, f)
	}
	e.scalars.NNR = actx.clcw.NR
}

// completeBC pops the sent queue's BC entry (if any) and positively
// confirms it — reached on the BC's lower-layer accept (E43) and on the
// CLCW that completes initialisation in S5.
func completeBC(e *Engine, _ actionCtx) {
	if f, ok := e.sent.removeBC(); ok {
		e.observers.notifyTransfer(PositiveConfirm, f)
	}
}

// confirmBCReject pops the sent queue's BC entry (if any) and negatively
// confirms it.
func confirmBCReject(e *Engine, _ actionCtx) {
	if f, ok := e.sent.removeBC(); ok {
		e.observers.notifyTransfer(NegativeConfirm, f)
	}
}

// alert purges both queues (NEGATIVE_CONFIRM/REJECT each entry), cancels
// T1 and raises an observable alert, halting further automatic recovery
// until a directive resumes or re-initialises the engine (spec §4.4 alert,
// §7).
func alertWith(code AlertCode) action {
	return func(e *Engine, actx actionCtx) {
		purgeSentQueue(e, actx)
		purgeWaitQueue(e, actx)
		e.cancelTimer()
		e.observers.notifyAlert(code)
	}
}

// suspend records the suspend state reached for a subsequent RESUME
// directive to unwind (spec §4.2 E30-E34).
func suspendWith(ss int) action {
	return func(e *Engine, _ actionCtx) {
		e.scalars.SuspendState = ss
		e.cancelTimer()
	}
}

// resume clears the suspend state on a successful RESUME directive.
func resume(e *Engine, _ actionCtx) {
	e.scalars.SuspendState = 0
}

// restartTimer cancels and re-arms T1; exposed as an action for
// transitions that re-arm T1 without sending anything (e.g. on E9/E11).
func restartTimerAction(e *Engine, _ actionCtx) {
	e.restartTimer()
}

// cancelTimerAction cancels T1 when the sent queue is empty; otherwise it
// leaves T1 running as it is.
func cancelTimerAction(e *Engine, _ actionCtx) {
	if e.sent.empty() {
		e.cancelTimer()
	}
}

// initialise resets V(S), NN(R), the transmission count and both queues —
// the common core of every INIT_AD_* directive (spec §4.4).
func initialise(e *Engine, actx actionCtx) {
	for _, f := range e.sent.purge() {
		e.observers.notifyTransfer(NegativeConfirm, f)
	}
	if f, ok := e.wait.clear(); ok {
		e.observers.notifyTransfer(NegativeConfirm, f)
	}
	e.scalars.VS = 0
	e.scalars.NNR = 0
	e.scalars.TransmissionCount = 0
	e.scalars.SuspendState = 0
	e.scalars.ADOutReady = true
	e.scalars.BDOutReady = true
	e.cancelTimer()
	e.observers.notifyDirective(PositiveConfirm, actx.directive.Tag, actx.directive)
}

// setVS applies a SET_V_S directive's qualifier as the new V(S).
func setVS(e *Engine, actx actionCtx) {
	e.scalars.VS = uint8(actx.directive.Qualifier)
	e.observers.notifyDirective(PositiveConfirm, actx.directive.Tag, actx.directive)
}

// setSlidingWindow applies a SET_FOP_SLIDING_WINDOW directive's qualifier.
func setSlidingWindow(e *Engine, actx actionCtx) {
	e.option.config.FOPSlidingWindow = actx.directive.Qualifier
	e.observers.notifyDirective(PositiveConfirm, actx.directive.Tag, actx.directive)
}

// setT1Initial applies a SET_T1_INITIAL directive's qualifier,
// interpreted as whole seconds per CCSDS convention.
func setT1Initial(e *Engine, actx actionCtx) {
	e.option.config.T1Initial = secondsToDuration(actx.directive.Qualifier)
	e.observers.notifyDirective(PositiveConfirm, actx.directive.Tag, actx.directive)
}

// setTransmissionLimit applies a SET_TRANSMISSION_LIMIT directive's
// qualifier.
func setTransmissionLimit(e *Engine, actx actionCtx) {
	e.option.config.TransmissionLimit = actx.directive.Qualifier
	e.observers.notifyDirective(PositiveConfirm, actx.directive.Tag, actx.directive)
}

// setTimeoutType applies a SET_TIMEOUT_TYPE directive's qualifier.
func setTimeoutType(e *Engine, actx actionCtx) {
	e.option.config.TimeoutType = actx.directive.Qualifier
	e.scalars.TimeoutType = actx.directive.Qualifier
	e.observers.notifyDirective(PositiveConfirm, actx.directive.Tag, actx.directive)
}

// confirmDirective positively confirms a directive that carries no other
// side effect beyond the state transition itself (e.g. TERMINATE, RESUME).
func confirmDirective(e *Engine, actx actionCtx) {
	e.observers.notifyDirective(PositiveConfirm, actx.directive.Tag, actx.directive)
}

// rejectDirective negatively confirms a directive that the current state
// cannot service.
func rejectDirective(e *Engine, actx actionCtx) {
	e.observers.notifyDirective(NegativeConfirm, actx.directive.Tag, actx.directive)
}
