// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

// transitionKey identifies one cell of the FOP-1 transition table: a
// (current state, classified event) pair (spec §4.3 Table 5-1).
type transitionKey struct {
	state State
	event Event
}

// transitionEntry is a transition table cell: the actions to run, in
// order, and the state to move to. A zero next leaves the state unchanged.
type transitionEntry struct {
	actions []action
	next    State
}

// tr builds a transitionEntry inline, keeping the table below a flat data
// literal instead of a chain of per-state-class methods (spec §9: the
// table is a lookup, not virtual dispatch per class).
func tr(next State, actions ...action) transitionEntry {
	return transitionEntry{actions: actions, next: next}
}

// transitionTable is the complete (state, event) -> (actions, next state)
// map driving Engine.dispatch. A cell absent from this table is ignored
// outright: no action runs and the state does not change (spec §9, the
// chosen resolution for CCSDS 232.1-B-3's "ignore or ALERT" choice on
// transition-table cells the standard leaves to the implementer).
var transitionTable = map[transitionKey]transitionEntry{
	// --- S6 Initial: only initialisation directives are meaningful ---
	{S6Initial, E23}: tr(S1Active, initialise),
	{S6Initial, E24}: tr(S4InitializingWithoutCLCW, initialise),
	{S6Initial, E25}: tr(S5InitializingWithCLCWUnlockSetVR, initialise, transmitBC),
	{S6Initial, E26}: tr(0, rejectDirective),
	{S6Initial, E27}: tr(S5InitializingWithCLCWUnlockSetVR, initialise, transmitBC),
	{S6Initial, E28}: tr(0, rejectDirective),
	{S6Initial, E29}: tr(0, confirmDirective),
	{S6Initial, E31}: tr(S1Active, resume, restartTimerAction, confirmDirective),
	{S6Initial, E32}: tr(S2RetransmitWithoutWait, resume, restartTimerAction, confirmDirective),
	{S6Initial, E33}: tr(S3RetransmitWithWait, resume, restartTimerAction, confirmDirective),
	{S6Initial, E36}: tr(0, setSlidingWindow),
	{S6Initial, E37}: tr(0, setT1Initial),
	{S6Initial, E38}: tr(0, setTransmissionLimit),
	{S6Initial, E39}: tr(0, setTimeoutType),

	// --- S5 Initialising with BC (Unlock / Set V(R)) ---
	{S5InitializingWithCLCWUnlockSetVR, E43}: tr(0, completeBC),
	{S5InitializingWithCLCWUnlockSetVR, E44}: tr(S6Initial, confirmBCReject, alertWith(AlertLLIF)),
	{S5InitializingWithCLCWUnlockSetVR, E1}:  tr(S1Active, completeBC, lookForFrame),
	{S5InitializingWithCLCWUnlockSetVR, E5}:  tr(S1Active, completeBC, lookForFrame),
	{S5InitializingWithCLCWUnlockSetVR, E14}: tr(S6Initial, alertWith(AlertLOCKOUT)),
	{S5InitializingWithCLCWUnlockSetVR, E16}: tr(0, restartTimerAction),
	{S5InitializingWithCLCWUnlockSetVR, E17}: tr(S6Initial, alertWith(AlertT1)),
	{S5InitializingWithCLCWUnlockSetVR, E18}: tr(S6Initial, alertWith(AlertT1)),
	{S5InitializingWithCLCWUnlockSetVR, E29}: tr(S6Initial, purgeSentQueue, purgeWaitQueue, cancelTimerAction, confirmDirective),

	// --- S4 Initialising without BC: waiting for the first CLCW ---
	// Spec §4.3: "on receipt of any CLCW: if lockout=0 and N(R)=V(S),
	// transition to S1; else alert and return to S6." E1/E5 already cover
	// the lockout=0/N(R)=V(S) acceptance path; every other reachable CLCW
	// and timer event is the "else" branch.
	{S4InitializingWithoutCLCW, E1}:   tr(S1Active, lookForFrame),
	{S4InitializingWithoutCLCW, E2}:   tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E3}:   tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E4}:   tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E5}:   tr(S1Active, lookForFrame),
	{S4InitializingWithoutCLCW, E6}:   tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E7}:   tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E8}:   tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E9}:   tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E10}:  tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E11}:  tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E12}:  tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E101}: tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E102}: tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E103}: tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E13}:  tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E14}:  tr(S6Initial, alertWith(AlertLOCKOUT)),
	{S4InitializingWithoutCLCW, E16}:  tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E17}:  tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E18}:  tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E104}: tr(S6Initial, alertWith(AlertSYNCH)),
	{S4InitializingWithoutCLCW, E29}:  tr(S6Initial, purgeSentQueue, purgeWaitQueue, cancelTimerAction, confirmDirective),

	// --- S1 Active ---
	{S1Active, E1}: tr(0, removeAckFramesFromSentQueue, cancelTimerAction, lookForFrame),
	{S1Active, E2}: tr(0, removeAckFramesFromSentQueue, cancelTimerAction, lookForFrame),
	{S1Active, E3}: tr(0, alertWith(AlertCLCW)),
	{S1Active, E4}: tr(0, alertWith(AlertCLCW)),
	{S1Active, E5}: tr(0, removeAckFramesFromSentQueue, restartTimerAction, lookForFrame),
	{S1Active, E6}: tr(0, removeAckFramesFromSentQueue, restartTimerAction, lookForFrame),
	{S1Active, E7}: tr(S3RetransmitWithWait, restartTimerAction),

	{S1Active, E8}:   tr(S2RetransmitWithoutWait, removeAckFramesFromSentQueue, initiateRetransmission),
	{S1Active, E9}:   tr(S3RetransmitWithWait, removeAckFramesFromSentQueue, initiateRetransmission),
	{S1Active, E10}:  tr(S2RetransmitWithoutWait, initiateRetransmission),
	{S1Active, E11}:  tr(S3RetransmitWithWait, initiateRetransmission),
	{S1Active, E12}:  tr(S6Initial, alertWith(AlertLIMIT)),
	{S1Active, E101}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S1Active, E102}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S1Active, E103}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S1Active, E13}:  tr(S6Initial, alertWith(AlertNNR)),
	{S1Active, E14}:  tr(S6Initial, alertWith(AlertLOCKOUT)),

	{S1Active, E16}:  tr(S2RetransmitWithoutWait, initiateRetransmission),
	{S1Active, E104}: tr(S2RetransmitWithoutWait, initiateRetransmission),
	{S1Active, E17}:  tr(S6Initial, alertWith(AlertT1)),
	{S1Active, E18}:  tr(S6Initial, suspendWith(1)),

	{S1Active, E19}: tr(0, acceptAndTransmitOrQueue),
	{S1Active, E20}: tr(0, rejectRequest),
	{S1Active, E21}: tr(0, acceptRequest, transmitBD),
	{S1Active, E22}: tr(0, rejectRequest),

	{S1Active, E23}: tr(0, initialise),
	{S1Active, E24}: tr(S4InitializingWithoutCLCW, initialise),
	{S1Active, E25}: tr(S5InitializingWithCLCWUnlockSetVR, initialise, transmitBC),
	{S1Active, E26}: tr(0, rejectDirective),
	{S1Active, E27}: tr(S5InitializingWithCLCWUnlockSetVR, initialise, transmitBC),
	{S1Active, E28}: tr(0, rejectDirective),
	{S1Active, E29}: tr(S6Initial, purgeSentQueue, purgeWaitQueue, cancelTimerAction, confirmDirective),
	{S1Active, E30}: tr(0, confirmDirective),
	{S1Active, E31}: tr(0, resume, restartTimerAction, confirmDirective),
	{S1Active, E32}: tr(0, resume, confirmDirective),
	{S1Active, E33}: tr(0, resume, confirmDirective),
	{S1Active, E34}: tr(0, resume, confirmDirective),
	{S1Active, E35}: tr(0, setVS),
	{S1Active, E36}: tr(0, setSlidingWindow),
	{S1Active, E37}: tr(0, setT1Initial),
	{S1Active, E38}: tr(0, setTransmissionLimit),
	{S1Active, E39}: tr(0, setTimeoutType),

	{S1Active, E41}: tr(0, markADReady, lookForFrame),
	{S1Active, E42}: tr(S2RetransmitWithoutWait, markADReady, initiateRetransmission),
	{S1Active, E43}: tr(0, completeBC),
	{S1Active, E44}: tr(S6Initial, confirmBCReject, alertWith(AlertLLIF)),
	{S1Active, E45}: tr(0, markBDReady),
	{S1Active, E46}: tr(0, markBDReady, alertWith(AlertLLIF)),

	// --- S2 Retransmit Without Wait ---
	{S2RetransmitWithoutWait, E1}: tr(S1Active, removeAckFramesFromSentQueue, cancelTimerAction, lookForFrame),
	{S2RetransmitWithoutWait, E2}: tr(S1Active, removeAckFramesFromSentQueue, cancelTimerAction, lookForFrame),
	{S2RetransmitWithoutWait, E5}: tr(S1Active, removeAckFramesFromSentQueue, restartTimerAction, lookForFrame),
	{S2RetransmitWithoutWait, E6}: tr(S1Active, removeAckFramesFromSentQueue, restartTimerAction, lookForFrame),
	{S2RetransmitWithoutWait, E7}: tr(S3RetransmitWithWait, restartTimerAction),

	{S2RetransmitWithoutWait, E8}:   tr(0, removeAckFramesFromSentQueue, initiateRetransmission),
	{S2RetransmitWithoutWait, E9}:   tr(S3RetransmitWithWait, removeAckFramesFromSentQueue, initiateRetransmission),
	{S2RetransmitWithoutWait, E10}:  tr(0, initiateRetransmission),
	{S2RetransmitWithoutWait, E11}:  tr(S3RetransmitWithWait, initiateRetransmission),
	{S2RetransmitWithoutWait, E12}:  tr(S6Initial, alertWith(AlertLIMIT)),
	{S2RetransmitWithoutWait, E101}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S2RetransmitWithoutWait, E102}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S2RetransmitWithoutWait, E103}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S2RetransmitWithoutWait, E13}:  tr(S6Initial, alertWith(AlertNNR)),
	{S2RetransmitWithoutWait, E14}:  tr(S6Initial, alertWith(AlertLOCKOUT)),

	{S2RetransmitWithoutWait, E16}:  tr(0, initiateRetransmission),
	{S2RetransmitWithoutWait, E104}: tr(0, initiateRetransmission),
	{S2RetransmitWithoutWait, E17}:  tr(S6Initial, alertWith(AlertT1)),
	{S2RetransmitWithoutWait, E18}:  tr(S6Initial, suspendWith(2)),

	{S2RetransmitWithoutWait, E19}: tr(0, acceptAndTransmitOrQueue),
	{S2RetransmitWithoutWait, E20}: tr(0, rejectRequest),
	{S2RetransmitWithoutWait, E21}: tr(0, acceptRequest, transmitBD),
	{S2RetransmitWithoutWait, E22}: tr(0, rejectRequest),

	{S2RetransmitWithoutWait, E29}: tr(S6Initial, purgeSentQueue, purgeWaitQueue, cancelTimerAction, confirmDirective),
	{S2RetransmitWithoutWait, E35}: tr(0, setVS),
	{S2RetransmitWithoutWait, E36}: tr(0, setSlidingWindow),
	{S2RetransmitWithoutWait, E37}: tr(0, setT1Initial),
	{S2RetransmitWithoutWait, E38}: tr(0, setTransmissionLimit),
	{S2RetransmitWithoutWait, E39}: tr(0, setTimeoutType),

	{S2RetransmitWithoutWait, E41}: tr(0, markADReady, lookForFrame),
	{S2RetransmitWithoutWait, E42}: tr(0, markADReady, retransmitNextAction),
	{S2RetransmitWithoutWait, E43}: tr(0, completeBC),
	{S2RetransmitWithoutWait, E44}: tr(S6Initial, confirmBCReject, alertWith(AlertLLIF)),
	{S2RetransmitWithoutWait, E45}: tr(0, markBDReady),
	{S2RetransmitWithoutWait, E46}: tr(0, markBDReady, alertWith(AlertLLIF)),

	// --- S3 Retransmit With Wait ---
	{S3RetransmitWithWait, E1}: tr(S1Active, removeAckFramesFromSentQueue, cancelTimerAction, lookForFrame),
	{S3RetransmitWithWait, E2}: tr(S1Active, removeAckFramesFromSentQueue, cancelTimerAction, lookForFrame),
	{S3RetransmitWithWait, E5}: tr(S1Active, removeAckFramesFromSentQueue, restartTimerAction, lookForFrame),
	{S3RetransmitWithWait, E6}: tr(S1Active, removeAckFramesFromSentQueue, restartTimerAction, lookForFrame),
	{S3RetransmitWithWait, E7}: tr(0, restartTimerAction),

	{S3RetransmitWithWait, E8}:   tr(S2RetransmitWithoutWait, removeAckFramesFromSentQueue, initiateRetransmission),
	{S3RetransmitWithWait, E9}:   tr(0, removeAckFramesFromSentQueue, restartTimerAction),
	{S3RetransmitWithWait, E10}:  tr(S2RetransmitWithoutWait, initiateRetransmission),
	{S3RetransmitWithWait, E11}:  tr(0, restartTimerAction),
	{S3RetransmitWithWait, E12}:  tr(S6Initial, alertWith(AlertLIMIT)),
	{S3RetransmitWithWait, E101}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S3RetransmitWithWait, E102}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S3RetransmitWithWait, E103}: tr(S6Initial, alertWith(AlertLIMIT)),
	{S3RetransmitWithWait, E13}:  tr(S6Initial, alertWith(AlertNNR)),
	{S3RetransmitWithWait, E14}:  tr(S6Initial, alertWith(AlertLOCKOUT)),

	{S3RetransmitWithWait, E16}:  tr(0, restartTimerAction),
	{S3RetransmitWithWait, E104}: tr(0, restartTimerAction),
	{S3RetransmitWithWait, E17}:  tr(S6Initial, alertWith(AlertT1)),
	{S3RetransmitWithWait, E18}:  tr(S6Initial, suspendWith(3)),

	{S3RetransmitWithWait, E19}: tr(0, acceptAndTransmitOrQueue),
	{S3RetransmitWithWait, E20}: tr(0, rejectRequest),
	{S3RetransmitWithWait, E21}: tr(0, acceptRequest, transmitBD),
	{S3RetransmitWithWait, E22}: tr(0, rejectRequest),

	{S3RetransmitWithWait, E29}: tr(S6Initial, purgeSentQueue, purgeWaitQueue, cancelTimerAction, confirmDirective),
	{S3RetransmitWithWait, E35}: tr(0, setVS),
	{S3RetransmitWithWait, E36}: tr(0, setSlidingWindow),
	{S3RetransmitWithWait, E37}: tr(0, setT1Initial),
	{S3RetransmitWithWait, E38}: tr(0, setTransmissionLimit),
	{S3RetransmitWithWait, E39}: tr(0, setTimeoutType),

	{S3RetransmitWithWait, E41}: tr(0, markADReady, lookForFrame),
	{S3RetransmitWithWait, E42}: tr(0, markADReady, restartTimerAction),
	{S3RetransmitWithWait, E43}: tr(0, completeBC),
	{S3RetransmitWithWait, E44}: tr(S6Initial, confirmBCReject, alertWith(AlertLLIF)),
	{S3RetransmitWithWait, E45}: tr(0, markBDReady),
	{S3RetransmitWithWait, E46}: tr(0, markBDReady, alertWith(AlertLLIF)),
}
