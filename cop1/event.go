// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

import "fmt"

// Event is a member of the closed FOP-1 event alphabet E1..E46, E101..E104
// (spec §4.2). E15 and E40 are reserved by CCSDS 232.1-B-2 for conditions
// that do not arise on the sending side modelled here and are intentionally
// absent from this enumeration.
type Event int

const (
	E1 Event = iota + 1
	E2
	E3
	E4
	E5
	E6
	E7
	E8
	E9
	E10
	E11
	E12
	E13
	E14
	_ // E15 reserved, unused on the sending side
	E16
	E17
	E18
	E19
	E20
	E21
	E22
	E23
	E24
	E25
	E26
	E27
	E28
	E29
	E30
	E31
	E32
	E33
	E34
	E35
	E36
	E37
	E38
	E39
	_ // E40 reserved, unused on the sending side
	E41
	E42
	E43
	E44
	E45
	E46
)

const (
	E101 Event = iota + 101
	E102
	E103
	E104
)

var eventDescriptions = map[Event]string{
	E1:  "CLCW all-acked, no retransmit/wait, N(R)=NN(R)",
	E2:  "CLCW all-acked, no retransmit/wait, N(R)!=NN(R)",
	E3:  "CLCW all-acked, no retransmit, wait=1",
	E4:  "CLCW all-acked, retransmit=1",
	E5:  "CLCW some-unacked, no retransmit/wait, N(R)=NN(R)",
	E6:  "CLCW some-unacked, no retransmit/wait, N(R)!=NN(R)",
	E7:  "CLCW some-unacked, no retransmit, wait=1",
	E8:  "CLCW some-unacked, retransmit=1, limit>1, N(R)!=NN(R), wait=0",
	E9:  "CLCW some-unacked, retransmit=1, limit>1, N(R)!=NN(R), wait=1",
	E10: "CLCW some-unacked, retransmit=1, limit>1, N(R)=NN(R), count<limit, wait=0",
	E11: "CLCW some-unacked, retransmit=1, limit>1, N(R)=NN(R), count<limit, wait=1",
	E12: "CLCW some-unacked, retransmit=1, limit>1, N(R)=NN(R), count>=limit, wait=0",
	E13: "CLCW N(R) outside window",
	E14: "CLCW lockout=1",
	E16: "timer expired, count<limit, timeout_type=0",
	E17: "timer expired, count>=limit, timeout_type=0",
	E18: "timer expired, count>=limit, timeout_type=1",
	E19: "transmit AD request, wait queue empty",
	E20: "transmit AD request, wait queue occupied",
	E21: "transmit BD request, bd_out_ready=true",
	E22: "transmit BD request, bd_out_ready=false",
	E23: "directive INIT_AD_WITHOUT_CLCW",
	E24: "directive INIT_AD_WITH_CLCW",
	E25: "directive INIT_AD_WITH_UNLOCK, bc_out_ready=true",
	E26: "directive INIT_AD_WITH_UNLOCK, bc_out_ready=false",
	E27: "directive INIT_AD_WITH_SET_V_R, bc_out_ready=true",
	E28: "directive INIT_AD_WITH_SET_V_R, bc_out_ready=false",
	E29: "directive TERMINATE",
	E30: "directive RESUME, SS=0",
	E31: "directive RESUME, SS=1",
	E32: "directive RESUME, SS=2",
	E33: "directive RESUME, SS=3",
	E34: "directive RESUME, SS=4",
	E35: "directive SET_V_S",
	E36: "directive SET_FOP_SLIDING_WINDOW",
	E37: "directive SET_T1_INITIAL",
	E38: "directive SET_TRANSMISSION_LIMIT",
	E39: "directive SET_TIMEOUT_TYPE",
	E41: "lower layer AD accept",
	E42: "lower layer AD reject",
	E43: "lower layer BC accept",
	E44: "lower layer BC reject",
	E45: "lower layer BD accept",
	E46: "lower layer BD reject",

	E101: "CLCW some-unacked, retransmit=1, limit=1, N(R)!=NN(R)",
	E102: "CLCW some-unacked, retransmit=1, limit=1, N(R)=NN(R)",
	E103: "CLCW some-unacked, retransmit=1, limit>1, N(R)=NN(R), count>=limit, wait=1",
	E104: "timer expired, count<limit, timeout_type=1",
}

func (e Event) String() string {
	if d, ok := eventDescriptions[e]; ok {
		return fmt.Sprintf("E%d(%s)", int(e), d)
	}
	return fmt.Sprintf("E%d", int(e))
}

// Scalars is the read-only snapshot of engine state the classifier
// consults. It mirrors spec §3's engine scalars plus the queue-emptiness
// bits the classifier needs but that otherwise live on the queues
// themselves.
type Scalars struct {
	VS                uint8
	NNR               uint8
	TransmissionCount int
	TransmissionLimit int
	TimeoutType       int
	SuspendState      int
	ADOutReady        bool
	BCOutReady        bool
	BDOutReady        bool
	WaitQueueEmpty    bool
}

// classifyCLCW maps a received CLCW plus scalars onto an event, per spec §4.2.
func classifyCLCW(c CLCW, sc Scalars) Event {
	if c.Lockout {
		return E14
	}
	switch {
	case c.NR == sc.VS: // all AD acknowledged
		switch {
		case !c.Retransmit && !c.Wait:
			if c.NR == sc.NNR {
				return E1
			}
			return E2
		case !c.Retransmit && c.Wait:
			return E3
		default: // retransmit=1
			return E4
		}
	case withinWindow(sc.NNR, c.NR, sc.VS): // some unacked
		switch {
		case !c.Retransmit && !c.Wait:
			if c.NR == sc.NNR {
				return E5
			}
			return E6
		case !c.Retransmit && c.Wait:
			return E7
		case c.Retransmit && sc.TransmissionLimit == 1:
			if c.NR != sc.NNR {
				return E101
			}
			return E102
		default: // retransmit=1, limit>1
			if c.NR != sc.NNR {
				if !c.Wait {
					return E8
				}
				return E9
			}
			// N(R) == NN(R)
			if sc.TransmissionCount < sc.TransmissionLimit {
				if !c.Wait {
					return E10
				}
				return E11
			}
			if !c.Wait {
				return E12
			}
			return E103
		}
	default:
		return E13
	}
}

// classifyTimerExpired maps a timer-expiry stimulus onto an event.
func classifyTimerExpired(sc Scalars) Event {
	if sc.TransmissionCount < sc.TransmissionLimit {
		if sc.TimeoutType == 0 {
			return E16
		}
		return E104
	}
	if sc.TimeoutType == 0 {
		return E17
	}
	return E18
}

// classifyTransmitAD maps a request to transmit an AD frame onto an event.
func classifyTransmitAD(sc Scalars) Event {
	if sc.WaitQueueEmpty {
		return E19
	}
	return E20
}

// classifyTransmitBD maps a request to transmit a BD frame onto an event.
func classifyTransmitBD(sc Scalars) Event {
	if sc.BDOutReady {
		return E21
	}
	return E22
}

// classifyLowerLayer maps a lower-layer accept/reject outcome onto an event.
func classifyLowerLayer(ft FrameType, accepted bool) Event {
	switch ft {
	case FrameAD:
		if accepted {
			return E41
		}
		return E42
	case FrameBC:
		if accepted {
			return E43
		}
		return E44
	default: // FrameBD
		if accepted {
			return E45
		}
		return E46
	}
}

// classifyDirective maps a directive onto an event, per spec §4.2.
// An unrecognised kind maps to 0; Engine.handle negatively confirms such a
// directive without dispatching it.
func classifyDirective(d Directive, sc Scalars) Event {
	switch d.Kind {
	case DirInitADWithoutCLCW:
		return E23
	case DirInitADWithCLCW:
		return E24
	case DirInitADWithUnlock:
		if sc.BCOutReady {
			return E25
		}
		return E26
	case DirInitADWithSetVR:
		if sc.BCOutReady {
			return E27
		}
		return E28
	case DirTerminate:
		return E29
	case DirResume:
		return Event(30 + sc.SuspendState)
	case DirSetVS:
		return E35
	case DirSetFOPSlidingWindow:
		return E36
	case DirSetT1Initial:
		return E37
	case DirSetTransmissionLimit:
		return E38
	case DirSetTimeoutType:
		return E39
	default:
		return 0
	}
}
