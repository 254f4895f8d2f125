// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

import "fmt"

// State is one of the six FOP-1 states (CCSDS 232.1-B-2 §5).
type State int

const (
	S1Active State = iota + 1
	S2RetransmitWithoutWait
	S3RetransmitWithWait
	S4InitializingWithoutCLCW
	S5InitializingWithCLCWUnlockSetVR
	S6Initial
)

var stateNames = map[State]string{
	S1Active:                          "S1(Active)",
	S2RetransmitWithoutWait:           "S2(Retransmit-without-wait)",
	S3RetransmitWithWait:              "S3(Retransmit-with-wait)",
	S4InitializingWithoutCLCW:         "S4(Initializing-without-CLCW)",
	S5InitializingWithCLCWUnlockSetVR: "S5(Initializing-with-CLCW/Unlock/SetV(R))",
	S6Initial:                         "S6(Initial)",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}
