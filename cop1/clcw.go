// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

import "fmt"

// COP1 is the only cop_in_effect value the engine consumes; a CLCW that
// explicitly reports a different procedure in effect is silently discarded
// by Engine.ReportCLCW. CopInEffect's zero value is treated as "not set"
// rather than as a foreign procedure, so callers that never populate it
// are not penalised.
const COP1 = 1

// CLCW is the receiver's feedback report (Communications Link Control Word),
// decoded by the virtual-channel framer and handed to the engine. Field
// widths follow CCSDS 232.0: N(R) and report_value are 8-bit, vc_id is a
// small virtual-channel identifier.
type CLCW struct {
	CopInEffect int
	VCID        uint8
	Lockout     bool
	Wait        bool
	Retransmit  bool
	NR          uint8
	ReportValue uint8
}

func (c CLCW) String() string {
	return fmt.Sprintf("CLCW[vc=%d lockout=%t wait=%t retransmit=%t N(R)=%d report=%d]",
		c.VCID, c.Lockout, c.Wait, c.Retransmit, c.NR, c.ReportValue)
}

// seqDelta returns (b - a) mod 256, the forward distance from a to b around
// the 8-bit sequence-number circle.
func seqDelta(a, b uint8) uint8 {
	return b - a
}

// withinWindow reports whether nr lies in the half-open window [nnr, vs) on
// the 8-bit sequence-number circle, i.e. whether (nr-nnr) mod 256 is less
// than (vs-nnr) mod 256. A window of width zero (vs==nnr) never contains
// any nr.
func withinWindow(nnr, nr, vs uint8) bool {
	return seqDelta(nnr, nr) < seqDelta(nnr, vs)
}
