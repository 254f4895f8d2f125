// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

import (
	"fmt"

	"github.com/google/uuid"
)

// DirectiveTag correlates a Directive with the ACCEPT/REJECT and
// POSITIVE_CONFIRM/NEGATIVE_CONFIRM notifications it eventually produces.
// Engine.Directive mints a fresh one with NewDirectiveTag for every
// directive it submits and returns it to the caller.
type DirectiveTag = uuid.UUID

// NewDirectiveTag mints a fresh correlation tag for a directive.
func NewDirectiveTag() DirectiveTag {
	return uuid.New()
}

// DirectiveKind enumerates the directive interface exposed to higher
// procedures (spec data model, Directive).
type DirectiveKind int

const (
	DirInitADWithoutCLCW DirectiveKind = iota
	DirInitADWithCLCW
	DirInitADWithUnlock
	DirInitADWithSetVR
	DirTerminate
	DirResume
	DirSetVS
	DirSetFOPSlidingWindow
	DirSetT1Initial
	DirSetTransmissionLimit
	DirSetTimeoutType
)

func (k DirectiveKind) String() string {
	switch k {
	case DirInitADWithoutCLCW:
		return "INIT_AD_WITHOUT_CLCW"
	case DirInitADWithCLCW:
		return "INIT_AD_WITH_CLCW"
	case DirInitADWithUnlock:
		return "INIT_AD_WITH_UNLOCK"
	case DirInitADWithSetVR:
		return "INIT_AD_WITH_SET_V_R"
	case DirTerminate:
		return "TERMINATE"
	case DirResume:
		return "RESUME"
	case DirSetVS:
		return "SET_V_S"
	case DirSetFOPSlidingWindow:
		return "SET_FOP_SLIDING_WINDOW"
	case DirSetT1Initial:
		return "SET_T1_INITIAL"
	case DirSetTransmissionLimit:
		return "SET_TRANSMISSION_LIMIT"
	case DirSetTimeoutType:
		return "SET_TIMEOUT_TYPE"
	default:
		return fmt.Sprintf("DirectiveKind(%d)", int(k))
	}
}

// Directive is a request from a higher procedure to the FOP-1 engine.
type Directive struct {
	Tag       DirectiveTag
	Kind      DirectiveKind
	Qualifier int
}
