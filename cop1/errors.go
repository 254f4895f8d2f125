// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

import "errors"

// error defined — engine-misuse (programmer error) sentinels. Of these, only
// ErrDisposed is returned by the Engine's methods (from any call that posts a
// stimulus after Dispose); no code path returns the others. A transient
// lower-layer rejection is never represented this way (spec §7).
var (
	ErrUnsupportedFrameType = errors.New("cop1: unsupported frame type for this operation")
	ErrInvalidDirectiveKind = errors.New("cop1: unrecognised directive kind")
	ErrInvalidSuspendState  = errors.New("cop1: invalid suspend state")
	ErrWaitQueueFull        = errors.New("cop1: wait queue already occupied")
	ErrDisposed             = errors.New("cop1: engine has been disposed")
)

// AlertCode names the operational alerts the engine raises via
// Observer.Alert (spec §7). These are observable, not Go errors.
type AlertCode int

const (
	AlertSYNCH AlertCode = iota
	AlertCLCW
	AlertLIMIT
	AlertLOCKOUT
	AlertNNR
	AlertLLIF
	AlertTERM
	AlertT1
)

func (c AlertCode) String() string {
	switch c {
	case AlertSYNCH:
		return "SYNCH"
	case AlertCLCW:
		return "CLCW"
	case AlertLIMIT:
		return "LIMIT"
	case AlertLOCKOUT:
		return "LOCKOUT"
	case AlertNNR:
		return "NN_R"
	case AlertLLIF:
		return "LLIF"
	case AlertTERM:
		return "TERM"
	case AlertT1:
		return "T1"
	default:
		return "UNKNOWN"
	}
}
