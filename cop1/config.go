// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

import (
	"errors"
	"time"
)

// defines a FOP-1 configuration range (spec §6 Configuration, §3 scalars).
const (
	// T1Initial range [0.1s, 255s], default 10s.
	T1InitialMin = 100 * time.Millisecond
	T1InitialMax = 255 * time.Second

	// TransmissionLimit range [1, 255], default 5.
	TransmissionLimitMin = 1
	TransmissionLimitMax = 255

	// FOPSlidingWindow ("k") range [1, 255], default 1.
	FOPSlidingWindowMin = 1
	FOPSlidingWindowMax = 255
)

// Config defines a FOP-1 configuration. The default is applied for each
// unspecified (zero) value, mirroring the teacher stack's Valid() idiom.
type Config struct {
	// Duration to which the retransmission timer is (re)set.
	// Range [0.1s, 255s], default 10s.
	T1Initial time.Duration

	// Maximum transmissions of the head-of-sent-queue entry before the
	// limit action fires. Range [1, 255], default 5.
	TransmissionLimit int

	// 0 or 1: selects alert-vs-suspend semantics on limit-reached timer
	// expiry (spec §3, §4.2).
	TimeoutType int

	// Bound on outstanding unacknowledged AD frames ("K"). Range [1, 255],
	// default 1.
	FOPSlidingWindow int
}

// Valid applies the CCSDS default for each unspecified value and range
// checks the rest.
func (c *Config) Valid() error {
	if c == nil {
		return errors.New("cop1: nil config")
	}

	if c.T1Initial == 0 {
		c.T1Initial = 10 * time.Second
	} else if c.T1Initial < T1InitialMin || c.T1Initial > T1InitialMax {
		return errors.New("cop1: T1Initial not in [100ms, 255s]")
	}

	if c.TransmissionLimit == 0 {
		c.TransmissionLimit = 5
	} else if c.TransmissionLimit < TransmissionLimitMin || c.TransmissionLimit > TransmissionLimitMax {
		return errors.New("cop1: TransmissionLimit not in [1, 255]")
	}

	if c.TimeoutType != 0 && c.TimeoutType != 1 {
		return errors.New("cop1: TimeoutType must be 0 or 1")
	}

	if c.FOPSlidingWindow == 0 {
		c.FOPSlidingWindow = 1
	} else if c.FOPSlidingWindow < FOPSlidingWindowMin || c.FOPSlidingWindow > FOPSlidingWindowMax {
		return errors.New("cop1: FOPSlidingWindow not in [1, 255]")
	}

	return nil
}

// DefaultConfig returns the CCSDS-default configuration.
func DefaultConfig() Config {
	return Config{
		T1Initial:        10 * time.Second,
		TransmissionLimit: 5,
		TimeoutType:      0,
		FOPSlidingWindow: 1,
	}
}
