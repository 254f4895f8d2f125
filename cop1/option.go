// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

import "github.com/marrasen/go-fop1/clog"

// OutputFunc is the lower-layer sink: it hands a frame down for transmission
// and reports whether the lower layer accepted it for sending (spec §4.5).
// The shim worker calls it serially on its own goroutine, so the engine
// worker keeps processing stimuli while it runs; frames handed down in the
// meantime wait in a 16-frame buffer, and the engine worker blocks once that
// buffer is full.
type OutputFunc func(Frame) bool

// EngineOption configures a new Engine. Builder-chain usage mirrors the
// teacher stack's ClientOption pattern, adapted to FOP-1's single output
// sink and its own Config type (no asdu.Params, no TCP dial options — the
// wire transport below OutputFunc is out of scope here).
type EngineOption struct {
	config Config
	output OutputFunc
	logger clog.Clog
}

// NewOption returns an EngineOption with DefaultConfig(), a no-op output
// sink (rejects every frame until SetOutput is called) and a disabled
// logger.
func NewOption() *EngineOption {
	return &EngineOption{
		config: DefaultConfig(),
		output: func(Frame) bool { return false },
		logger: clog.NewLogger("cop1"),
	}
}

// SetConfig sets the engine configuration. An invalid config falls back to
// DefaultConfig(), matching the teacher stack's SetConfig idiom.
func (o *EngineOption) SetConfig(cfg Config) *EngineOption {
	if err := cfg.Valid(); err != nil {
		o.config = DefaultConfig()
	} else {
		o.config = cfg
	}
	return o
}

// SetOutput sets the lower-layer sink. A nil fn is ignored.
func (o *EngineOption) SetOutput(fn OutputFunc) *EngineOption {
	if fn != nil {
		o.output = fn
	}
	return o
}

// SetLogProvider installs a custom LogProvider behind the engine's logger.
func (o *EngineOption) SetLogProvider(p clog.LogProvider) *EngineOption {
	o.logger.SetLogProvider(p)
	return o
}

// SetLogLevel sets the engine logger's verbosity.
func (o *EngineOption) SetLogLevel(lvl clog.Level) *EngineOption {
	o.logger.SetLogLevel(lvl)
	return o
}
