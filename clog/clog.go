// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package clog

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// LogProvider RFC5424 log message levels only Critical, Error, Warn and Debug
type LogProvider interface {
	Critical(format string, v ...interface{})
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Level represents the logging severity.
// Ordering: Off < Critical < Error < Warn < Debug
// Setting a level enables logging for that level and all more critical levels.
type Level uint32

const (
	LevelOff Level = iota
	LevelCritical
	LevelError
	LevelWarn
	LevelDebug
)

// Clog internal logging implementation with level control
type Clog struct {
	provider LogProvider
	// level stores the current logging level (atomic)
	level uint32
}

// NewLogger creates a new logger using the specified name.
// Default level is Off (no logs) to preserve previous behavior.
// The default provider is backed by a zap.SugaredLogger so every line
// carries structured output instead of going through the standard log package.
func NewLogger(name string) Clog {
	return Clog{
		newZapProvider(name),
		uint32(LevelOff),
	}
}

// SetLogLevel sets the logging level. LevelOff disables all logs; higher levels allow more verbose logs.
func (sf *Clog) SetLogLevel(lvl Level) {
	atomic.StoreUint32(&sf.level, uint32(lvl))
}

// SetLogProvider set provider provider
func (sf *Clog) SetLogProvider(p LogProvider) {
	if p != nil {
		sf.provider = p
	}
}

func (sf Clog) allowed(required Level) bool {
	return atomic.LoadUint32(&sf.level) >= uint32(required)
}

// Critical Log CRITICAL level message.
func (sf Clog) Critical(format string, v ...interface{}) {
	if sf.allowed(LevelCritical) {
		sf.provider.Critical(format, v...)
	}
}

// Error Log ERROR level message.
func (sf Clog) Error(format string, v ...interface{}) {
	if sf.allowed(LevelError) {
		sf.provider.Error(format, v...)
	}
}

// Warn Log WARN level message.
func (sf Clog) Warn(format string, v ...interface{}) {
	if sf.allowed(LevelWarn) {
		sf.provider.Warn(format, v...)
	}
}

// Debug Log DEBUG level message.
func (sf Clog) Debug(format string, v ...interface{}) {
	if sf.allowed(LevelDebug) {
		sf.provider.Debug(format, v...)
	}
}

// zapProvider is the default LogProvider, backed by zap's sugared logger so
// callers of Debug/Warn/Error/Critical still pass a printf-style format, but
// the underlying sink is structured rather than the standard library logger.
type zapProvider struct {
	sugar *zap.SugaredLogger
}

var _ LogProvider = (*zapProvider)(nil)

func newZapProvider(name string) *zapProvider {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return &zapProvider{sugar: logger.Sugar().Named(name)}
}

// Critical Log CRITICAL level message.
func (sf *zapProvider) Critical(format string, v ...interface{}) {
	sf.sugar.Errorf("[C]: "+format, v...)
}

// Error Log ERROR level message.
func (sf *zapProvider) Error(format string, v ...interface{}) {
	sf.sugar.Errorf(format, v...)
}

// Warn Log WARN level message.
func (sf *zapProvider) Warn(format string, v ...interface{}) {
	sf.sugar.Warnf(format, v...)
}

// Debug Log DEBUG level message.
func (sf *zapProvider) Debug(format string, v ...interface{}) {
	sf.sugar.Debugf(format, v...)
}
