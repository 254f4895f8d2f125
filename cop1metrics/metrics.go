// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

// Package cop1metrics adapts a cop1.Engine's notifications onto Prometheus
// metrics: an Observer implementation that a caller registers with an
// Engine the same way it would register any other Observer (spec §6
// Observer interface, §7 Error handling / alerts).
package cop1metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/marrasen/go-fop1/cop1"
)

// Recorder is a cop1.Observer that exports FOP-1 activity as Prometheus
// metrics. Construct one with NewRecorder and register it on every Engine
// whose activity should be exported; pass a distinct "link" constant label
// per engine instance if more than one is registered against the same
// registry.
type Recorder struct {
	transfers    *prometheus.CounterVec
	directives   *prometheus.CounterVec
	alerts       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	lastNNR     prometheus.Gauge
}

var _ cop1.Observer = (*Recorder)(nil)

// NewRecorder builds a Recorder and registers its collectors with reg. A
// nil reg falls back to prometheus.DefaultRegisterer, mirroring the
// promauto convention used elsewhere in the pack.
func NewRecorder(reg prometheus.Registerer, constLabels prometheus.Labels) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fop1_transfer_notifications_total",
			Help:        "Count of TransferNotification callbacks by status.",
			ConstLabels: constLabels,
		}, []string{"status"}),
		directives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fop1_directive_notifications_total",
			Help:        "Count of DirectiveNotification callbacks by status.",
			ConstLabels: constLabels,
		}, []string{"status"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fop1_alerts_total",
			Help:        "Count of raised alerts by code.",
			ConstLabels: constLabels,
		}, []string{"code"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fop1_state_transitions_total",
			Help:        "Count of state transitions by (from, to) state pair.",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		lastNNR: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "fop1_nn_r",
			Help:        "N(R) implied by the last positively confirmed AD frame (its N(S)+1, mod 256).",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(r.transfers, r.directives, r.alerts, r.transitions, r.lastNNR)
	return r
}

// TransferNotification implements cop1.Observer.
func (r *Recorder) TransferNotification(status cop1.NotificationStatus, f cop1.Frame) {
	r.transfers.WithLabelValues(status.String()).Inc()
	if status == cop1.PositiveConfirm && f.Type == cop1.FrameAD {
		r.lastNNR.Set(float64(f.NS + 1))
	}
}

// DirectiveNotification implements cop1.Observer.
func (r *Recorder) DirectiveNotification(status cop1.NotificationStatus, _ cop1.DirectiveTag, d cop1.Directive) {
	r.directives.WithLabelValues(status.String()).Inc()
	_ = d
}

// Alert implements cop1.Observer.
func (r *Recorder) Alert(code cop1.AlertCode) {
	r.alerts.WithLabelValues(code.String()).Inc()
}

// StateChanged implements cop1.Observer.
func (r *Recorder) StateChanged(previous, current cop1.State) {
	r.transitions.WithLabelValues(previous.String(), current.String()).Inc()
}
