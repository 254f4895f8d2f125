package cop1metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrasen/go-fop1/cop1"
)

func counterValue(t *testing.T, c *prometheus.CounterVec, labelValues ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.WithLabelValues(labelValues...).Write(m))
	return m.GetCounter().GetValue()
}

func TestRecorderCountsAlertsAndTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg, prometheus.Labels{"link": "test"})

	r.Alert(cop1.AlertLIMIT)
	r.Alert(cop1.AlertLIMIT)
	r.StateChanged(cop1.S1Active, cop1.S6Initial)
	r.TransferNotification(cop1.PositiveConfirm, cop1.Frame{NS: 7})
	r.DirectiveNotification(cop1.Accept, cop1.NewDirectiveTag(), cop1.Directive{Kind: cop1.DirResume})

	assert.Equal(t, float64(2), counterValue(t, r.alerts, cop1.AlertLIMIT.String()))
	assert.Equal(t, float64(1), counterValue(t, r.transitions, cop1.S1Active.String(), cop1.S6Initial.String()))
	assert.Equal(t, float64(1), counterValue(t, r.transfers, cop1.PositiveConfirm.String()))
	assert.Equal(t, float64(1), counterValue(t, r.directives, cop1.Accept.String()))
}
