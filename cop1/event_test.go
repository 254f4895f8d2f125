package cop1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClassifyCLCWLockoutAlwaysWinsE14(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := CLCW{
			Lockout:    true,
			Wait:       rapid.Bool().Draw(t, "wait"),
			Retransmit: rapid.Bool().Draw(t, "retransmit"),
			NR:         uint8(rapid.IntRange(0, 255).Draw(t, "nr")),
		}
		sc := Scalars{
			VS:                uint8(rapid.IntRange(0, 255).Draw(t, "vs")),
			NNR:               uint8(rapid.IntRange(0, 255).Draw(t, "nnr")),
			TransmissionLimit: rapid.IntRange(1, 255).Draw(t, "limit"),
		}
		assert.Equal(t, E14, classifyCLCW(c, sc))
	})
}

func TestClassifyCLCWAllAckedBranchesOnWaitAndRetransmit(t *testing.T) {
	sc := Scalars{VS: 5, NNR: 5, TransmissionLimit: 3}
	assert.Equal(t, E1, classifyCLCW(CLCW{NR: 5}, sc))

	sc.NNR = 2
	assert.Equal(t, E2, classifyCLCW(CLCW{NR: 5}, sc))

	sc.NNR = 5
	assert.Equal(t, E3, classifyCLCW(CLCW{NR: 5, Wait: true}, sc))
	assert.Equal(t, E4, classifyCLCW(CLCW{NR: 5, Retransmit: true}, sc))
}

func TestClassifyCLCWOutsideWindowIsE13(t *testing.T) {
	sc := Scalars{VS: 10, NNR: 5, TransmissionLimit: 3}
	// N(R) = 200 lies outside the [NN(R), V(S)] window opened by 5..10.
	assert.Equal(t, E13, classifyCLCW(CLCW{NR: 200}, sc))
}

func TestClassifyTimerExpiredLimitAndTimeoutTypeMatrix(t *testing.T) {
	cases := []struct {
		count, limit, timeoutType int
		want                      Event
	}{
		{count: 1, limit: 3, timeoutType: 0, want: E16},
		{count: 1, limit: 3, timeoutType: 1, want: E104},
		{count: 3, limit: 3, timeoutType: 0, want: E17},
		{count: 3, limit: 3, timeoutType: 1, want: E18},
	}
	for _, c := range cases {
		sc := Scalars{TransmissionCount: c.count, TransmissionLimit: c.limit, TimeoutType: c.timeoutType}
		assert.Equal(t, c.want, classifyTimerExpired(sc))
	}
}

func TestClassifyDirectiveResumeMapsSuspendStateToE30Through34(t *testing.T) {
	for ss := 0; ss <= 4; ss++ {
		sc := Scalars{SuspendState: ss}
		got := classifyDirective(Directive{Kind: DirResume}, sc)
		assert.Equal(t, Event(30+ss), got)
	}
}

func TestClassifyLowerLayerCoversAllFrameTypes(t *testing.T) {
	assert.Equal(t, E41, classifyLowerLayer(FrameAD, true))
	assert.Equal(t, E42, classifyLowerLayer(FrameAD, false))
	assert.Equal(t, E43, classifyLowerLayer(FrameBC, true))
	assert.Equal(t, E44, classifyLowerLayer(FrameBC, false))
	assert.Equal(t, E45, classifyLowerLayer(FrameBD, true))
	assert.Equal(t, E46, classifyLowerLayer(FrameBD, false))
}
