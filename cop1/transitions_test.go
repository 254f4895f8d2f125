package cop1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTerminateReturnsEveryStateToInitial checks that every state that
// defines an E29 (TERMINATE) cell resolves to S6Initial, since "abort
// means abort" regardless of which state the procedure was in (spec §4.4,
// §9 TERMINATE/abort discussion).
func TestTerminateReturnsEveryStateToInitial(t *testing.T) {
	states := []State{S1Active, S2RetransmitWithoutWait, S3RetransmitWithWait, S4InitializingWithoutCLCW, S5InitializingWithCLCWUnlockSetVR}
	for _, s := range states {
		entry, ok := transitionTable[transitionKey{s, E29}]
		if !assert.Truef(t, ok, "missing TERMINATE transition for %v", s) {
			continue
		}
		assert.Equalf(t, S6Initial, entry.next, "TERMINATE from %v should land in S6Initial", s)
	}
}

// TestLockoutReturnsToInitialFromEveryActiveState checks the same for E14
// (CLCW lockout), which CCSDS treats as an unconditional fault regardless
// of the state it is observed in.
func TestLockoutReturnsToInitialFromEveryActiveState(t *testing.T) {
	states := []State{S1Active, S2RetransmitWithoutWait, S3RetransmitWithWait, S4InitializingWithoutCLCW}
	for _, s := range states {
		entry, ok := transitionTable[transitionKey{s, E14}]
		if !assert.Truef(t, ok, "missing lockout transition for %v", s) {
			continue
		}
		assert.Equalf(t, S6Initial, entry.next, "lockout from %v should land in S6Initial", s)
	}
}

// TestUnknownCellIsIgnored confirms a (state, event) pair absent from the
// table is a documented no-op rather than a panic (spec §9).
func TestUnknownCellIsIgnored(t *testing.T) {
	_, ok := transitionTable[transitionKey{S6Initial, E1}]
	assert.False(t, ok)
}
