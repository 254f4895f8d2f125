package cop1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSeqDeltaWrapsModulo256(t *testing.T) {
	assert.Equal(t, uint8(1), seqDelta(255, 0))
	assert.Equal(t, uint8(0), seqDelta(5, 5))
	assert.Equal(t, uint8(250), seqDelta(0, 250))
}

// TestWithinWindowMatchesHalfOpenInterval checks withinWindow against a
// direct modulo-256 distance computation for every NN(R)/N(R)/V(S) triple
// rapid can generate, rather than hand-picked examples (spec §3 sliding
// window, §9 sequence arithmetic).
func TestWithinWindowMatchesHalfOpenInterval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nnr := uint8(rapid.IntRange(0, 255).Draw(t, "nnr"))
		vs := uint8(rapid.IntRange(0, 255).Draw(t, "vs"))
		nr := uint8(rapid.IntRange(0, 255).Draw(t, "nr"))

		got := withinWindow(nnr, nr, vs)
		want := seqDelta(nnr, nr) < seqDelta(nnr, vs)
		assert.Equal(t, want, got)
	})
}

// TestSeqLessIsHalfCircleConsistent verifies seqLess agrees with seqDelta
// on the same half-circle convention the sent queue relies on to decide
// which AD entries a given N(R) acknowledges.
func TestSeqLessIsHalfCircleConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := uint8(rapid.IntRange(0, 255).Draw(t, "a"))
		b := uint8(rapid.IntRange(0, 255).Draw(t, "b"))

		got := seqLess(a, b)
		d := seqDelta(a, b)
		want := d != 0 && d < 128
		assert.Equal(t, want, got)
	})
}
