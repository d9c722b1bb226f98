package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministicSequence(t *testing.T) {
	g := NewRNG(42)
	first := g.Next()
	second := g.Next()

	replay := NewRNG(42)
	assert.Equal(t, first, replay.Next())
	assert.Equal(t, second, replay.Next())
}

func TestRNGRangeIsUnitInterval(t *testing.T) {
	g := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := g.Next()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRNGNegativeSeedNormalized(t *testing.T) {
	g := NewRNG(-5)
	v := g.Next()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestFactoryBuildsIndependentStreams(t *testing.T) {
	f := Factory{}
	a := f.New(7)
	b := f.New(7)
	assert.Equal(t, a.Next(), b.Next())
}
