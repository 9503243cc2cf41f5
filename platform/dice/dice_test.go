package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededIsDeterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 100; i++ {
		a1, a2 := a.Roll()
		b1, b2 := b.Roll()
		assert.Equal(t, a1, b1)
		assert.Equal(t, a2, b2)
		assert.True(t, a1 >= 1 && a1 <= 6)
		assert.True(t, a2 >= 1 && a2 <= 6)
	}
}

func TestScripted(t *testing.T) {
	s := &Scripted{Rolls: [][2]int{{3, 4}}, Picks: []int{5}}

	d1, d2 := s.Roll()
	assert.Equal(t, 3, d1)
	assert.Equal(t, 4, d2)
	assert.Equal(t, 1, s.Rolled())
	assert.Equal(t, 2, s.Intn(3))

	d1, d2 = s.Roll()
	assert.Equal(t, 1, d1)
	assert.Equal(t, 1, d2)
	assert.Equal(t, 0, s.Intn(3))
}
