package pair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_SymmetricAcrossDirections(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("b", "a"))
	assert.Equal(t, "a#b", Key("b", "a"))
}

func TestOrder(t *testing.T) {
	lo, hi := Order("01HZZZ", "01HAAA")
	assert.Equal(t, "01HAAA", lo)
	assert.Equal(t, "01HZZZ", hi)

	lo, hi = Order("x", "x")
	assert.Equal(t, "x", lo)
	assert.Equal(t, "x", hi)
}
