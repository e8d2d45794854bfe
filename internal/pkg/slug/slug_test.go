package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake_Basic(t *testing.T) {
	assert.Equal(t, "hand-blown-glass-vase", Make("Hand Blown Glass Vase"))
}

func TestMake_StripsPunctuation(t *testing.T) {
	assert.Equal(t, "mugs-cups", Make("Mugs & Cups!"))
}

func TestMake_CollapsesSeparators(t *testing.T) {
	assert.Equal(t, "a-b", Make("  a -- _ b  "))
}

func TestMake_Empty(t *testing.T) {
	assert.Equal(t, "", Make("   "))
}
