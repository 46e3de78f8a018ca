package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	// the post-boot BGP value
	const bgp = 0xFC
	assert.Equal(t, White, Map(bgp, 0))
	assert.Equal(t, Black, Map(bgp, 1))
	assert.Equal(t, Black, Map(bgp, 2))
	assert.Equal(t, Black, Map(bgp, 3))

	// identity palette
	for i := uint8(0); i < 4; i++ {
		assert.Equal(t, Colour(i), Map(0xE4, i))
	}
}

func TestByName(t *testing.T) {
	p, err := ByName("Green")
	require.NoError(t, err)
	assert.Equal(t, Palettes[Green], p)
	assert.Equal(t, color.RGBA{R: 0x0F, G: 0x38, B: 0x0F, A: 0xFF}, p.RGBA(Black))

	_, err = ByName("purple")
	assert.Error(t, err)
}
