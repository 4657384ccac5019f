package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePalette_lowBitsFirst(t *testing.T) {
	// 0b11100100: shade groups (from bits 1-0 up) are 0,1,2,3
	p := decodePalette(0xE4)
	assert.Equal(t, White, p[0])
	assert.Equal(t, LightGray, p[1])
	assert.Equal(t, DarkGray, p[2])
	assert.Equal(t, Black, p[3])
}
