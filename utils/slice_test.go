package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnique(t *testing.T) {
	assert.Equal(t, []int32{10, 11, 12}, Unique([]int32{10, 11, 10, 12, 11}))
	assert.Empty(t, Unique([]int32{}))
}

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(n int) int { return n * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]int32{1, 2, 3}, 2))
	assert.False(t, Contains([]int32{1, 2, 3}, 4))
	assert.False(t, Contains(nil, int32(1)))
}
