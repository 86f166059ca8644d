package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimmedOrNil(t *testing.T) {
	t.Run("should return nil for nil input", func(t *testing.T) {
		assert.Nil(t, TrimmedOrNil(nil))
	})
	t.Run("should return nil for whitespace only input", func(t *testing.T) {
		assert.Nil(t, TrimmedOrNil(Ptr("   ")))
	})
	t.Run("should trim the value", func(t *testing.T) {
		assert.Equal(t, "Berlin", *TrimmedOrNil(Ptr("  Berlin ")))
	})
}

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(i int) int { return i * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)

	assert.Empty(t, Map([]int{}, func(i int) string { return "" }))
}
