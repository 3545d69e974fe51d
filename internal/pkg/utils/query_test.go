package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositiveInt(t *testing.T) {
	assert.Equal(t, 3, PositiveInt("3", 1))
	assert.Equal(t, 1, PositiveInt("0", 1))
	assert.Equal(t, 1, PositiveInt("abc", 1))
	assert.Equal(t, 7, PositiveInt("", 7))
}

func TestNonNegativeInt64(t *testing.T) {
	assert.Equal(t, int64(500000), NonNegativeInt64(" 500000 "))
	assert.Equal(t, int64(0), NonNegativeInt64("-4"))
	assert.Equal(t, int64(0), NonNegativeInt64("1e6"))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 5))
	assert.Equal(t, 1, PageCount(5, 5))
	assert.Equal(t, 2, PageCount(6, 5))
}
