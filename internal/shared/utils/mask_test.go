package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "m***@example.com", MaskEmail("maria@example.com"))
	assert.Equal(t, "m***@example.com", MaskEmail("m@example.com"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
}
