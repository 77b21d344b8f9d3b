package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretRedaction(t *testing.T) {
	t.Parallel()

	s := Secret("hunter2")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", s.GoString())
	assert.Equal(t, "value: [REDACTED]", fmt.Sprintf("value: %s", s))
	assert.Equal(t, "value: [REDACTED]", fmt.Sprintf("value: %v", s))
	assert.Equal(t, "value: [REDACTED]", fmt.Sprintf("value: %#v", s))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	logger := New(true, false)
	assert.NotNil(t, logger)
	assert.True(t, logger.debug)
	assert.False(t, logger.noColor)
}
