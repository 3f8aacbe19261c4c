package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_GeneratesV7(t *testing.T) {
	id := NewUUIDGenerator().Generate()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRandomHex(t *testing.T) {
	a := RandomHex(4)
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, RandomHex(4))
}
