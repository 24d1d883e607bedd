package idgen

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequential(t *testing.T) {
	g := NewSequential("box")
	assert.Equal(t, "box_1", g.Generate())
	assert.Equal(t, "box_2", g.Generate())
	assert.Equal(t, "1", NewSequential("").Generate())
}

func TestUUID(t *testing.T) {
	id := NewUUID("box").Generate()
	require.True(t, strings.HasPrefix(id, "box_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "box_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewUUID("box").Generate())
}
