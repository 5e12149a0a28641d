package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemstore(t *testing.T) {
	s := New()

	b, err := s.Get("projects")
	require.NoError(t, err)
	assert.Nil(t, b)

	in := []byte(`[]`)
	require.NoError(t, s.Set("projects", in))
	in[0] = 'x'

	b, err = s.Get("projects")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
	assert.Equal(t, 1, s.Writes)
}
