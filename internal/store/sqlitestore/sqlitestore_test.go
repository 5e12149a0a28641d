package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", DefaultFile)
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	b, err := s.Get("projects")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, s.Set("projects", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Set("projects", []byte(`[]`)))

	b, err = s.Get("projects")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("projects", []byte(`["kept"]`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	b, err := s.Get("projects")
	require.NoError(t, err)
	assert.Equal(t, `["kept"]`, string(b))
}
