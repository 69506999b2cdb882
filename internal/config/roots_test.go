package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoots(t *testing.T) {
	t.Run("loads a valid roots file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.yaml")
		content := `roots:
  - path: corpus/transcripts
    type: transcript
  - path: corpus/misc
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		roots, err := LoadRoots(path)
		require.NoError(t, err)
		require.Len(t, roots.Roots, 2)
		assert.Equal(t, "corpus/transcripts", roots.Roots[0].Path)
		assert.Equal(t, "transcript", roots.Roots[0].Type)
		assert.Empty(t, roots.Roots[1].Type)
	})

	t.Run("fails for a missing file", func(t *testing.T) {
		_, err := LoadRoots(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("fails for malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.yaml")
		require.NoError(t, os.WriteFile(path, []byte("roots: [unclosed"), 0o644))

		_, err := LoadRoots(path)
		assert.Error(t, err)
	})

	t.Run("fails for an unknown type tag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.yaml")
		content := `roots:
  - path: corpus/pods
    type: podcast
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadRoots(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "podcast")
	})

	t.Run("fails for an empty roots list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.yaml")
		require.NoError(t, os.WriteFile(path, []byte("roots: []"), 0o644))

		_, err := LoadRoots(path)
		assert.Error(t, err)
	})
}

func TestSaveRoots(t *testing.T) {
	t.Run("round-trips the default scaffold", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "corpus.yaml")

		require.NoError(t, SaveRoots(path, DefaultRoots()))

		loaded, err := LoadRoots(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultRoots(), loaded)
	})
}
