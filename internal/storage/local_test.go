package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProviderSave(t *testing.T) {
	dir := t.TempDir()
	provider := NewLocalProvider(dir)

	filename, err := provider.Save(strings.NewReader("fake-image-bytes"), ".png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, "fake-image-bytes", string(data))
}

func TestLocalProviderSaveUniqueNames(t *testing.T) {
	provider := NewLocalProvider(t.TempDir())

	first, err := provider.Save(strings.NewReader("a"), ".jpg")
	require.NoError(t, err)
	second, err := provider.Save(strings.NewReader("b"), ".jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
