package bindgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadable(t *testing.T) {
	empty := t.TempDir()
	assert.NoError(t, readable(empty), "empty directory")

	full := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(full, "Frame.h"), nil, 0o644))
	assert.NoError(t, readable(full), "non-empty directory")

	assert.Error(t, readable(filepath.Join(empty, "missing")))
}
