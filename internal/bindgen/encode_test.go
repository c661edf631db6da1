package bindgen

import (
	"encoding/json"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestManifest_Encode(t *testing.T) {
	_, wd := makeRepo(t, true)
	d, err := Build(wd, FlavorEmbedded)
	require.NoError(t, err)

	m := NewManifest(d, OptionsFor(FlavorEmbedded))
	assert.Equal(t, "embedded", m.Flavor)
	assert.True(t, m.RTTI)
	assert.Len(t, m.Fingerprint, 64)

	t.Run("json", func(t *testing.T) {
		data, err := m.Encode("json")
		require.NoError(t, err)
		var got Manifest
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, m, got)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := m.Encode("yml")
		require.NoError(t, err)
		var got Manifest
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, m.Headers, got.Headers)
	})

	t.Run("toml", func(t *testing.T) {
		data, err := m.Encode("toml")
		require.NoError(t, err)
		tree, err := toml.LoadBytes(data)
		require.NoError(t, err)
		assert.Equal(t, "CubbyFlowSharp", tree.Get("module"))
		assert.True(t, strings.Contains(string(data), "Core/Utils/Constants.h"))
	})

	_, err = m.Encode("xml")
	assert.Error(t, err)
}
