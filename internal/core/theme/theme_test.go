package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsEmbedded(t *testing.T) {
	d := Defaults()
	require.NotEmpty(t, d)
	assert.Equal(t, "--font-family", d[0].Name)

	v, ok := d.Get("--accent")
	assert.True(t, ok)
	assert.Equal(t, "#2563eb", v)

	// callers get a copy
	d[0].Value = "changed"
	assert.NotEqual(t, "changed", Defaults()[0].Value)
}

func TestComposePrecedence(t *testing.T) {
	defaults := Vars{{Name: "--accent", Value: "blue"}, {Name: "--radius", Value: "4px"}}

	brandFirst := NewLayers(defaults)
	brandFirst.Brand = map[string]string{"--accent": "red", "logo-size": "32px"}
	brandFirst.MergeOverrides(map[string]string{"--accent": "green"})

	overridesFirst := NewLayers(defaults)
	overridesFirst.MergeOverrides(map[string]string{"--accent": "green"})
	overridesFirst.Brand = map[string]string{"--accent": "red", "logo-size": "32px"}

	want := Vars{
		{Name: "--accent", Value: "green"},
		{Name: "--radius", Value: "4px"},
		{Name: "--logo-size", Value: "32px"},
	}
	assert.Equal(t, want, brandFirst.Compose())
	assert.Equal(t, want, overridesFirst.Compose())
}

func TestMergeOverridesRemovesAndRejects(t *testing.T) {
	l := NewLayers(nil)
	l.MergeOverrides(map[string]string{"--a": "1px", "--b": "red; } body { display:none", "bad name": "x"})
	assert.Equal(t, map[string]string{"--a": "1px"}, l.Overrides)

	l.MergeOverrides(map[string]string{"--a": ""})
	assert.Empty(t, l.Overrides)
}

func TestCSS(t *testing.T) {
	css := Vars{{Name: "--a", Value: "1px"}, {Name: "--b", Value: "#fff"}}.CSS("")
	assert.True(t, strings.HasPrefix(css, ":root {\n"))
	assert.Contains(t, css, "  --a: 1px;\n  --b: #fff;\n")
}

func TestLoadDefaultsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zeta: 1px\nalpha: \"#000\"\n"), 0o600))

	vars, err := LoadDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, Vars{{Name: "--zeta", Value: "1px"}, {Name: "--alpha", Value: "#000"}}, vars)

	_, err = Parse([]byte("- a\n- b\n"))
	assert.Error(t, err)
}
