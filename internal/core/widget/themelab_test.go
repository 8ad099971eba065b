package widget

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/identity"
)

func TestOverridesWinInAnyOrder(t *testing.T) {
	t.Run("overrides after brand", func(t *testing.T) {
		a := startApp(t, newFake(), Options{}, Flags{Preview: true})
		vars, err := a.ApplyOverrides(map[string]string{"--banner-bg": "#abcdef"})
		require.NoError(t, err)
		v, _ := vars.Get("--banner-bg")
		assert.Equal(t, "#abcdef", v)
	})

	t.Run("overrides before brand", func(t *testing.T) {
		f := newFake()
		a := NewApp(f, Options{})
		require.NoError(t, a.Resolve(context.Background(), identity.Inputs{BotIDFromURL: "b1"}))
		a.flags.Preview = true
		_, err := a.ApplyOverrides(map[string]string{"--banner-bg": "#abcdef"})
		require.NoError(t, err)

		require.NoError(t, a.LoadBot(context.Background()))
		v, _ := a.Theme().Get("--banner-bg")
		assert.Equal(t, "#abcdef", v)
		v, _ = a.Theme().Get("--send-bg")
		assert.Equal(t, "#222222", v)
	})
}

func TestApplyOverridesRequiresFlag(t *testing.T) {
	a := startApp(t, newFake(), Options{}, Flags{})
	_, err := a.ApplyOverrides(map[string]string{"--banner-bg": "#abcdef"})
	assert.ErrorIs(t, err, ErrPreviewDisabled)
	v, _ := a.Theme().Get("--banner-bg")
	assert.Equal(t, "#111111", v)
}

func TestThemeCSS(t *testing.T) {
	a := startApp(t, newFake(), Options{}, Flags{Preview: true})
	_, err := a.ApplyOverrides(map[string]string{"accent": "red", "--bad": "x;}body{"})
	require.NoError(t, err)

	css := a.ThemeCSS()
	assert.True(t, strings.HasPrefix(css, ":root {"))
	assert.Contains(t, css, "--accent: red;")
	assert.Contains(t, css, "--banner-bg: #111111;")
	assert.NotContains(t, css, "body")
}

func TestThemeLabFlow(t *testing.T) {
	f := newFake()
	f.tokens = map[string]any{"--accent": "#ff0000", "radius": "4px"}

	off := startApp(t, f, Options{}, Flags{})
	_, err := off.ThemeLabLogin(context.Background(), "letmein")
	assert.ErrorIs(t, err, ErrThemeLabDisabled)

	a := startApp(t, f, Options{}, Flags{ThemeLab: true})
	_, err = a.LoadClientTokens(context.Background())
	assert.ErrorIs(t, err, ErrThemeLabAuth)

	st, err := a.ThemeLabLogin(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrThemeLabAuth)
	assert.False(t, st.Authenticated)

	st, err = a.ThemeLabLogin(context.Background(), "letmein")
	require.NoError(t, err)
	assert.True(t, st.Authenticated)

	st, err = a.ThemeLabStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Authenticated)

	tokens, err := a.LoadClientTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"--accent": "#ff0000", "--radius": "4px"}, tokens)
	v, _ := a.Theme().Get("--accent")
	assert.Equal(t, "#ff0000", v)

	_, err = a.ApplyOverrides(map[string]string{"--radius": ""})
	require.NoError(t, err)
	require.NoError(t, a.SaveClientTokens(context.Background()))
	assert.Equal(t, map[string]string{"--accent": "#ff0000"}, f.saved)
}

func TestThemeLabLoginTransportError(t *testing.T) {
	f := &loginFailer{fakePlatform: newFake()}
	a := startApp(t, f.fakePlatform, Options{}, Flags{ThemeLab: true})
	a.api = f

	_, err := a.ThemeLabLogin(context.Background(), "letmein")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrThemeLabAuth)
}

type loginFailer struct {
	*fakePlatform
}

func (l *loginFailer) ThemeLabLogin(context.Context, botapi.ThemeLabLoginRequest) (*botapi.ThemeLabLoginResponse, error) {
	return nil, errDown
}
