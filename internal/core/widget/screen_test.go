package widget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/identity"
)

func TestAcmePriceTab(t *testing.T) {
	f := newFake()
	f.settings = &botapi.BotSettingsResponse{OK: true, Bot: botapi.BotPayload{ID: "b1", ShowPriceEstimate: true}}
	a := startApp(t, f, Options{}, Flags{})

	labels := []string{}
	for _, tab := range a.Tabs() {
		labels = append(labels, tab.Label)
	}
	assert.Equal(t, []string{"Ask", "Price Estimate"}, labels)

	// open an item on ask first so there is something to clear
	_, err := a.OpenItem(context.Background(), botapi.Item{ID: "d1", Title: "Tour", URL: "https://v.example/1"})
	require.NoError(t, err)
	require.NotNil(t, a.Screen().Selected)

	s, err := a.SelectTab(ScreenPrice)
	require.NoError(t, err)
	assert.Equal(t, ScreenPrice, s.Screen)
	assert.Nil(t, s.Selected)
	assert.False(t, s.Anchored)
}

func TestSelectTabRules(t *testing.T) {
	f := newFake()
	f.settings = &botapi.BotSettingsResponse{OK: true, Bot: botapi.BotPayload{ID: "b1", ShowBrowseDemos: true}}

	a := NewApp(f, Options{})
	_, err := a.SelectTab(ScreenBrowse)
	assert.ErrorIs(t, err, ErrNoBot)

	require.NoError(t, a.Start(context.Background(), identity.Inputs{BotIDFromURL: "b1"}, Flags{}))
	_, err = a.SelectTab(ScreenMeeting)
	assert.ErrorIs(t, err, ErrTabDisabled)
	assert.Equal(t, ScreenAsk, a.Screen().Screen)

	s, err := a.SelectTab(ScreenBrowse)
	require.NoError(t, err)
	assert.Equal(t, ScreenBrowse, s.Screen)
}

func TestParseScreen(t *testing.T) {
	s, err := ParseScreen(" Pricing ")
	require.NoError(t, err)
	assert.Equal(t, ScreenPrice, s)

	s, err = ParseScreen("documents")
	require.NoError(t, err)
	assert.Equal(t, ScreenDocs, s)

	_, err = ParseScreen("settings")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestOpenItem(t *testing.T) {
	t.Run("demo uses rendered url", func(t *testing.T) {
		f := newFake()
		f.video = "https://player.example/embed/1"
		a := startApp(t, f, Options{}, Flags{})
		_, _ = a.SelectTab(ScreenBrowse)

		s, err := a.OpenItem(context.Background(), botapi.Item{ID: "d1", Title: "Tour", URL: "https://v.example/1"})
		require.NoError(t, err)
		require.NotNil(t, s.Selected)
		assert.Equal(t, ScreenBrowse, s.Screen)
		assert.Equal(t, "https://player.example/embed/1", s.Selected.EmbedURL)
		assert.False(t, s.Selected.Rendering)
		assert.True(t, s.Anchored)
	})

	t.Run("render failure keeps raw url", func(t *testing.T) {
		f := newFake()
		f.renderErr = errDown
		a := startApp(t, f, Options{}, Flags{})

		s, err := a.OpenItem(context.Background(), botapi.Item{ID: "x1", Kind: botapi.KindDoc, Title: "Guide", URL: "https://docs.example/g.pdf"})
		require.NoError(t, err)
		assert.Equal(t, "https://docs.example/g.pdf", s.Selected.EmbedURL)
		assert.Empty(t, s.Selected.IframeHTML)
	})

	t.Run("doc iframe", func(t *testing.T) {
		f := newFake()
		a := startApp(t, f, Options{}, Flags{})

		s, err := a.OpenItem(context.Background(), botapi.Item{ID: "x1", Kind: botapi.KindDoc, URL: "https://docs.example/g.pdf"})
		require.NoError(t, err)
		assert.Contains(t, s.Selected.IframeHTML, "https://docs.example/g.pdf")
	})

	t.Run("not on price or meeting", func(t *testing.T) {
		f := newFake()
		a := startApp(t, f, Options{}, Flags{})
		_, _ = a.SelectTab(ScreenMeeting)

		s, err := a.OpenItem(context.Background(), botapi.Item{Title: "Tour"})
		assert.ErrorIs(t, err, ErrItemNotAllowed)
		assert.Nil(t, s.Selected)
	})

	t.Run("empty item", func(t *testing.T) {
		a := startApp(t, newFake(), Options{}, Flags{})
		_, err := a.OpenItem(context.Background(), botapi.Item{ID: "d1", Title: "  "})
		assert.ErrorIs(t, err, ErrInvalidItem)
	})
}

func TestCloseItemAndAnchor(t *testing.T) {
	a := startApp(t, newFake(), Options{}, Flags{})
	_, _ = a.SelectTab(ScreenDocs)
	_, err := a.OpenItem(context.Background(), botapi.Item{Kind: botapi.KindDoc, Title: "Guide", URL: "https://docs.example/g"})
	require.NoError(t, err)

	assert.True(t, a.ReleaseAnchor())
	assert.False(t, a.ReleaseAnchor())
	assert.False(t, a.Screen().Anchored)

	s := a.CloseItem()
	assert.Nil(t, s.Selected)
	assert.Equal(t, ScreenDocs, s.Screen)
	assert.False(t, a.ReleaseAnchor())
}
