package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi/botapitest"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/widget"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/repositories"
)

func newService(t *testing.T, repo repositories.SessionRepo) (*SessionService, *botapitest.Server) {
	t.Helper()
	platform := botapitest.NewServer()
	t.Cleanup(platform.Close)
	client := botapi.NewClient(platform.URL, time.Second)
	return NewSessionService(repo, client, widget.Options{}, ""), platform
}

func TestCreateSession(t *testing.T) {
	svc, platform := newService(t, repositories.NewMemorySessionRepo())

	id, state, err := svc.Create(context.Background(), CreateSessionRequest{Alias: "acme"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, widget.StatusReady, state.Status)
	assert.Equal(t, "b1", state.Identity.BotID)
	assert.True(t, state.BrandReady)
	assert.Equal(t, 2, platform.Calls("/bot-settings"))
	assert.Equal(t, 1, platform.Calls("/brand"))
}

func TestCreateSessionInvalidAlias(t *testing.T) {
	svc, platform := newService(t, repositories.NewMemorySessionRepo())
	platform.Handle("/bot-settings", http.StatusOK, map[string]any{"ok": false, "error": "inactive"})

	id, state, err := svc.Create(context.Background(), CreateSessionRequest{Alias: "gone"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, widget.StatusFatal, state.Status)
	assert.Equal(t, "Invalid or inactive alias.", state.FatalError)
	assert.Equal(t, 0, platform.Calls("/brand"))
}

func TestSessionSurvivesRestart(t *testing.T) {
	repo := repositories.NewMemorySessionRepo()
	svc, _ := newService(t, repo)

	id, _, err := svc.Create(context.Background(), CreateSessionRequest{Alias: "acme"})
	require.NoError(t, err)
	app, err := svc.App(id)
	require.NoError(t, err)
	_, err = app.SelectTab(widget.ScreenPrice)
	require.NoError(t, err)
	_, err = svc.Save(id)
	require.NoError(t, err)

	restarted, _ := newService(t, repo)
	state, err := restarted.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, widget.ScreenPrice, state.Screen.Screen)
	assert.Equal(t, "s1", state.Identity.SessionID)
}

func TestUnknownSession(t *testing.T) {
	svc, _ := newService(t, repositories.NewMemorySessionRepo())

	_, err := svc.App("not-a-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.App("5f0c8a51-3a5e-4c55-9d3e-9c1f7a0b7f10")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSweepIdle(t *testing.T) {
	svc, _ := newService(t, repositories.NewMemorySessionRepo())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	old, _, err := svc.Create(context.Background(), CreateSessionRequest{Alias: "acme"})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	fresh, _, err := svc.Create(context.Background(), CreateSessionRequest{Alias: "acme"})
	require.NoError(t, err)

	deleted, err := svc.SweepIdle(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = svc.App(old)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.App(fresh)
	assert.NoError(t, err)
}

func TestSweepKeepsSessionsStillBeingRead(t *testing.T) {
	svc, _ := newService(t, repositories.NewMemorySessionRepo())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	id, _, err := svc.Create(context.Background(), CreateSessionRequest{Alias: "acme"})
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	_, err = svc.Snapshot(id)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	deleted, err := svc.SweepIdle(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	app, err := svc.App(id)
	require.NoError(t, err)
	_, err = app.SelectTab(widget.ScreenPrice)
	require.NoError(t, err)
	state, err := svc.Save(id)
	require.NoError(t, err)
	assert.Equal(t, widget.ScreenPrice, state.Screen.Screen)
}

func TestSweepDropsLiveSessionWithoutRow(t *testing.T) {
	repo := repositories.NewMemorySessionRepo()
	svc, _ := newService(t, repo)

	id, _, err := svc.Create(context.Background(), CreateSessionRequest{Alias: "acme"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(id))

	_, err = svc.SweepIdle(time.Hour)
	require.NoError(t, err)
	_, err = svc.App(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
