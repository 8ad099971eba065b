package widget

import (
	"context"
	"strings"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/theme"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

// ThemeLabState is the theme editor session. The token is never serialised
// to clients.
type ThemeLabState struct {
	Enabled       bool   `json:"enabled"`
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"-"`
}

// ThemeLab returns the editor state.
func (a *App) ThemeLab() ThemeLabState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.themeLab
}

func (a *App) themeLabTarget() (string, string, error) {
	if !a.themeLab.Enabled {
		return "", "", ErrThemeLabDisabled
	}
	if !a.identity.Resolved() {
		return "", "", ErrNoBot
	}
	return a.identity.BotID, a.themeLab.Token, nil
}

// ThemeLabStatus asks the platform whether the current token is still valid.
func (a *App) ThemeLabStatus(ctx context.Context) (ThemeLabState, error) {
	a.mu.Lock()
	botID, token, err := a.themeLabTarget()
	a.mu.Unlock()
	if err != nil {
		return a.ThemeLab(), err
	}

	resp, err := a.api.ThemeLabStatus(ctx, botID, token)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		return a.themeLab, err
	}
	a.themeLab.Authenticated = bool(resp.Authenticated) && token != ""
	if !a.themeLab.Authenticated {
		a.themeLab.Token = ""
	}
	return a.themeLab, nil
}

// ThemeLabLogin exchanges the editor password for a bearer token.
func (a *App) ThemeLabLogin(ctx context.Context, password string) (ThemeLabState, error) {
	a.mu.Lock()
	botID, _, err := a.themeLabTarget()
	a.mu.Unlock()
	if err != nil {
		return a.ThemeLab(), err
	}

	resp, err := a.api.ThemeLabLogin(ctx, botapi.ThemeLabLoginRequest{BotID: botID, Password: password})

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil || strings.TrimSpace(resp.Token) == "" {
		a.themeLab.Authenticated = false
		a.themeLab.Token = ""
		if err != nil && !botapi.IsNotOK(err) {
			return a.themeLab, err
		}
		return a.themeLab, ErrThemeLabAuth
	}
	a.themeLab.Authenticated = true
	a.themeLab.Token = strings.TrimSpace(resp.Token)
	utils.LogInfo("theme editor login", map[string]interface{}{"bot_id": botID})
	return a.themeLab, nil
}

// LoadClientTokens replaces the override layer with the saved editor tokens.
func (a *App) LoadClientTokens(ctx context.Context) (map[string]string, error) {
	a.mu.Lock()
	botID, token, err := a.themeLabTarget()
	if err == nil && token == "" {
		err = ErrThemeLabAuth
	}
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	gen := a.gens.next(resTokens)
	a.mu.Unlock()

	resp, err := a.api.ClientTokens(ctx, botID, token)

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(resTokens, gen) {
		return copyMap(a.theme.Overrides), ErrSuperseded
	}
	if err != nil {
		return copyMap(a.theme.Overrides), err
	}
	a.theme.Overrides = theme.Clean(botapi.StringMap(resp.Tokens))
	return copyMap(a.theme.Overrides), nil
}

// SaveClientTokens persists the current override layer for the bot.
func (a *App) SaveClientTokens(ctx context.Context) error {
	a.mu.Lock()
	botID, token, err := a.themeLabTarget()
	if err == nil && token == "" {
		err = ErrThemeLabAuth
	}
	if err != nil {
		a.mu.Unlock()
		return err
	}
	tokens := copyMap(a.theme.Overrides)
	a.mu.Unlock()

	return a.api.SaveClientTokens(ctx, botapi.SaveClientTokensRequest{BotID: botID, Tokens: tokens}, token)
}

// ApplyOverrides merges a live override patch, as sent by the preview bridge
// or the theme editor. Overrides always win over brand values.
func (a *App) ApplyOverrides(patch map[string]string) (theme.Vars, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.flags.Preview && !a.themeLab.Enabled {
		return a.theme.Compose(), ErrPreviewDisabled
	}
	a.theme.MergeOverrides(patch)
	a.gens.next(resTokens)
	return a.theme.Compose(), nil
}

// Theme returns the effective variables.
func (a *App) Theme() theme.Vars {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme.Compose()
}

// ThemeCSS renders the effective variables as a :root block.
func (a *App) ThemeCSS() string {
	return a.Theme().CSS(":root")
}

// BrandReady reports whether the first brand fetch has finished.
func (a *App) BrandReady() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.brandReady
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
