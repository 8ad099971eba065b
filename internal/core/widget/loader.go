package widget

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/identity"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

// Resolve runs the identity resolver once. A resolved identity is immutable,
// so calling Resolve again after success is a no-op.
func (a *App) Resolve(ctx context.Context, in identity.Inputs) error {
	a.mu.Lock()
	if a.identity.Resolved() {
		a.mu.Unlock()
		return nil
	}
	a.inputs = in
	a.status = StatusResolving
	a.fatal = ""
	gen := a.gens.next(resResolve)
	a.mu.Unlock()

	res, err := a.resolver.Resolve(ctx, in)

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(resResolve, gen) {
		return ErrSuperseded
	}
	if err != nil {
		a.status = StatusFatal
		a.fatal = identity.ErrInvalidAlias.Error()
		utils.LogWarn("bot resolution failed", map[string]interface{}{
			"path":  res.Path,
			"error": err.Error(),
		})
		return identity.ErrInvalidAlias
	}
	if res.Unresolved() {
		a.status = StatusNoBot
		return nil
	}

	a.identity = res.Identity
	a.settings = res.Settings
	a.status = StatusReady
	utils.LogInfo("bot resolved", map[string]interface{}{
		"bot_id": res.Identity.BotID,
		"path":   res.Path,
	})
	return nil
}

// LoadBot fetches settings and brand in parallel. Brand failure is non-fatal
// and only logged; the first completed brand fetch flips BrandReady for good.
// The returned error is the settings error, if any.
func (a *App) LoadBot(ctx context.Context) error {
	a.mu.Lock()
	if !a.identity.Resolved() {
		a.mu.Unlock()
		return nil
	}
	id := a.identity
	settingsGen := a.gens.next(resSettings)
	brandGen := a.gens.next(resBrand)
	a.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		resp, err := a.api.BotSettings(ctx, botapi.BotSettingsQuery{
			BotID:     id.BotID,
			SessionID: id.SessionID,
			VisitorID: id.VisitorID,
		})
		a.applySettings(settingsGen, resp, err)
		return err
	})
	g.Go(func() error {
		resp, err := a.api.Brand(ctx, id.API())
		a.applyBrand(brandGen, resp, err)
		return nil
	})
	return g.Wait()
}

func (a *App) applySettings(gen uint64, resp *botapi.BotSettingsResponse, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(resSettings, gen) {
		return
	}
	if err != nil {
		utils.LogWarn("settings fetch failed", map[string]interface{}{
			"bot_id": a.identity.BotID,
			"error":  err.Error(),
		})
		return
	}

	next := botapi.SettingsFrom(resp)
	if next.BotID == "" {
		next.BotID = a.identity.BotID
	}
	if next.Alias == "" {
		next.Alias = a.settings.Alias
	}
	a.settings = next
	a.settingsLoaded = true
	a.identity.Backfill(string(resp.SessionID), string(resp.VisitorID))
	a.enforceTabs()
}

func (a *App) applyBrand(gen uint64, resp *botapi.BrandResponse, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.brandReady = true
	if !a.gens.current(resBrand, gen) {
		return
	}
	if err != nil {
		var apiErr *botapi.APIError
		fields := map[string]interface{}{"bot_id": a.identity.BotID, "error": err.Error()}
		if errors.As(err, &apiErr) {
			fields["status"] = apiErr.StatusCode
		}
		utils.LogWarn("brand fetch failed, using default theme", fields)
		return
	}

	brand := botapi.BrandFrom(resp)
	a.theme.Brand = brand.CSSVars
	a.assets = brand.Assets
}

// enforceTabs moves the visitor back to ask when settings disable the current tab.
func (a *App) enforceTabs() {
	if !a.tabEnabled(a.screen.Screen) {
		a.screen = ScreenState{Screen: ScreenAsk}
		a.gens.next(resRender)
	}
}
