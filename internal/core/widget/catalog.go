package widget

import (
	"context"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

// Catalog lists the demos or documents for the browse screens. A failed load
// keeps the previously listed items.
func (a *App) Catalog(ctx context.Context, kind botapi.ItemKind) ([]botapi.Item, error) {
	screen, res := ScreenBrowse, resDemos
	fetch := a.api.BrowseDemos
	if kind == botapi.KindDoc {
		screen, res = ScreenDocs, resDocs
		fetch = a.api.BrowseDocs
	}

	a.mu.Lock()
	if !a.identity.Resolved() {
		a.mu.Unlock()
		return nil, ErrNoBot
	}
	if !a.tabEnabled(screen) {
		a.mu.Unlock()
		return nil, ErrTabDisabled
	}
	gen := a.gens.next(res)
	id := a.identity.API()
	a.mu.Unlock()

	resp, err := fetch(ctx, id)

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(res, gen) {
		return append([]botapi.Item(nil), a.catalogs[kind]...), ErrSuperseded
	}
	if err != nil {
		utils.LogWarn("catalog fetch failed", map[string]interface{}{
			"bot_id": id.BotID,
			"kind":   kind,
			"error":  err.Error(),
		})
		return append([]botapi.Item(nil), a.catalogs[kind]...), err
	}
	items := botapi.NormalizeItems(resp.Items, kind)
	a.catalogs[kind] = items
	return append([]botapi.Item(nil), items...), nil
}
