package widget

import (
	"context"
	"strings"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

// Screen is a widget tab.
type Screen string

const (
	ScreenAsk     Screen = "ask"
	ScreenBrowse  Screen = "browse"
	ScreenDocs    Screen = "docs"
	ScreenPrice   Screen = "price"
	ScreenMeeting Screen = "meeting"
)

// ParseScreen accepts screen names and a few tab-style aliases.
func ParseScreen(s string) (Screen, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ask":
		return ScreenAsk, nil
	case "browse", "demos", "browse-demos":
		return ScreenBrowse, nil
	case "docs", "documents", "browse-docs":
		return ScreenDocs, nil
	case "price", "pricing":
		return ScreenPrice, nil
	case "meeting", "schedule":
		return ScreenMeeting, nil
	}
	return "", ErrUnknownTab
}

// Tab is a selectable screen with its label.
type Tab struct {
	Screen Screen `json:"screen"`
	Label  string `json:"label"`
}

var allTabs = []Tab{
	{Screen: ScreenAsk, Label: "Ask"},
	{Screen: ScreenBrowse, Label: "Browse Demos"},
	{Screen: ScreenDocs, Label: "Browse Documents"},
	{Screen: ScreenPrice, Label: "Price Estimate"},
	{Screen: ScreenMeeting, Label: "Schedule Meeting"},
}

// SelectedItem is the demo or document overlaid on a screen.
type SelectedItem struct {
	Item       botapi.Item `json:"item"`
	EmbedURL   string      `json:"embed_url,omitempty"`
	IframeHTML string      `json:"iframe_html,omitempty"`
	Rendering  bool        `json:"rendering"`
}

// ScreenState invariant: Selected is nil on price and meeting. Anchored is a
// presentation flag that only exists while an item is open.
type ScreenState struct {
	Screen   Screen        `json:"screen"`
	Selected *SelectedItem `json:"selected_item,omitempty"`
	Anchored bool          `json:"anchored"`
}

func (s ScreenState) canHoldItem() bool {
	return s.Screen != ScreenPrice && s.Screen != ScreenMeeting
}

func (s ScreenState) scope() Scope {
	if s.Selected == nil {
		return Scope{Kind: ScopeStandard}
	}
	if s.Selected.Item.Kind == botapi.KindDoc {
		return Scope{Kind: ScopeDoc, ID: s.Selected.Item.ID}
	}
	return Scope{Kind: ScopeDemo, ID: s.Selected.Item.ID}
}

func (a *App) tabEnabled(s Screen) bool {
	switch s {
	case ScreenAsk:
		return true
	case ScreenBrowse:
		return a.settings.Tabs.Demos
	case ScreenDocs:
		return a.settings.Tabs.Docs
	case ScreenPrice:
		return a.settings.Tabs.Price
	case ScreenMeeting:
		return a.settings.Tabs.Meeting
	}
	return false
}

func (a *App) tabsLocked() []Tab {
	tabs := make([]Tab, 0, len(allTabs))
	for _, t := range allTabs {
		if a.tabEnabled(t.Screen) {
			tabs = append(tabs, t)
		}
	}
	return tabs
}

// Tabs lists the tabs the current settings enable, in display order.
func (a *App) Tabs() []Tab {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tabsLocked()
}

// Screen returns the current screen state.
func (a *App) Screen() ScreenState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen.clone()
}

// SelectTab switches screen and always drops the selected item.
func (a *App) SelectTab(s Screen) (ScreenState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.identity.Resolved() {
		return a.screen.clone(), ErrNoBot
	}
	if !a.tabEnabled(s) {
		return a.screen.clone(), ErrTabDisabled
	}
	a.screen = ScreenState{Screen: s}
	a.gens.next(resRender)
	return a.screen.clone(), nil
}

// OpenItem selects a demo or document on the current screen. The item is
// shown with its raw URL while the platform renders an embeddable version;
// if rendering fails the raw URL stays.
func (a *App) OpenItem(ctx context.Context, item botapi.Item) (ScreenState, error) {
	item.Title = strings.TrimSpace(item.Title)
	item.URL = strings.TrimSpace(item.URL)
	if item.Title == "" && item.URL == "" {
		return a.Screen(), ErrInvalidItem
	}
	if item.Kind != botapi.KindDoc {
		item.Kind = botapi.KindDemo
	}

	a.mu.Lock()
	if !a.identity.Resolved() {
		defer a.mu.Unlock()
		return a.screen.clone(), ErrNoBot
	}
	if !a.screen.canHoldItem() {
		defer a.mu.Unlock()
		return a.screen.clone(), ErrItemNotAllowed
	}
	a.screen.Selected = &SelectedItem{Item: item, EmbedURL: item.URL, Rendering: true}
	a.screen.Anchored = true
	gen := a.gens.next(resRender)
	botID := a.identity.BotID
	a.mu.Unlock()

	var embedURL, iframe string
	var err error
	if item.Kind == botapi.KindDoc {
		var resp *botapi.RenderDocResponse
		resp, err = a.api.RenderDocIframe(ctx, botapi.RenderDocRequest{BotID: botID, DocID: item.ID, Title: item.Title, URL: item.URL})
		if err == nil {
			iframe = strings.TrimSpace(resp.IframeHTML)
		}
	} else {
		var resp *botapi.RenderVideoResponse
		resp, err = a.api.RenderVideoIframe(ctx, botapi.RenderVideoRequest{BotID: botID, DemoID: item.ID, Title: item.Title, VideoURL: item.URL})
		if err == nil {
			embedURL = strings.TrimSpace(resp.VideoURL)
		}
	}
	if err != nil {
		utils.LogWarn("item render failed, falling back to raw url", map[string]interface{}{
			"bot_id": botID,
			"kind":   item.Kind,
			"error":  err.Error(),
		})
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(resRender, gen) || a.screen.Selected == nil {
		return a.screen.clone(), ErrSuperseded
	}
	sel := a.screen.Selected
	sel.Rendering = false
	if embedURL != "" {
		sel.EmbedURL = embedURL
	}
	sel.IframeHTML = iframe
	return a.screen.clone(), nil
}

// CloseItem returns from the item view to the screen it was opened on.
func (a *App) CloseItem() ScreenState {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.screen.Selected = nil
	a.screen.Anchored = false
	a.gens.next(resRender)
	return a.screen.clone()
}

// ReleaseAnchor is the scroll-down transition inside an item view. It reports
// whether the flag changed.
func (a *App) ReleaseAnchor() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen.Selected == nil || !a.screen.Anchored {
		return false
	}
	a.screen.Anchored = false
	return true
}

func (s ScreenState) clone() ScreenState {
	out := s
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	return out
}
