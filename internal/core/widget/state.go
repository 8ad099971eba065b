package widget

import (
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/identity"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/theme"
)

// State is a point-in-time copy of an App. It is what the HTTP layer returns
// and what the session store persists.
type State struct {
	Status         Status                            `json:"status"`
	FatalError     string                            `json:"fatal_error,omitempty"`
	Flags          Flags                             `json:"flags"`
	Inputs         identity.Inputs                   `json:"inputs"`
	Identity       identity.BotIdentity              `json:"identity"`
	Settings       botapi.Settings                   `json:"settings"`
	SettingsLoaded bool                              `json:"settings_loaded"`
	Tabs           []Tab                             `json:"tabs"`
	ThemeLayers    theme.Layers                      `json:"theme_layers"`
	Theme          map[string]string                 `json:"theme"`
	Assets         map[string]string                 `json:"assets"`
	BrandReady     bool                              `json:"brand_ready"`
	Screen         ScreenState                       `json:"screen"`
	Answer         AnswerState                       `json:"answer"`
	Pricing        *Pricing                          `json:"pricing,omitempty"`
	Meeting        MeetingState                      `json:"meeting"`
	Catalogs       map[botapi.ItemKind][]botapi.Item `json:"catalogs,omitempty"`
	ThemeLab       ThemeLabState                     `json:"themelab"`
	ThemeLabToken  string                            `json:"themelab_token,omitempty"`
}

// Public strips secrets before a state leaves the server.
func (s State) Public() State {
	s.ThemeLabToken = ""
	s.ThemeLayers.Defaults = nil
	return s
}

// Snapshot copies the App state.
func (a *App) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	catalogs := make(map[botapi.ItemKind][]botapi.Item, len(a.catalogs))
	for k, v := range a.catalogs {
		catalogs[k] = append([]botapi.Item(nil), v...)
	}
	return State{
		Status:         a.status,
		FatalError:     a.fatal,
		Flags:          a.flags,
		Inputs:         a.inputs,
		Identity:       a.identity,
		Settings:       a.settings,
		SettingsLoaded: a.settingsLoaded,
		Tabs:           a.tabsLocked(),
		ThemeLayers: theme.Layers{
			Defaults:  append(theme.Vars(nil), a.theme.Defaults...),
			Brand:     copyMap(a.theme.Brand),
			Overrides: copyMap(a.theme.Overrides),
		},
		Theme:         a.theme.Compose().Map(),
		Assets:        copyMap(a.assets),
		BrandReady:    a.brandReady,
		Screen:        a.screen.clone(),
		Answer:        a.answer.clone(),
		Pricing:       a.pricing.clone(),
		Meeting:       a.meeting,
		Catalogs:      catalogs,
		ThemeLab:      a.themeLab,
		ThemeLabToken: a.themeLab.Token,
	}
}

// Restore loads a persisted state into a fresh App. In-flight markers are
// cleared: the requests that set them belonged to another process.
func (a *App) Restore(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.status = s.Status
	if a.status == "" || a.status == StatusResolving {
		a.status = StatusNoBot
	}
	a.fatal = s.FatalError
	a.flags = s.Flags
	a.inputs = s.Inputs
	a.identity = s.Identity
	a.settings = s.Settings
	a.settingsLoaded = s.SettingsLoaded
	a.theme = theme.NewLayers(a.opts.ThemeDefaults)
	a.theme.Brand = copyMap(s.ThemeLayers.Brand)
	a.theme.Overrides = copyMap(s.ThemeLayers.Overrides)
	a.assets = copyMap(s.Assets)
	a.brandReady = s.BrandReady

	a.screen = s.Screen.clone()
	if !a.screen.canHoldItem() || a.screen.Screen == "" {
		a.screen.Selected = nil
		a.screen.Anchored = false
	}
	if a.screen.Screen == "" {
		a.screen.Screen = ScreenAsk
	}
	if a.screen.Selected != nil {
		a.screen.Selected.Rendering = false
	}

	a.answer = s.Answer.clone()
	if a.answer.Pending {
		a.answer.Pending = false
		a.answer.Failed = true
		a.answer.Text = FallbackAnswer
		a.answer.Items = nil
	}

	a.pricing = s.Pricing.clone()
	if a.pricing != nil {
		if a.pricing.Answers == nil {
			a.pricing.Answers = map[string]Answer{}
		}
		if a.pricing.Phase == PhaseEstimating {
			a.pricing.invalidate()
		}
	}

	a.meeting = s.Meeting
	a.meeting.Loading = false

	a.catalogs = map[botapi.ItemKind][]botapi.Item{}
	for k, v := range s.Catalogs {
		a.catalogs[k] = append([]botapi.Item(nil), v...)
	}

	a.themeLab = s.ThemeLab
	a.themeLab.Token = s.ThemeLabToken
	a.themeLab.Authenticated = a.themeLab.Authenticated && a.themeLab.Token != ""
}
