// Package widget holds the "Ask the Assistant" application state and the
// coordinators that drive it. All state lives in one App value and changes
// only through its methods, so invariants are enforced in one place.
//
// Network calls run without holding the App lock. Each call takes a
// generation number for its resource before it starts and applies its result
// only if that number is still the latest, so a superseded response is dropped.
package widget

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/identity"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/theme"
)

var (
	ErrNoBot            = errors.New("no bot selected")
	ErrEmptyQuestion    = errors.New("question is empty")
	ErrTabDisabled      = errors.New("tab is not enabled for this bot")
	ErrUnknownTab       = errors.New("unknown tab")
	ErrItemNotAllowed   = errors.New("items cannot be opened on this screen")
	ErrInvalidItem      = errors.New("item needs a title or url")
	ErrSuperseded       = errors.New("request superseded by a newer one")
	ErrPreviewDisabled  = errors.New("theme preview is not enabled for this session")
	ErrThemeLabDisabled = errors.New("theme editor is not enabled for this session")
	ErrThemeLabAuth     = errors.New("theme editor login required")
	ErrNoCalendarLink   = errors.New("no calendar link configured")
)

// Platform is everything the widget asks of the remote bot platform.
// *botapi.Client implements it.
type Platform interface {
	identity.SettingsFetcher
	Brand(ctx context.Context, id botapi.Identity) (*botapi.BrandResponse, error)
	DemoHal(ctx context.Context, req botapi.DemoHalRequest) (*botapi.DemoHalResponse, error)
	RenderVideoIframe(ctx context.Context, req botapi.RenderVideoRequest) (*botapi.RenderVideoResponse, error)
	RenderDocIframe(ctx context.Context, req botapi.RenderDocRequest) (*botapi.RenderDocResponse, error)
	BrowseDemos(ctx context.Context, id botapi.Identity) (*botapi.CatalogResponse, error)
	BrowseDocs(ctx context.Context, id botapi.Identity) (*botapi.CatalogResponse, error)
	PricingQuestions(ctx context.Context, id botapi.Identity) (*botapi.PricingQuestionsResponse, error)
	PricingEstimate(ctx context.Context, req botapi.EstimateRequest) (*botapi.EstimateResponse, error)
	Agent(ctx context.Context, id botapi.Identity) (*botapi.AgentResponse, error)
	CalendlyEvent(ctx context.Context, req botapi.CalendlyEventRequest) error
	ThemeLabStatus(ctx context.Context, botID, token string) (*botapi.ThemeLabStatusResponse, error)
	ThemeLabLogin(ctx context.Context, req botapi.ThemeLabLoginRequest) (*botapi.ThemeLabLoginResponse, error)
	ClientTokens(ctx context.Context, botID, token string) (*botapi.ClientTokensResponse, error)
	SaveClientTokens(ctx context.Context, req botapi.SaveClientTokensRequest, token string) error
}

const (
	DefaultAskTimeout  = 30 * time.Second
	DefaultRevealDelay = 450 * time.Millisecond
	telemetryTimeout   = 10 * time.Second
)

// Options tunes an App. Zero values fall back to the defaults above.
type Options struct {
	AskTimeout    time.Duration
	RevealDelay   time.Duration
	Debug         bool
	ThemeDefaults theme.Vars
	Now           func() time.Time
}

func (o Options) withDefaults() Options {
	if o.AskTimeout <= 0 {
		o.AskTimeout = DefaultAskTimeout
	}
	if o.RevealDelay <= 0 {
		o.RevealDelay = DefaultRevealDelay
	}
	if o.ThemeDefaults == nil {
		o.ThemeDefaults = theme.Defaults()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Status is the bot resolution status.
type Status string

const (
	StatusNoBot     Status = "no_bot"
	StatusResolving Status = "resolving"
	StatusReady     Status = "ready"
	StatusFatal     Status = "fatal"
)

// Flags come from the widget URL (themelab=1, preview=1).
type Flags struct {
	ThemeLab bool `json:"themelab"`
	Preview  bool `json:"preview"`
}

type resource string

const (
	resResolve  resource = "resolve"
	resSettings resource = "settings"
	resBrand    resource = "brand"
	resAsk      resource = "ask"
	resRender   resource = "render"
	resPricing  resource = "pricing"
	resEstimate resource = "estimate"
	resAgent    resource = "agent"
	resDemos    resource = "catalog_demo"
	resDocs     resource = "catalog_doc"
	resTokens   resource = "tokens"
)

// generations hands out monotonic sequence numbers per resource.
type generations map[resource]uint64

func (g generations) next(r resource) uint64 {
	g[r]++
	return g[r]
}

func (g generations) current(r resource, n uint64) bool {
	return g[r] == n
}

// App is the whole widget state for one visitor.
type App struct {
	mu       sync.Mutex
	api      Platform
	resolver *identity.Resolver
	opts     Options

	inputs         identity.Inputs
	flags          Flags
	status         Status
	fatal          string
	identity       identity.BotIdentity
	settings       botapi.Settings
	settingsLoaded bool
	theme          theme.Layers
	assets         map[string]string
	brandReady     bool
	screen         ScreenState
	answer         AnswerState
	pricing        *Pricing
	meeting        MeetingState
	catalogs       map[botapi.ItemKind][]botapi.Item
	themeLab       ThemeLabState

	gens generations
}

// NewApp creates an App with no bot selected.
func NewApp(api Platform, opts Options) *App {
	opts = opts.withDefaults()
	return &App{
		api:      api,
		resolver: identity.NewResolver(api),
		opts:     opts,
		status:   StatusNoBot,
		theme:    theme.NewLayers(opts.ThemeDefaults),
		assets:   map[string]string{},
		screen:   ScreenState{Screen: ScreenAsk},
		catalogs: map[botapi.ItemKind][]botapi.Item{},
		gens:     generations{},
	}
}

// Start resolves the bot and, when one is found, loads its settings and brand.
// Only the fatal resolution error is returned; load failures stay in state.
func (a *App) Start(ctx context.Context, in identity.Inputs, flags Flags) error {
	a.mu.Lock()
	a.flags = flags
	a.themeLab.Enabled = flags.ThemeLab
	a.mu.Unlock()

	if err := a.Resolve(ctx, in); err != nil {
		return err
	}
	if !a.Resolved() {
		return nil
	}
	_ = a.LoadBot(ctx)
	return nil
}

// Resolved reports whether a bot is selected.
func (a *App) Resolved() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity.Resolved()
}

// Identity returns the resolved bot identity.
func (a *App) Identity() identity.BotIdentity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity
}

func (a *App) now() time.Time {
	return a.opts.Now()
}

// debugPayload keeps the answer debug blob only when debug is on.
func (a *App) debugPayload(raw json.RawMessage) json.RawMessage {
	if !a.opts.Debug || len(raw) == 0 {
		return nil
	}
	return raw
}
