package widget

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
)

var errDown = errors.New("platform down")

// fakePlatform answers every endpoint from canned values. Hooks, when set,
// replace the canned behaviour for one endpoint.
type fakePlatform struct {
	mu sync.Mutex

	settings    *botapi.BotSettingsResponse
	brand       *botapi.BrandResponse
	brandErr    error
	hal         *botapi.DemoHalResponse
	halErr      error
	video       string
	renderErr   error
	demos       []map[string]any
	docs        []map[string]any
	questions   *botapi.PricingQuestionsResponse
	estimate    *botapi.EstimateResponse
	estimateErr error
	agent       *botapi.AgentResponse
	tokens      map[string]any
	token       string

	onSettings func(botapi.BotSettingsQuery) (*botapi.BotSettingsResponse, error)
	onBrand    func(context.Context) (*botapi.BrandResponse, error)
	onHal      func(context.Context, botapi.DemoHalRequest) (*botapi.DemoHalResponse, error)
	onEstimate func(context.Context, botapi.EstimateRequest) (*botapi.EstimateResponse, error)

	settingsCalls []botapi.BotSettingsQuery
	halCalls      []botapi.DemoHalRequest
	estimateCalls []botapi.EstimateRequest
	calendly      chan botapi.CalendlyEventRequest
	saved         map[string]string
}

func newFake() *fakePlatform {
	return &fakePlatform{
		settings: &botapi.BotSettingsResponse{
			OK: true,
			Bot: botapi.BotPayload{
				ID:                  "b1",
				Alias:               "acme",
				ShowBrowseDemos:     true,
				ShowBrowseDocs:      true,
				ShowScheduleMeeting: true,
				ShowPriceEstimate:   true,
			},
			SessionID: "s1",
			VisitorID: "v1",
		},
		brand: &botapi.BrandResponse{
			OK:      true,
			CSSVars: map[string]any{"--banner-bg": "#111111", "--send-bg": "#222222"},
			Assets:  map[string]any{"logo_url": "https://cdn.example/logo.png"},
		},
		hal:      &botapi.DemoHalResponse{ResponseText: "Here you go."},
		calendly: make(chan botapi.CalendlyEventRequest, 4),
	}
}

func (f *fakePlatform) BotSettings(_ context.Context, q botapi.BotSettingsQuery) (*botapi.BotSettingsResponse, error) {
	f.mu.Lock()
	f.settingsCalls = append(f.settingsCalls, q)
	hook := f.onSettings
	f.mu.Unlock()
	if hook != nil {
		return hook(q)
	}
	return f.settings, nil
}

func (f *fakePlatform) Brand(ctx context.Context, _ botapi.Identity) (*botapi.BrandResponse, error) {
	if f.onBrand != nil {
		return f.onBrand(ctx)
	}
	return f.brand, f.brandErr
}

func (f *fakePlatform) DemoHal(ctx context.Context, req botapi.DemoHalRequest) (*botapi.DemoHalResponse, error) {
	f.mu.Lock()
	f.halCalls = append(f.halCalls, req)
	hook := f.onHal
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, req)
	}
	return f.hal, f.halErr
}

func (f *fakePlatform) RenderVideoIframe(_ context.Context, req botapi.RenderVideoRequest) (*botapi.RenderVideoResponse, error) {
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	return &botapi.RenderVideoResponse{VideoURL: f.video}, nil
}

func (f *fakePlatform) RenderDocIframe(_ context.Context, req botapi.RenderDocRequest) (*botapi.RenderDocResponse, error) {
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	return &botapi.RenderDocResponse{IframeHTML: `<iframe src="` + req.URL + `"></iframe>`}, nil
}

func (f *fakePlatform) BrowseDemos(context.Context, botapi.Identity) (*botapi.CatalogResponse, error) {
	return &botapi.CatalogResponse{OK: true, Items: f.demos}, nil
}

func (f *fakePlatform) BrowseDocs(context.Context, botapi.Identity) (*botapi.CatalogResponse, error) {
	return &botapi.CatalogResponse{OK: true, Items: f.docs}, nil
}

func (f *fakePlatform) PricingQuestions(context.Context, botapi.Identity) (*botapi.PricingQuestionsResponse, error) {
	if f.questions == nil {
		return nil, errDown
	}
	return f.questions, nil
}

func (f *fakePlatform) PricingEstimate(ctx context.Context, req botapi.EstimateRequest) (*botapi.EstimateResponse, error) {
	f.mu.Lock()
	f.estimateCalls = append(f.estimateCalls, req)
	hook := f.onEstimate
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, req)
	}
	return f.estimate, f.estimateErr
}

func (f *fakePlatform) Agent(context.Context, botapi.Identity) (*botapi.AgentResponse, error) {
	if f.agent == nil {
		return nil, errDown
	}
	return f.agent, nil
}

func (f *fakePlatform) CalendlyEvent(_ context.Context, req botapi.CalendlyEventRequest) error {
	f.calendly <- req
	return errDown
}

func (f *fakePlatform) ThemeLabStatus(_ context.Context, _, token string) (*botapi.ThemeLabStatusResponse, error) {
	return &botapi.ThemeLabStatusResponse{OK: true, Enabled: true, Authenticated: botapi.Flag(token != "" && token == f.token)}, nil
}

func (f *fakePlatform) ThemeLabLogin(_ context.Context, req botapi.ThemeLabLoginRequest) (*botapi.ThemeLabLoginResponse, error) {
	if req.Password != "letmein" {
		return nil, &botapi.APIError{Endpoint: "/themelab/login", StatusCode: 200, NotOK: true}
	}
	f.token = "tok-1"
	return &botapi.ThemeLabLoginResponse{OK: true, Token: f.token}, nil
}

func (f *fakePlatform) ClientTokens(_ context.Context, _, token string) (*botapi.ClientTokensResponse, error) {
	if token != f.token {
		return nil, &botapi.APIError{Endpoint: "/brand/client-tokens", StatusCode: 401}
	}
	return &botapi.ClientTokensResponse{OK: true, Tokens: f.tokens}, nil
}

func (f *fakePlatform) SaveClientTokens(_ context.Context, req botapi.SaveClientTokensRequest, token string) error {
	if token != f.token {
		return &botapi.APIError{Endpoint: "/brand/client-tokens/save", StatusCode: 401}
	}
	f.saved = req.Tokens
	return nil
}

func rawOptions(opts ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(opts))
	for _, o := range opts {
		b, _ := json.Marshal(o)
		out = append(out, b)
	}
	return out
}

func requiredFlag(v bool) *botapi.Flag {
	f := botapi.Flag(v)
	return &f
}
