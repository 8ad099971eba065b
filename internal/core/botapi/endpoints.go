package botapi

import (
	"context"
	"net/http"
	"net/url"
)

// BotSettingsQuery selects a bot either by id or by alias. BotID wins when both are set.
type BotSettingsQuery struct {
	BotID     string
	Alias     string
	SessionID string
	VisitorID string
}

// BotSettings looks a bot up by id or alias.
func (c *Client) BotSettings(ctx context.Context, q BotSettingsQuery) (*BotSettingsResponse, error) {
	values := Identity{SessionID: q.SessionID, VisitorID: q.VisitorID}.query()
	if q.BotID != "" {
		values.Set("bot_id", q.BotID)
	} else if q.Alias != "" {
		values.Set("alias", q.Alias)
	}

	var resp BotSettingsResponse
	if err := c.get(ctx, "/bot-settings", values, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Brand fetches the bot theme.
func (c *Client) Brand(ctx context.Context, id Identity) (*BrandResponse, error) {
	var resp BrandResponse
	if err := c.get(ctx, "/brand", id.query(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DemoHal asks a question. No per-call limit applies; bound it with ctx.
func (c *Client) DemoHal(ctx context.Context, req DemoHalRequest) (*DemoHalResponse, error) {
	var resp DemoHalResponse
	if err := c.do(ctx, 0, http.MethodPost, "/demo-hal", nil, req, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RenderVideoIframe returns the embeddable url for a demo.
func (c *Client) RenderVideoIframe(ctx context.Context, req RenderVideoRequest) (*RenderVideoResponse, error) {
	var resp RenderVideoResponse
	if err := c.post(ctx, "/render-video-iframe", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RenderDocIframe returns the iframe markup for a document.
func (c *Client) RenderDocIframe(ctx context.Context, req RenderDocRequest) (*RenderDocResponse, error) {
	var resp RenderDocResponse
	if err := c.post(ctx, "/render-doc-iframe", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BrowseDemos lists the bot demos.
func (c *Client) BrowseDemos(ctx context.Context, id Identity) (*CatalogResponse, error) {
	var resp CatalogResponse
	if err := c.get(ctx, "/browse-demos", id.query(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BrowseDocs lists the bot documents.
func (c *Client) BrowseDocs(ctx context.Context, id Identity) (*CatalogResponse, error) {
	var resp CatalogResponse
	if err := c.get(ctx, "/browse-docs", id.query(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PricingQuestions fetches the pricing questionnaire.
func (c *Client) PricingQuestions(ctx context.Context, id Identity) (*PricingQuestionsResponse, error) {
	var resp PricingQuestionsResponse
	if err := c.get(ctx, "/pricing/questions", id.query(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PricingEstimate prices a set of answers.
func (c *Client) PricingEstimate(ctx context.Context, req EstimateRequest) (*EstimateResponse, error) {
	var resp EstimateResponse
	if err := c.post(ctx, "/pricing/estimate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Agent fetches the scheduling details.
func (c *Client) Agent(ctx context.Context, id Identity) (*AgentResponse, error) {
	var resp AgentResponse
	if err := c.get(ctx, "/agent", id.query(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CalendlyEvent forwards a scheduling widget event. The response body is ignored.
func (c *Client) CalendlyEvent(ctx context.Context, req CalendlyEventRequest) error {
	return c.post(ctx, "/calendly/js-event", req, nil)
}

// ThemeLabStatus checks an editor token.
func (c *Client) ThemeLabStatus(ctx context.Context, botID, token string) (*ThemeLabStatusResponse, error) {
	var resp ThemeLabStatusResponse
	q := url.Values{"bot_id": {botID}}
	if err := c.do(ctx, c.timeout, http.MethodGet, "/themelab/status", q, nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ThemeLabLogin exchanges the editor password for a token.
func (c *Client) ThemeLabLogin(ctx context.Context, req ThemeLabLoginRequest) (*ThemeLabLoginResponse, error) {
	var resp ThemeLabLoginResponse
	if err := c.post(ctx, "/themelab/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClientTokens loads the saved editor overrides.
func (c *Client) ClientTokens(ctx context.Context, botID, token string) (*ClientTokensResponse, error) {
	var resp ClientTokensResponse
	q := url.Values{"bot_id": {botID}}
	if err := c.do(ctx, c.timeout, http.MethodGet, "/brand/client-tokens", q, nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveClientTokens stores editor overrides.
func (c *Client) SaveClientTokens(ctx context.Context, req SaveClientTokensRequest, token string) error {
	return c.do(ctx, c.timeout, http.MethodPost, "/brand/client-tokens/save", nil, req, token, nil)
}
