package botapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flag decodes booleans the platform sends as true/false, 0/1 or "true"/"1".
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		*f = true
	default:
		*f = false
	}
	return nil
}

// FlexString decodes ids that arrive either as strings or numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

// FlexNumber decodes amounts sent as numbers or numeric strings.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = FlexNumber(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexNumber(parsed)
	return nil
}

// GET /bot-settings

type BotSettingsResponse struct {
	OK        bool       `json:"ok"`
	Bot       BotPayload `json:"bot"`
	VisitorID FlexString `json:"visitor_id"`
	SessionID FlexString `json:"session_id"`
}

type BotPayload struct {
	ID                  FlexString `json:"id"`
	Alias               string     `json:"alias"`
	ShowBrowseDemos     Flag       `json:"show_browse_demos"`
	ShowBrowseDocs      Flag       `json:"show_browse_docs"`
	ShowScheduleMeeting Flag       `json:"show_schedule_meeting"`
	ShowPriceEstimate   Flag       `json:"show_price_estimate"`
	WelcomeMessage      string     `json:"welcome_message"`
	IntroVideoURL       string     `json:"intro_video_url"`
	ShowIntroVideo      Flag       `json:"show_intro_video"`
	PricingIntro        string     `json:"pricing_intro"`
	PricingOutro        string     `json:"pricing_outro"`
	PricingCustomNotice string     `json:"pricing_custom_notice"`
}

// GET /brand

type BrandResponse struct {
	OK      bool           `json:"ok"`
	CSSVars map[string]any `json:"css_vars"`
	Assets  map[string]any `json:"assets"`
}

// POST /demo-hal

type DemoHalRequest struct {
	BotID        string `json:"bot_id"`
	UserQuestion string `json:"user_question"`
	Scope        string `json:"scope"`
	DemoID       string `json:"demo_id,omitempty"`
	DocID        string `json:"doc_id,omitempty"`
	Debug        bool   `json:"debug"`
	SessionID    string `json:"session_id,omitempty"`
	VisitorID    string `json:"visitor_id,omitempty"`
}

type DemoHalResponse struct {
	ResponseText string           `json:"response_text"`
	Items        []map[string]any `json:"items"`
	Buttons      []map[string]any `json:"buttons"`
	Debug        json.RawMessage  `json:"debug,omitempty"`
}

// POST /render-video-iframe

type RenderVideoRequest struct {
	BotID    string `json:"bot_id"`
	DemoID   string `json:"demo_id"`
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
}

type RenderVideoResponse struct {
	VideoURL string `json:"video_url"`
}

// POST /render-doc-iframe

type RenderDocRequest struct {
	BotID string `json:"bot_id"`
	DocID string `json:"doc_id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type RenderDocResponse struct {
	IframeHTML string `json:"iframe_html"`
}

// GET /browse-demos, /browse-docs

type CatalogResponse struct {
	OK    bool             `json:"ok"`
	Items []map[string]any `json:"items"`
}

// GET /pricing/questions

type PricingQuestionsResponse struct {
	OK        bool              `json:"ok"`
	UICopy    map[string]string `json:"ui_copy"`
	Questions []QuestionPayload `json:"questions"`
}

type QuestionPayload struct {
	QKey     string            `json:"q_key"`
	Type     string            `json:"type"`
	Prompt   string            `json:"prompt"`
	Options  []json.RawMessage `json:"options"`
	Group    string            `json:"group"`
	Required *Flag             `json:"required"`
}

// POST /pricing/estimate

type EstimateRequest struct {
	BotID     string         `json:"bot_id"`
	Answers   map[string]any `json:"answers"`
	SessionID string         `json:"session_id,omitempty"`
	VisitorID string         `json:"visitor_id,omitempty"`
}

type EstimateResponse struct {
	OK           bool              `json:"ok"`
	TotalMin     FlexNumber        `json:"total_min"`
	TotalMax     FlexNumber        `json:"total_max"`
	CurrencyCode string            `json:"currency_code"`
	LineItems    []LineItemPayload `json:"line_items"`
	Custom       Flag              `json:"custom"`
}

type LineItemPayload struct {
	Label  string     `json:"label"`
	Name   string     `json:"name"`
	Min    FlexNumber `json:"amount_min"`
	Max    FlexNumber `json:"amount_max"`
	Amount FlexNumber `json:"amount"`
}

// GET /agent

type AgentResponse struct {
	OK    bool         `json:"ok"`
	Agent AgentPayload `json:"agent"`
}

type AgentPayload struct {
	ScheduleHeader   string `json:"schedule_header"`
	CalendarLinkType string `json:"calendar_link_type"`
	CalendarLink     string `json:"calendar_link"`
}

// POST /calendly/js-event

type CalendlyEventRequest struct {
	BotID     string          `json:"bot_id"`
	SessionID string          `json:"session_id"`
	VisitorID string          `json:"visitor_id"`
	Payload   json.RawMessage `json:"payload"`
}

// Theme editor endpoints

type ThemeLabStatusResponse struct {
	OK            bool `json:"ok"`
	Enabled       Flag `json:"enabled"`
	Authenticated Flag `json:"authenticated"`
}

type ThemeLabLoginRequest struct {
	BotID    string `json:"bot_id"`
	Password string `json:"password"`
}

type ThemeLabLoginResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

type ClientTokensResponse struct {
	OK     bool           `json:"ok"`
	Tokens map[string]any `json:"tokens"`
}

type SaveClientTokensRequest struct {
	BotID  string            `json:"bot_id"`
	Tokens map[string]string `json:"tokens"`
}
