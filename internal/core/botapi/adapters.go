package botapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ItemKind tells demos and documents apart.
type ItemKind string

const (
	KindDemo ItemKind = "demo"
	KindDoc  ItemKind = "doc"
)

// Item is the canonical shape of a demo or document, whatever endpoint it came from.
type Item struct {
	ID          string   `json:"id"`
	Kind        ItemKind `json:"kind"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Action      string   `json:"action,omitempty"`
}

// TabFlags says which optional tabs a bot shows.
type TabFlags struct {
	Demos   bool `json:"demos"`
	Docs    bool `json:"docs"`
	Meeting bool `json:"meeting"`
	Price   bool `json:"price"`
}

type PricingCopy struct {
	Intro        string `json:"intro"`
	Outro        string `json:"outro"`
	CustomNotice string `json:"custom_notice"`
}

// Settings is the canonical bot configuration.
type Settings struct {
	BotID          string      `json:"bot_id"`
	Alias          string      `json:"alias,omitempty"`
	Tabs           TabFlags    `json:"tabs_enabled"`
	WelcomeMessage string      `json:"welcome_message"`
	IntroVideoURL  string      `json:"intro_video_url"`
	ShowIntroVideo bool        `json:"show_intro_video"`
	PricingCopy    PricingCopy `json:"pricing_copy"`
}

// SettingsFrom adapts a /bot-settings payload.
func SettingsFrom(r *BotSettingsResponse) Settings {
	b := r.Bot
	return Settings{
		BotID: strings.TrimSpace(string(b.ID)),
		Alias: b.Alias,
		Tabs: TabFlags{
			Demos:   bool(b.ShowBrowseDemos),
			Docs:    bool(b.ShowBrowseDocs),
			Meeting: bool(b.ShowScheduleMeeting),
			Price:   bool(b.ShowPriceEstimate),
		},
		WelcomeMessage: b.WelcomeMessage,
		IntroVideoURL:  b.IntroVideoURL,
		ShowIntroVideo: bool(b.ShowIntroVideo),
		PricingCopy: PricingCopy{
			Intro:        b.PricingIntro,
			Outro:        b.PricingOutro,
			CustomNotice: b.PricingCustomNotice,
		},
	}
}

// Brand carries the bot theme variables and asset urls.
type Brand struct {
	CSSVars map[string]string `json:"css_vars"`
	Assets  map[string]string `json:"assets"`
}

// BrandFrom adapts a /brand payload. Non-string values are formatted, nulls dropped.
func BrandFrom(r *BrandResponse) Brand {
	return Brand{
		CSSVars: StringMap(r.CSSVars),
		Assets:  StringMap(r.Assets),
	}
}

// StringMap flattens a JSON object of scalars into strings.
func StringMap(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := scalarString(v); ok && s != "" {
			out[k] = s
		}
	}
	return out
}

// controlActions are button actions that drive the conversation rather than
// point at content; they never show up as recommendations.
var controlActions = map[string]bool{
	"continue":     true,
	"options":      true,
	"show_options": true,
	"show options": true,
	"show-options": true,
	"back":         true,
	"menu":         true,
}

// NormalizeItems adapts items/buttons arrays. Field precedence:
//
//	id:          id, demo_id, doc_id, item_id
//	title:       title, button_title, label, button_label, name
//	url:         url, video_url, doc_url, button_value
//	description: description, summary, functions_text, button_description
//	action:      action, button_action
//
// Entries with a control action, or with neither title nor url, are dropped.
// Kind comes from the action, then from demo_*/doc_* keys, then fallback.
func NormalizeItems(raw []map[string]any, fallback ItemKind) []Item {
	items := make([]Item, 0, len(raw))
	for _, m := range raw {
		if m == nil {
			continue
		}
		action := strings.ToLower(strings.TrimSpace(firstString(m, "action", "button_action")))
		if controlActions[action] {
			continue
		}
		item := Item{
			ID:          firstString(m, "id", "demo_id", "doc_id", "item_id"),
			Title:       firstString(m, "title", "button_title", "label", "button_label", "name"),
			URL:         firstString(m, "url", "video_url", "doc_url", "button_value"),
			Description: firstString(m, "description", "summary", "functions_text", "button_description"),
			Action:      action,
		}
		if item.Title == "" && item.URL == "" {
			continue
		}
		item.Kind = kindOf(m, action, fallback)
		items = append(items, item)
	}
	return items
}

func kindOf(m map[string]any, action string, fallback ItemKind) ItemKind {
	switch action {
	case "demo", "video", "show_demo", "play_demo":
		return KindDemo
	case "doc", "document", "show_doc", "open_doc":
		return KindDoc
	}
	if firstString(m, "demo_id", "video_url") != "" {
		return KindDemo
	}
	if firstString(m, "doc_id", "doc_url") != "" {
		return KindDoc
	}
	switch strings.ToLower(firstString(m, "type", "kind")) {
	case "doc", "document":
		return KindDoc
	case "demo", "video":
		return KindDemo
	}
	return fallback
}

// AnswerFrom adapts a /demo-hal payload. items wins over buttons when non-empty.
func AnswerFrom(r *DemoHalResponse) (string, []Item) {
	raw := r.Items
	if len(raw) == 0 {
		raw = r.Buttons
	}
	return strings.TrimSpace(r.ResponseText), NormalizeItems(raw, KindDemo)
}

type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Question is one pricing question in server order.
type Question struct {
	Key      string   `json:"q_key"`
	Type     string   `json:"type"`
	Prompt   string   `json:"prompt"`
	Options  []Option `json:"options"`
	Group    string   `json:"group,omitempty"`
	Required bool     `json:"required"`
	Multi    bool     `json:"multi"`
}

var multiTypes = map[string]bool{
	"multi":        true,
	"multi_choice": true,
	"multi_select": true,
	"multiselect":  true,
	"checkbox":     true,
}

// QuestionsFrom adapts /pricing/questions, keeping server order. A question
// without a "required" field counts as required. Questions without a key are dropped.
func QuestionsFrom(r *PricingQuestionsResponse) []Question {
	out := make([]Question, 0, len(r.Questions))
	for _, q := range r.Questions {
		key := strings.TrimSpace(q.QKey)
		if key == "" {
			continue
		}
		required := true
		if q.Required != nil {
			required = bool(*q.Required)
		}
		typ := strings.ToLower(strings.TrimSpace(q.Type))
		out = append(out, Question{
			Key:      key,
			Type:     typ,
			Prompt:   q.Prompt,
			Options:  optionsFrom(q.Options),
			Group:    q.Group,
			Required: required,
			Multi:    multiTypes[typ],
		})
	}
	return out
}

// optionsFrom accepts plain strings or objects with key/value/id and label/title.
func optionsFrom(raw []json.RawMessage) []Option {
	opts := make([]Option, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			opts = append(opts, Option{Key: s, Label: s})
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(r, &m); err != nil {
			continue
		}
		key := firstString(m, "key", "value", "id")
		label := firstString(m, "label", "title", "name")
		if key == "" {
			key = label
		}
		if label == "" {
			label = key
		}
		if key != "" {
			opts = append(opts, Option{Key: key, Label: label})
		}
	}
	return opts
}

type LineItem struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Estimate is a price range, or a custom quote when Custom is set.
type Estimate struct {
	Custom    bool       `json:"custom"`
	Min       float64    `json:"total_min"`
	Max       float64    `json:"total_max"`
	Currency  string     `json:"currency_code"`
	LineItems []LineItem `json:"line_items"`
}

// EstimateFrom adapts /pricing/estimate. A line item with only "amount" uses
// it for both bounds. Currency defaults to USD.
func EstimateFrom(r *EstimateResponse) Estimate {
	est := Estimate{
		Custom:   bool(r.Custom),
		Min:      float64(r.TotalMin),
		Max:      float64(r.TotalMax),
		Currency: strings.ToUpper(strings.TrimSpace(r.CurrencyCode)),
	}
	if est.Currency == "" {
		est.Currency = "USD"
	}
	if est.Max < est.Min {
		est.Max = est.Min
	}
	for _, li := range r.LineItems {
		label := li.Label
		if label == "" {
			label = li.Name
		}
		lo, hi := float64(li.Min), float64(li.Max)
		if lo == 0 && hi == 0 {
			lo, hi = float64(li.Amount), float64(li.Amount)
		}
		est.LineItems = append(est.LineItems, LineItem{Label: label, Min: lo, Max: hi})
	}
	return est
}

// Agent describes how a visitor books a meeting.
type Agent struct {
	ScheduleHeader   string `json:"schedule_header"`
	CalendarLinkType string `json:"calendar_link_type"`
	CalendarLink     string `json:"calendar_link"`
}

// AgentFrom adapts /agent.
func AgentFrom(r *AgentResponse) Agent {
	return Agent{
		ScheduleHeader:   r.Agent.ScheduleHeader,
		CalendarLinkType: strings.ToLower(strings.TrimSpace(r.Agent.CalendarLinkType)),
		CalendarLink:     strings.TrimSpace(r.Agent.CalendarLink),
	}
}

// SortedKeys is used wherever map output must be deterministic.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := scalarString(v); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case json.Number:
		return t.String(), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(t), false
	}
}
