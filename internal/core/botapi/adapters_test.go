package botapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, raw string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return &v
}

func TestSettingsFrom(t *testing.T) {
	r := decode[BotSettingsResponse](t, `{
		"ok": true,
		"bot": {
			"id": "b1",
			"show_browse_demos": 1,
			"show_browse_docs": false,
			"show_schedule_meeting": "true",
			"show_price_estimate": true,
			"welcome_message": "Hi there",
			"intro_video_url": "https://v/intro",
			"show_intro_video": null,
			"pricing_intro": "Answer a few questions",
			"pricing_custom_notice": "Talk to sales"
		}
	}`)

	s := SettingsFrom(r)
	assert.Equal(t, "b1", s.BotID)
	assert.Equal(t, TabFlags{Demos: true, Docs: false, Meeting: true, Price: true}, s.Tabs)
	assert.False(t, s.ShowIntroVideo)
	assert.Equal(t, "Talk to sales", s.PricingCopy.CustomNotice)
}

func TestNormalizeItems(t *testing.T) {
	raw := []map[string]any{
		{"id": "d1", "title": "Overview", "url": "https://v/1", "description": "Intro tour"},
		{"button_title": "Continue", "action": "continue"},
		{"button_title": "More options", "button_action": "show_options"},
		{"demo_id": 7.0, "button_title": "Setup", "video_url": "https://v/7", "functions_text": "How to set up"},
		{"doc_id": "x", "label": "Pricing sheet", "doc_url": "https://d/x"},
		{"action": "demo"},
		nil,
	}

	items := NormalizeItems(raw, KindDemo)
	require.Len(t, items, 3)

	assert.Equal(t, Item{ID: "d1", Kind: KindDemo, Title: "Overview", URL: "https://v/1", Description: "Intro tour"}, items[0])
	assert.Equal(t, "7", items[1].ID)
	assert.Equal(t, "How to set up", items[1].Description)
	assert.Equal(t, KindDemo, items[1].Kind)
	assert.Equal(t, KindDoc, items[2].Kind)
	assert.Equal(t, "https://d/x", items[2].URL)

	for _, it := range items {
		assert.NotEqual(t, "continue", it.Action)
	}
}

func TestAnswerFromPrefersItems(t *testing.T) {
	r := &DemoHalResponse{
		ResponseText: "  here you go ",
		Items:        []map[string]any{{"title": "A", "url": "u"}},
		Buttons:      []map[string]any{{"title": "B", "url": "u"}},
	}
	text, items := AnswerFrom(r)
	assert.Equal(t, "here you go", text)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Title)

	r.Items = nil
	_, items = AnswerFrom(r)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Title)
}

func TestQuestionsFrom(t *testing.T) {
	r := decode[PricingQuestionsResponse](t, `{
		"ok": true,
		"questions": [
			{"q_key": "size", "type": "single_choice", "prompt": "Team size?", "options": ["1-10", "11-50"], "required": true},
			{"q_key": "addons", "type": "multi_choice", "prompt": "Add-ons?", "options": [{"key": "sso", "label": "SSO"}, {"value": "audit"}], "required": false},
			{"q_key": "region", "type": "single_choice", "prompt": "Region?"},
			{"q_key": "", "prompt": "dropped"}
		]
	}`)

	qs := QuestionsFrom(r)
	require.Len(t, qs, 3)
	assert.Equal(t, []string{"size", "addons", "region"}, []string{qs[0].Key, qs[1].Key, qs[2].Key})
	assert.True(t, qs[0].Required)
	assert.False(t, qs[0].Multi)
	assert.False(t, qs[1].Required)
	assert.True(t, qs[1].Multi)
	assert.Equal(t, []Option{{Key: "sso", Label: "SSO"}, {Key: "audit", Label: "audit"}}, qs[1].Options)
	assert.True(t, qs[2].Required)
}

func TestEstimateFrom(t *testing.T) {
	r := decode[EstimateResponse](t, `{
		"ok": true, "total_min": "1200", "total_max": 900, "currency_code": "eur",
		"line_items": [{"label": "Seats", "amount_min": 1000, "amount_max": 1500}, {"name": "Setup", "amount": 200}]
	}`)

	est := EstimateFrom(r)
	assert.False(t, est.Custom)
	assert.Equal(t, 1200.0, est.Min)
	assert.Equal(t, 1200.0, est.Max)
	assert.Equal(t, "EUR", est.Currency)
	assert.Equal(t, []LineItem{{Label: "Seats", Min: 1000, Max: 1500}, {Label: "Setup", Min: 200, Max: 200}}, est.LineItems)

	custom := EstimateFrom(decode[EstimateResponse](t, `{"ok":true,"custom":true}`))
	assert.True(t, custom.Custom)
	assert.Equal(t, "USD", custom.Currency)
}
