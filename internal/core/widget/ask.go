package widget

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

// FallbackAnswer is shown for any failed ask.
const FallbackAnswer = "Sorry—something went wrong."

// ScopeKind is what a question is about.
type ScopeKind string

const (
	ScopeStandard ScopeKind = "standard"
	ScopeDemo     ScopeKind = "demo"
	ScopeDoc      ScopeKind = "doc"
)

// Scope tags a question with what the visitor was looking at when asking.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
}

// AnswerState is the latest question and its answer.
type AnswerState struct {
	Question string          `json:"question,omitempty"`
	Scope    Scope           `json:"scope"`
	Pending  bool            `json:"pending"`
	Failed   bool            `json:"failed"`
	Text     string          `json:"response_text,omitempty"`
	Items    []botapi.Item   `json:"items,omitempty"`
	RevealAt time.Time       `json:"items_reveal_at,omitempty"`
	Debug    json.RawMessage `json:"debug,omitempty"`
}

// ItemsVisible implements the staggered reveal: the answer text shows at once,
// the recommendation buttons only from RevealAt on.
func (s AnswerState) ItemsVisible(now time.Time) bool {
	return len(s.Items) > 0 && !now.Before(s.RevealAt)
}

func (s AnswerState) clone() AnswerState {
	out := s
	if s.Items != nil {
		out.Items = append([]botapi.Item(nil), s.Items...)
	}
	return out
}

// Answer returns the current answer state.
func (a *App) Answer() AnswerState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.answer.clone()
}

// Ask sends a question. An empty question or an unresolved bot is a no-op:
// nothing is sent and nothing changes. Otherwise the scope is captured from
// the current selection, the widget returns to the ask screen with the
// selection and the previous answer cleared, and the request runs with the
// ask timeout. Failures become the fallback answer, not an error.
func (a *App) Ask(ctx context.Context, question string) (AnswerState, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return a.Answer(), ErrEmptyQuestion
	}

	a.mu.Lock()
	if !a.identity.Resolved() {
		defer a.mu.Unlock()
		return a.answer.clone(), ErrNoBot
	}
	scope := a.screen.scope()
	a.screen = ScreenState{Screen: ScreenAsk}
	a.gens.next(resRender)
	a.answer = AnswerState{Question: question, Scope: scope, Pending: true}
	gen := a.gens.next(resAsk)
	id := a.identity
	a.mu.Unlock()

	req := botapi.DemoHalRequest{
		BotID:        id.BotID,
		UserQuestion: question,
		Scope:        string(scope.Kind),
		Debug:        a.opts.Debug,
		SessionID:    id.SessionID,
		VisitorID:    id.VisitorID,
	}
	switch scope.Kind {
	case ScopeDemo:
		req.DemoID = scope.ID
	case ScopeDoc:
		req.DocID = scope.ID
	}

	askCtx, cancel := context.WithTimeout(ctx, a.opts.AskTimeout)
	defer cancel()
	resp, err := a.api.DemoHal(askCtx, req)

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(resAsk, gen) {
		return a.answer.clone(), ErrSuperseded
	}

	a.answer.Pending = false
	if err != nil {
		utils.LogError("ask failed", err, map[string]interface{}{
			"bot_id": id.BotID,
			"scope":  scope.Kind,
		})
		a.answer.Failed = true
		a.answer.Text = FallbackAnswer
		a.answer.Items = nil
		return a.answer.clone(), nil
	}

	text, items := botapi.AnswerFrom(resp)
	a.answer.Text = text
	a.answer.Items = items
	a.answer.RevealAt = a.now().Add(a.opts.RevealDelay)
	a.answer.Debug = a.debugPayload(resp.Debug)
	return a.answer.clone(), nil
}
