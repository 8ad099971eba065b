package widget

import (
	"context"
	"errors"
	"strings"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

const (
	EstimateFailedMessage  = "Unable to compute estimate."
	QuestionsFailedMessage = "Unable to load pricing questions."
)

var (
	ErrUnknownQuestion    = errors.New("unknown pricing question")
	ErrUnknownOption      = errors.New("value is not an option of this question")
	ErrEmptyAnswer        = errors.New("answer is empty")
	ErrMissingAnswers     = errors.New("required questions are unanswered")
	ErrQuestionsNotLoaded = errors.New("pricing questions are not loaded")
	ErrEstimateRunning    = errors.New("an estimate is already being computed")
)

// PricingPhase is the pricing flow step.
type PricingPhase string

const (
	PhaseLoading     PricingPhase = "loading"
	PhaseAnswering   PricingPhase = "answering"
	PhaseReady       PricingPhase = "ready"
	PhaseEstimating  PricingPhase = "estimating"
	PhaseEstimated   PricingPhase = "estimated"
	PhaseCustomQuote PricingPhase = "custom_quote"
	PhaseError       PricingPhase = "error"
)

// Answer is a single value for single-choice questions and a set for multi-choice ones.
type Answer struct {
	Values []string `json:"values"`
	Multi  bool     `json:"multi"`
}

func (a Answer) wire() any {
	if a.Multi {
		return append([]string(nil), a.Values...)
	}
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// Pricing is the pricing flow state machine. It does no I/O; App drives it.
type Pricing struct {
	Phase     PricingPhase      `json:"phase"`
	Questions []botapi.Question `json:"questions"`
	UICopy    map[string]string `json:"ui_copy,omitempty"`
	Answers   map[string]Answer `json:"answers"`
	Estimate  *botapi.Estimate  `json:"estimate,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// NewPricing returns an empty flow in the loading phase.
func NewPricing() *Pricing {
	return &Pricing{Phase: PhaseLoading, Answers: map[string]Answer{}}
}

// Load installs the server-ordered question list and drops answers to
// questions that no longer exist.
func (p *Pricing) Load(questions []botapi.Question, uiCopy map[string]string) {
	p.Questions = questions
	p.UICopy = uiCopy
	p.Error = ""
	kept := map[string]Answer{}
	for _, q := range questions {
		if ans, ok := p.Answers[q.Key]; ok {
			kept[q.Key] = ans
		}
	}
	p.Answers = kept
	p.invalidate()
}

func (p *Pricing) loaded() bool {
	return p.Phase != PhaseLoading
}

func (p *Pricing) question(key string) (botapi.Question, bool) {
	for _, q := range p.Questions {
		if q.Key == key {
			return q, true
		}
	}
	return botapi.Question{}, false
}

func (p *Pricing) answered(key string) bool {
	return len(p.Answers[key].Values) > 0
}

// NextQuestion is the earliest required question without an answer, or nil.
func (p *Pricing) NextQuestion() *botapi.Question {
	for i := range p.Questions {
		q := p.Questions[i]
		if q.Required && !p.answered(q.Key) {
			return &q
		}
	}
	return nil
}

// Surfaced lists the questions a visitor can see: everything up to and
// including the first unanswered required question.
func (p *Pricing) Surfaced() []botapi.Question {
	out := make([]botapi.Question, 0, len(p.Questions))
	for _, q := range p.Questions {
		out = append(out, q)
		if q.Required && !p.answered(q.Key) {
			break
		}
	}
	return out
}

// AllRequiredAnswered reports whether an estimate can be requested.
func (p *Pricing) AllRequiredAnswered() bool {
	return p.NextQuestion() == nil
}

// SetAnswer toggles value on multi-choice questions and replaces the answer on
// single-choice ones. Any change clears a computed estimate.
func (p *Pricing) SetAnswer(key, value string) error {
	if !p.loaded() {
		return ErrQuestionsNotLoaded
	}
	q, ok := p.question(key)
	if !ok {
		return ErrUnknownQuestion
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyAnswer
	}
	if len(q.Options) > 0 && !hasOption(q, value) {
		return ErrUnknownOption
	}

	if !q.Multi {
		p.Answers[key] = Answer{Values: []string{value}}
		p.invalidate()
		return nil
	}

	current := p.Answers[key].Values
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, v := range current {
		if v == value {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, value)
	}
	if len(next) == 0 {
		delete(p.Answers, key)
	} else {
		p.Answers[key] = Answer{Values: next, Multi: true}
	}
	p.invalidate()
	return nil
}

// ClearAnswer removes the answer to key entirely.
func (p *Pricing) ClearAnswer(key string) error {
	if !p.loaded() {
		return ErrQuestionsNotLoaded
	}
	if _, ok := p.question(key); !ok {
		return ErrUnknownQuestion
	}
	delete(p.Answers, key)
	p.invalidate()
	return nil
}

func (p *Pricing) invalidate() {
	p.Estimate = nil
	p.Error = ""
	if p.AllRequiredAnswered() {
		p.Phase = PhaseReady
	} else {
		p.Phase = PhaseAnswering
	}
}

func (p *Pricing) beginEstimate() error {
	if !p.loaded() {
		return ErrQuestionsNotLoaded
	}
	if p.Phase == PhaseEstimating {
		return ErrEstimateRunning
	}
	if !p.AllRequiredAnswered() {
		return ErrMissingAnswers
	}
	p.Estimate = nil
	p.Error = ""
	p.Phase = PhaseEstimating
	return nil
}

func (p *Pricing) finishEstimate(est *botapi.Estimate, err error) {
	if err != nil {
		p.Estimate = nil
		p.Error = EstimateFailedMessage
		p.Phase = PhaseError
		return
	}
	p.Estimate = est
	if est.Custom {
		p.Phase = PhaseCustomQuote
	} else {
		p.Phase = PhaseEstimated
	}
}

func (p *Pricing) payload() map[string]any {
	out := make(map[string]any, len(p.Answers))
	for k, a := range p.Answers {
		out[k] = a.wire()
	}
	return out
}

func (p *Pricing) clone() *Pricing {
	if p == nil {
		return nil
	}
	out := *p
	out.Questions = append([]botapi.Question(nil), p.Questions...)
	out.Answers = make(map[string]Answer, len(p.Answers))
	for k, v := range p.Answers {
		out.Answers[k] = Answer{Values: append([]string(nil), v.Values...), Multi: v.Multi}
	}
	if p.UICopy != nil {
		out.UICopy = make(map[string]string, len(p.UICopy))
		for k, v := range p.UICopy {
			out.UICopy[k] = v
		}
	}
	if p.Estimate != nil {
		est := *p.Estimate
		est.LineItems = append([]botapi.LineItem(nil), p.Estimate.LineItems...)
		out.Estimate = &est
	}
	return &out
}

func hasOption(q botapi.Question, value string) bool {
	for _, o := range q.Options {
		if o.Key == value {
			return true
		}
	}
	return false
}

// Pricing returns a copy of the pricing state, or nil before LoadPricing.
func (a *App) Pricing() *Pricing {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pricing.clone()
}

// LoadPricing fetches the question list. Answers given before a reload are
// kept for questions that still exist.
func (a *App) LoadPricing(ctx context.Context) (*Pricing, error) {
	a.mu.Lock()
	if !a.identity.Resolved() {
		defer a.mu.Unlock()
		return a.pricing.clone(), ErrNoBot
	}
	if !a.tabEnabled(ScreenPrice) {
		defer a.mu.Unlock()
		return a.pricing.clone(), ErrTabDisabled
	}
	if a.pricing == nil {
		a.pricing = NewPricing()
	}
	gen := a.gens.next(resPricing)
	id := a.identity.API()
	a.mu.Unlock()

	resp, err := a.api.PricingQuestions(ctx, id)

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(resPricing, gen) {
		return a.pricing.clone(), ErrSuperseded
	}
	if err != nil {
		utils.LogError("pricing questions fetch failed", err, map[string]interface{}{"bot_id": id.BotID})
		a.pricing.Error = QuestionsFailedMessage
		return a.pricing.clone(), err
	}
	a.pricing.Load(botapi.QuestionsFrom(resp), resp.UICopy)
	a.gens.next(resEstimate)
	return a.pricing.clone(), nil
}

// SetPriceAnswer records an answer and invalidates any computed estimate.
func (a *App) SetPriceAnswer(key, value string) (*Pricing, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pricing == nil {
		return nil, ErrQuestionsNotLoaded
	}
	if err := a.pricing.SetAnswer(key, value); err != nil {
		return a.pricing.clone(), err
	}
	a.gens.next(resEstimate)
	return a.pricing.clone(), nil
}

// ClearPriceAnswer removes an answer and invalidates any computed estimate.
func (a *App) ClearPriceAnswer(key string) (*Pricing, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pricing == nil {
		return nil, ErrQuestionsNotLoaded
	}
	if err := a.pricing.ClearAnswer(key); err != nil {
		return a.pricing.clone(), err
	}
	a.gens.next(resEstimate)
	return a.pricing.clone(), nil
}

// ComputeEstimate posts the answers once every required question is answered.
// A failure lands in the error phase with a short message; an answer change
// while the request runs discards its result.
func (a *App) ComputeEstimate(ctx context.Context) (*Pricing, error) {
	a.mu.Lock()
	if a.pricing == nil {
		defer a.mu.Unlock()
		return nil, ErrQuestionsNotLoaded
	}
	if err := a.pricing.beginEstimate(); err != nil {
		defer a.mu.Unlock()
		return a.pricing.clone(), err
	}
	gen := a.gens.next(resEstimate)
	req := botapi.EstimateRequest{
		BotID:     a.identity.BotID,
		Answers:   a.pricing.payload(),
		SessionID: a.identity.SessionID,
		VisitorID: a.identity.VisitorID,
	}
	a.mu.Unlock()

	resp, err := a.api.PricingEstimate(ctx, req)

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(resEstimate, gen) {
		return a.pricing.clone(), ErrSuperseded
	}
	if err != nil {
		utils.LogError("estimate failed", err, map[string]interface{}{"bot_id": req.BotID})
		a.pricing.finishEstimate(nil, err)
		return a.pricing.clone(), nil
	}
	est := botapi.EstimateFrom(resp)
	a.pricing.finishEstimate(&est, nil)
	return a.pricing.clone(), nil
}
