package widget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
)

func sizeRegionQuestions() *botapi.PricingQuestionsResponse {
	return &botapi.PricingQuestionsResponse{
		OK:     true,
		UICopy: map[string]string{"intro": "A few questions first."},
		Questions: []botapi.QuestionPayload{
			{QKey: "size", Type: "choice", Prompt: "Team size?", Options: rawOptions("small", "large"), Required: requiredFlag(true)},
			{QKey: "region", Type: "choice", Prompt: "Region?", Options: rawOptions("us", "eu"), Required: requiredFlag(true)},
			{QKey: "addons", Type: "multi_choice", Prompt: "Add-ons?", Options: rawOptions("sso", "audit", "api"), Required: requiredFlag(false)},
		},
	}
}

func pricingApp(t *testing.T, f *fakePlatform) *App {
	t.Helper()
	f.questions = sizeRegionQuestions()
	a := startApp(t, f, Options{}, Flags{})
	p, err := a.LoadPricing(context.Background())
	require.NoError(t, err)
	require.Equal(t, PhaseAnswering, p.Phase)
	return a
}

func TestNextQuestionAfterPartialAnswers(t *testing.T) {
	a := pricingApp(t, newFake())

	p, err := a.SetPriceAnswer("size", "small")
	require.NoError(t, err)

	next := p.NextQuestion()
	require.NotNil(t, next)
	assert.Equal(t, "region", next.Key)
	assert.Equal(t, PhaseAnswering, p.Phase)
	assert.Nil(t, p.Estimate)

	surfaced := p.Surfaced()
	require.Len(t, surfaced, 2)
	assert.Equal(t, "region", surfaced[1].Key)

	_, err = a.ComputeEstimate(context.Background())
	assert.ErrorIs(t, err, ErrMissingAnswers)
}

func TestEstimateLifecycle(t *testing.T) {
	f := newFake()
	f.estimate = &botapi.EstimateResponse{OK: true, TotalMin: 1000, TotalMax: 2500, CurrencyCode: "eur"}
	a := pricingApp(t, f)

	_, err := a.SetPriceAnswer("size", "large")
	require.NoError(t, err)
	p, err := a.SetPriceAnswer("region", "eu")
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, p.Phase)
	assert.Len(t, p.Surfaced(), 3)

	p, err = a.ComputeEstimate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseEstimated, p.Phase)
	require.NotNil(t, p.Estimate)
	assert.Equal(t, 2500.0, p.Estimate.Max)
	assert.Equal(t, "EUR", p.Estimate.Currency)

	require.Len(t, f.estimateCalls, 1)
	assert.Equal(t, map[string]any{"size": "large", "region": "eu"}, f.estimateCalls[0].Answers)

	p, err = a.ClearPriceAnswer("region")
	require.NoError(t, err)
	assert.Nil(t, p.Estimate)
	assert.Equal(t, PhaseAnswering, p.Phase)
	assert.Equal(t, "region", p.NextQuestion().Key)
}

func TestCustomQuote(t *testing.T) {
	f := newFake()
	f.estimate = &botapi.EstimateResponse{OK: true, Custom: true}
	a := pricingApp(t, f)
	_, _ = a.SetPriceAnswer("size", "large")
	_, _ = a.SetPriceAnswer("region", "us")

	p, err := a.ComputeEstimate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseCustomQuote, p.Phase)
	assert.True(t, p.Estimate.Custom)
}

func TestEstimateFailure(t *testing.T) {
	f := newFake()
	f.estimateErr = errDown
	a := pricingApp(t, f)
	_, _ = a.SetPriceAnswer("size", "large")
	_, _ = a.SetPriceAnswer("region", "us")

	p, err := a.ComputeEstimate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseError, p.Phase)
	assert.Equal(t, "Unable to compute estimate.", p.Error)
	assert.Nil(t, p.Estimate)
}

func TestMultiSelectDoubleToggle(t *testing.T) {
	a := pricingApp(t, newFake())
	_, _ = a.SetPriceAnswer("addons", "sso")
	before := a.Pricing().Answers["addons"].Values

	_, err := a.SetPriceAnswer("addons", "audit")
	require.NoError(t, err)
	p, err := a.SetPriceAnswer("addons", "audit")
	require.NoError(t, err)

	assert.ElementsMatch(t, before, p.Answers["addons"].Values)

	p, err = a.SetPriceAnswer("addons", "sso")
	require.NoError(t, err)
	_, ok := p.Answers["addons"]
	assert.False(t, ok)
}

func TestSingleSelectReplaces(t *testing.T) {
	a := pricingApp(t, newFake())
	_, _ = a.SetPriceAnswer("size", "small")
	p, err := a.SetPriceAnswer("size", "large")
	require.NoError(t, err)
	assert.Equal(t, []string{"large"}, p.Answers["size"].Values)
}

func TestSetAnswerValidation(t *testing.T) {
	a := pricingApp(t, newFake())

	_, err := a.SetPriceAnswer("colour", "red")
	assert.ErrorIs(t, err, ErrUnknownQuestion)
	_, err = a.SetPriceAnswer("size", "huge")
	assert.ErrorIs(t, err, ErrUnknownOption)
	_, err = a.SetPriceAnswer("size", " ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	b := startApp(t, newFake(), Options{}, Flags{})
	_, err = b.SetPriceAnswer("size", "small")
	assert.ErrorIs(t, err, ErrQuestionsNotLoaded)
}

func TestStaleEstimateDiscarded(t *testing.T) {
	f := newFake()
	started := make(chan struct{})
	release := make(chan struct{})
	f.onEstimate = func(context.Context, botapi.EstimateRequest) (*botapi.EstimateResponse, error) {
		close(started)
		<-release
		return &botapi.EstimateResponse{OK: true, TotalMin: 10, TotalMax: 20}, nil
	}
	a := pricingApp(t, f)
	_, _ = a.SetPriceAnswer("size", "small")
	_, _ = a.SetPriceAnswer("region", "us")

	errc := make(chan error, 1)
	go func() {
		_, err := a.ComputeEstimate(context.Background())
		errc <- err
	}()
	<-started

	_, err := a.SetPriceAnswer("region", "eu")
	require.NoError(t, err)
	close(release)
	assert.ErrorIs(t, <-errc, ErrSuperseded)

	p := a.Pricing()
	assert.Nil(t, p.Estimate)
	assert.Equal(t, PhaseReady, p.Phase)
}

func TestReloadKeepsMatchingAnswers(t *testing.T) {
	f := newFake()
	a := pricingApp(t, f)
	_, _ = a.SetPriceAnswer("size", "small")
	_, _ = a.SetPriceAnswer("addons", "api")

	f.questions = &botapi.PricingQuestionsResponse{OK: true, Questions: []botapi.QuestionPayload{
		{QKey: "size", Options: rawOptions("small", "large")},
	}}
	p, err := a.LoadPricing(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"small"}, p.Answers["size"].Values)
	assert.NotContains(t, p.Answers, "addons")
	assert.Equal(t, PhaseReady, p.Phase)
}

func TestLoadPricingFailure(t *testing.T) {
	a := startApp(t, newFake(), Options{}, Flags{})

	p, err := a.LoadPricing(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseLoading, p.Phase)
	assert.Equal(t, QuestionsFailedMessage, p.Error)
}

func TestLoadPricingNeedsPriceTab(t *testing.T) {
	f := newFake()
	f.settings.Bot.ShowPriceEstimate = false
	f.questions = sizeRegionQuestions()
	a := startApp(t, f, Options{}, Flags{})

	p, err := a.LoadPricing(context.Background())
	assert.ErrorIs(t, err, ErrTabDisabled)
	assert.Nil(t, p)
	assert.Nil(t, a.Pricing())
}
