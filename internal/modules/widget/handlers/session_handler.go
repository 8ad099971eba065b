package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/identity"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/widget"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/services"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

// SessionHandler exposes widget sessions over HTTP.
type SessionHandler struct {
	sessionService *services.SessionService
}

// NewSessionHandler creates the session routes handler.
func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

var validate = validator.New()

type AskRequest struct {
	Question string `json:"question" validate:"max=4000"`
}

type OpenItemRequest struct {
	ID          string `json:"id" validate:"required_without=URL"`
	Kind        string `json:"kind" validate:"omitempty,oneof=demo doc"`
	Title       string `json:"title"`
	URL         string `json:"url" validate:"omitempty,url"`
	Description string `json:"description"`
}

type AnswerRequest struct {
	Value string `json:"value" validate:"max=512"`
}

type OverridesRequest struct {
	Overrides map[string]string `json:"overrides" validate:"dive,keys,max=64,endkeys,max=512"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

var errInvalidRequest = errors.New("invalid request")

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidRequest
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return nil
}

// Register mounts the widget session routes on router.
func (h *SessionHandler) Register(router fiber.Router) {
	s := router.Group("/widget/sessions")
	s.Post("/", h.CreateSession)
	s.Get("/:id", h.GetSession)
	s.Get("/:id/tabs", h.GetTabs)
	s.Post("/:id/tabs/:tab", h.SelectTab)
	s.Post("/:id/items", h.OpenItem)
	s.Delete("/:id/items", h.CloseItem)
	s.Post("/:id/scroll", h.Scroll)
	s.Post("/:id/ask", h.Ask)
	s.Get("/:id/catalog/:kind", h.GetCatalog)
	s.Get("/:id/pricing", h.GetPricing)
	s.Put("/:id/pricing/answers/:key", h.SetAnswer)
	s.Delete("/:id/pricing/answers/:key", h.ClearAnswer)
	s.Post("/:id/pricing/estimate", h.ComputeEstimate)
	s.Get("/:id/meeting", h.GetMeeting)
	s.Get("/:id/meeting/qr.png", h.GetMeetingQR)
	s.Post("/:id/meeting/events", h.ForwardMeetingEvent)
	s.Get("/:id/theme.css", h.GetThemeCSS)
	s.Put("/:id/theme/overrides", h.ApplyOverrides)
	s.Get("/:id/themelab/status", h.ThemeLabStatus)
	s.Post("/:id/themelab/login", h.ThemeLabLogin)
	s.Get("/:id/themelab/tokens", h.GetClientTokens)
	s.Post("/:id/themelab/tokens", h.SaveClientTokens)
}

// CreateSession godoc
// @Summary Create widget session
// @Description Resolve the bot from bot_id, alias or the default alias and load its settings and brand
// @Tags Widget
// @Produce json
// @Param alias query string false "Bot alias"
// @Param bot_id query string false "Bot ID"
// @Param themelab query bool false "Enable theme editor"
// @Param preview query bool false "Enable theme preview"
// @Success 201 {object} map[string]interface{}
// @Router /widget/sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req services.CreateSessionRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid query"})
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
	}

	id, state, err := h.sessionService.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"session_id": id,
		"state":      state.Public(),
	})
}

// GetSession godoc
// @Summary Get widget session state
// @Tags Widget
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} widget.State
// @Router /widget/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	state, err := h.sessionService.Snapshot(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state.Public())
}

// GetTabs godoc
// @Summary List enabled tabs
// @Tags Widget
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/tabs [get]
func (h *SessionHandler) GetTabs(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"tabs":   app.Tabs(),
		"screen": app.Screen(),
	})
}

// SelectTab godoc
// @Summary Switch screen
// @Tags Widget
// @Produce json
// @Param id path string true "Session ID"
// @Param tab path string true "ask, browse, docs, price or meeting"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/tabs/{tab} [post]
func (h *SessionHandler) SelectTab(c *fiber.Ctx) error {
	screen, err := widget.ParseScreen(c.Params("tab"))
	if err != nil {
		return fail(c, err)
	}
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if _, err := app.SelectTab(screen); err != nil {
		return fail(c, err)
	}
	return h.respond(c, nil)
}

// OpenItem godoc
// @Summary Open a demo or document
// @Tags Widget
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param item body OpenItemRequest true "Item"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/items [post]
func (h *SessionHandler) OpenItem(c *fiber.Ctx) error {
	var req OpenItemRequest
	if err := bind(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	kind := botapi.KindDemo
	if strings.EqualFold(req.Kind, string(botapi.KindDoc)) {
		kind = botapi.KindDoc
	}
	_, err = app.OpenItem(c.UserContext(), botapi.Item{
		ID:          req.ID,
		Kind:        kind,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, nil)
}

// CloseItem godoc
// @Summary Close the open item
// @Tags Widget
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/items [delete]
func (h *SessionHandler) CloseItem(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	app.CloseItem()
	return h.respond(c, nil)
}

// Scroll godoc
// @Summary Release the item view anchor
// @Tags Widget
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/scroll [post]
func (h *SessionHandler) Scroll(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	changed := app.ReleaseAnchor()
	return h.respond(c, fiber.Map{"changed": changed})
}

// Ask godoc
// @Summary Ask the assistant
// @Description Sends the question scoped to the open item; failures come back as the fallback answer
// @Tags Widget
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param question body AskRequest true "Question"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/ask [post]
func (h *SessionHandler) Ask(c *fiber.Ctx) error {
	var req AskRequest
	if err := bind(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	answer, err := app.Ask(c.UserContext(), req.Question)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, fiber.Map{"answer": answer})
}

// GetCatalog godoc
// @Summary List demos or documents
// @Tags Widget
// @Produce json
// @Param id path string true "Session ID"
// @Param kind path string true "demos or docs"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/catalog/{kind} [get]
func (h *SessionHandler) GetCatalog(c *fiber.Ctx) error {
	var kind botapi.ItemKind
	switch strings.ToLower(c.Params("kind")) {
	case "demo", "demos":
		kind = botapi.KindDemo
	case "doc", "docs", "documents":
		kind = botapi.KindDoc
	default:
		return c.Status(400).JSON(fiber.Map{"error": "kind must be demos or docs"})
	}
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	items, err := app.Catalog(c.UserContext(), kind)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, fiber.Map{"items": items})
}

// GetPricing godoc
// @Summary Get pricing flow
// @Description Loads the questions on first use
// @Tags Pricing
// @Produce json
// @Param id path string true "Session ID"
// @Param reload query bool false "Reload questions"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/pricing [get]
func (h *SessionHandler) GetPricing(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	p := app.Pricing()
	if p == nil || p.Phase == widget.PhaseLoading || c.QueryBool("reload") {
		if p, err = app.LoadPricing(c.UserContext()); err != nil && isStateError(err) {
			return fail(c, err)
		}
	}
	return h.respond(c, pricingView(p))
}

// SetAnswer godoc
// @Summary Answer a pricing question
// @Description Multi-select questions toggle the value, single-select questions replace it
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param key path string true "Question key"
// @Param answer body AnswerRequest true "Value"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/pricing/answers/{key} [put]
func (h *SessionHandler) SetAnswer(c *fiber.Ctx) error {
	var req AnswerRequest
	if err := bind(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	p, err := app.SetPriceAnswer(c.Params("key"), req.Value)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, pricingView(p))
}

// ClearAnswer godoc
// @Summary Clear a pricing answer
// @Tags Pricing
// @Produce json
// @Param id path string true "Session ID"
// @Param key path string true "Question key"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/pricing/answers/{key} [delete]
func (h *SessionHandler) ClearAnswer(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	p, err := app.ClearPriceAnswer(c.Params("key"))
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, pricingView(p))
}

// ComputeEstimate godoc
// @Summary Compute the price estimate
// @Tags Pricing
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/pricing/estimate [post]
func (h *SessionHandler) ComputeEstimate(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	p, err := app.ComputeEstimate(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, pricingView(p))
}

// GetMeeting godoc
// @Summary Get scheduling details
// @Tags Meeting
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/meeting [get]
func (h *SessionHandler) GetMeeting(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	m, err := app.LoadMeeting(c.UserContext())
	if err != nil && isStateError(err) {
		return fail(c, err)
	}
	return h.respond(c, fiber.Map{"meeting": m})
}

// GetMeetingQR godoc
// @Summary Calendar link QR code
// @Tags Meeting
// @Produce png
// @Param id path string true "Session ID"
// @Param size query int false "Size in pixels"
// @Success 200 {file} binary
// @Router /widget/sessions/{id}/meeting/qr.png [get]
func (h *SessionHandler) GetMeetingQR(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	png, err := app.MeetingQR(c.QueryInt("size"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// ForwardMeetingEvent godoc
// @Summary Forward a scheduling embed event
// @Description Fire-and-forget; always accepted
// @Tags Meeting
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} map[string]interface{}
// @Router /widget/sessions/{id}/meeting/events [post]
func (h *SessionHandler) ForwardMeetingEvent(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	queued := app.ForwardCalendlyEvent(json.RawMessage(c.Body()))
	return c.Status(202).JSON(fiber.Map{"forwarded": queued})
}

// GetThemeCSS godoc
// @Summary Composed theme stylesheet
// @Tags Theme
// @Produce text/css
// @Param id path string true "Session ID"
// @Success 200 {string} string
// @Router /widget/sessions/{id}/theme.css [get]
func (h *SessionHandler) GetThemeCSS(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	return c.SendString(app.ThemeCSS())
}

// ApplyOverrides godoc
// @Summary Apply live theme overrides
// @Description Preview bridge; an empty value removes the override
// @Tags Theme
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param overrides body OverridesRequest true "Overrides"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/theme/overrides [put]
func (h *SessionHandler) ApplyOverrides(c *fiber.Ctx) error {
	var req OverridesRequest
	if err := bind(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	vars, err := app.ApplyOverrides(req.Overrides)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, fiber.Map{"theme": vars.Map()})
}

// ThemeLabStatus godoc
// @Summary Theme editor status
// @Tags ThemeLab
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/themelab/status [get]
func (h *SessionHandler) ThemeLabStatus(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	st, err := app.ThemeLabStatus(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, fiber.Map{"themelab": st})
}

// ThemeLabLogin godoc
// @Summary Theme editor login
// @Tags ThemeLab
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param login body LoginRequest true "Password"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/themelab/login [post]
func (h *SessionHandler) ThemeLabLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	st, err := app.ThemeLabLogin(c.UserContext(), req.Password)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, fiber.Map{"themelab": st})
}

// GetClientTokens godoc
// @Summary Load saved editor tokens
// @Description Replaces the live override layer
// @Tags ThemeLab
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/themelab/tokens [get]
func (h *SessionHandler) GetClientTokens(c *fiber.Ctx) error {
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	tokens, err := app.LoadClientTokens(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, fiber.Map{"tokens": tokens})
}

// SaveClientTokens godoc
// @Summary Save editor tokens
// @Description Merges the optional overrides, then saves the override layer
// @Tags ThemeLab
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param overrides body OverridesRequest false "Overrides to merge first"
// @Success 200 {object} map[string]interface{}
// @Router /widget/sessions/{id}/themelab/tokens [post]
func (h *SessionHandler) SaveClientTokens(c *fiber.Ctx) error {
	var req OverridesRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}
	app, err := h.sessionService.App(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if len(req.Overrides) > 0 {
		if _, err := app.ApplyOverrides(req.Overrides); err != nil {
			return fail(c, err)
		}
	}
	if err := app.SaveClientTokens(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return h.respond(c, fiber.Map{"saved": true})
}

// respond persists the session and returns extra fields alongside its state.
func (h *SessionHandler) respond(c *fiber.Ctx, extra fiber.Map) error {
	state, err := h.sessionService.Save(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	body := fiber.Map{"state": state.Public()}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}

func pricingView(p *widget.Pricing) fiber.Map {
	if p == nil {
		return fiber.Map{"pricing": nil}
	}
	return fiber.Map{
		"pricing":       p,
		"next_question": p.NextQuestion(),
		"surfaced":      p.Surfaced(),
	}
}

// isStateError reports errors that reject the request outright, as opposed to
// platform failures that are already recorded in the session state.
func isStateError(err error) bool {
	_, ok := statusFor(err)
	return ok
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return 404, true
	case errors.Is(err, widget.ErrEmptyQuestion),
		errors.Is(err, widget.ErrUnknownTab),
		errors.Is(err, widget.ErrInvalidItem),
		errors.Is(err, widget.ErrUnknownQuestion),
		errors.Is(err, widget.ErrUnknownOption),
		errors.Is(err, widget.ErrEmptyAnswer):
		return 400, true
	case errors.Is(err, widget.ErrThemeLabAuth):
		return 401, true
	case errors.Is(err, widget.ErrPreviewDisabled),
		errors.Is(err, widget.ErrThemeLabDisabled):
		return 403, true
	case errors.Is(err, widget.ErrNoCalendarLink):
		return 404, true
	case errors.Is(err, widget.ErrNoBot),
		errors.Is(err, widget.ErrTabDisabled),
		errors.Is(err, widget.ErrItemNotAllowed),
		errors.Is(err, widget.ErrMissingAnswers),
		errors.Is(err, widget.ErrQuestionsNotLoaded),
		errors.Is(err, widget.ErrEstimateRunning),
		errors.Is(err, widget.ErrSuperseded),
		errors.Is(err, identity.ErrInvalidAlias):
		return 409, true
	}
	return 0, false
}

func fail(c *fiber.Ctx, err error) error {
	if status, ok := statusFor(err); ok {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	utils.LogError("widget request failed", err, map[string]interface{}{
		"path":   c.Path(),
		"method": c.Method(),
	})
	return c.Status(502).JSON(fiber.Map{"error": "bot platform request failed"})
}
