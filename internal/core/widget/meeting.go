package widget

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

const (
	AgentFailedMessage = "Unable to load scheduling details."
	defaultQRSize      = 256
	maxQRSize          = 1024
)

// MeetingState backs the meeting screen.
type MeetingState struct {
	Loaded  bool         `json:"loaded"`
	Loading bool         `json:"loading"`
	Agent   botapi.Agent `json:"agent"`
	Error   string       `json:"error,omitempty"`
}

// Meeting returns the meeting state.
func (a *App) Meeting() MeetingState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.meeting
}

// LoadMeeting fetches the scheduling agent for the meeting screen.
func (a *App) LoadMeeting(ctx context.Context) (MeetingState, error) {
	a.mu.Lock()
	if !a.identity.Resolved() {
		defer a.mu.Unlock()
		return a.meeting, ErrNoBot
	}
	if !a.tabEnabled(ScreenMeeting) {
		defer a.mu.Unlock()
		return a.meeting, ErrTabDisabled
	}
	a.meeting.Loading = true
	gen := a.gens.next(resAgent)
	id := a.identity.API()
	a.mu.Unlock()

	resp, err := a.api.Agent(ctx, id)

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gens.current(resAgent, gen) {
		return a.meeting, ErrSuperseded
	}
	a.meeting.Loading = false
	if err != nil {
		utils.LogError("agent fetch failed", err, map[string]interface{}{"bot_id": id.BotID})
		a.meeting.Error = AgentFailedMessage
		return a.meeting, err
	}
	a.meeting = MeetingState{Loaded: true, Agent: botapi.AgentFrom(resp)}
	return a.meeting, nil
}

// MeetingQR encodes the calendar link as a PNG for phone hand-off.
func (a *App) MeetingQR(size int) ([]byte, error) {
	a.mu.Lock()
	link := a.meeting.Agent.CalendarLink
	a.mu.Unlock()
	if link == "" {
		return nil, ErrNoCalendarLink
	}
	if size <= 0 {
		size = defaultQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}

type calendlyMessage struct {
	Event string `json:"event"`
}

// IsCalendlyEvent reports whether an embed message is a calendly.* event.
func IsCalendlyEvent(payload json.RawMessage) bool {
	var msg calendlyMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return false
	}
	return strings.HasPrefix(msg.Event, "calendly.")
}

// ForwardCalendlyEvent relays a scheduling embed event to the platform in the
// background. Non-calendly messages are ignored and failures are only logged,
// so the visitor never sees telemetry problems. It reports whether the event
// was queued.
func (a *App) ForwardCalendlyEvent(payload json.RawMessage) bool {
	if !IsCalendlyEvent(payload) {
		return false
	}
	a.mu.Lock()
	if !a.identity.Resolved() {
		a.mu.Unlock()
		return false
	}
	req := botapi.CalendlyEventRequest{
		BotID:     a.identity.BotID,
		SessionID: a.identity.SessionID,
		VisitorID: a.identity.VisitorID,
		Payload:   append(json.RawMessage(nil), payload...),
	}
	a.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryTimeout)
		defer cancel()
		if err := a.api.CalendlyEvent(ctx, req); err != nil {
			utils.LogDebug("calendly event not forwarded", map[string]interface{}{
				"bot_id": req.BotID,
				"error":  err.Error(),
			})
		}
	}()
	return true
}
