package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/identity"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/widget"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/models"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/repositories"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

var ErrSessionNotFound = repositories.ErrSessionNotFound

// CreateSessionRequest mirrors the widget URL parameters.
type CreateSessionRequest struct {
	Alias    string `json:"alias" query:"alias"`
	BotID    string `json:"bot_id" query:"bot_id"`
	ThemeLab bool   `json:"themelab" query:"themelab"`
	Preview  bool   `json:"preview" query:"preview"`
}

type liveSession struct {
	app      *widget.App
	saveMu   sync.Mutex
	lastSeen time.Time
}

// SessionService owns the live widget apps and keeps their persisted copy in
// step. Apps are cached in memory and rebuilt from the store on a miss, so a
// restarted process picks sessions up where they were.
type SessionService struct {
	repo         repositories.SessionRepo
	api          widget.Platform
	opts         widget.Options
	defaultAlias string
	now          func() time.Time

	mu   sync.Mutex
	live map[string]*liveSession
}

// NewSessionService creates the widget session service.
func NewSessionService(repo repositories.SessionRepo, api widget.Platform, opts widget.Options, defaultAlias string) *SessionService {
	return &SessionService{
		repo:         repo,
		api:          api,
		opts:         opts,
		defaultAlias: defaultAlias,
		now:          time.Now,
		live:         map[string]*liveSession{},
	}
}

// Create starts a new widget session. An invalid alias still yields a
// session; its state carries the fatal error the widget shows.
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (string, widget.State, error) {
	id := uuid.NewString()
	app := widget.NewApp(s.api, s.opts)

	err := app.Start(ctx, identity.Inputs{
		AliasFromURL: req.Alias,
		BotIDFromURL: req.BotID,
		DefaultAlias: s.defaultAlias,
	}, widget.Flags{ThemeLab: req.ThemeLab, Preview: req.Preview})
	if err != nil && !errors.Is(err, identity.ErrInvalidAlias) {
		return "", widget.State{}, err
	}

	state := app.Snapshot()
	row, err := s.row(id, state)
	if err != nil {
		return "", widget.State{}, err
	}
	if err := s.repo.Create(row); err != nil {
		return "", widget.State{}, fmt.Errorf("failed to create widget session: %w", err)
	}

	s.mu.Lock()
	s.live[id] = &liveSession{app: app, lastSeen: row.LastSeenAt}
	s.mu.Unlock()

	utils.LogInfo("widget session created", map[string]interface{}{
		"session": id,
		"bot_id":  state.Identity.BotID,
		"status":  state.Status,
	})
	return id, state, nil
}

// App returns the live app for a session, restoring it from the store if needed.
func (s *SessionService) App(id string) (*widget.App, error) {
	ls, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return ls.app, nil
}

func (s *SessionService) session(id string) (*liveSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ls, ok := s.live[id]; ok {
		ls.lastSeen = s.now()
		return ls, nil
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	var state widget.State
	if len(row.State) > 0 {
		if err := json.Unmarshal(row.State, &state); err != nil {
			return nil, fmt.Errorf("failed to decode widget session %s: %w", id, err)
		}
	}
	app := widget.NewApp(s.api, s.opts)
	app.Restore(state)

	ls := &liveSession{app: app, lastSeen: s.now()}
	s.live[id] = ls
	utils.LogDebug("widget session restored", map[string]interface{}{"session": id})
	return ls, nil
}

// Save persists the session's current state and returns it.
func (s *SessionService) Save(id string) (widget.State, error) {
	ls, err := s.session(id)
	if err != nil {
		return widget.State{}, err
	}

	ls.saveMu.Lock()
	defer ls.saveMu.Unlock()
	state := ls.app.Snapshot()
	row, err := s.row(id, state)
	if err != nil {
		return state, err
	}
	if err := s.repo.Update(row); err != nil {
		return state, fmt.Errorf("failed to save widget session: %w", err)
	}
	return state, nil
}

// Snapshot returns the session state without persisting it.
func (s *SessionService) Snapshot(id string) (widget.State, error) {
	app, err := s.App(id)
	if err != nil {
		return widget.State{}, err
	}
	return app.Snapshot(), nil
}

// Delete removes a session from memory and the store.
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
	return s.repo.Delete(id)
}

// SweepIdle drops sessions idle for longer than ttl from memory and the store.
// Live sessions still in use have their last-seen time written back first,
// so reads that never save do not let the stored row expire under them.
func (s *SessionService) SweepIdle(ttl time.Duration) (int, error) {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	evicted := 0
	active := make(map[string]time.Time, len(s.live))
	for id, ls := range s.live {
		if ls.lastSeen.Before(cutoff) {
			delete(s.live, id)
			evicted++
			continue
		}
		active[id] = ls.lastSeen
	}
	s.mu.Unlock()

	for id, seen := range active {
		err := s.repo.Touch(id, seen)
		if errors.Is(err, ErrSessionNotFound) {
			s.mu.Lock()
			delete(s.live, id)
			s.mu.Unlock()
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to touch widget session %s: %w", id, err)
		}
	}

	ids, err := s.repo.DeleteIdleBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep widget sessions: %w", err)
	}
	if len(ids) > 0 || evicted > 0 {
		utils.LogInfo("idle widget sessions swept", map[string]interface{}{
			"deleted": len(ids),
			"evicted": evicted,
		})
	}
	return len(ids), nil
}

func (s *SessionService) row(id string, state widget.State) (*models.WidgetSession, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode widget session: %w", err)
	}
	return &models.WidgetSession{
		ID:         id,
		BotID:      state.Identity.BotID,
		Alias:      state.Identity.Alias,
		Status:     string(state.Status),
		State:      datatypes.JSON(raw),
		LastSeenAt: s.now(),
	}, nil
}
