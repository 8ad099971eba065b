// Package identity turns URL-supplied bot selectors into a canonical bot identity.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
)

// ErrInvalidAlias is the fatal resolution error shown full-screen by the widget.
var ErrInvalidAlias = errors.New("Invalid or inactive alias.")

// BotIdentity is set on the first successful resolution. BotID and Alias never
// change afterwards; SessionID and VisitorID may be backfilled while empty.
type BotIdentity struct {
	BotID     string `json:"bot_id"`
	Alias     string `json:"alias,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	VisitorID string `json:"visitor_id,omitempty"`
}

// Resolved reports whether a bot id is known.
func (id BotIdentity) Resolved() bool {
	return id.BotID != ""
}

// Backfill fills session and visitor ids that are still empty. Existing ids are sticky.
func (id *BotIdentity) Backfill(sessionID, visitorID string) {
	if id.SessionID == "" {
		id.SessionID = strings.TrimSpace(sessionID)
	}
	if id.VisitorID == "" {
		id.VisitorID = strings.TrimSpace(visitorID)
	}
}

// API converts the identity for platform calls.
func (id BotIdentity) API() botapi.Identity {
	return botapi.Identity{BotID: id.BotID, SessionID: id.SessionID, VisitorID: id.VisitorID}
}

// Inputs are the bot selectors taken from the widget URL and config.
type Inputs struct {
	AliasFromURL string `json:"alias,omitempty"`
	BotIDFromURL string `json:"bot_id,omitempty"`
	DefaultAlias string `json:"default_alias,omitempty"`
}

// Path names the lookup that ran.
type Path string

const (
	PathNone         Path = "none"
	PathBotID        Path = "bot_id"
	PathAlias        Path = "alias"
	PathDefaultAlias Path = "default_alias"
)

// Resolution is the outcome of Resolve. Path is PathNone when no input was
// given; that is the "no bot selected" state, not an error.
type Resolution struct {
	Path     Path
	Identity BotIdentity
	Settings botapi.Settings
}

// Unresolved reports the "no bot selected" outcome.
func (r Resolution) Unresolved() bool {
	return r.Path == PathNone
}

// SettingsFetcher is the slice of the platform client the resolver needs.
type SettingsFetcher interface {
	BotSettings(ctx context.Context, q botapi.BotSettingsQuery) (*botapi.BotSettingsResponse, error)
}

// Resolver maps selectors to a bot identity.
type Resolver struct {
	api SettingsFetcher
}

// NewResolver creates a resolver backed by api.
func NewResolver(api SettingsFetcher) *Resolver {
	return &Resolver{api: api}
}

// Resolve runs exactly one lookup, picking bot id over alias over default alias.
// Any failure maps to ErrInvalidAlias; there is no retry.
func (r *Resolver) Resolve(ctx context.Context, in Inputs) (Resolution, error) {
	path, query := choosePath(in)
	if path == PathNone {
		return Resolution{Path: PathNone}, nil
	}

	resp, err := r.api.BotSettings(ctx, query)
	if err != nil {
		return Resolution{Path: path}, errors.Join(ErrInvalidAlias, err)
	}

	settings := botapi.SettingsFrom(resp)
	if settings.BotID == "" {
		return Resolution{Path: path}, ErrInvalidAlias
	}

	alias := query.Alias
	if settings.Alias != "" {
		alias = settings.Alias
	}
	res := Resolution{
		Path: path,
		Identity: BotIdentity{
			BotID: settings.BotID,
			Alias: alias,
		},
		Settings: settings,
	}
	res.Identity.Backfill(string(resp.SessionID), string(resp.VisitorID))
	return res, nil
}

func choosePath(in Inputs) (Path, botapi.BotSettingsQuery) {
	if id := strings.TrimSpace(in.BotIDFromURL); id != "" {
		return PathBotID, botapi.BotSettingsQuery{BotID: id}
	}
	if alias := strings.TrimSpace(in.AliasFromURL); alias != "" {
		return PathAlias, botapi.BotSettingsQuery{Alias: alias}
	}
	if alias := strings.TrimSpace(in.DefaultAlias); alias != "" {
		return PathDefaultAlias, botapi.BotSettingsQuery{Alias: alias}
	}
	return PathNone, botapi.BotSettingsQuery{}
}
