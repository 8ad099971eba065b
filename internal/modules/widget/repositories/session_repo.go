package repositories

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/models"
)

var ErrSessionNotFound = errors.New("widget session not found")

// SessionRepo stores widget session snapshots.
type SessionRepo interface {
	Create(session *models.WidgetSession) error
	GetByID(id string) (*models.WidgetSession, error)
	Update(session *models.WidgetSession) error
	Touch(id string, seenAt time.Time) error
	Delete(id string) error
	DeleteIdleBefore(cutoff time.Time) ([]string, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates a gorm-backed session repository.
func NewSessionRepo(db *gorm.DB) SessionRepo {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(session *models.WidgetSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepo) GetByID(id string) (*models.WidgetSession, error) {
	var session models.WidgetSession
	err := r.db.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Update writes the mutable columns; created_at is left untouched.
func (r *sessionRepo) Update(session *models.WidgetSession) error {
	res := r.db.Model(session).
		Select("bot_id", "alias", "status", "state", "last_seen_at", "updated_at").
		Updates(session)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Touch moves last_seen_at forward without rewriting the state.
func (r *sessionRepo) Touch(id string, seenAt time.Time) error {
	res := r.db.Model(&models.WidgetSession{}).
		Where("id = ?", id).
		Update("last_seen_at", seenAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepo) Delete(id string) error {
	return r.db.Delete(&models.WidgetSession{}, "id = ?", id).Error
}

// DeleteIdleBefore removes sessions not seen since cutoff and returns their ids.
func (r *sessionRepo) DeleteIdleBefore(cutoff time.Time) ([]string, error) {
	var ids []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.WidgetSession{}).
			Where("last_seen_at < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Delete(&models.WidgetSession{}, "id IN ?", ids).Error
	})
	return ids, err
}

// memorySessionRepo backs sessions when no database is configured.
type memorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]models.WidgetSession
}

// NewMemorySessionRepo creates a process-local session repository.
func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{sessions: map[string]models.WidgetSession{}}
}

func (r *memorySessionRepo) Create(session *models.WidgetSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[session.ID]; exists {
		return errors.New("widget session already exists")
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	r.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepo) GetByID(id string) (*models.WidgetSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (r *memorySessionRepo) Update(session *models.WidgetSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sessions[session.ID]
	if !ok {
		return ErrSessionNotFound
	}
	session.CreatedAt = existing.CreatedAt
	session.UpdatedAt = time.Now()
	r.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepo) Touch(id string, seenAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.LastSeenAt = seenAt
	session.UpdatedAt = time.Now()
	r.sessions[id] = session
	return nil
}

func (r *memorySessionRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memorySessionRepo) DeleteIdleBefore(cutoff time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, s := range r.sessions {
		if s.LastSeenAt.Before(cutoff) {
			ids = append(ids, id)
			delete(r.sessions, id)
		}
	}
	return ids, nil
}
