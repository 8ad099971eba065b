package repositories

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/models"
)

func sqliteRepo(t *testing.T) SessionRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.WidgetSession{}))
	return NewSessionRepo(db)
}

func TestSessionRepos(t *testing.T) {
	repos := map[string]func(t *testing.T) SessionRepo{
		"gorm":   sqliteRepo,
		"memory": func(*testing.T) SessionRepo { return NewMemorySessionRepo() },
	}

	for name, mk := range repos {
		t.Run(name, func(t *testing.T) {
			repo := mk(t)
			now := time.Now().UTC().Truncate(time.Second)

			s := &models.WidgetSession{
				ID:         "11111111-1111-1111-1111-111111111111",
				BotID:      "b1",
				Status:     "ready",
				State:      datatypes.JSON(`{"status":"ready"}`),
				LastSeenAt: now,
			}
			require.NoError(t, repo.Create(s))

			got, err := repo.GetByID(s.ID)
			require.NoError(t, err)
			assert.Equal(t, "b1", got.BotID)
			assert.JSONEq(t, `{"status":"ready"}`, string(got.State))

			got.Status = "fatal"
			got.LastSeenAt = now.Add(-time.Hour)
			require.NoError(t, repo.Update(got))

			fresh := &models.WidgetSession{ID: "22222222-2222-2222-2222-222222222222", State: datatypes.JSON(`{}`), LastSeenAt: now}
			require.NoError(t, repo.Create(fresh))

			ids, err := repo.DeleteIdleBefore(now.Add(-time.Minute))
			require.NoError(t, err)
			assert.Equal(t, []string{s.ID}, ids)

			_, err = repo.GetByID(s.ID)
			assert.ErrorIs(t, err, ErrSessionNotFound)

			require.NoError(t, repo.Delete(fresh.ID))
			_, err = repo.GetByID(fresh.ID)
			assert.ErrorIs(t, err, ErrSessionNotFound)

			stale := &models.WidgetSession{ID: "33333333-3333-3333-3333-333333333333", State: datatypes.JSON(`{}`), LastSeenAt: now.Add(-time.Hour)}
			require.NoError(t, repo.Create(stale))
			require.NoError(t, repo.Touch(stale.ID, now))
			ids, err = repo.DeleteIdleBefore(now.Add(-time.Minute))
			require.NoError(t, err)
			assert.Empty(t, ids)

			got, err = repo.GetByID(stale.ID)
			require.NoError(t, err)
			assert.JSONEq(t, `{}`, string(got.State))

			assert.ErrorIs(t, repo.Touch("44444444-4444-4444-4444-444444444444", now), ErrSessionNotFound)
		})
	}
}
