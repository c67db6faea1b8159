package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stepClock advances one second on every reading so creation order is
// always visible in timestamps
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []models.Notification
	err       error
}

func (p *recordingPublisher) PublishNotification(_ context.Context, n *models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, *n)
	return nil
}

type memoryJournal struct {
	mu      sync.Mutex
	entries []models.Activity
	err     error
}

func (j *memoryJournal) RecordActivity(_ context.Context, a *models.Activity) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, *a)
	return nil
}

func (j *memoryJournal) GetActivitiesByActorID(_ context.Context, actorID uint, skip, limit int64) ([]models.Activity, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := []models.Activity{}
	for i := len(j.entries) - 1; i >= 0; i-- {
		if j.entries[i].ActorID == actorID {
			out = append(out, j.entries[i])
		}
	}
	if skip >= int64(len(out)) {
		return []models.Activity{}, nil
	}
	out = out[skip:]
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (j *memoryJournal) verbs() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	verbs := make([]string, len(j.entries))
	for i, e := range j.entries {
		verbs[i] = e.Verb
	}
	return verbs
}

type fixture struct {
	db        *gorm.DB
	store     *repositories.Store
	svc       *Services
	publisher *recordingPublisher
	journal   *memoryJournal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repositories.AutoMigrate(db))

	f := &fixture{
		db:        db,
		store:     repositories.NewStore(db),
		publisher: &recordingPublisher{},
		journal:   &memoryJournal{},
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = New(f.store, f.journal, f.publisher, quiet)

	clock := &stepClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	f.svc.Relationships.now = clock.Now
	f.svc.Content.now = clock.Now
	f.svc.Notifications.now = clock.Now
	return f
}

func (f *fixture) user(t *testing.T, handle string) *models.User {
	t.Helper()
	u, err := f.svc.Users.Register(context.Background(), models.CreateUserRequest{Handle: handle})
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()
	p, err := f.svc.Content.CreatePost(context.Background(), author.ID, models.CreatePostRequest{Title: title, Content: title + " body"})
	require.NoError(t, err)
	return p
}

func (f *fixture) follow(t *testing.T, follower, target *models.User) {
	t.Helper()
	_, err := f.svc.Relationships.Follow(context.Background(), follower.ID, target.ID)
	require.NoError(t, err)
}

func (f *fixture) notificationsFor(t *testing.T, recipient *models.User) []models.Notification {
	t.Helper()
	var out []models.Notification
	require.NoError(t, f.db.Where("recipient_id = ?", recipient.ID).Order("id").Find(&out).Error)
	return out
}

var errBoom = errors.New("boom")
