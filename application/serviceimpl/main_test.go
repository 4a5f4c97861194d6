package serviceimpl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
	"rsvp-backend/domain/services"
	"rsvp-backend/infrastructure/postgres"
	"rsvp-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "serviceimpl-logs")
	if err != nil {
		panic(err)
	}
	if err := logger.Init(dir, false); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

var testAdmin = &services.AdminContext{SessionID: "test-session"}

type testStore struct {
	db           *gorm.DB
	guests       repositories.GuestRepository
	stories      repositories.StoryRepository
	activity     services.ActivityLogService
	activityRepo repositories.ActivityLogRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rsvp.db")), postgres.NewGormConfig("silent"))
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	activityRepo := postgres.NewActivityLogRepository(db)
	return &testStore{
		db:           db,
		guests:       postgres.NewGuestRepository(db),
		stories:      postgres.NewStoryRepository(db),
		activity:     NewActivityLogService(activityRepo),
		activityRepo: activityRepo,
	}
}

func (s *testStore) recentActivity(t *testing.T, activityType models.ActivityType) []models.ActivityLog {
	t.Helper()
	logs, _, err := s.activityRepo.GetRecent(context.Background(), activityType, 0, 100)
	require.NoError(t, err)
	return logs
}

func strPtr(s string) *string {
	return &s
}

// memoryCache is an in-process GuestSearchCache that counts invalidations.
type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]models.Guest
	version     int64
	invalidated int
	failGet     bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]models.Guest)}
}

func (c *memoryCache) Get(ctx context.Context, query string) ([]models.Guest, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, 0, false, errors.New("cache down")
	}
	guests, ok := c.entries[query]
	return guests, c.version, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, version int64, query string, guests []models.Guest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		return nil
	}
	c.entries[query] = guests
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]models.Guest)
	c.version++
	c.invalidated++
	return nil
}

// fakeStorage records uploads and deletes in memory.
type fakeStorage struct {
	configured bool
	cdn        string
	uploads    map[string][]byte
	deleted    []string
	deleteErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		configured: true,
		cdn:        "https://cdn.example.com",
		uploads:    make(map[string][]byte),
	}
}

func (f *fakeStorage) IsConfigured() bool { return f.configured }

func (f *fakeStorage) UploadFile(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	f.uploads[path] = data
	return f.cdn + "/" + path, nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) Owns(fileURL string) bool {
	return strings.HasPrefix(fileURL, f.cdn+"/")
}

func (f *fakeStorage) DeleteByURL(ctx context.Context, fileURL string) error {
	return f.DeleteFile(ctx, strings.TrimPrefix(fileURL, f.cdn+"/"))
}

func (f *fakeStorage) Ping(ctx context.Context) error { return nil }

// memoryRevocations is a SessionRevocationStore backed by a map.
type memoryRevocations struct {
	revoked map[string]int64
	err     error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: make(map[string]int64)}
}

func (m *memoryRevocations) Revoke(ctx context.Context, sessionID string, ttlSeconds int64) error {
	if m.err != nil {
		return m.err
	}
	m.revoked[sessionID] = ttlSeconds
	return nil
}

func (m *memoryRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[sessionID]
	return ok, nil
}
