package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/magicfolder/mfvault/pkg/configs"
	"github.com/magicfolder/mfvault/pkg/internal/model"
)

// fakeStore is an in-memory ObjectStore for tests.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) put(key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = append([]byte(nil), data...)
}

func (f *fakeStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]

	return ok
}

func (f *fakeStore) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://store.test/put/" + key, nil
}

func (f *fakeStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if !f.has(key) {
		return "", fmt.Errorf("object %s does not exist", key)
	}

	return "https://store.test/get/" + key, nil
}

func (f *fakeStore) Copy(ctx context.Context, srcKey, dstKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.objects[srcKey]
	if !ok {
		return fmt.Errorf("object %s does not exist", srcKey)
	}

	f.objects[dstKey] = append([]byte(nil), data...)

	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.objects[key]
	if !ok {
		return nil, 0, fmt.Errorf("object %s does not exist", key)
	}

	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)

	return nil
}

func testVaultConfig() configs.VaultConfig {
	return configs.VaultConfig{
		PresignExpiryMinutes: 15,
		UploadTTLHours:       24,
		MaxUploadSizeBytes:   1 << 20,
		IngestTimeoutSeconds: 30,
		AuditSampleSize:      100,
		AuditBudgetSeconds:   30,
	}
}

func newTestService(t *testing.T) (*VaultService, *fakeStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.All()...))

	store := newFakeStore()

	return NewVaultServiceWith(store, db, nil, testVaultConfig()), store
}
