// Package service implements the vault operations: upload staging, the
// ingest/commit pipeline, duplicate grouping and resolution, bulk object
// actions and the hash audit. Each operation is a stateless unit of work;
// all coordination happens in the relational store.
package service

import (
	"context"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/magicfolder/mfvault/pkg/configs"
	ctxPkg "github.com/magicfolder/mfvault/pkg/context"
	"github.com/magicfolder/mfvault/pkg/internal/storage/mq"
	"github.com/magicfolder/mfvault/pkg/log"
	"github.com/magicfolder/mfvault/pkg/queue"
)

// ObjectStore is the storage capability the pipeline depends on. The
// production implementation is the minio-backed s3.Client; tests substitute
// an in-memory fake.
type ObjectStore interface {
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Copy(ctx context.Context, srcKey, dstKey string) error
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Remove(ctx context.Context, key string) error
}

// VaultService carries the dependencies of the vault operations.
type VaultService struct {
	store ObjectStore
	db    *gorm.DB
	mq    *mq.Client
	cfg   configs.VaultConfig
}

// NewVaultService builds a service from the storage manager carried in ctx.
func NewVaultService(c context.Context) *VaultService {
	svc := &VaultService{
		cfg: configs.GetConfig().Vault,
	}

	if s3c := ctxPkg.GetS3Client(c); s3c != nil {
		svc.store = s3c
	}

	if dbc := ctxPkg.GetDBClient(c); dbc != nil {
		svc.db = dbc.GetDB()
	}

	svc.mq = ctxPkg.GetMQClient(c)

	return svc
}

// NewVaultServiceWith builds a service from explicit dependencies.
func NewVaultServiceWith(store ObjectStore, db *gorm.DB, mqClient *mq.Client, cfg configs.VaultConfig) *VaultService {
	return &VaultService{store: store, db: db, mq: mqClient, cfg: cfg}
}

// publish sends one event, best effort. Event delivery never gates a
// storage operation.
func publish[T any](s *VaultService, topic string, payload T) {
	if s.mq == nil {
		return
	}

	msg, err := queue.NewWatermillMessage(topic, payload)
	if err != nil {
		log.Logger().Warn().Err(err).Str("topic", topic).Msg("encode event failed")
		return
	}

	if err := s.mq.Publish(context.Background(), topic, msg); err != nil {
		log.Logger().Warn().Err(err).Str("topic", topic).Msg("publish event failed")
	}
}

// tenantScope filters every statement to one tenant. All reads and writes
// of vault rows go through this; duplicate matching is intra-tenant only.
func tenantScope(tenantID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
