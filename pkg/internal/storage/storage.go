// Package storage aggregates the storage clients: object store, relational
// database and message queue.
//
// Example:
//
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//		// handle error
//	}
//
//	s3Client := mgr.GetS3Client()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"

	"github.com/magicfolder/mfvault/pkg/internal/model"
	dbc "github.com/magicfolder/mfvault/pkg/internal/storage/db"
	mqc "github.com/magicfolder/mfvault/pkg/internal/storage/mq"
	s3c "github.com/magicfolder/mfvault/pkg/internal/storage/s3"
	nlog "github.com/magicfolder/mfvault/pkg/log"
)

// Manager aggregates all storage resources.
type Manager struct {
	S3 *s3c.Client
	DB *dbc.Client
	MQ *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init initializes the default storage clients from the global configuration.
// Repeated calls return the already-initialized instance.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		if dbi, e := dbc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.DB = dbi
		}

		if e := m.DB.WithContext(ctx).AutoMigrate(model.All()...); e != nil {
			err = e
			return
		}

		if s3i, e := s3c.New(ctx); e != nil {
			err = e
			return
		} else {
			m.S3 = s3i
		}

		// MQ is optional; New returns (nil, nil) when disabled.
		if mqi, e := mqc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.MQ = mqi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetS3Client returns the object store client.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient returns the database client.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetMQClient returns the message queue client, nil when disabled.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}
