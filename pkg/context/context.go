// Package context carries the storage manager through request contexts so
// services can be constructed anywhere downstream of the middleware chain.
package context

import (
	"context"

	"github.com/magicfolder/mfvault/pkg/internal/storage"
	dbc "github.com/magicfolder/mfvault/pkg/internal/storage/db"
	mqc "github.com/magicfolder/mfvault/pkg/internal/storage/mq"
	s3c "github.com/magicfolder/mfvault/pkg/internal/storage/s3"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
)

// WithStorageManager stores the Manager in the context.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager retrieves the Manager from the context.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetS3Client retrieves the object store client from the context.
func GetS3Client(ctx context.Context) *s3c.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetS3Client()
	}

	return nil
}

// GetDBClient retrieves the database client from the context.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// GetMQClient retrieves the message queue client from the context.
func GetMQClient(ctx context.Context) *mqc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMQClient()
	}

	return nil
}
