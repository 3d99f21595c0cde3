package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/magicfolder/mfvault/pkg/internal/model"
	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/log"
	"github.com/magicfolder/mfvault/pkg/metrics"
	"github.com/magicfolder/mfvault/pkg/queue"
)

// FinalizeIngest verifies a staged upload and commits it to canonical
// storage. The pipeline is a two-phase commit over two stores:
//
//  1. Assign the object/version ids and record them on the staging row.
//  2. Copy (never move) the quarantine bytes to the canonical key derived
//     from those ids.
//  3. In one transaction: create the Object and Version rows, run duplicate
//     grouping over the committed versions of the tenant, and flip the
//     upload to ingested with its result.
//  4. Best effort: drop the quarantine copy.
//
// Every step is idempotent, so a finalize interrupted anywhere can be
// retried and converges on the same object, version and group ids. A
// finalize of an already ingested upload returns the recorded result
// without touching storage.
//
// Two concurrent ingests of identical content can both pass the duplicate
// probe before either commits; both versions are then committed and the
// second grouping pass clusters them. The window produces a short-lived
// ungrouped duplicate, never lost bytes.
func (s *VaultService) FinalizeIngest(ctx context.Context, tenantID, uploadID string) (*types.IngestResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.IngestTimeout())
	defer cancel()

	up, err := s.loadUpload(ctx, tenantID, uploadID)
	if err != nil {
		return nil, err
	}

	switch up.Status {
	case model.UploadStatusIngested:
		return &types.IngestResponse{
			ObjectID:         up.ObjectID,
			VersionID:        up.VersionID,
			DuplicateGroupID: up.GroupID,
			ContentHash:      s.ingestedHash(ctx, up),
		}, nil
	case model.UploadStatusFailed:
		return nil, types.InvalidUploadStatus("upload already failed: " + up.FailCause)
	case model.UploadStatusPresigned:
		return nil, types.InvalidUploadStatus("upload not confirmed, call complete first")
	case model.UploadStatusUploaded:
		// proceed
	default:
		return nil, types.InvalidUploadStatus("upload is " + string(up.Status))
	}

	dg, ferr := s.verifyQuarantine(ctx, up)
	if ferr != nil {
		return nil, s.markFailed(ctx, up, ferr)
	}

	// Assign identities before any canonical write so a retry reuses the
	// same keys instead of leaking half-committed blobs.
	if up.ObjectID == "" {
		up.ObjectID = uuid.NewString()
		up.VersionID = uuid.NewString()

		err := s.db.WithContext(ctx).Model(&model.Upload{}).
			Where("id = ?", up.ID).
			Updates(map[string]any{"object_id": up.ObjectID, "version_id": up.VersionID}).Error
		if err != nil {
			return nil, types.StorageUnavailable(err)
		}
	}

	srcKey := quarantineKey(tenantID, up.ID)
	dstKey := canonicalSourceKey(tenantID, up.ObjectID, up.VersionID)

	if err := s.store.Copy(ctx, srcKey, dstKey); err != nil {
		// transient: the upload stays uploaded and finalize may be retried
		return nil, types.StorageUnavailable(err)
	}

	var groupID string

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		obj := model.Object{
			ID:               up.ObjectID,
			TenantID:         tenantID,
			OwnerID:          up.OwnerID,
			Title:            up.FileName,
			DocType:          up.ContentType,
			Status:           model.ObjectStatusInbox,
			CurrentVersionID: up.VersionID,
		}
		if err := tx.Where("id = ?", obj.ID).FirstOrCreate(&obj).Error; err != nil {
			return err
		}

		ver := model.Version{
			ID:          up.VersionID,
			ObjectID:    up.ObjectID,
			TenantID:    tenantID,
			ContentHash: dg.Hash,
			QuickHash:   dg.Quick,
			SizeBytes:   dg.Size,
			MimeType:    up.ContentType,
		}
		if err := tx.Where("id = ?", ver.ID).FirstOrCreate(&ver).Error; err != nil {
			return err
		}

		gid, err := s.groupDuplicates(tx, &ver)
		if err != nil {
			return err
		}
		groupID = gid

		return tx.Model(&model.Upload{}).
			Where("id = ?", up.ID).
			Updates(map[string]any{"status": model.UploadStatusIngested, "group_id": groupID}).Error
	})
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	// quarantine copy is no longer needed; the GC job retries on failure
	if err := s.store.Remove(ctx, srcKey); err != nil {
		log.Logger().Warn().Err(err).Str("upload", up.ID).Msg("quarantine cleanup deferred")
	}

	metrics.IngestTotal.WithLabelValues("ingested").Inc()

	publish(s, queue.TopicVersionIngested, queue.VersionIngestedPayload{
		Version: queue.VersionRef{
			TenantID:    tenantID,
			ObjectID:    up.ObjectID,
			VersionID:   up.VersionID,
			ContentHash: dg.Hash,
			SizeBytes:   dg.Size,
			MimeType:    up.ContentType,
		},
		UploadID: up.ID,
		GroupID:  groupID,
	})

	log.Logger().Info().
		Str("tenant", tenantID).
		Str("upload", up.ID).
		Str("object", up.ObjectID).
		Str("version", up.VersionID).
		Str("hash", dg.Hash).
		Str("group", groupID).
		Msg("upload ingested")

	return &types.IngestResponse{
		ObjectID:         up.ObjectID,
		VersionID:        up.VersionID,
		DuplicateGroupID: groupID,
		ContentHash:      dg.Hash,
	}, nil
}

// verifyQuarantine reads the staged bytes and computes the trusted identity.
// Any finding here is the client's fault and permanent for this upload.
func (s *VaultService) verifyQuarantine(ctx context.Context, up *model.Upload) (digest, *types.Error) {
	rc, size, err := s.store.Get(ctx, quarantineKey(up.TenantID, up.ID))
	if err != nil {
		return digest{}, types.IngestFailed("quarantine object missing or unreadable", err)
	}
	defer rc.Close()

	if size == 0 {
		return digest{}, types.IngestFailed("quarantine object is empty", nil)
	}

	dg, err := computeDigest(rc)
	if err != nil {
		return digest{}, types.IngestFailed("reading staged bytes failed", err)
	}

	if dg.Size == 0 {
		return digest{}, types.IngestFailed("quarantine object is empty", nil)
	}

	if dg.Size > s.cfg.MaxUploadSizeBytes {
		return digest{}, types.IngestFailed("staged object exceeds the upload limit", nil)
	}

	if up.DeclaredHash != "" && up.DeclaredHash != dg.Hash {
		return digest{}, types.IngestFailed("declared hash does not match content", nil)
	}

	return dg, nil
}

// markFailed flips the upload to its terminal failed state with a cause.
func (s *VaultService) markFailed(ctx context.Context, up *model.Upload, cause *types.Error) error {
	err := s.db.WithContext(ctx).Model(&model.Upload{}).
		Where("id = ? AND status = ?", up.ID, model.UploadStatusUploaded).
		Updates(map[string]any{"status": model.UploadStatusFailed, "fail_cause": cause.Message}).Error
	if err != nil {
		return types.StorageUnavailable(err)
	}

	metrics.IngestTotal.WithLabelValues("failed").Inc()

	publish(s, queue.TopicUploadFailed, queue.UploadFailedPayload{
		TenantID: up.TenantID,
		UploadID: up.ID,
		Cause:    cause.Message,
	})

	log.Logger().Warn().
		Str("tenant", up.TenantID).
		Str("upload", up.ID).
		Str("cause", cause.Message).
		Msg("ingest failed")

	return cause
}

// ingestedHash recovers the content hash for an idempotent replay of an
// already finalized upload.
func (s *VaultService) ingestedHash(ctx context.Context, up *model.Upload) string {
	var ver model.Version
	if err := s.db.WithContext(ctx).First(&ver, "id = ?", up.VersionID).Error; err != nil {
		return ""
	}

	return ver.ContentHash
}

// groupDuplicates attaches ver to a duplicate group when its content matches
// other committed versions of the same tenant. Byte-identical content joins
// an exact group; equal quickhash and size with a different content hash
// joins a near group. Runs inside the ingest transaction so the membership
// commits atomically with the version itself.
func (s *VaultService) groupDuplicates(tx *gorm.DB, ver *model.Version) (string, error) {
	reason := model.DuplicateReasonExact

	var peers []model.Version

	err := tx.Where("tenant_id = ? AND content_hash = ? AND id <> ?",
		ver.TenantID, ver.ContentHash, ver.ID).Find(&peers).Error
	if err != nil {
		return "", err
	}

	if len(peers) == 0 {
		reason = model.DuplicateReasonNear

		err := tx.Where("tenant_id = ? AND quick_hash = ? AND size_bytes = ? AND content_hash <> ? AND id <> ?",
			ver.TenantID, ver.QuickHash, ver.SizeBytes, ver.ContentHash, ver.ID).Find(&peers).Error
		if err != nil {
			return "", err
		}
	}

	if len(peers) == 0 {
		return "", nil
	}

	peerIDs := make([]string, 0, len(peers))
	for i := range peers {
		peerIDs = append(peerIDs, peers[i].ID)
	}

	// reuse the peers' group when one exists so repeated copies keep
	// accumulating in a single cluster
	var groupID string

	err = tx.Table("duplicate_groups").
		Select("duplicate_groups.id").
		Joins("JOIN duplicate_group_versions ON duplicate_group_versions.group_id = duplicate_groups.id").
		Where("duplicate_groups.tenant_id = ? AND duplicate_groups.reason = ? AND duplicate_group_versions.version_id IN ?",
			ver.TenantID, reason, peerIDs).
		Limit(1).
		Scan(&groupID).Error
	if err != nil {
		return "", err
	}

	members := peerIDs

	if groupID == "" {
		group := model.DuplicateGroup{
			ID:       uuid.NewString(),
			TenantID: ver.TenantID,
			Reason:   reason,
		}
		if err := tx.Create(&group).Error; err != nil {
			return "", err
		}
		groupID = group.ID

		metrics.DuplicateGroupsCreated.WithLabelValues(string(reason)).Inc()
	} else {
		// existing members are already linked
		members = nil
	}

	for _, id := range append(members, ver.ID) {
		m := model.DuplicateGroupVersion{GroupID: groupID, VersionID: id}
		if err := tx.Where("group_id = ? AND version_id = ?", groupID, id).FirstOrCreate(&m).Error; err != nil {
			return "", err
		}
	}

	publish(s, queue.TopicDuplicateDetected, queue.DuplicateDetectedPayload{
		TenantID: ver.TenantID,
		GroupID:  groupID,
		Reason:   string(reason),
		Members:  append(peerIDs, ver.ID),
	})

	return groupID, nil
}
