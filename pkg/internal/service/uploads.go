package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/magicfolder/mfvault/pkg/internal/model"
	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/log"
	"github.com/magicfolder/mfvault/pkg/queue"
	"github.com/magicfolder/mfvault/pkg/rule"
)

// BeginUpload creates a staging record and returns a presigned PUT URL into
// the tenant's quarantine prefix. Nothing user-visible exists yet.
func (s *VaultService) BeginUpload(ctx context.Context, tenantID, ownerID string, req *types.BeginUploadRequest) (*types.BeginUploadResponse, error) {
	if err := rule.ValidateStruct(req); err != nil {
		return nil, types.BadRequest(err.Error())
	}

	if req.SizeBytes > s.cfg.MaxUploadSizeBytes {
		return nil, types.BadRequest("declared size exceeds the upload limit")
	}

	expiry := s.cfg.PresignExpiry()
	up := &model.Upload{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		OwnerID:      ownerID,
		Status:       model.UploadStatusPresigned,
		FileName:     req.FileName,
		ContentType:  req.ContentType,
		DeclaredHash: req.DeclaredHash,
		ExpiresAt:    time.Now().Add(s.cfg.UploadTTL()),
	}

	url, err := s.store.PresignPut(ctx, quarantineKey(tenantID, up.ID), expiry)
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	if err := s.db.WithContext(ctx).Create(up).Error; err != nil {
		return nil, types.StorageUnavailable(err)
	}

	publish(s, queue.TopicUploadStaged, queue.UploadStagedPayload{
		TenantID:  tenantID,
		UploadID:  up.ID,
		OwnerID:   ownerID,
		FileName:  up.FileName,
		ExpiresAt: up.ExpiresAt,
	})

	log.Logger().Info().
		Str("tenant", tenantID).
		Str("upload", up.ID).
		Str("file", up.FileName).
		Msg("upload staged")

	return &types.BeginUploadResponse{
		UploadID:         up.ID,
		PresignedPutURL:  url,
		ExpiresInSeconds: int(expiry.Seconds()),
	}, nil
}

// MarkUploaded records the client's claim that the bytes landed in
// quarantine. The claim is not verified here; finalize does that.
func (s *VaultService) MarkUploaded(ctx context.Context, tenantID, uploadID string) (*types.MarkUploadedResponse, error) {
	up, err := s.loadUpload(ctx, tenantID, uploadID)
	if err != nil {
		return nil, err
	}

	switch up.Status {
	case model.UploadStatusPresigned:
		// the only transition this endpoint performs
	case model.UploadStatusUploaded:
		return &types.MarkUploadedResponse{UploadID: up.ID, Status: string(up.Status)}, nil
	default:
		return nil, types.InvalidUploadStatus("upload is " + string(up.Status))
	}

	res := s.db.WithContext(ctx).Model(&model.Upload{}).
		Where("id = ? AND tenant_id = ? AND status = ?", uploadID, tenantID, model.UploadStatusPresigned).
		Update("status", model.UploadStatusUploaded)
	if res.Error != nil {
		return nil, types.StorageUnavailable(res.Error)
	}

	if res.RowsAffected == 0 {
		// lost a race with another transition; report the current state
		return nil, types.InvalidUploadStatus("upload is no longer presigned")
	}

	return &types.MarkUploadedResponse{UploadID: uploadID, Status: string(model.UploadStatusUploaded)}, nil
}

// loadUpload fetches one staging record. A row the caller's tenant does not
// own reports forbidden: the upload id was handed to exactly one tenant, so
// unlike object lookups there is nothing to hide.
func (s *VaultService) loadUpload(ctx context.Context, tenantID, uploadID string) (*model.Upload, error) {
	var up model.Upload

	err := s.db.WithContext(ctx).First(&up, "id = ?", uploadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("upload not found")
	}

	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	if up.TenantID != tenantID {
		return nil, types.Forbidden("upload belongs to another tenant")
	}

	return &up, nil
}

// CollectExpiredUploads removes stale staging state: presigned records past
// their TTL together with whatever the client may have written to
// quarantine, and terminal records past the retention window. Returns the
// number of rows removed.
func (s *VaultService) CollectExpiredUploads(ctx context.Context, now time.Time) (int, error) {
	var stale []model.Upload

	err := s.db.WithContext(ctx).
		Where("expires_at < ? AND status IN ?", now,
			[]model.UploadStatus{model.UploadStatusPresigned, model.UploadStatusUploaded}).
		Or("updated_at < ? AND status IN ?", now.Add(-s.cfg.UploadTTL()),
			[]model.UploadStatus{model.UploadStatusIngested, model.UploadStatusFailed}).
		Find(&stale).Error
	if err != nil {
		return 0, types.StorageUnavailable(err)
	}

	removed := 0

	for i := range stale {
		up := &stale[i]

		// quarantine first so a crash leaves the row for the next run
		if err := s.store.Remove(ctx, quarantineKey(up.TenantID, up.ID)); err != nil {
			log.Logger().Warn().Err(err).Str("upload", up.ID).Msg("quarantine cleanup failed")
			continue
		}

		if err := s.db.WithContext(ctx).Delete(&model.Upload{}, "id = ?", up.ID).Error; err != nil {
			log.Logger().Warn().Err(err).Str("upload", up.ID).Msg("staging row cleanup failed")
			continue
		}

		removed++
	}

	if removed > 0 {
		publish(s, queue.TopicUploadGC, map[string]any{"removed": removed, "at": now})
		log.Logger().Info().Int("removed", removed).Msg("expired uploads collected")
	}

	return removed, nil
}
