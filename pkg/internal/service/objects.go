package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/magicfolder/mfvault/pkg/internal/model"
	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/log"
	"github.com/magicfolder/mfvault/pkg/queue"
)

// RunBulkAction applies one action to a set of objects with per-id
// outcomes. A bad id never poisons the batch.
func (s *VaultService) RunBulkAction(ctx context.Context, tenantID string, req *types.BulkActionRequest) (*types.BulkActionResponse, error) {
	if len(req.ObjectIDs) == 0 {
		return nil, types.BadRequest("object_ids must not be empty")
	}

	var apply func(ctx context.Context, tenantID, objectID string) error

	switch req.Action {
	case types.BulkActionArchive:
		apply = s.archiveObject
	case types.BulkActionAddTag:
		tag, err := s.loadTag(ctx, tenantID, req.TagID)
		if err != nil {
			return nil, err
		}

		apply = func(ctx context.Context, tenantID, objectID string) error {
			return s.tagObject(ctx, tenantID, objectID, tag.ID)
		}
	default:
		return nil, types.BadRequest("unknown action " + string(req.Action))
	}

	resp := &types.BulkActionResponse{Results: make([]types.BulkItemResult, 0, len(req.ObjectIDs))}
	updated := make([]string, 0, len(req.ObjectIDs))

	for _, id := range req.ObjectIDs {
		if err := apply(ctx, tenantID, id); err != nil {
			resp.Results = append(resp.Results, types.BulkItemResult{
				ObjectID: id,
				Error:    types.AsError(err).Message,
			})
			continue
		}

		resp.Results = append(resp.Results, types.BulkItemResult{ObjectID: id, OK: true})
		resp.Updated++
		updated = append(updated, id)
	}

	if len(updated) > 0 {
		publish(s, queue.TopicObjectsBulkUpdated, queue.ObjectsBulkUpdatedPayload{
			TenantID: tenantID,
			Action:   string(req.Action),
			Updated:  updated,
		})
	}

	log.Logger().Info().
		Str("tenant", tenantID).
		Str("action", string(req.Action)).
		Int("requested", len(req.ObjectIDs)).
		Int("updated", resp.Updated).
		Msg("bulk action applied")

	return resp, nil
}

func (s *VaultService) archiveObject(ctx context.Context, tenantID, objectID string) error {
	res := s.db.WithContext(ctx).Model(&model.Object{}).
		Where("id = ? AND tenant_id = ? AND status <> ?", objectID, tenantID, model.ObjectStatusDeleted).
		Update("status", model.ObjectStatusArchived)
	if res.Error != nil {
		return types.StorageUnavailable(res.Error)
	}

	if res.RowsAffected == 0 {
		return types.NotFound("object not found")
	}

	return nil
}

func (s *VaultService) tagObject(ctx context.Context, tenantID, objectID, tagID string) error {
	var obj model.Object

	err := s.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("status <> ?", model.ObjectStatusDeleted).
		First(&obj, "id = ?", objectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NotFound("object not found")
	}
	if err != nil {
		return types.StorageUnavailable(err)
	}

	link := model.ObjectTag{ObjectID: objectID, TagID: tagID}

	err = s.db.WithContext(ctx).
		Where("object_id = ? AND tag_id = ?", objectID, tagID).
		FirstOrCreate(&link).Error
	if err != nil {
		return types.StorageUnavailable(err)
	}

	return nil
}

func (s *VaultService) loadTag(ctx context.Context, tenantID, tagID string) (*model.Tag, error) {
	if tagID == "" {
		return nil, types.BadRequest("tag_id is required for add_tag")
	}

	var tag model.Tag

	err := s.db.WithContext(ctx).Scopes(tenantScope(tenantID)).First(&tag, "id = ?", tagID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("tag not found")
	}
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	return &tag, nil
}

// ObjectURL issues a short-lived presigned GET for the canonical bytes of
// the object's display version.
func (s *VaultService) ObjectURL(ctx context.Context, tenantID, objectID string) (*types.ObjectURLResponse, error) {
	var obj model.Object

	err := s.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("status <> ?", model.ObjectStatusDeleted).
		First(&obj, "id = ?", objectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("object not found")
	}
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	if obj.CurrentVersionID == "" {
		return nil, types.NotFound("object has no committed version")
	}

	// the display pointer may name a version owned by another object after
	// keep-best; the canonical key lives under the owning object
	var ver model.Version

	err = s.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		First(&ver, "id = ?", obj.CurrentVersionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("object has no committed version")
	}
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	expiry := s.cfg.PresignExpiry()

	url, err := s.store.PresignGet(ctx, canonicalSourceKey(tenantID, ver.ObjectID, ver.ID), expiry)
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	return &types.ObjectURLResponse{
		ObjectID:         obj.ID,
		VersionID:        ver.ID,
		GetURL:           url,
		ExpiresInSeconds: int(expiry.Seconds()),
	}, nil
}
