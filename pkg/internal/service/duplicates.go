package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/magicfolder/mfvault/pkg/internal/model"
	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/log"
	"github.com/magicfolder/mfvault/pkg/queue"
	"github.com/magicfolder/mfvault/pkg/rule"
)

const defaultGroupPageSize = 50

// ListDuplicateGroups returns one page of the tenant's groups, newest
// first, each with its member versions.
func (s *VaultService) ListDuplicateGroups(ctx context.Context, tenantID string, req *types.ListDuplicateGroupsRequest) (*types.ListDuplicateGroupsResponse, error) {
	if err := rule.ValidateStruct(req); err != nil {
		return nil, types.BadRequest(err.Error())
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultGroupPageSize
	}

	q := s.db.WithContext(ctx).Model(&model.DuplicateGroup{}).Scopes(tenantScope(tenantID))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, types.StorageUnavailable(err)
	}

	var groups []model.DuplicateGroup

	err := q.Order("created_at DESC, id").Limit(limit).Offset(req.Offset).Find(&groups).Error
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	items := make([]types.DuplicateGroupItem, 0, len(groups))

	for i := range groups {
		g := &groups[i]

		members, err := s.groupMembers(ctx, g.ID)
		if err != nil {
			return nil, err
		}

		items = append(items, types.DuplicateGroupItem{
			GroupID:       g.ID,
			Reason:        string(g.Reason),
			KeepVersionID: g.KeepVersionID,
			CreatedAt:     g.CreatedAt,
			Members:       members,
		})
	}

	return &types.ListDuplicateGroupsResponse{Items: items, Total: total}, nil
}

func (s *VaultService) groupMembers(ctx context.Context, groupID string) ([]types.VersionSummary, error) {
	var vers []model.Version

	err := s.db.WithContext(ctx).
		Joins("JOIN duplicate_group_versions ON duplicate_group_versions.version_id = versions.id").
		Where("duplicate_group_versions.group_id = ?", groupID).
		Order("versions.created_at DESC, versions.id").
		Find(&vers).Error
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	members := make([]types.VersionSummary, 0, len(vers))
	for i := range vers {
		v := &vers[i]
		members = append(members, types.VersionSummary{
			VersionID:   v.ID,
			ObjectID:    v.ObjectID,
			ContentHash: v.ContentHash,
			SizeBytes:   v.SizeBytes,
			MimeType:    v.MimeType,
			CreatedAt:   v.CreatedAt,
		})
	}

	return members, nil
}

// loadGroup fetches one group. Missing and cross-tenant rows are both
// reported as not found so group ids cannot be probed across tenants.
func (s *VaultService) loadGroup(ctx context.Context, tenantID, groupID string) (*model.DuplicateGroup, error) {
	var g model.DuplicateGroup

	err := s.db.WithContext(ctx).Scopes(tenantScope(tenantID)).First(&g, "id = ?", groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("duplicate group not found")
	}

	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	return &g, nil
}

// DismissDuplicateGroup deletes the group and its memberships: the tenant
// declared the members are not duplicates of each other. Versions, objects
// and stored bytes are untouched, and future identical uploads will simply
// form a new group.
func (s *VaultService) DismissDuplicateGroup(ctx context.Context, tenantID, groupID string) (*types.DismissResponse, error) {
	g, err := s.loadGroup(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.DuplicateGroupVersion{}, "group_id = ?", g.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&model.DuplicateGroup{}, "id = ?", g.ID).Error
	})
	if err != nil {
		return nil, types.StorageUnavailable(err)
	}

	publish(s, queue.TopicDuplicateDismissed, queue.DuplicateDismissedPayload{
		TenantID: tenantID,
		GroupID:  g.ID,
	})

	log.Logger().Info().Str("tenant", tenantID).Str("group", g.ID).Msg("duplicate group dismissed")

	return &types.DismissResponse{Deleted: true}, nil
}

// SetKeepBest records the tenant's chosen canonical version for a group and
// repoints the display pointer of the object owning the newest non-kept
// member, so the surviving document shows the kept content. No version or
// blob is deleted; resolution is curation, not reclamation.
func (s *VaultService) SetKeepBest(ctx context.Context, tenantID, actorID, groupID string, req *types.KeepBestRequest) (*types.KeepBestResponse, error) {
	if req.VersionID == "" {
		return nil, types.BadRequest("version_id is required")
	}

	g, err := s.loadGroup(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	var repointed string

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member model.DuplicateGroupVersion

		err := tx.First(&member, "group_id = ? AND version_id = ?", g.ID, req.VersionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.BadRequest("version is not a member of this group")
		}
		if err != nil {
			return err
		}

		err = tx.Model(&model.DuplicateGroup{}).
			Where("id = ?", g.ID).
			Update("keep_version_id", req.VersionID).Error
		if err != nil {
			return err
		}

		// newest non-kept member decides which object gets repointed
		var loser model.Version

		err = tx.Joins("JOIN duplicate_group_versions ON duplicate_group_versions.version_id = versions.id").
			Where("duplicate_group_versions.group_id = ? AND versions.id <> ?", g.ID, req.VersionID).
			Order("versions.created_at DESC, versions.id DESC").
			First(&loser).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Model(&model.Object{}).
			Where("id = ? AND tenant_id = ?", loser.ObjectID, tenantID).
			Update("current_version_id", req.VersionID)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			repointed = loser.ObjectID
		}

		return nil
	})
	if err != nil {
		var te *types.Error
		if errors.As(err, &te) {
			return nil, te
		}

		return nil, types.StorageUnavailable(err)
	}

	publish(s, queue.TopicDuplicateResolved, queue.DuplicateResolvedPayload{
		TenantID:      tenantID,
		GroupID:       g.ID,
		KeepVersionID: req.VersionID,
		RepointedID:   repointed,
		ActorID:       actorID,
	})

	log.Logger().Info().
		Str("tenant", tenantID).
		Str("group", g.ID).
		Str("keep", req.VersionID).
		Str("repointed", repointed).
		Msg("duplicate group resolved")

	return &types.KeepBestResponse{
		GroupID:           g.ID,
		KeepVersionID:     req.VersionID,
		RepointedObjectID: repointed,
	}, nil
}
