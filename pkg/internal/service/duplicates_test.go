package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicfolder/mfvault/pkg/internal/model"
	"github.com/magicfolder/mfvault/pkg/internal/types"
)

func TestListDuplicateGroups(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	ingestContent(t, svc, store, "t1", []byte("cluster one"))
	second := ingestContent(t, svc, store, "t1", []byte("cluster one"))
	require.NotEmpty(t, second.DuplicateGroupID)

	resp, err := svc.ListDuplicateGroups(ctx, "t1", &types.ListDuplicateGroupsRequest{})
	require.NoError(t, err)

	require.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, second.DuplicateGroupID, item.GroupID)
	assert.Equal(t, string(model.DuplicateReasonExact), item.Reason)
	assert.Empty(t, item.KeepVersionID)
	require.Len(t, item.Members, 2)

	for _, m := range item.Members {
		assert.Equal(t, second.ContentHash, m.ContentHash)
	}
}

func TestListDuplicateGroupsScopedToTenant(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	ingestContent(t, svc, store, "t1", []byte("t1 data"))
	ingestContent(t, svc, store, "t1", []byte("t1 data"))

	resp, err := svc.ListDuplicateGroups(ctx, "t2", &types.ListDuplicateGroupsRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
	assert.Empty(t, resp.Items)
}

func TestDismissDuplicateGroup(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	ingestContent(t, svc, store, "t1", []byte("dismiss me"))
	second := ingestContent(t, svc, store, "t1", []byte("dismiss me"))
	require.NotEmpty(t, second.DuplicateGroupID)

	resp, err := svc.DismissDuplicateGroup(ctx, "t1", second.DuplicateGroupID)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	// group and memberships are gone, versions stay
	var groups int64
	require.NoError(t, svc.db.Model(&model.DuplicateGroup{}).Count(&groups).Error)
	assert.Zero(t, groups)

	var members int64
	require.NoError(t, svc.db.Model(&model.DuplicateGroupVersion{}).Count(&members).Error)
	assert.Zero(t, members)

	var versions int64
	require.NoError(t, svc.db.Model(&model.Version{}).Count(&versions).Error)
	assert.Equal(t, int64(2), versions)

	// dismissing again reports not found
	_, err = svc.DismissDuplicateGroup(ctx, "t1", second.DuplicateGroupID)
	require.Error(t, err)
	assert.Equal(t, types.CodeNotFound, types.AsError(err).Code)
}

func TestDismissDuplicateGroupCrossTenant(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	ingestContent(t, svc, store, "t1", []byte("private"))
	second := ingestContent(t, svc, store, "t1", []byte("private"))
	require.NotEmpty(t, second.DuplicateGroupID)

	// another tenant cannot even learn the group exists
	_, err := svc.DismissDuplicateGroup(ctx, "t2", second.DuplicateGroupID)
	require.Error(t, err)
	assert.Equal(t, types.CodeNotFound, types.AsError(err).Code)
}

func TestSetKeepBest(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// V1 under O1, then an identical V2 under O2 forming a group
	first := ingestContent(t, svc, store, "t1", []byte("keep the original"))
	second := ingestContent(t, svc, store, "t1", []byte("keep the original"))
	require.NotEmpty(t, second.DuplicateGroupID)

	resp, err := svc.SetKeepBest(ctx, "t1", "user@example.com", second.DuplicateGroupID,
		&types.KeepBestRequest{VersionID: first.VersionID})
	require.NoError(t, err)

	assert.Equal(t, first.VersionID, resp.KeepVersionID)
	assert.Equal(t, second.ObjectID, resp.RepointedObjectID)

	var group model.DuplicateGroup
	require.NoError(t, svc.db.First(&group, "id = ?", second.DuplicateGroupID).Error)
	assert.Equal(t, first.VersionID, group.KeepVersionID)

	// the newer object now displays the kept version
	var o2 model.Object
	require.NoError(t, svc.db.First(&o2, "id = ?", second.ObjectID).Error)
	assert.Equal(t, first.VersionID, o2.CurrentVersionID)

	// the kept version's own object is untouched
	var o1 model.Object
	require.NoError(t, svc.db.First(&o1, "id = ?", first.ObjectID).Error)
	assert.Equal(t, first.VersionID, o1.CurrentVersionID)

	// no version rows were deleted
	var versions int64
	require.NoError(t, svc.db.Model(&model.Version{}).Count(&versions).Error)
	assert.Equal(t, int64(2), versions)
}

func TestSetKeepBestRejectsNonMember(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	ingestContent(t, svc, store, "t1", []byte("group content"))
	second := ingestContent(t, svc, store, "t1", []byte("group content"))
	require.NotEmpty(t, second.DuplicateGroupID)

	outsider := ingestContent(t, svc, store, "t1", []byte("unrelated content"))

	_, err := svc.SetKeepBest(ctx, "t1", "user@example.com", second.DuplicateGroupID,
		&types.KeepBestRequest{VersionID: outsider.VersionID})
	require.Error(t, err)
	assert.Equal(t, types.CodeBadRequest, types.AsError(err).Code)

	// nothing was resolved
	var group model.DuplicateGroup
	require.NoError(t, svc.db.First(&group, "id = ?", second.DuplicateGroupID).Error)
	assert.Empty(t, group.KeepVersionID)
}

func TestSetKeepBestCrossTenant(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	first := ingestContent(t, svc, store, "t1", []byte("tenant private"))
	second := ingestContent(t, svc, store, "t1", []byte("tenant private"))
	require.NotEmpty(t, second.DuplicateGroupID)

	_, err := svc.SetKeepBest(ctx, "t2", "user@example.com", second.DuplicateGroupID,
		&types.KeepBestRequest{VersionID: first.VersionID})
	require.Error(t, err)
	assert.Equal(t, types.CodeNotFound, types.AsError(err).Code)
}
