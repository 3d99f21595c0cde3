package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicfolder/mfvault/pkg/internal/model"
	"github.com/magicfolder/mfvault/pkg/internal/types"
)

func TestBulkArchive(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	a := ingestContent(t, svc, store, "t1", []byte("doc a"))
	b := ingestContent(t, svc, store, "t1", []byte("doc b"))

	resp, err := svc.RunBulkAction(ctx, "t1", &types.BulkActionRequest{
		ObjectIDs: []string{a.ObjectID, b.ObjectID, "missing"},
		Action:    types.BulkActionArchive,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Updated)
	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].OK)
	assert.True(t, resp.Results[1].OK)
	assert.False(t, resp.Results[2].OK)
	assert.NotEmpty(t, resp.Results[2].Error)

	var obj model.Object
	require.NoError(t, svc.db.First(&obj, "id = ?", a.ObjectID).Error)
	assert.Equal(t, model.ObjectStatusArchived, obj.Status)
}

func TestBulkArchiveScopedToTenant(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	other := ingestContent(t, svc, store, "t2", []byte("foreign doc"))

	resp, err := svc.RunBulkAction(ctx, "t1", &types.BulkActionRequest{
		ObjectIDs: []string{other.ObjectID},
		Action:    types.BulkActionArchive,
	})
	require.NoError(t, err)

	assert.Zero(t, resp.Updated)
	assert.False(t, resp.Results[0].OK)

	var obj model.Object
	require.NoError(t, svc.db.First(&obj, "id = ?", other.ObjectID).Error)
	assert.Equal(t, model.ObjectStatusInbox, obj.Status)
}

func TestBulkAddTag(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	a := ingestContent(t, svc, store, "t1", []byte("tag me"))

	tag := model.Tag{ID: "tag-1", TenantID: "t1", Name: "invoices"}
	require.NoError(t, svc.db.Create(&tag).Error)

	resp, err := svc.RunBulkAction(ctx, "t1", &types.BulkActionRequest{
		ObjectIDs: []string{a.ObjectID},
		Action:    types.BulkActionAddTag,
		TagID:     tag.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Updated)

	var link model.ObjectTag
	require.NoError(t, svc.db.First(&link, "object_id = ? AND tag_id = ?", a.ObjectID, tag.ID).Error)

	// tagging twice keeps a single link
	_, err = svc.RunBulkAction(ctx, "t1", &types.BulkActionRequest{
		ObjectIDs: []string{a.ObjectID},
		Action:    types.BulkActionAddTag,
		TagID:     tag.ID,
	})
	require.NoError(t, err)

	var links int64
	require.NoError(t, svc.db.Model(&model.ObjectTag{}).Count(&links).Error)
	assert.Equal(t, int64(1), links)
}

func TestBulkAddTagUnknownTag(t *testing.T) {
	svc, store := newTestService(t)

	a := ingestContent(t, svc, store, "t1", []byte("doc"))

	_, err := svc.RunBulkAction(context.Background(), "t1", &types.BulkActionRequest{
		ObjectIDs: []string{a.ObjectID},
		Action:    types.BulkActionAddTag,
		TagID:     "nope",
	})
	require.Error(t, err)
	assert.Equal(t, types.CodeNotFound, types.AsError(err).Code)
}

func TestBulkUnknownAction(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RunBulkAction(context.Background(), "t1", &types.BulkActionRequest{
		ObjectIDs: []string{"x"},
		Action:    "shred",
	})
	require.Error(t, err)
	assert.Equal(t, types.CodeBadRequest, types.AsError(err).Code)
}

func TestObjectURL(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	a := ingestContent(t, svc, store, "t1", []byte("downloadable"))

	resp, err := svc.ObjectURL(ctx, "t1", a.ObjectID)
	require.NoError(t, err)

	assert.Equal(t, a.VersionID, resp.VersionID)
	assert.Contains(t, resp.GetURL, canonicalSourceKey("t1", a.ObjectID, a.VersionID))
	assert.Positive(t, resp.ExpiresInSeconds)
}

func TestObjectURLFollowsKeepBest(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	first := ingestContent(t, svc, store, "t1", []byte("same bytes"))
	second := ingestContent(t, svc, store, "t1", []byte("same bytes"))
	require.NotEmpty(t, second.DuplicateGroupID)

	_, err := svc.SetKeepBest(ctx, "t1", "user@example.com", second.DuplicateGroupID,
		&types.KeepBestRequest{VersionID: first.VersionID})
	require.NoError(t, err)

	// the repointed object serves the kept version's canonical bytes
	resp, err := svc.ObjectURL(ctx, "t1", second.ObjectID)
	require.NoError(t, err)

	assert.Equal(t, first.VersionID, resp.VersionID)
	assert.Contains(t, resp.GetURL, canonicalSourceKey("t1", first.ObjectID, first.VersionID))
}

func TestObjectURLCrossTenant(t *testing.T) {
	svc, store := newTestService(t)

	a := ingestContent(t, svc, store, "t1", []byte("private bytes"))

	_, err := svc.ObjectURL(context.Background(), "t2", a.ObjectID)
	require.Error(t, err)
	assert.Equal(t, types.CodeNotFound, types.AsError(err).Code)
}
