package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicfolder/mfvault/pkg/internal/model"
	"github.com/magicfolder/mfvault/pkg/internal/types"
)

// ingestContent drives the full staging flow for one blob and returns the
// finalize result.
func ingestContent(t *testing.T, svc *VaultService, store *fakeStore, tenant string, content []byte) *types.IngestResponse {
	t.Helper()

	ctx := context.Background()

	up, err := svc.BeginUpload(ctx, tenant, "user@example.com", &types.BeginUploadRequest{FileName: "doc.pdf"})
	require.NoError(t, err)

	store.put(quarantineKey(tenant, up.UploadID), content)

	_, err = svc.MarkUploaded(ctx, tenant, up.UploadID)
	require.NoError(t, err)

	resp, err := svc.FinalizeIngest(ctx, tenant, up.UploadID)
	require.NoError(t, err)

	return resp
}

func TestFinalizeIngest(t *testing.T) {
	svc, store := newTestService(t)
	content := []byte("the quick brown fox")

	resp := ingestContent(t, svc, store, "t1", content)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), resp.ContentHash)
	assert.Empty(t, resp.DuplicateGroupID)

	// canonical blob carries the same bytes
	rc, size, err := store.Get(context.Background(), canonicalSourceKey("t1", resp.ObjectID, resp.VersionID))
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, int64(len(content)), size)

	var obj model.Object
	require.NoError(t, svc.db.First(&obj, "id = ?", resp.ObjectID).Error)
	assert.Equal(t, model.ObjectStatusInbox, obj.Status)
	assert.Equal(t, resp.VersionID, obj.CurrentVersionID)

	var ver model.Version
	require.NoError(t, svc.db.First(&ver, "id = ?", resp.VersionID).Error)
	assert.Equal(t, resp.ContentHash, ver.ContentHash)
	assert.Equal(t, int64(len(content)), ver.SizeBytes)
}

func TestFinalizeIngestRemovesQuarantine(t *testing.T) {
	svc, store := newTestService(t)

	ctx := context.Background()

	up, err := svc.BeginUpload(ctx, "t1", "user@example.com", &types.BeginUploadRequest{FileName: "doc.pdf"})
	require.NoError(t, err)

	qk := quarantineKey("t1", up.UploadID)
	store.put(qk, []byte("bytes"))

	_, err = svc.MarkUploaded(ctx, "t1", up.UploadID)
	require.NoError(t, err)

	_, err = svc.FinalizeIngest(ctx, "t1", up.UploadID)
	require.NoError(t, err)

	assert.False(t, store.has(qk))
}

func TestFinalizeIngestIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	content := []byte("idempotent payload")

	ctx := context.Background()

	up, err := svc.BeginUpload(ctx, "t1", "user@example.com", &types.BeginUploadRequest{FileName: "doc.pdf"})
	require.NoError(t, err)

	store.put(quarantineKey("t1", up.UploadID), content)

	_, err = svc.MarkUploaded(ctx, "t1", up.UploadID)
	require.NoError(t, err)

	first, err := svc.FinalizeIngest(ctx, "t1", up.UploadID)
	require.NoError(t, err)

	second, err := svc.FinalizeIngest(ctx, "t1", up.UploadID)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// exactly one object and one version exist
	var count int64
	require.NoError(t, svc.db.Model(&model.Version{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFinalizeIngestRequiresConfirmation(t *testing.T) {
	svc, _ := newTestService(t)

	up, err := svc.BeginUpload(context.Background(), "t1", "user@example.com", &types.BeginUploadRequest{FileName: "doc.pdf"})
	require.NoError(t, err)

	_, err = svc.FinalizeIngest(context.Background(), "t1", up.UploadID)
	require.Error(t, err)
	assert.Equal(t, types.CodeInvalidUploadStatus, types.AsError(err).Code)
}

func TestFinalizeIngestMissingQuarantine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	up, err := svc.BeginUpload(ctx, "t1", "user@example.com", &types.BeginUploadRequest{FileName: "doc.pdf"})
	require.NoError(t, err)

	_, err = svc.MarkUploaded(ctx, "t1", up.UploadID)
	require.NoError(t, err)

	_, err = svc.FinalizeIngest(ctx, "t1", up.UploadID)
	require.Error(t, err)
	assert.Equal(t, types.CodeIngestFailed, types.AsError(err).Code)

	var row model.Upload
	require.NoError(t, svc.db.First(&row, "id = ?", up.UploadID).Error)
	assert.Equal(t, model.UploadStatusFailed, row.Status)
	assert.NotEmpty(t, row.FailCause)

	// a failed upload is terminal
	_, err = svc.FinalizeIngest(ctx, "t1", up.UploadID)
	require.Error(t, err)
	assert.Equal(t, types.CodeInvalidUploadStatus, types.AsError(err).Code)
}

func TestFinalizeIngestDeclaredHashMismatch(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	up, err := svc.BeginUpload(ctx, "t1", "user@example.com", &types.BeginUploadRequest{
		FileName:     "doc.pdf",
		DeclaredHash: strings.Repeat("a", 64),
	})
	require.NoError(t, err)

	store.put(quarantineKey("t1", up.UploadID), []byte("actual content"))

	_, err = svc.MarkUploaded(ctx, "t1", up.UploadID)
	require.NoError(t, err)

	_, err = svc.FinalizeIngest(ctx, "t1", up.UploadID)
	require.Error(t, err)
	assert.Equal(t, types.CodeIngestFailed, types.AsError(err).Code)

	var row model.Upload
	require.NoError(t, svc.db.First(&row, "id = ?", up.UploadID).Error)
	assert.Equal(t, model.UploadStatusFailed, row.Status)
}

func TestFinalizeIngestEmptyUpload(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	up, err := svc.BeginUpload(ctx, "t1", "user@example.com", &types.BeginUploadRequest{FileName: "doc.pdf"})
	require.NoError(t, err)

	store.put(quarantineKey("t1", up.UploadID), nil)

	_, err = svc.MarkUploaded(ctx, "t1", up.UploadID)
	require.NoError(t, err)

	_, err = svc.FinalizeIngest(ctx, "t1", up.UploadID)
	require.Error(t, err)
	assert.Equal(t, types.CodeIngestFailed, types.AsError(err).Code)
}

func TestFinalizeIngestGroupsExactDuplicates(t *testing.T) {
	svc, store := newTestService(t)
	content := []byte("duplicated bytes")

	first := ingestContent(t, svc, store, "t1", content)
	assert.Empty(t, first.DuplicateGroupID)

	second := ingestContent(t, svc, store, "t1", content)
	require.NotEmpty(t, second.DuplicateGroupID)

	// distinct logical objects, identical identity
	assert.NotEqual(t, first.ObjectID, second.ObjectID)
	assert.Equal(t, first.ContentHash, second.ContentHash)

	var group model.DuplicateGroup
	require.NoError(t, svc.db.First(&group, "id = ?", second.DuplicateGroupID).Error)
	assert.Equal(t, model.DuplicateReasonExact, group.Reason)
	assert.Equal(t, "t1", group.TenantID)

	var members []model.DuplicateGroupVersion
	require.NoError(t, svc.db.Find(&members, "group_id = ?", group.ID).Error)
	require.Len(t, members, 2)

	// a third copy joins the same group
	third := ingestContent(t, svc, store, "t1", content)
	assert.Equal(t, second.DuplicateGroupID, third.DuplicateGroupID)

	require.NoError(t, svc.db.Find(&members, "group_id = ?", group.ID).Error)
	assert.Len(t, members, 3)
}

func TestFinalizeIngestDoesNotGroupAcrossTenants(t *testing.T) {
	svc, store := newTestService(t)
	content := []byte("shared across tenants")

	a := ingestContent(t, svc, store, "tenant-a", content)
	b := ingestContent(t, svc, store, "tenant-b", content)

	assert.Empty(t, a.DuplicateGroupID)
	assert.Empty(t, b.DuplicateGroupID)
}

func TestFinalizeIngestDetectsNearDuplicates(t *testing.T) {
	svc, store := newTestService(t)
	content := []byte("almost the same")

	dg, err := computeDigest(strings.NewReader(string(content)))
	require.NoError(t, err)

	// a committed version with the same quickhash and size but a different
	// content hash
	peer := model.Version{
		ID:          "peer-version",
		ObjectID:    "peer-object",
		TenantID:    "t1",
		ContentHash: strings.Repeat("0", 64),
		QuickHash:   dg.Quick,
		SizeBytes:   dg.Size,
	}
	require.NoError(t, svc.db.Create(&peer).Error)

	resp := ingestContent(t, svc, store, "t1", content)
	require.NotEmpty(t, resp.DuplicateGroupID)

	var group model.DuplicateGroup
	require.NoError(t, svc.db.First(&group, "id = ?", resp.DuplicateGroupID).Error)
	assert.Equal(t, model.DuplicateReasonNear, group.Reason)
}

func TestFinalizeIngestWrongTenant(t *testing.T) {
	svc, _ := newTestService(t)

	up, err := svc.BeginUpload(context.Background(), "t1", "user@example.com", &types.BeginUploadRequest{FileName: "doc.pdf"})
	require.NoError(t, err)

	_, err = svc.FinalizeIngest(context.Background(), "t2", up.UploadID)
	require.Error(t, err)
	assert.Equal(t, types.CodeForbidden, types.AsError(err).Code)
}
