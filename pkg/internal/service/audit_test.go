package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHashAuditClean(t *testing.T) {
	svc, store := newTestService(t)

	ingestContent(t, svc, store, "t1", []byte("intact one"))
	ingestContent(t, svc, store, "t1", []byte("intact two"))

	report, err := svc.RunHashAudit(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Checked)
	assert.Empty(t, report.Mismatches)
	assert.False(t, report.Partial)
}

func TestRunHashAuditDetectsCorruption(t *testing.T) {
	svc, store := newTestService(t)

	ingestContent(t, svc, store, "t1", []byte("good bytes"))
	bad := ingestContent(t, svc, store, "t1", []byte("soon corrupted"))

	store.put(canonicalSourceKey("t1", bad.ObjectID, bad.VersionID), []byte("bit rot"))

	report, err := svc.RunHashAudit(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Mismatches, 1)

	m := report.Mismatches[0]
	assert.Equal(t, bad.VersionID, m.VersionID)
	assert.Equal(t, bad.ContentHash, m.ExpectedHash)
	assert.NotEqual(t, m.ExpectedHash, m.ActualHash)
	assert.NotEmpty(t, m.ActualHash)
}

func TestRunHashAuditReportsMissingBlob(t *testing.T) {
	svc, store := newTestService(t)

	v := ingestContent(t, svc, store, "t1", []byte("will vanish"))
	require.NoError(t, store.Remove(context.Background(), canonicalSourceKey("t1", v.ObjectID, v.VersionID)))

	report, err := svc.RunHashAudit(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, v.VersionID, report.Mismatches[0].VersionID)
	assert.Empty(t, report.Mismatches[0].ActualHash)
}

func TestRunHashAuditSampleLimit(t *testing.T) {
	svc, store := newTestService(t)

	ingestContent(t, svc, store, "t1", []byte("one"))
	ingestContent(t, svc, store, "t1", []byte("two"))
	ingestContent(t, svc, store, "t1", []byte("three"))

	report, err := svc.RunHashAudit(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Checked)
}
