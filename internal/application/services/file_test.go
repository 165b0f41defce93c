package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"storage-api/internal/application/ports"
	"storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/quota"
	"storage-api/internal/domain/user"
)

type storageFixture struct {
	files   *memFileRepo
	folders *memFolderRepo
	blobs   *memBlobStore
	queue   *memQueue
	logs    *observer.ObservedLogs
	facade  ports.StorageFacade
	catalog ports.FileCatalog
}

func newStorageFixture(t *testing.T, ceiling int64) *storageFixture {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	f := &storageFixture{
		files:   &memFileRepo{},
		folders: &memFolderRepo{},
		blobs:   newMemBlobStore(),
		queue:   &memQueue{},
		logs:    logs,
	}
	mc := newTestCounter()
	ledger := NewQuotaLedger(f.files, ceiling, mc)
	hierarchy := NewFolderHierarchy(f.folders, mc)
	f.catalog = NewFileCatalog(zap.New(core), f.blobs, f.files, ledger, hierarchy, f.queue, mc)
	f.facade = NewStorageFacade(ledger, hierarchy, f.catalog)

	return f
}

func payload(n int) *ports.UploadInput {
	return &ports.UploadInput{
		Body:         bytes.NewReader(bytes.Repeat([]byte{'x'}, n)),
		Size:         int64(n),
		OriginalName: "data.bin",
		MimeType:     "application/octet-stream",
	}
}

func TestFileCatalog_UsageTracksUploadsAndDeletes(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, quota.DefaultCeiling)
	const u user.ID = 7

	var ids []file.ID
	total := int64(0)
	for _, n := range []int{100, 2048, 5} {
		rec, err := fx.facade.Upload(ctx, u, payload(n))
		require.NoError(t, err)
		assert.Equal(t, int64(n), rec.SizeBytes)
		ids = append(ids, rec.ID)
		total += int64(n)
	}

	stats, err := fx.facade.StorageStats(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, total, stats.UsedBytes)
	assert.Equal(t, int64(3), stats.FileCount)

	require.NoError(t, fx.facade.DeleteFile(ctx, u, ids[1]))

	stats, err = fx.facade.StorageStats(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, total-2048, stats.UsedBytes)
	assert.Equal(t, int64(2), stats.FileCount)

	// row persists with deleted_at set
	require.Len(t, fx.files.rows, 3)
	assert.NotNil(t, fx.files.rows[1].DeletedAt)

	_, err = fx.catalog.Get(ctx, u, ids[1])
	assert.ErrorIs(t, err, ErrFileNotFound)
	files, _, err := fx.facade.MyFiles(ctx, u, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFileCatalog_QuotaBoundary(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, 1000)

	_, err := fx.facade.Upload(ctx, 1, payload(600))
	require.NoError(t, err)

	_, err = fx.facade.Upload(ctx, 1, payload(401))
	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 1, fx.blobs.puts, "blob store must not be touched on rejection")

	_, err = fx.facade.Upload(ctx, 1, payload(400))
	require.NoError(t, err, "landing exactly on the ceiling is allowed")

	// other users are unaffected
	_, err = fx.facade.Upload(ctx, 2, payload(1000))
	require.NoError(t, err)
}

func TestFileCatalog_FiftyThenSixtyMegabytes(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, quota.DefaultCeiling)

	_, err := fx.facade.Upload(ctx, 3, payload(50*quota.MiB))
	require.NoError(t, err)

	stats, err := fx.facade.StorageStats(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 50.00, stats.UsedMB)
	assert.Equal(t, 50.00, stats.Percentage)
	assert.Equal(t, int64(1), stats.FileCount)

	_, err = fx.facade.Upload(ctx, 3, payload(60*quota.MiB))
	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "100 MiB limit")

	stats, err = fx.facade.StorageStats(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(50*quota.MiB), stats.UsedBytes)
}

func TestFileCatalog_ConcurrentUploadsNeverExceedCeiling(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = fx.facade.Upload(ctx, 9, payload(300))
		}()
	}
	wg.Wait()

	used, err := NewQuotaLedger(fx.files, 1000, newTestCounter()).CurrentUsage(ctx, 9)
	require.NoError(t, err)
	assert.LessOrEqual(t, used, int64(1000))

	// every blob written for a rejected insert was compensated
	assert.Len(t, fx.blobs.objects, int(used/300))
}

func TestFileCatalog_UploadFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("no file attached", func(t *testing.T) {
		fx := newStorageFixture(t, 1000)
		_, err := fx.facade.Upload(ctx, 1, nil)
		assert.ErrorIs(t, err, ErrNoFile)
	})

	t.Run("blocked extension", func(t *testing.T) {
		fx := newStorageFixture(t, 1000)
		in := payload(1)
		in.OriginalName = "setup.exe"
		_, err := fx.facade.Upload(ctx, 1, in)
		assert.ErrorIs(t, err, ErrBlockedFileType)
		assert.Zero(t, fx.blobs.puts)
	})

	t.Run("blob store failure leaves no row", func(t *testing.T) {
		fx := newStorageFixture(t, 1000)
		fx.blobs.putErr = errors.New("503 from provider")
		_, err := fx.facade.Upload(ctx, 1, payload(10))
		assert.ErrorIs(t, err, ErrBlobStore)
		assert.Empty(t, fx.files.rows)
	})

	t.Run("folder of another user", func(t *testing.T) {
		fx := newStorageFixture(t, 1000)
		other, err := fx.facade.CreateFolder(ctx, 2, "theirs", nil)
		require.NoError(t, err)

		in := payload(10)
		in.FolderID = &other.ID
		_, err = fx.facade.Upload(ctx, 1, in)
		assert.ErrorIs(t, err, ErrFolderNotFound)
		assert.Zero(t, fx.blobs.puts)
	})

	t.Run("insert failure compensates the blob", func(t *testing.T) {
		fx := newStorageFixture(t, 1000)
		fx.files.insertErr = errors.New("db down")
		_, err := fx.catalog.Upload(ctx, 1, *payload(10))
		require.Error(t, err)
		require.Len(t, fx.blobs.deletes, 1)
		assert.Empty(t, fx.blobs.objects)
	})
}

func TestFileCatalog_DownloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, quota.DefaultCeiling)

	content := []byte("hello, round trip \x00\xff")
	rec, err := fx.facade.Upload(ctx, 5, &ports.UploadInput{
		Body:         bytes.NewReader(content),
		Size:         int64(len(content)),
		OriginalName: "greeting.txt",
		MimeType:     "text/plain",
	})
	require.NoError(t, err)

	got, rc, err := fx.facade.Download(ctx, 5, rec.ID)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)

	assert.Equal(t, content, b)
	assert.Equal(t, "greeting.txt", got.OriginalName)
	assert.Equal(t, "text/plain", got.MimeType)

	_, _, err = fx.facade.Download(ctx, 6, rec.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)

	fx.blobs.openErr = errors.New("404 from provider")
	_, _, err = fx.facade.Download(ctx, 5, rec.ID)
	assert.ErrorIs(t, err, ErrBlobStore)
}

func TestFileCatalog_DeleteByNonOwnerIsNotFound(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, quota.DefaultCeiling)

	rec, err := fx.facade.Upload(ctx, 1, payload(10))
	require.NoError(t, err)

	err = fx.facade.DeleteFile(ctx, 666, rec.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
	err = fx.facade.DeleteFile(ctx, 666, 12345)
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = fx.catalog.Get(ctx, 1, rec.ID)
	assert.NoError(t, err)
}

func TestFileCatalog_BlobDeleteFailureIsSwallowedAndQueued(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, quota.DefaultCeiling)

	rec, err := fx.facade.Upload(ctx, 1, payload(10))
	require.NoError(t, err)

	fx.blobs.deleteErr = errors.New("provider timeout")
	require.NoError(t, fx.facade.DeleteFile(ctx, 1, rec.ID))

	_, err = fx.catalog.Get(ctx, 1, rec.ID)
	assert.ErrorIs(t, err, ErrFileNotFound, "soft delete is not reversed")

	require.Len(t, fx.queue.items, 1)
	d := fx.queue.items[0]
	assert.Equal(t, rec.StoredLocator, d.Locator)
	assert.Equal(t, rec.ID, d.FileID)
	assert.Equal(t, 1, d.Attempt)
	assert.Contains(t, d.Reason, "provider timeout")

	assert.Equal(t, 1, fx.logs.FilterLevelExact(zapcore.WarnLevel).Len())

	// even a dead queue never surfaces to the caller
	rec2, err := fx.facade.Upload(ctx, 1, payload(10))
	require.NoError(t, err)
	fx.queue.err = errors.New("queue full")
	require.NoError(t, fx.facade.DeleteFile(ctx, 1, rec2.ID))
	assert.Equal(t, 1, fx.logs.FilterMessage("blob delete retry not scheduled, blob orphaned").Len())
}

func TestFolderHierarchy_SiblingNames(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, quota.DefaultCeiling)

	root, err := fx.facade.CreateFolder(ctx, 1, "docs", nil)
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)
	assert.False(t, root.CreatedAt.IsZero())

	_, err = fx.facade.CreateFolder(ctx, 1, "docs", nil)
	assert.ErrorIs(t, err, ErrDuplicateFolderName)

	child, err := fx.facade.CreateFolder(ctx, 1, "docs", &root.ID)
	require.NoError(t, err, "same name under a different parent")
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	_, err = fx.facade.CreateFolder(ctx, 2, "docs", nil)
	assert.NoError(t, err, "other users have their own namespace")

	_, err = fx.facade.CreateFolder(ctx, 1, "   ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	missing := folder.ID(999)
	_, err = fx.facade.CreateFolder(ctx, 1, "x", &missing)
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestFolderHierarchy_SoftDeleteDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	fx := newStorageFixture(t, quota.DefaultCeiling)

	parent, err := fx.facade.CreateFolder(ctx, 1, "a", nil)
	require.NoError(t, err)
	_, err = fx.facade.CreateFolder(ctx, 1, "b", nil)
	require.NoError(t, err)
	child, err := fx.facade.CreateFolder(ctx, 1, "inner", &parent.ID)
	require.NoError(t, err)
	in := payload(10)
	in.FolderID = &parent.ID
	_, err = fx.facade.Upload(ctx, 1, in)
	require.NoError(t, err)

	assert.ErrorIs(t, fx.facade.DeleteFolder(ctx, 2, parent.ID), ErrFolderNotFound)
	require.NoError(t, fx.facade.DeleteFolder(ctx, 1, parent.ID))
	assert.ErrorIs(t, fx.facade.DeleteFolder(ctx, 1, parent.ID), ErrFolderNotFound)

	_, folders, err := fx.facade.MyFiles(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "b", folders[0].Name)

	files, folders, err := fx.facade.MyFiles(ctx, 1, &parent.ID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	require.Len(t, folders, 1)
	assert.Equal(t, child.ID, folders[0].ID)

	// the name is free again once the sibling is deleted
	_, err = fx.facade.CreateFolder(ctx, 1, "a", nil)
	assert.NoError(t, err)
}

func TestStorageFacade_MyFilesPropagatesErrors(t *testing.T) {
	fx := newStorageFixture(t, quota.DefaultCeiling)
	fx.files.err = errors.New("db down")

	_, _, err := fx.facade.MyFiles(context.Background(), 1, nil)
	assert.EqualError(t, err, "db down")
}
