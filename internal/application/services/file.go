package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"storage-api/internal/application/ports"
	domain "storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/user"
)

type FileCatalog struct {
	logger         *zap.Logger
	blobs          ports.BlobStore
	fileRepository domain.Repository
	quota          ports.QuotaLedger
	folders        ports.FolderHierarchy
	retries        ports.BlobDeletionQueue
	mCounter       *prometheus.CounterVec
	now            func() time.Time
}

func NewFileCatalog(
	logger *zap.Logger,
	blobs ports.BlobStore,
	fileRepository domain.Repository,
	quota ports.QuotaLedger,
	folders ports.FolderHierarchy,
	retries ports.BlobDeletionQueue,
	mCounter *prometheus.CounterVec,
) ports.FileCatalog {
	return &FileCatalog{
		logger:         logger,
		blobs:          blobs,
		fileRepository: fileRepository,
		quota:          quota,
		folders:        folders,
		retries:        retries,
		mCounter:       mCounter,
		now:            time.Now,
	}
}

// Upload admits the payload against the quota, writes the blob and only then
// records it. A row is never written for a blob that failed to store.
func (fc *FileCatalog) Upload(ctx context.Context, userID user.ID, in ports.UploadInput) (*domain.File, error) {
	if in.Body == nil {
		return nil, ErrNoFile
	}
	if in.Size < 0 || strings.TrimSpace(in.OriginalName) == "" {
		return nil, ErrInvalidInput
	}
	if isBlockedName(in.OriginalName) {
		return nil, ErrBlockedFileType
	}
	if in.MimeType == "" {
		in.MimeType = defaultMimeType
	}

	if in.FolderID != nil {
		if _, err := fc.folders.Get(ctx, userID, *in.FolderID); err != nil {
			return nil, err
		}
	}

	if err := fc.quota.Admit(ctx, userID, in.Size); err != nil {
		return nil, err
	}

	key := storageKey(fc.now(), userID, in.OriginalName, in.MimeType)
	blob, err := fc.blobs.Put(ctx, key, in.Body, in.Size, in.MimeType)
	if err != nil {
		fc.mCounter.WithLabelValues("blob_put_failed_total").Inc()
		return nil, fmt.Errorf("%w: %v", ErrBlobStore, err)
	}

	rec, err := fc.fileRepository.InsertWithinQuota(ctx, domain.File{
		UserID:        userID,
		FolderID:      in.FolderID,
		OriginalName:  in.OriginalName,
		StoredLocator: blob.Locator,
		MimeType:      in.MimeType,
		SizeBytes:     blob.Size,
	}, fc.quota.Ceiling())
	if err != nil {
		fc.discardBlob(ctx, domain.BlobDeletion{
			Locator: blob.Locator,
			UserID:  userID,
			Reason:  "upload rolled back",
		})
		if errors.Is(err, domain.ErrQuotaExceeded) {
			fc.mCounter.WithLabelValues("quota_rejected_total").Inc()
			return nil, quotaExceeded(fc.quota.Ceiling())
		}
		return nil, err
	}

	fc.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return rec, nil
}

func (fc *FileCatalog) List(ctx context.Context, userID user.ID, folderID *folder.ID) (domain.Files, error) {
	return fc.fileRepository.FetchFiles(ctx, userID, folderID)
}

func (fc *FileCatalog) Get(ctx context.Context, userID user.ID, id domain.ID) (*domain.File, error) {
	f, err := fc.fileRepository.FetchFile(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFileNotFound
	}

	return f, nil
}

// SoftDelete never fails because of the blob store: once the row is marked,
// a failed blob delete is handed to the retry queue.
func (fc *FileCatalog) SoftDelete(ctx context.Context, userID user.ID, id domain.ID) error {
	f, err := fc.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	ok, err := fc.fileRepository.SoftDeleteFile(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFileNotFound
	}

	fc.mCounter.WithLabelValues("files_deleted_total").Inc()

	fc.discardBlob(ctx, domain.BlobDeletion{
		Locator: f.StoredLocator,
		FileID:  f.ID,
		UserID:  userID,
		Reason:  "file deleted",
	})

	return nil
}

// StreamDownload returns an open reader on the blob; the caller must close it.
func (fc *FileCatalog) StreamDownload(ctx context.Context, userID user.ID, id domain.ID) (*domain.File, io.ReadCloser, error) {
	f, err := fc.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := fc.blobs.Open(ctx, f.StoredLocator)
	if err != nil {
		fc.mCounter.WithLabelValues("blob_open_failed_total").Inc()
		return nil, nil, fmt.Errorf("%w: %v", ErrBlobStore, err)
	}

	return f, rc, nil
}

func (fc *FileCatalog) discardBlob(ctx context.Context, d domain.BlobDeletion) {
	// the caller may already be gone; the cleanup must not be cancelled with it
	ctx = context.WithoutCancel(ctx)

	err := fc.blobs.Delete(ctx, d.Locator)
	if err == nil {
		return
	}

	fc.mCounter.WithLabelValues("blob_delete_failed_total").Inc()
	fc.logger.Warn("blob delete failed, scheduling retry",
		zap.String("locator", d.Locator),
		zap.Int64("file_id", int64(d.FileID)),
		zap.Error(err),
	)

	d.Attempt = 1
	d.Reason = d.Reason + ": " + err.Error()
	if qerr := fc.retries.Enqueue(ctx, d); qerr != nil {
		fc.logger.Error("blob delete retry not scheduled, blob orphaned",
			zap.String("locator", d.Locator),
			zap.Error(qerr),
		)
	}
}
