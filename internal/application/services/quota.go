package services

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"

	"storage-api/internal/application/ports"
	"storage-api/internal/domain/file"
	"storage-api/internal/domain/quota"
	"storage-api/internal/domain/user"
)

// QuotaLedger derives usage from the live file rows on every call; nothing
// is cached.
type QuotaLedger struct {
	fileRepository file.Repository
	ceiling        int64
	mCounter       *prometheus.CounterVec
}

func NewQuotaLedger(
	fileRepository file.Repository,
	ceiling int64,
	mCounter *prometheus.CounterVec,
) ports.QuotaLedger {
	return &QuotaLedger{
		fileRepository: fileRepository,
		ceiling:        ceiling,
		mCounter:       mCounter,
	}
}

func (ql *QuotaLedger) Ceiling() int64 { return ql.ceiling }

func (ql *QuotaLedger) CurrentUsage(ctx context.Context, userID user.ID) (int64, error) {
	u, err := ql.fileRepository.FetchUsage(ctx, userID)
	if err != nil {
		return 0, err
	}

	return u.UsedBytes, nil
}

func (ql *QuotaLedger) Admit(ctx context.Context, userID user.ID, incoming int64) error {
	used, err := ql.CurrentUsage(ctx, userID)
	if err != nil {
		return err
	}
	if !quota.Admit(used, incoming, ql.ceiling) {
		ql.mCounter.WithLabelValues("quota_rejected_total").Inc()
		return quotaExceeded(ql.ceiling)
	}

	return nil
}

func (ql *QuotaLedger) Report(ctx context.Context, userID user.ID) (quota.Report, error) {
	u, err := ql.fileRepository.FetchUsage(ctx, userID)
	if err != nil {
		return quota.Report{}, err
	}

	return quota.NewReport(u.UsedBytes, u.FileCount, ql.ceiling), nil
}

func quotaExceeded(ceiling int64) error {
	return fmt.Errorf("%w (%s limit)", ErrQuotaExceeded, humanize.IBytes(uint64(ceiling)))
}
