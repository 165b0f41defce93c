package quota

import "math"

// DefaultCeiling is the per-user storage ceiling, 100 MiB.
const (
	DefaultCeiling = 100 * MiB
	MiB            = 1 << 20
)

type Report struct {
	UsedBytes  int64   `json:"used_bytes"`
	TotalBytes int64   `json:"total_bytes"`
	UsedMB     float64 `json:"used_mb"`
	TotalMB    float64 `json:"total_mb"`
	Percentage float64 `json:"percentage"`
	FileCount  int64   `json:"file_count"`
}

// Admit reports whether incoming more bytes fit next to used. Landing
// exactly on the ceiling is allowed.
func Admit(used, incoming, ceiling int64) bool {
	return used+incoming <= ceiling
}

func NewReport(used, fileCount, ceiling int64) Report {
	r := Report{
		UsedBytes:  used,
		TotalBytes: ceiling,
		UsedMB:     round2(float64(used) / MiB),
		TotalMB:    round2(float64(ceiling) / MiB),
		FileCount:  fileCount,
	}
	if ceiling > 0 {
		r.Percentage = round2(100 * float64(used) / float64(ceiling))
	}
	return r
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
