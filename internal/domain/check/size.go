package check

import (
	"fmt"

	"github.com/ff6editor/pluginvet/internal/domain"
)

const bytesPerMB = 1024 * 1024

// Size compares each size-limited file against its ceiling. Files that do
// not exist are skipped without a result.
func Size(t Target) []domain.CheckResult {
	const pass = domain.PassSize

	var results []domain.CheckResult
	for _, limit := range t.Rules.SizeLimits {
		info, err := t.FS.Stat(t.path(limit.File))
		if err != nil {
			if !isNotExist(err) {
				results = append(results, domain.Fail(pass, fmt.Sprintf("Error reading size of %s: %v", limit.File, err)))
			}
			continue
		}

		size := info.Size()
		if size <= limit.MaxBytes {
			results = append(results, domain.Pass(pass,
				fmt.Sprintf("%s: %s (max: %s)", limit.File, FormatMB(size), formatLimit(limit.MaxBytes))))
		} else {
			results = append(results, domain.Fail(pass,
				fmt.Sprintf("%s: %s exceeds max %s", limit.File, FormatMB(size), formatLimit(limit.MaxBytes))))
		}
	}
	return results
}

// FormatMB renders a byte count as megabytes with two decimals.
func FormatMB(n int64) string {
	return fmt.Sprintf("%.2fMB", float64(n)/bytesPerMB)
}

func formatLimit(n int64) string {
	if n >= bytesPerMB && n%bytesPerMB == 0 {
		return fmt.Sprintf("%dMB", n/bytesPerMB)
	}
	if n%1024 == 0 {
		return fmt.Sprintf("%dKB", n/1024)
	}
	return FormatMB(n)
}
