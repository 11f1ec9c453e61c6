package check

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ff6editor/pluginvet/internal/domain"
)

// Checksum writes the SHA-256 of plugin.lua to the sidecar file, overwriting
// any previous digest. Skipped when the script is absent.
func Checksum(t Target) []domain.CheckResult {
	const pass = domain.PassChecksum
	if !t.present(domain.ScriptFile) {
		return nil
	}

	data, err := t.FS.ReadFile(t.path(domain.ScriptFile))
	if err != nil {
		return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Error generating checksum: %v", err))}
	}

	sum := Digest(data)
	if err := t.FS.WriteFile(t.path(t.Rules.ChecksumFile), []byte(sum)); err != nil {
		return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Error generating checksum: %v", err))}
	}

	prefix := sum
	if n := t.Rules.ChecksumPrefixSize; n > 0 && n < len(sum) {
		prefix = sum[:n]
	}
	return []domain.CheckResult{domain.Pass(pass, fmt.Sprintf("Checksum generated: %s...", prefix))}
}

// Digest returns the lowercase hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum compares the sidecar digest with the current script. A
// "sha256:" prefix and surrounding whitespace in the sidecar are tolerated.
func VerifyChecksum(t Target) (domain.ChecksumVerification, error) {
	if !t.present(domain.ScriptFile) || !t.present(t.Rules.ChecksumFile) {
		return domain.ChecksumVerification{Status: domain.ChecksumMissing}, nil
	}

	script, err := t.FS.ReadFile(t.path(domain.ScriptFile))
	if err != nil {
		return domain.ChecksumVerification{}, fmt.Errorf("reading %s: %w", domain.ScriptFile, err)
	}
	sidecar, err := t.FS.ReadFile(t.path(t.Rules.ChecksumFile))
	if err != nil {
		return domain.ChecksumVerification{}, fmt.Errorf("reading %s: %w", t.Rules.ChecksumFile, err)
	}

	expected := strings.ToLower(strings.TrimSpace(string(sidecar)))
	expected = strings.TrimPrefix(expected, "sha256:")
	actual := Digest(script)

	status := domain.ChecksumMatch
	if expected != actual {
		status = domain.ChecksumMismatch
	}
	return domain.ChecksumVerification{Status: status, Expected: expected, Actual: actual}, nil
}
