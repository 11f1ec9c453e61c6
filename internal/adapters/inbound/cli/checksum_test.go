package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/ff6editor/pluginvet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumGenerateThenVerify(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	_ = os.Remove(filepath.Join(dir, domain.ChecksumFile))

	out, err := execute(t, "checksum", "generate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Checksum generated")

	out, err = execute(t, "checksum", "verify", dir, "--json")
	require.NoError(t, err)

	var v domain.ChecksumVerification
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, domain.ChecksumMatch, v.Status)
	assert.Equal(t, v.Expected, v.Actual)
}

func TestChecksumVerify_Mismatch(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	testutil.WriteFiles(t, dir, map[string]string{domain.ChecksumFile: "deadbeef\n"})

	out, err := execute(t, "checksum", "verify", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
	assert.Contains(t, out, "checksum mismatch")
}

func TestChecksumVerify_Missing(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	_ = os.Remove(filepath.Join(dir, domain.ChecksumFile))

	_, err := execute(t, "checksum", "verify", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no checksum to verify")
}

func TestChecksumVerify_DoesNotWrite(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	_ = os.Remove(filepath.Join(dir, domain.ChecksumFile))

	_, _ = execute(t, "checksum", "verify", dir)
	assert.NoFileExists(t, filepath.Join(dir, domain.ChecksumFile))
}
