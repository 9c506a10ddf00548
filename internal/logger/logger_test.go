package logger

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The worker and stats binaries run under a scheduler that redirects
// stdout into the run log, so log lines must not land on stderr.
func TestNewWritesToStdout(t *testing.T) {
	origStdout, origStderr := os.Stdout, os.Stderr
	defer func() {
		os.Stdout, os.Stderr = origStdout, origStderr
	}()

	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout, os.Stderr = outW, errW

	log := New()
	log.Info("outbox worker run complete", zap.Int64("sent", 3))
	_ = log.Sync()

	os.Stdout, os.Stderr = origStdout, origStderr
	require.NoError(t, outW.Close())
	require.NoError(t, errW.Close())

	stdout, err := io.ReadAll(outR)
	require.NoError(t, err)
	stderr, err := io.ReadAll(errR)
	require.NoError(t, err)

	assert.Contains(t, string(stdout), "outbox worker run complete")
	assert.Contains(t, string(stdout), `"sent": 3`)
	assert.Empty(t, stderr)
}
